package response

import "time"

// AuthResponse represents the response after successful authentication
type AuthResponse struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	TokenType    string        `json:"token_type"`
	ExpiresIn    time.Duration `json:"expires_in"`
	User         UserResponse  `json:"user"`
}

// TokenResponse represents the response after a token refresh. The
// refresh token is rotated on every use, so the pair replaces both
// tokens the client holds.
type TokenResponse struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	TokenType    string        `json:"token_type"`
	ExpiresIn    time.Duration `json:"expires_in"`
}

// MessageResponse carries a confirmation message for flows that return no
// data, such as forgot-password.
type MessageResponse struct {
	Message string `json:"message"`
}
