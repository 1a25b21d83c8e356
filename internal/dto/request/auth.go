package request

// RegisterRequest represents a user registration request. ReferralCode is
// optional; when present the signup is linked to the code's owner.
type RegisterRequest struct {
	FirstName    string `json:"first_name" binding:"required,max=50"`
	LastName     string `json:"last_name,omitempty" binding:"max=50"`
	Email        string `json:"email" binding:"required,email,max=100"`
	Phone        string `json:"phone,omitempty" binding:"max=20"`
	Password     string `json:"password" binding:"required,min=8,max=72"`
	ReferralCode string `json:"referral_code,omitempty" binding:"max=20"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Device   string `json:"device,omitempty" binding:"max=100"`
	Location string `json:"location,omitempty" binding:"max=100"`
}

// RefreshTokenRequest represents a token refresh request.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// ChangePasswordRequest represents a password change request.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=72"`
}

// ForgotPasswordRequest starts the OTP-based password reset flow.
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest completes the OTP-based password reset flow.
type ResetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	OTP         string `json:"otp" binding:"required,len=6"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=72"`
}
