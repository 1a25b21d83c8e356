package service

import (
	"context"

	"github.com/savora/savora-cloud-go/internal/dto/request"
	"github.com/savora/savora-cloud-go/internal/dto/response"
)

// AuthService defines the interface for authentication operations
type AuthService interface {
	// Register creates a new account. A valid referral code links the signup
	// to its referrer; an invalid one fails the registration.
	Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error)

	// Login authenticates a user and opens a new session
	Login(ctx context.Context, req *request.LoginRequest, ip, userAgent string) (*response.AuthResponse, error)

	// RefreshToken rotates an access token using a valid refresh token
	RefreshToken(ctx context.Context, req *request.RefreshTokenRequest) (*response.TokenResponse, error)

	// Logout terminates the session the token is bound to
	Logout(ctx context.Context, userID uint, sessionID string) error

	// ForgotPassword stores an OTP and emails it to the account owner. It
	// succeeds silently for unknown emails so the endpoint cannot be used to
	// probe which addresses have accounts.
	ForgotPassword(ctx context.Context, req *request.ForgotPasswordRequest) error

	// ResetPassword verifies the OTP and replaces the password. All sessions
	// are terminated on success.
	ResetPassword(ctx context.Context, req *request.ResetPasswordRequest) error
}
