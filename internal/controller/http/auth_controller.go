// Package http contains the Gin controllers for the REST API.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/savora/savora-cloud-go/internal/domain/service"
	"github.com/savora/savora-cloud-go/internal/dto/request"
	"github.com/savora/savora-cloud-go/internal/dto/response"
	"github.com/savora/savora-cloud-go/internal/middleware"
	"github.com/savora/savora-cloud-go/internal/security"
)

const msgValidationFailed = "validation failed"

// AuthController handles authentication endpoints
type AuthController struct {
	authService     service.AuthService
	securityService *security.SecurityService
	authMiddleware  *middleware.AuthMiddleware
}

// NewAuthController creates a new AuthController instance
func NewAuthController(
	authService service.AuthService,
	securityService *security.SecurityService,
	authMiddleware *middleware.AuthMiddleware,
) *AuthController {
	return &AuthController{
		authService:     authService,
		securityService: securityService,
		authMiddleware:  authMiddleware,
	}
}

// RegisterRoutes registers the auth routes
func (c *AuthController) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		auth.POST("/register", c.Register)
		auth.POST("/login", c.Login)
		auth.POST("/refresh", c.RefreshToken)
		auth.POST("/logout", c.authMiddleware.Authenticate(), c.Logout)
		auth.POST("/forgot-password", c.ForgotPassword)
		auth.POST("/reset-password", c.ResetPassword)
	}
}

// Register handles user registration
// @Summary Register a new user
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body request.RegisterRequest true "Registration request"
// @Success 201 {object} response.ApiResponse[response.AuthResponse]
// @Failure 400 {object} response.ApiResponse[any]
// @Failure 409 {object} response.ApiResponse[any]
// @Router /api/v1/auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req request.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, response.NewErrorWithDetails[any](msgValidationFailed, err.Error()))
		return
	}

	authResp, err := c.authService.Register(ctx.Request.Context(), &req)
	if err != nil {
		switch err {
		case service.ErrUserAlreadyExists:
			ctx.JSON(http.StatusConflict, response.NewError[any]("user already exists"))
		case service.ErrReferralCodeInvalid, service.ErrSelfReferral:
			ctx.JSON(http.StatusBadRequest, response.NewError[any]("referral code is invalid"))
		default:
			ctx.JSON(http.StatusInternalServerError, response.NewError[any]("registration failed"))
		}
		return
	}

	ctx.JSON(http.StatusCreated, response.NewSuccess(authResp, "User registered successfully"))
}

// Login handles user login
// @Summary Login with email and password
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body request.LoginRequest true "Login request"
// @Success 200 {object} response.ApiResponse[response.AuthResponse]
// @Failure 400 {object} response.ApiResponse[any]
// @Failure 401 {object} response.ApiResponse[any]
// @Router /api/v1/auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req request.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, response.NewErrorWithDetails[any](msgValidationFailed, err.Error()))
		return
	}

	authResp, err := c.authService.Login(ctx.Request.Context(), &req, ctx.ClientIP(), ctx.Request.UserAgent())
	if err != nil {
		switch err {
		case service.ErrInvalidCredentials:
			ctx.JSON(http.StatusUnauthorized, response.NewError[any]("invalid credentials"))
		case service.ErrUserInactive:
			ctx.JSON(http.StatusUnauthorized, response.NewError[any]("account is inactive"))
		case service.ErrUserBanned:
			ctx.JSON(http.StatusForbidden, response.NewError[any]("account is banned"))
		default:
			ctx.JSON(http.StatusInternalServerError, response.NewError[any]("login failed"))
		}
		return
	}

	ctx.JSON(http.StatusOK, response.NewSuccess(authResp, "Login successful"))
}

// RefreshToken handles token refresh
// @Summary Refresh access token using refresh token
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body request.RefreshTokenRequest true "Refresh token request"
// @Success 200 {object} response.ApiResponse[response.TokenResponse]
// @Failure 400 {object} response.ApiResponse[any]
// @Failure 401 {object} response.ApiResponse[any]
// @Router /api/v1/auth/refresh [post]
func (c *AuthController) RefreshToken(ctx *gin.Context) {
	var req request.RefreshTokenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, response.NewErrorWithDetails[any](msgValidationFailed, err.Error()))
		return
	}

	tokenResp, err := c.authService.RefreshToken(ctx.Request.Context(), &req)
	if err != nil {
		switch err {
		case service.ErrInvalidToken:
			ctx.JSON(http.StatusUnauthorized, response.NewError[any]("invalid or expired refresh token"))
		default:
			ctx.JSON(http.StatusInternalServerError, response.NewError[any]("token refresh failed"))
		}
		return
	}

	ctx.JSON(http.StatusOK, response.NewSuccess(tokenResp, "Token refreshed successfully"))
}

// Logout terminates the session the caller's token is bound to
// @Summary Logout current session
// @Tags Authentication
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.ApiResponse[any]
// @Router /api/v1/auth/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	claims := c.securityService.GetCurrentClaims(ctx)
	if claims != nil {
		_ = c.authService.Logout(ctx.Request.Context(), claims.UserID, claims.SessionID)
	}

	ctx.JSON(http.StatusOK, response.NewSuccess[any](nil, "Logged out successfully"))
}

// ForgotPassword emails a reset code to the account owner
// @Summary Request a password reset code
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body request.ForgotPasswordRequest true "Forgot password request"
// @Success 200 {object} response.ApiResponse[any]
// @Router /api/v1/auth/forgot-password [post]
func (c *AuthController) ForgotPassword(ctx *gin.Context) {
	var req request.ForgotPasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, response.NewErrorWithDetails[any](msgValidationFailed, err.Error()))
		return
	}

	if err := c.authService.ForgotPassword(ctx.Request.Context(), &req); err != nil {
		ctx.JSON(http.StatusInternalServerError, response.NewError[any]("failed to process request"))
		return
	}

	// The response is identical whether or not the email has an account.
	ctx.JSON(http.StatusOK, response.NewSuccess[any](nil, "If the email exists, a reset code has been sent"))
}

// ResetPassword verifies the reset code and replaces the password
// @Summary Reset password with an emailed code
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body request.ResetPasswordRequest true "Reset password request"
// @Success 200 {object} response.ApiResponse[any]
// @Failure 400 {object} response.ApiResponse[any]
// @Router /api/v1/auth/reset-password [post]
func (c *AuthController) ResetPassword(ctx *gin.Context) {
	var req request.ResetPasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, response.NewErrorWithDetails[any](msgValidationFailed, err.Error()))
		return
	}

	if err := c.authService.ResetPassword(ctx.Request.Context(), &req); err != nil {
		switch err {
		case service.ErrOTPInvalid:
			ctx.JSON(http.StatusBadRequest, response.NewError[any]("invalid or expired code"))
		case service.ErrUserNotFound:
			ctx.JSON(http.StatusBadRequest, response.NewError[any]("invalid or expired code"))
		default:
			ctx.JSON(http.StatusInternalServerError, response.NewError[any]("failed to reset password"))
		}
		return
	}

	ctx.JSON(http.StatusOK, response.NewSuccess[any](nil, "Password reset successfully"))
}
