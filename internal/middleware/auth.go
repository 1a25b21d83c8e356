// Package middleware holds the Gin middleware shared by the HTTP
// controllers.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/savora/savora-cloud-go/internal/domain/entity"
	"github.com/savora/savora-cloud-go/internal/dto/response"
	"github.com/savora/savora-cloud-go/internal/security"
)

// AuthMiddleware provides authentication middleware
type AuthMiddleware struct {
	jwtProvider     *security.JWTProvider
	securityService *security.SecurityService
}

// NewAuthMiddleware creates a new AuthMiddleware instance
func NewAuthMiddleware(jwtProvider *security.JWTProvider, securityService *security.SecurityService) *AuthMiddleware {
	return &AuthMiddleware{
		jwtProvider:     jwtProvider,
		securityService: securityService,
	}
}

// Authenticate validates the bearer token and stores the claims and
// the raw token in the request context. Session endpoints need the raw
// token to recognize the caller's own session.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, response.NewError[any]("authorization header required"))
			c.Abort()
			return
		}

		claims, err := m.jwtProvider.ValidateAccessToken(tokenString)
		if err != nil {
			switch err {
			case security.ErrExpiredToken:
				c.JSON(http.StatusUnauthorized, response.NewError[any]("token has expired"))
			default:
				c.JSON(http.StatusUnauthorized, response.NewError[any]("invalid token"))
			}
			c.Abort()
			return
		}

		m.securityService.SetCurrentClaims(c, claims)
		m.securityService.SetCurrentToken(c, tokenString)

		c.Next()
	}
}

// OptionalAuth validates the bearer token if present but doesn't require it
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			c.Next()
			return
		}

		claims, err := m.jwtProvider.ValidateAccessToken(tokenString)
		if err == nil {
			m.securityService.SetCurrentClaims(c, claims)
			m.securityService.SetCurrentToken(c, tokenString)
		}

		c.Next()
	}
}

// RequireRole checks if the user has one of the required roles
func (m *AuthMiddleware) RequireRole(roles ...entity.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := m.securityService.GetCurrentClaims(c)
		if claims == nil {
			c.JSON(http.StatusUnauthorized, response.NewError[any]("authentication required"))
			c.Abort()
			return
		}

		for _, role := range roles {
			if claims.Role == role {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, response.NewError[any]("insufficient permissions"))
		c.Abort()
	}
}

// RequireAdmin checks if the user is an admin
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return m.RequireRole(entity.RoleAdmin)
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	return parts[1], true
}
