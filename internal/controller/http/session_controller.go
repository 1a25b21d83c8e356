package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/savora/savora-cloud-go/internal/domain/service"
	"github.com/savora/savora-cloud-go/internal/dto/response"
	"github.com/savora/savora-cloud-go/internal/middleware"
	"github.com/savora/savora-cloud-go/internal/security"
)

// SessionController handles the session registry endpoints
type SessionController struct {
	sessionService  service.SessionService
	securityService *security.SecurityService
	authMiddleware  *middleware.AuthMiddleware
}

// NewSessionController creates a new SessionController instance
func NewSessionController(
	sessionService service.SessionService,
	securityService *security.SecurityService,
	authMiddleware *middleware.AuthMiddleware,
) *SessionController {
	return &SessionController{
		sessionService:  sessionService,
		securityService: securityService,
		authMiddleware:  authMiddleware,
	}
}

// RegisterRoutes registers the session routes
func (c *SessionController) RegisterRoutes(router *gin.RouterGroup) {
	sessions := router.Group("/sessions")
	sessions.Use(c.authMiddleware.Authenticate())
	{
		sessions.GET("", c.List)
		sessions.DELETE("/others", c.TerminateOthers)
		sessions.DELETE("/:sessionId", c.Terminate)
	}
}

// List returns the caller's sessions, newest first with masked tokens
// @Summary List sessions
// @Tags Sessions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.ApiResponse[[]response.SessionResponse]
// @Router /api/v1/sessions [get]
func (c *SessionController) List(ctx *gin.Context) {
	userID := c.securityService.GetCurrentUserID(ctx)
	if userID == 0 {
		ctx.JSON(http.StatusUnauthorized, response.NewError[any](msgNotAuthenticated))
		return
	}

	sessions, err := c.sessionService.List(ctx.Request.Context(), userID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, response.NewError[any]("failed to fetch sessions"))
		return
	}

	ctx.JSON(http.StatusOK, response.NewSuccessWithData(sessions))
}

// Terminate removes one session by its identifier
// @Summary Terminate a session
// @Tags Sessions
// @Produce json
// @Security BearerAuth
// @Param sessionId path string true "Session ID"
// @Success 200 {object} response.ApiResponse[any]
// @Router /api/v1/sessions/{sessionId} [delete]
func (c *SessionController) Terminate(ctx *gin.Context) {
	userID := c.securityService.GetCurrentUserID(ctx)
	if userID == 0 {
		ctx.JSON(http.StatusUnauthorized, response.NewError[any](msgNotAuthenticated))
		return
	}

	sessionID := ctx.Param("sessionId")
	if sessionID == "" {
		ctx.JSON(http.StatusBadRequest, response.NewError[any]("session ID is required"))
		return
	}

	if err := c.sessionService.Terminate(ctx.Request.Context(), userID, sessionID); err != nil {
		switch err {
		case service.ErrSessionNotFound:
			ctx.JSON(http.StatusNotFound, response.NewError[any]("session not found"))
		default:
			ctx.JSON(http.StatusInternalServerError, response.NewError[any]("failed to terminate session"))
		}
		return
	}

	ctx.JSON(http.StatusOK, response.NewSuccess[any](nil, "Session terminated successfully"))
}

// TerminateOthers removes every session except the caller's own
// @Summary Terminate other sessions
// @Tags Sessions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.ApiResponse[response.SessionTerminationResponse]
// @Router /api/v1/sessions/others [delete]
func (c *SessionController) TerminateOthers(ctx *gin.Context) {
	userID := c.securityService.GetCurrentUserID(ctx)
	if userID == 0 {
		ctx.JSON(http.StatusUnauthorized, response.NewError[any](msgNotAuthenticated))
		return
	}

	result, err := c.sessionService.TerminateOthers(ctx.Request.Context(), userID, c.securityService.GetCurrentToken(ctx))
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, response.NewError[any]("failed to terminate sessions"))
		return
	}

	ctx.JSON(http.StatusOK, response.NewSuccess(result, "Other sessions terminated"))
}
