package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/savora/savora-cloud-go/internal/domain/service"
	"github.com/savora/savora-cloud-go/internal/dto/response"
	"github.com/savora/savora-cloud-go/internal/middleware"
	"github.com/savora/savora-cloud-go/internal/security"
)

// ActivityController handles the per-user activity log endpoints
type ActivityController struct {
	activityService service.ActivityService
	securityService *security.SecurityService
	authMiddleware  *middleware.AuthMiddleware
}

// NewActivityController creates a new ActivityController instance
func NewActivityController(
	activityService service.ActivityService,
	securityService *security.SecurityService,
	authMiddleware *middleware.AuthMiddleware,
) *ActivityController {
	return &ActivityController{
		activityService: activityService,
		securityService: securityService,
		authMiddleware:  authMiddleware,
	}
}

// RegisterRoutes registers the activity routes
func (c *ActivityController) RegisterRoutes(router *gin.RouterGroup) {
	activities := router.Group("/activities")
	activities.Use(c.authMiddleware.Authenticate())
	{
		activities.GET("", c.Query)
		activities.GET("/summary", c.Summary)
	}
}

// Query returns the caller's activity log, newest first
// @Summary Query activity log
// @Tags Activities
// @Produce json
// @Security BearerAuth
// @Param type query string false "Activity type filter"
// @Param status query string false "Activity status filter"
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} response.ApiResponse[response.PagedResponse[response.ActivityResponse]]
// @Router /api/v1/activities [get]
func (c *ActivityController) Query(ctx *gin.Context) {
	userID := c.securityService.GetCurrentUserID(ctx)
	if userID == 0 {
		ctx.JSON(http.StatusUnauthorized, response.NewError[any](msgNotAuthenticated))
		return
	}

	page, size := pageParams(ctx)
	typeFilter := ctx.Query("type")
	statusFilter := ctx.Query("status")

	activities, err := c.activityService.Query(ctx.Request.Context(), userID, typeFilter, statusFilter, page, size)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, response.NewError[any]("failed to fetch activities"))
		return
	}

	ctx.JSON(http.StatusOK, response.NewSuccessWithData(activities))
}

// Summary aggregates the caller's activity log over a trailing window
// @Summary Activity summary
// @Tags Activities
// @Produce json
// @Security BearerAuth
// @Param days query int false "Trailing window in days" default(30)
// @Success 200 {object} response.ApiResponse[response.ActivitySummaryResponse]
// @Router /api/v1/activities/summary [get]
func (c *ActivityController) Summary(ctx *gin.Context) {
	userID := c.securityService.GetCurrentUserID(ctx)
	if userID == 0 {
		ctx.JSON(http.StatusUnauthorized, response.NewError[any](msgNotAuthenticated))
		return
	}

	days, _ := strconv.Atoi(ctx.DefaultQuery("days", "30"))
	if days < 1 || days > 365 {
		days = 30
	}

	summary, err := c.activityService.Summary(ctx.Request.Context(), userID, days)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, response.NewError[any]("failed to build summary"))
		return
	}

	ctx.JSON(http.StatusOK, response.NewSuccessWithData(summary))
}
