package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/savora/savora-cloud-go/internal/dto/response"
	"github.com/savora/savora-cloud-go/internal/jobs"
	"github.com/savora/savora-cloud-go/internal/middleware"
)

// JobController exposes the background job system to administrators
type JobController struct {
	jobService     jobs.Service
	authMiddleware *middleware.AuthMiddleware
}

// NewJobController creates a new JobController instance
func NewJobController(jobService jobs.Service, authMiddleware *middleware.AuthMiddleware) *JobController {
	return &JobController{
		jobService:     jobService,
		authMiddleware: authMiddleware,
	}
}

// RegisterRoutes registers the admin job routes
func (c *JobController) RegisterRoutes(router *gin.RouterGroup) {
	jobsGroup := router.Group("/admin/jobs")
	jobsGroup.Use(c.authMiddleware.Authenticate(), c.authMiddleware.RequireAdmin())
	{
		jobsGroup.GET("/stats", c.Stats)
		jobsGroup.GET("/dlq", c.ListDLQ)
		jobsGroup.POST("/dlq/:jobId/retry", c.RetryDLQJob)
		jobsGroup.DELETE("/dlq", c.PurgeDLQ)
		jobsGroup.GET("/:jobId", c.GetJob)
		jobsGroup.POST("/:jobId/retry", c.RetryJob)
		jobsGroup.DELETE("/:jobId", c.CancelJob)
	}
}

// Stats aggregates queue, worker and scheduler statistics
// @Summary Job system statistics
// @Tags Jobs
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.ApiResponse[jobs.QueueStats]
// @Router /api/v1/admin/jobs/stats [get]
func (c *JobController) Stats(ctx *gin.Context) {
	stats, err := c.jobService.GetQueueStats(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, response.NewError[any]("failed to fetch job stats"))
		return
	}

	ctx.JSON(http.StatusOK, response.NewSuccessWithData(stats))
}

// GetJob retrieves one job record
// @Summary Get job
// @Tags Jobs
// @Produce json
// @Security BearerAuth
// @Param jobId path string true "Job ID"
// @Success 200 {object} response.ApiResponse[jobs.JobPayload]
// @Router /api/v1/admin/jobs/{jobId} [get]
func (c *JobController) GetJob(ctx *gin.Context) {
	job, err := c.jobService.GetJob(ctx.Request.Context(), ctx.Param("jobId"))
	if err != nil {
		switch err {
		case jobs.ErrJobNotFound:
			ctx.JSON(http.StatusNotFound, response.NewError[any]("job not found"))
		default:
			ctx.JSON(http.StatusInternalServerError, response.NewError[any]("failed to fetch job"))
		}
		return
	}

	ctx.JSON(http.StatusOK, response.NewSuccessWithData(job))
}

// RetryJob resets a failed job and puts it back on its queue
// @Summary Retry job
// @Tags Jobs
// @Produce json
// @Security BearerAuth
// @Param jobId path string true "Job ID"
// @Success 200 {object} response.ApiResponse[any]
// @Router /api/v1/admin/jobs/{jobId}/retry [post]
func (c *JobController) RetryJob(ctx *gin.Context) {
	if err := c.jobService.RetryJob(ctx.Request.Context(), ctx.Param("jobId")); err != nil {
		switch err {
		case jobs.ErrJobNotFound:
			ctx.JSON(http.StatusNotFound, response.NewError[any]("job not found"))
		default:
			ctx.JSON(http.StatusInternalServerError, response.NewError[any]("failed to retry job"))
		}
		return
	}

	ctx.JSON(http.StatusOK, response.NewSuccess[any](nil, "Job requeued"))
}

// CancelJob removes a pending job
// @Summary Cancel job
// @Tags Jobs
// @Produce json
// @Security BearerAuth
// @Param jobId path string true "Job ID"
// @Success 200 {object} response.ApiResponse[any]
// @Router /api/v1/admin/jobs/{jobId} [delete]
func (c *JobController) CancelJob(ctx *gin.Context) {
	if err := c.jobService.CancelJob(ctx.Request.Context(), ctx.Param("jobId")); err != nil {
		switch err {
		case jobs.ErrJobNotFound:
			ctx.JSON(http.StatusNotFound, response.NewError[any]("job not found"))
		default:
			ctx.JSON(http.StatusInternalServerError, response.NewError[any]("failed to cancel job"))
		}
		return
	}

	ctx.JSON(http.StatusOK, response.NewSuccess[any](nil, "Job cancelled"))
}

// ListDLQ lists dead jobs
// @Summary List dead letter queue
// @Tags Jobs
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Max entries" default(50)
// @Success 200 {object} response.ApiResponse[[]jobs.JobPayload]
// @Router /api/v1/admin/jobs/dlq [get]
func (c *JobController) ListDLQ(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "50"))
	if limit < 1 || limit > 1000 {
		limit = 50
	}

	deadJobs, err := c.jobService.GetDLQJobs(ctx.Request.Context(), limit)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, response.NewError[any]("failed to fetch dead jobs"))
		return
	}

	ctx.JSON(http.StatusOK, response.NewSuccessWithData(deadJobs))
}

// RetryDLQJob resurrects one dead job
// @Summary Retry dead job
// @Tags Jobs
// @Produce json
// @Security BearerAuth
// @Param jobId path string true "Job ID"
// @Success 200 {object} response.ApiResponse[any]
// @Router /api/v1/admin/jobs/dlq/{jobId}/retry [post]
func (c *JobController) RetryDLQJob(ctx *gin.Context) {
	if err := c.jobService.RetryDLQJob(ctx.Request.Context(), ctx.Param("jobId")); err != nil {
		switch err {
		case jobs.ErrJobNotFound:
			ctx.JSON(http.StatusNotFound, response.NewError[any]("job not found in dead letter queue"))
		default:
			ctx.JSON(http.StatusInternalServerError, response.NewError[any]("failed to retry dead job"))
		}
		return
	}

	ctx.JSON(http.StatusOK, response.NewSuccess[any](nil, "Dead job requeued"))
}

// PurgeDLQ drops everything in the dead letter queue
// @Summary Purge dead letter queue
// @Tags Jobs
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.ApiResponse[any]
// @Router /api/v1/admin/jobs/dlq [delete]
func (c *JobController) PurgeDLQ(ctx *gin.Context) {
	if err := c.jobService.PurgeDLQ(ctx.Request.Context()); err != nil {
		ctx.JSON(http.StatusInternalServerError, response.NewError[any]("failed to purge dead letter queue"))
		return
	}

	ctx.JSON(http.StatusOK, response.NewSuccess[any](nil, "Dead letter queue purged"))
}
