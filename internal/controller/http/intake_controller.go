package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/savora/savora-cloud-go/internal/domain/entity"
	"github.com/savora/savora-cloud-go/internal/domain/service"
	"github.com/savora/savora-cloud-go/internal/dto/request"
	"github.com/savora/savora-cloud-go/internal/dto/response"
	"github.com/savora/savora-cloud-go/internal/middleware"
)

// ContactController handles contact request endpoints. Submission is
// public; everything else is admin-only.
type ContactController struct {
	contactService service.ContactService
	authMiddleware *middleware.AuthMiddleware
}

// NewContactController creates a new ContactController instance
func NewContactController(contactService service.ContactService, authMiddleware *middleware.AuthMiddleware) *ContactController {
	return &ContactController{
		contactService: contactService,
		authMiddleware: authMiddleware,
	}
}

// RegisterRoutes registers the contact routes
func (c *ContactController) RegisterRoutes(router *gin.RouterGroup) {
	contact := router.Group("/contact")
	{
		contact.POST("", c.Submit)

		admin := contact.Group("")
		admin.Use(c.authMiddleware.Authenticate(), c.authMiddleware.RequireAdmin())
		{
			admin.GET("", c.List)
			admin.POST("/bulk-delete", c.BulkDelete)
			admin.POST("/bulk-restore", c.BulkRestore)
			admin.GET("/:id", c.GetByID)
			admin.PUT("/:id/status", c.UpdateStatus)
			admin.DELETE("/:id", c.Delete)
			admin.POST("/:id/restore", c.Restore)
			admin.DELETE("/:id/permanent", c.PermanentDelete)
		}
	}
}

// Submit records a new contact request
// @Summary Submit contact request
// @Tags Contact
// @Accept json
// @Produce json
// @Param request body request.ContactRequest true "Contact request"
// @Success 201 {object} response.ApiResponse[response.ContactResponse]
// @Router /api/v1/contact [post]
func (c *ContactController) Submit(ctx *gin.Context) {
	var req request.ContactRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, response.NewErrorWithDetails[any](msgValidationFailed, err.Error()))
		return
	}

	contact, err := c.contactService.Submit(ctx.Request.Context(), &req)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, response.NewError[any]("failed to submit contact request"))
		return
	}

	ctx.JSON(http.StatusCreated, response.NewSuccess(contact, "Contact request submitted"))
}

// List retrieves contact requests, optionally filtered by status
// @Summary List contact requests
// @Tags Contact
// @Produce json
// @Security BearerAuth
// @Param status query string false "Status filter"
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} response.ApiResponse[response.PagedResponse[response.ContactResponse]]
// @Router /api/v1/contact [get]
func (c *ContactController) List(ctx *gin.Context) {
	page, size := pageParams(ctx)

	contacts, err := c.contactService.List(ctx.Request.Context(), page, size, ctx.Query("status"))
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, response.NewError[any]("failed to fetch contact requests"))
		return
	}

	ctx.JSON(http.StatusOK, response.NewSuccessWithData(contacts))
}

// GetByID retrieves a contact request
// @Summary Get contact request
// @Tags Contact
// @Produce json
// @Security BearerAuth
// @Param id path int true "Contact ID"
// @Success 200 {object} response.ApiResponse[response.ContactResponse]
// @Router /api/v1/contact/{id} [get]
func (c *ContactController) GetByID(ctx *gin.Context) {
	id, ok := idParam(ctx)
	if !ok {
		ctx.JSON(http.StatusBadRequest, response.NewError[any]("invalid contact ID"))
		return
	}

	contact, err := c.contactService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		switch err {
		case service.ErrContactNotFound:
			ctx.JSON(http.StatusNotFound, response.NewError[any]("contact request not found"))
		default:
			ctx.JSON(http.StatusInternalServerError, response.NewError[any]("failed to fetch contact request"))
		}
		return
	}

	ctx.JSON(http.StatusOK, response.NewSuccessWithData(contact))
}

// UpdateStatus moves a contact request through its workflow
// @Summary Update contact status
// @Tags Contact
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Contact ID"
// @Param request body request.UpdateContactStatusRequest true "Status update"
// @Success 200 {object} response.ApiResponse[response.ContactResponse]
// @Router /api/v1/contact/{id}/status [put]
func (c *ContactController) UpdateStatus(ctx *gin.Context) {
	id, ok := idParam(ctx)
	if !ok {
		ctx.JSON(http.StatusBadRequest, response.NewError[any]("invalid contact ID"))
		return
	}

	var req request.UpdateContactStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, response.NewErrorWithDetails[any](msgValidationFailed, err.Error()))
		return
	}

	contact, err := c.contactService.UpdateStatus(ctx.Request.Context(), id, &req)
	if err != nil {
		switch err {
		case service.ErrContactNotFound:
			ctx.JSON(http.StatusNotFound, response.NewError[any]("contact request not found"))
		case service.ErrInvalidStatusTransition:
			ctx.JSON(http.StatusConflict, response.NewError[any]("invalid status transition"))
		default:
			ctx.JSON(http.StatusInternalServerError, response.NewError[any]("failed to update status"))
		}
		return
	}

	ctx.JSON(http.StatusOK, response.NewSuccess(contact, "Status updated successfully"))
}

// Delete soft-deletes a contact request
// @Summary Delete contact request
// @Tags Contact
// @Produce json
// @Security BearerAuth
// @Param id path int true "Contact ID"
// @Success 200 {object} response.ApiResponse[any]
// @Router /api/v1/contact/{id} [delete]
func (c *ContactController) Delete(ctx *gin.Context) {
	id, ok := idParam(ctx)
	if !ok {
		ctx.JSON(http.StatusBadRequest, response.NewError[any]("invalid contact ID"))
		return
	}

	if err := c.contactService.Delete(ctx.Request.Context(), id); err != nil {
		switch err {
		case service.ErrContactNotFound:
			ctx.JSON(http.StatusNotFound, response.NewError[any]("contact request not found"))
		default:
			ctx.JSON(http.StatusInternalServerError, response.NewError[any]("failed to delete contact request"))
		}
		return
	}

	ctx.JSON(http.StatusOK, response.NewSuccess[any](nil, "Contact request deleted"))
}

// Restore brings a soft-deleted contact request back
// @Summary Restore contact request
// @Tags Contact
// @Produce json
// @Security BearerAuth
// @Param id path int true "Contact ID"
// @Success 200 {object} response.ApiResponse[any]
// @Router /api/v1/contact/{id}/restore [post]
func (c *ContactController) Restore(ctx *gin.Context) {
	id, ok := idParam(ctx)
	if !ok {
		ctx.JSON(http.StatusBadRequest, response.NewError[any]("invalid contact ID"))
		return
	}

	if err := c.contactService.Restore(ctx.Request.Context(), id); err != nil {
		switch err {
		case service.ErrContactNotFound:
			ctx.JSON(http.StatusNotFound, response.NewError[any]("contact request not found"))
		default:
			ctx.JSON(http.StatusInternalServerError, response.NewError[any]("failed to restore contact request"))
		}
		return
	}

	ctx.JSON(http.StatusOK, response.NewSuccess[any](nil, "Contact request restored"))
}

// PermanentDelete physically removes an already soft-deleted request
// @Summary Permanently delete contact request
// @Tags Contact
// @Produce json
// @Security BearerAuth
// @Param id path int true "Contact ID"
// @Success 200 {object} response.ApiResponse[any]
// @Router /api/v1/contact/{id}/permanent [delete]
func (c *ContactController) PermanentDelete(ctx *gin.Context) {
	id, ok := idParam(ctx)
	if !ok {
		ctx.JSON(http.StatusBadRequest, response.NewError[any]("invalid contact ID"))
		return
	}

	if err := c.contactService.PermanentDelete(ctx.Request.Context(), id); err != nil {
		switch err {
		case service.ErrContactNotFound:
			ctx.JSON(http.StatusNotFound, response.NewError[any]("contact request not found"))
		case service.ErrNotSoftDeleted:
			ctx.JSON(http.StatusConflict, response.NewError[any]("contact request must be soft-deleted first"))
		default:
			ctx.JSON(http.StatusInternalServerError, response.NewError[any]("failed to delete contact request"))
		}
		return
	}

	ctx.JSON(http.StatusOK, response.NewSuccess[any](nil, "Contact request permanently deleted"))
}

// BulkDelete soft-deletes the listed contact requests
// @Summary Bulk delete contact requests
// @Tags Contact
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request.BulkIDsRequest true "IDs"
// @Success 200 {object} response.ApiResponse[response.BulkOperationResponse]
// @Router /api/v1/contact/bulk-delete [post]
func (c *ContactController) BulkDelete(ctx *gin.Context) {
	var req request.BulkIDsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, response.NewErrorWithDetails[any](msgValidationFailed, err.Error()))
		return
	}

	result, err := c.contactService.BulkDelete(ctx.Request.Context(), req.IDs)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, response.NewError[any]("bulk delete failed"))
		return
	}

	ctx.JSON(http.StatusOK, response.NewSuccessWithData(result))
}

// BulkRestore restores the listed contact requests
// @Summary Bulk restore contact requests
// @Tags Contact
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request.BulkIDsRequest true "IDs"
// @Success 200 {object} response.ApiResponse[response.BulkOperationResponse]
// @Router /api/v1/contact/bulk-restore [post]
func (c *ContactController) BulkRestore(ctx *gin.Context) {
	var req request.BulkIDsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, response.NewErrorWithDetails[any](msgValidationFailed, err.Error()))
		return
	}

	result, err := c.contactService.BulkRestore(ctx.Request.Context(), req.IDs)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, response.NewError[any]("bulk restore failed"))
		return
	}

	ctx.JSON(http.StatusOK, response.NewSuccessWithData(result))
}

// ApplicationController handles job and internship application
// endpoints. Submission is public; everything else is admin-only.
type ApplicationController struct {
	applicationService service.ApplicationService
	authMiddleware     *middleware.AuthMiddleware
}

// NewApplicationController creates a new ApplicationController instance
func NewApplicationController(applicationService service.ApplicationService, authMiddleware *middleware.AuthMiddleware) *ApplicationController {
	return &ApplicationController{
		applicationService: applicationService,
		authMiddleware:     authMiddleware,
	}
}

// RegisterRoutes registers the application routes
func (c *ApplicationController) RegisterRoutes(router *gin.RouterGroup) {
	applications := router.Group("/applications")
	{
		applications.POST("", c.Submit)

		admin := applications.Group("")
		admin.Use(c.authMiddleware.Authenticate(), c.authMiddleware.RequireAdmin())
		{
			admin.GET("", c.List)
			admin.POST("/bulk-delete", c.BulkDelete)
			admin.POST("/bulk-restore", c.BulkRestore)
			admin.GET("/:id", c.GetByID)
			admin.PUT("/:id/review", c.Review)
			admin.DELETE("/:id", c.Delete)
			admin.POST("/:id/restore", c.Restore)
			admin.DELETE("/:id/permanent", c.PermanentDelete)
		}
	}
}

// Submit records a new application
// @Summary Submit application
// @Tags Applications
// @Accept json
// @Produce json
// @Param request body request.ApplicationRequest true "Application"
// @Success 201 {object} response.ApiResponse[response.ApplicationResponse]
// @Router /api/v1/applications [post]
func (c *ApplicationController) Submit(ctx *gin.Context) {
	var req request.ApplicationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, response.NewErrorWithDetails[any](msgValidationFailed, err.Error()))
		return
	}

	application, err := c.applicationService.Submit(ctx.Request.Context(), &req)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, response.NewError[any]("failed to submit application"))
		return
	}

	ctx.JSON(http.StatusCreated, response.NewSuccess(application, "Application submitted"))
}

// List retrieves applications, optionally filtered by kind
// @Summary List applications
// @Tags Applications
// @Produce json
// @Security BearerAuth
// @Param kind query string false "Application kind (job or intern)"
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} response.ApiResponse[response.PagedResponse[response.ApplicationResponse]]
// @Router /api/v1/applications [get]
func (c *ApplicationController) List(ctx *gin.Context) {
	page, size := pageParams(ctx)
	kind := entity.ApplicationKind(ctx.Query("kind"))

	applications, err := c.applicationService.List(ctx.Request.Context(), page, size, kind)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, response.NewError[any]("failed to fetch applications"))
		return
	}

	ctx.JSON(http.StatusOK, response.NewSuccessWithData(applications))
}

// GetByID retrieves an application
// @Summary Get application
// @Tags Applications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Success 200 {object} response.ApiResponse[response.ApplicationResponse]
// @Router /api/v1/applications/{id} [get]
func (c *ApplicationController) GetByID(ctx *gin.Context) {
	id, ok := idParam(ctx)
	if !ok {
		ctx.JSON(http.StatusBadRequest, response.NewError[any]("invalid application ID"))
		return
	}

	application, err := c.applicationService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		switch err {
		case service.ErrApplicationNotFound:
			ctx.JSON(http.StatusNotFound, response.NewError[any]("application not found"))
		default:
			ctx.JSON(http.StatusInternalServerError, response.NewError[any]("failed to fetch application"))
		}
		return
	}

	ctx.JSON(http.StatusOK, response.NewSuccessWithData(application))
}

// Review flips the reviewed and shortlisted flags
// @Summary Review application
// @Tags Applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Param request body request.ReviewApplicationRequest true "Review"
// @Success 200 {object} response.ApiResponse[response.ApplicationResponse]
// @Router /api/v1/applications/{id}/review [put]
func (c *ApplicationController) Review(ctx *gin.Context) {
	id, ok := idParam(ctx)
	if !ok {
		ctx.JSON(http.StatusBadRequest, response.NewError[any]("invalid application ID"))
		return
	}

	var req request.ReviewApplicationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, response.NewErrorWithDetails[any](msgValidationFailed, err.Error()))
		return
	}

	application, err := c.applicationService.Review(ctx.Request.Context(), id, &req)
	if err != nil {
		switch err {
		case service.ErrApplicationNotFound:
			ctx.JSON(http.StatusNotFound, response.NewError[any]("application not found"))
		default:
			ctx.JSON(http.StatusInternalServerError, response.NewError[any]("failed to review application"))
		}
		return
	}

	ctx.JSON(http.StatusOK, response.NewSuccess(application, "Application reviewed"))
}

// Delete soft-deletes an application
// @Summary Delete application
// @Tags Applications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Success 200 {object} response.ApiResponse[any]
// @Router /api/v1/applications/{id} [delete]
func (c *ApplicationController) Delete(ctx *gin.Context) {
	id, ok := idParam(ctx)
	if !ok {
		ctx.JSON(http.StatusBadRequest, response.NewError[any]("invalid application ID"))
		return
	}

	if err := c.applicationService.Delete(ctx.Request.Context(), id); err != nil {
		switch err {
		case service.ErrApplicationNotFound:
			ctx.JSON(http.StatusNotFound, response.NewError[any]("application not found"))
		default:
			ctx.JSON(http.StatusInternalServerError, response.NewError[any]("failed to delete application"))
		}
		return
	}

	ctx.JSON(http.StatusOK, response.NewSuccess[any](nil, "Application deleted"))
}

// Restore brings a soft-deleted application back
// @Summary Restore application
// @Tags Applications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Success 200 {object} response.ApiResponse[any]
// @Router /api/v1/applications/{id}/restore [post]
func (c *ApplicationController) Restore(ctx *gin.Context) {
	id, ok := idParam(ctx)
	if !ok {
		ctx.JSON(http.StatusBadRequest, response.NewError[any]("invalid application ID"))
		return
	}

	if err := c.applicationService.Restore(ctx.Request.Context(), id); err != nil {
		switch err {
		case service.ErrApplicationNotFound:
			ctx.JSON(http.StatusNotFound, response.NewError[any]("application not found"))
		default:
			ctx.JSON(http.StatusInternalServerError, response.NewError[any]("failed to restore application"))
		}
		return
	}

	ctx.JSON(http.StatusOK, response.NewSuccess[any](nil, "Application restored"))
}

// PermanentDelete physically removes an already soft-deleted application
// @Summary Permanently delete application
// @Tags Applications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Success 200 {object} response.ApiResponse[any]
// @Router /api/v1/applications/{id}/permanent [delete]
func (c *ApplicationController) PermanentDelete(ctx *gin.Context) {
	id, ok := idParam(ctx)
	if !ok {
		ctx.JSON(http.StatusBadRequest, response.NewError[any]("invalid application ID"))
		return
	}

	if err := c.applicationService.PermanentDelete(ctx.Request.Context(), id); err != nil {
		switch err {
		case service.ErrApplicationNotFound:
			ctx.JSON(http.StatusNotFound, response.NewError[any]("application not found"))
		case service.ErrNotSoftDeleted:
			ctx.JSON(http.StatusConflict, response.NewError[any]("application must be soft-deleted first"))
		default:
			ctx.JSON(http.StatusInternalServerError, response.NewError[any]("failed to delete application"))
		}
		return
	}

	ctx.JSON(http.StatusOK, response.NewSuccess[any](nil, "Application permanently deleted"))
}

// BulkDelete soft-deletes the listed applications
// @Summary Bulk delete applications
// @Tags Applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request.BulkIDsRequest true "IDs"
// @Success 200 {object} response.ApiResponse[response.BulkOperationResponse]
// @Router /api/v1/applications/bulk-delete [post]
func (c *ApplicationController) BulkDelete(ctx *gin.Context) {
	var req request.BulkIDsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, response.NewErrorWithDetails[any](msgValidationFailed, err.Error()))
		return
	}

	result, err := c.applicationService.BulkDelete(ctx.Request.Context(), req.IDs)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, response.NewError[any]("bulk delete failed"))
		return
	}

	ctx.JSON(http.StatusOK, response.NewSuccessWithData(result))
}

// BulkRestore restores the listed applications
// @Summary Bulk restore applications
// @Tags Applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request.BulkIDsRequest true "IDs"
// @Success 200 {object} response.ApiResponse[response.BulkOperationResponse]
// @Router /api/v1/applications/bulk-restore [post]
func (c *ApplicationController) BulkRestore(ctx *gin.Context) {
	var req request.BulkIDsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, response.NewErrorWithDetails[any](msgValidationFailed, err.Error()))
		return
	}

	result, err := c.applicationService.BulkRestore(ctx.Request.Context(), req.IDs)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, response.NewError[any]("bulk restore failed"))
		return
	}

	ctx.JSON(http.StatusOK, response.NewSuccessWithData(result))
}
