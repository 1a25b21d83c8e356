package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/savora/savora-cloud-go/internal/domain/service"
	"github.com/savora/savora-cloud-go/internal/dto/request"
	"github.com/savora/savora-cloud-go/internal/dto/response"
	"github.com/savora/savora-cloud-go/internal/middleware"
)

// MenuController handles the menu catalog endpoints. Browsing is
// public; catalog management is admin-only.
type MenuController struct {
	menuService    service.MenuService
	authMiddleware *middleware.AuthMiddleware
}

// NewMenuController creates a new MenuController instance
func NewMenuController(menuService service.MenuService, authMiddleware *middleware.AuthMiddleware) *MenuController {
	return &MenuController{
		menuService:    menuService,
		authMiddleware: authMiddleware,
	}
}

// RegisterRoutes registers the menu routes
func (c *MenuController) RegisterRoutes(router *gin.RouterGroup) {
	menu := router.Group("/menu")
	{
		menu.GET("", c.List)
		menu.GET("/:id", c.GetByID)

		admin := menu.Group("")
		admin.Use(c.authMiddleware.Authenticate(), c.authMiddleware.RequireAdmin())
		{
			admin.POST("", c.Create)
			admin.PUT("/:id", c.Update)
			admin.DELETE("/:id", c.Delete)
			admin.POST("/:id/restore", c.Restore)
			admin.DELETE("/:id/permanent", c.PermanentDelete)
		}
	}
}

// List retrieves menu items, optionally filtered by category
// @Summary List menu items
// @Tags Menu
// @Produce json
// @Param category query string false "Category filter"
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} response.ApiResponse[response.PagedResponse[response.MenuItemResponse]]
// @Router /api/v1/menu [get]
func (c *MenuController) List(ctx *gin.Context) {
	page, size := pageParams(ctx)

	items, err := c.menuService.List(ctx.Request.Context(), page, size, ctx.Query("category"))
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, response.NewError[any]("failed to fetch menu"))
		return
	}

	ctx.JSON(http.StatusOK, response.NewSuccessWithData(items))
}

// GetByID retrieves one menu item
// @Summary Get menu item
// @Tags Menu
// @Produce json
// @Param id path int true "Menu item ID"
// @Success 200 {object} response.ApiResponse[response.MenuItemResponse]
// @Router /api/v1/menu/{id} [get]
func (c *MenuController) GetByID(ctx *gin.Context) {
	id, ok := idParam(ctx)
	if !ok {
		ctx.JSON(http.StatusBadRequest, response.NewError[any]("invalid menu item ID"))
		return
	}

	item, err := c.menuService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		switch err {
		case service.ErrMenuItemNotFound:
			ctx.JSON(http.StatusNotFound, response.NewError[any]("menu item not found"))
		default:
			ctx.JSON(http.StatusInternalServerError, response.NewError[any]("failed to fetch menu item"))
		}
		return
	}

	ctx.JSON(http.StatusOK, response.NewSuccessWithData(item))
}

// Create adds a menu item
// @Summary Create menu item
// @Tags Menu
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request.MenuItemRequest true "Menu item"
// @Success 201 {object} response.ApiResponse[response.MenuItemResponse]
// @Router /api/v1/menu [post]
func (c *MenuController) Create(ctx *gin.Context) {
	var req request.MenuItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, response.NewErrorWithDetails[any](msgValidationFailed, err.Error()))
		return
	}

	item, err := c.menuService.Create(ctx.Request.Context(), &req)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, response.NewError[any]("failed to create menu item"))
		return
	}

	ctx.JSON(http.StatusCreated, response.NewSuccess(item, "Menu item created"))
}

// Update updates a menu item
// @Summary Update menu item
// @Tags Menu
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Menu item ID"
// @Param request body request.MenuItemRequest true "Menu item"
// @Success 200 {object} response.ApiResponse[response.MenuItemResponse]
// @Router /api/v1/menu/{id} [put]
func (c *MenuController) Update(ctx *gin.Context) {
	id, ok := idParam(ctx)
	if !ok {
		ctx.JSON(http.StatusBadRequest, response.NewError[any]("invalid menu item ID"))
		return
	}

	var req request.MenuItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, response.NewErrorWithDetails[any](msgValidationFailed, err.Error()))
		return
	}

	item, err := c.menuService.Update(ctx.Request.Context(), id, &req)
	if err != nil {
		switch err {
		case service.ErrMenuItemNotFound:
			ctx.JSON(http.StatusNotFound, response.NewError[any]("menu item not found"))
		default:
			ctx.JSON(http.StatusInternalServerError, response.NewError[any]("failed to update menu item"))
		}
		return
	}

	ctx.JSON(http.StatusOK, response.NewSuccess(item, "Menu item updated"))
}

// Delete soft-deletes a menu item
// @Summary Delete menu item
// @Tags Menu
// @Produce json
// @Security BearerAuth
// @Param id path int true "Menu item ID"
// @Success 200 {object} response.ApiResponse[any]
// @Router /api/v1/menu/{id} [delete]
func (c *MenuController) Delete(ctx *gin.Context) {
	id, ok := idParam(ctx)
	if !ok {
		ctx.JSON(http.StatusBadRequest, response.NewError[any]("invalid menu item ID"))
		return
	}

	if err := c.menuService.Delete(ctx.Request.Context(), id); err != nil {
		switch err {
		case service.ErrMenuItemNotFound:
			ctx.JSON(http.StatusNotFound, response.NewError[any]("menu item not found"))
		default:
			ctx.JSON(http.StatusInternalServerError, response.NewError[any]("failed to delete menu item"))
		}
		return
	}

	ctx.JSON(http.StatusOK, response.NewSuccess[any](nil, "Menu item deleted"))
}

// Restore brings a soft-deleted menu item back
// @Summary Restore menu item
// @Tags Menu
// @Produce json
// @Security BearerAuth
// @Param id path int true "Menu item ID"
// @Success 200 {object} response.ApiResponse[any]
// @Router /api/v1/menu/{id}/restore [post]
func (c *MenuController) Restore(ctx *gin.Context) {
	id, ok := idParam(ctx)
	if !ok {
		ctx.JSON(http.StatusBadRequest, response.NewError[any]("invalid menu item ID"))
		return
	}

	if err := c.menuService.Restore(ctx.Request.Context(), id); err != nil {
		switch err {
		case service.ErrMenuItemNotFound:
			ctx.JSON(http.StatusNotFound, response.NewError[any]("menu item not found"))
		default:
			ctx.JSON(http.StatusInternalServerError, response.NewError[any]("failed to restore menu item"))
		}
		return
	}

	ctx.JSON(http.StatusOK, response.NewSuccess[any](nil, "Menu item restored"))
}

// PermanentDelete physically removes an already soft-deleted menu item
// @Summary Permanently delete menu item
// @Tags Menu
// @Produce json
// @Security BearerAuth
// @Param id path int true "Menu item ID"
// @Success 200 {object} response.ApiResponse[any]
// @Router /api/v1/menu/{id}/permanent [delete]
func (c *MenuController) PermanentDelete(ctx *gin.Context) {
	id, ok := idParam(ctx)
	if !ok {
		ctx.JSON(http.StatusBadRequest, response.NewError[any]("invalid menu item ID"))
		return
	}

	if err := c.menuService.PermanentDelete(ctx.Request.Context(), id); err != nil {
		switch err {
		case service.ErrMenuItemNotFound:
			ctx.JSON(http.StatusNotFound, response.NewError[any]("menu item not found"))
		case service.ErrNotSoftDeleted:
			ctx.JSON(http.StatusConflict, response.NewError[any]("menu item must be soft-deleted first"))
		default:
			ctx.JSON(http.StatusInternalServerError, response.NewError[any]("failed to delete menu item"))
		}
		return
	}

	ctx.JSON(http.StatusOK, response.NewSuccess[any](nil, "Menu item permanently deleted"))
}
