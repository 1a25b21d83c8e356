package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/savora/savora-cloud-go/internal/domain/service"
	"github.com/savora/savora-cloud-go/internal/dto/request"
	"github.com/savora/savora-cloud-go/internal/dto/response"
	"github.com/savora/savora-cloud-go/internal/middleware"
	"github.com/savora/savora-cloud-go/internal/security"
)

const (
	msgNotAuthenticated = "not authenticated"
	msgUserNotFound     = "user not found"
	msgFailedFetchUser  = "failed to fetch user"
)

// UserController handles user profile, lifecycle and address book endpoints
type UserController struct {
	userService     service.UserService
	securityService *security.SecurityService
	authMiddleware  *middleware.AuthMiddleware
}

// NewUserController creates a new UserController instance
func NewUserController(
	userService service.UserService,
	securityService *security.SecurityService,
	authMiddleware *middleware.AuthMiddleware,
) *UserController {
	return &UserController{
		userService:     userService,
		securityService: securityService,
		authMiddleware:  authMiddleware,
	}
}

// RegisterRoutes registers the user routes
func (c *UserController) RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/users")
	users.Use(c.authMiddleware.Authenticate())
	{
		users.GET("", c.authMiddleware.RequireAdmin(), c.List)
		users.GET("/me", c.GetCurrentUser)
		users.PUT("/me", c.UpdateCurrentUser)
		users.PUT("/me/password", c.ChangePassword)

		users.GET("/me/addresses", c.ListAddresses)
		users.POST("/me/addresses", c.AddAddress)
		users.PUT("/me/addresses/:idx", c.UpdateAddress)
		users.DELETE("/me/addresses/:idx", c.DeleteAddress)
		users.POST("/me/addresses/deleted/:idx/restore", c.RestoreAddress)
		users.DELETE("/me/addresses/deleted/:idx", c.PurgeAddress)

		users.GET("/:id", c.authMiddleware.RequireAdmin(), c.GetByID)
		users.DELETE("/:id", c.authMiddleware.RequireAdmin(), c.Delete)
		users.POST("/:id/restore", c.authMiddleware.RequireAdmin(), c.Restore)
		users.DELETE("/:id/permanent", c.authMiddleware.RequireAdmin(), c.PermanentDelete)
	}
}

// List retrieves all users with pagination
// @Summary List all users
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} response.ApiResponse[response.PagedResponse[response.UserResponse]]
// @Router /api/v1/users [get]
func (c *UserController) List(ctx *gin.Context) {
	page, size := pageParams(ctx)

	users, err := c.userService.List(ctx.Request.Context(), page, size)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, response.NewError[any]("failed to fetch users"))
		return
	}

	ctx.JSON(http.StatusOK, response.NewSuccessWithData(users))
}

// GetCurrentUser retrieves the current authenticated user
// @Summary Get current user
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.ApiResponse[response.UserResponse]
// @Router /api/v1/users/me [get]
func (c *UserController) GetCurrentUser(ctx *gin.Context) {
	userID := c.securityService.GetCurrentUserID(ctx)
	if userID == 0 {
		ctx.JSON(http.StatusUnauthorized, response.NewError[any](msgNotAuthenticated))
		return
	}

	user, err := c.userService.GetByID(ctx.Request.Context(), userID)
	if err != nil {
		switch err {
		case service.ErrUserNotFound:
			ctx.JSON(http.StatusNotFound, response.NewError[any](msgUserNotFound))
		default:
			ctx.JSON(http.StatusInternalServerError, response.NewError[any](msgFailedFetchUser))
		}
		return
	}

	ctx.JSON(http.StatusOK, response.NewSuccessWithData(user))
}

// UpdateCurrentUser updates the current user's profile
// @Summary Update current user
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request.UpdateProfileRequest true "Update request"
// @Success 200 {object} response.ApiResponse[response.UserResponse]
// @Router /api/v1/users/me [put]
func (c *UserController) UpdateCurrentUser(ctx *gin.Context) {
	userID := c.securityService.GetCurrentUserID(ctx)
	if userID == 0 {
		ctx.JSON(http.StatusUnauthorized, response.NewError[any](msgNotAuthenticated))
		return
	}

	var req request.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, response.NewErrorWithDetails[any](msgValidationFailed, err.Error()))
		return
	}

	user, err := c.userService.Update(ctx.Request.Context(), userID, &req)
	if err != nil {
		switch err {
		case service.ErrUserNotFound:
			ctx.JSON(http.StatusNotFound, response.NewError[any](msgUserNotFound))
		default:
			ctx.JSON(http.StatusInternalServerError, response.NewError[any]("failed to update user"))
		}
		return
	}

	ctx.JSON(http.StatusOK, response.NewSuccess(user, "Profile updated successfully"))
}

// ChangePassword changes the current user's password
// @Summary Change password
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request.ChangePasswordRequest true "Password change request"
// @Success 200 {object} response.ApiResponse[any]
// @Router /api/v1/users/me/password [put]
func (c *UserController) ChangePassword(ctx *gin.Context) {
	userID := c.securityService.GetCurrentUserID(ctx)
	if userID == 0 {
		ctx.JSON(http.StatusUnauthorized, response.NewError[any](msgNotAuthenticated))
		return
	}

	var req request.ChangePasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, response.NewErrorWithDetails[any](msgValidationFailed, err.Error()))
		return
	}

	err := c.userService.ChangePassword(ctx.Request.Context(), userID, &req)
	if err != nil {
		switch err {
		case service.ErrUserNotFound:
			ctx.JSON(http.StatusNotFound, response.NewError[any](msgUserNotFound))
		case service.ErrInvalidCredentials:
			ctx.JSON(http.StatusBadRequest, response.NewError[any]("current password is incorrect"))
		default:
			ctx.JSON(http.StatusInternalServerError, response.NewError[any]("failed to change password"))
		}
		return
	}

	ctx.JSON(http.StatusOK, response.NewSuccess[any](nil, "Password changed successfully"))
}

// GetByID retrieves a user by ID
// @Summary Get user by ID
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} response.ApiResponse[response.UserResponse]
// @Router /api/v1/users/{id} [get]
func (c *UserController) GetByID(ctx *gin.Context) {
	id, ok := idParam(ctx)
	if !ok {
		ctx.JSON(http.StatusBadRequest, response.NewError[any]("invalid user ID"))
		return
	}

	user, err := c.userService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		switch err {
		case service.ErrUserNotFound:
			ctx.JSON(http.StatusNotFound, response.NewError[any](msgUserNotFound))
		default:
			ctx.JSON(http.StatusInternalServerError, response.NewError[any](msgFailedFetchUser))
		}
		return
	}

	ctx.JSON(http.StatusOK, response.NewSuccessWithData(user))
}

// Delete soft-deletes a user
// @Summary Soft-delete user
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} response.ApiResponse[any]
// @Router /api/v1/users/{id} [delete]
func (c *UserController) Delete(ctx *gin.Context) {
	id, ok := idParam(ctx)
	if !ok {
		ctx.JSON(http.StatusBadRequest, response.NewError[any]("invalid user ID"))
		return
	}

	if err := c.userService.Delete(ctx.Request.Context(), id); err != nil {
		switch err {
		case service.ErrUserNotFound:
			ctx.JSON(http.StatusNotFound, response.NewError[any](msgUserNotFound))
		default:
			ctx.JSON(http.StatusInternalServerError, response.NewError[any]("failed to delete user"))
		}
		return
	}

	ctx.JSON(http.StatusOK, response.NewSuccess[any](nil, "User deleted successfully"))
}

// Restore brings a soft-deleted user back
// @Summary Restore user
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} response.ApiResponse[any]
// @Router /api/v1/users/{id}/restore [post]
func (c *UserController) Restore(ctx *gin.Context) {
	id, ok := idParam(ctx)
	if !ok {
		ctx.JSON(http.StatusBadRequest, response.NewError[any]("invalid user ID"))
		return
	}

	if err := c.userService.Restore(ctx.Request.Context(), id); err != nil {
		switch err {
		case service.ErrUserNotFound:
			ctx.JSON(http.StatusNotFound, response.NewError[any](msgUserNotFound))
		default:
			ctx.JSON(http.StatusInternalServerError, response.NewError[any]("failed to restore user"))
		}
		return
	}

	ctx.JSON(http.StatusOK, response.NewSuccess[any](nil, "User restored successfully"))
}

// PermanentDelete physically removes an already soft-deleted user
// @Summary Permanently delete user
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} response.ApiResponse[any]
// @Router /api/v1/users/{id}/permanent [delete]
func (c *UserController) PermanentDelete(ctx *gin.Context) {
	id, ok := idParam(ctx)
	if !ok {
		ctx.JSON(http.StatusBadRequest, response.NewError[any]("invalid user ID"))
		return
	}

	if err := c.userService.PermanentDelete(ctx.Request.Context(), id); err != nil {
		switch err {
		case service.ErrUserNotFound:
			ctx.JSON(http.StatusNotFound, response.NewError[any](msgUserNotFound))
		case service.ErrNotSoftDeleted:
			ctx.JSON(http.StatusConflict, response.NewError[any]("user must be soft-deleted first"))
		default:
			ctx.JSON(http.StatusInternalServerError, response.NewError[any]("failed to delete user"))
		}
		return
	}

	ctx.JSON(http.StatusOK, response.NewSuccess[any](nil, "User permanently deleted"))
}

// ListAddresses returns the caller's active delivery addresses
// @Summary List addresses
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.ApiResponse[[]response.AddressResponse]
// @Router /api/v1/users/me/addresses [get]
func (c *UserController) ListAddresses(ctx *gin.Context) {
	userID := c.securityService.GetCurrentUserID(ctx)
	if userID == 0 {
		ctx.JSON(http.StatusUnauthorized, response.NewError[any](msgNotAuthenticated))
		return
	}

	addresses, err := c.userService.ListAddresses(ctx.Request.Context(), userID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, response.NewError[any]("failed to fetch addresses"))
		return
	}

	ctx.JSON(http.StatusOK, response.NewSuccessWithData(addresses))
}

// AddAddress appends a delivery address
// @Summary Add address
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request.AddressRequest true "Address"
// @Success 201 {object} response.ApiResponse[[]response.AddressResponse]
// @Router /api/v1/users/me/addresses [post]
func (c *UserController) AddAddress(ctx *gin.Context) {
	userID := c.securityService.GetCurrentUserID(ctx)
	if userID == 0 {
		ctx.JSON(http.StatusUnauthorized, response.NewError[any](msgNotAuthenticated))
		return
	}

	var req request.AddressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, response.NewErrorWithDetails[any](msgValidationFailed, err.Error()))
		return
	}

	addresses, err := c.userService.AddAddress(ctx.Request.Context(), userID, &req)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, response.NewError[any]("failed to add address"))
		return
	}

	ctx.JSON(http.StatusCreated, response.NewSuccess(addresses, "Address added successfully"))
}

// UpdateAddress updates the address at the given active index
// @Summary Update address
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param idx path int true "Address index"
// @Param request body request.AddressRequest true "Address"
// @Success 200 {object} response.ApiResponse[[]response.AddressResponse]
// @Router /api/v1/users/me/addresses/{idx} [put]
func (c *UserController) UpdateAddress(ctx *gin.Context) {
	userID := c.securityService.GetCurrentUserID(ctx)
	if userID == 0 {
		ctx.JSON(http.StatusUnauthorized, response.NewError[any](msgNotAuthenticated))
		return
	}

	idx, ok := indexParam(ctx)
	if !ok {
		ctx.JSON(http.StatusBadRequest, response.NewError[any]("invalid address index"))
		return
	}

	var req request.AddressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, response.NewErrorWithDetails[any](msgValidationFailed, err.Error()))
		return
	}

	addresses, err := c.userService.UpdateAddress(ctx.Request.Context(), userID, idx, &req)
	if err != nil {
		switch err {
		case service.ErrAddressNotFound:
			ctx.JSON(http.StatusNotFound, response.NewError[any]("address not found"))
		default:
			ctx.JSON(http.StatusInternalServerError, response.NewError[any]("failed to update address"))
		}
		return
	}

	ctx.JSON(http.StatusOK, response.NewSuccess(addresses, "Address updated successfully"))
}

// DeleteAddress soft-deletes the address at the given active index
// @Summary Delete address
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param idx path int true "Address index"
// @Success 200 {object} response.ApiResponse[[]response.AddressResponse]
// @Router /api/v1/users/me/addresses/{idx} [delete]
func (c *UserController) DeleteAddress(ctx *gin.Context) {
	userID := c.securityService.GetCurrentUserID(ctx)
	if userID == 0 {
		ctx.JSON(http.StatusUnauthorized, response.NewError[any](msgNotAuthenticated))
		return
	}

	idx, ok := indexParam(ctx)
	if !ok {
		ctx.JSON(http.StatusBadRequest, response.NewError[any]("invalid address index"))
		return
	}

	addresses, err := c.userService.DeleteAddress(ctx.Request.Context(), userID, idx)
	if err != nil {
		switch err {
		case service.ErrAddressNotFound:
			ctx.JSON(http.StatusNotFound, response.NewError[any]("address not found"))
		default:
			ctx.JSON(http.StatusInternalServerError, response.NewError[any]("failed to delete address"))
		}
		return
	}

	ctx.JSON(http.StatusOK, response.NewSuccess(addresses, "Address deleted successfully"))
}

// RestoreAddress restores the address at the given index among the
// soft-deleted addresses
// @Summary Restore address
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param idx path int true "Deleted address index"
// @Success 200 {object} response.ApiResponse[[]response.AddressResponse]
// @Router /api/v1/users/me/addresses/deleted/{idx}/restore [post]
func (c *UserController) RestoreAddress(ctx *gin.Context) {
	userID := c.securityService.GetCurrentUserID(ctx)
	if userID == 0 {
		ctx.JSON(http.StatusUnauthorized, response.NewError[any](msgNotAuthenticated))
		return
	}

	idx, ok := indexParam(ctx)
	if !ok {
		ctx.JSON(http.StatusBadRequest, response.NewError[any]("invalid address index"))
		return
	}

	addresses, err := c.userService.RestoreAddress(ctx.Request.Context(), userID, idx)
	if err != nil {
		switch err {
		case service.ErrAddressNotFound:
			ctx.JSON(http.StatusNotFound, response.NewError[any]("address not found"))
		default:
			ctx.JSON(http.StatusInternalServerError, response.NewError[any]("failed to restore address"))
		}
		return
	}

	ctx.JSON(http.StatusOK, response.NewSuccess(addresses, "Address restored successfully"))
}

// PurgeAddress permanently removes the address at the given index among
// the soft-deleted addresses
// @Summary Purge address
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param idx path int true "Deleted address index"
// @Success 200 {object} response.ApiResponse[any]
// @Router /api/v1/users/me/addresses/deleted/{idx} [delete]
func (c *UserController) PurgeAddress(ctx *gin.Context) {
	userID := c.securityService.GetCurrentUserID(ctx)
	if userID == 0 {
		ctx.JSON(http.StatusUnauthorized, response.NewError[any](msgNotAuthenticated))
		return
	}

	idx, ok := indexParam(ctx)
	if !ok {
		ctx.JSON(http.StatusBadRequest, response.NewError[any]("invalid address index"))
		return
	}

	if err := c.userService.PurgeAddress(ctx.Request.Context(), userID, idx); err != nil {
		switch err {
		case service.ErrAddressNotFound:
			ctx.JSON(http.StatusNotFound, response.NewError[any]("address not found"))
		default:
			ctx.JSON(http.StatusInternalServerError, response.NewError[any]("failed to purge address"))
		}
		return
	}

	ctx.JSON(http.StatusOK, response.NewSuccess[any](nil, "Address permanently removed"))
}

func pageParams(ctx *gin.Context) (int, int) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(ctx.DefaultQuery("size", "10"))
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 100 {
		size = 10
	}
	return page, size
}

func idParam(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func indexParam(ctx *gin.Context) (int, bool) {
	idx, err := strconv.Atoi(ctx.Param("idx"))
	if err != nil || idx < 0 {
		return 0, false
	}
	return idx, true
}
