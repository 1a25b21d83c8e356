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

// ReferralController handles the referral ledger endpoints
type ReferralController struct {
	referralService service.ReferralService
	securityService *security.SecurityService
	authMiddleware  *middleware.AuthMiddleware
}

// NewReferralController creates a new ReferralController instance
func NewReferralController(
	referralService service.ReferralService,
	securityService *security.SecurityService,
	authMiddleware *middleware.AuthMiddleware,
) *ReferralController {
	return &ReferralController{
		referralService: referralService,
		securityService: securityService,
		authMiddleware:  authMiddleware,
	}
}

// RegisterRoutes registers the referral routes. Code validation is
// public so the signup form can check a code before an account exists.
func (c *ReferralController) RegisterRoutes(router *gin.RouterGroup) {
	referral := router.Group("/referral")
	{
		referral.POST("/validate", c.ValidateCode)

		authed := referral.Group("")
		authed.Use(c.authMiddleware.Authenticate())
		{
			authed.GET("", c.Overview)
			authed.POST("/first-order", c.CompleteFirstOrder)
			authed.POST("/rewards/claim", c.ClaimReward)
			authed.PUT("/settings", c.UpdateSettings)
		}
	}
}

// Overview returns the caller's referral dashboard
// @Summary Referral overview
// @Tags Referral
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.ApiResponse[response.ReferralOverviewResponse]
// @Router /api/v1/referral [get]
func (c *ReferralController) Overview(ctx *gin.Context) {
	userID := c.securityService.GetCurrentUserID(ctx)
	if userID == 0 {
		ctx.JSON(http.StatusUnauthorized, response.NewError[any](msgNotAuthenticated))
		return
	}

	overview, err := c.referralService.Overview(ctx.Request.Context(), userID)
	if err != nil {
		switch err {
		case service.ErrUserNotFound:
			ctx.JSON(http.StatusNotFound, response.NewError[any](msgUserNotFound))
		default:
			ctx.JSON(http.StatusInternalServerError, response.NewError[any]("failed to fetch referral overview"))
		}
		return
	}

	ctx.JSON(http.StatusOK, response.NewSuccessWithData(overview))
}

// ValidateCode checks whether a referral code can be used
// @Summary Validate referral code
// @Tags Referral
// @Accept json
// @Produce json
// @Param request body request.ValidateReferralCodeRequest true "Code"
// @Success 200 {object} response.ApiResponse[response.ValidateCodeResponse]
// @Router /api/v1/referral/validate [post]
func (c *ReferralController) ValidateCode(ctx *gin.Context) {
	var req request.ValidateReferralCodeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, response.NewErrorWithDetails[any](msgValidationFailed, err.Error()))
		return
	}

	result, err := c.referralService.ValidateCode(ctx.Request.Context(), req.Code)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, response.NewError[any]("failed to validate code"))
		return
	}

	ctx.JSON(http.StatusOK, response.NewSuccessWithData(result))
}

// CompleteFirstOrder marks the caller's first order complete and grants
// the first-order bonuses
// @Summary Complete first order
// @Tags Referral
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.ApiResponse[any]
// @Router /api/v1/referral/first-order [post]
func (c *ReferralController) CompleteFirstOrder(ctx *gin.Context) {
	userID := c.securityService.GetCurrentUserID(ctx)
	if userID == 0 {
		ctx.JSON(http.StatusUnauthorized, response.NewError[any](msgNotAuthenticated))
		return
	}

	if err := c.referralService.CompleteFirstOrder(ctx.Request.Context(), userID); err != nil {
		switch err {
		case service.ErrReferralEntryNotFound:
			ctx.JSON(http.StatusNotFound, response.NewError[any]("no pending referral to complete"))
		default:
			ctx.JSON(http.StatusInternalServerError, response.NewError[any]("failed to complete first order"))
		}
		return
	}

	ctx.JSON(http.StatusOK, response.NewSuccess[any](nil, "First order bonuses granted"))
}

// ClaimReward claims one reward and credits its loyalty points
// @Summary Claim reward
// @Tags Referral
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request.ClaimRewardRequest true "Reward"
// @Success 200 {object} response.ApiResponse[response.ClaimRewardResponse]
// @Router /api/v1/referral/rewards/claim [post]
func (c *ReferralController) ClaimReward(ctx *gin.Context) {
	userID := c.securityService.GetCurrentUserID(ctx)
	if userID == 0 {
		ctx.JSON(http.StatusUnauthorized, response.NewError[any](msgNotAuthenticated))
		return
	}

	var req request.ClaimRewardRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, response.NewErrorWithDetails[any](msgValidationFailed, err.Error()))
		return
	}

	result, err := c.referralService.ClaimReward(ctx.Request.Context(), userID, &req)
	if err != nil {
		switch err {
		case service.ErrRewardNotFound:
			ctx.JSON(http.StatusNotFound, response.NewError[any]("reward not found"))
		case service.ErrRewardAlreadyClaimed:
			ctx.JSON(http.StatusConflict, response.NewError[any]("reward already claimed"))
		case service.ErrRewardExpired:
			ctx.JSON(http.StatusGone, response.NewError[any]("reward has expired"))
		default:
			ctx.JSON(http.StatusInternalServerError, response.NewError[any]("failed to claim reward"))
		}
		return
	}

	ctx.JSON(http.StatusOK, response.NewSuccess(result, "Reward claimed successfully"))
}

// UpdateSettings stores the caller's sharing preferences
// @Summary Update referral settings
// @Tags Referral
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request.ReferralSettingsRequest true "Settings"
// @Success 200 {object} response.ApiResponse[response.ReferralSettingsResponse]
// @Router /api/v1/referral/settings [put]
func (c *ReferralController) UpdateSettings(ctx *gin.Context) {
	userID := c.securityService.GetCurrentUserID(ctx)
	if userID == 0 {
		ctx.JSON(http.StatusUnauthorized, response.NewError[any](msgNotAuthenticated))
		return
	}

	var req request.ReferralSettingsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, response.NewErrorWithDetails[any](msgValidationFailed, err.Error()))
		return
	}

	settings, err := c.referralService.UpdateSettings(ctx.Request.Context(), userID, &req)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, response.NewError[any]("failed to update settings"))
		return
	}

	ctx.JSON(http.StatusOK, response.NewSuccess(settings, "Settings updated successfully"))
}
