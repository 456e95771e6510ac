package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/location-quest/internal/pkg/utils"
	"github.com/location-quest/internal/usecase"
	"github.com/location-quest/internal/usecase/dto"
	"go.uber.org/zap"
)

type BadgeHandler struct {
	badgeUC *usecase.BadgeUseCase
	logger  *zap.Logger
}

func NewBadgeHandler(badgeUC *usecase.BadgeUseCase, logger *zap.Logger) *BadgeHandler {
	return &BadgeHandler{
		badgeUC: badgeUC,
		logger:  logger,
	}
}

// List godoc
// @Summary List badges
// @Tags Badges
// @Produce json
// @Param search query string false "Case-insensitive name search"
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(100)
// @Success 200 {object} utils.SuccessResponse{data=[]dto.BadgeResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/badges [get]
func (h *BadgeHandler) List(c *fiber.Ctx) error {
	var q dto.ListBadgesQuery
	if err := bindQuery(c, &q); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.badgeUC.List(c.Context(), q)
	if err != nil {
		return fail(c, h.logger, err)
	}
	return utils.SendList(c, result.Count, result.Badges)
}

// Create godoc
// @Summary Create a badge
// @Tags Badges
// @Accept json
// @Produce json
// @Param request body dto.CreateBadgeRequest true "Badge"
// @Success 201 {object} utils.SuccessResponse{data=dto.BadgeResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/badges [post]
func (h *BadgeHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateBadgeRequest
	if err := bindBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.badgeUC.Create(c.Context(), req)
	if err != nil {
		return fail(c, h.logger, err)
	}
	return utils.SendCreated(c, result)
}

// Update godoc
// @Summary Update a badge
// @Description Partial update; requiredLocationIds replaces the whole requirement set
// @Tags Badges
// @Accept json
// @Produce json
// @Param badgeId path string true "Badge ID"
// @Param request body dto.UpdateBadgeRequest true "Fields to change"
// @Success 200 {object} utils.SuccessResponse{data=dto.BadgeResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/badges/{badgeId} [patch]
func (h *BadgeHandler) Update(c *fiber.Ctx) error {
	id, err := pathUUID(c, "badgeId", "badge")
	if err != nil {
		return utils.SendError(c, err)
	}

	var req dto.UpdateBadgeRequest
	if err := bindBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.badgeUC.Update(c.Context(), id, req)
	if err != nil {
		return fail(c, h.logger, err)
	}
	return utils.SendSuccess(c, result)
}

// Delete godoc
// @Summary Delete a badge
// @Tags Badges
// @Produce json
// @Param badgeId path string true "Badge ID"
// @Success 200 {object} utils.MessageResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/badges/{badgeId} [delete]
func (h *BadgeHandler) Delete(c *fiber.Ctx) error {
	id, err := pathUUID(c, "badgeId", "badge")
	if err != nil {
		return utils.SendError(c, err)
	}

	if err := h.badgeUC.Delete(c.Context(), id); err != nil {
		return fail(c, h.logger, err)
	}
	return utils.SendMessage(c, "Badge deleted successfully", nil)
}

// UserBadges godoc
// @Summary List a user's badge progress
// @Tags Badges
// @Produce json
// @Param userId path string true "User ID"
// @Param status query string false "locked, in_progress or collected"
// @Success 200 {object} utils.SuccessResponse{data=dto.UserBadgesResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/users/{userId}/badges [get]
func (h *BadgeHandler) UserBadges(c *fiber.Ctx) error {
	userID, err := pathUUID(c, "userId", "user")
	if err != nil {
		return utils.SendError(c, err)
	}

	var q dto.UserBadgesQuery
	if err := bindQuery(c, &q); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.badgeUC.UserBadges(c.Context(), userID, q)
	if err != nil {
		return fail(c, h.logger, err)
	}
	return utils.SendSuccess(c, result)
}

// UserBadgeDetail godoc
// @Summary Get a user's progress on one badge
// @Tags Badges
// @Produce json
// @Param userId path string true "User ID"
// @Param badgeId path string true "Badge ID"
// @Success 200 {object} utils.SuccessResponse{data=dto.UserBadgeDetailResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/users/{userId}/badges/{badgeId} [get]
func (h *BadgeHandler) UserBadgeDetail(c *fiber.Ctx) error {
	userID, err := pathUUID(c, "userId", "user")
	if err != nil {
		return utils.SendError(c, err)
	}
	badgeID, err := pathUUID(c, "badgeId", "badge")
	if err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.badgeUC.UserBadgeDetail(c.Context(), userID, badgeID)
	if err != nil {
		return fail(c, h.logger, err)
	}
	return utils.SendSuccess(c, result)
}
