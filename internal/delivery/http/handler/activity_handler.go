package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/location-quest/internal/pkg/utils"
	"github.com/location-quest/internal/usecase"
	"github.com/location-quest/internal/usecase/dto"
	"go.uber.org/zap"
)

type ActivityHandler struct {
	activityUC *usecase.ActivityUseCase
	logger     *zap.Logger
}

func NewActivityHandler(activityUC *usecase.ActivityUseCase, logger *zap.Logger) *ActivityHandler {
	return &ActivityHandler{
		activityUC: activityUC,
		logger:     logger,
	}
}

// Start godoc
// @Summary Start an activity
// @Description Creates an in-progress activity with its first track point
// @Tags Activities
// @Accept json
// @Produce json
// @Param userId path string true "User ID"
// @Param request body dto.StartActivityRequest true "Start time and location"
// @Success 201 {object} utils.SuccessResponse{data=dto.StartActivityResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/users/{userId}/activities/start [post]
func (h *ActivityHandler) Start(c *fiber.Ctx) error {
	userID, err := pathUUID(c, "userId", "user")
	if err != nil {
		return utils.SendError(c, err)
	}

	var req dto.StartActivityRequest
	if err := bindBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.activityUC.Start(c.Context(), userID, req)
	if err != nil {
		return fail(c, h.logger, err)
	}
	return utils.SendCreated(c, result)
}

// Track godoc
// @Summary Upload track points
// @Tags Activities
// @Accept json
// @Produce json
// @Param userId path string true "User ID"
// @Param activityId path string true "Activity ID"
// @Param request body dto.TrackActivityRequest true "Track points"
// @Success 200 {object} utils.MessageResponse{data=dto.TrackActivityResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/users/{userId}/activities/{activityId}/track [post]
func (h *ActivityHandler) Track(c *fiber.Ctx) error {
	userID, err := pathUUID(c, "userId", "user")
	if err != nil {
		return utils.SendError(c, err)
	}
	activityID, err := pathUUID(c, "activityId", "activity")
	if err != nil {
		return utils.SendError(c, err)
	}

	var req dto.TrackActivityRequest
	if err := bindBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.activityUC.Track(c.Context(), userID, activityID, req)
	if err != nil {
		return fail(c, h.logger, err)
	}
	return utils.SendMessage(c, "Track points added successfully", result)
}

// End godoc
// @Summary End an activity
// @Description Computes distance, duration and speed, collects locations passed on the route and evaluates badges
// @Tags Activities
// @Accept json
// @Produce json
// @Param userId path string true "User ID"
// @Param activityId path string true "Activity ID"
// @Param request body dto.EndActivityRequest true "End time and location"
// @Success 200 {object} utils.SuccessResponse{data=dto.EndActivityResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/users/{userId}/activities/{activityId}/end [post]
func (h *ActivityHandler) End(c *fiber.Ctx) error {
	userID, err := pathUUID(c, "userId", "user")
	if err != nil {
		return utils.SendError(c, err)
	}
	activityID, err := pathUUID(c, "activityId", "activity")
	if err != nil {
		return utils.SendError(c, err)
	}

	var req dto.EndActivityRequest
	if err := bindBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.activityUC.End(c.Context(), userID, activityID, req)
	if err != nil {
		return fail(c, h.logger, err)
	}
	return utils.SendSuccess(c, result)
}

// CollectNFC godoc
// @Summary Collect a location by NFC tap
// @Tags Activities
// @Accept json
// @Produce json
// @Param userId path string true "User ID"
// @Param activityId path string true "Activity ID"
// @Param request body dto.CollectNFCRequest true "Scanned NFC ID"
// @Success 200 {object} utils.SuccessResponse{data=dto.CollectNFCResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/users/{userId}/activities/{activityId}/collect/nfc [post]
func (h *ActivityHandler) CollectNFC(c *fiber.Ctx) error {
	userID, err := pathUUID(c, "userId", "user")
	if err != nil {
		return utils.SendError(c, err)
	}
	activityID, err := pathUUID(c, "activityId", "activity")
	if err != nil {
		return utils.SendError(c, err)
	}

	var req dto.CollectNFCRequest
	if err := bindBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.activityUC.CollectNFC(c.Context(), userID, activityID, req)
	if err != nil {
		return fail(c, h.logger, err)
	}
	return utils.SendSuccess(c, result)
}

// List godoc
// @Summary List a user's activities
// @Tags Activities
// @Produce json
// @Param userId path string true "User ID"
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(20)
// @Param startDate query string false "Earliest end time (RFC 3339)"
// @Param endDate query string false "Latest end time (RFC 3339)"
// @Success 200 {object} utils.SuccessResponse{data=dto.ActivityListResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/users/{userId}/activities [get]
func (h *ActivityHandler) List(c *fiber.Ctx) error {
	userID, err := pathUUID(c, "userId", "user")
	if err != nil {
		return utils.SendError(c, err)
	}

	var q dto.ListActivitiesQuery
	if err := bindQuery(c, &q); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.activityUC.List(c.Context(), userID, q)
	if err != nil {
		return fail(c, h.logger, err)
	}
	return utils.SendSuccess(c, result)
}

// Detail godoc
// @Summary Get an activity
// @Tags Activities
// @Produce json
// @Param userId path string true "User ID"
// @Param activityId path string true "Activity ID"
// @Success 200 {object} utils.SuccessResponse{data=dto.ActivityDetailResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/users/{userId}/activities/{activityId} [get]
func (h *ActivityHandler) Detail(c *fiber.Ctx) error {
	userID, err := pathUUID(c, "userId", "user")
	if err != nil {
		return utils.SendError(c, err)
	}
	activityID, err := pathUUID(c, "activityId", "activity")
	if err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.activityUC.Detail(c.Context(), userID, activityID)
	if err != nil {
		return fail(c, h.logger, err)
	}
	return utils.SendSuccess(c, result)
}
