package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/location-quest/internal/pkg/utils"
	"github.com/location-quest/internal/usecase"
	"github.com/location-quest/internal/usecase/dto"
	"go.uber.org/zap"
)

type LocationHandler struct {
	locationUC *usecase.LocationUseCase
	logger     *zap.Logger
}

func NewLocationHandler(locationUC *usecase.LocationUseCase, logger *zap.Logger) *LocationHandler {
	return &LocationHandler{
		locationUC: locationUC,
		logger:     logger,
	}
}

// List godoc
// @Summary List locations
// @Tags Locations
// @Produce json
// @Param badge query string false "Only locations required by this badge"
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(100)
// @Success 200 {object} utils.SuccessResponse{data=[]dto.LocationResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/locations [get]
func (h *LocationHandler) List(c *fiber.Ctx) error {
	var q dto.ListLocationsQuery
	if err := bindQuery(c, &q); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.locationUC.List(c.Context(), q)
	if err != nil {
		return fail(c, h.logger, err)
	}
	return utils.SendList(c, result.Count, result.Locations)
}

// Create godoc
// @Summary Create a location
// @Description The administrative area is resolved by reverse geocoding before insert
// @Tags Locations
// @Accept json
// @Produce json
// @Param request body dto.CreateLocationRequest true "Location"
// @Success 201 {object} utils.SuccessResponse{data=dto.LocationResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/locations [post]
func (h *LocationHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateLocationRequest
	if err := bindBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.locationUC.Create(c.Context(), req)
	if err != nil {
		return fail(c, h.logger, err)
	}
	return utils.SendCreated(c, result)
}

// Update godoc
// @Summary Update a location
// @Tags Locations
// @Accept json
// @Produce json
// @Param locationId path string true "Location ID"
// @Param request body dto.UpdateLocationRequest true "Fields to change"
// @Success 200 {object} utils.SuccessResponse{data=dto.LocationResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/locations/{locationId} [patch]
func (h *LocationHandler) Update(c *fiber.Ctx) error {
	id, err := pathUUID(c, "locationId", "location")
	if err != nil {
		return utils.SendError(c, err)
	}

	var req dto.UpdateLocationRequest
	if err := bindBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.locationUC.Update(c.Context(), id, req)
	if err != nil {
		return fail(c, h.logger, err)
	}
	return utils.SendSuccess(c, result)
}

// Delete godoc
// @Summary Delete a location
// @Tags Locations
// @Produce json
// @Param locationId path string true "Location ID"
// @Success 200 {object} utils.MessageResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/locations/{locationId} [delete]
func (h *LocationHandler) Delete(c *fiber.Ctx) error {
	id, err := pathUUID(c, "locationId", "location")
	if err != nil {
		return utils.SendError(c, err)
	}

	if err := h.locationUC.Delete(c.Context(), id); err != nil {
		return fail(c, h.logger, err)
	}
	return utils.SendMessage(c, "Location deleted successfully", nil)
}

// EnableNFC godoc
// @Summary Enable NFC collection for a location
// @Description Assigns the next nfc-NNN identifier when the location has none
// @Tags Locations
// @Produce json
// @Param locationId path string true "Location ID"
// @Success 200 {object} utils.SuccessResponse{data=dto.LocationResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/locations/{locationId}/enable-nfc [post]
func (h *LocationHandler) EnableNFC(c *fiber.Ctx) error {
	id, err := pathUUID(c, "locationId", "location")
	if err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.locationUC.EnableNFC(c.Context(), id)
	if err != nil {
		return fail(c, h.logger, err)
	}
	return utils.SendSuccess(c, result)
}

// UserMap godoc
// @Summary Locations on a user's map
// @Tags Locations
// @Produce json
// @Param userId path string true "User ID"
// @Param badge query string false "Only locations required by this badge"
// @Param bounds query string false "lat1,lng1,lat2,lng2"
// @Success 200 {object} utils.SuccessResponse{data=dto.UserMapResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/users/{userId}/map [get]
func (h *LocationHandler) UserMap(c *fiber.Ctx) error {
	userID, err := pathUUID(c, "userId", "user")
	if err != nil {
		return utils.SendError(c, err)
	}

	var q dto.UserMapQuery
	if err := bindQuery(c, &q); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.locationUC.UserMap(c.Context(), userID, q)
	if err != nil {
		return fail(c, h.logger, err)
	}
	return utils.SendList(c, len(result.Locations), result)
}
