package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/location-quest/internal/pkg/utils"
	"github.com/location-quest/internal/usecase"
	"github.com/location-quest/internal/usecase/dto"
	"go.uber.org/zap"
)

type UserHandler struct {
	userUC *usecase.UserUseCase
	logger *zap.Logger
}

func NewUserHandler(userUC *usecase.UserUseCase, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		userUC: userUC,
		logger: logger,
	}
}

// List godoc
// @Summary List users
// @Tags Users
// @Produce json
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(100)
// @Success 200 {object} utils.SuccessResponse{data=[]dto.UserResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	var q dto.PageQuery
	if err := bindQuery(c, &q); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.userUC.List(c.Context(), q)
	if err != nil {
		return fail(c, h.logger, err)
	}
	return utils.SendList(c, result.Count, result.Users)
}

// Profile godoc
// @Summary Get a user's profile and lifetime totals
// @Tags Users
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} utils.SuccessResponse{data=dto.UserProfileResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/users/{userId}/profile [get]
func (h *UserHandler) Profile(c *fiber.Ctx) error {
	userID, err := pathUUID(c, "userId", "user")
	if err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.userUC.Profile(c.Context(), userID)
	if err != nil {
		return fail(c, h.logger, err)
	}
	return utils.SendSuccess(c, result)
}
