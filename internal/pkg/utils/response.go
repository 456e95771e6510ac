package utils

import (
	stderrors "errors"

	"github.com/gofiber/fiber/v2"
	"github.com/location-quest/internal/pkg/errors"
)

type SuccessResponse struct {
	Success bool        `json:"success"`
	Count   *int        `json:"count,omitempty"`
	Data    interface{} `json:"data"`
}

type MessageResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type ErrorResponse struct {
	Success bool             `json:"success"`
	Error   *errors.AppError `json:"error"`
}

func SendSuccess(c *fiber.Ctx, data interface{}) error {
	return c.JSON(SuccessResponse{Success: true, Data: data})
}

func SendCreated(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(SuccessResponse{Success: true, Data: data})
}

// SendList writes {"success":true,"count":n,"data":items}.
func SendList(c *fiber.Ctx, count int, data interface{}) error {
	return c.JSON(SuccessResponse{Success: true, Count: &count, Data: data})
}

func SendMessage(c *fiber.Ctx, message string, data interface{}) error {
	return c.JSON(MessageResponse{Success: true, Message: message, Data: data})
}

// SendError renders AppErrors as-is and hides everything else behind a
// generic 500.
func SendError(c *fiber.Ctx, err error) error {
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		return c.Status(appErr.StatusCode).JSON(ErrorResponse{
			Success: false,
			Error:   appErr,
		})
	}

	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Success: false,
		Error:   errors.ErrInternalServer,
	})
}

// TotalPages returns ceil(total/limit), 0 when limit is not positive.
func TotalPages(total, limit int) int {
	if limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}
