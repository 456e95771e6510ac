package handler

import (
	stderrors "errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/location-quest/internal/pkg/errors"
	"github.com/location-quest/internal/pkg/utils"
	"github.com/location-quest/internal/pkg/validator"
	"go.uber.org/zap"
)

var errInvalidBody = errors.InvalidRequest("Invalid request body")

// pathUUID parses a UUID route parameter; label names it in the error,
// e.g. "user" gives "Invalid user ID format".
func pathUUID(c *fiber.Ctx, param, label string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(param))
	if err != nil {
		return uuid.Nil, errors.InvalidRequest("Invalid " + label + " ID format")
	}
	return id, nil
}

// bindBody decodes and validates a JSON body.
func bindBody(c *fiber.Ctx, dst interface{}) error {
	if err := c.BodyParser(dst); err != nil {
		return errInvalidBody
	}
	return validator.Validate(dst)
}

// bindQuery decodes and validates query parameters.
func bindQuery(c *fiber.Ctx, dst interface{}) error {
	if err := c.QueryParser(dst); err != nil {
		return errors.ErrInvalidRequest
	}
	return validator.Validate(dst)
}

// fail logs unexpected errors before rendering them.
func fail(c *fiber.Ctx, logger *zap.Logger, err error) error {
	var appErr *errors.AppError
	if !stderrors.As(err, &appErr) {
		logger.Error("Request failed",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err))
	}
	return utils.SendError(c, err)
}
