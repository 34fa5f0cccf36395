package handlers

import (
	"errors"
	"log/slog"

	domainerrors "payout/internal/errors"
	"payout/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

func statusFor(code string) int {
	switch code {
	case domainerrors.CodeNotFound:
		return fiber.StatusNotFound
	case domainerrors.CodeInvalidInput:
		return fiber.StatusBadRequest
	case domainerrors.CodeInvalidTransition, domainerrors.CodeConflict:
		return fiber.StatusConflict
	}
	return fiber.StatusInternalServerError
}

// handleError writes domain errors with their code and hides everything else
// behind a 500.
func handleError(c *fiber.Ctx, log *slog.Logger, err error) error {
	var de *domainerrors.DomainError
	if errors.As(err, &de) {
		return response.CodedError(c, statusFor(de.Code), de.Code, err.Error())
	}

	log.Error("request failed",
		"method", c.Method(),
		"path", c.Path(),
		"error", err,
	)
	return response.ServerError(c, "Internal server error")
}

func invalidBody(c *fiber.Ctx) error {
	return response.CodedError(c, fiber.StatusBadRequest, domainerrors.CodeInvalidInput, "Invalid request format")
}

// idParam reads a positive numeric path parameter.
func idParam(c *fiber.Ctx, name string) (uint, error) {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0, domainerrors.ErrInvalidInput.Withf("%s must be a positive integer", name)
	}
	return uint(id), nil
}
