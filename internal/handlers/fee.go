package handlers

import (
	"context"
	"log/slog"

	"payout/internal/models"
	"payout/internal/utils/response"
	"payout/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type FeeScheduler interface {
	Current() models.FeeSchedule
	Set(ctx context.Context, a, b, d decimal.Decimal) (models.FeeSchedule, error)
}

type FeeHandler struct {
	schedule FeeScheduler
	log      *slog.Logger
}

func NewFeeHandler(schedule FeeScheduler, log *slog.Logger) *FeeHandler {
	return &FeeHandler{schedule: schedule, log: log}
}

func (h *FeeHandler) SetFees(c *fiber.Ctx) error {
	var input struct {
		A decimal.NullDecimal `json:"a"`
		B decimal.NullDecimal `json:"b"`
		D decimal.NullDecimal `json:"d"`
	}
	if err := c.BodyParser(&input); err != nil {
		return invalidBody(c)
	}

	v := validation.New()
	v.FeeSchedule(input.A, input.B, input.D)
	if err := v.Err(); err != nil {
		return handleError(c, h.log, err)
	}

	schedule, err := h.schedule.Set(c.UserContext(), input.A.Decimal, input.B.Decimal, input.D.Decimal)
	if err != nil {
		return handleError(c, h.log, err)
	}
	return response.Success(c, "Fee schedule updated", schedule)
}

func (h *FeeHandler) GetFees(c *fiber.Ctx) error {
	return response.Success(c, "Fee schedule retrieved", h.schedule.Current())
}
