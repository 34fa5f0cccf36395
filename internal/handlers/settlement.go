package handlers

import (
	"context"
	"log/slog"

	"payout/internal/services/settlement"
	"payout/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type PayoutService interface {
	MakePayments(ctx context.Context, storeID uint) (*settlement.Payout, error)
}

type SettlementHandler struct {
	payouts PayoutService
	log     *slog.Logger
}

func NewSettlementHandler(payouts PayoutService, log *slog.Logger) *SettlementHandler {
	return &SettlementHandler{payouts: payouts, log: log}
}

// MakePayments pays out the store's next batch of completed payments.
func (h *SettlementHandler) MakePayments(c *fiber.Ctx) error {
	storeID, err := idParam(c, "id")
	if err != nil {
		return handleError(c, h.log, err)
	}

	payout, err := h.payouts.MakePayments(c.UserContext(), storeID)
	if err != nil {
		return handleError(c, h.log, err)
	}
	if len(payout.Payments) == 0 {
		return response.Success(c, "No payments eligible for payout", payout)
	}
	return response.Success(c, "Payout made", payout)
}
