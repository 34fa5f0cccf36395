package handlers

import (
	"context"
	"log/slog"
	"strconv"

	domainerrors "payout/internal/errors"
	"payout/internal/models"
	"payout/internal/repositories/cache"
	"payout/internal/services/payment"
	"payout/internal/utils/pagination"
	"payout/internal/utils/response"
	"payout/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

const IdempotencyKeyHeader = "Idempotency-Key"

type PaymentService interface {
	AcceptPayment(ctx context.Context, storeID uint, amount decimal.Decimal) (*models.Payment, error)
	ProcessPayments(ctx context.Context, ids []uint) ([]models.Payment, error)
	CompletePayments(ctx context.Context, ids []uint) ([]models.Payment, error)
	GetPayment(ctx context.Context, id uint) (*models.Payment, error)
	ListPayments(ctx context.Context, storeID uint, status models.PaymentStatus, limit, offset int) ([]models.Payment, int64, error)
}

// IdempotencyStore remembers which payment an Idempotency-Key produced.
type IdempotencyStore interface {
	ReserveKey(ctx context.Context, key string) (bool, string, error)
	CompleteKey(ctx context.Context, key, value string) error
	ReleaseKey(ctx context.Context, key string) error
}

type PaymentHandler struct {
	payments PaymentService
	keys     IdempotencyStore
	log      *slog.Logger
}

// NewPaymentHandler creates the payment handler. keys may be nil, in which
// case the Idempotency-Key header is ignored.
func NewPaymentHandler(payments PaymentService, keys IdempotencyStore, log *slog.Logger) *PaymentHandler {
	return &PaymentHandler{payments: payments, keys: keys, log: log}
}

type batchInput struct {
	PaymentIDs []uint `json:"payment_ids"`
}

func (h *PaymentHandler) AcceptPayment(c *fiber.Ctx) error {
	var input struct {
		StoreID uint            `json:"store_id"`
		Amount  decimal.Decimal `json:"amount"`
	}
	if err := c.BodyParser(&input); err != nil {
		return invalidBody(c)
	}

	v := validation.New()
	v.Payment(input.StoreID, input.Amount)
	key := c.Get(IdempotencyKeyHeader)
	v.MaxLength("idempotency_key", key, validation.MaxIdempotencyKeyLength)
	if err := v.Err(); err != nil {
		return handleError(c, h.log, err)
	}

	ctx := c.UserContext()
	if key == "" || h.keys == nil {
		p, err := h.payments.AcceptPayment(ctx, input.StoreID, input.Amount)
		if err != nil {
			return handleError(c, h.log, err)
		}
		return response.Created(c, "Payment accepted", p)
	}

	reserved, existing, err := h.keys.ReserveKey(ctx, key)
	if err != nil {
		h.log.Error("idempotency store unavailable", "error", err)
		return response.Error(c, fiber.StatusServiceUnavailable, "Idempotency store unavailable")
	}
	if !reserved {
		return h.replay(c, existing)
	}

	p, err := h.payments.AcceptPayment(ctx, input.StoreID, input.Amount)
	if err != nil {
		if relErr := h.keys.ReleaseKey(ctx, key); relErr != nil {
			h.log.Warn("failed to release idempotency key", "error", relErr)
		}
		return handleError(c, h.log, err)
	}

	if err := h.keys.CompleteKey(ctx, key, strconv.FormatUint(uint64(p.ID), 10)); err != nil {
		h.log.Warn("failed to record idempotency key", "payment_id", p.ID, "error", err)
	}
	return response.Created(c, "Payment accepted", p)
}

func (h *PaymentHandler) replay(c *fiber.Ctx, existing string) error {
	if cache.IsPending(existing) {
		return handleError(c, h.log, domainerrors.ErrConflict.Withf("a request with this idempotency key is in progress"))
	}

	id, err := strconv.ParseUint(existing, 10, 64)
	if err != nil {
		return handleError(c, h.log, err)
	}
	p, err := h.payments.GetPayment(c.UserContext(), uint(id))
	if err != nil {
		return handleError(c, h.log, err)
	}
	c.Set("Idempotent-Replayed", "true")
	return response.Success(c, "Payment already accepted", p)
}

func (h *PaymentHandler) ProcessPayments(c *fiber.Ctx) error {
	return h.advance(c, h.payments.ProcessPayments, "Payments processed")
}

func (h *PaymentHandler) CompletePayments(c *fiber.Ctx) error {
	return h.advance(c, h.payments.CompletePayments, "Payments completed")
}

func (h *PaymentHandler) advance(c *fiber.Ctx, fn func(context.Context, []uint) ([]models.Payment, error), message string) error {
	var input batchInput
	if err := c.BodyParser(&input); err != nil {
		return invalidBody(c)
	}

	v := validation.New()
	v.PaymentBatch(input.PaymentIDs)
	if err := v.Err(); err != nil {
		return handleError(c, h.log, err)
	}

	updated, err := fn(c.UserContext(), input.PaymentIDs)
	if err != nil {
		return handleError(c, h.log, err)
	}
	return response.Success(c, message, fiber.Map{"payments": updated})
}

func (h *PaymentHandler) GetPayment(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return handleError(c, h.log, err)
	}

	p, err := h.payments.GetPayment(c.UserContext(), id)
	if err != nil {
		return handleError(c, h.log, err)
	}
	return response.Success(c, "Payment retrieved", p)
}

func (h *PaymentHandler) ListStorePayments(c *fiber.Ctx) error {
	storeID, err := idParam(c, "id")
	if err != nil {
		return handleError(c, h.log, err)
	}
	status, err := payment.ParseStatus(c.Query("status"))
	if err != nil {
		return handleError(c, h.log, err)
	}

	p := pagination.ParseFromRequest(c)
	payments, total, err := h.payments.ListPayments(c.UserContext(), storeID, status, p.Limit, p.Offset)
	if err != nil {
		return handleError(c, h.log, err)
	}
	p.Total = total
	return c.JSON(pagination.Response(p, payments))
}
