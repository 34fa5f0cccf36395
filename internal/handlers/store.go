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

type StoreRegistry interface {
	Register(ctx context.Context, name string, feeC decimal.Decimal) (*models.Store, error)
	Get(ctx context.Context, id uint) (*models.Store, error)
	List(ctx context.Context) ([]models.Store, error)
}

type StoreHandler struct {
	stores StoreRegistry
	log    *slog.Logger
}

func NewStoreHandler(stores StoreRegistry, log *slog.Logger) *StoreHandler {
	return &StoreHandler{stores: stores, log: log}
}

func (h *StoreHandler) RegisterStore(c *fiber.Ctx) error {
	var input struct {
		Name string          `json:"name"`
		FeeC decimal.Decimal `json:"fee_c"`
	}
	if err := c.BodyParser(&input); err != nil {
		return invalidBody(c)
	}

	v := validation.New()
	v.Store(input.Name, input.FeeC)
	if err := v.Err(); err != nil {
		return handleError(c, h.log, err)
	}

	store, err := h.stores.Register(c.UserContext(), input.Name, input.FeeC)
	if err != nil {
		return handleError(c, h.log, err)
	}
	return response.Created(c, "Store registered", store)
}

func (h *StoreHandler) GetStore(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return handleError(c, h.log, err)
	}

	store, err := h.stores.Get(c.UserContext(), id)
	if err != nil {
		return handleError(c, h.log, err)
	}
	return response.Success(c, "Store retrieved", store)
}

func (h *StoreHandler) ListStores(c *fiber.Ctx) error {
	stores, err := h.stores.List(c.UserContext())
	if err != nil {
		return handleError(c, h.log, err)
	}
	return response.Success(c, "Stores retrieved", stores)
}
