package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/invenpulse/internal/api/dto"
	"github.com/spec-kit/invenpulse/internal/auth"
	"github.com/spec-kit/invenpulse/internal/service"
	apperrors "github.com/spec-kit/invenpulse/pkg/util"
)

// SalesHandler exposes sales endpoints.
type SalesHandler struct {
	sales *service.SaleService
}

// NewSalesHandler constructs handler.
func NewSalesHandler(sales *service.SaleService) *SalesHandler {
	return &SalesHandler{sales: sales}
}

// List handles GET /api/sales.
func (h *SalesHandler) List(c *fiber.Ctx) error {
	sales, err := h.sales.List(c.UserContext())
	if err != nil {
		return apperrors.MapError(err)
	}

	out := make([]dto.SaleResponse, 0, len(sales))
	for i := range sales {
		out = append(out, dto.SaleFromDomain(&sales[i]))
	}
	return c.JSON(fiber.Map{"data": out})
}

// Count handles GET /api/sales/count.
func (h *SalesHandler) Count(c *fiber.Ctx) error {
	count, err := h.sales.Count(c.UserContext())
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"count": count}})
}

// Record handles POST /api/sales.
func (h *SalesHandler) Record(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewNoToken()
	}

	var req dto.SaleRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.ProductID == "" {
		return apperrors.NewValidationError("product_id required", nil)
	}

	sale, err := h.sales.Record(c.UserContext(), req.ProductID, req.Quantity, identity.UserID)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.SaleFromDomain(sale)})
}
