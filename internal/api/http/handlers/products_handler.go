package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/invenpulse/internal/api/dto"
	"github.com/spec-kit/invenpulse/internal/domain"
	"github.com/spec-kit/invenpulse/internal/service"
	apperrors "github.com/spec-kit/invenpulse/pkg/util"
)

// ProductsHandler exposes inventory endpoints.
type ProductsHandler struct {
	products *service.ProductService
}

// NewProductsHandler constructs handler.
func NewProductsHandler(products *service.ProductService) *ProductsHandler {
	return &ProductsHandler{products: products}
}

// List handles GET /api/products.
func (h *ProductsHandler) List(c *fiber.Ctx) error {
	products, err := h.products.List(c.UserContext())
	if err != nil {
		return apperrors.MapError(err)
	}

	out := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, dto.ProductFromDomain(&products[i]))
	}
	return c.JSON(fiber.Map{"data": out})
}

// Get handles GET /api/products/:id.
func (h *ProductsHandler) Get(c *fiber.Ctx) error {
	product, err := h.products.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": dto.ProductFromDomain(product)})
}

// Create handles POST /api/products.
func (h *ProductsHandler) Create(c *fiber.Ctx) error {
	var req dto.ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Name == "" || req.SKU == "" {
		return apperrors.NewValidationError("name and sku required", nil)
	}

	product := &domain.Product{
		Name:      req.Name,
		SKU:       req.SKU,
		Quantity:  req.Quantity,
		UnitPrice: req.UnitPrice,
	}
	if err := h.products.Create(c.UserContext(), product); err != nil {
		return apperrors.MapError(err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.ProductFromDomain(product)})
}

// Update handles PUT /api/products/:id.
func (h *ProductsHandler) Update(c *fiber.Ctx) error {
	var req dto.ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	product := &domain.Product{
		ID:        c.Params("id"),
		Name:      req.Name,
		SKU:       req.SKU,
		Quantity:  req.Quantity,
		UnitPrice: req.UnitPrice,
	}
	if err := h.products.Update(c.UserContext(), product); err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": dto.ProductFromDomain(product)})
}

// Delete handles DELETE /api/products/:id.
func (h *ProductsHandler) Delete(c *fiber.Ctx) error {
	if err := h.products.Delete(c.UserContext(), c.Params("id")); err != nil {
		return apperrors.MapError(err)
	}
	return c.SendStatus(http.StatusNoContent)
}
