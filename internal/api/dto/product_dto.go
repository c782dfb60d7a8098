package dto

import (
	"time"

	"github.com/spec-kit/invenpulse/internal/domain"
)

// ProductRequest payload for creating or updating an item.
type ProductRequest struct {
	Name      string  `json:"name"`
	SKU       string  `json:"sku"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// ProductResponse is the public view of an item.
type ProductResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	SKU       string    `json:"sku"`
	Quantity  int       `json:"quantity"`
	UnitPrice float64   `json:"unit_price"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProductFromDomain maps a domain product.
func ProductFromDomain(product *domain.Product) ProductResponse {
	return ProductResponse{
		ID:        product.ID,
		Name:      product.Name,
		SKU:       product.SKU,
		Quantity:  product.Quantity,
		UnitPrice: product.UnitPrice,
		CreatedAt: product.CreatedAt,
		UpdatedAt: product.UpdatedAt,
	}
}
