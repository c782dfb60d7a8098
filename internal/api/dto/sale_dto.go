package dto

import (
	"time"

	"github.com/spec-kit/invenpulse/internal/domain"
)

// SaleRequest payload for recording a sale.
type SaleRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// SaleResponse is the public view of a sale.
type SaleResponse struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	Quantity  int       `json:"quantity"`
	Total     float64   `json:"total"`
	SoldBy    string    `json:"sold_by"`
	SoldAt    time.Time `json:"sold_at"`
}

// SaleFromDomain maps a domain sale.
func SaleFromDomain(sale *domain.Sale) SaleResponse {
	return SaleResponse{
		ID:        sale.ID,
		ProductID: sale.ProductID,
		Quantity:  sale.Quantity,
		Total:     sale.Total,
		SoldBy:    sale.SoldBy,
		SoldAt:    sale.SoldAt,
	}
}
