package domain

import "time"

// Product is an inventory item tracked by the service.
type Product struct {
	ID        string
	Name      string
	SKU       string
	Quantity  int
	UnitPrice float64
	CreatedAt time.Time
	UpdatedAt time.Time
}
