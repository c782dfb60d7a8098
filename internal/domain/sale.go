package domain

import "time"

// Sale records a quantity of a product sold at a point in time.
type Sale struct {
	ID        string
	ProductID string
	Quantity  int
	Total     float64
	SoldBy    string
	SoldAt    time.Time
	CreatedAt time.Time
}
