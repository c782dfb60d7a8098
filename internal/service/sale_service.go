package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/invenpulse/internal/domain"
	"github.com/spec-kit/invenpulse/internal/events"
	"github.com/spec-kit/invenpulse/internal/repository"
	apperrors "github.com/spec-kit/invenpulse/pkg/util"
)

// SaleService records sales against inventory items.
type SaleService struct {
	sales      repository.SaleRepository
	products   repository.ProductRepository
	dispatcher events.Dispatcher
}

// NewSaleService builds the service.
func NewSaleService(sales repository.SaleRepository, products repository.ProductRepository, dispatcher events.Dispatcher) *SaleService {
	return &SaleService{sales: sales, products: products, dispatcher: dispatcher}
}

// List returns all sales, newest first.
func (s *SaleService) List(ctx context.Context) ([]domain.Sale, error) {
	return s.sales.List(ctx)
}

// Count returns the total number of sales.
func (s *SaleService) Count(ctx context.Context) (int64, error) {
	return s.sales.Count(ctx)
}

// Record creates a sale for an existing product, pricing it from the current
// unit price, and decrements stock.
func (s *SaleService) Record(ctx context.Context, productID string, quantity int, soldBy string) (*domain.Sale, error) {
	if quantity <= 0 {
		return nil, apperrors.NewValidationError("quantity must be positive", nil)
	}

	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("product", nil)
		}
		return nil, err
	}
	if product.Quantity < quantity {
		return nil, apperrors.NewValidationError("insufficient stock", map[string]any{
			"available": product.Quantity,
			"requested": quantity,
		})
	}

	sale := &domain.Sale{
		ProductID: product.ID,
		Quantity:  quantity,
		Total:     product.UnitPrice * float64(quantity),
		SoldBy:    soldBy,
		SoldAt:    time.Now(),
	}
	if err := s.sales.Create(ctx, sale); err != nil {
		return nil, err
	}

	product.Quantity -= quantity
	if err := s.products.Update(ctx, product); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventSaleRecorded,
			Subject:   soldBy,
			Timestamp: time.Now(),
			Payload: events.SaleRecordedPayload{
				SaleID:    sale.ID,
				ProductID: sale.ProductID,
				Quantity:  sale.Quantity,
				Total:     sale.Total,
			},
		})
	}
	return sale, nil
}
