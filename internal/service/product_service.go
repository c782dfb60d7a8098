package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/invenpulse/internal/domain"
	"github.com/spec-kit/invenpulse/internal/repository"
	apperrors "github.com/spec-kit/invenpulse/pkg/util"
)

// ProductService wraps inventory item persistence.
type ProductService struct {
	products repository.ProductRepository
}

// NewProductService builds the service.
func NewProductService(products repository.ProductRepository) *ProductService {
	return &ProductService{products: products}
}

// List returns all inventory items.
func (s *ProductService) List(ctx context.Context) ([]domain.Product, error) {
	return s.products.List(ctx)
}

// GetByID fetches one item.
func (s *ProductService) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("product", nil)
		}
		return nil, err
	}
	return product, nil
}

// Create adds a new item.
func (s *ProductService) Create(ctx context.Context, product *domain.Product) error {
	if product.Quantity < 0 {
		return apperrors.NewValidationError("quantity must not be negative", nil)
	}
	return s.products.Create(ctx, product)
}

// Update replaces an item's fields.
func (s *ProductService) Update(ctx context.Context, product *domain.Product) error {
	if product.Quantity < 0 {
		return apperrors.NewValidationError("quantity must not be negative", nil)
	}
	if err := s.products.Update(ctx, product); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("product", nil)
		}
		return err
	}
	return nil
}

// Delete removes an item.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	if err := s.products.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("product", nil)
		}
		return err
	}
	return nil
}
