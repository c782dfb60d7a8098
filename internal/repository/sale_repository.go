package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/invenpulse/internal/domain"
)

// SaleRepository defines persistence access for sales records.
type SaleRepository interface {
	Create(ctx context.Context, sale *domain.Sale) error
	List(ctx context.Context) ([]domain.Sale, error)
	Count(ctx context.Context) (int64, error)
}

type saleRepository struct {
	pool *pgxpool.Pool
}

// NewSaleRepository returns a Postgres-backed implementation.
func NewSaleRepository(pool *pgxpool.Pool) SaleRepository {
	return &saleRepository{pool: pool}
}

func (r *saleRepository) Create(ctx context.Context, sale *domain.Sale) error {
	const query = `
        INSERT INTO sales (product_id, quantity, total, sold_by, sold_at)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		sale.ProductID,
		sale.Quantity,
		sale.Total,
		sale.SoldBy,
		sale.SoldAt,
	).Scan(&sale.ID, &sale.CreatedAt)
}

func (r *saleRepository) List(ctx context.Context) ([]domain.Sale, error) {
	const query = `
        SELECT id, product_id, quantity, total, sold_by, sold_at, created_at
        FROM sales ORDER BY sold_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sales []domain.Sale
	for rows.Next() {
		var sale domain.Sale
		if err := rows.Scan(
			&sale.ID,
			&sale.ProductID,
			&sale.Quantity,
			&sale.Total,
			&sale.SoldBy,
			&sale.SoldAt,
			&sale.CreatedAt,
		); err != nil {
			return nil, err
		}
		sales = append(sales, sale)
	}
	return sales, rows.Err()
}

func (r *saleRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM sales`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
