package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/invenpulse/internal/domain"
)

// ProductRepository defines persistence access for inventory items.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
}

type productRepository struct {
	pool *pgxpool.Pool
}

// NewProductRepository returns a Postgres-backed implementation.
func NewProductRepository(pool *pgxpool.Pool) ProductRepository {
	return &productRepository{pool: pool}
}

func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	const query = `
        INSERT INTO products (name, sku, quantity, unit_price)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		product.Name,
		product.SKU,
		product.Quantity,
		product.UnitPrice,
	).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
}

func (r *productRepository) Update(ctx context.Context, product *domain.Product) error {
	const query = `
        UPDATE products SET name=$1, sku=$2, quantity=$3, unit_price=$4, updated_at=NOW()
        WHERE id=$5`

	cmd, err := r.pool.Exec(ctx, query,
		product.Name,
		product.SKU,
		product.Quantity,
		product.UnitPrice,
		product.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *productRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *productRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	const query = `
        SELECT id, name, sku, quantity, unit_price, created_at, updated_at
        FROM products WHERE id=$1`

	var product domain.Product
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&product.ID,
		&product.Name,
		&product.SKU,
		&product.Quantity,
		&product.UnitPrice,
		&product.CreatedAt,
		&product.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) List(ctx context.Context) ([]domain.Product, error) {
	const query = `
        SELECT id, name, sku, quantity, unit_price, created_at, updated_at
        FROM products ORDER BY name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var product domain.Product
		if err := rows.Scan(
			&product.ID,
			&product.Name,
			&product.SKU,
			&product.Quantity,
			&product.UnitPrice,
			&product.CreatedAt,
			&product.UpdatedAt,
		); err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, rows.Err()
}
