package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/ihirwe/stockroom/internal/model"
	"github.com/ihirwe/stockroom/internal/storage/db"
)

// ErrNotFound is returned when a row targeted by id does not exist.
var ErrNotFound = errors.New("not found")

type ProductRepository interface {
	WithDB(db db.DB) ProductRepository
	ListAll(ctx context.Context) ([]model.Product, error)
	Create(ctx context.Context, product model.Product) error
	Update(ctx context.Context, product model.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type productRepository struct {
	db db.DB
}

func NewProductRepository(db db.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r productRepository) WithDB(db db.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r productRepository) ListAll(ctx context.Context) ([]model.Product, error) {
	query := `
		SELECT id, name, category, quantity, price
		FROM stock_items
		ORDER BY name, id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query stock items: %w", err)
	}
	defer rows.Close()

	products := make([]model.Product, 0)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock item: %w", err)
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate stock items: %w", err)
	}

	return products, nil
}

func (r productRepository) Create(ctx context.Context, product model.Product) error {
	price, err := numericFromFloat(product.Price)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO stock_items (id, name, category, quantity, price)
		VALUES ($1, $2, $3, $4, $5)
	`

	if _, err := r.db.Exec(ctx, query,
		product.ID, product.Name, product.Category, product.Stock, price,
	); err != nil {
		return fmt.Errorf("insert stock item: %w", err)
	}

	return nil
}

func (r productRepository) Update(ctx context.Context, product model.Product) error {
	price, err := numericFromFloat(product.Price)
	if err != nil {
		return err
	}

	query := `
		UPDATE stock_items
		SET name = $2, category = $3, quantity = $4, price = $5
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, query,
		product.ID, product.Name, product.Category, product.Stock, price,
	)
	if err != nil {
		return fmt.Errorf("update stock item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update stock item %s: %w", product.ID, ErrNotFound)
	}

	return nil
}

func (r productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM stock_items WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete stock item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete stock item %s: %w", id, ErrNotFound)
	}

	return nil
}

func scanProduct(row pgx.Row) (model.Product, error) {
	var (
		product model.Product
		price   pgtype.Numeric
	)
	if err := row.Scan(
		&product.ID, &product.Name, &product.Category, &product.Stock, &price,
	); err != nil {
		return model.Product{}, err
	}

	priceVal, err := price.Float64Value()
	if err != nil {
		return model.Product{}, fmt.Errorf("convert price to float64: %w", err)
	}
	product.Price = priceVal.Float64

	return product, nil
}

func numericFromFloat(v float64) (pgtype.Numeric, error) {
	var n pgtype.Numeric
	if err := n.Scan(fmt.Sprintf("%f", v)); err != nil {
		return n, fmt.Errorf("scan price: %w", err)
	}
	return n, nil
}
