package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/orderflow-io/orderflow/internal/product/domain"
	"github.com/orderflow-io/orderflow/pkg/apperr"
)

type Repository struct {
	log  *slog.Logger
	pool *pgxpool.Pool
}

func NewRepository(log *slog.Logger, pool *pgxpool.Pool) *Repository {
	return &Repository{log: log, pool: pool}
}

func (r *Repository) GetByID(ctx context.Context, productID string) (domain.Product, error) {
	var (
		p     domain.Product
		price string
	)
	err := r.pool.QueryRow(ctx,
		`SELECT id, sku, name, description, price::text FROM products WHERE id = $1`,
		productID).Scan(&p.ID, &p.SKU, &p.Name, &p.Description, &price)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Product{}, apperr.NewNotFound("Product", "ProductRepository:GetByID")
	}
	if err != nil {
		r.log.Error("get product failed", "product_id", productID, "err", err)
		return domain.Product{}, apperr.NewDataAccess("ProductRepository:GetByID", err)
	}
	if p.Price, err = decimal.NewFromString(price); err != nil {
		return domain.Product{}, apperr.NewDataAccess("ProductRepository:GetByID", fmt.Errorf("decode price: %w", err))
	}
	return p, nil
}

func (r *Repository) GetIDBySKU(ctx context.Context, sku string) (string, error) {
	var productID string
	err := r.pool.QueryRow(ctx, `SELECT id FROM products WHERE sku = $1`, sku).Scan(&productID)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", apperr.NewNotFound("Product", "ProductRepository:GetIDBySKU")
	}
	if err != nil {
		r.log.Error("get product id failed", "sku", sku, "err", err)
		return "", apperr.NewDataAccess("ProductRepository:GetIDBySKU", err)
	}
	return productID, nil
}

func (r *Repository) Add(ctx context.Context, product domain.Product) (string, error) {
	product.ID = uuid.NewString()
	_, err := r.pool.Exec(ctx,
		`INSERT INTO products (id, sku, name, description, price) VALUES ($1,$2,$3,$4,$5)`,
		product.ID, product.SKU, product.Name, product.Description, product.Price.String())
	if err != nil {
		r.log.Error("insert product failed", "sku", product.SKU, "err", err)
		return "", apperr.NewDataAccess("ProductRepository:Add", err)
	}
	return product.ID, nil
}
