package application

import (
	"context"

	"github.com/orderflow-io/orderflow/internal/product/domain"
)

type ProductRepository interface {
	GetByID(ctx context.Context, productID string) (domain.Product, error)
	GetIDBySKU(ctx context.Context, sku string) (string, error)
	Add(ctx context.Context, product domain.Product) (string, error)
}
