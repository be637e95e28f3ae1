package application

import (
	"context"
	"log/slog"

	"github.com/orderflow-io/orderflow/internal/product/domain"
	"github.com/orderflow-io/orderflow/pkg/apperr"
	"github.com/orderflow-io/orderflow/pkg/dto"
)

type Service struct {
	log  *slog.Logger
	repo ProductRepository
}

func NewService(log *slog.Logger, repo ProductRepository) *Service {
	return &Service{log: log, repo: repo}
}

func (s *Service) GetProductByID(ctx context.Context, productID string) (dto.Product, error) {
	product, err := s.repo.GetByID(ctx, productID)
	if err != nil {
		return dto.Product{}, err
	}
	return toDTO(product), nil
}

func (s *Service) GetProductIDBySKU(ctx context.Context, sku string) (string, error) {
	return s.repo.GetIDBySKU(ctx, sku)
}

// GetOrInsertProduct returns the id of the product with the given SKU,
// inserting the record only when none exists yet.
func (s *Service) GetOrInsertProduct(ctx context.Context, product dto.Product) (string, error) {
	productID, err := s.repo.GetIDBySKU(ctx, product.SKU)
	if err == nil {
		s.log.Info("product already exists", "sku", product.SKU, "product_id", productID)
		return productID, nil
	}
	if !apperr.IsNotFound(err) {
		return "", err
	}

	productID, err = s.repo.Add(ctx, fromDTO(product))
	if err != nil {
		return "", err
	}
	s.log.Info("product added", "product_id", productID)
	return productID, nil
}

func toDTO(p domain.Product) dto.Product {
	return dto.Product{
		SKU:         p.SKU,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
	}
}

func fromDTO(p dto.Product) domain.Product {
	return domain.Product{
		SKU:         p.SKU,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
	}
}
