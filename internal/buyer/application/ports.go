package application

import (
	"context"

	"github.com/orderflow-io/orderflow/internal/buyer/domain"
)

type BuyerRepository interface {
	GetByID(ctx context.Context, buyerID string) (domain.Buyer, error)
	GetIDByDocumentNumber(ctx context.Context, documentNumber string) (string, error)
	Add(ctx context.Context, buyer domain.Buyer) (string, error)
}
