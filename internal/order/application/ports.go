package application

import (
	"context"
	"time"

	"github.com/orderflow-io/orderflow/internal/order/domain"
	"github.com/orderflow-io/orderflow/pkg/dto"
)

// SearchFilters carries the optional order search criteria. Identity
// filters (order id, buyer id, status) are OR-combined by the store;
// the purchase-date range is AND-combined with that group. Nil fields
// are omitted entirely.
type SearchFilters struct {
	OrderID     *int
	BuyerID     *string
	Status      *domain.OrderStatus
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// OrderRepository is the persistence contract for orders. All methods
// wrap storage failures into apperr.DataAccessError; GetByOrderID
// reports an absent order as apperr.NotFoundError.
type OrderRepository interface {
	GetByOrderID(ctx context.Context, orderID int) (domain.Order, error)
	IsUniqueExternalReference(ctx context.Context, externalReferenceID string, channel domain.SourceChannel) (bool, error)
	Search(ctx context.Context, filters SearchFilters) ([]domain.Order, error)
	Add(ctx context.Context, order domain.Order) (string, error)
	// AppendEvent appends the event and moves the status to the event's
	// type in one conditional write: it modifies the order only while its
	// status still equals current, so of two racing transitions exactly
	// one succeeds and the other reports false.
	AppendEvent(ctx context.Context, orderID int, event domain.Event, current domain.OrderStatus) (bool, error)
}

// BuyerGateway is the remote buyer service.
type BuyerGateway interface {
	GetBuyerByID(ctx context.Context, buyerID string) (dto.Buyer, error)
	GetBuyerIDByDocumentNumber(ctx context.Context, documentNumber string) (string, error)
	AddBuyer(ctx context.Context, buyer dto.Buyer) (string, error)
}

// ProductGateway is the remote product service.
type ProductGateway interface {
	GetProductByID(ctx context.Context, productID string) (dto.Product, error)
	AddProduct(ctx context.Context, product dto.Product) (string, error)
}

// SequenceGateway issues the next value of a named sequence.
type SequenceGateway interface {
	NextValue(ctx context.Context, sequenceName string) (int, error)
}
