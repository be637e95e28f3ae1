package application

import (
	"context"
	"errors"
	"log/slog"

	"github.com/orderflow-io/orderflow/internal/order/domain"
	"github.com/orderflow-io/orderflow/pkg/apperr"
	"github.com/orderflow-io/orderflow/pkg/dto"
	"github.com/orderflow-io/orderflow/pkg/gateway"
	"golang.org/x/sync/errgroup"
)

// orderIDSequence is the counter-service sequence that issues order ids.
const orderIDSequence = "OrderId"

// ExternalDataService fans out to the buyer, product and counter
// services. Every fan-out is joined before returning and any branch
// error surfaces to the caller.
type ExternalDataService struct {
	log      *slog.Logger
	sequence SequenceGateway
	buyers   BuyerGateway
	products ProductGateway
}

func NewExternalDataService(log *slog.Logger, sequence SequenceGateway, buyers BuyerGateway, products ProductGateway) *ExternalDataService {
	return &ExternalDataService{log: log, sequence: sequence, buyers: buyers, products: products}
}

// BuyerIDByDocumentNumber resolves a buyer id from a document number.
func (s *ExternalDataService) BuyerIDByDocumentNumber(ctx context.Context, documentNumber string) (string, error) {
	return s.buyers.GetBuyerIDByDocumentNumber(ctx, documentNumber)
}

// EnrichOrder resolves the stored buyer and product references of an
// order into full DTOs, buyer and product lines in parallel.
func (s *ExternalDataService) EnrichOrder(ctx context.Context, order domain.Order) (dto.Buyer, []dto.OrderProduct, error) {
	var buyer dto.Buyer
	products := make([]dto.OrderProduct, len(order.OrderProducts))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		buyer, err = s.buyers.GetBuyerByID(gctx, order.BuyerID)
		return err
	})
	for i, line := range order.OrderProducts {
		g.Go(func() error {
			product, err := s.products.GetProductByID(gctx, line.ProductID)
			if err != nil {
				return err
			}
			products[i] = dto.OrderProduct{Product: product, Quantity: line.Quantity}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		if errors.Is(err, gateway.ErrNotFound) {
			// A stored buyer or product id that no longer resolves is an
			// internal inconsistency, not a missing order.
			return dto.Buyer{}, nil, apperr.NewDataAccess("ExternalDataService:EnrichOrder", err)
		}
		return dto.Buyer{}, nil, err
	}
	return buyer, products, nil
}

// ResolveOrderRequest obtains everything a new order needs from the
// collaborators: a fresh order id, the buyer id (created if new) and one
// product id per line (created if new). All calls run concurrently.
func (s *ExternalDataService) ResolveOrderRequest(ctx context.Context, req dto.OrderRequest) (int, string, []domain.OrderProduct, error) {
	var (
		orderID int
		buyerID string
	)
	lines := make([]domain.OrderProduct, len(req.Products))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		orderID, err = s.sequence.NextValue(gctx, orderIDSequence)
		return err
	})
	g.Go(func() error {
		var err error
		buyerID, err = s.buyers.AddBuyer(gctx, req.Buyer)
		return err
	})
	for i, line := range req.Products {
		g.Go(func() error {
			productID, err := s.products.AddProduct(gctx, line.Product)
			if err != nil {
				return err
			}
			lines[i] = domain.OrderProduct{ProductID: productID, Quantity: line.Quantity}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, "", nil, err
	}

	s.log.Info("resolved order external data", "order_id", orderID, "buyer_id", buyerID)
	return orderID, buyerID, lines, nil
}
