package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/orderflow-io/orderflow/internal/order/domain"
	"github.com/orderflow-io/orderflow/pkg/apperr"
	"github.com/orderflow-io/orderflow/pkg/dto"
	"github.com/orderflow-io/orderflow/pkg/gateway"
	"golang.org/x/sync/errgroup"
)

// SearchQuery is the inbound search surface: optional identity hints plus
// a creation date range. DocumentNumber is resolved to a buyer id through
// the buyer gateway before hitting the store.
type SearchQuery struct {
	OrderID        *int
	DocumentNumber string
	Status         string
	CreatedFrom    *time.Time
	CreatedTo      *time.Time
}

// Service is the order orchestration façade: it coordinates validation,
// the external gateways and the order store to serve the four order
// operations.
type Service struct {
	log       *slog.Logger
	repo      OrderRepository
	validator *OrderValidator
	events    *EventValidator
	external  *ExternalDataService
}

func NewService(log *slog.Logger, repo OrderRepository, validator *OrderValidator,
	events *EventValidator, external *ExternalDataService) *Service {
	return &Service{
		log:       log,
		repo:      repo,
		validator: validator,
		events:    events,
		external:  external,
	}
}

// GetFullOrder fetches an order and enriches it with the buyer record and
// the full product data per line, with localized channel/status labels.
func (s *Service) GetFullOrder(ctx context.Context, orderID int) (dto.OrderTranslated, error) {
	order, err := s.repo.GetByOrderID(ctx, orderID)
	if err != nil {
		return dto.OrderTranslated{}, err
	}

	buyer, products, err := s.external.EnrichOrder(ctx, order)
	if err != nil {
		return dto.OrderTranslated{}, err
	}
	return orderToTranslated(order, buyer, products), nil
}

// SearchOrders resolves the document number to a buyer id when given,
// parses the status filter (an unparsable status means "no status
// filter"), delegates filter composition to the store and enriches every
// match. Results carry only the latest event of each order.
func (s *Service) SearchOrders(ctx context.Context, q SearchQuery) ([]dto.Order, error) {
	filters := SearchFilters{
		OrderID:     q.OrderID,
		CreatedFrom: q.CreatedFrom,
		CreatedTo:   q.CreatedTo,
	}

	if q.DocumentNumber != "" {
		buyerID, err := s.external.BuyerIDByDocumentNumber(ctx, q.DocumentNumber)
		switch {
		case errors.Is(err, gateway.ErrNotFound):
			// Unknown document number: no buyer filter.
		case err != nil:
			return nil, err
		default:
			filters.BuyerID = &buyerID
		}
	}
	if q.Status != "" {
		if status, err := domain.ParseOrderStatus(q.Status); err == nil {
			filters.Status = &status
		}
	}

	orders, err := s.repo.Search(ctx, filters)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, apperr.NewNotFound("Orders", "OrderService:SearchOrders")
	}

	results := make([]dto.Order, len(orders))
	g, gctx := errgroup.WithContext(ctx)
	for i, order := range orders {
		g.Go(func() error {
			buyer, products, err := s.external.EnrichOrder(gctx, order)
			if err != nil {
				return err
			}
			result := orderToDTO(order, buyer, products)
			if latest, ok := order.LatestEvent(); ok {
				result.Events = []dto.Event{eventToDTO(latest)}
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// AddOrder validates the request, concurrently obtains the new order id
// and the buyer/product ids, assembles the order in Created status with
// its initial event and persists it.
func (s *Service) AddOrder(ctx context.Context, req dto.OrderRequest) (dto.OrderCreated, error) {
	valid, err := s.validator.IsOrderValid(ctx, req)
	if err != nil {
		return dto.OrderCreated{}, err
	}
	if !valid {
		return dto.OrderCreated{}, apperr.NewBusinessValidation("Order", "OrderService:AddOrder")
	}

	order, err := orderFromRequest(req)
	if err != nil {
		return dto.OrderCreated{}, fmt.Errorf("internal mapping failure: %w", err)
	}

	orderID, buyerID, lines, err := s.external.ResolveOrderRequest(ctx, req)
	if err != nil {
		return dto.OrderCreated{}, err
	}

	order.OrderID = orderID
	order.BuyerID = buyerID
	order.OrderProducts = lines
	order.Status = domain.StatusCreated
	order.Events = []domain.Event{s.events.CreateInitialEvent()}

	if _, err := s.repo.Add(ctx, order); err != nil {
		return dto.OrderCreated{}, err
	}

	s.log.Info("order created", "order_id", order.OrderID, "channel", order.Channel)
	return orderToCreated(order), nil
}

// AddEventToOrder validates the event against the order's current state.
// Valid and fresh events are appended together with the status change,
// conditioned on the status read here; an event type already processed
// is acknowledged idempotently with no write; an invalid transition or
// reused event id is a business validation failure.
func (s *Service) AddEventToOrder(ctx context.Context, orderID int, event dto.Event) (dto.EventAdded, error) {
	order, err := s.repo.GetByOrderID(ctx, orderID)
	if err != nil {
		return dto.EventAdded{}, err
	}

	validation, err := s.events.Validate(order, event)
	if err != nil {
		return dto.EventAdded{}, apperr.NewBusinessValidation("Event", "OrderService:AddEventToOrder")
	}

	newEvent, err := eventFromDTO(event)
	if err != nil {
		return dto.EventAdded{}, fmt.Errorf("internal mapping failure: %w", err)
	}

	if !validation.NotYetProcessed {
		// Same event type seen before: acknowledge without appending or
		// flipping the status.
		s.log.Info("event already processed", "order_id", orderID, "type", newEvent.Type)
		return s.events.BuildEventAddedResult(orderID, order.Status, newEvent.Type), nil
	}
	if !validation.ValidAndUnique {
		return dto.EventAdded{}, apperr.NewBusinessValidation("Event", "OrderService:AddEventToOrder")
	}

	appended, err := s.repo.AppendEvent(ctx, orderID, newEvent, order.Status)
	if err != nil {
		return dto.EventAdded{}, err
	}
	if !appended {
		return dto.EventAdded{}, fmt.Errorf("order %d changed concurrently while appending event", orderID)
	}

	s.log.Info("event added", "order_id", orderID, "from", order.Status, "to", newEvent.Type)
	return s.events.BuildEventAddedResult(orderID, order.Status, newEvent.Type), nil
}
