package application

import (
	"context"
	"fmt"
	"sync"

	"github.com/orderflow-io/orderflow/internal/order/domain"
	"github.com/orderflow-io/orderflow/pkg/apperr"
	"github.com/orderflow-io/orderflow/pkg/dto"
)

// In-memory fakes for the application ports.

type fakeRepo struct {
	mu             sync.Mutex
	orders         map[int]domain.Order
	searchResult   []domain.Order
	searchFilters  SearchFilters
	uniqueRef      bool
	uniqueErr      error
	appendOK       bool
	appendedEvents []domain.Event
	appendCurrent  []domain.OrderStatus
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		orders:    map[int]domain.Order{},
		uniqueRef: true,
		appendOK:  true,
	}
}

func (r *fakeRepo) GetByOrderID(_ context.Context, orderID int) (domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[orderID]
	if !ok {
		return domain.Order{}, apperr.NewNotFound("Order", "fakeRepo:GetByOrderID")
	}
	return order, nil
}

func (r *fakeRepo) IsUniqueExternalReference(_ context.Context, _ string, _ domain.SourceChannel) (bool, error) {
	if r.uniqueErr != nil {
		return false, r.uniqueErr
	}
	return r.uniqueRef, nil
}

func (r *fakeRepo) Search(_ context.Context, filters SearchFilters) ([]domain.Order, error) {
	r.searchFilters = filters
	return r.searchResult, nil
}

func (r *fakeRepo) Add(_ context.Context, order domain.Order) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[order.OrderID] = order
	return "storage-id", nil
}

func (r *fakeRepo) AppendEvent(_ context.Context, orderID int, event domain.Event, current domain.OrderStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.appendCurrent = append(r.appendCurrent, current)

	order, ok := r.orders[orderID]
	if !r.appendOK || !ok || order.Status != current {
		return false, nil
	}
	order.Events = append(order.Events, event)
	order.Status = event.Type
	r.orders[orderID] = order
	r.appendedEvents = append(r.appendedEvents, event)
	return true, nil
}

type fakeBuyerGateway struct {
	buyer      dto.Buyer
	buyerErr   error
	idByDoc    string
	idByDocErr error
	addedID    string
	addErr     error
}

func (g *fakeBuyerGateway) GetBuyerByID(_ context.Context, _ string) (dto.Buyer, error) {
	return g.buyer, g.buyerErr
}

func (g *fakeBuyerGateway) GetBuyerIDByDocumentNumber(_ context.Context, _ string) (string, error) {
	return g.idByDoc, g.idByDocErr
}

func (g *fakeBuyerGateway) AddBuyer(_ context.Context, _ dto.Buyer) (string, error) {
	return g.addedID, g.addErr
}

type fakeProductGateway struct {
	mu       sync.Mutex
	products map[string]dto.Product
	nextID   int
	getErr   error
	addErr   error
}

func newFakeProductGateway() *fakeProductGateway {
	return &fakeProductGateway{products: map[string]dto.Product{}}
}

func (g *fakeProductGateway) GetProductByID(_ context.Context, productID string) (dto.Product, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.getErr != nil {
		return dto.Product{}, g.getErr
	}
	return g.products[productID], nil
}

func (g *fakeProductGateway) AddProduct(_ context.Context, product dto.Product) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.addErr != nil {
		return "", g.addErr
	}
	g.nextID++
	id := fmt.Sprintf("prod-%d", g.nextID)
	g.products[id] = product
	return id, nil
}

type fakeSequence struct {
	mu    sync.Mutex
	value int
	err   error
}

func (s *fakeSequence) NextValue(_ context.Context, _ string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return 0, s.err
	}
	s.value++
	return s.value, nil
}
