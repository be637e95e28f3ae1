package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orderflow-io/orderflow/internal/order/application"
	"github.com/orderflow-io/orderflow/pkg/apperr"
	"github.com/orderflow-io/orderflow/pkg/dto"
	"github.com/orderflow-io/orderflow/pkg/logging"
)

type fakeService struct {
	order     dto.OrderTranslated
	orderErr  error
	search    []dto.Order
	searchErr error
	searchQ   application.SearchQuery
	created   dto.OrderCreated
	createErr error
	added     dto.EventAdded
	addErr    error
}

func (s *fakeService) GetFullOrder(_ context.Context, _ int) (dto.OrderTranslated, error) {
	return s.order, s.orderErr
}

func (s *fakeService) SearchOrders(_ context.Context, q application.SearchQuery) ([]dto.Order, error) {
	s.searchQ = q
	return s.search, s.searchErr
}

func (s *fakeService) AddOrder(_ context.Context, _ dto.OrderRequest) (dto.OrderCreated, error) {
	return s.created, s.createErr
}

func (s *fakeService) AddEventToOrder(_ context.Context, _ int, _ dto.Event) (dto.EventAdded, error) {
	return s.added, s.addErr
}

func serve(t *testing.T, svc OrderService, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	h := NewHandler(logging.New("test"), svc)

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)
	return rec
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["error"]
}

func TestGetOrder(t *testing.T) {
	svc := &fakeService{order: dto.OrderTranslated{OrderID: 7, Status: "Created", StatusTranslate: "Creada"}}
	rec := serve(t, svc, http.MethodGet, "/api/v1/orders/7", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var got dto.OrderTranslated
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, 7, got.OrderID)
	assert.Equal(t, "Creada", got.StatusTranslate)
}

func TestGetOrder_InvalidID(t *testing.T) {
	for _, target := range []string{"/api/v1/orders/0", "/api/v1/orders/-3", "/api/v1/orders/abc"} {
		rec := serve(t, &fakeService{}, http.MethodGet, target, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
		assert.Equal(t, "Id de la orden es requerido.", errorMessage(t, rec))
	}
}

func TestGetOrder_NotFound(t *testing.T) {
	svc := &fakeService{orderErr: apperr.NewNotFound("Order", "test")}
	rec := serve(t, svc, http.MethodGet, "/api/v1/orders/7", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Orden no fue encontrada.", errorMessage(t, rec))
}

func TestGetOrder_InternalError(t *testing.T) {
	svc := &fakeService{orderErr: errors.New("boom")}
	rec := serve(t, svc, http.MethodGet, "/api/v1/orders/7", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Un error interno ha ocurrido.", errorMessage(t, rec))
}

func TestSearchOrders(t *testing.T) {
	svc := &fakeService{search: []dto.Order{{OrderID: 1, Status: "Created"}}}
	rec := serve(t, svc, http.MethodGet,
		"/api/v1/orders/search?orderId=1&documentNumber=30111222&status=Created&createdOnFrom=2024-01-01", "")

	require.Equal(t, http.StatusOK, rec.Code)

	require.NotNil(t, svc.searchQ.OrderID)
	assert.Equal(t, 1, *svc.searchQ.OrderID)
	assert.Equal(t, "30111222", svc.searchQ.DocumentNumber)
	assert.Equal(t, "Created", svc.searchQ.Status)
	require.NotNil(t, svc.searchQ.CreatedFrom)
	assert.Nil(t, svc.searchQ.CreatedTo)
}

func TestSearchOrders_NoMatches(t *testing.T) {
	svc := &fakeService{searchErr: apperr.NewNotFound("Orders", "test")}
	rec := serve(t, svc, http.MethodGet, "/api/v1/orders/search?status=Cancelled", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "No fueron encontradas Ordenes con los filtros ingresados.", errorMessage(t, rec))
}

func TestSearchOrders_InvalidOrderID(t *testing.T) {
	rec := serve(t, &fakeService{}, http.MethodGet, "/api/v1/orders/search?orderId=-1", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateOrder(t *testing.T) {
	svc := &fakeService{created: dto.OrderCreated{OrderID: 12, Status: "Created"}}
	body := `{
		"externalReferenceId": "ref-100",
		"channel": "Ecommerce",
		"purchaseDate": "2024-05-01T10:00:00Z",
		"totalValue": 100.00,
		"buyer": {"firstName": "Ana", "lastName": "Gomez", "documentNumber": "30111222", "phone": "1100000000"},
		"products": [{"sku": "SKU-1", "name": "Heladera", "price": 50.00, "quantity": 2}]
	}`
	rec := serve(t, svc, http.MethodPost, "/api/v1/orders/", body)

	require.Equal(t, http.StatusOK, rec.Code)
	var got dto.OrderCreated
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, 12, got.OrderID)
	assert.Equal(t, "Created", got.Status)
}

func TestCreateOrder_MalformedBody(t *testing.T) {
	rec := serve(t, &fakeService{}, http.MethodPost, "/api/v1/orders/", "{not json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "La orden es inválida.", errorMessage(t, rec))
}

func TestCreateOrder_BusinessValidation(t *testing.T) {
	svc := &fakeService{createErr: apperr.NewBusinessValidation("Order", "test")}
	body := `{
		"externalReferenceId": "ref-100",
		"channel": "Ecommerce",
		"purchaseDate": "2024-05-01T10:00:00Z",
		"totalValue": 100.00,
		"buyer": {"firstName": "Ana", "lastName": "Gomez", "documentNumber": "30111222", "phone": "1100000000"},
		"products": [{"sku": "SKU-1", "name": "Heladera", "price": 50.00, "quantity": 2}]
	}`
	rec := serve(t, svc, http.MethodPost, "/api/v1/orders/", body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "La orden es inválida.", errorMessage(t, rec))
}

func TestCreateOrder_DTOBoundsRejected(t *testing.T) {
	// Quantity above the allowed maximum fails request validation before
	// the service is reached.
	body := `{
		"externalReferenceId": "ref-100",
		"channel": "Ecommerce",
		"purchaseDate": "2024-05-01T10:00:00Z",
		"totalValue": 100.00,
		"buyer": {"firstName": "Ana", "lastName": "Gomez", "documentNumber": "30111222", "phone": "1100000000"},
		"products": [{"sku": "SKU-1", "name": "Heladera", "price": 50.00, "quantity": 1000}]
	}`
	rec := serve(t, &fakeService{}, http.MethodPost, "/api/v1/orders/", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAddEvent(t *testing.T) {
	svc := &fakeService{added: dto.EventAdded{OrderID: 7, PreviousStatus: "Created", NewStatus: "PaymentReceived"}}
	body := `{"id": "pay-1", "type": "PaymentReceived", "user": "cashier"}`
	rec := serve(t, svc, http.MethodPost, "/api/v1/orders/7/events", body)

	require.Equal(t, http.StatusOK, rec.Code)
	var got dto.EventAdded
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "PaymentReceived", got.NewStatus)
}

func TestAddEvent_MissingFields(t *testing.T) {
	rec := serve(t, &fakeService{}, http.MethodPost, "/api/v1/orders/7/events", `{"id": "pay-1"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "El evento es inválido.", errorMessage(t, rec))
}

func TestAddEvent_InvalidTransition(t *testing.T) {
	svc := &fakeService{addErr: apperr.NewBusinessValidation("Event", "test")}
	body := `{"id": "inv-1", "type": "Invoiced", "user": "cashier"}`
	rec := serve(t, svc, http.MethodPost, "/api/v1/orders/7/events", body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "El evento es inválido.", errorMessage(t, rec))
}

func TestAddEvent_OrderNotFound(t *testing.T) {
	svc := &fakeService{addErr: apperr.NewNotFound("Order", "test")}
	body := `{"id": "pay-1", "type": "PaymentReceived", "user": "cashier"}`
	rec := serve(t, svc, http.MethodPost, "/api/v1/orders/99/events", body)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Orden no fue encontrada.", errorMessage(t, rec))
}

func TestParseQueryTime(t *testing.T) {
	got, ok := parseQueryTime("2024-01-02")
	require.True(t, ok)
	assert.Equal(t, 2024, got.Year())

	got, ok = parseQueryTime("2024-01-02T15:04:05Z")
	require.True(t, ok)
	assert.Equal(t, 15, got.Hour())

	_, ok = parseQueryTime("not-a-date")
	assert.False(t, ok)

	_, ok = parseQueryTime("")
	assert.False(t, ok)
}
