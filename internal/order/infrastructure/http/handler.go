package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/orderflow-io/orderflow/internal/order/application"
	"github.com/orderflow-io/orderflow/pkg/apperr"
	"github.com/orderflow-io/orderflow/pkg/dto"
)

// User-facing messages, kept in Spanish per the public contract.
const (
	msgOrderIDRequired   = "Id de la orden es requerido."
	msgOrderNotFound     = "Orden no fue encontrada."
	msgOrdersNotFound    = "No fueron encontradas Ordenes con los filtros ingresados."
	msgOrderInvalid      = "La orden es inválida."
	msgEventInvalid      = "El evento es inválido."
	msgOrderCreateFailed = "Ocurrió un error al ingresar una nueva orden en el sistema."
	msgInternalError     = "Un error interno ha ocurrido."
)

// OrderService is the application surface the handler depends on.
type OrderService interface {
	GetFullOrder(ctx context.Context, orderID int) (dto.OrderTranslated, error)
	SearchOrders(ctx context.Context, q application.SearchQuery) ([]dto.Order, error)
	AddOrder(ctx context.Context, req dto.OrderRequest) (dto.OrderCreated, error)
	AddEventToOrder(ctx context.Context, orderID int, event dto.Event) (dto.EventAdded, error)
}

type Handler struct {
	log     *slog.Logger
	service OrderService
	tracer  trace.Tracer
}

func NewHandler(log *slog.Logger, service OrderService) *Handler {
	return &Handler{
		log:     log,
		service: service,
		tracer:  otel.Tracer("order-http"),
	}
}

func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Route("/api/v1/orders", func(r chi.Router) {
		r.Get("/search", h.search)
		r.Get("/{orderId}", h.get)
		r.Post("/", h.create)
		r.Post("/{orderId}/events", h.addEvent)
	})
	return r
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "GetFullOrder")
	defer span.End()

	orderID, err := strconv.Atoi(chi.URLParam(r, "orderId"))
	if err != nil || orderID <= 0 {
		respondError(w, http.StatusBadRequest, msgOrderIDRequired)
		return
	}

	order, err := h.service.GetFullOrder(ctx, orderID)
	if err != nil {
		h.respondServiceError(w, err, msgOrderNotFound, msgInternalError, msgInternalError)
		return
	}
	respond(w, http.StatusOK, order)
}

func (h *Handler) search(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "SearchOrders")
	defer span.End()

	q := application.SearchQuery{
		DocumentNumber: r.URL.Query().Get("documentNumber"),
		Status:         r.URL.Query().Get("status"),
	}
	if raw := r.URL.Query().Get("orderId"); raw != "" {
		orderID, err := strconv.Atoi(raw)
		if err != nil || orderID <= 0 {
			respondError(w, http.StatusBadRequest, msgOrderIDRequired)
			return
		}
		q.OrderID = &orderID
	}
	if t, ok := parseQueryTime(r.URL.Query().Get("createdOnFrom")); ok {
		q.CreatedFrom = &t
	}
	if t, ok := parseQueryTime(r.URL.Query().Get("createdOnTo")); ok {
		q.CreatedTo = &t
	}

	orders, err := h.service.SearchOrders(ctx, q)
	if err != nil {
		h.respondServiceError(w, err, msgOrdersNotFound, msgInternalError, msgInternalError)
		return
	}
	respond(w, http.StatusOK, orders)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "AddOrder")
	defer span.End()

	var req dto.OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, msgOrderInvalid)
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.service.AddOrder(ctx, req)
	if err != nil {
		h.respondServiceError(w, err, msgOrderNotFound, msgOrderInvalid, msgOrderCreateFailed)
		return
	}
	respond(w, http.StatusOK, created)
}

func (h *Handler) addEvent(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "AddEventToOrder")
	defer span.End()

	orderID, err := strconv.Atoi(chi.URLParam(r, "orderId"))
	if err != nil || orderID <= 0 {
		respondError(w, http.StatusBadRequest, msgOrderIDRequired)
		return
	}

	var event dto.Event
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		respondError(w, http.StatusBadRequest, msgEventInvalid)
		return
	}
	if event.ID == "" || event.Type == "" || event.User == "" {
		respondError(w, http.StatusBadRequest, msgEventInvalid)
		return
	}

	added, err := h.service.AddEventToOrder(ctx, orderID, event)
	if err != nil {
		h.respondServiceError(w, err, msgOrderNotFound, msgEventInvalid, msgInternalError)
		return
	}
	respond(w, http.StatusOK, added)
}

// respondServiceError maps the error taxonomy onto the endpoint's
// messages: not-found to 404, business validation to 400, everything
// else (data access included) to 500. Causes are logged, never exposed.
func (h *Handler) respondServiceError(w http.ResponseWriter, err error, notFoundMsg, invalidMsg, internalMsg string) {
	switch {
	case apperr.IsNotFound(err):
		respondError(w, http.StatusNotFound, notFoundMsg)
	case apperr.IsBusinessValidation(err):
		respondError(w, http.StatusBadRequest, invalidMsg)
	default:
		h.log.Error("request failed", "err", err)
		respondError(w, http.StatusInternalServerError, internalMsg)
	}
}

func respond(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respond(w, status, map[string]string{"error": msg})
}

func parseQueryTime(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
