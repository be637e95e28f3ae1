package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/orderflow-io/orderflow/pkg/apperr"
	"github.com/orderflow-io/orderflow/pkg/dto"
)

type ProductService interface {
	GetProductByID(ctx context.Context, productID string) (dto.Product, error)
	GetProductIDBySKU(ctx context.Context, sku string) (string, error)
	GetOrInsertProduct(ctx context.Context, product dto.Product) (string, error)
}

type Handler struct {
	log     *slog.Logger
	service ProductService
}

func NewHandler(log *slog.Logger, service ProductService) *Handler {
	return &Handler{log: log, service: service}
}

func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Route("/api/v1/products", func(r chi.Router) {
		r.Get("/sku/{sku}", h.getIDBySKU)
		r.Get("/{productId}", h.get)
		r.Post("/", h.post)
	})
	return r
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	product, err := h.service.GetProductByID(r.Context(), chi.URLParam(r, "productId"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	respond(w, http.StatusOK, product)
}

func (h *Handler) getIDBySKU(w http.ResponseWriter, r *http.Request) {
	productID, err := h.service.GetProductIDBySKU(r.Context(), chi.URLParam(r, "sku"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	respond(w, http.StatusOK, productID)
}

func (h *Handler) post(w http.ResponseWriter, r *http.Request) {
	var product dto.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid body"})
		return
	}
	if err := product.Validate(); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	productID, err := h.service.GetOrInsertProduct(r.Context(), product)
	if err != nil {
		h.respondError(w, err)
		return
	}
	respond(w, http.StatusOK, productID)
}

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	if apperr.IsNotFound(err) {
		respond(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	h.log.Error("product request failed", "err", err)
	respond(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
}

func respond(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
