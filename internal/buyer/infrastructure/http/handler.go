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

type BuyerService interface {
	GetBuyerByID(ctx context.Context, buyerID string) (dto.Buyer, error)
	GetBuyerIDByDocumentNumber(ctx context.Context, documentNumber string) (string, error)
	GetOrInsertBuyer(ctx context.Context, buyer dto.Buyer) (string, error)
}

type Handler struct {
	log     *slog.Logger
	service BuyerService
}

func NewHandler(log *slog.Logger, service BuyerService) *Handler {
	return &Handler{log: log, service: service}
}

func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Route("/api/v1/buyers", func(r chi.Router) {
		r.Get("/documentnumber/{documentNumber}", h.getIDByDocumentNumber)
		r.Get("/{buyerId}", h.get)
		r.Post("/", h.post)
	})
	return r
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	buyer, err := h.service.GetBuyerByID(r.Context(), chi.URLParam(r, "buyerId"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	respond(w, http.StatusOK, buyer)
}

func (h *Handler) getIDByDocumentNumber(w http.ResponseWriter, r *http.Request) {
	buyerID, err := h.service.GetBuyerIDByDocumentNumber(r.Context(), chi.URLParam(r, "documentNumber"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	respond(w, http.StatusOK, buyerID)
}

func (h *Handler) post(w http.ResponseWriter, r *http.Request) {
	var buyer dto.Buyer
	if err := json.NewDecoder(r.Body).Decode(&buyer); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid body"})
		return
	}
	if err := buyer.Validate(); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	buyerID, err := h.service.GetOrInsertBuyer(r.Context(), buyer)
	if err != nil {
		h.respondError(w, err)
		return
	}
	respond(w, http.StatusOK, buyerID)
}

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	if apperr.IsNotFound(err) {
		respond(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	h.log.Error("buyer request failed", "err", err)
	respond(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
}

func respond(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
