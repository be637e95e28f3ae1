package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type CounterService interface {
	NextValue(ctx context.Context, sequenceName string) (int, error)
}

type Handler struct {
	log     *slog.Logger
	service CounterService
}

func NewHandler(log *slog.Logger, service CounterService) *Handler {
	return &Handler{log: log, service: service}
}

func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Post("/api/v1/counters/{name}/next", h.next)
	return r
}

func (h *Handler) next(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name == "" {
		respond(w, http.StatusBadRequest, map[string]string{"error": "sequence name is required"})
		return
	}

	value, err := h.service.NextValue(r.Context(), name)
	if err != nil {
		h.log.Error("next value failed", "sequence", name, "err", err)
		respond(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}
	respond(w, http.StatusOK, map[string]int{"value": value})
}

func respond(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
