package postgres

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/orderflow-io/orderflow/internal/buyer/domain"
	"github.com/orderflow-io/orderflow/pkg/apperr"
)

type Repository struct {
	log  *slog.Logger
	pool *pgxpool.Pool
}

func NewRepository(log *slog.Logger, pool *pgxpool.Pool) *Repository {
	return &Repository{log: log, pool: pool}
}

func (r *Repository) GetByID(ctx context.Context, buyerID string) (domain.Buyer, error) {
	var b domain.Buyer
	err := r.pool.QueryRow(ctx,
		`SELECT id, first_name, last_name, document_number, phone FROM buyers WHERE id = $1`,
		buyerID).Scan(&b.ID, &b.FirstName, &b.LastName, &b.DocumentNumber, &b.Phone)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Buyer{}, apperr.NewNotFound("Buyer", "BuyerRepository:GetByID")
	}
	if err != nil {
		r.log.Error("get buyer failed", "buyer_id", buyerID, "err", err)
		return domain.Buyer{}, apperr.NewDataAccess("BuyerRepository:GetByID", err)
	}
	return b, nil
}

func (r *Repository) GetIDByDocumentNumber(ctx context.Context, documentNumber string) (string, error) {
	var buyerID string
	err := r.pool.QueryRow(ctx,
		`SELECT id FROM buyers WHERE document_number = $1`, documentNumber).Scan(&buyerID)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", apperr.NewNotFound("Buyer", "BuyerRepository:GetIDByDocumentNumber")
	}
	if err != nil {
		r.log.Error("get buyer id failed", "document_number", documentNumber, "err", err)
		return "", apperr.NewDataAccess("BuyerRepository:GetIDByDocumentNumber", err)
	}
	return buyerID, nil
}

func (r *Repository) Add(ctx context.Context, buyer domain.Buyer) (string, error) {
	buyer.ID = uuid.NewString()
	_, err := r.pool.Exec(ctx,
		`INSERT INTO buyers (id, first_name, last_name, document_number, phone)
		 VALUES ($1,$2,$3,$4,$5)`,
		buyer.ID, buyer.FirstName, buyer.LastName, buyer.DocumentNumber, buyer.Phone)
	if err != nil {
		r.log.Error("insert buyer failed", "document_number", buyer.DocumentNumber, "err", err)
		return "", apperr.NewDataAccess("BuyerRepository:Add", err)
	}
	return buyer.ID, nil
}
