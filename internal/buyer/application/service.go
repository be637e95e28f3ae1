package application

import (
	"context"
	"log/slog"

	"github.com/orderflow-io/orderflow/internal/buyer/domain"
	"github.com/orderflow-io/orderflow/pkg/apperr"
	"github.com/orderflow-io/orderflow/pkg/dto"
)

type Service struct {
	log  *slog.Logger
	repo BuyerRepository
}

func NewService(log *slog.Logger, repo BuyerRepository) *Service {
	return &Service{log: log, repo: repo}
}

func (s *Service) GetBuyerByID(ctx context.Context, buyerID string) (dto.Buyer, error) {
	buyer, err := s.repo.GetByID(ctx, buyerID)
	if err != nil {
		return dto.Buyer{}, err
	}
	return toDTO(buyer), nil
}

func (s *Service) GetBuyerIDByDocumentNumber(ctx context.Context, documentNumber string) (string, error) {
	return s.repo.GetIDByDocumentNumber(ctx, documentNumber)
}

// GetOrInsertBuyer returns the id of the buyer with the given document
// number, inserting the record only when none exists yet.
func (s *Service) GetOrInsertBuyer(ctx context.Context, buyer dto.Buyer) (string, error) {
	buyerID, err := s.repo.GetIDByDocumentNumber(ctx, buyer.DocumentNumber)
	if err == nil {
		s.log.Info("buyer already exists", "document_number", buyer.DocumentNumber, "buyer_id", buyerID)
		return buyerID, nil
	}
	if !apperr.IsNotFound(err) {
		return "", err
	}

	buyerID, err = s.repo.Add(ctx, fromDTO(buyer))
	if err != nil {
		return "", err
	}
	s.log.Info("buyer added", "buyer_id", buyerID)
	return buyerID, nil
}

func toDTO(b domain.Buyer) dto.Buyer {
	return dto.Buyer{
		FirstName:      b.FirstName,
		LastName:       b.LastName,
		DocumentNumber: b.DocumentNumber,
		Phone:          b.Phone,
	}
}

func fromDTO(b dto.Buyer) domain.Buyer {
	return domain.Buyer{
		FirstName:      b.FirstName,
		LastName:       b.LastName,
		DocumentNumber: b.DocumentNumber,
		Phone:          b.Phone,
	}
}
