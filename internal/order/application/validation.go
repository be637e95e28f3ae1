package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/orderflow-io/orderflow/internal/order/domain"
	"github.com/orderflow-io/orderflow/pkg/dto"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// OrderValidator runs the two independent new-order checks: external
// reference uniqueness per channel and total-value integrity.
type OrderValidator struct {
	log  *slog.Logger
	repo OrderRepository
}

func NewOrderValidator(log *slog.Logger, repo OrderRepository) *OrderValidator {
	return &OrderValidator{log: log, repo: repo}
}

// IsOrderValid runs both checks concurrently and returns their
// conjunction. A failure in either check propagates as an error; it is
// never reported as "invalid".
func (v *OrderValidator) IsOrderValid(ctx context.Context, req dto.OrderRequest) (bool, error) {
	v.log.Info("starting order validation", "external_reference_id", req.ExternalReferenceID)

	channel, err := domain.ParseSourceChannel(req.Channel)
	if err != nil {
		return false, fmt.Errorf("validate order: %w", err)
	}

	var isUniqueRef, isProperTotal bool
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		isUniqueRef, err = v.repo.IsUniqueExternalReference(gctx, req.ExternalReferenceID, channel)
		return err
	})
	g.Go(func() error {
		isProperTotal = isProperTotalValue(req)
		return nil
	})
	if err := g.Wait(); err != nil {
		return false, err
	}

	v.log.Info("finished order validation",
		"unique_reference", isUniqueRef, "proper_total", isProperTotal)
	return isUniqueRef && isProperTotal, nil
}

// isProperTotalValue checks that the declared total equals the exact sum
// of price times quantity over the product lines. No epsilon.
func isProperTotalValue(req dto.OrderRequest) bool {
	total := decimal.Zero
	for _, p := range req.Products {
		total = total.Add(p.Price.Mul(decimal.NewFromInt(int64(p.Quantity))))
	}
	return total.Equal(req.TotalValue)
}
