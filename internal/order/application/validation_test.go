package application

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orderflow-io/orderflow/pkg/dto"
	"github.com/orderflow-io/orderflow/pkg/logging"
)

func validOrderRequest() dto.OrderRequest {
	return dto.OrderRequest{
		ExternalReferenceID: "ref-100",
		Channel:             "Ecommerce",
		TotalValue:          decimal.RequireFromString("150.00"),
		Buyer:               dto.Buyer{FirstName: "Ana", LastName: "Gomez", DocumentNumber: "30111222"},
		Products: []dto.OrderProduct{
			{Product: dto.Product{SKU: "SKU-1", Price: decimal.RequireFromString("50.00")}, Quantity: 2},
			{Product: dto.Product{SKU: "SKU-2", Price: decimal.RequireFromString("25.00")}, Quantity: 2},
		},
	}
}

func TestIsOrderValid(t *testing.T) {
	repo := newFakeRepo()
	v := NewOrderValidator(logging.New("test"), repo)

	valid, err := v.IsOrderValid(context.Background(), validOrderRequest())
	require.NoError(t, err)
	assert.True(t, valid)
}

func TestIsOrderValid_TotalMismatch(t *testing.T) {
	repo := newFakeRepo()
	v := NewOrderValidator(logging.New("test"), repo)

	req := validOrderRequest()
	req.TotalValue = decimal.RequireFromString("150.01")

	valid, err := v.IsOrderValid(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestIsOrderValid_DuplicateReference(t *testing.T) {
	repo := newFakeRepo()
	repo.uniqueRef = false
	v := NewOrderValidator(logging.New("test"), repo)

	valid, err := v.IsOrderValid(context.Background(), validOrderRequest())
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestIsOrderValid_UnknownChannel(t *testing.T) {
	repo := newFakeRepo()
	v := NewOrderValidator(logging.New("test"), repo)

	req := validOrderRequest()
	req.Channel = "Drone"

	_, err := v.IsOrderValid(context.Background(), req)
	assert.Error(t, err)
}

func TestIsOrderValid_RepoErrorPropagates(t *testing.T) {
	repo := newFakeRepo()
	repo.uniqueErr = errors.New("connection reset")
	v := NewOrderValidator(logging.New("test"), repo)

	_, err := v.IsOrderValid(context.Background(), validOrderRequest())
	assert.ErrorContains(t, err, "connection reset")
}
