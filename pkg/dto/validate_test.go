package dto

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseRequest() OrderRequest {
	return OrderRequest{
		ExternalReferenceID: "ref-100",
		Channel:             "Ecommerce",
		PurchaseDate:        time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
		TotalValue:          decimal.RequireFromString("100.00"),
		Buyer: Buyer{
			FirstName:      "Ana",
			LastName:       "Gomez",
			DocumentNumber: "30111222",
			Phone:          "1100000000",
		},
		Products: []OrderProduct{
			{Product: Product{SKU: "SKU-1", Name: "Heladera", Price: decimal.RequireFromString("50.00")}, Quantity: 2},
		},
	}
}

func TestOrderRequestValidate(t *testing.T) {
	require.NoError(t, baseRequest().Validate())
}

func TestOrderRequestValidate_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*OrderRequest)
	}{
		{"missing external reference", func(r *OrderRequest) { r.ExternalReferenceID = "" }},
		{"missing channel", func(r *OrderRequest) { r.Channel = "" }},
		{"missing purchase date", func(r *OrderRequest) { r.PurchaseDate = time.Time{} }},
		{"zero total", func(r *OrderRequest) { r.TotalValue = decimal.Zero }},
		{"total above max", func(r *OrderRequest) { r.TotalValue = decimal.RequireFromString("1000000000.00") }},
		{"missing buyer first name", func(r *OrderRequest) { r.Buyer.FirstName = "" }},
		{"missing buyer phone", func(r *OrderRequest) { r.Buyer.Phone = "" }},
		{"no products", func(r *OrderRequest) { r.Products = nil }},
		{"missing sku", func(r *OrderRequest) { r.Products[0].SKU = "" }},
		{"zero price", func(r *OrderRequest) { r.Products[0].Price = decimal.Zero }},
		{"long description", func(r *OrderRequest) { r.Products[0].Description = strings.Repeat("x", 101) }},
		{"zero quantity", func(r *OrderRequest) { r.Products[0].Quantity = 0 }},
		{"quantity above max", func(r *OrderRequest) { r.Products[0].Quantity = 1000 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := baseRequest()
			tt.mutate(&req)
			assert.Error(t, req.Validate())
		})
	}
}

func TestOrderRequestValidate_Bounds(t *testing.T) {
	req := baseRequest()
	req.Products[0].Quantity = 999
	req.Products[0].Price = decimal.RequireFromString("0.01")
	req.TotalValue = decimal.RequireFromString("9.99")
	assert.NoError(t, req.Validate())

	req.Products[0].Description = strings.Repeat("x", 100)
	assert.NoError(t, req.Validate())
}
