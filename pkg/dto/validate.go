package dto

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	minMoney = decimal.NewFromFloat(0.01)
	maxMoney = decimal.RequireFromString("999999999.99")
)

// Validate checks the request-level constraints: required fields, price
// and total bounds, quantity between 1 and 999. Domain rules (uniqueness,
// total consistency) are the order service's concern.
func (r OrderRequest) Validate() error {
	if r.ExternalReferenceID == "" {
		return errors.New("externalReferenceId is required")
	}
	if r.Channel == "" {
		return errors.New("channel is required")
	}
	if r.PurchaseDate.IsZero() {
		return errors.New("purchaseDate is required")
	}
	if r.TotalValue.LessThan(minMoney) || r.TotalValue.GreaterThan(maxMoney) {
		return errors.New("totalValue must be between 0.01 and 999999999.99")
	}
	if err := r.Buyer.Validate(); err != nil {
		return err
	}
	if len(r.Products) == 0 {
		return errors.New("products are required")
	}
	for _, p := range r.Products {
		if err := p.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (b Buyer) Validate() error {
	switch {
	case b.FirstName == "":
		return errors.New("buyer firstName is required")
	case b.LastName == "":
		return errors.New("buyer lastName is required")
	case b.DocumentNumber == "":
		return errors.New("buyer documentNumber is required")
	case b.Phone == "":
		return errors.New("buyer phone is required")
	}
	return nil
}

func (p Product) Validate() error {
	switch {
	case p.SKU == "":
		return errors.New("product sku is required")
	case p.Name == "":
		return errors.New("product name is required")
	case len(p.Description) > 100:
		return errors.New("product description exceeds 100 characters")
	case p.Price.LessThan(minMoney) || p.Price.GreaterThan(maxMoney):
		return errors.New("product price must be between 0.01 and 999999999.99")
	}
	return nil
}

func (p OrderProduct) Validate() error {
	if err := p.Product.Validate(); err != nil {
		return err
	}
	if p.Quantity < 1 || p.Quantity > 999 {
		return errors.New("product quantity must be between 1 and 999")
	}
	return nil
}
