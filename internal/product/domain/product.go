package domain

import "github.com/shopspring/decimal"

// Product is a sellable product. SKU is the natural key used for
// idempotent get-or-insert.
type Product struct {
	ID          string
	SKU         string
	Name        string
	Description string
	Price       decimal.Decimal
}
