// Package dto holds the wire types exchanged between the order, buyer and
// product services. Field names follow the public JSON contract.
package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type Buyer struct {
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	DocumentNumber string `json:"documentNumber"`
	Phone          string `json:"phone"`
}

type Product struct {
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
}

// OrderProduct is a product line inside an order: the full product data
// plus the purchased quantity.
type OrderProduct struct {
	Product
	Quantity int `json:"quantity"`
}

type Event struct {
	ID   string    `json:"id"`
	Type string    `json:"type"`
	Date time.Time `json:"date"`
	User string    `json:"user"`
}

type OrderRequest struct {
	ExternalReferenceID string          `json:"externalReferenceId"`
	Channel             string          `json:"channel"`
	PurchaseDate        time.Time       `json:"purchaseDate"`
	TotalValue          decimal.Decimal `json:"totalValue"`
	Buyer               Buyer           `json:"buyer"`
	Products            []OrderProduct  `json:"products"`
}

type Order struct {
	OrderRequest
	OrderID int     `json:"orderId"`
	Status  string  `json:"status"`
	Events  []Event `json:"events"`
}

// OrderTranslated is the full order enriched with localized channel and
// status labels.
type OrderTranslated struct {
	OrderID             int             `json:"orderId"`
	ExternalReferenceID string          `json:"externalReferenceId"`
	Channel             string          `json:"channel"`
	ChannelTranslate    string          `json:"channelTranslate"`
	PurchaseDate        time.Time       `json:"purchaseDate"`
	TotalValue          decimal.Decimal `json:"totalValue"`
	Buyer               Buyer           `json:"buyer"`
	Products            []OrderProduct  `json:"products"`
	Status              string          `json:"status"`
	StatusTranslate     string          `json:"statusTranslate"`
	Events              []Event         `json:"events"`
}

type OrderCreated struct {
	OrderID   int       `json:"orderId"`
	Status    string    `json:"status"`
	UpdatedOn time.Time `json:"updatedOn"`
}

type EventAdded struct {
	OrderID        int       `json:"orderId"`
	PreviousStatus string    `json:"previousStatus"`
	NewStatus      string    `json:"newStatus"`
	UpdatedOn      time.Time `json:"updatedOn"`
}
