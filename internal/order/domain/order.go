// Package domain holds the order aggregate: the order document, its
// embedded product lines and its append-only event history.
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is the aggregate root. OrderID is the public sequential id issued
// by the counter service; ID is the storage-level id. Events is
// append-only and always starts with the synthetic Created event; Status
// mirrors the type of the most recently accepted event.
type Order struct {
	ID                  string          `json:"-"`
	OrderID             int             `json:"orderId"`
	ExternalReferenceID string          `json:"externalReferenceId"`
	Channel             SourceChannel   `json:"channel"`
	PurchaseDate        time.Time       `json:"purchaseDate"`
	TotalValue          decimal.Decimal `json:"totalValue"`
	BuyerID             string          `json:"buyerId"`
	OrderProducts       []OrderProduct  `json:"orderProducts"`
	Status              OrderStatus     `json:"status"`
	Events              []Event         `json:"events"`
}

// OrderProduct references a product owned by the product service; only
// the id and the purchased quantity are stored with the order.
type OrderProduct struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// Event records one accepted status transition. Events are never mutated
// or removed once appended.
type Event struct {
	EventID string      `json:"eventId"`
	Type    OrderStatus `json:"type"`
	Date    time.Time   `json:"date"`
	User    string      `json:"user"`
}

// LatestEvent returns the most recently appended event, or false for an
// order with no history.
func (o Order) LatestEvent() (Event, bool) {
	if len(o.Events) == 0 {
		return Event{}, false
	}
	return o.Events[len(o.Events)-1], true
}
