package application

import (
	"fmt"
	"time"

	"github.com/orderflow-io/orderflow/internal/order/domain"
	"github.com/orderflow-io/orderflow/pkg/dto"
)

// Explicit DTO/domain mapping functions. Enum fields go through the
// fail-closed parsers; an unparsable value is a mapping error, never a
// silent default.

func orderFromRequest(req dto.OrderRequest) (domain.Order, error) {
	channel, err := domain.ParseSourceChannel(req.Channel)
	if err != nil {
		return domain.Order{}, fmt.Errorf("map order request: %w", err)
	}
	return domain.Order{
		ExternalReferenceID: req.ExternalReferenceID,
		Channel:             channel,
		PurchaseDate:        req.PurchaseDate,
		TotalValue:          req.TotalValue,
	}, nil
}

func eventFromDTO(e dto.Event) (domain.Event, error) {
	eventType, err := domain.ParseOrderStatus(e.Type)
	if err != nil {
		return domain.Event{}, fmt.Errorf("map event: %w", err)
	}
	date := e.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}
	return domain.Event{
		EventID: e.ID,
		Type:    eventType,
		Date:    date.UTC(),
		User:    e.User,
	}, nil
}

func eventToDTO(e domain.Event) dto.Event {
	return dto.Event{
		ID:   e.EventID,
		Type: e.Type.String(),
		Date: e.Date,
		User: e.User,
	}
}

func eventsToDTO(events []domain.Event) []dto.Event {
	out := make([]dto.Event, 0, len(events))
	for _, e := range events {
		out = append(out, eventToDTO(e))
	}
	return out
}

func orderToDTO(o domain.Order, buyer dto.Buyer, products []dto.OrderProduct) dto.Order {
	return dto.Order{
		OrderRequest: dto.OrderRequest{
			ExternalReferenceID: o.ExternalReferenceID,
			Channel:             o.Channel.String(),
			PurchaseDate:        o.PurchaseDate,
			TotalValue:          o.TotalValue,
			Buyer:               buyer,
			Products:            products,
		},
		OrderID: o.OrderID,
		Status:  o.Status.String(),
		Events:  eventsToDTO(o.Events),
	}
}

func orderToTranslated(o domain.Order, buyer dto.Buyer, products []dto.OrderProduct) dto.OrderTranslated {
	return dto.OrderTranslated{
		OrderID:             o.OrderID,
		ExternalReferenceID: o.ExternalReferenceID,
		Channel:             o.Channel.String(),
		ChannelTranslate:    o.Channel.Translate(),
		PurchaseDate:        o.PurchaseDate,
		TotalValue:          o.TotalValue,
		Buyer:               buyer,
		Products:            products,
		Status:              o.Status.String(),
		StatusTranslate:     o.Status.Translate(),
		Events:              eventsToDTO(o.Events),
	}
}

func orderToCreated(o domain.Order) dto.OrderCreated {
	return dto.OrderCreated{
		OrderID:   o.OrderID,
		Status:    o.Status.String(),
		UpdatedOn: time.Now().UTC(),
	}
}
