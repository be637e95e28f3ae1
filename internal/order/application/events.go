package application

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/orderflow-io/orderflow/internal/order/domain"
	"github.com/orderflow-io/orderflow/pkg/dto"
)

// initialEventID is the sentinel id of the synthetic event appended at
// order creation.
const initialEventID = "event-001"

// EventValidation is the outcome of validating an incoming status-change
// event against an order.
type EventValidation struct {
	// ValidAndUnique: the event id is fresh within the order and the
	// transition from the current status is allowed.
	ValidAndUnique bool
	// NotYetProcessed: no event of the same type exists yet. A false
	// here means the caller should acknowledge idempotently without
	// writing.
	NotYetProcessed bool
}

// EventValidator checks status-change events against the transition
// table. The table is the single source of truth: any state change not
// listed is rejected. Self-transitions are structurally allowed but end
// up answered by the already-processed check instead of re-appending.
type EventValidator struct {
	log         *slog.Logger
	transitions map[domain.OrderStatus][]domain.OrderStatus
}

func NewEventValidator(log *slog.Logger) *EventValidator {
	return &EventValidator{
		log: log,
		transitions: map[domain.OrderStatus][]domain.OrderStatus{
			domain.StatusCreated:         {domain.StatusCreated, domain.StatusPaymentReceived, domain.StatusCancelled},
			domain.StatusPaymentReceived: {domain.StatusPaymentReceived, domain.StatusInvoiced},
			domain.StatusInvoiced:        {domain.StatusInvoiced, domain.StatusReturned},
			domain.StatusReturned:        {domain.StatusReturned},
			domain.StatusCancelled:       {domain.StatusCancelled},
		},
	}
}

// Validate parses the event type and checks id uniqueness, transition
// validity and whether the type was already processed. An unparsable
// type fails closed with an error.
func (v *EventValidator) Validate(order domain.Order, event dto.Event) (EventValidation, error) {
	v.log.Info("validating event", "order_id", order.OrderID, "event_id", event.ID)

	eventType, err := domain.ParseOrderStatus(event.Type)
	if err != nil {
		return EventValidation{}, fmt.Errorf("validate event: %w", err)
	}

	isUniqueEventID := true
	isAlreadyProcessed := false
	for _, e := range order.Events {
		if strings.EqualFold(e.EventID, event.ID) {
			isUniqueEventID = false
		}
		if e.Type == eventType {
			isAlreadyProcessed = true
		}
	}

	return EventValidation{
		ValidAndUnique:  isUniqueEventID && v.isValidTransition(order.Status, eventType),
		NotYetProcessed: !isAlreadyProcessed,
	}, nil
}

func (v *EventValidator) isValidTransition(current, next domain.OrderStatus) bool {
	for _, allowed := range v.transitions[current] {
		if allowed == next {
			return true
		}
	}
	return false
}

// CreateInitialEvent builds the synthetic Created event every new order
// starts with.
func (v *EventValidator) CreateInitialEvent() domain.Event {
	return domain.Event{
		EventID: initialEventID,
		Type:    domain.StatusCreated,
		Date:    time.Now().UTC(),
		User:    "System",
	}
}

// BuildEventAddedResult describes an accepted (or idempotently
// acknowledged) transition, stamped with the current UTC time.
func (v *EventValidator) BuildEventAddedResult(orderID int, previousStatus, newStatus domain.OrderStatus) dto.EventAdded {
	return dto.EventAdded{
		OrderID:        orderID,
		PreviousStatus: previousStatus.String(),
		NewStatus:      newStatus.String(),
		UpdatedOn:      time.Now().UTC(),
	}
}
