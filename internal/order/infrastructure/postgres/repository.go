// Package postgres persists orders document-style: scalar columns for
// the filterable fields, JSONB arrays for the embedded product lines and
// event history. Outbox rows are written in the same transaction as the
// order mutation they describe.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/orderflow-io/orderflow/internal/order/application"
	"github.com/orderflow-io/orderflow/internal/order/domain"
	"github.com/orderflow-io/orderflow/pkg/apperr"
	"github.com/orderflow-io/orderflow/pkg/outbox"
	"github.com/orderflow-io/orderflow/pkg/tracing"
)

const orderColumns = `id, order_id, external_reference_id, channel, purchase_date,
	total_value::text, buyer_id, order_products, status, events`

type Repository struct {
	log  *slog.Logger
	pool *pgxpool.Pool
}

func NewRepository(log *slog.Logger, pool *pgxpool.Pool) *Repository {
	return &Repository{log: log, pool: pool}
}

// GetByOrderID returns the order with the given public id, or a NotFound
// error when absent.
func (r *Repository) GetByOrderID(ctx context.Context, orderID int) (domain.Order, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE order_id = $1`, orderID)

	order, err := scanOrder(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Order{}, apperr.NewNotFound("Order", "OrderRepository:GetByOrderID")
	}
	if err != nil {
		r.log.Error("get order failed", "order_id", orderID, "err", err)
		return domain.Order{}, apperr.NewDataAccess("OrderRepository:GetByOrderID", err)
	}
	return order, nil
}

// IsUniqueExternalReference reports whether no order exists with the same
// external reference (case-insensitive) in the same channel.
func (r *Repository) IsUniqueExternalReference(ctx context.Context, externalReferenceID string, channel domain.SourceChannel) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM orders
			WHERE lower(external_reference_id) = lower($1) AND channel = $2
		)`, externalReferenceID, string(channel)).Scan(&exists)
	if err != nil {
		r.log.Error("uniqueness check failed", "external_reference_id", externalReferenceID, "err", err)
		return false, apperr.NewDataAccess("OrderRepository:IsUniqueExternalReference", err)
	}
	return !exists, nil
}

// Search combines the identity filters (order id, buyer id, status) with
// OR and the purchase-date range with AND, omitting absent filters.
func (r *Repository) Search(ctx context.Context, filters application.SearchFilters) ([]domain.Order, error) {
	var (
		orConds  []string
		andConds []string
		args     []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filters.OrderID != nil {
		orConds = append(orConds, "order_id = "+arg(*filters.OrderID))
	}
	if filters.BuyerID != nil {
		orConds = append(orConds, "buyer_id = "+arg(*filters.BuyerID))
	}
	if filters.Status != nil {
		orConds = append(orConds, "status = "+arg(string(*filters.Status)))
	}
	if len(orConds) > 0 {
		andConds = append(andConds, "("+strings.Join(orConds, " OR ")+")")
	}
	if filters.CreatedFrom != nil {
		andConds = append(andConds, "purchase_date >= "+arg(filters.CreatedFrom.UTC()))
	}
	if filters.CreatedTo != nil {
		andConds = append(andConds, "purchase_date <= "+arg(filters.CreatedTo.UTC()))
	}

	query := `SELECT ` + orderColumns + ` FROM orders`
	if len(andConds) > 0 {
		query += " WHERE " + strings.Join(andConds, " AND ")
	}
	query += " ORDER BY order_id"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("search orders failed", "err", err)
		return nil, apperr.NewDataAccess("OrderRepository:Search", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, apperr.NewDataAccess("OrderRepository:Search", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.NewDataAccess("OrderRepository:Search", err)
	}
	return orders, nil
}

// Add inserts the order with its embedded products and events, plus an
// OrderCreated outbox row in the same transaction. The purchase date is
// normalized to UTC before writing.
func (r *Repository) Add(ctx context.Context, order domain.Order) (string, error) {
	order.ID = uuid.NewString()
	order.PurchaseDate = order.PurchaseDate.UTC()

	products, err := json.Marshal(order.OrderProducts)
	if err != nil {
		return "", apperr.NewDataAccess("OrderRepository:Add", err)
	}
	events, err := json.Marshal(order.Events)
	if err != nil {
		return "", apperr.NewDataAccess("OrderRepository:Add", err)
	}
	payload, err := json.Marshal(orderCreatedEvent{
		OrderID:             order.OrderID,
		ExternalReferenceID: order.ExternalReferenceID,
		Channel:             string(order.Channel),
		TotalValue:          order.TotalValue,
		BuyerID:             order.BuyerID,
		Status:              string(order.Status),
	})
	if err != nil {
		return "", apperr.NewDataAccess("OrderRepository:Add", err)
	}

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return "", apperr.NewDataAccess("OrderRepository:Add", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	_, err = tx.Exec(ctx,
		`INSERT INTO orders (id, order_id, external_reference_id, channel, purchase_date,
			total_value, buyer_id, order_products, status, events)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		order.ID, order.OrderID, order.ExternalReferenceID, string(order.Channel),
		order.PurchaseDate, order.TotalValue.String(), order.BuyerID, products,
		string(order.Status), events)
	if err != nil {
		r.log.Error("insert order failed", "order_id", order.OrderID, "err", err)
		return "", apperr.NewDataAccess("OrderRepository:Add", err)
	}

	if err := insertOutbox(ctx, tx, order.OrderID, outbox.TypeOrderCreated, payload, tracing.Traceparent(ctx)); err != nil {
		return "", err
	}
	if err := tx.Commit(ctx); err != nil {
		return "", apperr.NewDataAccess("OrderRepository:Add", err)
	}
	return order.ID, nil
}

// AppendEvent appends one event to the order's history and sets the
// status to the event's type, in a single statement conditioned on the
// status the caller read. True only when exactly one row matched and was
// modified; a concurrent transition that got there first leaves nothing
// to match.
func (r *Repository) AppendEvent(ctx context.Context, orderID int, event domain.Event, current domain.OrderStatus) (bool, error) {
	event.Date = event.Date.UTC()

	encoded, err := json.Marshal(event)
	if err != nil {
		return false, apperr.NewDataAccess("OrderRepository:AppendEvent", err)
	}
	payload, err := json.Marshal(statusChangedEvent{
		OrderID: orderID,
		EventID: event.EventID,
		Type:    string(event.Type),
		Date:    event.Date,
		User:    event.User,
	})
	if err != nil {
		return false, apperr.NewDataAccess("OrderRepository:AppendEvent", err)
	}

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return false, apperr.NewDataAccess("OrderRepository:AppendEvent", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	ct, err := tx.Exec(ctx,
		`UPDATE orders SET events = events || $2::jsonb, status = $3
		 WHERE order_id = $1 AND status = $4`,
		orderID, encoded, string(event.Type), string(current))
	if err != nil {
		r.log.Error("append event failed", "order_id", orderID, "err", err)
		return false, apperr.NewDataAccess("OrderRepository:AppendEvent", err)
	}
	if ct.RowsAffected() != 1 {
		return false, nil
	}

	if err := insertOutbox(ctx, tx, orderID, outbox.TypeOrderStatusChanged, payload, tracing.Traceparent(ctx)); err != nil {
		return false, err
	}
	if err := tx.Commit(ctx); err != nil {
		return false, apperr.NewDataAccess("OrderRepository:AppendEvent", err)
	}
	return true, nil
}

type orderCreatedEvent struct {
	OrderID             int             `json:"orderId"`
	ExternalReferenceID string          `json:"externalReferenceId"`
	Channel             string          `json:"channel"`
	TotalValue          decimal.Decimal `json:"totalValue"`
	BuyerID             string          `json:"buyerId"`
	Status              string          `json:"status"`
}

type statusChangedEvent struct {
	OrderID int       `json:"orderId"`
	EventID string    `json:"eventId"`
	Type    string    `json:"type"`
	Date    time.Time `json:"date"`
	User    string    `json:"user"`
}

func insertOutbox(ctx context.Context, tx pgx.Tx, orderID int, eventType string, payload []byte, traceparent string) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO outbox (aggregate_type, aggregate_id, type, payload, traceparent, status)
		 VALUES ('order', $1, $2, $3, $4, 'pending')`,
		fmt.Sprint(orderID), eventType, payload, traceparent)
	if err != nil {
		return apperr.NewDataAccess("OrderRepository:insertOutbox", err)
	}
	return nil
}

func scanOrder(row pgx.Row) (domain.Order, error) {
	var (
		o        domain.Order
		channel  string
		status   string
		total    string
		products []byte
		events   []byte
	)
	err := row.Scan(&o.ID, &o.OrderID, &o.ExternalReferenceID, &channel, &o.PurchaseDate,
		&total, &o.BuyerID, &products, &status, &events)
	if err != nil {
		return domain.Order{}, err
	}

	o.Channel = domain.SourceChannel(channel)
	o.Status = domain.OrderStatus(status)
	if o.TotalValue, err = decimal.NewFromString(total); err != nil {
		return domain.Order{}, fmt.Errorf("decode total_value: %w", err)
	}
	if err := json.Unmarshal(products, &o.OrderProducts); err != nil {
		return domain.Order{}, fmt.Errorf("decode order_products: %w", err)
	}
	if err := json.Unmarshal(events, &o.Events); err != nil {
		return domain.Order{}, fmt.Errorf("decode events: %w", err)
	}
	return o, nil
}
