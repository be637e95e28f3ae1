package postgres

import (
	"context"
	_ "embed"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orderflow-io/orderflow/internal/order/application"
	"github.com/orderflow-io/orderflow/internal/order/domain"
	"github.com/orderflow-io/orderflow/pkg/apperr"
	"github.com/orderflow-io/orderflow/pkg/logging"
	"github.com/orderflow-io/orderflow/pkg/outbox"
	"github.com/orderflow-io/orderflow/test/integration"
)

//go:embed schema.sql
var schema string

func setupRepo(t *testing.T) (*Repository, *pgxpool.Pool) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	ctx := context.Background()
	env, err := integration.SetupPostgres(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { env.Teardown(context.Background()) })

	pool, err := pgxpool.New(ctx, env.PGURL)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = pool.Exec(ctx, schema)
	require.NoError(t, err)

	return NewRepository(logging.New("test"), pool), pool
}

func sampleOrder(orderID int) domain.Order {
	return domain.Order{
		OrderID:             orderID,
		ExternalReferenceID: "ref-100",
		Channel:             domain.ChannelEcommerce,
		PurchaseDate:        time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
		TotalValue:          decimal.RequireFromString("150.00"),
		BuyerID:             "buyer-1",
		OrderProducts:       []domain.OrderProduct{{ProductID: "prod-1", Quantity: 2}},
		Status:              domain.StatusCreated,
		Events: []domain.Event{{
			EventID: "event-001",
			Type:    domain.StatusCreated,
			Date:    time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
			User:    "System",
		}},
	}
}

func TestRepository(t *testing.T) {
	repo, pool := setupRepo(t)
	ctx := context.Background()

	t.Run("add and get roundtrip", func(t *testing.T) {
		id, err := repo.Add(ctx, sampleOrder(1))
		require.NoError(t, err)
		assert.NotEmpty(t, id)

		got, err := repo.GetByOrderID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, 1, got.OrderID)
		assert.Equal(t, "ref-100", got.ExternalReferenceID)
		assert.Equal(t, domain.ChannelEcommerce, got.Channel)
		assert.True(t, got.TotalValue.Equal(decimal.RequireFromString("150.00")))
		require.Len(t, got.OrderProducts, 1)
		assert.Equal(t, "prod-1", got.OrderProducts[0].ProductID)
		require.Len(t, got.Events, 1)
		assert.Equal(t, "event-001", got.Events[0].EventID)
	})

	t.Run("get missing order", func(t *testing.T) {
		_, err := repo.GetByOrderID(ctx, 999)
		assert.True(t, apperr.IsNotFound(err))
	})

	t.Run("uniqueness is case-insensitive per channel", func(t *testing.T) {
		unique, err := repo.IsUniqueExternalReference(ctx, "REF-100", domain.ChannelEcommerce)
		require.NoError(t, err)
		assert.False(t, unique)

		unique, err = repo.IsUniqueExternalReference(ctx, "ref-100", domain.ChannelStore)
		require.NoError(t, err)
		assert.True(t, unique)

		unique, err = repo.IsUniqueExternalReference(ctx, "ref-other", domain.ChannelEcommerce)
		require.NoError(t, err)
		assert.True(t, unique)
	})

	t.Run("append event moves the status", func(t *testing.T) {
		event := domain.Event{
			EventID: "pay-1",
			Type:    domain.StatusPaymentReceived,
			Date:    time.Now().UTC(),
			User:    "cashier",
		}
		appended, err := repo.AppendEvent(ctx, 1, event, domain.StatusCreated)
		require.NoError(t, err)
		assert.True(t, appended)

		got, err := repo.GetByOrderID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusPaymentReceived, got.Status)
		require.Len(t, got.Events, 2)
		latest, ok := got.LatestEvent()
		require.True(t, ok)
		assert.Equal(t, "pay-1", latest.EventID)
	})

	t.Run("stale append loses", func(t *testing.T) {
		// The order moved to PaymentReceived above; a transition decided
		// against the Created snapshot must not apply.
		appended, err := repo.AppendEvent(ctx, 1,
			domain.Event{EventID: "cancel-1", Type: domain.StatusCancelled, Date: time.Now().UTC(), User: "cashier"},
			domain.StatusCreated)
		require.NoError(t, err)
		assert.False(t, appended)

		got, err := repo.GetByOrderID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusPaymentReceived, got.Status)
		assert.Len(t, got.Events, 2)
	})

	t.Run("append to missing order reports no match", func(t *testing.T) {
		appended, err := repo.AppendEvent(ctx, 999,
			domain.Event{EventID: "x", Type: domain.StatusCancelled}, domain.StatusCreated)
		require.NoError(t, err)
		assert.False(t, appended)
	})

	t.Run("search or and and composition", func(t *testing.T) {
		other := sampleOrder(2)
		other.ExternalReferenceID = "ref-200"
		other.BuyerID = "buyer-2"
		other.PurchaseDate = time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
		_, err := repo.Add(ctx, other)
		require.NoError(t, err)

		orderID := 1
		buyerID := "buyer-2"
		got, err := repo.Search(ctx, application.SearchFilters{OrderID: &orderID, BuyerID: &buyerID})
		require.NoError(t, err)
		assert.Len(t, got, 2)

		from := time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC)
		got, err = repo.Search(ctx, application.SearchFilters{OrderID: &orderID, BuyerID: &buyerID, CreatedFrom: &from})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, 2, got[0].OrderID)

		got, err = repo.Search(ctx, application.SearchFilters{})
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("mutations write outbox rows", func(t *testing.T) {
		store := NewOutboxStore(logging.New("test"), pool)

		events, err := store.LockBatch(ctx, "relay-test", 10, 5*time.Second)
		require.NoError(t, err)
		require.NotEmpty(t, events)

		types := map[string]int{}
		ids := make([]int64, 0, len(events))
		for _, e := range events {
			types[e.Type]++
			ids = append(ids, e.ID)
		}
		assert.Equal(t, 2, types[outbox.TypeOrderCreated])
		assert.Equal(t, 1, types[outbox.TypeOrderStatusChanged])

		// Locked rows are invisible to a second relay.
		again, err := store.LockBatch(ctx, "relay-other", 10, 5*time.Second)
		require.NoError(t, err)
		assert.Empty(t, again)

		require.NoError(t, store.MarkSent(ctx, ids))
	})
}
