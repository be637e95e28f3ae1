// Package integration provides the container environment (postgres +
// kafka) the end-to-end tests run against.
package integration

import (
	"context"
	"time"

	"github.com/testcontainers/testcontainers-go/modules/kafka"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

type Env struct {
	PG        *postgres.PostgresContainer
	Kafka     *kafka.KafkaContainer
	PGURL     string
	KafkaAddr []string
	Cancel    context.CancelFunc
}

// SetupPostgres starts only the postgres container, for tests that do
// not need a broker.
func SetupPostgres(ctx context.Context) (*Env, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)

	pgC, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("orderflow"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
	)
	if err != nil {
		cancel()
		return nil, err
	}

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		cancel()
		return nil, err
	}

	return &Env{PG: pgC, PGURL: pgURL, Cancel: cancel}, nil
}

// Setup starts the full environment: postgres plus kafka.
func Setup(ctx context.Context) (*Env, error) {
	env, err := SetupPostgres(ctx)
	if err != nil {
		return nil, err
	}

	kafkaC, err := kafka.Run(ctx,
		"confluentinc/confluent-local:7.5.0",
		kafka.WithClusterID("orderflow-test"),
	)
	if err != nil {
		env.Teardown(ctx)
		return nil, err
	}

	brokers, err := kafkaC.Brokers(ctx)
	if err != nil {
		_ = kafkaC.Terminate(ctx)
		env.Teardown(ctx)
		return nil, err
	}

	env.Kafka = kafkaC
	env.KafkaAddr = brokers
	return env, nil
}

func (e *Env) Teardown(ctx context.Context) {
	e.Cancel()
	if e.Kafka != nil {
		_ = e.Kafka.Terminate(ctx)
	}
	_ = e.PG.Terminate(ctx)
}
