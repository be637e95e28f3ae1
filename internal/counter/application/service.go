// Package application implements the sequence generator: a named counter
// whose next value is issued by a single atomic upsert-increment, so two
// concurrent callers can never receive the same value.
package application

import (
	"context"
	"log/slog"
)

type CounterRepository interface {
	// IncrementAndGet atomically bumps the named counter and returns the
	// post-increment value, creating the counter at 1 on first use.
	IncrementAndGet(ctx context.Context, sequenceName string) (int, error)
}

type Service struct {
	log  *slog.Logger
	repo CounterRepository
}

func NewService(log *slog.Logger, repo CounterRepository) *Service {
	return &Service{log: log, repo: repo}
}

// NextValue issues the next value of the named sequence. Persistence
// errors surface unchanged; there is no retry here.
func (s *Service) NextValue(ctx context.Context, sequenceName string) (int, error) {
	value, err := s.repo.IncrementAndGet(ctx, sequenceName)
	if err != nil {
		return 0, err
	}
	s.log.Info("sequence value issued", "sequence", sequenceName, "value", value)
	return value, nil
}
