package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/handbook"
)

// Ensure LoggingCatalogService implements handbook.CatalogService.
var _ handbook.CatalogService = (*LoggingCatalogService)(nil)

// LoggingCatalogService wraps a CatalogService with logging for loads.
// Lookups are not logged; they happen on every request.
type LoggingCatalogService struct {
	next   handbook.CatalogService
	logger *slog.Logger
}

// NewLoggingCatalogService creates a new LoggingCatalogService.
func NewLoggingCatalogService(next handbook.CatalogService, logger *slog.Logger) *LoggingCatalogService {
	return &LoggingCatalogService{next: next, logger: logger}
}

// Entries delegates to the wrapped service and logs failures.
func (s *LoggingCatalogService) Entries(ctx context.Context) ([]*handbook.Entry, error) {
	entries, err := s.next.Entries(ctx)
	if err != nil {
		s.logger.Error("catalog load", "err", err)
	}
	return entries, err
}

// FindEntryByID delegates to the wrapped service.
func (s *LoggingCatalogService) FindEntryByID(ctx context.Context, id int) (*handbook.Entry, error) {
	return s.next.FindEntryByID(ctx, id)
}

// Reload delegates to the wrapped service and logs the outcome.
func (s *LoggingCatalogService) Reload(ctx context.Context) (changed bool, err error) {
	defer func(begin time.Time) {
		s.logger.Info("catalog reload",
			"changed", changed,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Reload(ctx)
}
