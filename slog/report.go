package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/handbook"
)

// Ensure LoggingReportService implements handbook.ReportService.
var _ handbook.ReportService = (*LoggingReportService)(nil)

// LoggingReportService wraps a ReportService with logging.
type LoggingReportService struct {
	next   handbook.ReportService
	logger *slog.Logger
}

// NewLoggingReportService creates a new LoggingReportService.
func NewLoggingReportService(next handbook.ReportService, logger *slog.Logger) *LoggingReportService {
	return &LoggingReportService{next: next, logger: logger}
}

// SubmitReport delegates to the wrapped service and logs the outcome.
func (s *LoggingReportService) SubmitReport(ctx context.Context, r *handbook.Report) (result *handbook.DispatchResult, err error) {
	defer func(begin time.Time) {
		var status handbook.DispatchStatus
		var code int
		if result != nil {
			status, code = result.Status, result.StatusCode
		}
		level := slog.LevelInfo
		if err != nil {
			level = slog.LevelWarn
		}
		s.logger.Log(ctx, level, "report dispatch",
			"category", string(r.Category),
			"url", r.URL,
			"status", string(status),
			"code", code,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.SubmitReport(ctx, r)
}
