package mock

import (
	"context"

	"github.com/fwojciec/handbook"
)

var _ handbook.Mailer = (*Mailer)(nil)

// Mailer is a mock implementation of handbook.Mailer.
type Mailer struct {
	SendFn func(ctx context.Context, msg *handbook.Message) (int, error)
}

func (m *Mailer) Send(ctx context.Context, msg *handbook.Message) (int, error) {
	return m.SendFn(ctx, msg)
}

var _ handbook.ReportService = (*ReportService)(nil)

// ReportService is a mock implementation of handbook.ReportService.
type ReportService struct {
	SubmitReportFn func(ctx context.Context, r *handbook.Report) (*handbook.DispatchResult, error)
}

func (s *ReportService) SubmitReport(ctx context.Context, r *handbook.Report) (*handbook.DispatchResult, error) {
	return s.SubmitReportFn(ctx, r)
}
