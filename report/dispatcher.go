// Package report relays link reports through a handbook.Mailer.
package report

import (
	"context"
	"fmt"

	"github.com/fwojciec/handbook"
)

// DefaultAppName identifies the application in report subjects.
const DefaultAppName = "Handbook"

// Ensure Dispatcher implements handbook.ReportService at compile time.
var _ handbook.ReportService = (*Dispatcher)(nil)

// Dispatcher sends one email per submitted report. It never retries.
type Dispatcher struct {
	Mailer  handbook.Mailer
	Config  handbook.MailConfig
	AppName string
}

// NewDispatcher creates a Dispatcher.
func NewDispatcher(mailer handbook.Mailer, cfg handbook.MailConfig, appName string) *Dispatcher {
	return &Dispatcher{Mailer: mailer, Config: cfg, AppName: appName}
}

// SubmitReport validates the report and relays it. Only a 202 response
// counts as sent.
func (d *Dispatcher) SubmitReport(ctx context.Context, r *handbook.Report) (*handbook.DispatchResult, error) {
	if err := r.Validate(); err != nil {
		return &handbook.DispatchResult{Status: handbook.DispatchInvalid}, err
	}
	if !d.Config.Complete() || d.Mailer == nil {
		return &handbook.DispatchResult{Status: handbook.DispatchConfigError},
			handbook.Errorf(handbook.ECONFIG, "report mail is not configured")
	}

	code, err := d.Mailer.Send(ctx, d.message(r))
	if err != nil {
		return &handbook.DispatchResult{Status: handbook.DispatchFailed},
			fmt.Errorf("send report: %w", err)
	}
	if code != 202 {
		return &handbook.DispatchResult{Status: handbook.DispatchFailed, StatusCode: code},
			handbook.Errorf(handbook.EUPSTREAM, "mail service returned status %d", code)
	}

	return &handbook.DispatchResult{Status: handbook.DispatchSent, StatusCode: code}, nil
}

func (d *Dispatcher) message(r *handbook.Report) *handbook.Message {
	app := d.AppName
	if app == "" {
		app = DefaultAppName
	}
	return &handbook.Message{
		From:    d.Config.From,
		To:      d.Config.To,
		Subject: Subject(app, r.Category),
		Body:    Body(r),
	}
}

// Subject returns the subject line for a report.
func Subject(appName string, c handbook.Category) string {
	return fmt.Sprintf("[%s] Link report - %s", appName, c)
}

// Body returns the plain-text body for a report.
func Body(r *handbook.Report) string {
	return fmt.Sprintf("A link report was submitted.\n\nCategory: %s\nURL: %s\n", r.Category, r.URL)
}
