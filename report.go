package handbook

import (
	"context"
	"strings"
)

// Category classifies a link report.
type Category string

// Category constants. The set is closed; free text is never accepted.
const (
	CategoryBroken   Category = "broken link"
	CategoryWrong    Category = "wrong link"
	CategoryOutdated Category = "outdated link"
)

// Categories returns every category in display order.
func Categories() []Category {
	return []Category{CategoryBroken, CategoryWrong, CategoryOutdated}
}

// ParseCategory returns the category named s.
// Returns EINVALID for anything outside the fixed set.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories() {
		if string(c) == s {
			return c, nil
		}
	}
	return "", Errorf(EINVALID, "unknown report category %q", s)
}

// Report is a complaint about the link of the currently selected entry.
// It is built on submission, dispatched once and discarded.
type Report struct {
	Category Category `json:"category"`
	URL      string   `json:"url"`
}

// Validate returns an error if the report contains invalid fields.
func (r *Report) Validate() error {
	if _, err := ParseCategory(string(r.Category)); err != nil {
		return err
	}
	if strings.TrimSpace(r.URL) == "" {
		return Errorf(EINVALID, "report URL required")
	}
	return nil
}

// MailConfig holds the secrets needed to relay reports.
type MailConfig struct {
	APIKey string
	From   string
	To     string
}

// Complete reports whether every setting is present.
func (c MailConfig) Complete() bool {
	return strings.TrimSpace(c.APIKey) != "" &&
		strings.TrimSpace(c.From) != "" &&
		strings.TrimSpace(c.To) != ""
}

// Message is a plain-text email.
type Message struct {
	From    string
	To      string
	Subject string
	Body    string
}

// Mailer delivers messages through an outbound email service.
type Mailer interface {
	// Send delivers msg and returns the service's status code.
	// An error means the request could not be completed at all.
	Send(ctx context.Context, msg *Message) (statusCode int, err error)
}

// DispatchStatus is the outcome of a report submission.
type DispatchStatus string

// DispatchStatus constants.
const (
	DispatchSent        DispatchStatus = "sent"
	DispatchInvalid     DispatchStatus = "invalid"
	DispatchConfigError DispatchStatus = "config"
	DispatchFailed      DispatchStatus = "failed"
)

// DispatchResult describes what happened to a report.
type DispatchResult struct {
	Status DispatchStatus `json:"status"`

	// StatusCode is the email service response code, 0 when no response
	// was received.
	StatusCode int `json:"statusCode,omitempty"`
}

// OK reports whether the report was accepted by the email service.
func (r *DispatchResult) OK() bool {
	return r != nil && r.Status == DispatchSent
}

// ReportService relays link reports.
type ReportService interface {
	// SubmitReport sends exactly one email for a valid report.
	// The result is always non-nil; err is non-nil unless the report was sent.
	SubmitReport(ctx context.Context, report *Report) (*DispatchResult, error)
}
