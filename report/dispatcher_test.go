package report_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/handbook"
	"github.com/fwojciec/handbook/mock"
	"github.com/fwojciec/handbook/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var validConfig = handbook.MailConfig{
	APIKey: "SG.test",
	From:   "noreply@example.com",
	To:     "editor@example.com",
}

func TestDispatcher_SubmitReport(t *testing.T) {
	t.Parallel()

	t.Run("sends one message and succeeds on 202", func(t *testing.T) {
		t.Parallel()

		var sent []*handbook.Message
		mailer := &mock.Mailer{
			SendFn: func(ctx context.Context, msg *handbook.Message) (int, error) {
				sent = append(sent, msg)
				return 202, nil
			},
		}
		d := report.NewDispatcher(mailer, validConfig, "Audit Handbook")

		result, err := d.SubmitReport(context.Background(), &handbook.Report{
			Category: handbook.CategoryBroken,
			URL:      "https://x/doc.pdf",
		})

		require.NoError(t, err)
		assert.True(t, result.OK())
		assert.Equal(t, 202, result.StatusCode)
		require.Len(t, sent, 1)
		assert.Equal(t, "noreply@example.com", sent[0].From)
		assert.Equal(t, "editor@example.com", sent[0].To)
		assert.Equal(t, "[Audit Handbook] Link report - broken link", sent[0].Subject)
		assert.Contains(t, sent[0].Body, "Category: broken link")
		assert.Contains(t, sent[0].Body, "URL: https://x/doc.pdf")
	})

	t.Run("fails on any other status", func(t *testing.T) {
		t.Parallel()

		for _, code := range []int{200, 400, 401, 500} {
			mailer := &mock.Mailer{
				SendFn: func(ctx context.Context, msg *handbook.Message) (int, error) {
					return code, nil
				},
			}
			d := report.NewDispatcher(mailer, validConfig, "")

			result, err := d.SubmitReport(context.Background(), &handbook.Report{
				Category: handbook.CategoryWrong,
				URL:      "https://x/a",
			})

			require.Error(t, err, "status %d", code)
			assert.Equal(t, handbook.EUPSTREAM, handbook.ErrorCode(err))
			assert.False(t, result.OK())
			assert.Equal(t, handbook.DispatchFailed, result.Status)
			assert.Equal(t, code, result.StatusCode)
		}
	})

	t.Run("fails when the mailer returns an error", func(t *testing.T) {
		t.Parallel()

		mailer := &mock.Mailer{
			SendFn: func(ctx context.Context, msg *handbook.Message) (int, error) {
				return 0, errors.New("connection reset")
			},
		}
		d := report.NewDispatcher(mailer, validConfig, "")

		result, err := d.SubmitReport(context.Background(), &handbook.Report{
			Category: handbook.CategoryOutdated,
			URL:      "https://x/a",
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "connection reset")
		assert.Equal(t, handbook.DispatchFailed, result.Status)
		assert.Zero(t, result.StatusCode)
	})

	t.Run("short-circuits without calling the mailer when config is incomplete", func(t *testing.T) {
		t.Parallel()

		for name, cfg := range map[string]handbook.MailConfig{
			"no key":  {From: "a@example.com", To: "b@example.com"},
			"no from": {APIKey: "k", To: "b@example.com"},
			"no to":   {APIKey: "k", From: "a@example.com"},
		} {
			calls := 0
			mailer := &mock.Mailer{
				SendFn: func(ctx context.Context, msg *handbook.Message) (int, error) {
					calls++
					return 202, nil
				},
			}
			d := report.NewDispatcher(mailer, cfg, "")

			result, err := d.SubmitReport(context.Background(), &handbook.Report{
				Category: handbook.CategoryBroken,
				URL:      "https://x/a",
			})

			require.Error(t, err, name)
			assert.Equal(t, handbook.ECONFIG, handbook.ErrorCode(err), name)
			assert.Equal(t, handbook.DispatchConfigError, result.Status, name)
			assert.False(t, result.OK(), name)
			assert.Zero(t, calls, name)
		}
	})

	t.Run("reports config error without a mailer", func(t *testing.T) {
		t.Parallel()

		d := report.NewDispatcher(nil, validConfig, "")

		result, err := d.SubmitReport(context.Background(), &handbook.Report{
			Category: handbook.CategoryBroken,
			URL:      "https://x/a",
		})

		require.Error(t, err)
		assert.Equal(t, handbook.DispatchConfigError, result.Status)
	})

	t.Run("rejects invalid reports before any I/O", func(t *testing.T) {
		t.Parallel()

		calls := 0
		mailer := &mock.Mailer{
			SendFn: func(ctx context.Context, msg *handbook.Message) (int, error) {
				calls++
				return 202, nil
			},
		}
		d := report.NewDispatcher(mailer, validConfig, "")

		result, err := d.SubmitReport(context.Background(), &handbook.Report{
			Category: "something else",
			URL:      "https://x/a",
		})

		require.Error(t, err)
		assert.Equal(t, handbook.EINVALID, handbook.ErrorCode(err))
		assert.Equal(t, handbook.DispatchInvalid, result.Status)
		assert.Zero(t, calls)
	})

	t.Run("sends duplicate emails for duplicate submissions", func(t *testing.T) {
		t.Parallel()

		calls := 0
		mailer := &mock.Mailer{
			SendFn: func(ctx context.Context, msg *handbook.Message) (int, error) {
				calls++
				return 202, nil
			},
		}
		d := report.NewDispatcher(mailer, validConfig, "")
		r := &handbook.Report{Category: handbook.CategoryBroken, URL: "https://x/a"}

		_, err := d.SubmitReport(context.Background(), r)
		require.NoError(t, err)
		_, err = d.SubmitReport(context.Background(), r)
		require.NoError(t, err)

		assert.Equal(t, 2, calls)
	})

	t.Run("uses the default app name", func(t *testing.T) {
		t.Parallel()

		var subject string
		mailer := &mock.Mailer{
			SendFn: func(ctx context.Context, msg *handbook.Message) (int, error) {
				subject = msg.Subject
				return 202, nil
			},
		}
		d := report.NewDispatcher(mailer, validConfig, "")

		_, err := d.SubmitReport(context.Background(), &handbook.Report{
			Category: handbook.CategoryWrong,
			URL:      "https://x/a",
		})

		require.NoError(t, err)
		assert.Equal(t, "[Handbook] Link report - wrong link", subject)
	})
}
