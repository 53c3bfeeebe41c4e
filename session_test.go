package handbook_test

import (
	"testing"
	"time"

	"github.com/fwojciec/handbook"
	"github.com/stretchr/testify/assert"
)

func TestSession(t *testing.T) {
	t.Parallel()

	t.Run("starts with nothing selected", func(t *testing.T) {
		t.Parallel()

		s := handbook.NewSession("abc")

		_, ok := s.Current()
		assert.False(t, ok)
		assert.Equal(t, "abc", s.ID)
	})

	t.Run("keeps the last selection", func(t *testing.T) {
		t.Parallel()

		s := handbook.NewSession("abc")
		s.Select(1)
		s.Select(7)

		id, ok := s.Current()
		assert.True(t, ok)
		assert.Equal(t, 7, id)
	})

	t.Run("accepts ids that are not in the catalog", func(t *testing.T) {
		t.Parallel()

		s := handbook.NewSession("abc")
		s.Select(9999)

		id, ok := s.Current()
		assert.True(t, ok)
		assert.Equal(t, 9999, id)
	})

	t.Run("clears the selection", func(t *testing.T) {
		t.Parallel()

		s := handbook.NewSession("abc")
		s.Select(3)
		s.Clear()

		_, ok := s.Current()
		assert.False(t, ok)
	})

	t.Run("records the last activity", func(t *testing.T) {
		t.Parallel()

		s := handbook.NewSession("abc")
		at := time.Date(2025, 4, 14, 9, 0, 0, 0, time.UTC)
		s.Touch(at)

		assert.Equal(t, at, s.LastSeen())
	})

	t.Run("report notice is returned once", func(t *testing.T) {
		t.Parallel()

		s := handbook.NewSession("abc")
		s.SetNotice(handbook.DispatchSent)

		status, ok := s.TakeNotice()
		assert.True(t, ok)
		assert.Equal(t, handbook.DispatchSent, status)

		_, ok = s.TakeNotice()
		assert.False(t, ok)
	})

	t.Run("has no notice until a report is made", func(t *testing.T) {
		t.Parallel()

		s := handbook.NewSession("abc")

		_, ok := s.TakeNotice()
		assert.False(t, ok)
	})
}
