package memory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/fwojciec/handbook"
	"github.com/fwojciec/handbook/memory"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionService_CreateSession(t *testing.T) {
	t.Parallel()

	t.Run("creates session with UUID and no selection", func(t *testing.T) {
		t.Parallel()

		svc := memory.NewSessionService()

		session, err := svc.CreateSession(context.Background())

		require.NoError(t, err)
		_, err = uuid.Parse(session.ID)
		assert.NoError(t, err)
		_, ok := session.Current()
		assert.False(t, ok)
	})

	t.Run("creates distinct sessions", func(t *testing.T) {
		t.Parallel()

		svc := memory.NewSessionService()
		ctx := context.Background()

		a, err := svc.CreateSession(ctx)
		require.NoError(t, err)
		b, err := svc.CreateSession(ctx)
		require.NoError(t, err)

		assert.NotEqual(t, a.ID, b.ID)
		assert.Equal(t, 2, svc.Len())
	})
}

func TestSessionService_FindSessionByID(t *testing.T) {
	t.Parallel()

	t.Run("returns the same session state", func(t *testing.T) {
		t.Parallel()

		svc := memory.NewSessionService()
		ctx := context.Background()
		created, err := svc.CreateSession(ctx)
		require.NoError(t, err)
		created.Select(5)

		found, err := svc.FindSessionByID(ctx, created.ID)

		require.NoError(t, err)
		id, ok := found.Current()
		assert.True(t, ok)
		assert.Equal(t, 5, id)
	})

	t.Run("keeps selections of sessions apart", func(t *testing.T) {
		t.Parallel()

		svc := memory.NewSessionService()
		ctx := context.Background()
		a, err := svc.CreateSession(ctx)
		require.NoError(t, err)
		b, err := svc.CreateSession(ctx)
		require.NoError(t, err)

		a.Select(1)

		_, ok := b.Current()
		assert.False(t, ok)
	})

	t.Run("returns ENOTFOUND for unknown ID", func(t *testing.T) {
		t.Parallel()

		svc := memory.NewSessionService()

		_, err := svc.FindSessionByID(context.Background(), "nope")

		require.Error(t, err)
		assert.Equal(t, handbook.ENOTFOUND, handbook.ErrorCode(err))
	})

	t.Run("is safe for concurrent use", func(t *testing.T) {
		t.Parallel()

		svc := memory.NewSessionService()
		ctx := context.Background()

		var wg sync.WaitGroup
		for i := 0; i < 16; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				s, err := svc.CreateSession(ctx)
				if !assert.NoError(t, err) {
					return
				}
				_, err = svc.FindSessionByID(ctx, s.ID)
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		assert.Equal(t, 16, svc.Len())
	})
}

// clock is a manually advanced time source.
type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newClockedService(ttl time.Duration) (*memory.SessionService, *clock) {
	c := &clock{now: time.Date(2025, 4, 14, 9, 0, 0, 0, time.UTC)}
	svc := memory.NewSessionService()
	svc.TTL = ttl
	svc.Now = c.Now
	return svc, c
}

func TestSessionService_Expiry(t *testing.T) {
	t.Parallel()

	t.Run("idle session expires after the TTL", func(t *testing.T) {
		t.Parallel()

		svc, c := newClockedService(time.Hour)
		ctx := context.Background()
		s, err := svc.CreateSession(ctx)
		require.NoError(t, err)

		c.Advance(time.Hour + time.Second)
		_, err = svc.FindSessionByID(ctx, s.ID)

		assert.Equal(t, handbook.ENOTFOUND, handbook.ErrorCode(err))
		assert.Equal(t, 0, svc.Len())
	})

	t.Run("activity keeps a session alive", func(t *testing.T) {
		t.Parallel()

		svc, c := newClockedService(time.Hour)
		ctx := context.Background()
		s, err := svc.CreateSession(ctx)
		require.NoError(t, err)

		for i := 0; i < 3; i++ {
			c.Advance(50 * time.Minute)
			_, err = svc.FindSessionByID(ctx, s.ID)
			require.NoError(t, err)
		}
	})

	t.Run("creating a session sweeps expired ones", func(t *testing.T) {
		t.Parallel()

		svc, c := newClockedService(time.Hour)
		ctx := context.Background()
		for i := 0; i < 1000; i++ {
			_, err := svc.CreateSession(ctx)
			require.NoError(t, err)
		}
		require.Equal(t, 1000, svc.Len())

		c.Advance(2 * time.Hour)
		_, err := svc.CreateSession(ctx)

		require.NoError(t, err)
		assert.Equal(t, 1, svc.Len())
	})

	t.Run("zero TTL keeps sessions", func(t *testing.T) {
		t.Parallel()

		svc, c := newClockedService(0)
		ctx := context.Background()
		s, err := svc.CreateSession(ctx)
		require.NoError(t, err)

		c.Advance(1000 * time.Hour)
		_, err = svc.FindSessionByID(ctx, s.ID)

		assert.NoError(t, err)
	})
}
