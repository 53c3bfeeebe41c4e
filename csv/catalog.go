package csv

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/handbook"
	"golang.org/x/sync/singleflight"
)

// Ensure Catalog implements handbook.CatalogService at compile time.
var _ handbook.CatalogService = (*Catalog)(nil)

// Catalog is a handbook.CatalogService backed by a CSV file.
// The file is parsed on first use and kept in memory; it is read again only
// when Reload is called, and re-parsed only if its content changed.
type Catalog struct {
	path string

	mu   sync.RWMutex
	snap *snapshot

	// loads coalesces concurrent first loads and reloads.
	loads singleflight.Group
}

type snapshot struct {
	entries []*handbook.Entry
	byID    map[int]*handbook.Entry
	hash    uint64
}

// NewCatalog creates a Catalog reading the file at path.
func NewCatalog(path string) *Catalog {
	return &Catalog{path: path}
}

// Path returns the source file path.
func (c *Catalog) Path() string {
	return c.path
}

// Entries returns the catalog in source order.
func (c *Catalog) Entries(ctx context.Context) ([]*handbook.Entry, error) {
	snap, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	return snap.entries, nil
}

// FindEntryByID retrieves an entry by ID.
func (c *Catalog) FindEntryByID(ctx context.Context, id int) (*handbook.Entry, error) {
	snap, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	entry, ok := snap.byID[id]
	if !ok {
		return nil, handbook.Errorf(handbook.ENOTFOUND, "entry %d not found", id)
	}
	return entry, nil
}

// Reload re-reads the file. The current snapshot is kept when the content
// is unchanged or when reading or parsing fails.
func (c *Catalog) Reload(ctx context.Context) (bool, error) {
	return c.refresh(ctx)
}

func (c *Catalog) load(ctx context.Context) (*snapshot, error) {
	if snap := c.current(); snap != nil {
		return snap, nil
	}
	if _, err := c.refresh(ctx); err != nil {
		return nil, err
	}
	return c.current(), nil
}

func (c *Catalog) current() *snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snap
}

func (c *Catalog) refresh(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	v, err, _ := c.loads.Do("refresh", func() (any, error) {
		data, err := os.ReadFile(c.path)
		if err != nil {
			return false, fmt.Errorf("failed to read catalog %q: %w", c.path, err)
		}

		sum := xxhash.Sum64(data)
		if prev := c.current(); prev != nil && prev.hash == sum {
			return false, nil
		}

		entries, err := Parse(bytes.NewReader(data))
		if err != nil {
			return false, err
		}

		byID := make(map[int]*handbook.Entry, len(entries))
		for _, e := range entries {
			if e.HasID() {
				byID[e.ID] = e
			}
		}

		c.mu.Lock()
		c.snap = &snapshot{entries: entries, byID: byID, hash: sum}
		c.mu.Unlock()
		return true, nil
	})
	if err != nil {
		return false, err
	}
	return v.(bool), nil
}
