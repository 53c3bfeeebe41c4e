package mock

import (
	"context"

	"github.com/fwojciec/handbook"
)

var _ handbook.CatalogService = (*CatalogService)(nil)

// CatalogService is a mock implementation of handbook.CatalogService.
type CatalogService struct {
	EntriesFn       func(ctx context.Context) ([]*handbook.Entry, error)
	FindEntryByIDFn func(ctx context.Context, id int) (*handbook.Entry, error)
	ReloadFn        func(ctx context.Context) (bool, error)
}

func (s *CatalogService) Entries(ctx context.Context) ([]*handbook.Entry, error) {
	return s.EntriesFn(ctx)
}

func (s *CatalogService) FindEntryByID(ctx context.Context, id int) (*handbook.Entry, error) {
	return s.FindEntryByIDFn(ctx, id)
}

func (s *CatalogService) Reload(ctx context.Context) (bool, error) {
	return s.ReloadFn(ctx)
}

// NewCatalogService returns a CatalogService serving a fixed set of entries.
func NewCatalogService(entries []*handbook.Entry) *CatalogService {
	return &CatalogService{
		EntriesFn: func(ctx context.Context) ([]*handbook.Entry, error) {
			return entries, nil
		},
		FindEntryByIDFn: func(ctx context.Context, id int) (*handbook.Entry, error) {
			if e := handbook.FindEntry(entries, id); e != nil {
				return e, nil
			}
			return nil, handbook.Errorf(handbook.ENOTFOUND, "entry %d not found", id)
		},
		ReloadFn: func(ctx context.Context) (bool, error) {
			return false, nil
		},
	}
}
