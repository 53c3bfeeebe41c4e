package handbook

import (
	"context"
	"math"
	"strings"
)

// NoID is the ID given to an entry whose ID cell is missing, malformed or
// duplicated. Such entries are listed but can never be selected.
const NoID = -1

// Entry represents one document in the catalog.
type Entry struct {
	ID          int    `json:"id"`
	SectionName string `json:"sectionName"`

	// SectionOrder sorts the entry within its section.
	// NaN when the source cell is blank or not a number.
	SectionOrder float64 `json:"sectionOrder"`

	Title string `json:"title"`
	URL   string `json:"url"`
	URL2  string `json:"url2,omitempty"`
}

// Validate returns an error if the entry cannot be rendered.
func (e *Entry) Validate() error {
	if strings.TrimSpace(e.URL) == "" {
		return Errorf(EINVALID, "entry %q has no URL", e.Title)
	}
	return nil
}

// HasID reports whether the entry carries a usable ID.
func (e *Entry) HasID() bool {
	return e.ID != NoID
}

// HasOrder reports whether SectionOrder holds a real number.
func (e *Entry) HasOrder() bool {
	return !math.IsNaN(e.SectionOrder)
}

// IsPDF reports whether the primary URL points at a PDF document.
// The decision is based on the URL suffix only.
func (e *Entry) IsPDF() bool {
	return strings.HasSuffix(strings.ToLower(strings.TrimSpace(e.URL)), ".pdf")
}

// SecondaryURL returns URL2 trimmed, or "" when it is blank.
func (e *Entry) SecondaryURL() string {
	return strings.TrimSpace(e.URL2)
}

// CatalogService provides read-only access to the loaded catalog.
type CatalogService interface {
	// Entries returns the catalog in source order. The snapshot is loaded
	// once and returned from memory on later calls until Reload.
	// Callers must not modify the returned entries.
	Entries(ctx context.Context) ([]*Entry, error)

	// FindEntryByID retrieves an entry by ID.
	// Returns ENOTFOUND if no entry has the ID.
	FindEntryByID(ctx context.Context, id int) (*Entry, error)

	// Reload re-reads the source and replaces the snapshot when the source
	// content changed. It reports whether a new snapshot was installed.
	Reload(ctx context.Context) (changed bool, err error)
}
