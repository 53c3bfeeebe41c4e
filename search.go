package handbook

import (
	"strings"

	"golang.org/x/text/cases"
)

// FilterEntries returns the entries whose title contains term, ignoring case.
// Relative order is preserved. An empty term returns entries unchanged.
func FilterEntries(entries []*Entry, term string) []*Entry {
	if term == "" {
		return entries
	}

	// cases.Caser is stateful, so each call gets its own.
	fold := cases.Fold()
	needle := fold.String(term)

	filtered := make([]*Entry, 0, len(entries))
	for _, e := range entries {
		if strings.Contains(fold.String(e.Title), needle) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// FindEntry returns the entry with the given ID, or nil when there is none.
// NoID never matches.
func FindEntry(entries []*Entry, id int) *Entry {
	if id == NoID {
		return nil
	}
	for _, e := range entries {
		if e.ID == id {
			return e
		}
	}
	return nil
}
