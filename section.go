package handbook

import (
	"sort"
)

// Section represents a named group of entries in the navigation list.
type Section struct {
	Name    string   `json:"name"`
	Entries []*Entry `json:"entries"`
}

// GroupBySection partitions entries by section name. Sections appear in the
// order their first entry appears. Within a section entries are sorted by
// SectionOrder ascending; entries without a valid order go last, and ties
// keep their input order.
func GroupBySection(entries []*Entry) []Section {
	if len(entries) == 0 {
		return nil
	}

	index := make(map[string]int)
	var sections []Section

	for _, e := range entries {
		i, ok := index[e.SectionName]
		if !ok {
			i = len(sections)
			index[e.SectionName] = i
			sections = append(sections, Section{Name: e.SectionName})
		}
		sections[i].Entries = append(sections[i].Entries, e)
	}

	for i := range sections {
		sortBySectionOrder(sections[i].Entries)
	}

	return sections
}

func sortBySectionOrder(entries []*Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		switch {
		case !a.HasOrder():
			return false
		case !b.HasOrder():
			return true
		default:
			return a.SectionOrder < b.SectionOrder
		}
	})
}
