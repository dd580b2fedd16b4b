package ledger

import "strings"

// Filter narrows a Query. Zero-valued fields do not filter.
type Filter struct {
	Month    *Month
	Type     *Type
	Category string
	// Search is matched case-insensitively against note and category.
	Search string
	// Limit caps the number of results when positive.
	Limit int
}

func (f Filter) Matches(t Transaction) bool {
	if f.Month != nil && !f.Month.Contains(t.Date) {
		return false
	}
	if f.Type != nil && t.Type != *f.Type {
		return false
	}
	if f.Category != "" && !strings.EqualFold(t.Category, f.Category) {
		return false
	}
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(t.Note), needle) &&
			!strings.Contains(strings.ToLower(t.Category), needle) {
			return false
		}
	}
	return true
}
