// Package filter narrows a conference snapshot for display.
//
// A filter combines optional criteria, all of which must match:
//   - Keywords (substring of the name or any detail line, case-insensitive)
//   - Locations (substring of the location field, case-insensitive)
//   - Statuses (substring of the status field, case-insensitive)
//   - Date range (from/to, inclusive)
//   - Upcoming only (start date not before the reference time)
//
// Records without a parseable date pass the date criteria, since the listing
// often announces a conference before its dates are known.
//
// Example usage:
//
//	f := filter.NewFilter()
//	f.Keywords = []string{"nordic"}
//	f.Upcoming = true
//	shown := f.Apply(records, time.Now())
package filter

import (
	"fmt"
	"strings"
	"time"

	"github.com/pfrederiksen/pgconf-watch/internal/conference"
)

// Filter represents conference filtering criteria
type Filter struct {
	DateFrom *time.Time `json:"date_from,omitempty"`
	DateTo   *time.Time `json:"date_to,omitempty"`

	Keywords  []string `json:"keywords,omitempty"`
	Locations []string `json:"locations,omitempty"`
	Statuses  []string `json:"statuses,omitempty"`

	// Upcoming drops conferences whose start date has passed
	Upcoming bool `json:"upcoming,omitempty"`
}

// NewFilter creates a new empty filter with no active criteria.
// The filter will match all records until criteria are added.
func NewFilter() *Filter {
	return &Filter{
		Keywords:  []string{},
		Locations: []string{},
		Statuses:  []string{},
	}
}

// IsEmpty checks if the filter has any active criteria.
func (f *Filter) IsEmpty() bool {
	return f.DateFrom == nil &&
		f.DateTo == nil &&
		len(f.Keywords) == 0 &&
		len(f.Locations) == 0 &&
		len(f.Statuses) == 0 &&
		!f.Upcoming
}

// Matches checks if a record matches all active criteria relative to now.
// An empty filter matches all records.
func (f *Filter) Matches(rec *conference.Record, now time.Time) bool {
	if rec == nil {
		return false
	}
	if f.IsEmpty() {
		return true
	}

	start := rec.StartDate()
	if !start.IsZero() {
		if f.DateFrom != nil && start.Before(*f.DateFrom) {
			return false
		}
		if f.DateTo != nil && start.After(*f.DateTo) {
			return false
		}
		if f.Upcoming && rec.IsPast(now) {
			return false
		}
	}

	if len(f.Keywords) > 0 && !matchesAny(rec.Name+"\n"+rec.DetailText(), f.Keywords) {
		return false
	}
	if len(f.Locations) > 0 && !matchesAny(rec.Location, f.Locations) {
		return false
	}
	if len(f.Statuses) > 0 && !matchesAny(rec.Status, f.Statuses) {
		return false
	}

	return true
}

// Apply returns the records matching the filter, preserving order.
// If the filter is empty, returns the original list unchanged.
func (f *Filter) Apply(records []*conference.Record, now time.Time) []*conference.Record {
	if f.IsEmpty() {
		return records
	}

	filtered := make([]*conference.Record, 0, len(records))
	for _, rec := range records {
		if f.Matches(rec, now) {
			filtered = append(filtered, rec)
		}
	}

	return filtered
}

// String returns a human-readable description of the active criteria.
// Format: "From: Jan 2, 2026 | Keywords: nordic | Upcoming only"
func (f *Filter) String() string {
	if f.IsEmpty() {
		return "No active filters"
	}

	var parts []string

	if f.DateFrom != nil {
		parts = append(parts, fmt.Sprintf("From: %s", f.DateFrom.Format("Jan 2, 2006")))
	}
	if f.DateTo != nil {
		parts = append(parts, fmt.Sprintf("To: %s", f.DateTo.Format("Jan 2, 2006")))
	}
	if len(f.Keywords) > 0 {
		parts = append(parts, fmt.Sprintf("Keywords: %s", strings.Join(f.Keywords, ", ")))
	}
	if len(f.Locations) > 0 {
		parts = append(parts, fmt.Sprintf("Locations: %s", strings.Join(f.Locations, ", ")))
	}
	if len(f.Statuses) > 0 {
		parts = append(parts, fmt.Sprintf("Statuses: %s", strings.Join(f.Statuses, ", ")))
	}
	if f.Upcoming {
		parts = append(parts, "Upcoming only")
	}

	return strings.Join(parts, " | ")
}

// ParseDay parses a YYYY-MM-DD flag value. When endOfDay is set the result
// is the last second of that day so the bound stays inclusive.
func ParseDay(value string, endOfDay bool) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}

	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", value, err)
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Second)
	}
	return &t, nil
}

// matchesAny reports whether text contains any needle, case-insensitively
func matchesAny(text string, needles []string) bool {
	lower := strings.ToLower(text)
	for _, needle := range needles {
		needle = strings.ToLower(strings.TrimSpace(needle))
		if needle != "" && strings.Contains(lower, needle) {
			return true
		}
	}
	return false
}
