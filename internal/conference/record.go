package conference

import (
	"strings"
	"unicode"
)

// Record represents a single conference entry extracted from the listing page
type Record struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Details    []string `json:"details"`
	ParsedDate string   `json:"parsed_date"`
	Location   string   `json:"location"`
	Status     string   `json:"status"`
}

// Snapshot is the full ordered set of records as of one run
type Snapshot []*Record

// GenerateID creates a deterministic slug for a conference name.
// "PGConf EU 2025" always becomes "pgconf_eu_2025".
// Any Unicode space, including the no-break space from &nbsp;, separates words.
func GenerateID(name string) string {
	slug := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r), unicode.IsNumber(r), r == '_':
			return unicode.ToLower(r)
		case unicode.IsSpace(r):
			return ' '
		default:
			return -1
		}
	}, name)
	return strings.Join(strings.Fields(slug), "_")
}

// NewRecord creates a Record named after its trigger line with no details
func NewRecord(name string) *Record {
	name = strings.TrimSpace(name)
	return &Record{
		ID:      GenerateID(name),
		Name:    name,
		Details: make([]string, 0),
	}
}

// Clone returns a deep copy of the record
func (r *Record) Clone() *Record {
	c := *r
	c.Details = append(make([]string, 0, len(r.Details)), r.Details...)
	return &c
}

// DetailText joins all detail lines with single spaces
func (r *Record) DetailText() string {
	return strings.Join(r.Details, " ")
}
