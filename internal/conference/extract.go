package conference

import (
	"regexp"
	"strings"
)

// NoiseTerms mark page chrome lines that are ignored entirely
var NoiseTerms = []string{"navigation", "search", "menu", "header"}

// TriggerTerms mark a line as the start of a new conference record
var TriggerTerms = []string{"pgconf", "pgday", "postgresql conference", "nordic pgday"}

// LocationTerms mark a detail line as describing where the conference is held
var LocationTerms = []string{"location:", "hotel", "city", "country"}

// StatusTerms mark a detail line as describing the conference's progress
var StatusTerms = []string{"call for papers", "registration", "schedule", "published"}

var monthPattern = regexp.MustCompile(`(?i)\b(january|february|march|april|may|june|july|august|september|october|november|december)`)

// ExtractState is the extractor's position relative to a conference section
type ExtractState int

const (
	StateIdle ExtractState = iota
	StateInSection
)

// Extractor is the accumulator folded over the page lines
type Extractor struct {
	state   ExtractState
	current *Record
	records []*Record
}

// Extract scans normalized lines and groups them into conference records.
// The result is not deduplicated.
func Extract(lines []string) []*Record {
	var x Extractor
	for _, line := range lines {
		x.Step(line)
	}
	return x.Finish()
}

// State reports whether the extractor is currently inside a conference section
func (x *Extractor) State() ExtractState {
	return x.state
}

// Step feeds a single line to the extractor
func (x *Extractor) Step(line string) {
	lower := strings.ToLower(line)

	switch {
	case containsAny(lower, NoiseTerms):
		return
	case containsAny(lower, TriggerTerms):
		x.emit()
		x.current = NewRecord(line)
		x.state = StateInSection
	case x.state == StateInSection && line != "":
		x.current.addDetail(line, lower)
	case x.state == StateInSection:
		// A blank line closes the section
		x.emit()
		x.state = StateIdle
	}
}

// Finish emits any record still being built and returns everything extracted
func (x *Extractor) Finish() []*Record {
	x.emit()
	x.state = StateIdle
	if x.records == nil {
		return make([]*Record, 0)
	}
	return x.records
}

func (x *Extractor) emit() {
	if x.current != nil {
		x.records = append(x.records, x.current)
		x.current = nil
	}
}

// addDetail appends a line and fills each optional field the first time it matches
func (r *Record) addDetail(line, lower string) {
	r.Details = append(r.Details, line)

	if r.ParsedDate == "" && monthPattern.MatchString(line) {
		r.ParsedDate = line
	}
	if r.Location == "" && containsAny(lower, LocationTerms) {
		r.Location = line
	}
	if r.Status == "" && containsAny(lower, StatusTerms) {
		r.Status = line
	}
}

// containsAny reports whether s contains any of the given terms
func containsAny(s string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(s, term) {
			return true
		}
	}
	return false
}

// ContainsAny reports whether the lowercase form of s contains any of the terms
func ContainsAny(s string, terms []string) bool {
	return containsAny(strings.ToLower(s), terms)
}
