package conference

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	monthDayPattern = regexp.MustCompile(`(?i)\b(january|february|march|april|may|june|july|august|september|october|november|december)\s+(\d{1,2})\b`)
	yearPattern     = regexp.MustCompile(`\b(19|20)\d{2}\b`)
)

var months = map[string]time.Month{
	"january":   time.January,
	"february":  time.February,
	"march":     time.March,
	"april":     time.April,
	"may":       time.May,
	"june":      time.June,
	"july":      time.July,
	"august":    time.August,
	"september": time.September,
	"october":   time.October,
	"november":  time.November,
	"december":  time.December,
}

// ParseDate approximates the start date of free-form text such as
// "October 21-24, 2025" or "April 2026". The day defaults to the 1st.
// Returns time.Time{} if no month and year can be found.
func ParseDate(text string) time.Time {
	if text == "" {
		return time.Time{}
	}

	year := yearPattern.FindString(text)
	if year == "" {
		return time.Time{}
	}
	y, err := strconv.Atoi(year)
	if err != nil {
		return time.Time{}
	}

	day := 1
	var month time.Month
	if m := monthDayPattern.FindStringSubmatch(text); m != nil {
		month = months[strings.ToLower(m[1])]
		// Impossible days such as February 30 keep the 1st
		if d, err := strconv.Atoi(m[2]); err == nil && d >= 1 && d <= daysIn(month, y) {
			day = d
		}
	} else if m := monthPattern.FindStringSubmatch(text); m != nil {
		month = months[strings.ToLower(m[1])]
	} else {
		return time.Time{}
	}

	return time.Date(y, month, day, 0, 0, 0, 0, time.UTC)
}

// daysIn returns the number of days in month of year
func daysIn(month time.Month, year int) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// StartDate returns the parsed start date of the record, or the zero time
func (r *Record) StartDate() time.Time {
	return ParseDate(r.ParsedDate)
}

// IsPast reports whether the record's start date is before now.
// Returns false if the date cannot be parsed.
func (r *Record) IsPast(now time.Time) bool {
	start := r.StartDate()
	if start.IsZero() {
		return false
	}
	return start.Before(now)
}
