package calendar

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/pfrederiksen/pgconf-watch/internal/conference"
)

const (
	uidDomain = "pgconf-watch"

	// maxLineOctets is the longest content line allowed before folding
	maxLineOctets = 75
)

// GenerateICS generates an iCalendar feed for the records that have a
// parseable start date. Undated records are skipped.
func GenerateICS(records []*conference.Record, now time.Time, sourceURL string) string {
	var ics strings.Builder

	ics.WriteString("BEGIN:VCALENDAR\r\n")
	ics.WriteString("VERSION:2.0\r\n")
	ics.WriteString("PRODID:-//pgconf-watch//PostgreSQL Conferences//EN\r\n")
	ics.WriteString("CALSCALE:GREGORIAN\r\n")
	ics.WriteString("METHOD:PUBLISH\r\n")
	ics.WriteString("X-WR-CALNAME:PostgreSQL Conferences\r\n")

	for _, rec := range records {
		if rec == nil {
			continue
		}
		start := rec.StartDate()
		if start.IsZero() {
			continue
		}
		writeEvent(&ics, rec, start, now, sourceURL)
	}

	ics.WriteString("END:VCALENDAR\r\n")

	return ics.String()
}

// writeEvent writes one all-day VEVENT
func writeEvent(ics *strings.Builder, rec *conference.Record, start, now time.Time, sourceURL string) {
	ics.WriteString("BEGIN:VEVENT\r\n")
	writeLine(ics, fmt.Sprintf("UID:%s@%s", rec.ID, uidDomain))
	ics.WriteString(fmt.Sprintf("DTSTAMP:%s\r\n", formatICSTime(now)))

	// DTEND is exclusive for all-day events
	ics.WriteString(fmt.Sprintf("DTSTART;VALUE=DATE:%s\r\n", formatICSDate(start)))
	ics.WriteString(fmt.Sprintf("DTEND;VALUE=DATE:%s\r\n", formatICSDate(start.AddDate(0, 0, 1))))

	writeLine(ics, fmt.Sprintf("SUMMARY:%s", escapeICS(rec.Name)))

	description := strings.Join(rec.Details, "\n")
	if sourceURL != "" {
		description = strings.TrimPrefix(description+"\n\nSource: "+sourceURL, "\n\n")
	}
	if description != "" {
		writeLine(ics, fmt.Sprintf("DESCRIPTION:%s", escapeICS(description)))
	}

	if rec.Location != "" {
		location := strings.TrimSpace(strings.TrimPrefix(rec.Location, "Location:"))
		writeLine(ics, fmt.Sprintf("LOCATION:%s", escapeICS(location)))
	}
	if sourceURL != "" {
		writeLine(ics, fmt.Sprintf("URL:%s", sourceURL))
	}

	ics.WriteString("STATUS:TENTATIVE\r\n")
	ics.WriteString("TRANSP:TRANSPARENT\r\n")
	ics.WriteString("END:VEVENT\r\n")
}

// writeLine writes a content line, folding it at 75 octets as RFC 5545
// requires. Continuation lines start with a single space and multi-byte
// characters are never split.
func writeLine(ics *strings.Builder, line string) {
	limit := maxLineOctets
	for len(line) > limit {
		cut := limit
		for cut > 0 && !utf8.RuneStart(line[cut]) {
			cut--
		}
		ics.WriteString(line[:cut])
		ics.WriteString("\r\n ")
		line = line[cut:]
		// the leading space counts toward the next line
		limit = maxLineOctets - 1
	}
	ics.WriteString(line)
	ics.WriteString("\r\n")
}

// formatICSTime formats a time.Time as an iCalendar datetime string
func formatICSTime(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}

// formatICSDate formats a time.Time as an iCalendar date value
func formatICSDate(t time.Time) string {
	return t.Format("20060102")
}

// escapeICS escapes special characters for iCalendar format
func escapeICS(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}
