package calendar

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/pfrederiksen/pgconf-watch/internal/conference"
)

var stamp = time.Date(2026, 10, 18, 6, 30, 0, 0, time.UTC)

func testRecords() []*conference.Record {
	return conference.Dedupe(conference.Extract([]string{
		"PGConf.EU 2025", "October 21-24, 2025", "Location: Riga, Latvia",
		"PGDay Chicago", "Venue to be announced",
	}))
}

// unfold joins folded content lines back together
func unfold(ics string) string {
	return strings.ReplaceAll(ics, "\r\n ", "")
}

func TestGenerateICS(t *testing.T) {
	ics := unfold(GenerateICS(testRecords(), stamp, "https://www.postgresql.org/about/newsarchive/conferences/"))

	requiredFields := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//pgconf-watch//PostgreSQL Conferences//EN",
		"BEGIN:VEVENT",
		"UID:pgconfeu_2025@pgconf-watch",
		"DTSTAMP:20261018T063000Z",
		"DTSTART;VALUE=DATE:20251021",
		"DTEND;VALUE=DATE:20251022",
		"SUMMARY:PGConf.EU 2025",
		"DESCRIPTION:October 21-24\\, 2025\\nLocation: Riga\\, Latvia\\n\\nSource: https://www.postgresql.org/about/newsarchive/conferences/",
		"LOCATION:Riga\\, Latvia",
		"URL:https://www.postgresql.org/about/newsarchive/conferences/",
		"END:VEVENT",
		"END:VCALENDAR",
	}

	for _, field := range requiredFields {
		if !strings.Contains(ics, field) {
			t.Errorf("ICS missing required field: %s\n%s", field, ics)
		}
	}

	if !strings.HasSuffix(ics, "END:VCALENDAR\r\n") {
		t.Error("ICS should use \\r\\n line endings")
	}
}

func TestGenerateICS_SkipsUndated(t *testing.T) {
	ics := GenerateICS(testRecords(), stamp, "")

	if got := strings.Count(ics, "BEGIN:VEVENT"); got != 1 {
		t.Errorf("expected 1 event, got %d", got)
	}
	if strings.Contains(ics, "pgday_chicago") {
		t.Error("undated conference should be skipped")
	}
	if strings.Contains(ics, "URL:") {
		t.Error("URL should be omitted without a source")
	}
}

func TestGenerateICS_Empty(t *testing.T) {
	ics := GenerateICS(nil, stamp, "")

	if strings.Contains(ics, "BEGIN:VEVENT") {
		t.Error("empty snapshot should produce no events")
	}
	if !strings.HasPrefix(ics, "BEGIN:VCALENDAR\r\n") {
		t.Error("calendar wrapper should always be written")
	}
}

func TestEscapeICS(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"plain", "plain"},
		{"a,b", "a\\,b"},
		{"a;b", "a\\;b"},
		{"a\\b", "a\\\\b"},
		{"a\nb", "a\\nb"},
	}

	for _, tt := range tests {
		if got := escapeICS(tt.input); got != tt.want {
			t.Errorf("escapeICS(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestGenerateICS_FoldsLongLines(t *testing.T) {
	records := conference.Dedupe(conference.Extract([]string{
		"PGConf.EU 2025", "October 21-24, 2025",
		"Talks on replication, partitioning, query planning, extensions, and operating PostgreSQL at scale",
		"Zürich Kongresshaus, Großer Saal, Gotthardstrasse 5, 8002 Zürich, Schweiz, Europa, Erde",
	}))

	ics := GenerateICS(records, stamp, "https://www.postgresql.org/about/newsarchive/conferences/")

	for _, line := range strings.Split(strings.TrimSuffix(ics, "\r\n"), "\r\n") {
		if len(line) > maxLineOctets {
			t.Errorf("line of %d octets exceeds %d: %q", len(line), maxLineOctets, line)
		}
		if !utf8.ValidString(line) {
			t.Errorf("folding split a multi-byte character: %q", line)
		}
	}

	if !strings.Contains(ics, "\r\n ") {
		t.Error("expected at least one folded line")
	}
	if !strings.Contains(unfold(ics), "operating PostgreSQL at scale") {
		t.Error("unfolded description should contain the full detail text")
	}
}

func TestWriteLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
	}{
		{"short", "SUMMARY:PGDay", "SUMMARY:PGDay\r\n"},
		{"exactly 75", strings.Repeat("a", 75), strings.Repeat("a", 75) + "\r\n"},
		{"76 folds", strings.Repeat("a", 76), strings.Repeat("a", 75) + "\r\n a\r\n"},
		{
			"continuation holds 74",
			strings.Repeat("a", 75+74+1),
			strings.Repeat("a", 75) + "\r\n " + strings.Repeat("a", 74) + "\r\n a\r\n",
		},
		{"multi-byte kept whole", strings.Repeat("a", 74) + "ü", strings.Repeat("a", 74) + "\r\n ü\r\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b strings.Builder
			writeLine(&b, tt.line)
			if got := b.String(); got != tt.want {
				t.Errorf("writeLine() = %q, want %q", got, tt.want)
			}
		})
	}
}
