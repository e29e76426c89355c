package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/pfrederiksen/pgconf-watch/internal/conference"
)

// MaxAddedDetails caps the detail lines shown for each added conference
const MaxAddedDetails = 5

// DefaultSourceURL is linked from the report footer when no source is given
const DefaultSourceURL = "https://www.postgresql.org/about/newsarchive/conferences/"

// Report is the rendered notification
type Report struct {
	Title   string `json:"title"`
	Body    string `json:"body"`
	Summary string `json:"summary"`
}

// Options controls report rendering
type Options struct {
	SourceURL string
}

// Title returns the issue title for changes detected at now
func Title(now time.Time) string {
	return fmt.Sprintf("PostgreSQL Conference Changes - %s", now.UTC().Format("2006-01-02"))
}

// Build renders the diff and current snapshot as a markdown issue
func Build(diff *conference.DiffResult, current conference.Snapshot, now time.Time, opts Options) *Report {
	if diff == nil {
		diff = &conference.DiffResult{}
	}
	sourceURL := opts.SourceURL
	if sourceURL == "" {
		sourceURL = DefaultSourceURL
	}

	var body strings.Builder

	body.WriteString("# PostgreSQL Conference Changes Detected\n\n")
	body.WriteString(fmt.Sprintf("**Detection Date:** %s\n\n", now.UTC().Format("2006-01-02 15:04:05 UTC")))

	writeAdded(&body, diff.Added)
	writeRemoved(&body, diff.Removed)
	writeModified(&body, diff.Modified)
	writeCurrent(&body, current)

	body.WriteString("\n---\n*This issue was automatically created by the conference monitoring system.*")
	body.WriteString(fmt.Sprintf("\n*Check the [source page](%s) for full details.*", sourceURL))

	return &Report{
		Title:   Title(now),
		Body:    body.String(),
		Summary: Summarize(diff),
	}
}

// Summarize describes the size of a diff in one line, e.g. "2 added, 1 updated"
func Summarize(diff *conference.DiffResult) string {
	if diff == nil || diff.Empty() {
		return "no changes"
	}

	parts := make([]string, 0, 3)
	if n := len(diff.Added); n > 0 {
		parts = append(parts, fmt.Sprintf("%d added", n))
	}
	if n := len(diff.Removed); n > 0 {
		parts = append(parts, fmt.Sprintf("%d removed", n))
	}
	if n := len(diff.Modified); n > 0 {
		parts = append(parts, fmt.Sprintf("%d updated", n))
	}
	return strings.Join(parts, ", ")
}

func writeAdded(body *strings.Builder, added []*conference.Record) {
	if len(added) == 0 {
		return
	}

	body.WriteString("## 🆕 New Conferences Added\n\n")
	for _, rec := range added {
		body.WriteString(fmt.Sprintf("### %s\n", rec.Name))
		details := rec.Details
		if len(details) > MaxAddedDetails {
			details = details[:MaxAddedDetails]
		}
		for _, detail := range details {
			body.WriteString(fmt.Sprintf("- %s\n", detail))
		}
		body.WriteString("\n")
	}
}

func writeRemoved(body *strings.Builder, removed []*conference.Record) {
	if len(removed) == 0 {
		return
	}

	body.WriteString("## ❌ Conferences Removed\n\n")
	for _, rec := range removed {
		body.WriteString(fmt.Sprintf("- **%s**\n", rec.Name))
	}
	body.WriteString("\n")
}

func writeModified(body *strings.Builder, modified []*conference.Modification) {
	if len(modified) == 0 {
		return
	}

	body.WriteString("## 📝 Conference Updates\n\n")
	for _, mod := range modified {
		body.WriteString(fmt.Sprintf("### %s\n", mod.New.Name))
		body.WriteString("**Changes detected in conference details**")
		if fields := changedFields(mod.Changes); fields != "" {
			body.WriteString(fmt.Sprintf(" (%s)", fields))
		}
		body.WriteString("\n\n")
	}
}

func changedFields(changes []*conference.FieldChange) string {
	names := make([]string, 0, len(changes))
	for _, c := range changes {
		names = append(names, c.Field)
	}
	return strings.Join(names, ", ")
}

func writeCurrent(body *strings.Builder, current conference.Snapshot) {
	body.WriteString("## 📋 All Current Conferences\n\n")
	body.WriteString(fmt.Sprintf("*Total conferences tracked: %d*\n\n", len(current)))

	groups := Group(current)
	for _, rule := range Rules {
		writeBucket(body, rule, groups[rule.Bucket])
	}
}

func writeBucket(body *strings.Builder, rule Rule, records []*conference.Record) {
	if len(records) == 0 {
		return
	}

	body.WriteString(fmt.Sprintf("### %s\n", rule.Title))
	shown := records
	if len(shown) > rule.Limit {
		shown = shown[:rule.Limit]
	}
	for _, rec := range shown {
		body.WriteString(fmt.Sprintf("- **%s**\n", rec.Name))
	}
	if len(records) > rule.Limit {
		body.WriteString(fmt.Sprintf("- *... and %d more*\n", len(records)-rule.Limit))
	}
	body.WriteString("\n")
}
