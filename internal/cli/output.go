package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pfrederiksen/pgconf-watch/internal/conference"
	"github.com/pfrederiksen/pgconf-watch/internal/logger"
	"github.com/pfrederiksen/pgconf-watch/internal/notifier"
	"github.com/pfrederiksen/pgconf-watch/internal/report"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// OutputResult contains data to be output
type OutputResult struct {
	CheckedAt     time.Time              `json:"checked_at"`
	Current       int                    `json:"current_count"`
	Previous      int                    `json:"previous_count"`
	Diff          *conference.DiffResult `json:"changes"`
	Report        *report.Report         `json:"report,omitempty"`
	Notifications []*notifier.Result     `json:"notifications,omitempty"`
}

// WriteOutput writes the result in the specified format
func WriteOutput(w io.Writer, result *OutputResult, format OutputFormat, verbose bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeText(w, result, verbose)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs any value as indented JSON
func writeJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// newTable creates a table rendered into w
func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(w)
	return t
}

// writeText outputs results as human-readable text
func writeText(w io.Writer, result *OutputResult, verbose bool) error {
	diff := result.Diff
	if diff == nil || diff.Empty() {
		fmt.Fprintln(w, "No conference changes detected.")
		fmt.Fprintf(w, "Tracking %d conferences.\n", result.Current)
		return nil
	}

	t := newTable(w)
	header := table.Row{"Change", "Conference", "Detail"}
	if verbose {
		header = append(header, "ID")
	}
	t.AppendHeader(header)

	addRow := func(change string, rec *conference.Record, detail string) {
		row := table.Row{change, rec.Name, detail}
		if verbose {
			row = append(row, rec.ID)
		}
		t.AppendRow(row)
	}

	for _, rec := range diff.Added {
		addRow("ADDED", rec, rec.ParsedDate)
	}
	for _, rec := range diff.Removed {
		addRow("REMOVED", rec, "")
	}
	for _, mod := range diff.Modified {
		fields := make([]string, 0, len(mod.Changes))
		for _, c := range mod.Changes {
			fields = append(fields, c.Field)
		}
		addRow("UPDATED", mod.New, strings.Join(fields, ", "))
	}
	t.Render()

	fmt.Fprintf(w, "\nTotal: %d changes (%s) across %d conferences\n",
		diff.Total(), report.Summarize(diff), result.Current)

	for _, n := range result.Notifications {
		switch {
		case n.Number > 0:
			fmt.Fprintf(w, "Created issue #%d: %s\n", n.Number, n.URL)
		case n.URL != "":
			fmt.Fprintf(w, "Posted to %s: %s\n", n.Channel, n.URL)
		}
	}

	return nil
}

// writeSnapshotText outputs stored records as a table
func writeSnapshotText(w io.Writer, records []*conference.Record, verbose bool) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No conferences stored.")
		return
	}

	t := newTable(w)
	header := table.Row{"Conference", "Date", "Location", "Status"}
	if verbose {
		header = append(table.Row{"ID"}, header...)
	}
	t.AppendHeader(header)

	for _, rec := range records {
		row := table.Row{rec.Name, rec.ParsedDate, rec.Location, rec.Status}
		if verbose {
			row = append(table.Row{rec.ID}, row...)
		}
		t.AppendRow(row)
	}
	t.AppendFooter(table.Row{fmt.Sprintf("Total: %d", len(records))})
	t.Render()
}

// writeConferenceText outputs one record with its detail lines
func writeConferenceText(w io.Writer, rec *conference.Record) {
	fmt.Fprintf(w, "%s (%s)\n", rec.Name, rec.ID)
	if rec.ParsedDate != "" {
		fmt.Fprintf(w, "  Date:     %s\n", rec.ParsedDate)
	}
	if rec.Location != "" {
		fmt.Fprintf(w, "  Location: %s\n", rec.Location)
	}
	if rec.Status != "" {
		fmt.Fprintf(w, "  Status:   %s\n", rec.Status)
	}
	if len(rec.Details) > 0 {
		fmt.Fprintln(w, "\n  Details:")
		for _, line := range rec.Details {
			fmt.Fprintf(w, "  - %s\n", line)
		}
	}
}

// writeMetrics renders the run metrics as a table, one row per metric
func writeMetrics(w io.Writer, snap logger.MetricsSnapshot) {
	names := snap.Names()
	if len(names) == 0 {
		return
	}

	t := newTable(w)
	t.SetTitle("Run metrics")
	t.AppendHeader(table.Row{"Metric", "Kind", "Value"})
	for _, name := range names {
		if v, ok := snap.Counters[name]; ok {
			t.AppendRow(table.Row{name, "counter", v})
		}
		if v, ok := snap.Gauges[name]; ok {
			t.AppendRow(table.Row{name, "gauge", v})
		}
		if s, ok := snap.Timings[name]; ok {
			t.AppendRow(table.Row{name, "timing", fmt.Sprintf("n=%d avg=%s min=%s max=%s",
				s.Count, s.Average(), s.Min, s.Max)})
		}
	}
	t.Render()
}
