// Package cli implements the command-line interface for pgconf-watch.
//
// The cli package provides the Cobra-based CLI that runs one check of the PostgreSQL
// conference listing: fetch, diff against the stored snapshot, notify, and save. The show
// command inspects the stored snapshot and the calendar command exports it as an
// iCalendar feed. Results are written as text tables or JSON.
package cli
