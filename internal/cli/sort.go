package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pfrederiksen/pgconf-watch/internal/conference"
)

// SortOrder represents the available sorting options
type SortOrder string

const (
	SortByPage SortOrder = "page"
	SortByDate SortOrder = "date"
	SortByName SortOrder = "name"
	SortByID   SortOrder = "id"
)

func parseSortOrder(raw string) (SortOrder, error) {
	order := SortOrder(strings.ToLower(strings.TrimSpace(raw)))
	switch order {
	case SortByPage, SortByDate, SortByName, SortByID:
		return order, nil
	case "":
		return SortByPage, nil
	default:
		return "", fmt.Errorf("invalid sort order: %s (must be page, date, name, or id)", raw)
	}
}

// sortRecords sorts records in place; SortByPage keeps the listing order
func sortRecords(records []*conference.Record, order SortOrder) {
	switch order {
	case SortByDate:
		sort.SliceStable(records, func(i, j int) bool {
			return compareByDate(records[i], records[j])
		})
	case SortByName:
		sort.SliceStable(records, func(i, j int) bool {
			return strings.ToLower(records[i].Name) < strings.ToLower(records[j].Name)
		})
	case SortByID:
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].ID < records[j].ID
		})
	}
}

// compareByDate compares two records by their start date
// Returns true if record i should come before record j
func compareByDate(i, j *conference.Record) bool {
	dateI := i.StartDate()
	dateJ := j.StartDate()

	// If both dates are valid, compare them
	if !dateI.IsZero() && !dateJ.IsZero() {
		return dateI.Before(dateJ)
	}

	// If only one date is valid, put the valid one first
	if !dateI.IsZero() {
		return true
	}
	if !dateJ.IsZero() {
		return false
	}

	return strings.ToLower(i.Name) < strings.ToLower(j.Name)
}
