package conference

import (
	"slices"
)

// Field names reported in a FieldChange
const (
	FieldDetails  = "details"
	FieldDate     = "date"
	FieldLocation = "location"
	FieldStatus   = "status"
)

// FieldChange describes one field that differs between two versions of a record
type FieldChange struct {
	Field    string `json:"field"`
	OldValue string `json:"old_value"`
	NewValue string `json:"new_value"`
}

// Modification pairs the old and new versions of a record sharing an ID
type Modification struct {
	ID      string         `json:"id"`
	Old     *Record        `json:"old"`
	New     *Record        `json:"new"`
	Changes []*FieldChange `json:"changes"`
}

// DiffResult contains the results of comparing two snapshots
type DiffResult struct {
	Added    []*Record       `json:"added"`
	Removed  []*Record       `json:"removed"`
	Modified []*Modification `json:"modified"`
}

// Total returns the number of added, removed, and modified records
func (d *DiffResult) Total() int {
	return len(d.Added) + len(d.Removed) + len(d.Modified)
}

// Empty reports whether nothing changed between the snapshots
func (d *DiffResult) Empty() bool {
	return d.Total() == 0
}

// index maps records by ID, keeping the last record for a repeated ID,
// and returns the IDs in first-seen order
func index(snap Snapshot) (map[string]*Record, []string) {
	byID := make(map[string]*Record, len(snap))
	order := make([]string, 0, len(snap))
	for _, rec := range snap {
		if rec == nil {
			continue
		}
		if _, exists := byID[rec.ID]; !exists {
			order = append(order, rec.ID)
		}
		byID[rec.ID] = rec
	}
	return byID, order
}

// Diff compares a previous snapshot against the current one
func Diff(previous, current Snapshot) *DiffResult {
	result := &DiffResult{
		Added:    make([]*Record, 0),
		Removed:  make([]*Record, 0),
		Modified: make([]*Modification, 0),
	}

	oldByID, oldOrder := index(previous)
	newByID, newOrder := index(current)

	for _, id := range newOrder {
		newRec := newByID[id]
		oldRec, exists := oldByID[id]
		if !exists {
			result.Added = append(result.Added, newRec)
			continue
		}

		if changes := DetectChanges(oldRec, newRec); len(changes) > 0 {
			result.Modified = append(result.Modified, &Modification{
				ID:      id,
				Old:     oldRec,
				New:     newRec,
				Changes: changes,
			})
		}
	}

	for _, id := range oldOrder {
		if _, exists := newByID[id]; !exists {
			result.Removed = append(result.Removed, oldByID[id])
		}
	}

	return result
}

// DetectChanges compares two versions of a record and returns the fields that differ
func DetectChanges(previous, current *Record) []*FieldChange {
	var changes []*FieldChange

	if !slices.Equal(previous.Details, current.Details) {
		changes = append(changes, &FieldChange{
			Field:    FieldDetails,
			OldValue: previous.DetailText(),
			NewValue: current.DetailText(),
		})
	}

	if previous.ParsedDate != current.ParsedDate {
		changes = append(changes, &FieldChange{
			Field:    FieldDate,
			OldValue: previous.ParsedDate,
			NewValue: current.ParsedDate,
		})
	}

	if previous.Location != current.Location {
		changes = append(changes, &FieldChange{
			Field:    FieldLocation,
			OldValue: previous.Location,
			NewValue: current.Location,
		})
	}

	if previous.Status != current.Status {
		changes = append(changes, &FieldChange{
			Field:    FieldStatus,
			OldValue: previous.Status,
			NewValue: current.Status,
		})
	}

	return changes
}
