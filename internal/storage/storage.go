package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pfrederiksen/pgconf-watch/internal/conference"
	"github.com/pfrederiksen/pgconf-watch/internal/logger"
)

// DefaultPath is where snapshots live when no path is configured
const DefaultPath = "data/conferences.json"

// Storage handles persistence of conference snapshots
type Storage struct {
	path string
}

// New creates a new Storage instance for the given snapshot file
func New(path string) (*Storage, error) {
	if path == "" {
		path = DefaultPath
	}

	// Expand ~ to home directory
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	return &Storage{
		path: path,
	}, nil
}

// Path returns the snapshot file location
func (s *Storage) Path() string {
	return s.path
}

// LoadSnapshot loads the previous snapshot from disk. A missing or corrupt file
// yields an empty snapshot.
func (s *Storage) LoadSnapshot() conference.Snapshot {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("Reading snapshot failed, starting empty", logger.Fields{
				"path":  s.path,
				"error": err.Error(),
			})
		}
		return conference.Snapshot{}
	}

	var snapshot conference.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		logger.Warn("Parsing snapshot failed, starting empty", logger.Fields{
			"path":  s.path,
			"error": err.Error(),
		})
		return conference.Snapshot{}
	}

	// Drop entries that decoded to nothing usable
	cleaned := make(conference.Snapshot, 0, len(snapshot))
	for _, rec := range snapshot {
		if rec == nil {
			continue
		}
		if rec.Details == nil {
			rec.Details = make([]string, 0)
		}
		cleaned = append(cleaned, rec)
	}

	return cleaned
}

// SaveSnapshot saves a snapshot to disk, replacing any previous one
func (s *Storage) SaveSnapshot(snapshot conference.Snapshot) error {
	if snapshot == nil {
		snapshot = conference.Snapshot{}
	}
	for _, rec := range snapshot {
		if rec != nil && rec.Details == nil {
			rec.Details = make([]string, 0)
		}
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".conferences-*.json")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) // nolint:errcheck

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close() // nolint:errcheck
		return fmt.Errorf("writing snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing snapshot: %w", err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		return fmt.Errorf("setting snapshot permissions: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("replacing snapshot: %w", err)
	}

	return nil
}

// GetConferenceByID retrieves a record by ID from the stored snapshot
func (s *Storage) GetConferenceByID(id string) (*conference.Record, error) {
	for _, rec := range s.LoadSnapshot() {
		if rec.ID == id {
			return rec, nil
		}
	}
	return nil, fmt.Errorf("conference not found: %s", id)
}
