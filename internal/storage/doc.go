// Package storage provides JSON-based persistence for conference snapshots.
//
// A snapshot is stored as a single JSON array of records. Loading never fails:
// a missing or undecodable file yields an empty snapshot so that a first run, or a run
// after corruption, simply treats every conference as new. Saving writes to a temporary
// file in the same directory and renames it over the target.
package storage
