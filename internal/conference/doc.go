// Package conference provides types and functions for tracking PostgreSQL conference listings.
//
// The conference package turns normalized page lines into Records through a small
// two-state extractor, assigns each Record a deterministic slug ID derived from its name,
// and detects additions, removals, and modifications by diffing snapshots keyed by that ID.
package conference
