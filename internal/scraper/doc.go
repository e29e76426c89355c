// Package scraper provides HTTP fetching and text normalization for the PostgreSQL conference listing.
//
// The scraper package fetches the public conference news archive from postgresql.org,
// decodes it according to its declared charset, narrows the document to its content area,
// and flattens the visible text into trimmed, non-empty lines that the conference
// extractor consumes.
package scraper
