package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pfrederiksen/pgconf-watch/internal/conference"
	"golang.org/x/net/html/charset"
)

const (
	ConferencesURL = "https://www.postgresql.org/about/newsarchive/conferences/"
	UserAgent      = "pgconf-watch/1.0 (github.com/pfrederiksen/pgconf-watch)"
	Timeout        = 30 * time.Second
)

// Scraper handles fetching and parsing the conference listing
type Scraper struct {
	client *http.Client
	url    string
}

// New creates a new Scraper for the given URL. An empty URL uses ConferencesURL
// and a non-positive timeout uses Timeout.
func New(url string, timeout time.Duration) *Scraper {
	if url == "" {
		url = ConferencesURL
	}
	if timeout <= 0 {
		timeout = Timeout
	}
	return &Scraper{
		client: &http.Client{
			Timeout: timeout,
		},
		url: url,
	}
}

// URL returns the page the scraper fetches
func (s *Scraper) URL() string {
	return s.url
}

// FetchConferences fetches the listing page and returns its deduplicated conference records
func (s *Scraper) FetchConferences(ctx context.Context) ([]*conference.Record, error) {
	lines, err := s.FetchLines(ctx)
	if err != nil {
		return nil, err
	}
	return conference.Dedupe(conference.Extract(lines)), nil
}

// FetchLines fetches the listing page and returns its normalized text lines
func (s *Scraper) FetchLines(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return parseLines(resp.Body, resp.Header.Get("Content-Type"))
}

// parseLines decodes the body using the declared content type and normalizes it
func parseLines(r io.Reader, contentType string) ([]string, error) {
	body, err := charset.NewReader(r, contentType)
	if err != nil {
		return nil, fmt.Errorf("decoding page: %w", err)
	}
	return Normalize(body)
}
