package notifier

import (
	"context"
	"errors"

	"github.com/pfrederiksen/pgconf-watch/internal/report"
)

// ErrMissingCredentials is returned when a channel is built without the
// credentials it needs
var ErrMissingCredentials = errors.New("missing credentials")

// Result identifies what a channel created
type Result struct {
	Channel string `json:"channel"`
	Number  int    `json:"number,omitempty"`
	URL     string `json:"url,omitempty"`
}

// Notifier defines the interface for publishing a change report
type Notifier interface {
	// Name identifies the channel in logs and output
	Name() string

	// Notify publishes the report
	Notify(ctx context.Context, r *report.Report) (*Result, error)
}
