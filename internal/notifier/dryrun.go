package notifier

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/pfrederiksen/pgconf-watch/internal/report"
)

// DryRunNotifier prints the report that would be filed without sending it
type DryRunNotifier struct {
	out io.Writer
}

// NewDryRunNotifier creates a dry-run notifier writing to out, or stdout when out is nil
func NewDryRunNotifier(out io.Writer) *DryRunNotifier {
	if out == nil {
		out = os.Stdout
	}
	return &DryRunNotifier{out: out}
}

// Name implements Notifier
func (n *DryRunNotifier) Name() string {
	return "dry-run"
}

// Notify prints the issue title and body
func (n *DryRunNotifier) Notify(ctx context.Context, r *report.Report) (*Result, error) {
	if _, err := fmt.Fprintf(n.out, "\nIssue would be:\n%s\n%s\n", r.Title, r.Body); err != nil {
		return nil, fmt.Errorf("writing report: %w", err)
	}
	return &Result{Channel: n.Name()}, nil
}
