package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pfrederiksen/pgconf-watch/internal/conference"
	"github.com/pfrederiksen/pgconf-watch/internal/config"
	"github.com/pfrederiksen/pgconf-watch/internal/logger"
	"github.com/pfrederiksen/pgconf-watch/internal/notifier"
	"github.com/pfrederiksen/pgconf-watch/internal/report"
	"github.com/pfrederiksen/pgconf-watch/internal/scraper"
	"github.com/pfrederiksen/pgconf-watch/internal/storage"
)

// Fetcher retrieves the current conference records
type Fetcher interface {
	FetchConferences(ctx context.Context) ([]*conference.Record, error)
}

// RunOptions controls a single check
type RunOptions struct {
	DryRun  bool
	Refresh bool
	Out     io.Writer
}

// Runner performs one fetch, diff, notify, and save cycle
type Runner struct {
	Fetcher   Fetcher
	Store     *storage.Storage
	Notifiers []notifier.Notifier
	SourceURL string
	Refresh   bool
	Now       func() time.Time
}

// NewRunner wires the scraper, storage, and notifiers described by cfg
func NewRunner(ctx context.Context, cfg *config.Config, opts RunOptions) (*Runner, error) {
	store, err := storage.New(cfg.DataFile)
	if err != nil {
		return nil, fmt.Errorf("initializing storage: %w", err)
	}

	s := scraper.New(cfg.SourceURL, cfg.Timeout)

	return &Runner{
		Fetcher:   s,
		Store:     store,
		Notifiers: buildNotifiers(ctx, cfg, opts),
		SourceURL: s.URL(),
		Refresh:   opts.Refresh,
		Now:       time.Now,
	}, nil
}

// buildNotifiers returns the channels a run should publish to. Missing GitHub
// credentials fall back to printing the would-be issue.
func buildNotifiers(ctx context.Context, cfg *config.Config, opts RunOptions) []notifier.Notifier {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	if opts.DryRun {
		return []notifier.Notifier{notifier.NewDryRunNotifier(out)}
	}

	var notifiers []notifier.Notifier

	gh, err := notifier.NewGitHubNotifier(cfg.GitHub, cfg.Timeout)
	if err != nil {
		logger.Warn("No GitHub credentials found, issue creation skipped", logger.Fields{
			"token_set":      cfg.GitHub.Token != "",
			"repository_set": cfg.GitHub.Repository != "",
		})
		notifiers = append(notifiers, notifier.NewDryRunNotifier(out))
	} else {
		notifiers = append(notifiers, gh)
	}

	if cfg.Twitter.Enabled() {
		tw, err := notifier.NewTwitterNotifier(ctx, cfg.Twitter, cfg.SourceURL, cfg.Timeout)
		if err != nil {
			logger.Warn("Twitter notifier unavailable", logger.Fields{"error": err.Error()})
		} else {
			notifiers = append(notifiers, tw)
		}
	}

	return notifiers
}

// Run executes the check. Fetch and save failures are returned; notification
// failures are logged and the snapshot is still saved.
func (r *Runner) Run(ctx context.Context) (*OutputResult, error) {
	now := time.Now
	if r.Now != nil {
		now = r.Now
	}

	log := logger.Default().With(logger.Fields{"url": r.SourceURL})

	log.Info("Fetching current conference data", nil)
	start := time.Now()
	current, err := r.Fetcher.FetchConferences(ctx)
	if err != nil {
		logger.IncrCounter("fetch.errors")
		return nil, fmt.Errorf("fetching conferences: %w", err)
	}
	logger.RecordTiming("fetch", time.Since(start))
	logger.SetGauge("conferences.current", float64(len(current)))
	log.Info("Found conferences", logger.Fields{"count": len(current)})

	previous := r.Store.LoadSnapshot()
	log.Info("Loaded previous conference data", logger.Fields{
		"count": len(previous),
		"path":  r.Store.Path(),
	})

	diff := conference.Diff(previous, current)
	logger.AddCounter("conferences.added", int64(len(diff.Added)))
	logger.AddCounter("conferences.removed", int64(len(diff.Removed)))
	logger.AddCounter("conferences.modified", int64(len(diff.Modified)))

	result := &OutputResult{
		CheckedAt: now().UTC(),
		Current:   len(current),
		Previous:  len(previous),
		Diff:      diff,
	}

	switch {
	case diff.Empty():
		log.Info("No conference changes detected", nil)
	case r.Refresh:
		log.Info("Refresh requested, skipping notifications", logger.Fields{"changes": diff.Total()})
	default:
		log.Info("Changes detected", logger.Fields{
			"added":    len(diff.Added),
			"removed":  len(diff.Removed),
			"modified": len(diff.Modified),
		})
		result.Report = report.Build(diff, current, result.CheckedAt, report.Options{SourceURL: r.SourceURL})
		result.Notifications = r.notify(ctx, result.Report)
	}

	if err := r.Store.SaveSnapshot(current); err != nil {
		return nil, fmt.Errorf("saving snapshot: %w", err)
	}
	log.Debug("Saved snapshot", logger.Fields{"path": r.Store.Path()})

	return result, nil
}

// notify publishes to every channel, logging rather than returning failures
func (r *Runner) notify(ctx context.Context, rep *report.Report) []*notifier.Result {
	results := make([]*notifier.Result, 0, len(r.Notifiers))

	for _, n := range r.Notifiers {
		res, err := n.Notify(ctx, rep)
		if err != nil {
			logger.IncrCounter("notify.errors")
			fields := logger.Fields{"channel": n.Name()}
			if errors.Is(err, context.DeadlineExceeded) {
				fields["timeout"] = true
			}
			logger.Error("Notification failed", fields, err)
			continue
		}

		logger.IncrCounter("notify.sent")
		logger.Info("Notification sent", logger.Fields{
			"channel": res.Channel,
			"number":  res.Number,
			"url":     res.URL,
		})
		results = append(results, res)
	}

	return results
}
