package cli

import (
	"time"

	"github.com/pfrederiksen/pgconf-watch/internal/conference"
	"github.com/pfrederiksen/pgconf-watch/internal/filter"
	"github.com/pfrederiksen/pgconf-watch/internal/logger"
	"github.com/pfrederiksen/pgconf-watch/internal/storage"
	"github.com/spf13/cobra"
)

// filterFlags holds the selection flags shared by show and calendar
type filterFlags struct {
	keywords  []string
	locations []string
	statuses  []string
	from      string
	to        string
	upcoming  bool
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&f.keywords, "search", nil, "Only conferences whose name or details contain a keyword")
	cmd.Flags().StringSliceVar(&f.locations, "location", nil, "Only conferences whose location contains a value")
	cmd.Flags().StringSliceVar(&f.statuses, "status", nil, "Only conferences whose status contains a value")
	cmd.Flags().StringVar(&f.from, "from", "", "Only conferences starting on or after this date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.to, "to", "", "Only conferences starting on or before this date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&f.upcoming, "upcoming", false, "Hide conferences whose date has passed")
}

func (f *filterFlags) build() (*filter.Filter, error) {
	from, err := filter.ParseDay(f.from, false)
	if err != nil {
		return nil, err
	}
	to, err := filter.ParseDay(f.to, true)
	if err != nil {
		return nil, err
	}

	return &filter.Filter{
		DateFrom:  from,
		DateTo:    to,
		Keywords:  f.keywords,
		Locations: f.locations,
		Statuses:  f.statuses,
		Upcoming:  f.upcoming,
	}, nil
}

// loadRecords reads the stored snapshot and applies the selection flags
func loadRecords(cmd *cobra.Command, opts *options, flags *filterFlags, getenv func(string) string, now time.Time) ([]*conference.Record, string, error) {
	f, err := flags.build()
	if err != nil {
		return nil, "", err
	}

	cfg, err := loadConfig(opts, getenv)
	if err != nil {
		return nil, "", err
	}
	setupLogging(cmd, cfg, opts.verbose)

	store, err := storage.New(cfg.DataFile)
	if err != nil {
		return nil, "", err
	}

	records := []*conference.Record(store.LoadSnapshot())
	shown := f.Apply(records, now)
	logger.Debug("Loaded stored conferences", logger.Fields{
		"path":   store.Path(),
		"total":  len(records),
		"shown":  len(shown),
		"filter": f.String(),
	})

	return shown, cfg.SourceURL, nil
}

// newShowCmd creates the command that prints the stored snapshot
func newShowCmd(opts *options, getenv func(string) string) *cobra.Command {
	flags := &filterFlags{}

	cmd := &cobra.Command{
		Use:   "show [id]",
		Short: "Show the conferences recorded by the last check",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseFormat(opts.format)
			if err != nil {
				return err
			}
			if len(args) == 1 {
				return showConference(cmd, opts, getenv, args[0], format)
			}
			order, err := parseSortOrder(opts.sortOrder)
			if err != nil {
				return err
			}

			records, _, err := loadRecords(cmd, opts, flags, getenv, time.Now())
			if err != nil {
				return err
			}
			sortRecords(records, order)

			if format == FormatJSON {
				return writeJSON(cmd.OutOrStdout(), records)
			}
			writeSnapshotText(cmd.OutOrStdout(), records, opts.verbose)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.sortOrder, "sort", string(SortByPage), "Sort order: page, date, name, or id")
	flags.register(cmd)

	return cmd
}

// showConference prints a single stored conference with all of its details
func showConference(cmd *cobra.Command, opts *options, getenv func(string) string, id string, format OutputFormat) error {
	cfg, err := loadConfig(opts, getenv)
	if err != nil {
		return err
	}
	setupLogging(cmd, cfg, opts.verbose)

	store, err := storage.New(cfg.DataFile)
	if err != nil {
		return err
	}

	rec, err := store.GetConferenceByID(id)
	if err != nil {
		return err
	}

	if format == FormatJSON {
		return writeJSON(cmd.OutOrStdout(), rec)
	}
	writeConferenceText(cmd.OutOrStdout(), rec)
	return nil
}
