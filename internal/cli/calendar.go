package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/pfrederiksen/pgconf-watch/internal/calendar"
	"github.com/spf13/cobra"
)

// newCalendarCmd creates the command that exports the stored snapshot as iCalendar
func newCalendarCmd(opts *options, getenv func(string) string) *cobra.Command {
	flags := &filterFlags{}
	var output string

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Export stored conferences as an iCalendar feed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now()
			records, sourceURL, err := loadRecords(cmd, opts, flags, getenv, now)
			if err != nil {
				return err
			}
			sortRecords(records, SortByDate)

			ics := calendar.GenerateICS(records, now, sourceURL)

			if output == "" || output == "-" {
				_, err := fmt.Fprint(cmd.OutOrStdout(), ics)
				return err
			}
			if err := os.WriteFile(output, []byte(ics), 0644); err != nil {
				return fmt.Errorf("writing calendar: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Calendar written to %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the feed to a file instead of stdout")
	flags.register(cmd)

	return cmd
}
