// Events command: read the append-only audit event log.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var eventsLimit int

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Show the audit event log",
	Long: `Events prints the persisted audit event lines in emission order.
Every successful mutation appends exactly one line; the log is append-only
and survives restarts.

Example:
  certbook events
  certbook events --limit 20 --json`,
	RunE: runEvents,
}

func init() {
	eventsCmd.Flags().IntVar(&eventsLimit, "limit", 0, "show only the newest N events (0 = all)")
}

func runEvents(cmd *cobra.Command, args []string) error {
	backend, err := attachBackend()
	if err != nil {
		return err
	}
	defer backend.Detach()

	records, err := backend.Events(eventsLimit)
	if err != nil {
		return fmt.Errorf("read events: %w", err)
	}

	if flagJSON {
		return printJSON(records)
	}
	for _, r := range records {
		fmt.Printf("%d\t%s\t%s\n", r.Seq, r.EmittedAt, r.Line)
	}
	return nil
}
