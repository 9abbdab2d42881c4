// Init command: create the data directory and an empty registry.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the registry data directory",
	Long: `Init creates the data directory, the SQLite database, and an empty
registry administered by the caller. Running init on an existing data
directory is harmless; the persisted registry is kept as is.

Example:
  certbook init
  certbook init --data-dir ./registry --caller alice`,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	dataDir, err := resolveDataDir()
	if err != nil {
		return fmt.Errorf("resolve data dir: %w", err)
	}

	backend, err := attachBackend()
	if err != nil {
		return err
	}
	defer backend.Detach()

	reg, err := backend.Registry()
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(map[string]any{
			"data_dir": dataDir,
			"owner":    reg.Owner(),
			"info":     reg.Info(),
		})
	}
	fmt.Printf("Initialized registry in %s (owner: %s)\n", dataDir, reg.Owner())
	return nil
}
