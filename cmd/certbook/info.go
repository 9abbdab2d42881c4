// Info command: show the registry descriptor and storage figures.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/certbook/pkg/registry"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show registry descriptor, owner, and storage usage",
	RunE:  runInfo,
}

func runInfo(cmd *cobra.Command, args []string) error {
	return runQuery(func(reg *registry.Registry) error {
		if flagJSON {
			return printJSON(map[string]any{
				"info":          reg.Info(),
				"owner":         reg.Owner(),
				"next_token_id": reg.NextTokenID(),
				"storage_usage": reg.StorageUsage(),
			})
		}
		info := reg.Info()
		fmt.Printf("Registry:      %s (%s)\n", info.Name, info.Symbol)
		fmt.Printf("Spec:          %s\n", info.Spec)
		fmt.Printf("Owner:         %s\n", reg.Owner())
		fmt.Printf("Next token id: %d\n", reg.NextTokenID())
		fmt.Printf("Storage usage: %d bytes\n", reg.StorageUsage())
		return nil
	})
}
