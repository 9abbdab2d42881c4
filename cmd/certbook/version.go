// Version command.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the certbook version",
	Run: func(cmd *cobra.Command, args []string) {
		if flagJSON {
			fmt.Printf("{\"version\": %q}\n", version)
			return
		}
		fmt.Printf("certbook %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
