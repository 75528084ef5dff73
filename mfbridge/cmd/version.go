package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mfbridge/mfbridge/bridge"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the bridge version.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "mfbridge %s\n", bridge.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
