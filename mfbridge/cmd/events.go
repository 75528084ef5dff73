package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mfbridge/mfbridge/eventtable"
)

var eventsCmd = &cobra.Command{
	Use:   "events FILE...",
	Short: "Print the static event table built from event files.",
	Long: "`events` loads the event files in order and prints every entry " +
		"with the event id it is mapped to.",
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := eventtable.Load(args...)
		if err != nil {
			return err
		}

		return table.Dump(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(eventsCmd)
}
