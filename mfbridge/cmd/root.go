// Package cmd provides the command-line interface for mfbridge.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

var envFiles []string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mfbridge",
	Short: "mfbridge connects panel clients to simulator variables.",
	Long: `mfbridge registers clients, tracks the variables they ask for and ` +
		`pushes changed values to them every frame. Settings are read from ` +
		`MFBRIDGE_ environment variables and an optional .env file; flags ` +
		`override both.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringSliceVar(&envFiles, "env-file", nil,
		"Read settings from these files instead of .env")
}

// Execute adds all child commands to the root command and sets flags
// appropriately. It runs the exit handlers before the process ends.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		atexit.Exit(1)
	}

	atexit.Exit(0)
}
