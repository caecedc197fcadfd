// Package cmd provides the command-line interface for the dynasty
// simulator.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use: "dynasty",
	Short: "Dynasty simulates how the composition of a family-owned " +
		"partnership evolves over decades.",
	Long: `Dynasty simulates how the composition of a family-owned ` +
		`partnership (trainees, active partners, emeritus partners) evolves ` +
		`over a multi-decade horizon under stochastic demographic and ` +
		`promotion rules. Runs are reproducible: the same parameters and ` +
		`seed always produce the same series.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
