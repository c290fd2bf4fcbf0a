package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for a11yscan.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "a11yscan",
		Short: "Replay and report accessibility scan sessions",
		Long: `a11yscan replays recorded accessibility scan sessions and reports the
aggregated state: rule results per category, the ordered tab stops, and the
status of the keyboard requirements.

A session is a JSON Lines file with one action per line, for example:
  {"type":"scanCompleted","payload":{"key":"issues","selectorMap":{},"scanResult":{}}}
  {"type":"addTabbedElement","payload":{"tabbedElements":[{"timestamp":1,"target":["#a"]}]}}`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(NewReplayCmd())
	cmd.AddCommand(NewCompareCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
