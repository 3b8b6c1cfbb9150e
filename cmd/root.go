package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "relay",
	Short: "Relay exposes GitHub, JIRA and Slack behind a single REST API",
	Long: `Relay is a thin HTTP gateway that re-exposes GitHub, JIRA and Slack as one
set of REST endpoints. Each endpoint translates an incoming request into a
single call against the corresponding vendor API and shapes the response
back into plain JSON.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
