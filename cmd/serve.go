package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danielolaszy/relay/internal/config"
	"github.com/danielolaszy/relay/internal/github"
	"github.com/danielolaszy/relay/internal/jira"
	"github.com/danielolaszy/relay/internal/logging"
	"github.com/danielolaszy/relay/internal/server"
	"github.com/danielolaszy/relay/internal/slack"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the gateway HTTP server",
	Long: `Start the gateway HTTP server. Configuration comes from environment
variables (GITHUB_TOKEN, JIRA_URL, JIRA_USERNAME, JIRA_API_TOKEN,
SLACK_BOT_TOKEN, SLACK_APP_TOKEN, plus optional HOST, PORT and DEBUG);
the --host and --port flags override HOST and PORT.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		// Flag overrides beat environment values
		if cmd.Flags().Changed("host") {
			cfg.Server.Host, _ = cmd.Flags().GetString("host")
		}
		if cmd.Flags().Changed("port") {
			cfg.Server.Port, _ = cmd.Flags().GetInt("port")
		}

		githubClient, err := github.NewClient(cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize GitHub client: %w", err)
		}

		jiraClient, err := jira.NewClient(cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize JIRA client: %w", err)
		}

		slackClient, err := slack.NewClient(cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize Slack client: %w", err)
		}

		srv := server.New(cfg, githubClient, jiraClient, slackClient)

		logging.Info("starting gateway",
			"addr", cfg.Addr(),
			"debug", cfg.Server.Debug,
			"version", server.Version)

		return srv.Run()
	},
}

func init() {
	serveCmd.Flags().String("host", "", "interface to listen on (overrides HOST)")
	serveCmd.Flags().IntP("port", "p", 0, "port to listen on (overrides PORT)")
}
