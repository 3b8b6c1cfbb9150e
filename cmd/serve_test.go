package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServeFailsFastWithoutConfig(t *testing.T) {
	// Clear every required variable so configuration loading must fail
	for _, key := range []string{
		"GITHUB_TOKEN",
		"JIRA_URL",
		"JIRA_USERNAME",
		"JIRA_API_TOKEN",
		"SLACK_BOT_TOKEN",
		"SLACK_APP_TOKEN",
	} {
		t.Setenv(key, "")
	}

	// The command errors out before any listener is opened
	err := serveCmd.RunE(serveCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GITHUB_TOKEN")
	assert.Contains(t, err.Error(), "SLACK_BOT_TOKEN")
}

func TestRootRegistersServe(t *testing.T) {
	cmd, _, err := rootCmd.Find([]string{"serve"})
	require.NoError(t, err)
	assert.Equal(t, "serve", cmd.Name())
}
