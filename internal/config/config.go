// Package config provides centralized configuration management for the application.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration parameters for the application.
// It is built once at startup and passed explicitly to each component;
// nothing mutates it afterwards.
type Config struct {
	GitHub GitHubConfig
	Jira   JiraConfig
	Slack  SlackConfig
	Server ServerConfig
}

// GitHubConfig holds GitHub specific configuration.
type GitHubConfig struct {
	Token string
}

// JiraConfig holds JIRA specific configuration.
type JiraConfig struct {
	URL      string
	Username string
	Token    string
}

// SlackConfig holds Slack specific configuration.
type SlackConfig struct {
	BotToken string
	AppToken string
}

// ServerConfig holds HTTP server specific configuration.
type ServerConfig struct {
	Host  string
	Port  int
	Debug bool
}

// LoadConfig initializes and loads configuration from environment variables.
func LoadConfig() (*Config, error) {
	// Initialize Viper for environment variables
	v := viper.New()
	v.SetEnvPrefix("")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Map specific environment variables
	v.BindEnv("github.token", "GITHUB_TOKEN")
	v.BindEnv("jira.url", "JIRA_URL")
	v.BindEnv("jira.username", "JIRA_USERNAME")
	v.BindEnv("jira.token", "JIRA_API_TOKEN")
	v.BindEnv("slack.bot_token", "SLACK_BOT_TOKEN")
	v.BindEnv("slack.app_token", "SLACK_APP_TOKEN")
	v.BindEnv("server.host", "HOST")
	v.BindEnv("server.port", "PORT")
	v.BindEnv("server.debug", "DEBUG")

	// Defaults for the optional server settings
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.debug", false)

	// Create config structure
	config := &Config{
		GitHub: GitHubConfig{
			Token: v.GetString("github.token"),
		},
		Jira: JiraConfig{
			URL:      v.GetString("jira.url"),
			Username: v.GetString("jira.username"),
			Token:    v.GetString("jira.token"),
		},
		Slack: SlackConfig{
			BotToken: v.GetString("slack.bot_token"),
			AppToken: v.GetString("slack.app_token"),
		},
		Server: ServerConfig{
			Host:  v.GetString("server.host"),
			Port:  v.GetInt("server.port"),
			Debug: v.GetBool("server.debug"),
		},
	}

	// Validate configuration
	if err := validateConfig(config); err != nil {
		return nil, err
	}

	return config, nil
}

// validateConfig ensures that all required configuration values are provided.
// Every missing variable is reported in a single error so the operator can
// fix them in one pass; the server never starts with broken adapters.
func validateConfig(config *Config) error {
	var missingVars []string

	// GitHub validation
	if config.GitHub.Token == "" {
		missingVars = append(missingVars, "GITHUB_TOKEN")
	}

	// JIRA validation
	if config.Jira.URL == "" {
		missingVars = append(missingVars, "JIRA_URL")
	}
	if config.Jira.Username == "" {
		missingVars = append(missingVars, "JIRA_USERNAME")
	}
	if config.Jira.Token == "" {
		missingVars = append(missingVars, "JIRA_API_TOKEN")
	}

	// Slack validation
	if config.Slack.BotToken == "" {
		missingVars = append(missingVars, "SLACK_BOT_TOKEN")
	}
	if config.Slack.AppToken == "" {
		missingVars = append(missingVars, "SLACK_APP_TOKEN")
	}

	if len(missingVars) > 0 {
		return fmt.Errorf("missing required environment variables: %v", missingVars)
	}

	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid PORT value: %d", config.Server.Port)
	}

	return nil
}

// Addr returns the host:port pair the HTTP server should listen on.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
