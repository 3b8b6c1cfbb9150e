// Package jira provides functionality for interacting with the JIRA API.
package jira

import (
	"context"
	"fmt"

	jira "github.com/andygrunwald/go-jira"

	"github.com/danielolaszy/relay/internal/config"
	"github.com/danielolaszy/relay/internal/logging"
	"github.com/danielolaszy/relay/internal/upstream"
	"github.com/danielolaszy/relay/pkg/models"
)

const (
	// defaultIssueType is used when a create request carries no issue type.
	defaultIssueType = "Task"
	// defaultPriority is used when a create request carries no priority.
	defaultPriority = "Medium"
	// maxResults caps how many issues a single listing returns.
	maxResults = 10
)

// Client encapsulates the JIRA API client.
type Client struct {
	client *jira.Client
}

// NewClient creates a new JIRA API client using basic authentication with the
// credentials from the provided configuration. The client performs no round
// trip at construction; credential problems surface on the first request.
func NewClient(cfg *config.Config) (*Client, error) {
	if cfg.Jira.URL == "" || cfg.Jira.Username == "" || cfg.Jira.Token == "" {
		return nil, fmt.Errorf("jira credentials not found in configuration")
	}

	// Create JIRA authentication transport
	tp := jira.BasicAuthTransport{
		Username: cfg.Jira.Username,
		Password: cfg.Jira.Token,
	}

	client, err := jira.NewClient(tp.Client(), cfg.Jira.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to create jira client: %w", err)
	}

	logging.Debug("jira configuration",
		"url", cfg.Jira.URL,
		"username", cfg.Jira.Username,
		"token", logging.MaskSensitive(cfg.Jira.Token))

	return &Client{client: client}, nil
}

// ListIssues retrieves the most recently updated issues, optionally restricted
// to a single project. Without a project key the search falls back to issues
// assigned to the authenticated user, matching the behavior of the JIRA UI's
// default filter.
func (c *Client) ListIssues(ctx context.Context, projectKey string) ([]models.JiraIssue, error) {
	jql := "assignee = currentUser()"
	if projectKey != "" {
		jql = fmt.Sprintf("project = '%s'", projectKey)
	}
	jql += " ORDER BY updated DESC"

	issues, resp, err := c.client.Issue.SearchWithContext(ctx, jql, &jira.SearchOptions{MaxResults: maxResults})
	if err != nil {
		logging.Error("failed to search jira issues", "jql", jql, "error", err)
		return nil, classify("failed to search issues", resp, err)
	}

	result := make([]models.JiraIssue, 0, len(issues))
	for _, issue := range issues {
		result = append(result, convertIssue(issue))
	}

	logging.Debug("retrieved jira issues", "project", projectKey, "count", len(result))
	return result, nil
}

// CreateIssue creates a new JIRA issue from the provided fields. Empty type
// and priority fall back to the defaults. It returns the created issue with
// the key assigned upstream.
func (c *Client) CreateIssue(ctx context.Context, req models.NewJiraIssue) (models.JiraIssue, error) {
	issueType := req.Type
	if issueType == "" {
		issueType = defaultIssueType
	}
	priority := req.Priority
	if priority == "" {
		priority = defaultPriority
	}

	newIssue := &jira.Issue{
		Fields: &jira.IssueFields{
			Project: jira.Project{
				Key: req.Project,
			},
			Summary:     req.Summary,
			Description: req.Description,
			Type: jira.IssueType{
				Name: issueType,
			},
			Priority: &jira.Priority{
				Name: priority,
			},
		},
	}

	created, resp, err := c.client.Issue.CreateWithContext(ctx, newIssue)
	if err != nil {
		logging.Error("failed to create jira issue", "project", req.Project, "error", err)
		return models.JiraIssue{}, classify("failed to create issue", resp, err)
	}

	logging.Info("created jira issue", "key", created.Key, "project", req.Project)

	return models.JiraIssue{
		Key:         created.Key,
		Summary:     req.Summary,
		Description: req.Description,
		Priority:    priority,
		Type:        issueType,
	}, nil
}

// TestConnection verifies the configured credentials by fetching the
// authenticated user. It returns the user's display name on success.
func (c *Client) TestConnection(ctx context.Context) (string, error) {
	user, resp, err := c.client.User.GetSelfWithContext(ctx)
	if err != nil {
		return "", classify("failed to fetch authenticated user", resp, err)
	}
	return user.DisplayName, nil
}

// convertIssue maps a JIRA API issue onto our internal model. Optional
// nested fields are nil when the upstream omits them.
func convertIssue(issue jira.Issue) models.JiraIssue {
	result := models.JiraIssue{
		Key: issue.Key,
	}
	if issue.Fields == nil {
		return result
	}

	result.Summary = issue.Fields.Summary
	result.Description = issue.Fields.Description
	result.Type = issue.Fields.Type.Name
	if issue.Fields.Status != nil {
		result.Status = issue.Fields.Status.Name
	}
	if issue.Fields.Assignee != nil {
		result.Assignee = issue.Fields.Assignee.DisplayName
	}
	if issue.Fields.Priority != nil {
		result.Priority = issue.Fields.Priority.Name
	}
	return result
}

// classify maps a JIRA API failure onto the shared upstream error taxonomy.
func classify(message string, resp *jira.Response, err error) error {
	if resp != nil {
		return upstream.FromStatusCode("jira", resp.StatusCode, message, err)
	}
	return upstream.Wrap(upstream.KindUnavailable, "jira", message, err)
}
