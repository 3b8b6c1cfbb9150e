// Package github provides functionality for interacting with the GitHub API.
package github

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/go-github/v41/github"
	"golang.org/x/oauth2"

	"github.com/danielolaszy/relay/internal/config"
	"github.com/danielolaszy/relay/internal/logging"
	"github.com/danielolaszy/relay/internal/upstream"
	"github.com/danielolaszy/relay/pkg/models"
)

// Client encapsulates the GitHub API client.
type Client struct {
	client *github.Client
}

// NewClient creates a new GitHub API client authenticated with the token from
// the provided configuration. The client performs no round trip at construction;
// credential problems surface on the first request.
func NewClient(cfg *config.Config) (*Client, error) {
	token := cfg.GitHub.Token
	if token == "" {
		return nil, fmt.Errorf("github token not found in configuration")
	}

	logging.Debug("github configuration", "token", logging.MaskSensitive(token))

	// Create the oauth2 client
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(context.Background(), ts)

	return &Client{client: github.NewClient(tc)}, nil
}

// ListRepositories retrieves the most recently updated repositories for a user.
// It converts the GitHub API objects to our internal model. It returns a slice
// of repositories or a classified error if the retrieval fails.
func (c *Client) ListRepositories(ctx context.Context, username string) ([]models.Repository, error) {
	opts := &github.RepositoryListOptions{
		Sort: "updated",
		ListOptions: github.ListOptions{
			PerPage: 10,
		},
	}

	repos, resp, err := c.client.Repositories.List(ctx, username, opts)
	if err != nil {
		logging.Error("failed to fetch github repositories", "username", username, "error", err)
		return nil, classify("failed to list repositories", resp, err)
	}

	result := make([]models.Repository, 0, len(repos))
	for _, repo := range repos {
		result = append(result, models.Repository{
			Name:        repo.GetName(),
			FullName:    repo.GetFullName(),
			Owner:       repo.GetOwner().GetLogin(),
			Description: repo.GetDescription(),
			URL:         repo.GetHTMLURL(),
			Stars:       repo.GetStargazersCount(),
			Forks:       repo.GetForksCount(),
		})
	}

	logging.Debug("retrieved github repositories", "username", username, "count", len(result))
	return result, nil
}

// ListIssues retrieves open issues from a GitHub repository.
// It filters out pull requests and converts the GitHub API objects to our
// internal model. The repository should be in the format "owner/repo".
func (c *Client) ListIssues(ctx context.Context, repository string) ([]models.Issue, error) {
	owner, repo, err := splitRepository(repository)
	if err != nil {
		return nil, err
	}

	opts := &github.IssueListByRepoOptions{
		State: "open",
		ListOptions: github.ListOptions{
			PerPage: 10,
		},
	}

	issues, resp, err := c.client.Issues.ListByRepo(ctx, owner, repo, opts)
	if err != nil {
		logging.Error("failed to fetch github issues", "repository", repository, "error", err)
		return nil, classify("failed to list issues", resp, err)
	}

	// Filter out pull requests and convert to our internal model
	var result []models.Issue
	for _, issue := range issues {
		// Skip pull requests (they're also returned by the Issues API)
		if issue.PullRequestLinks != nil {
			continue
		}

		labelNames := make([]string, 0, len(issue.Labels))
		for _, label := range issue.Labels {
			labelNames = append(labelNames, label.GetName())
		}

		result = append(result, models.Issue{
			Number:   issue.GetNumber(),
			Title:    issue.GetTitle(),
			Body:     issue.GetBody(),
			State:    issue.GetState(),
			Assignee: issue.GetAssignee().GetLogin(),
			Labels:   labelNames,
		})
	}

	logging.Debug("retrieved github issues", "repository", repository, "count", len(result))
	return result, nil
}

// TestConnection verifies the configured token by fetching the authenticated
// user. It returns the user's login on success.
func (c *Client) TestConnection(ctx context.Context) (string, error) {
	user, resp, err := c.client.Users.Get(ctx, "")
	if err != nil {
		return "", classify("failed to fetch authenticated user", resp, err)
	}
	return user.GetLogin(), nil
}

// splitRepository parses an "owner/repo" repository reference.
func splitRepository(repository string) (owner, repo string, err error) {
	parts := strings.Split(repository, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", upstream.New(upstream.KindInvalid, "github",
			fmt.Sprintf("invalid repository format: %s, expected format: owner/repo", repository))
	}
	return parts[0], parts[1], nil
}

// classify maps a GitHub API failure onto the shared upstream error taxonomy.
// Network failures never produce a response, so they are treated as the
// upstream being unavailable.
func classify(message string, resp *github.Response, err error) error {
	if resp != nil {
		return upstream.FromStatusCode("github", resp.StatusCode, message, err)
	}
	return upstream.Wrap(upstream.KindUnavailable, "github", message, err)
}
