package github

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/google/go-github/v41/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielolaszy/relay/internal/upstream"
)

// newTestClient builds a Client talking to a fake GitHub API server.
func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	gh := github.NewClient(nil)
	baseURL, err := url.Parse(srv.URL + "/")
	require.NoError(t, err)
	gh.BaseURL = baseURL

	return &Client{client: gh}
}

func TestListRepositories(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/octocat/repos", r.URL.Path)
		assert.Equal(t, "updated", r.URL.Query().Get("sort"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{
				"name": "hello-world",
				"full_name": "octocat/hello-world",
				"owner": {"login": "octocat"},
				"description": "My first repository",
				"html_url": "https://github.com/octocat/hello-world",
				"stargazers_count": 80,
				"forks_count": 9
			},
			{
				"name": "spoon-knife",
				"full_name": "octocat/spoon-knife",
				"owner": {"login": "octocat"},
				"html_url": "https://github.com/octocat/spoon-knife",
				"stargazers_count": 1,
				"forks_count": 0
			}
		]`))
	}))

	repos, err := client.ListRepositories(context.Background(), "octocat")
	require.NoError(t, err)
	require.Len(t, repos, 2)

	assert.Equal(t, "hello-world", repos[0].Name)
	assert.Equal(t, "octocat/hello-world", repos[0].FullName)
	assert.Equal(t, "octocat", repos[0].Owner)
	assert.Equal(t, "My first repository", repos[0].Description)
	assert.Equal(t, "https://github.com/octocat/hello-world", repos[0].URL)
	assert.Equal(t, 80, repos[0].Stars)
	assert.Equal(t, 9, repos[0].Forks)

	// Missing description stays empty rather than failing
	assert.Empty(t, repos[1].Description)
}

func TestListRepositoriesNotFound(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message": "Not Found"}`))
	}))

	_, err := client.ListRepositories(context.Background(), "ghost")
	require.Error(t, err)
	assert.Equal(t, upstream.KindNotFound, upstream.KindOf(err))
}

func TestListRepositoriesUnauthorized(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message": "Bad credentials"}`))
	}))

	_, err := client.ListRepositories(context.Background(), "octocat")
	require.Error(t, err)
	assert.Equal(t, upstream.KindUnauthorized, upstream.KindOf(err))
}

func TestListRepositoriesNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // Connection refused from here on

	gh := github.NewClient(nil)
	baseURL, err := url.Parse(srv.URL + "/")
	require.NoError(t, err)
	gh.BaseURL = baseURL
	client := &Client{client: gh}

	_, err = client.ListRepositories(context.Background(), "octocat")
	require.Error(t, err)
	assert.Equal(t, upstream.KindUnavailable, upstream.KindOf(err))
}

func TestListIssues(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/octocat/hello-world/issues", r.URL.Path)
		assert.Equal(t, "open", r.URL.Query().Get("state"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{
				"number": 1,
				"title": "Found a bug",
				"body": "It does not work",
				"state": "open",
				"assignee": {"login": "octocat"},
				"labels": [{"name": "bug"}, {"name": "help wanted"}]
			},
			{
				"number": 2,
				"title": "A pull request",
				"state": "open",
				"pull_request": {"url": "https://api.github.com/repos/octocat/hello-world/pulls/2"}
			}
		]`))
	}))

	issues, err := client.ListIssues(context.Background(), "octocat/hello-world")
	require.NoError(t, err)

	// The pull request is filtered out
	require.Len(t, issues, 1)
	assert.Equal(t, 1, issues[0].Number)
	assert.Equal(t, "Found a bug", issues[0].Title)
	assert.Equal(t, "It does not work", issues[0].Body)
	assert.Equal(t, "open", issues[0].State)
	assert.Equal(t, "octocat", issues[0].Assignee)
	assert.Equal(t, []string{"bug", "help wanted"}, issues[0].Labels)
}

func TestListIssuesInvalidRepository(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("upstream should not be called for an invalid repository reference")
	}))

	tests := []string{"", "no-slash", "too/many/parts", "/repo", "owner/"}
	for _, repository := range tests {
		_, err := client.ListIssues(context.Background(), repository)
		require.Error(t, err, "repository %q", repository)
		assert.Equal(t, upstream.KindInvalid, upstream.KindOf(err))
	}
}

func TestTestConnection(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/user", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"login": "octocat"}`))
	}))

	login, err := client.TestConnection(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "octocat", login)
}
