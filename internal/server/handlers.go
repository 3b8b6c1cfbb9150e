package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/danielolaszy/relay/internal/logging"
	"github.com/danielolaszy/relay/internal/upstream"
	"github.com/danielolaszy/relay/pkg/middleware"
	"github.com/danielolaszy/relay/pkg/models"
)

// maxHistoryLimit caps the Slack history page size a caller may request.
const maxHistoryLimit = 100

// handleStatus returns the static server metadata for the root endpoint.
// It never touches an upstream, so it succeeds regardless of credential
// validity.
func (s *Server) handleStatus() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service":      "relay",
			"version":      Version,
			"integrations": []string{"github", "jira", "slack"},
		})
	}
}

// handleHealth is a liveness probe.
func (s *Server) handleHealth() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// handleListRepositories returns the repositories of a GitHub user.
func (s *Server) handleListRepositories() gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.Param("username")
		if !usernamePattern.MatchString(username) {
			s.respondValidation(c, "invalid github username", "username")
			return
		}

		repos, err := s.github.ListRepositories(c.Request.Context(), username)
		if err != nil {
			s.respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, repos)
	}
}

// handleListGitHubIssues returns the open issues of a repository. The
// repository arrives as a wildcard path parameter in "owner/repo" form.
func (s *Server) handleListGitHubIssues() gin.HandlerFunc {
	return func(c *gin.Context) {
		repository := strings.TrimPrefix(c.Param("repo"), "/")
		if !repositoryPattern.MatchString(repository) {
			s.respondValidation(c, "invalid repository, expected owner/repo", "repo")
			return
		}

		issues, err := s.github.ListIssues(c.Request.Context(), repository)
		if err != nil {
			s.respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, issues)
	}
}

// handleListJiraIssues returns JIRA issues, optionally filtered by project key.
func (s *Server) handleListJiraIssues() gin.HandlerFunc {
	return func(c *gin.Context) {
		project := c.Query("project")
		if project != "" && !projectKeyPattern.MatchString(project) {
			s.respondValidation(c, "invalid jira project key", "project")
			return
		}

		issues, err := s.jira.ListIssues(c.Request.Context(), project)
		if err != nil {
			s.respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, issues)
	}
}

// handleCreateJiraIssue creates a JIRA issue from the request body.
func (s *Server) handleCreateJiraIssue() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createJiraIssueRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			s.respondBinding(c, err)
			return
		}
		if !projectKeyPattern.MatchString(req.Project) {
			s.respondValidation(c, "invalid jira project key", "project")
			return
		}

		issue, err := s.jira.CreateIssue(c.Request.Context(), models.NewJiraIssue{
			Project:     req.Project,
			Summary:     req.Summary,
			Description: req.Description,
			Type:        req.Type,
			Priority:    req.Priority,
		})
		if err != nil {
			s.respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, createIssueResponse{
			Success:  true,
			IssueKey: issue.Key,
		})
	}
}

// handleListChannels returns the workspace's Slack channels.
func (s *Server) handleListChannels() gin.HandlerFunc {
	return func(c *gin.Context) {
		channels, err := s.slack.ListChannels(c.Request.Context())
		if err != nil {
			s.respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, channels)
	}
}

// handleSendMessage posts a Slack message from the request body.
func (s *Server) handleSendMessage() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req sendMessageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			s.respondBinding(c, err)
			return
		}

		timestamp, err := s.slack.SendMessage(c.Request.Context(), req.Channel, req.Text, req.ThreadTS)
		if err != nil {
			s.respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, sendMessageResponse{
			Success:   true,
			MessageTS: timestamp,
		})
	}
}

// handleChannelHistory returns a channel's recent messages, newest first.
func (s *Server) handleChannelHistory() gin.HandlerFunc {
	return func(c *gin.Context) {
		channel := c.Param("channel")

		limit := 10
		if raw := c.Query("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 1 || parsed > maxHistoryLimit {
				s.respondValidation(c, "limit must be an integer between 1 and 100", "limit")
				return
			}
			limit = parsed
		}

		messages, err := s.slack.GetMessages(c.Request.Context(), channel, limit)
		if err != nil {
			s.respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"messages": messages})
	}
}

// handleTestConnections probes all three upstreams with the configured
// credentials and reports per-service status. The endpoint itself always
// returns 200; failures appear in the body.
func (s *Server) handleTestConnections() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		results := map[string]models.ConnectionStatus{
			"github": probe(func() (string, error) { return s.github.TestConnection(ctx) }),
			"jira":   probe(func() (string, error) { return s.jira.TestConnection(ctx) }),
			"slack":  probe(func() (string, error) { return s.slack.TestConnection(ctx) }),
		}

		c.JSON(http.StatusOK, gin.H{"connection_tests": results})
	}
}

// probe runs one connection test and folds its outcome into a status record.
func probe(test func() (string, error)) models.ConnectionStatus {
	identity, err := test()
	if err != nil {
		return models.ConnectionStatus{Status: "error", Message: err.Error()}
	}
	return models.ConnectionStatus{Status: "connected", Identity: identity}
}

// respondValidation rejects a request whose path or query parameters failed
// validation, before any upstream call is made.
func (s *Server) respondValidation(c *gin.Context, message string, fields ...string) {
	c.JSON(http.StatusUnprocessableEntity, errorResponse{
		Error:  message,
		Kind:   "validation",
		Fields: fields,
	})
}

// respondBinding rejects a request whose JSON body failed schema validation,
// listing the offending fields when the validator provides them.
func (s *Server) respondBinding(c *gin.Context, err error) {
	c.JSON(http.StatusUnprocessableEntity, errorResponse{
		Error:  "invalid request body",
		Kind:   "validation",
		Fields: bindingFields(err),
	})
}

// respondError maps a classified adapter failure onto an HTTP status and a
// structured body. Unclassified failures become a generic 500 so internal
// detail never leaks.
func (s *Server) respondError(c *gin.Context, err error) {
	kind := upstream.KindOf(err)
	status := statusForKind(kind)

	logging.Error("upstream call failed",
		"path", c.Request.URL.Path,
		"kind", kind.String(),
		"error", err,
		"request_id", middleware.GetRequestID(c))

	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "internal server error"
	}

	c.JSON(status, errorResponse{
		Error: message,
		Kind:  kind.String(),
	})
}

// statusForKind translates the adapter error taxonomy into HTTP statuses.
func statusForKind(kind upstream.Kind) int {
	switch kind {
	case upstream.KindInvalid:
		return http.StatusUnprocessableEntity
	case upstream.KindUnauthorized:
		return http.StatusUnauthorized
	case upstream.KindNotFound:
		return http.StatusNotFound
	case upstream.KindUnavailable:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
