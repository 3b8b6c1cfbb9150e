package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/danielolaszy/relay/pkg/models"
)

// handleMCPCall dispatches a generic {method, params} invocation to the
// matching adapter operation. The envelope always comes back with HTTP 200;
// failures are reported through the success flag and error field so callers
// only ever parse one shape.
func (s *Server) handleMCPCall() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req mcpCallRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			s.respondBinding(c, err)
			return
		}

		data, err := s.dispatchMCP(c, req)
		if err != nil {
			c.JSON(http.StatusOK, mcpCallResponse{Success: false, Error: err.Error()})
			return
		}

		c.JSON(http.StatusOK, mcpCallResponse{Success: true, Data: data})
	}
}

// dispatchMCP routes one method name to its adapter operation.
func (s *Server) dispatchMCP(c *gin.Context, req mcpCallRequest) (any, error) {
	ctx := c.Request.Context()

	switch req.Method {
	case "github.get_repos":
		username, err := stringParam(req.Params, "username")
		if err != nil {
			return nil, err
		}
		return s.github.ListRepositories(ctx, username)

	case "github.get_issues":
		repository, err := stringParam(req.Params, "repo_name")
		if err != nil {
			return nil, err
		}
		return s.github.ListIssues(ctx, repository)

	case "jira.get_issues":
		return s.jira.ListIssues(ctx, optionalStringParam(req.Params, "project_key"))

	case "jira.create_issue":
		project, err := stringParam(req.Params, "project_key")
		if err != nil {
			return nil, err
		}
		summary, err := stringParam(req.Params, "summary")
		if err != nil {
			return nil, err
		}
		issue, err := s.jira.CreateIssue(ctx, models.NewJiraIssue{
			Project:     project,
			Summary:     summary,
			Description: optionalStringParam(req.Params, "description"),
			Type:        optionalStringParam(req.Params, "issue_type"),
			Priority:    optionalStringParam(req.Params, "priority"),
		})
		if err != nil {
			return nil, err
		}
		return issue.Key, nil

	case "slack.get_channels":
		return s.slack.ListChannels(ctx)

	case "slack.send_message":
		channel, err := stringParam(req.Params, "channel")
		if err != nil {
			return nil, err
		}
		text, err := stringParam(req.Params, "text")
		if err != nil {
			return nil, err
		}
		return s.slack.SendMessage(ctx, channel, text, optionalStringParam(req.Params, "thread_ts"))

	case "slack.get_messages":
		channel, err := stringParam(req.Params, "channel")
		if err != nil {
			return nil, err
		}
		return s.slack.GetMessages(ctx, channel, intParam(req.Params, "limit", 10))

	default:
		return nil, fmt.Errorf("unknown method: %s", req.Method)
	}
}

// stringParam extracts a required string parameter.
func stringParam(params map[string]any, key string) (string, error) {
	value, ok := params[key].(string)
	if !ok || value == "" {
		return "", fmt.Errorf("missing required parameter: %s", key)
	}
	return value, nil
}

// optionalStringParam extracts a string parameter, empty when absent.
func optionalStringParam(params map[string]any, key string) string {
	value, _ := params[key].(string)
	return value
}

// intParam extracts an integer parameter with a default. JSON numbers decode
// as float64, so that is the shape to expect.
func intParam(params map[string]any, key string, fallback int) int {
	if value, ok := params[key].(float64); ok && value > 0 {
		return int(value)
	}
	return fallback
}
