package server

import (
	"errors"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// createJiraIssueRequest is the body of POST /jira/issues.
type createJiraIssueRequest struct {
	Project     string `json:"project" binding:"required"`
	Summary     string `json:"summary" binding:"required"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Priority    string `json:"priority"`
}

// sendMessageRequest is the body of POST /slack/messages.
type sendMessageRequest struct {
	Channel  string `json:"channel" binding:"required"`
	Text     string `json:"text" binding:"required"`
	ThreadTS string `json:"thread_ts"`
}

// mcpCallRequest is the body of POST /mcp/call.
type mcpCallRequest struct {
	Method string         `json:"method" binding:"required"`
	Params map[string]any `json:"params"`
}

// mcpCallResponse is the envelope every /mcp/call invocation returns.
type mcpCallResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// createIssueResponse is the body returned after creating a JIRA issue.
type createIssueResponse struct {
	Success  bool   `json:"success"`
	IssueKey string `json:"issue_key"`
}

// sendMessageResponse is the body returned after posting a Slack message.
type sendMessageResponse struct {
	Success   bool   `json:"success"`
	MessageTS string `json:"message_ts"`
}

// errorResponse is the structured error body for every failed request.
type errorResponse struct {
	Error  string   `json:"error"`
	Kind   string   `json:"kind,omitempty"`
	Fields []string `json:"fields,omitempty"`
}

var (
	// usernamePattern matches valid GitHub usernames and organization names.
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,37}[a-zA-Z0-9])?$`)

	// repositoryPattern matches "owner/repo" repository references.
	repositoryPattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9-]*/[a-zA-Z0-9._-]+$`)

	// projectKeyPattern matches JIRA project keys (e.g., "ABC").
	projectKeyPattern = regexp.MustCompile(`^[A-Z][A-Z0-9_]*$`)
)

// bindingFields extracts the offending field names from a gin binding
// failure so validation responses can list them. A malformed JSON body has
// no field information and yields nil.
func bindingFields(err error) []string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return nil
	}

	fields := make([]string, 0, len(validationErrs))
	for _, fieldErr := range validationErrs {
		fields = append(fields, strings.ToLower(fieldErr.Field()))
	}
	return fields
}
