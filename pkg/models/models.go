// Package models defines data structures shared across the application.
//
// These are pass-through shapes mirroring the upstream vendor payloads;
// nothing here is persisted locally.
package models

// Repository represents a GitHub repository with its essential fields.
type Repository struct {
	// Name is the short repository name (e.g., "relay")
	Name string `json:"name"`

	// FullName is the owner-qualified name (e.g., "danielolaszy/relay")
	FullName string `json:"full_name"`

	// Owner is the login of the repository owner
	Owner string `json:"owner"`

	// Description is the repository description, if any
	Description string `json:"description,omitempty"`

	// URL is the repository's HTML URL
	URL string `json:"url"`

	// Stars is the stargazer count
	Stars int `json:"stars"`

	// Forks is the fork count
	Forks int `json:"forks"`
}

// Issue represents a GitHub issue with its essential fields.
type Issue struct {
	// Number is the issue number in GitHub (e.g., 42)
	Number int `json:"number"`

	// Title is the issue's title or summary
	Title string `json:"title"`

	// Body is the full body text of the issue
	Body string `json:"body,omitempty"`

	// State is the current state of the issue
	State string `json:"state"`

	// Assignee is the login of the assigned user, if any
	Assignee string `json:"assignee,omitempty"`

	// Labels is a slice of label names attached to the issue
	Labels []string `json:"labels"`
}

// JiraIssue represents a JIRA issue with its key properties.
type JiraIssue struct {
	// Key is the full JIRA issue identifier (e.g., "ABC-123")
	Key string `json:"key"`

	// Summary is the issue's summary field
	Summary string `json:"summary"`

	// Description is the full body text of the issue
	Description string `json:"description,omitempty"`

	// Status is the workflow status name (e.g., "In Progress")
	Status string `json:"status"`

	// Assignee is the display name of the assigned user, if any
	Assignee string `json:"assignee,omitempty"`

	// Priority is the priority name (e.g., "Medium")
	Priority string `json:"priority"`

	// Type is the JIRA issue type (e.g., "Story", "Task")
	Type string `json:"type"`
}

// NewJiraIssue carries the fields needed to create a JIRA issue upstream.
type NewJiraIssue struct {
	// Project is the JIRA project key (e.g., "ABC")
	Project string

	// Summary is the issue's summary field
	Summary string

	// Description is the full body text of the issue
	Description string

	// Type is the JIRA issue type, defaulting to "Task"
	Type string

	// Priority is the priority name, defaulting to "Medium"
	Priority string
}

// Channel represents a Slack conversation.
type Channel struct {
	// ID is the Slack channel identifier (e.g., "C0123456789")
	ID string `json:"id"`

	// Name is the channel name without the leading '#'
	Name string `json:"name"`

	// IsChannel reports whether the conversation is a public channel
	IsChannel bool `json:"is_channel"`

	// IsPrivate reports whether the conversation is private
	IsPrivate bool `json:"is_private"`

	// NumMembers is the member count, when the API provides one
	NumMembers int `json:"num_members,omitempty"`
}

// Message represents a single Slack message.
type Message struct {
	// Channel is the channel the message was posted to
	Channel string `json:"channel,omitempty"`

	// User is the ID of the user that posted the message
	User string `json:"user,omitempty"`

	// Text is the message text
	Text string `json:"text"`

	// Timestamp is the Slack message timestamp (e.g., "1712345678.000100")
	Timestamp string `json:"ts"`
}

// ConnectionStatus reports the outcome of probing one upstream service.
type ConnectionStatus struct {
	// Status is "connected", "error" or "not_configured"
	Status string `json:"status"`

	// Identity describes the authenticated principal when connected
	Identity string `json:"identity,omitempty"`

	// Message carries the failure detail when not connected
	Message string `json:"message,omitempty"`
}
