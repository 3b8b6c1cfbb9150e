// Package server implements the HTTP surface of the gateway. Each route binds
// to exactly one adapter operation; handlers validate input, invoke the
// adapter and translate its result or classified error into a JSON response.
package server

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/danielolaszy/relay/internal/config"
	"github.com/danielolaszy/relay/pkg/middleware"
	"github.com/danielolaszy/relay/pkg/models"
)

// Version is reported by the status endpoint.
const Version = "1.0.0"

// GitHubService is the capability set the server needs from the GitHub adapter.
type GitHubService interface {
	ListRepositories(ctx context.Context, username string) ([]models.Repository, error)
	ListIssues(ctx context.Context, repository string) ([]models.Issue, error)
	TestConnection(ctx context.Context) (string, error)
}

// JiraService is the capability set the server needs from the JIRA adapter.
type JiraService interface {
	ListIssues(ctx context.Context, projectKey string) ([]models.JiraIssue, error)
	CreateIssue(ctx context.Context, req models.NewJiraIssue) (models.JiraIssue, error)
	TestConnection(ctx context.Context) (string, error)
}

// SlackService is the capability set the server needs from the Slack adapter.
type SlackService interface {
	ListChannels(ctx context.Context) ([]models.Channel, error)
	SendMessage(ctx context.Context, channel, text, threadTS string) (string, error)
	GetMessages(ctx context.Context, channel string, limit int) ([]models.Message, error)
	TestConnection(ctx context.Context) (string, error)
}

// Server is the gateway's HTTP server.
type Server struct {
	router *gin.Engine
	cfg    *config.Config
	github GitHubService
	jira   JiraService
	slack  SlackService
}

// New creates a gateway server over the three vendor adapters. The adapters
// are shared by all requests; they carry no per-request state.
func New(cfg *config.Config, github GitHubService, jira JiraService, slack SlackService) *Server {
	if !cfg.Server.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORS())

	s := &Server{
		router: router,
		cfg:    cfg,
		github: github,
		jira:   jira,
		slack:  slack,
	}
	s.setupRoutes()

	return s
}

// Run starts the HTTP server on the configured address and blocks until it
// stops.
func (s *Server) Run() error {
	return s.router.Run(s.cfg.Addr())
}

// setupRoutes binds each (method, path) pair to one handler.
func (s *Server) setupRoutes() {
	s.router.GET("/", s.handleStatus())
	s.router.GET("/health", s.handleHealth())
	s.router.GET("/test-connections", s.handleTestConnections())

	github := s.router.Group("/github")
	{
		github.GET("/repos/:username", s.handleListRepositories())
		// Wildcard so "owner/repo" survives as a single parameter.
		github.GET("/issues/*repo", s.handleListGitHubIssues())
	}

	jira := s.router.Group("/jira")
	{
		jira.GET("/issues", s.handleListJiraIssues())
		jira.POST("/issues", s.handleCreateJiraIssue())
	}

	slack := s.router.Group("/slack")
	{
		slack.GET("/channels", s.handleListChannels())
		slack.POST("/messages", s.handleSendMessage())
		slack.GET("/messages/:channel", s.handleChannelHistory())
	}

	s.router.POST("/mcp/call", s.handleMCPCall())
}
