// Package slack provides functionality for interacting with the Slack Web API.
package slack

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/slack-go/slack"

	"github.com/danielolaszy/relay/internal/config"
	"github.com/danielolaszy/relay/internal/logging"
	"github.com/danielolaszy/relay/internal/upstream"
	"github.com/danielolaszy/relay/pkg/models"
)

const (
	// channelListLimit caps how many conversations a single listing returns.
	channelListLimit = 20
	// DefaultHistoryLimit is used when a history request carries no limit.
	DefaultHistoryLimit = 10
)

// Client encapsulates the Slack Web API client.
type Client struct {
	api *slack.Client
}

// NewClient creates a new Slack Web API client authenticated with the bot
// token from the provided configuration. The client performs no round trip at
// construction; credential problems surface on the first request.
func NewClient(cfg *config.Config) (*Client, error) {
	token := cfg.Slack.BotToken
	if token == "" {
		return nil, fmt.Errorf("slack bot token not found in configuration")
	}

	logging.Debug("slack configuration", "bot_token", logging.MaskSensitive(token))

	return &Client{api: slack.New(token)}, nil
}

// ListChannels retrieves the workspace's conversations and converts them to
// our internal model.
func (c *Client) ListChannels(ctx context.Context) ([]models.Channel, error) {
	params := &slack.GetConversationsParameters{
		Limit:           channelListLimit,
		Types:           []string{"public_channel", "private_channel"},
		ExcludeArchived: true,
	}

	channels, _, err := c.api.GetConversationsContext(ctx, params)
	if err != nil {
		logging.Error("failed to list slack channels", "error", err)
		return nil, classify("failed to list channels", err)
	}

	result := make([]models.Channel, 0, len(channels))
	for _, channel := range channels {
		result = append(result, models.Channel{
			ID:         channel.ID,
			Name:       channel.Name,
			IsChannel:  channel.IsChannel,
			IsPrivate:  channel.IsPrivate,
			NumMembers: channel.NumMembers,
		})
	}

	logging.Debug("retrieved slack channels", "count", len(result))
	return result, nil
}

// SendMessage posts a message to a channel, optionally as a thread reply.
// It returns the timestamp Slack assigned to the message.
func (c *Client) SendMessage(ctx context.Context, channel, text, threadTS string) (string, error) {
	opts := []slack.MsgOption{
		slack.MsgOptionText(text, false),
	}
	if threadTS != "" {
		opts = append(opts, slack.MsgOptionTS(threadTS))
	}

	_, timestamp, err := c.api.PostMessageContext(ctx, channel, opts...)
	if err != nil {
		logging.Error("failed to send slack message", "channel", channel, "error", err)
		return "", classify("failed to send message", err)
	}

	logging.Info("sent slack message", "channel", channel, "ts", timestamp)
	return timestamp, nil
}

// GetMessages retrieves a channel's most recent messages, newest first, as
// returned by the conversation history API.
func (c *Client) GetMessages(ctx context.Context, channel string, limit int) ([]models.Message, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	params := &slack.GetConversationHistoryParameters{
		ChannelID: channel,
		Limit:     limit,
	}

	history, err := c.api.GetConversationHistoryContext(ctx, params)
	if err != nil {
		logging.Error("failed to fetch slack history", "channel", channel, "error", err)
		return nil, classify("failed to fetch channel history", err)
	}

	result := make([]models.Message, 0, len(history.Messages))
	for _, message := range history.Messages {
		result = append(result, models.Message{
			Channel:   channel,
			User:      message.User,
			Text:      message.Text,
			Timestamp: message.Timestamp,
		})
	}

	logging.Debug("retrieved slack history", "channel", channel, "count", len(result))
	return result, nil
}

// TestConnection verifies the configured token via auth.test. It returns the
// bot's user and team identity on success.
func (c *Client) TestConnection(ctx context.Context) (string, error) {
	resp, err := c.api.AuthTestContext(ctx)
	if err != nil {
		return "", classify("failed auth test", err)
	}
	return fmt.Sprintf("%s @ %s", resp.User, resp.Team), nil
}

// classify maps a Slack Web API failure onto the shared upstream error
// taxonomy. Slack reports most failures as short error strings in an
// otherwise successful HTTP response, so classification is by error code
// rather than by status code.
func classify(message string, err error) error {
	var rateLimited *slack.RateLimitedError
	if errors.As(err, &rateLimited) {
		return upstream.Wrap(upstream.KindUnavailable, "slack", message, err)
	}

	var statusErr slack.StatusCodeError
	if errors.As(err, &statusErr) {
		return upstream.FromStatusCode("slack", statusErr.Code, message, err)
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return upstream.Wrap(upstream.KindUnavailable, "slack", message, err)
	}

	switch err.Error() {
	case "channel_not_found", "user_not_found", "conversation_not_found":
		return upstream.Wrap(upstream.KindNotFound, "slack", message, err)
	case "invalid_auth", "not_authed", "account_inactive", "token_revoked", "token_expired":
		return upstream.Wrap(upstream.KindUnauthorized, "slack", message, err)
	case "not_in_channel", "is_archived", "msg_too_long", "no_text",
		"missing_scope", "restricted_action", "invalid_limit", "invalid_cursor":
		return upstream.Wrap(upstream.KindInvalid, "slack", message, err)
	}

	return upstream.Wrap(upstream.KindUnknown, "slack", message, err)
}
