package slack

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielolaszy/relay/internal/upstream"
)

// newTestClient builds a Client talking to a fake Slack Web API server.
func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return &Client{api: slack.New("xoxb-test", slack.OptionAPIURL(srv.URL + "/"))}
}

func TestListChannels(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/conversations.list", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"ok": true,
			"channels": [
				{
					"id": "C0123456789",
					"name": "general",
					"is_channel": true,
					"is_private": false,
					"num_members": 12
				},
				{
					"id": "C0987654321",
					"name": "secrets",
					"is_channel": true,
					"is_private": true,
					"num_members": 2
				}
			],
			"response_metadata": {"next_cursor": ""}
		}`))
	}))

	channels, err := client.ListChannels(context.Background())
	require.NoError(t, err)
	require.Len(t, channels, 2)

	assert.Equal(t, "C0123456789", channels[0].ID)
	assert.Equal(t, "general", channels[0].Name)
	assert.True(t, channels[0].IsChannel)
	assert.False(t, channels[0].IsPrivate)
	assert.Equal(t, 12, channels[0].NumMembers)

	assert.True(t, channels[1].IsPrivate)
}

func TestListChannelsInvalidAuth(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok": false, "error": "invalid_auth"}`))
	}))

	_, err := client.ListChannels(context.Background())
	require.Error(t, err)
	assert.Equal(t, upstream.KindUnauthorized, upstream.KindOf(err))
}

func TestSendMessage(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat.postMessage", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "C0123456789", r.Form.Get("channel"))
		assert.Equal(t, "hello world", r.Form.Get("text"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok": true, "channel": "C0123456789", "ts": "1712345678.000100"}`))
	}))

	timestamp, err := client.SendMessage(context.Background(), "C0123456789", "hello world", "")
	require.NoError(t, err)
	assert.Equal(t, "1712345678.000100", timestamp)
}

func TestSendMessageThreadReply(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "1712345678.000100", r.Form.Get("thread_ts"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok": true, "channel": "C0123456789", "ts": "1712345679.000200"}`))
	}))

	_, err := client.SendMessage(context.Background(), "C0123456789", "reply", "1712345678.000100")
	require.NoError(t, err)
}

func TestSendMessageChannelNotFound(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok": false, "error": "channel_not_found"}`))
	}))

	_, err := client.SendMessage(context.Background(), "C0000000000", "hello", "")
	require.Error(t, err)
	assert.Equal(t, upstream.KindNotFound, upstream.KindOf(err))
}

func TestSendMessageNotInChannel(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok": false, "error": "not_in_channel"}`))
	}))

	_, err := client.SendMessage(context.Background(), "C0123456789", "hello", "")
	require.Error(t, err)
	assert.Equal(t, upstream.KindInvalid, upstream.KindOf(err))
}

func TestGetMessages(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/conversations.history", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "C0123456789", r.Form.Get("channel"))
		assert.Equal(t, "2", r.Form.Get("limit"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"ok": true,
			"messages": [
				{"type": "message", "user": "U111", "text": "newest", "ts": "1712345679.000200"},
				{"type": "message", "user": "U222", "text": "older", "ts": "1712345678.000100"}
			],
			"has_more": false
		}`))
	}))

	messages, err := client.GetMessages(context.Background(), "C0123456789", 2)
	require.NoError(t, err)
	require.Len(t, messages, 2)

	// Newest first, as the history API returns them
	assert.Equal(t, "newest", messages[0].Text)
	assert.Equal(t, "U111", messages[0].User)
	assert.Equal(t, "1712345679.000200", messages[0].Timestamp)
	assert.Equal(t, "C0123456789", messages[0].Channel)
	assert.Equal(t, "older", messages[1].Text)
}

func TestGetMessagesDefaultLimit(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "10", r.Form.Get("limit"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok": true, "messages": [], "has_more": false}`))
	}))

	_, err := client.GetMessages(context.Background(), "C0123456789", 0)
	require.NoError(t, err)
}

func TestGetMessagesUpstreamDown(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	apiURL := srv.URL + "/"
	srv.Close() // Connection refused from here on

	client := &Client{api: slack.New("xoxb-test", slack.OptionAPIURL(apiURL))}

	_, err := client.GetMessages(context.Background(), "C0123456789", 5)
	require.Error(t, err)
	assert.Equal(t, upstream.KindUnavailable, upstream.KindOf(err))
}

func TestTestConnection(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth.test", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok": true, "user": "relay-bot", "team": "acme", "user_id": "U0", "team_id": "T0", "url": "https://acme.slack.com/"}`))
	}))

	identity, err := client.TestConnection(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "relay-bot @ acme", identity)
}
