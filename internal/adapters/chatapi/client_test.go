package chatapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/askai-cli/internal/domain"
	"github.com/bnema/askai-cli/internal/ports/mocks"
)

type staticToken string

func (s staticToken) AccessToken(context.Context) (string, error) {
	return string(s), nil
}

func newTestClient(t *testing.T, handler http.HandlerFunc) Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return Client{
		BaseURL:     server.URL,
		Credentials: staticToken("token-123"),
		HTTPClient:  server.Client(),
	}
}

func TestListConversationsDecodesBackendShape(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/chats/", r.URL.Path)
		assert.Equal(t, "Bearer token-123", r.Header.Get("Authorization"))
		_, err := uuid.Parse(r.Header.Get("X-Request-ID"))
		assert.NoError(t, err)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id": 12, "title": "Hello", "created_at": "2026-03-01T10:00:00", "messages": [
				{"role": "user", "content": "Hello"},
				{"role": "ai", "content": "Hi there"}
			]},
			{"id": "abc", "title": "Other", "created_at": "2026-03-01T09:00:00Z"}
		]`))
	})

	conversations, err := client.ListConversations(context.Background())
	require.NoError(t, err)
	require.Len(t, conversations, 2)

	assert.Equal(t, domain.ConversationID("12"), conversations[0].ID)
	assert.Equal(t, "Hello", conversations[0].Title)
	assert.Equal(t, time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC), conversations[0].CreatedAt)
	assert.Equal(t, []domain.Message{
		{Role: domain.RoleUser, Content: "Hello"},
		{Role: domain.RoleAssistant, Content: "Hi there"},
	}, conversations[0].Messages)

	assert.Equal(t, domain.ConversationID("abc"), conversations[1].ID)
	assert.Empty(t, conversations[1].Messages)
}

func TestListConversationsRejectsNonArray(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{name: "object", body: `{"detail":"oops"}`},
		{name: "null", body: `null`},
		{name: "entry without id", body: `[{"title":"x"}]`},
		{name: "unknown role", body: `[{"id":1,"messages":[{"role":"system","content":"x"}]}]`},
		{name: "garbage", body: `not json`},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tc.body))
			})

			_, err := client.ListConversations(context.Background())
			require.ErrorIs(t, err, domain.ErrMalformedPayload)
		})
	}
}

func TestCreateConversationPostsTitle(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/chats/", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]string{"title": "New Chat"}, body)

		_, _ = w.Write([]byte(`{"id": 4, "title": "New Chat", "messages": []}`))
	})

	created, err := client.CreateConversation(context.Background(), "New Chat")
	require.NoError(t, err)
	assert.Equal(t, domain.ConversationID("4"), created.ID)
	assert.Equal(t, "New Chat", created.Title)
	assert.True(t, created.CreatedAt.IsZero())
}

func TestDeleteConversationEscapesID(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/chats/a%20b", r.URL.EscapedPath())
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, client.DeleteConversation(context.Background(), "a b"))
}

func TestSendMessageUsesConfiguredPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		sendPath string
		wantPath string
	}{
		{name: "default", sendPath: "", wantPath: "/chats/7/messages"},
		{name: "legacy ask", sendPath: "ask", wantPath: "/chats/7/ask"},
		{name: "slashes trimmed", sendPath: "/ask/", wantPath: "/chats/7/ask"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, tc.wantPath, r.URL.Path)

				var body map[string]string
				require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
				assert.Equal(t, map[string]string{"role": "user", "content": "Hello"}, body)

				_, _ = w.Write([]byte(`{"role":"ai","content":"Hi there"}`))
			})
			client.SendPath = tc.sendPath

			reply, err := client.SendMessage(context.Background(), "7", "Hello")
			require.NoError(t, err)
			assert.Equal(t, domain.Message{Role: domain.RoleAssistant, Content: "Hi there"}, reply)
		})
	}
}

func TestNonSuccessStatusBecomesRemoteError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		status     int
		body       string
		wantDetail string
	}{
		{name: "string detail", status: http.StatusServiceUnavailable, body: `{"detail":"Model is warming up"}`, wantDetail: "Model is warming up"},
		{name: "validation list", status: http.StatusUnprocessableEntity, body: `{"detail":[{"msg":"field required"},{"msg":"too long"}]}`, wantDetail: "field required; too long"},
		{name: "plain text body", status: http.StatusBadGateway, body: `bad gateway`, wantDetail: ""},
		{name: "empty body", status: http.StatusUnauthorized, body: ``, wantDetail: ""},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			})

			_, err := client.SendMessage(context.Background(), "1", "Hello")
			var remote *domain.RemoteError
			require.True(t, errors.As(err, &remote))
			assert.Equal(t, tc.status, remote.StatusCode)
			assert.Equal(t, tc.wantDetail, remote.Detail)
			assert.False(t, errors.Is(err, domain.ErrUnreachable))
		})
	}
}

func TestTransportFailureIsUnreachable(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	baseURL := server.URL
	server.Close()

	client := Client{BaseURL: baseURL, Credentials: staticToken("t")}
	_, err := client.CreateConversation(context.Background(), "x")
	require.ErrorIs(t, err, domain.ErrUnreachable)
}

func TestRequestTimesOutWithoutCallerDeadline(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	t.Cleanup(func() { close(release) })
	client.RequestTimeout = 20 * time.Millisecond

	_, err := client.ListConversations(context.Background())
	require.ErrorIs(t, err, domain.ErrUnreachable)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestMissingCredentialSkipsRequest(t *testing.T) {
	t.Parallel()

	called := false
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	credentials := mocks.NewMockCredentialSource(t)
	credentials.EXPECT().AccessToken(mock.Anything).Return("  ", nil).Once()
	client.Credentials = credentials

	_, err := client.ListConversations(context.Background())
	require.ErrorIs(t, err, domain.ErrCredentialMissing)
	assert.False(t, called)

	client.Credentials = nil
	err = client.DeleteConversation(context.Background(), "1")
	require.ErrorIs(t, err, domain.ErrCredentialMissing)
}

func TestCredentialErrorIsWrapped(t *testing.T) {
	t.Parallel()

	credentials := mocks.NewMockCredentialSource(t)
	credentials.EXPECT().AccessToken(mock.Anything).Return("", domain.ErrCredentialMissing).Once()

	client := Client{BaseURL: "http://127.0.0.1:1", Credentials: credentials}
	_, err := client.SendMessage(context.Background(), "1", "x")
	require.ErrorIs(t, err, domain.ErrCredentialMissing)
}

func TestBuildAPIURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		base     string
		segments []string
		want     string
		wantErr  bool
	}{
		{name: "root base", base: "http://localhost:8000", segments: []string{"chats/"}, want: "http://localhost:8000/chats/"},
		{name: "base with prefix", base: "https://api.example.com/v1/", segments: []string{"chats", "3", "ask"}, want: "https://api.example.com/v1/chats/3/ask"},
		{name: "empty base", base: "", wantErr: true},
		{name: "bad scheme", base: "ftp://example.com", wantErr: true},
		{name: "missing host", base: "http://", wantErr: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := buildAPIURL(tc.base, tc.segments...)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseTimestamp(t *testing.T) {
	t.Parallel()

	assert.Equal(t, time.Date(2026, 3, 1, 10, 0, 0, 500000000, time.UTC), parseTimestamp("2026-03-01T10:00:00.5"))
	assert.True(t, parseTimestamp("yesterday").IsZero())
	assert.True(t, parseTimestamp("").IsZero())

	zoned := parseTimestamp("2026-03-01T12:00:00+02:00")
	assert.True(t, zoned.Equal(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)))
}
