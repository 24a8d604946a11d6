package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTitleFromMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		message string
		want    string
	}{
		{name: "short message kept", message: "Hello", want: "Hello"},
		{name: "surrounding whitespace trimmed", message: "  Hello  ", want: "Hello"},
		{name: "exactly thirty characters kept", message: strings.Repeat("a", 30), want: strings.Repeat("a", 30)},
		{name: "long message ellipsized", message: strings.Repeat("b", 31), want: strings.Repeat("b", 30) + "..."},
		{name: "multibyte runes counted once", message: strings.Repeat("é", 35), want: strings.Repeat("é", 30) + "..."},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, TitleFromMessage(tc.message))
		})
	}
}

func TestDisplayModeForRoute(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want DisplayMode
	}{
		{path: "/", want: DisplayModeFramed},
		{path: "/about", want: DisplayModeFramed},
		{path: "/login", want: DisplayModeFramed},
		{path: "/dashboard", want: DisplayModeBare},
		{path: "/dashboard/settings", want: DisplayModeBare},
		{path: "/ask-ai", want: DisplayModeBare},
		{path: "/ask-ai?chat=4", want: DisplayModeBare},
		{path: "/ask-ai-legacy", want: DisplayModeFramed},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.path, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, DisplayModeForRoute(tc.path))
		})
	}
}

func TestRelativeTime(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		at   time.Time
		want string
	}{
		{name: "zero time", at: time.Time{}, want: ""},
		{name: "seconds", at: now.Add(-30 * time.Second), want: "Just now"},
		{name: "minutes", at: now.Add(-5 * time.Minute), want: "5m ago"},
		{name: "hours", at: now.Add(-3 * time.Hour), want: "3h ago"},
		{name: "days", at: now.Add(-2 * 24 * time.Hour), want: "2d ago"},
		{name: "older than a week", at: time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC), want: "01 Sep 2026"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, RelativeTime(tc.at, now))
		})
	}
}

func TestParseRoleAcceptsBackendAlias(t *testing.T) {
	t.Parallel()

	role, err := ParseRole("ai")
	require.NoError(t, err)
	assert.Equal(t, RoleAssistant, role)

	role, err = ParseRole("USER")
	require.NoError(t, err)
	assert.Equal(t, RoleUser, role)

	_, err = ParseRole("system")
	assert.ErrorContains(t, err, "unknown message role")
}

func TestConversationCloneDoesNotShareMessages(t *testing.T) {
	t.Parallel()

	original := Conversation{ID: "1", Messages: []Message{{Role: RoleUser, Content: "Hello"}}}
	clone := original.Clone()
	clone.Messages[0].Content = "changed"
	clone.Messages = append(clone.Messages, Message{Role: RoleAssistant, Content: "Hi"})

	assert.Equal(t, "Hello", original.Messages[0].Content)
	assert.Len(t, original.Messages, 1)
}

func TestSessionStateActive(t *testing.T) {
	t.Parallel()

	state := SessionState{
		Conversations:        []Conversation{{ID: "1", Title: "one"}, {ID: "2", Title: "two"}},
		ActiveConversationID: "2",
	}

	active, ok := state.Active()
	require.True(t, ok)
	assert.Equal(t, "two", active.Title)

	state.ActiveConversationID = "9"
	_, ok = state.Active()
	assert.False(t, ok)
}

func TestRemoteErrorMessage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "chat backend status 502", (&RemoteError{StatusCode: 502}).Error())
	assert.Equal(t, "chat backend status 400: bad title", (&RemoteError{StatusCode: 400, Detail: "bad title"}).Error())
}
