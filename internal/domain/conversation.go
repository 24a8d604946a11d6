package domain

import (
	"fmt"
	"strings"
	"time"
)

type ConversationID string

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ParseRole maps wire role labels onto Role. The backend labels replies "ai".
func ParseRole(raw string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "user":
		return RoleUser, nil
	case "assistant", "ai":
		return RoleAssistant, nil
	default:
		return "", fmt.Errorf("unknown message role %q", raw)
	}
}

func (r Role) Label() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleAssistant:
		return "AI Assistant"
	default:
		return string(r)
	}
}

type Message struct {
	Role    Role
	Content string
}

type Conversation struct {
	ID        ConversationID
	Title     string
	Messages  []Message
	CreatedAt time.Time
}

// Clone returns a copy that shares no message storage with c.
func (c Conversation) Clone() Conversation {
	clone := c
	if c.Messages != nil {
		clone.Messages = make([]Message, len(c.Messages))
		copy(clone.Messages, c.Messages)
	}
	return clone
}

func (c Conversation) Validate() error {
	if strings.TrimSpace(string(c.ID)) == "" {
		return fmt.Errorf("conversation id is required")
	}

	return nil
}

type SessionState struct {
	Conversations        []Conversation
	ActiveConversationID ConversationID
	Pending              bool
	LastError            string
}

func (s SessionState) Active() (Conversation, bool) {
	if s.ActiveConversationID == "" {
		return Conversation{}, false
	}
	for _, conversation := range s.Conversations {
		if conversation.ID == s.ActiveConversationID {
			return conversation, true
		}
	}
	return Conversation{}, false
}
