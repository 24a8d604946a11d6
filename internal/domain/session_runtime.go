package domain

import "time"

// SessionRuntime is the part of a session that outlives one CLI invocation.
type SessionRuntime struct {
	ActiveConversationID ConversationID
	LastError            string
	UpdatedAt            time.Time
}
