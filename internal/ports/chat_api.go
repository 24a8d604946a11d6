package ports

import (
	"context"

	"github.com/bnema/askai-cli/internal/domain"
)

// ChatAPI is the remote conversation backend.
type ChatAPI interface {
	ListConversations(ctx context.Context) ([]domain.Conversation, error)
	CreateConversation(ctx context.Context, title string) (domain.Conversation, error)
	DeleteConversation(ctx context.Context, id domain.ConversationID) error
	// SendMessage posts a user message and returns the assistant reply.
	SendMessage(ctx context.Context, id domain.ConversationID, content string) (domain.Message, error)
}
