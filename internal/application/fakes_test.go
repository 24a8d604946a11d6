package application

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/bnema/askai-cli/internal/domain"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

// inMemoryChatAPI plays the backend. Hooks run before the default behaviour
// and may replace it by returning a non-nil error.
type inMemoryChatAPI struct {
	mu            sync.Mutex
	conversations []domain.Conversation
	nextID        int
	reply         string

	createErr error
	deleteErr error
	sendErr   error
	listErr   error

	onSend func(id domain.ConversationID, content string)

	createCalls []string
	sendCalls   []string
	deleteCalls []domain.ConversationID
}

func (f *inMemoryChatAPI) ListConversations(context.Context) ([]domain.Conversation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.listErr != nil {
		return nil, f.listErr
	}

	out := make([]domain.Conversation, 0, len(f.conversations))
	for _, conversation := range f.conversations {
		out = append(out, conversation.Clone())
	}

	return out, nil
}

func (f *inMemoryChatAPI) CreateConversation(_ context.Context, title string) (domain.Conversation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.createCalls = append(f.createCalls, title)
	if f.createErr != nil {
		return domain.Conversation{}, f.createErr
	}

	f.nextID++
	created := domain.Conversation{ID: domain.ConversationID(fmt.Sprintf("%d", f.nextID)), Title: title}
	f.conversations = append([]domain.Conversation{created}, f.conversations...)

	return created, nil
}

func (f *inMemoryChatAPI) DeleteConversation(_ context.Context, id domain.ConversationID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.deleteCalls = append(f.deleteCalls, id)
	if f.deleteErr != nil {
		return f.deleteErr
	}

	return nil
}

func (f *inMemoryChatAPI) SendMessage(_ context.Context, id domain.ConversationID, content string) (domain.Message, error) {
	f.mu.Lock()
	f.sendCalls = append(f.sendCalls, content)
	hook := f.onSend
	sendErr := f.sendErr
	reply := f.reply
	f.mu.Unlock()

	if hook != nil {
		hook(id, content)
	}
	if sendErr != nil {
		return domain.Message{}, sendErr
	}
	if reply == "" {
		reply = "echo: " + content
	}

	return domain.Message{Role: domain.RoleAssistant, Content: reply}, nil
}

func (f *inMemoryChatAPI) createCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.createCalls)
}

func (f *inMemoryChatAPI) sendCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.sendCalls)
}

func unreachable() error {
	return fmt.Errorf("post chats: %w", domain.ErrUnreachable)
}

func mockAnyContext() interface{} {
	return mock.Anything
}
