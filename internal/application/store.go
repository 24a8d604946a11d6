package application

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/bnema/askai-cli/internal/domain"
	"github.com/bnema/askai-cli/internal/ports"
)

// Store owns the ordered conversation collection and the active pointer.
// Conversations are kept newest first.
type Store struct {
	api   ports.ChatAPI
	clock ports.Clock

	mu            sync.Mutex
	conversations []domain.Conversation
	activeID      domain.ConversationID
}

func NewStore(api ports.ChatAPI, clock ports.Clock) *Store {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &Store{api: api, clock: clock}
}

// Load replaces the collection. A nil slice or an entry without an id leaves
// the current state as it was and reports false.
func (s *Store) Load(conversations []domain.Conversation) bool {
	if conversations == nil {
		return false
	}

	loaded := make([]domain.Conversation, 0, len(conversations))
	for _, conversation := range conversations {
		if err := conversation.Validate(); err != nil {
			return false
		}
		loaded = append(loaded, conversation.Clone())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.conversations = loaded
	if s.indexLocked(s.activeID) < 0 {
		s.activeID = ""
	}

	return true
}

func (s *Store) Create(ctx context.Context, title string) (domain.Conversation, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		title = domain.DefaultConversationTitle
	}

	created, err := s.api.CreateConversation(ctx, title)
	if err != nil {
		return domain.Conversation{}, fmt.Errorf("create conversation: %w", err)
	}
	if err := created.Validate(); err != nil {
		return domain.Conversation{}, fmt.Errorf("create conversation: %w", domain.ErrMalformedPayload)
	}
	if created.Title == "" {
		created.Title = title
	}
	if created.CreatedAt.IsZero() {
		created.CreatedAt = s.clock.Now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if idx := s.indexLocked(created.ID); idx >= 0 {
		s.conversations = append(s.conversations[:idx], s.conversations[idx+1:]...)
	}
	s.conversations = append([]domain.Conversation{created.Clone()}, s.conversations...)
	s.activeID = created.ID

	return created.Clone(), nil
}

// Select makes id active when it is known. Unknown ids are ignored.
func (s *Store) Select(id domain.ConversationID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexLocked(id) < 0 {
		return false
	}
	s.activeID = id

	return true
}

func (s *Store) Remove(ctx context.Context, id domain.ConversationID) error {
	if _, ok := s.Get(id); !ok {
		return domain.ErrConversationNotFound
	}

	if err := s.api.DeleteConversation(ctx, id); err != nil {
		return fmt.Errorf("delete conversation: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return nil
	}
	s.conversations = append(s.conversations[:idx], s.conversations[idx+1:]...)
	if s.activeID == id {
		s.activeID = ""
	}

	return nil
}

// AppendMessage reports false when the conversation is gone.
func (s *Store) AppendMessage(id domain.ConversationID, message domain.Message) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return false
	}
	s.conversations[idx].Messages = append(s.conversations[idx].Messages, message)

	return true
}

func (s *Store) Active() (domain.Conversation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(s.activeID)
	if idx < 0 {
		return domain.Conversation{}, false
	}

	return s.conversations[idx].Clone(), true
}

func (s *Store) ActiveID() domain.ConversationID {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.activeID
}

func (s *Store) Get(id domain.ConversationID) (domain.Conversation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return domain.Conversation{}, false
	}

	return s.conversations[idx].Clone(), true
}

// Newest returns the head of the collection.
func (s *Store) Newest() (domain.Conversation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.conversations) == 0 {
		return domain.Conversation{}, false
	}

	return s.conversations[0].Clone(), true
}

func (s *Store) Conversations() []domain.Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.cloneLocked()
}

func (s *Store) cloneLocked() []domain.Conversation {
	out := make([]domain.Conversation, 0, len(s.conversations))
	for _, conversation := range s.conversations {
		out = append(out, conversation.Clone())
	}

	return out
}

func (s *Store) indexLocked(id domain.ConversationID) int {
	if id == "" {
		return -1
	}
	for i, conversation := range s.conversations {
		if conversation.ID == id {
			return i
		}
	}

	return -1
}

func (s *Store) snapshot() ([]domain.Conversation, domain.ConversationID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.cloneLocked(), s.activeID
}
