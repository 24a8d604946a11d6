package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/bnema/askai-cli/internal/domain"
	"github.com/bnema/askai-cli/internal/ports"
)

var ErrSessionClosed = errors.New("session closed")

const (
	msgCreateRejected     = "Failed to create new chat"
	msgCreateUnreachable  = "Network error"
	msgStartRejected      = "Failed to start conversation"
	msgStartUnreachable   = "Network error starting conversation"
	msgSendRejected       = "The AI is unavailable right now."
	msgSendUnreachable    = "Failed to connect to AI server."
	msgDeleteRejected     = "Failed to delete chat"
	msgDeleteUnreachable  = "Network error deleting chat"
	msgSingleThreadCreate = "This session keeps a single conversation"
)

type OperationKind string

const (
	CreationFailure OperationKind = "creation"
	SendFailure     OperationKind = "send"
	DeletionFailure OperationKind = "deletion"
)

// OperationError carries the banner text shown to the user next to the cause.
type OperationError struct {
	Kind    OperationKind
	Message string
	Err     error
}

func (e *OperationError) Error() string {
	if e.Err == nil {
		return e.Message
	}

	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

type SendResult struct {
	ConversationID domain.ConversationID
	Created        bool
	Reply          domain.Message
	// RestoreInput is set when the message never reached the transcript and
	// should be offered back to the user.
	RestoreInput bool
}

type SessionOption func(*Session)

func WithLogger(logger zerolog.Logger) SessionOption {
	return func(s *Session) {
		s.log = logger
	}
}

// WithSingleThread keeps the session on one implicit conversation.
func WithSingleThread(enabled bool) SessionOption {
	return func(s *Session) {
		s.singleThread = enabled
	}
}

type Session struct {
	api          ports.ChatAPI
	store        *Store
	log          zerolog.Logger
	singleThread bool

	mu        sync.Mutex
	pending   bool
	pendingID domain.ConversationID
	lastError string
	closed    bool
}

func NewSession(api ports.ChatAPI, clock ports.Clock, opts ...SessionOption) *Session {
	s := &Session{
		api:   api,
		store: NewStore(api, clock),
		log:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *Session) Store() *Store {
	return s.store
}

// Refresh hydrates the store from the backend. A malformed listing keeps the
// current conversations.
func (s *Session) Refresh(ctx context.Context) error {
	if s.isClosed() {
		return ErrSessionClosed
	}

	conversations, err := s.api.ListConversations(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrMalformedPayload) {
			s.log.Debug().Err(err).Msg("ignoring malformed conversation list")
			return nil
		}
		s.log.Warn().Err(err).Msg("fetch conversations")
		return fmt.Errorf("refresh conversations: %w", err)
	}

	if s.isClosed() {
		return ErrSessionClosed
	}
	if !s.store.Load(conversations) {
		s.log.Debug().Int("count", len(conversations)).Msg("ignoring conversation list with invalid entries")
		return nil
	}
	s.log.Debug().Int("count", len(conversations)).Msg("conversations loaded")

	return nil
}

// Restore reapplies a persisted active pointer. Stale ids are dropped.
func (s *Session) Restore(runtime domain.SessionRuntime) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if runtime.ActiveConversationID != "" && !s.store.Select(runtime.ActiveConversationID) {
		s.log.Debug().Str("conversation_id", string(runtime.ActiveConversationID)).Msg("dropping stale active conversation")
	}
	s.lastError = runtime.LastError
}

// Runtime is the part of the state persisted between invocations.
func (s *Session) Runtime() domain.SessionRuntime {
	s.mu.Lock()
	defer s.mu.Unlock()

	return domain.SessionRuntime{
		ActiveConversationID: s.store.ActiveID(),
		LastError:            s.lastError,
	}
}

func (s *Session) NewConversation(ctx context.Context) (domain.Conversation, error) {
	if s.singleThread {
		return domain.Conversation{}, &OperationError{Kind: CreationFailure, Message: msgSingleThreadCreate, Err: domain.ErrSingleThreadMode}
	}
	if s.isClosed() {
		return domain.Conversation{}, ErrSessionClosed
	}

	created, err := s.store.Create(ctx, domain.DefaultConversationTitle)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		message := bannerText(err, msgCreateRejected, msgCreateUnreachable, false)
		s.setErrorLocked(message)
		s.log.Warn().Err(err).Msg("create conversation")
		return domain.Conversation{}, &OperationError{Kind: CreationFailure, Message: message, Err: err}
	}
	s.setErrorLocked("")
	s.log.Debug().Str("conversation_id", string(created.ID)).Msg("conversation created")

	return created, nil
}

// SelectConversation counts as an explicit user action and clears the banner.
func (s *Session) SelectConversation(id domain.ConversationID) error {
	if !s.store.Select(id) {
		return fmt.Errorf("select conversation %s: %w", id, domain.ErrConversationNotFound)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.setErrorLocked("")

	return nil
}

func (s *Session) DeleteConversation(ctx context.Context, id domain.ConversationID) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrSessionClosed
	}
	if s.pending && s.pendingID == id {
		s.mu.Unlock()
		return domain.ErrSendInFlight
	}
	s.mu.Unlock()

	err := s.store.Remove(ctx, id)
	if errors.Is(err, domain.ErrConversationNotFound) {
		return fmt.Errorf("delete conversation %s: %w", id, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		message := bannerText(err, msgDeleteRejected, msgDeleteUnreachable, true)
		s.setErrorLocked(message)
		s.log.Warn().Err(err).Str("conversation_id", string(id)).Msg("delete conversation")
		return &OperationError{Kind: DeletionFailure, Message: message, Err: err}
	}
	s.setErrorLocked("")

	return nil
}

// Send runs one message through lazy creation, optimistic append and
// reconciliation. Only one send may be in flight.
func (s *Session) Send(ctx context.Context, text string) (SendResult, error) {
	content := strings.TrimSpace(text)
	if content == "" {
		return SendResult{}, domain.ErrEmptyMessage
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return SendResult{}, ErrSessionClosed
	}
	if s.pending {
		s.mu.Unlock()
		return SendResult{}, domain.ErrSendInFlight
	}
	s.pending = true
	s.pendingID = ""
	s.mu.Unlock()

	id, created, err := s.ensureConversation(ctx, content)
	if err != nil {
		s.mu.Lock()
		defer s.mu.Unlock()

		s.pending = false
		message := bannerText(err, msgStartRejected, msgStartUnreachable, false)
		s.setErrorLocked(message)
		s.log.Warn().Err(err).Msg("start conversation")
		return SendResult{RestoreInput: true}, &OperationError{Kind: CreationFailure, Message: message, Err: err}
	}

	s.mu.Lock()
	s.pendingID = id
	appended := s.store.AppendMessage(id, domain.Message{Role: domain.RoleUser, Content: content})
	s.mu.Unlock()

	result := SendResult{ConversationID: id, Created: created, RestoreInput: !appended}
	if !appended {
		s.finishSend()
		return result, fmt.Errorf("send message to %s: %w", id, domain.ErrConversationNotFound)
	}

	reply, err := s.api.SendMessage(ctx, id, content)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pending = false
	s.pendingID = ""
	if s.closed {
		s.log.Debug().Str("conversation_id", string(id)).Msg("ignoring reply for closed session")
		return result, ErrSessionClosed
	}

	if err != nil {
		message := bannerText(err, msgSendRejected, msgSendUnreachable, true)
		s.lastError = message
		s.log.Warn().Err(err).Str("conversation_id", string(id)).Msg("send message")
		return result, &OperationError{Kind: SendFailure, Message: message, Err: err}
	}

	reply.Role = domain.RoleAssistant
	result.Reply = reply
	if !s.store.AppendMessage(id, reply) {
		s.log.Debug().Str("conversation_id", string(id)).Msg("ignoring reply for removed conversation")
	}
	s.lastError = ""

	return result, nil
}

// Close abandons the session. Replies that arrive afterwards are dropped.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
}

func (s *Session) State() domain.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()

	conversations, activeID := s.store.snapshot()

	return domain.SessionState{
		Conversations:        conversations,
		ActiveConversationID: activeID,
		Pending:              s.pending,
		LastError:            s.lastError,
	}
}

func (s *Session) ensureConversation(ctx context.Context, content string) (domain.ConversationID, bool, error) {
	if id := s.store.ActiveID(); id != "" {
		return id, false, nil
	}

	if s.singleThread {
		if newest, ok := s.store.Newest(); ok {
			s.store.Select(newest.ID)
			return newest.ID, false, nil
		}
	}

	created, err := s.store.Create(ctx, domain.TitleFromMessage(content))
	if err != nil {
		return "", false, err
	}

	return created.ID, true, nil
}

func (s *Session) finishSend() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pending = false
	s.pendingID = ""
}

func (s *Session) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.closed
}

func (s *Session) setErrorLocked(message string) {
	if s.closed {
		return
	}
	s.lastError = message
}

// bannerText picks the user-facing text for a failed call. Remote detail is
// preferred only where the backend is known to phrase it for people.
func bannerText(err error, rejected, unreachable string, preferDetail bool) string {
	if errors.Is(err, domain.ErrUnreachable) {
		return unreachable
	}

	var remote *domain.RemoteError
	if preferDetail && errors.As(err, &remote) && strings.TrimSpace(remote.Detail) != "" {
		return strings.TrimSpace(remote.Detail)
	}

	return rejected
}
