package domain

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyMessage         = errors.New("message is empty")
	ErrSendInFlight         = errors.New("a message is already being sent")
	ErrConversationNotFound = errors.New("conversation not found")
	ErrCredentialMissing    = errors.New("access token not found")
	ErrSecretNotFound       = errors.New("secret not found")
	ErrMalformedPayload     = errors.New("malformed response payload")
	ErrUnreachable          = errors.New("chat backend unreachable")
	ErrSingleThreadMode     = errors.New("single-thread mode keeps one conversation")
)

// RemoteError is a non-2xx answer from the chat backend.
type RemoteError struct {
	StatusCode int
	Detail     string
}

func (e *RemoteError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("chat backend status %d", e.StatusCode)
	}

	return fmt.Sprintf("chat backend status %d: %s", e.StatusCode, e.Detail)
}
