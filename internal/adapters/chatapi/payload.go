package chatapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/bnema/askai-cli/internal/domain"
)

type createRequest struct {
	Title string `json:"title"`
}

type messagePayload struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type conversationPayload struct {
	ID        flexibleID       `json:"id"`
	Title     string           `json:"title"`
	Messages  []messagePayload `json:"messages"`
	CreatedAt string           `json:"created_at"`
}

func (p conversationPayload) toDomain() (domain.Conversation, error) {
	if p.ID == "" {
		return domain.Conversation{}, fmt.Errorf("conversation without id: %w", domain.ErrMalformedPayload)
	}

	messages := make([]domain.Message, 0, len(p.Messages))
	for _, message := range p.Messages {
		role, err := domain.ParseRole(message.Role)
		if err != nil {
			return domain.Conversation{}, fmt.Errorf("conversation %s: %w: %w", p.ID, domain.ErrMalformedPayload, err)
		}
		messages = append(messages, domain.Message{Role: role, Content: message.Content})
	}

	return domain.Conversation{
		ID:        domain.ConversationID(p.ID),
		Title:     p.Title,
		Messages:  messages,
		CreatedAt: parseTimestamp(p.CreatedAt),
	}, nil
}

// flexibleID accepts both string and numeric ids.
type flexibleID string

func (id *flexibleID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var value string
		if err := json.Unmarshal(data, &value); err != nil {
			return err
		}
		*id = flexibleID(strings.TrimSpace(value))
		return nil
	}

	var number json.Number
	if err := json.Unmarshal(data, &number); err != nil {
		return fmt.Errorf("conversation id: %w", err)
	}
	*id = flexibleID(number.String())

	return nil
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// parseTimestamp reads backend timestamps. Values without a zone are UTC.
func parseTimestamp(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}

	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed
		}
	}

	return time.Time{}
}

type errorResponse struct {
	Detail json.RawMessage `json:"detail"`
}

type validationIssue struct {
	Msg string `json:"msg"`
}

// decodeDetail pulls the human text out of an error body. It understands a
// plain string detail and the list form used for validation errors.
func decodeDetail(body io.Reader) string {
	var payload errorResponse
	if err := json.NewDecoder(body).Decode(&payload); err != nil || len(payload.Detail) == 0 {
		return ""
	}

	var text string
	if err := json.Unmarshal(payload.Detail, &text); err == nil {
		return strings.TrimSpace(text)
	}

	var issues []validationIssue
	if err := json.Unmarshal(payload.Detail, &issues); err == nil {
		parts := make([]string, 0, len(issues))
		for _, issue := range issues {
			if msg := strings.TrimSpace(issue.Msg); msg != "" {
				parts = append(parts, msg)
			}
		}
		return strings.Join(parts, "; ")
	}

	return ""
}
