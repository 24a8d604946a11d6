package chatapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/bnema/askai-cli/internal/domain"
	"github.com/bnema/askai-cli/internal/ports"
)

const (
	maxResponseBytes      = 1 << 20
	DefaultSendPath       = "messages"
	DefaultRequestTimeout = 60 * time.Second
	requestIDHeader       = "X-Request-ID"
)

var _ ports.ChatAPI = Client{}

// Client talks to the chat backend over its REST surface.
type Client struct {
	BaseURL        string
	SendPath       string
	Credentials    ports.CredentialSource
	HTTPClient     *http.Client
	RequestTimeout time.Duration
	Logger         zerolog.Logger
}

func (c Client) ListConversations(ctx context.Context) ([]domain.Conversation, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, nil, &raw, "chats/"); err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("list conversations: %w", domain.ErrMalformedPayload)
	}

	var payload []conversationPayload
	if err := json.Unmarshal(trimmed, &payload); err != nil {
		return nil, fmt.Errorf("decode conversations: %w: %w", domain.ErrMalformedPayload, err)
	}

	conversations := make([]domain.Conversation, 0, len(payload))
	for _, item := range payload {
		conversation, err := item.toDomain()
		if err != nil {
			return nil, fmt.Errorf("decode conversations: %w", err)
		}
		conversations = append(conversations, conversation)
	}

	return conversations, nil
}

func (c Client) CreateConversation(ctx context.Context, title string) (domain.Conversation, error) {
	var payload conversationPayload
	if err := c.do(ctx, http.MethodPost, createRequest{Title: title}, &payload, "chats/"); err != nil {
		return domain.Conversation{}, fmt.Errorf("create conversation: %w", err)
	}

	conversation, err := payload.toDomain()
	if err != nil {
		return domain.Conversation{}, fmt.Errorf("decode created conversation: %w", err)
	}

	return conversation, nil
}

func (c Client) DeleteConversation(ctx context.Context, id domain.ConversationID) error {
	if err := c.do(ctx, http.MethodDelete, nil, nil, "chats", url.PathEscape(string(id))); err != nil {
		return fmt.Errorf("delete conversation %s: %w", id, err)
	}

	return nil
}

func (c Client) SendMessage(ctx context.Context, id domain.ConversationID, content string) (domain.Message, error) {
	body := messagePayload{Role: string(domain.RoleUser), Content: content}

	var reply messagePayload
	if err := c.do(ctx, http.MethodPost, body, &reply, "chats", url.PathEscape(string(id)), c.sendPath()); err != nil {
		return domain.Message{}, fmt.Errorf("send message to %s: %w", id, err)
	}

	return domain.Message{Role: domain.RoleAssistant, Content: reply.Content}, nil
}

// do sends one authenticated request. A nil out discards the body.
func (c Client) do(ctx context.Context, method string, in any, out any, segments ...string) error {
	endpoint, err := buildAPIURL(c.BaseURL, segments...)
	if err != nil {
		return err
	}

	token, err := c.accessToken(ctx)
	if err != nil {
		return err
	}

	var body io.Reader
	if in != nil {
		encoded, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	requestCtx, cancel := c.requestContext(ctx)
	defer cancel()

	req, err := http.NewRequestWithContext(requestCtx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	started := time.Now()
	resp, err := c.httpClient().Do(req)
	if err != nil {
		c.Logger.Debug().Err(err).Str("method", method).Str("url", endpoint).Str("request_id", requestID).Msg("chat backend request failed")
		return fmt.Errorf("%w: %w", domain.ErrUnreachable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.Logger.Debug().
		Str("method", method).
		Str("url", endpoint).
		Str("request_id", requestID).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(started)).
		Msg("chat backend request")

	limited := io.LimitReader(resp.Body, maxResponseBytes)
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &domain.RemoteError{StatusCode: resp.StatusCode, Detail: decodeDetail(limited)}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, limited)
		return nil
	}
	if err := json.NewDecoder(limited).Decode(out); err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return fmt.Errorf("%w: %w", domain.ErrUnreachable, err)
		}
		return fmt.Errorf("decode response: %w: %w", domain.ErrMalformedPayload, err)
	}

	return nil
}

func (c Client) accessToken(ctx context.Context) (string, error) {
	if c.Credentials == nil {
		return "", domain.ErrCredentialMissing
	}

	token, err := c.Credentials.AccessToken(ctx)
	if err != nil {
		return "", fmt.Errorf("resolve access token: %w", err)
	}
	if strings.TrimSpace(token) == "" {
		return "", domain.ErrCredentialMissing
	}

	return strings.TrimSpace(token), nil
}

func (c Client) sendPath() string {
	path := strings.Trim(strings.TrimSpace(c.SendPath), "/")
	if path == "" {
		return DefaultSendPath
	}
	return path
}

func (c Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c Client) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}

	requestTimeout := c.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = DefaultRequestTimeout
	}

	return context.WithTimeout(ctx, requestTimeout)
}

func buildAPIURL(baseURL string, segments ...string) (string, error) {
	if strings.TrimSpace(baseURL) == "" {
		return "", errors.New("api base url is required")
	}

	parsed, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return "", fmt.Errorf("parse api base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", errors.New("api base url must use http or https")
	}
	if parsed.Host == "" {
		return "", errors.New("api base url host is required")
	}

	return parsed.JoinPath(segments...).String(), nil
}
