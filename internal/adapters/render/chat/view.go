package chat

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/askai-cli/internal/domain"
)

type RenderOptions struct {
	Now time.Time
}

func renderList(state domain.SessionState, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Conversations"),
		s.header.Render(fmt.Sprintf("conversations: %d", len(state.Conversations))),
	}
	if banner := renderBanner(state.LastError, s); banner != "" {
		lines = append(lines, banner)
	}

	if len(state.Conversations) == 0 {
		lines = append(lines, s.empty.Render("No conversations yet"))
		lines = append(lines, s.hint.Render("Send a message to start one."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, conversation := range state.Conversations {
		lines = append(lines, renderListEntry(conversation, conversation.ID == state.ActiveConversationID, opts, s))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderListEntry(conversation domain.Conversation, active bool, opts RenderOptions, s styles) string {
	marker := "  "
	titleStyle := s.inactive
	if active {
		marker = "* "
		titleStyle = s.active
	}

	head := lipgloss.JoinHorizontal(
		lipgloss.Top,
		titleStyle.Render(marker+displayTitle(conversation.Title)),
		" ",
		s.id.Render("#"+string(conversation.ID)),
	)

	meta := []string{messageCount(len(conversation.Messages))}
	if label := domain.RelativeTime(conversation.CreatedAt, opts.Now); label != "" {
		meta = append(meta, label)
	}

	return lipgloss.JoinVertical(lipgloss.Left, head, s.detail.Render("  "+strings.Join(meta, " · ")))
}

func renderTranscript(conversation domain.Conversation, found bool, lastError string, s styles) string {
	lines := make([]string, 0, len(conversation.Messages)+3)
	if found {
		lines = append(lines, lipgloss.JoinHorizontal(
			lipgloss.Top,
			s.title.Render(displayTitle(conversation.Title)),
			" ",
			s.id.Render("#"+string(conversation.ID)),
		))
	} else {
		lines = append(lines, s.title.Render("AI Assistant"))
	}
	if banner := renderBanner(lastError, s); banner != "" {
		lines = append(lines, banner)
	}

	if len(conversation.Messages) == 0 {
		lines = append(lines, s.section.Render(s.empty.Render("Start a conversation")))
		lines = append(lines, s.hint.Render("Ask me anything, I'm here to help!"))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, message := range conversation.Messages {
		lines = append(lines, s.section.Render(renderMessage(message, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderMessage(message domain.Message, s styles) string {
	labelStyle := s.assistant
	if message.Role == domain.RoleUser {
		labelStyle = s.user
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		labelStyle.Render(message.Role.Label()),
		s.body.Render(message.Content),
	)
}

func renderBanner(lastError string, s styles) string {
	lastError = strings.TrimSpace(lastError)
	if lastError == "" {
		return ""
	}

	return s.banner.Render("! " + lastError)
}

func displayTitle(title string) string {
	if strings.TrimSpace(title) == "" {
		return domain.DefaultConversationTitle
	}
	return title
}

func messageCount(n int) string {
	if n == 1 {
		return "1 message"
	}
	return fmt.Sprintf("%d messages", n)
}
