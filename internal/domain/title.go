package domain

import "strings"

const (
	DefaultConversationTitle = "New Chat"
	maxTitleRunes            = 30
	titleEllipsis            = "..."
)

// TitleFromMessage derives a conversation title from the first message sent in it.
func TitleFromMessage(message string) string {
	trimmed := strings.TrimSpace(message)
	runes := []rune(trimmed)
	if len(runes) <= maxTitleRunes {
		return trimmed
	}

	return string(runes[:maxTitleRunes]) + titleEllipsis
}
