package toml

import "fmt"

const currentSessionSchemaVersion = 1

type sessionFileSchema struct {
	Version              int    `toml:"version"`
	ActiveConversationID string `toml:"active_conversation_id"`
	LastError            string `toml:"last_error"`
	UpdatedAt            string `toml:"updated_at"`
}

func (s *sessionFileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSessionSchemaVersion
	}
}

func (s sessionFileSchema) validateVersion() error {
	if s.Version > currentSessionSchemaVersion {
		return fmt.Errorf("unsupported session schema version %d (current %d)", s.Version, currentSessionSchemaVersion)
	}

	return nil
}
