// Package secrets holds helpers shared by the secret store backends.
package secrets

import (
	"errors"
	"fmt"
	"path"
	"strings"
)

var ErrEmptyKey = errors.New("secret key is empty")

// EntryName turns a key such as "askai://access_token" into the relative
// entry "askai/access_token". Keys without a scheme are cleaned as paths.
func EntryName(key string) (string, error) {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return "", ErrEmptyKey
	}

	if scheme, rest, ok := strings.Cut(trimmed, "://"); ok {
		if scheme == "" || rest == "" {
			return "", fmt.Errorf("invalid secret key %q", key)
		}
		trimmed = scheme + "/" + rest
	}

	cleaned := path.Clean(trimmed)
	if path.IsAbs(cleaned) || cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", fmt.Errorf("invalid secret key %q", key)
	}

	return cleaned, nil
}
