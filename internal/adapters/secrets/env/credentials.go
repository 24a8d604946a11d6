package env

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/bnema/askai-cli/internal/domain"
	"github.com/bnema/askai-cli/internal/ports"
)

const TokenVariable = "ASKAI_TOKEN"

// CredentialSource resolves the bearer token from the environment first and
// the secret store second. It never writes.
type CredentialSource struct {
	Store    ports.SecretStore
	Variable string
	Lookup   func(string) (string, bool)
}

var _ ports.CredentialSource = CredentialSource{}

func NewCredentialSource(store ports.SecretStore) CredentialSource {
	return CredentialSource{Store: store, Variable: TokenVariable, Lookup: os.LookupEnv}
}

func (c CredentialSource) AccessToken(ctx context.Context) (string, error) {
	if token, ok := c.fromEnv(); ok {
		return token, nil
	}

	if c.Store == nil {
		return "", domain.ErrCredentialMissing
	}

	token, err := c.Store.Get(ctx, domain.AccessTokenKey)
	if err != nil {
		if errors.Is(err, domain.ErrSecretNotFound) {
			return "", domain.ErrCredentialMissing
		}
		return "", fmt.Errorf("read access token: %w", err)
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", domain.ErrCredentialMissing
	}

	return token, nil
}

func (c CredentialSource) fromEnv() (string, bool) {
	lookup := c.Lookup
	if lookup == nil {
		lookup = os.LookupEnv
	}
	variable := c.Variable
	if variable == "" {
		variable = TokenVariable
	}

	value, ok := lookup(variable)
	value = strings.TrimSpace(value)

	return value, ok && value != ""
}
