package ports

import "context"

// CredentialSource yields the bearer token attached to backend requests.
type CredentialSource interface {
	AccessToken(ctx context.Context) (string, error)
}
