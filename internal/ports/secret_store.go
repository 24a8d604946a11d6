package ports

import "context"

// SecretStore holds credentials under "scheme://name" keys. Get wraps
// domain.ErrSecretNotFound when the key is absent; Delete of a missing key
// succeeds.
type SecretStore interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
}
