package domain

// Secret keys for the credentials written by the sign-in flow.
const (
	AccessTokenKey  = "askai://access_token"
	RefreshTokenKey = "askai://refresh_token"
	TokenTypeKey    = "askai://token_type"
)

// SessionSecretKeys lists every key removed on logout.
var SessionSecretKeys = []string{AccessTokenKey, RefreshTokenKey, TokenTypeKey}
