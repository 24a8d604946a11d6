package ports

import (
	"context"

	"github.com/bnema/askai-cli/internal/domain"
)

type SessionRepository interface {
	Load(ctx context.Context) (domain.SessionRuntime, error)
	Save(ctx context.Context, runtime domain.SessionRuntime) error
}
