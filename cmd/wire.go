package cmd

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/bnema/askai-cli/internal/adapters/chatapi"
	chatrender "github.com/bnema/askai-cli/internal/adapters/render/chat"
	tomlrepo "github.com/bnema/askai-cli/internal/adapters/repo/toml"
	chainstore "github.com/bnema/askai-cli/internal/adapters/secrets/chain"
	envcreds "github.com/bnema/askai-cli/internal/adapters/secrets/env"
	"github.com/bnema/askai-cli/internal/application"
	"github.com/bnema/askai-cli/internal/config"
	"github.com/bnema/askai-cli/internal/logging"
	"github.com/bnema/askai-cli/internal/ports"
)

const configFileEnv = "ASKAI_CONFIG"

type app struct {
	config      config.Config
	session     *application.Session
	sessionRepo ports.SessionRepository
	secretStore ports.SecretStore
	logger      zerolog.Logger
	spinner     func(context.Context, io.Writer, string, func(context.Context) error) error
	now         func() time.Time
}

func wireApp() (*app, error) {
	cfg, v, err := config.Load(os.Getenv(configFileEnv))
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format, Writer: os.Stderr})
	if err != nil {
		return nil, fmt.Errorf("wire logger: %w", err)
	}

	repo, err := tomlrepo.NewSessionRepository(v)
	if err != nil {
		return nil, fmt.Errorf("wire session repository: %w", err)
	}

	secretsDir, err := cfg.SecretsDir()
	if err != nil {
		return nil, err
	}
	secretStore, err := chainstore.NewPassFirstWithFileFallback(secretsDir, chainstore.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("wire secret store chain: %w", err)
	}

	client := chatapi.Client{
		BaseURL:        cfg.API.BaseURL,
		SendPath:       cfg.API.SendPath,
		Credentials:    envcreds.NewCredentialSource(secretStore),
		HTTPClient:     http.DefaultClient,
		RequestTimeout: cfg.API.Timeout,
		Logger:         logger,
	}

	session := application.NewSession(
		client,
		ports.SystemClock{},
		application.WithLogger(logger),
		application.WithSingleThread(cfg.Chat.SingleThread),
	)

	return &app{
		config:      cfg,
		session:     session,
		sessionRepo: repo,
		secretStore: secretStore,
		logger:      logger,
		spinner:     chatrender.RunWithSpinner,
		now:         time.Now,
	}, nil
}

// openSession hydrates the conversation list and reapplies the active
// pointer saved by the previous invocation.
func (a *app) openSession(ctx context.Context) error {
	if err := a.session.Refresh(ctx); err != nil {
		return err
	}

	runtime, err := a.sessionRepo.Load(ctx)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	a.session.Restore(runtime)

	return nil
}

func (a *app) saveSession(ctx context.Context) error {
	runtime := a.session.Runtime()
	runtime.UpdatedAt = a.now()

	if err := a.sessionRepo.Save(ctx, runtime); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	return nil
}
