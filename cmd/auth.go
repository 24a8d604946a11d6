package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	envcreds "github.com/bnema/askai-cli/internal/adapters/secrets/env"
	"github.com/bnema/askai-cli/internal/domain"
)

func newAuthCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the access token used to talk to the chat backend",
	}

	tokenCmd := &cobra.Command{
		Use:   "token",
		Short: "Store or inspect the access token",
	}
	tokenCmd.AddCommand(newAuthTokenSetCmd(app), newAuthTokenShowCmd(app))

	cmd.AddCommand(tokenCmd, newAuthLogoutCmd(app))

	return cmd
}

func newAuthTokenSetCmd(app *app) *cobra.Command {
	var value string
	var tokenType string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Store the access token in the secret store",
		RunE: func(cmd *cobra.Command, _ []string) error {
			value = strings.TrimSpace(value)
			if value == "" {
				return errors.New("access token value is empty")
			}

			if err := app.secretStore.Put(cmd.Context(), domain.AccessTokenKey, value); err != nil {
				return fmt.Errorf("store access token: %w", err)
			}
			if tokenType = strings.TrimSpace(tokenType); tokenType != "" {
				if err := app.secretStore.Put(cmd.Context(), domain.TokenTypeKey, tokenType); err != nil {
					return fmt.Errorf("store token type: %w", err)
				}
			}

			_, err := fmt.Fprintln(cmd.OutOrStdout(), "access token stored")
			return err
		},
	}

	cmd.Flags().StringVar(&value, "value", "", "Access token")
	cmd.Flags().StringVar(&tokenType, "type", "bearer", "Token type")
	_ = cmd.MarkFlagRequired("value")

	return cmd
}

func newAuthTokenShowCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the access token in masked form",
		RunE: func(cmd *cobra.Command, _ []string) error {
			token, err := envcreds.NewCredentialSource(app.secretStore).AccessToken(cmd.Context())
			if err != nil {
				if errors.Is(err, domain.ErrCredentialMissing) {
					return fmt.Errorf("no access token: set %s or run `askai auth token set`: %w", envcreds.TokenVariable, err)
				}
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), maskToken(token))
			return err
		},
	}
}

func newAuthLogoutCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove stored tokens",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var errs []error
			for _, key := range domain.SessionSecretKeys {
				if err := app.secretStore.Delete(cmd.Context(), key); err != nil {
					errs = append(errs, fmt.Errorf("remove %s: %w", key, err))
				}
			}
			if err := errors.Join(errs...); err != nil {
				return err
			}

			_, err := fmt.Fprintln(cmd.OutOrStdout(), "signed out")
			return err
		},
	}
}

func maskToken(token string) string {
	if len(token) <= 8 {
		return strings.Repeat("*", len(token))
	}

	return token[:4] + strings.Repeat("*", len(token)-8) + token[len(token)-4:]
}
