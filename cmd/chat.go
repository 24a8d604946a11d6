package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	chatrender "github.com/bnema/askai-cli/internal/adapters/render/chat"
	"github.com/bnema/askai-cli/internal/application"
	"github.com/bnema/askai-cli/internal/domain"
)

func newChatCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Talk to the AI assistant (interactive when run without a subcommand)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runChatREPL(cmd.Context(), app, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.AddCommand(
		newChatListCmd(app),
		newChatNewCmd(app),
		newChatSelectCmd(app),
		newChatDeleteCmd(app),
		newChatShowCmd(app),
		newChatSendCmd(app),
	)

	return cmd
}

func newChatListCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List conversations, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.openSession(cmd.Context()); err != nil {
				return err
			}

			state := app.session.State()
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), state)
			}

			return writeConversationList(cmd.OutOrStdout(), app, state)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")

	return cmd
}

func newChatNewCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "new",
		Short: "Start a new conversation and make it active",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.openSession(cmd.Context()); err != nil {
				return err
			}

			created, err := app.session.NewConversation(cmd.Context())
			if err := errors.Join(err, app.saveSession(cmd.Context())); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "started conversation #%s (%s)\n", created.ID, created.Title)
			return err
		},
	}
}

func newChatSelectCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "select <id>",
		Short: "Make a conversation active",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.openSession(cmd.Context()); err != nil {
				return err
			}

			id := domain.ConversationID(strings.TrimSpace(args[0]))
			if err := app.session.SelectConversation(id); err != nil {
				return err
			}
			if err := app.saveSession(cmd.Context()); err != nil {
				return err
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "active conversation #%s\n", id)
			return err
		},
	}
}

func newChatDeleteCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a conversation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.openSession(cmd.Context()); err != nil {
				return err
			}

			id := domain.ConversationID(strings.TrimSpace(args[0]))
			err := app.session.DeleteConversation(cmd.Context(), id)
			if err := errors.Join(err, app.saveSession(cmd.Context())); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "deleted conversation #%s\n", id)
			return err
		},
	}
}

func newChatShowCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show [id]",
		Short: "Show the transcript of the active (or given) conversation",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.openSession(cmd.Context()); err != nil {
				return err
			}

			conversation, found := app.session.Store().Active()
			if len(args) == 1 {
				id := domain.ConversationID(strings.TrimSpace(args[0]))
				conversation, found = app.session.Store().Get(id)
				if !found {
					return fmt.Errorf("show conversation %s: %w", id, domain.ErrConversationNotFound)
				}
			}

			if asJSON {
				if !found {
					return writeJSON(cmd.OutOrStdout(), nil)
				}
				return writeJSON(cmd.OutOrStdout(), conversation)
			}

			return writeTranscript(cmd.OutOrStdout(), conversation, found, app.session.State().LastError)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")

	return cmd
}

func newChatSendCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "send <message...>",
		Short: "Send a message to the active conversation, starting one if needed",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.openSession(cmd.Context()); err != nil {
				return err
			}

			var spinnerOut io.Writer
			if !asJSON {
				spinnerOut = cmd.ErrOrStderr()
			}

			result, err := sendMessage(cmd.Context(), app, spinnerOut, strings.Join(args, " "))
			if err := errors.Join(err, app.saveSession(cmd.Context())); err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), result)
			}

			return writeMessage(cmd.OutOrStdout(), result.Reply)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")

	return cmd
}

// sendMessage runs one send, behind the thinking spinner when spinnerOut is
// set.
func sendMessage(ctx context.Context, app *app, spinnerOut io.Writer, text string) (application.SendResult, error) {
	var result application.SendResult
	send := func(ctx context.Context) error {
		var err error
		result, err = app.session.Send(ctx, text)
		return err
	}

	if spinnerOut == nil || app.spinner == nil {
		err := send(ctx)
		return result, err
	}

	err := app.spinner(ctx, spinnerOut, chatrender.ThinkingLabel, send)
	return result, err
}

func writeJSON(out io.Writer, value any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}

func writeConversationList(out io.Writer, app *app, state domain.SessionState) error {
	rendered, err := chatrender.RenderList(state, chatrender.RenderOptions{Now: app.now()})
	if err != nil {
		return fmt.Errorf("render conversations: %w", err)
	}

	_, err = fmt.Fprintln(out, rendered)
	return err
}

func writeTranscript(out io.Writer, conversation domain.Conversation, found bool, lastError string) error {
	rendered, err := chatrender.RenderTranscript(conversation, found, lastError)
	if err != nil {
		return fmt.Errorf("render transcript: %w", err)
	}

	_, err = fmt.Fprintln(out, rendered)
	return err
}

func writeMessage(out io.Writer, message domain.Message) error {
	rendered, err := chatrender.RenderMessage(message)
	if err != nil {
		return fmt.Errorf("render message: %w", err)
	}

	_, err = fmt.Fprintln(out, rendered)
	return err
}
