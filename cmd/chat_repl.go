package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	chatrender "github.com/bnema/askai-cli/internal/adapters/render/chat"
	"github.com/bnema/askai-cli/internal/application"
	"github.com/bnema/askai-cli/internal/domain"
)

const replHelp = `Type a message and press enter to send it.
  /new            start a new conversation
  /list           list conversations
  /select <id>    switch to a conversation
  /delete <id>    delete a conversation
  /show           show the active transcript
  /help           show this help
  /quit           leave`

// repl is one interactive chat on a line-oriented input.
type repl struct {
	app *app
	out io.Writer
	err io.Writer

	// retry holds a message that never reached the transcript. An empty
	// line sends it again.
	retry string
}

func runChatREPL(ctx context.Context, app *app, in io.Reader, out io.Writer, errOut io.Writer) error {
	defer app.session.Close()

	r := &repl{app: app, out: out, err: errOut}
	if err := app.openSession(ctx); err != nil {
		r.warn(err)
	}
	r.show()

	scanner := bufio.NewScanner(in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		r.prompt()
		if !scanner.Scan() {
			_, _ = fmt.Fprintln(r.out)
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			if r.retry == "" {
				continue
			}
			line = r.retry
		}

		if strings.HasPrefix(line, "/") {
			if quit := r.command(ctx, line); quit {
				return nil
			}
			continue
		}

		r.send(ctx, line)
	}
}

func (r *repl) prompt() {
	if r.retry != "" {
		_, _ = fmt.Fprintf(r.out, "[enter to resend %q] > ", r.retry)
		return
	}
	_, _ = fmt.Fprint(r.out, "> ")
}

func (r *repl) command(ctx context.Context, line string) bool {
	name, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch name {
	case "/quit", "/exit":
		return true
	case "/help":
		_, _ = fmt.Fprintln(r.out, replHelp)
	case "/list":
		if err := writeConversationList(r.out, r.app, r.app.session.State()); err != nil {
			r.warn(err)
		}
	case "/show":
		r.show()
	case "/new":
		created, err := r.app.session.NewConversation(ctx)
		r.save(ctx)
		if err != nil {
			r.fail(err)
			return false
		}
		r.retry = ""
		_, _ = fmt.Fprintf(r.out, "started conversation #%s (%s)\n", created.ID, created.Title)
	case "/select":
		if arg == "" {
			_, _ = fmt.Fprintln(r.err, "usage: /select <id>")
			return false
		}
		if err := r.app.session.SelectConversation(domain.ConversationID(arg)); err != nil {
			r.fail(err)
			return false
		}
		r.save(ctx)
		r.show()
	case "/delete":
		if arg == "" {
			_, _ = fmt.Fprintln(r.err, "usage: /delete <id>")
			return false
		}
		err := r.app.session.DeleteConversation(ctx, domain.ConversationID(arg))
		r.save(ctx)
		if err != nil {
			r.fail(err)
			return false
		}
		_, _ = fmt.Fprintf(r.out, "deleted conversation #%s\n", arg)
	default:
		_, _ = fmt.Fprintf(r.err, "unknown command %s (try /help)\n", name)
	}

	return false
}

func (r *repl) send(ctx context.Context, text string) {
	result, err := sendMessage(ctx, r.app, r.err, text)
	r.save(ctx)

	r.retry = ""
	if err != nil {
		if result.RestoreInput {
			r.retry = text
		}
		r.fail(err)
		return
	}

	if err := writeMessage(r.out, result.Reply); err != nil {
		r.warn(err)
	}
}

func (r *repl) show() {
	conversation, found := r.app.session.Store().Active()
	if err := writeTranscript(r.out, conversation, found, r.app.session.State().LastError); err != nil {
		r.warn(err)
	}
}

func (r *repl) save(ctx context.Context) {
	if err := r.app.saveSession(ctx); err != nil {
		r.warn(err)
	}
}

// fail prints the banner text for operation errors and the raw error
// otherwise.
func (r *repl) fail(err error) {
	var opErr *application.OperationError
	if errors.As(err, &opErr) {
		banner, renderErr := chatrender.RenderBanner(opErr.Message)
		if renderErr == nil {
			_, _ = fmt.Fprintln(r.out, banner)
			r.app.logger.Debug().Err(opErr.Err).Str("kind", string(opErr.Kind)).Msg("chat operation failed")
			return
		}
	}

	r.warn(err)
}

func (r *repl) warn(err error) {
	_, _ = fmt.Fprintf(r.err, "error: %v\n", err)
}
