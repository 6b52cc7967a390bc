package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/scribe/internal/presentation/tui"
	"github.com/aretw0/scribe/pkg/chat"
)

// ChatOptions configures an interactive chat session.
type ChatOptions struct {
	SessionID string
	ArticleID string
	In        io.Reader
	Out       io.Writer
	Render    tui.Renderer
	Quiet     bool // suppress system messages
}

// Responder is the chat entry point (implemented by *chat.Router).
type Responder interface {
	Respond(ctx context.Context, sessionID, message string, opts ...chat.RespondOption) (chat.Reply, error)
}

// RunChat reads one message per line and prints the rendered replies until
// the input ends, the user types exit/quit, or ctx is cancelled.
func RunChat(ctx context.Context, router Responder, opts ChatOptions) error {
	if opts.Render == nil {
		opts.Render = tui.Plain
	}
	if opts.SessionID == "" {
		return chat.ErrEmptySessionID
	}

	if !opts.Quiet {
		printSystemMessage(opts.Out, "Session '%s' active. Type 'exit' to quit.", opts.SessionID)
	}

	scanner := bufio.NewScanner(NewInterruptibleReader(opts.In, ctx.Done()))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for {
		fmt.Fprint(opts.Out, "> ")
		if !scanner.Scan() {
			err := scanner.Err()
			if err == nil || isInterrupted(err) {
				fmt.Fprintln(opts.Out)
				return nil
			}
			return fmt.Errorf("input error: %w", err)
		}

		line := strings.TrimSpace(scanner.Text())
		switch strings.ToLower(line) {
		case "":
			continue
		case "exit", "quit":
			if !opts.Quiet {
				printSystemMessage(opts.Out, "Bye!")
			}
			return nil
		}

		message, err := chat.SanitizeInput(line)
		if err != nil {
			printSystemMessage(opts.Out, "Message rejected: %v", err)
			continue
		}

		reply, err := router.Respond(ctx, opts.SessionID, message, chat.WithArticle(opts.ArticleID))
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			printSystemMessage(opts.Out, "Error: %v", err)
			continue
		}

		rendered, err := opts.Render(reply.Text)
		if err != nil {
			rendered = reply.Text + "\n"
		}
		fmt.Fprint(opts.Out, rendered)

		if reply.Closed && !opts.Quiet {
			printSystemMessage(opts.Out, "Article complete. Session '%s' closed.", opts.SessionID)
		}
	}
}
