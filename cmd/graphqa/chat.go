package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/zero-day-ai/graphqa/cmd/graphqa/internal"
)

// answerer is the part of the pipeline the chat loop needs.
type answerer interface {
	Answer(ctx context.Context, query string) (string, error)
}

func newChatCmd(env *environment) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Ask questions interactively",
		Long: `Read questions from standard input, one per line, and print an answer
after each. Type exit or quit to leave. Questions are independent: no
conversation history is kept.

A failed question is reported and the loop continues; interrupting the
process ends it.`,
		Args: cobra.NoArgs,
		RunE: env.runChat,
	}
}

func (e *environment) runChat(cmd *cobra.Command, args []string) error {
	a, err := e.buildApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	interactive := isTerminal(e.stdin)
	theme := internal.PlainTheme()
	if interactive {
		theme = internal.DefaultTheme()
	}

	loop := &chatLoop{
		answerer:    a.pipeline,
		in:          e.stdin,
		out:         cmd.OutOrStdout(),
		errOut:      cmd.ErrOrStderr(),
		theme:       theme,
		interactive: interactive,
		timeout:     e.cfg.Query.Timeout,
		verbose:     e.flags.Verbose,
	}
	return loop.run(cmd.Context())
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// isExitCommand reports whether line ends the chat.
func isExitCommand(line string) bool {
	switch strings.ToLower(line) {
	case "exit", "quit":
		return true
	}
	return false
}

type chatLoop struct {
	answerer    answerer
	in          io.Reader
	out         io.Writer
	errOut      io.Writer
	theme       *internal.Theme
	interactive bool
	timeout     time.Duration
	verbose     bool
}

func (l *chatLoop) run(ctx context.Context) error {
	if l.interactive {
		fmt.Fprintln(l.out, l.theme.Muted.Render("Ask a question about the knowledge graph. Type exit or quit to leave."))
	}

	// ReadString has no line length limit, so long pasted questions are
	// answered like any other.
	reader := bufio.NewReader(l.in)
	for {
		if l.interactive {
			fmt.Fprint(l.out, l.theme.Prompt.Render("> "))
		}
		raw, readErr := reader.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return internal.WrapError(internal.ExitError, "Failed to read input", readErr)
		}

		if line := strings.TrimSpace(raw); line != "" {
			if isExitCommand(line) {
				return nil
			}
			answer, err := l.ask(ctx, line)
			switch {
			case err != nil && ctx.Err() != nil:
				return ctx.Err()
			case err != nil:
				l.report(err)
			default:
				fmt.Fprintln(l.out, l.theme.Answer.Render(answer))
			}
		}

		if readErr != nil {
			return nil
		}
	}
}

func (l *chatLoop) ask(ctx context.Context, q string) (string, error) {
	ctx, cancel := withQueryTimeout(ctx, l.timeout)
	defer cancel()
	return l.answerer.Answer(ctx, q)
}

func (l *chatLoop) report(err error) {
	_, message := internal.Classify(err)
	fmt.Fprintln(l.errOut, l.theme.Error.Render("Error: "+message))
	if l.verbose {
		fmt.Fprintln(l.errOut, l.theme.Muted.Render("Cause: "+err.Error()))
	}
}
