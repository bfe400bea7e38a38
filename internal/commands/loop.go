package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-shellwords"

	"github.com/MKhiriev/keeper-commander/internal/logger"
	"github.com/MKhiriev/keeper-commander/internal/session"
)

// notLoggedInPrompt is shown while the session has no token.
const notLoggedInPrompt = "Not logged in"

// Loop executes commands against a session: first everything queued in
// Store.Commands, then lines read from its input until EOF or quit.
type Loop struct {
	registry *Registry
	in       *bufio.Reader
	out      io.Writer
}

func NewLoop(registry *Registry, in io.Reader, out io.Writer) *Loop {
	return &Loop{
		registry: registry,
		in:       bufio.NewReader(in),
		out:      out,
	}
}

// Loop implements client.CommandLoop. It returns 1 if any command failed and
// 0 otherwise. In batch mode no prompt is written.
func (l *Loop) Loop(ctx context.Context, st *session.Store) int {
	log := logger.FromContext(ctx)
	code := 0

	for ctx.Err() == nil {
		line, ok := l.next(st)
		if !ok {
			break
		}

		err := l.Execute(ctx, st, line)
		if errors.Is(err, ErrQuit) {
			break
		}
		if err != nil {
			code = 1
			fmt.Fprintf(l.out, "Error: %v\n", err)
			log.Debug().Err(err).Str("line", line).Msg("command failed")
		}
	}

	return code
}

// next pops the queue, falling back to the input.
func (l *Loop) next(st *session.Store) (string, bool) {
	if len(st.Commands) > 0 {
		line := st.Commands[0]
		st.Commands = st.Commands[1:]
		return line, true
	}

	if !st.BatchMode {
		fmt.Fprint(l.out, prompt(st)+"> ")
	}

	line, err := l.in.ReadString('\n')
	if err != nil && line == "" {
		if !st.BatchMode {
			fmt.Fprintln(l.out)
		}
		return "", false
	}

	return strings.TrimSpace(line), true
}

// Execute runs a single command line. Empty lines and lines starting with
// '#' are ignored.
func (l *Loop) Execute(ctx context.Context, st *session.Store, line string) error {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}

	args, err := shellwords.Parse(line)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrParse, err)
	}
	if len(args) == 0 {
		return nil
	}

	cmd, ok := l.registry.Lookup(args[0])
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, args[0])
	}

	logger.FromContext(ctx).Debug().Str("command", cmd.Name).Strs("args", args[1:]).Msg("executing command")

	return cmd.Run(ctx, &Invocation{
		Store: st,
		Args:  args[1:],
		Out:   l.out,
	})
}

func prompt(st *session.Store) string {
	if !st.IsAuthenticated() {
		return notLoggedInPrompt
	}
	if st.CurrentFolder != nil && st.CurrentFolder.Name != "" {
		return st.CurrentFolder.Name
	}
	return "My Vault"
}
