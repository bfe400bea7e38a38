package client

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/samber/oops"

	"github.com/MKhiriev/keeper-commander/internal/config"
	"github.com/MKhiriev/keeper-commander/internal/endpoint"
	"github.com/MKhiriev/keeper-commander/internal/logger"
	"github.com/MKhiriev/keeper-commander/internal/session"
	"github.com/MKhiriev/keeper-commander/models"
)

// Process exit codes returned by Run.
const (
	ExitOK    = 0
	ExitUsage = 1
	ExitCrash = -1
)

const (
	commandShell = "shell"
	commandStdin = "-"
	commandHelp  = "?"
	commandQuit  = "q"
)

// DefaultName is the program name shown in usage output.
const DefaultName = "keeper"

// Options configure an App. Zero values select the process streams and a
// console logger.
type Options struct {
	Name      string
	Packaged  bool
	BuildInfo models.AppBuildInfo

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	Log *logger.Logger
}

// App turns a command line, the environment and the persisted configuration
// into a session and hands it to the command loop.
type App struct {
	loop     CommandLoop
	registry CommandRegistry
	runner   ScheduledRunner

	opts Options
	log  *logger.Logger
}

func NewApp(loop CommandLoop, registry CommandRegistry, runner ScheduledRunner, opts Options) *App {
	if opts.Name == "" {
		opts.Name = DefaultName
	}
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if opts.Log == nil {
		opts.Log = logger.NewClientLogger("client")
	}

	return &App{
		loop:     loop,
		registry: registry,
		runner:   runner,
		opts:     opts,
		log:      opts.Log,
	}
}

// Run executes one invocation. args excludes the program name; environ is
// the environment to read KEEPER_* variables from, nil meaning the process
// environment. The returned value is the process exit code.
func (a *App) Run(ctx context.Context, args []string, environ map[string]string) int {
	log := a.log.WithRunID(newRunID())

	inv, err := parseArgs(a.opts.Name, args)
	if err != nil {
		fmt.Fprintln(a.opts.Stdout, err)
		a.usage()
		return ExitUsage
	}

	st, err := a.prepare(inv, environ, log)
	if err != nil {
		if a.opts.Packaged {
			return a.crash(err)
		}
		log.Error().Err(err).Msg("failed to start session")
		return ExitUsage
	}

	if inv.version {
		fmt.Fprintln(a.opts.Stdout, a.opts.BuildInfo)
		return ExitOK
	}

	level := logger.Configure(st.Debug, st.BatchMode)
	log.Debug().
		Str("level", level.String()).
		Str("config", st.ConfigFilename).
		Str("server", st.Server()).
		Msg("session prepared")

	command := inv.command
	if command == "" && a.opts.Packaged {
		command = commandShell
	}

	if inv.help || command == commandHelp || (command == "" && len(st.Commands) == 0) {
		a.usage()
		return ExitUsage
	}

	ctx = log.WithContext(ctx)

	if st.TimeDelay >= 1 && len(st.Commands) > 0 {
		log.Info().Int("timedelay", st.TimeDelay).Msg("running queued commands on schedule")
		return a.runner.Run(ctx, st)
	}

	switch command {
	case commandShell:
	case commandStdin:
		st.BatchMode = true
	default:
		if command != "" {
			st.Commands = append(st.Commands, inv.commandLine())
		}
		st.Commands = append(st.Commands, commandQuit)
		st.BatchMode = true
	}

	return a.loop.Loop(ctx, st)
}

// prepare builds the session and applies the overlay. In packaged mode a
// panic is recovered into an error carrying its stack trace.
func (a *App) prepare(inv *invocation, environ map[string]string, log *logger.Logger) (st *session.Store, err error) {
	build := func() {
		st, err = newSession(inv, environ, log)
	}

	if !a.opts.Packaged {
		build()
		return st, err
	}

	if perr := oops.Recoverf(build, "session bootstrap panicked"); perr != nil {
		return nil, perr
	}
	return st, err
}

func newSession(inv *invocation, environ map[string]string, log *logger.Logger) (*session.Store, error) {
	errs := oops.In("bootstrap")

	e, err := config.ParseEnv(environ, log)
	if err != nil {
		return nil, errs.Wrapf(err, "read environment")
	}

	st, err := session.FromConfig(inv.configPath, e, log)
	if err != nil {
		return nil, errs.With("config", config.ResolvePath(inv.configPath, e)).Wrapf(err, "load configuration")
	}

	ov, err := config.ResolveOverlay(&inv.overlay, e, st.Settings())
	if err != nil {
		return nil, errs.Wrapf(err, "apply command line and environment")
	}
	applyOverlay(st, ov)

	return st, nil
}

func applyOverlay(st *session.Store, ov *config.Overlay) {
	if ov.Server != "" {
		st.SetServer(endpoint.URLForHost(ov.Server))
	}
	st.User = ov.User
	st.Password = ov.Password
	st.Debug = *ov.Debug
	st.BatchMode = *ov.BatchMode
	st.LoginV3 = *ov.LoginV3
}

// crash prints the full error report and waits for Enter.
func (a *App) crash(err error) int {
	fmt.Fprintf(a.opts.Stderr, "%+v\n", err)
	fmt.Fprint(a.opts.Stdout, "Press Enter to exit")
	_, _ = bufio.NewReader(a.opts.Stdin).ReadString('\n')
	return ExitCrash
}

// newRunID returns a time-ordered id for correlating the log lines of one
// invocation.
func newRunID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func (a *App) usage() {
	var commands []string
	if a.registry != nil {
		commands = lo.Map(a.registry.Describe(), func(c models.CommandInfo, _ int) string {
			name := strings.Join(append([]string{c.Name}, c.Aliases...), ", ")
			return fmt.Sprintf("%-20s %s", name, c.Description)
		})
	}
	printUsage(a.opts.Stdout, a.opts.Name, commands)
}
