package client

import (
	"fmt"
	"io"
	"strings"

	"github.com/alessio/shellescape"
	"github.com/spf13/cast"
	"github.com/urfave/cli/v2"

	"github.com/MKhiriev/keeper-commander/internal/config"
)

// optionsSeparator splits the command's own flags from its options.
const optionsSeparator = "--"

const (
	flagServer    = "server"
	flagUser      = "user"
	flagPassword  = "password"
	flagVersion   = "version"
	flagConfig    = "config"
	flagDebug     = "debug"
	flagBatchMode = "batch-mode"
	flagLoginV3   = "login-v3"
	flagHelp      = "help"
)

// invocation is the parsed command line.
type invocation struct {
	overlay    config.Overlay
	configPath string
	version    bool
	help       bool

	command string
	flags   []string
	options []string
}

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    flagServer,
			Aliases: []string{"ks"},
			Usage:   "Keeper host address",
		},
		&cli.StringFlag{
			Name:    flagUser,
			Aliases: []string{"ku"},
			Usage:   "Email address for the account",
		},
		&cli.StringFlag{
			Name:    flagPassword,
			Aliases: []string{"kp"},
			Usage:   "Master password for the account",
		},
		&cli.BoolFlag{
			Name:  flagVersion,
			Usage: "Display version",
		},
		&cli.StringFlag{
			Name:  flagConfig,
			Usage: "Config file to use",
		},
		&cli.BoolFlag{
			Name:  flagDebug,
			Usage: "Turn on debug mode",
		},
		&cli.BoolFlag{
			Name:  flagBatchMode,
			Usage: "Run in batch or basic UI mode",
		},
		&cli.StringFlag{
			Name:    flagLoginV3,
			Aliases: []string{"lv3"},
			Usage:   "Use Login v3 to log in",
		},
		&cli.BoolFlag{
			Name:    flagHelp,
			Aliases: []string{"h"},
			Usage:   "Show this help",
		},
	}
}

// parseArgs parses the process arguments without the program name. Usage
// errors are returned unwrapped from urfave/cli.
func parseArgs(name string, args []string) (*invocation, error) {
	var inv *invocation

	app := &cli.App{
		Name:           name,
		HideHelp:       true,
		HideVersion:    true,
		Flags:          globalFlags(),
		Writer:         io.Discard,
		ErrWriter:      io.Discard,
		ExitErrHandler: func(*cli.Context, error) {},
		OnUsageError: func(_ *cli.Context, err error, _ bool) error {
			return err
		},
		Action: func(c *cli.Context) (err error) {
			inv, err = newInvocation(c)
			return err
		},
	}

	if err := app.Run(append([]string{name}, args...)); err != nil {
		return nil, err
	}
	if inv == nil {
		// urfave/cli answers --help itself without reaching Action.
		return &invocation{help: true}, nil
	}

	return inv, nil
}

func newInvocation(c *cli.Context) (*invocation, error) {
	inv := &invocation{
		overlay: config.Overlay{
			Server:   c.String(flagServer),
			User:     c.String(flagUser),
			Password: c.String(flagPassword),
		},
		configPath: c.String(flagConfig),
		version:    c.Bool(flagVersion),
		help:       c.Bool(flagHelp),
	}

	// Only flags given on the command line take part in the overlay.
	if c.IsSet(flagDebug) {
		inv.overlay.Debug = ptr(c.Bool(flagDebug))
	}
	if c.IsSet(flagBatchMode) {
		inv.overlay.BatchMode = ptr(c.Bool(flagBatchMode))
	}
	inv.setLoginV3(c.String(flagLoginV3))

	args := c.Args().Slice()
	if len(args) == 0 {
		return inv, nil
	}

	inv.command = args[0]
	if err := inv.splitTail(args[1:]); err != nil {
		return nil, err
	}

	if len(inv.flags) > 0 && inv.flags[0] == "-h" {
		inv.command = commandHelp
		inv.flags = nil
	}

	return inv, nil
}

// globalFlag is the part of a cli.Flag needed to apply it after the command.
type globalFlag struct {
	name   string
	isBool bool
}

// tailFlags indexes the global flags by every name and alias. Help is left
// out so that "-h" after a command reaches the command.
func tailFlags() map[string]globalFlag {
	index := make(map[string]globalFlag)
	for _, f := range globalFlags() {
		names := f.Names()
		if names[0] == flagHelp {
			continue
		}

		_, isBool := f.(*cli.BoolFlag)
		for _, n := range names {
			index[n] = globalFlag{name: names[0], isBool: isBool}
		}
	}
	return index
}

// splitTail classifies the arguments following the command. Global flags
// are applied to inv wherever they appear, other dash tokens become the
// command's flags and the remaining tokens its options. Everything after a
// literal "--" is an option.
func (inv *invocation) splitTail(rest []string) error {
	known := tailFlags()

	for i := 0; i < len(rest); i++ {
		tok := rest[i]
		if tok == optionsSeparator {
			inv.options = append(inv.options, rest[i+1:]...)
			break
		}
		if !isFlagToken(tok) {
			inv.options = append(inv.options, tok)
			continue
		}

		name, value, explicit := strings.Cut(strings.TrimLeft(tok, "-"), "=")
		f, ok := known[name]
		if !ok {
			inv.flags = append(inv.flags, tok)
			continue
		}

		if !f.isBool && !explicit {
			if i+1 == len(rest) {
				return fmt.Errorf("flag needs an argument: %s", tok)
			}
			i++
			value = rest[i]
		}
		if err := inv.apply(f, value, explicit); err != nil {
			return err
		}
	}

	return nil
}

// isFlagToken reports whether tok looks like an option. Negative numbers
// are positional.
func isFlagToken(tok string) bool {
	if len(tok) < 2 || tok[0] != '-' {
		return false
	}
	_, err := cast.ToFloat64E(tok)
	return err != nil
}

func (inv *invocation) apply(f globalFlag, value string, explicit bool) error {
	if f.isBool {
		b := true
		if explicit {
			var err error
			if b, err = cast.ToBoolE(value); err != nil {
				return fmt.Errorf("invalid boolean value %q for flag --%s", value, f.name)
			}
		}

		switch f.name {
		case flagVersion:
			inv.version = b
		case flagDebug:
			inv.overlay.Debug = ptr(b)
		case flagBatchMode:
			inv.overlay.BatchMode = ptr(b)
		}
		return nil
	}

	switch f.name {
	case flagServer:
		inv.overlay.Server = value
	case flagUser:
		inv.overlay.User = value
	case flagPassword:
		inv.overlay.Password = value
	case flagConfig:
		inv.configPath = value
	case flagLoginV3:
		inv.setLoginV3(value)
	}
	return nil
}

func (inv *invocation) setLoginV3(value string) {
	if v, ok := config.ParseBoolLike(value); ok {
		inv.overlay.LoginV3 = &v
	}
}

// commandLine renders a one-shot invocation as a single queued command with
// every flag and option shell-quoted.
func (inv *invocation) commandLine() string {
	var b strings.Builder
	b.WriteString(inv.command)
	if len(inv.flags) > 0 {
		b.WriteByte(' ')
		b.WriteString(shellescape.QuoteCommand(inv.flags))
	}
	if len(inv.options) > 0 {
		b.WriteString(" " + optionsSeparator + " ")
		b.WriteString(shellescape.QuoteCommand(inv.options))
	}
	return b.String()
}

// printUsage writes the option summary followed by the command list.
func printUsage(w io.Writer, name string, commands []string) {
	fmt.Fprintf(w, "usage: %s [options] [command] [command flags] [-- options]\n\n", name)
	fmt.Fprintln(w, "options:")
	for _, f := range globalFlags() {
		fmt.Fprintf(w, "  %s\n", f)
	}

	if len(commands) == 0 {
		return
	}
	fmt.Fprintln(w, "\ncommands:")
	for _, line := range commands {
		fmt.Fprintf(w, "  %s\n", line)
	}
}

func ptr[T any](v T) *T {
	return &v
}
