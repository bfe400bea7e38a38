package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/keeper-commander/internal/endpoint"
	"github.com/MKhiriev/keeper-commander/internal/logger"
)

func builtins(r *Registry) []*Command {
	return []*Command{
		{
			Name:        "help",
			Aliases:     []string{"?"},
			Description: "Display the list of commands",
			Run:         helpHandler(r),
		},
		{
			Name:        "whoami",
			Description: "Display the current user and server",
			Run:         whoami,
		},
		{
			Name:        "server",
			Description: "Display or change the Keeper host",
			Run:         server,
		},
		{
			Name:        "cd",
			Description: "Change the current folder",
			Run:         changeFolder,
		},
		{
			Name:        "debug",
			Description: "Toggle debug output",
			Run:         toggleDebug,
		},
		{
			Name:        "logout",
			Description: "Log out and clear the session",
			Run:         logout,
		},
		{
			Name:        "quit",
			Aliases:     []string{"q"},
			Description: "Exit",
			Run:         quit,
		},
	}
}

func helpHandler(r *Registry) Handler {
	return func(_ context.Context, inv *Invocation) error {
		for _, c := range r.Describe() {
			name := strings.Join(append([]string{c.Name}, c.Aliases...), ", ")
			fmt.Fprintf(inv.Out, "  %-20s %s\n", name, c.Description)
		}
		return nil
	}
}

func whoami(_ context.Context, inv *Invocation) error {
	st := inv.Store
	user := st.User
	if user == "" {
		user = "(none)"
	}

	fmt.Fprintf(inv.Out, "%12s: %s\n", "User", user)
	fmt.Fprintf(inv.Out, "%12s: %s\n", "Server", st.Domain())
	fmt.Fprintf(inv.Out, "%12s: %s\n", "Data Center", st.Region())
	fmt.Fprintf(inv.Out, "%12s: %s\n", "Session", st.State())
	return nil
}

// server prints the current host or, with an argument, switches to another
// host. Switching is refused while logged in.
func server(_ context.Context, inv *Invocation) error {
	st := inv.Store
	if len(inv.Args) == 0 {
		fmt.Fprintln(inv.Out, st.Server())
		return nil
	}

	if st.IsAuthenticated() {
		return fmt.Errorf("%w: cannot change server of an active session", ErrLoggedIn)
	}

	st.SetServer(endpoint.URLForHost(inv.Args[0]))
	fmt.Fprintf(inv.Out, "Keeper host has been changed to: %s\n", st.Server())
	return nil
}

func changeFolder(_ context.Context, inv *Invocation) error {
	uid := ""
	if len(inv.Args) > 0 && inv.Args[0] != "/" {
		uid = inv.Args[0]
	}
	return inv.Store.SetCurrentFolder(uid)
}

func toggleDebug(ctx context.Context, inv *Invocation) error {
	st := inv.Store
	st.Debug = !st.Debug
	level := logger.Configure(st.Debug, st.BatchMode)

	state := "OFF"
	if st.Debug {
		state = "ON"
	}
	fmt.Fprintf(inv.Out, "Debug %s\n", state)

	logger.FromContext(ctx).Debug().Str("level", level.String()).Msg("log level changed")
	return nil
}

func logout(ctx context.Context, inv *Invocation) error {
	inv.Store.ClearSession()
	logger.FromContext(ctx).Info().Msg("logged out")
	return nil
}

func quit(context.Context, *Invocation) error {
	return ErrQuit
}
