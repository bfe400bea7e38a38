// Package commands provides the command registry and the loop that executes
// queued and typed commands against a session.
//
// Only session-level built-ins live here; vault commands register
// themselves through [Registry.Register].
package commands
