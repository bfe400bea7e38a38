// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/samber/lo"

	"github.com/MKhiriev/keeper-commander/internal/session"
	"github.com/MKhiriev/keeper-commander/models"
)

// Invocation is what a command handler gets to work with.
type Invocation struct {
	Store *session.Store
	Args  []string
	Out   io.Writer
}

// Handler executes one command. Returning [ErrQuit] ends the loop.
type Handler func(ctx context.Context, inv *Invocation) error

// Command is a registered command.
type Command struct {
	Name        string
	Aliases     []string
	Description string
	Run         Handler
}

// Registry maps command names and aliases to commands, keeping registration
// order for help output.
type Registry struct {
	commands []*Command
	index    map[string]*Command
}

// NewRegistry returns a registry holding the built-in session commands.
func NewRegistry() *Registry {
	r := &Registry{index: map[string]*Command{}}
	for _, cmd := range builtins(r) {
		// built-in names are unique
		_ = r.Register(cmd)
	}
	return r
}

// Register adds cmd. Names are case-insensitive; a name or alias that is
// already taken is rejected and nothing is registered.
func (r *Registry) Register(cmd *Command) error {
	names := lo.Map(append([]string{cmd.Name}, cmd.Aliases...), func(n string, _ int) string {
		return strings.ToLower(n)
	})

	for _, n := range names {
		if _, ok := r.index[n]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateCommand, n)
		}
	}

	r.commands = append(r.commands, cmd)
	for _, n := range names {
		r.index[n] = cmd
	}
	return nil
}

// Lookup finds a command by name or alias.
func (r *Registry) Lookup(name string) (*Command, bool) {
	cmd, ok := r.index[strings.ToLower(name)]
	return cmd, ok
}

// Describe implements client.CommandRegistry.
func (r *Registry) Describe() []models.CommandInfo {
	return lo.Map(r.commands, func(c *Command, _ int) models.CommandInfo {
		return models.CommandInfo{
			Name:        c.Name,
			Aliases:     c.Aliases,
			Description: c.Description,
		}
	})
}
