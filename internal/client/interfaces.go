// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

//go:generate mockgen -source=interfaces.go -destination=../mock/client_collaborators_mock.go -package=mock

import (
	"context"

	"github.com/MKhiriev/keeper-commander/internal/session"
	"github.com/MKhiriev/keeper-commander/models"
)

// CommandLoop executes queued commands against a session, then hands control
// to the interactive prompt unless the queue ends the session.
type CommandLoop interface {
	// Loop blocks until the session ends and returns the process exit code.
	Loop(ctx context.Context, st *session.Store) int
}

// CommandRegistry lists the commands known to the loop.
type CommandRegistry interface {
	// Describe returns the commands in display order.
	Describe() []models.CommandInfo
}

// ScheduledRunner re-runs the queued commands on the configured interval.
type ScheduledRunner interface {
	// Run blocks until ctx is done and returns the process exit code.
	Run(ctx context.Context, st *session.Store) int
}
