// Package workers runs queued session commands in the background of a long
// lived process.
package workers

//go:generate mockgen -source=interfaces.go -destination=../mock/executor_mock.go -package=mock

import (
	"context"

	"github.com/MKhiriev/keeper-commander/internal/session"
)

// Executor is the interface that must be implemented by whatever executes a
// single command line against a session.
//
// Execute returns commands.ErrQuit to ask the caller to stop.
type Executor interface {
	Execute(ctx context.Context, st *session.Store, line string) error
}
