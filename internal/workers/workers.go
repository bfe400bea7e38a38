package workers

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/MKhiriev/keeper-commander/internal/commands"
	"github.com/MKhiriev/keeper-commander/internal/logger"
	"github.com/MKhiriev/keeper-commander/internal/session"
)

// Scheduler re-runs the session's queued commands every Store.TimeDelay
// seconds until its context is cancelled.
type Scheduler struct {
	exec Executor
	log  *logger.Logger

	// unit scales TimeDelay; it is a second outside of tests.
	unit time.Duration
}

func NewScheduler(exec Executor, log *logger.Logger) *Scheduler {
	return &Scheduler{exec: exec, log: log, unit: time.Second}
}

// Run implements client.ScheduledRunner. The queued commands are taken off
// the session and executed once immediately, then on every tick. A failing
// command is logged and does not stop the schedule; a quit does. Run returns
// 0 once stopped.
func (s *Scheduler) Run(ctx context.Context, st *session.Store) int {
	batch := slices.Clone(st.Commands)
	st.Commands = st.Commands[:0]

	interval := time.Duration(max(st.TimeDelay, 1)) * s.unit
	s.log.Info().
		Int("commands", len(batch)).
		Dur("interval", interval).
		Msg("scheduled runner started")

	if s.runBatch(ctx, st, batch) {
		return 0
	}

	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info().Msg("scheduled runner stopped")
			return 0
		case <-t.C:
			if s.runBatch(ctx, st, batch) {
				return 0
			}
		}
	}
}

// runBatch executes every command in order and reports whether the
// schedule should stop.
func (s *Scheduler) runBatch(ctx context.Context, st *session.Store, batch []string) bool {
	for _, line := range batch {
		if ctx.Err() != nil {
			return true
		}

		err := s.exec.Execute(ctx, st, line)
		if errors.Is(err, commands.ErrQuit) {
			return true
		}
		if err != nil {
			s.log.Error().Err(err).Str("command", line).Msg("scheduled command failed")
		}
	}
	return false
}
