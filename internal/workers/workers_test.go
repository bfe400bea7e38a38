// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/keeper-commander/internal/commands"
	"github.com/MKhiriev/keeper-commander/internal/logger"
	"github.com/MKhiriev/keeper-commander/internal/mock"
	"github.com/MKhiriev/keeper-commander/internal/session"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func newScheduledStore(t *testing.T, delay int, queued ...string) *session.Store {
	t.Helper()
	st, err := session.FromMap("config.json", map[string]any{"timedelay": delay}, logger.Nop())
	require.NoError(t, err)
	st.Commands = queued
	return st
}

func newTestScheduler(exec Executor) *Scheduler {
	s := NewScheduler(exec, logger.Nop())
	s.unit = 10 * time.Millisecond
	return s
}

// spyExecutor counts executed lines.
type spyExecutor struct {
	calls atomic.Int64
	err   error
}

func (s *spyExecutor) Execute(context.Context, *session.Store, string) error {
	s.calls.Add(1)
	return s.err
}

// ── Run ───────────────────────────────────────────────────────────────────────

// TestScheduler_RunsImmediatelyThenOnTicks verifies that the batch runs once
// right away and again on every tick until the context ends.
func TestScheduler_RunsImmediatelyThenOnTicks(t *testing.T) {
	spy := &spyExecutor{}
	st := newScheduledStore(t, 1, "sync-down", "list")
	ctx, cancel := context.WithTimeout(context.Background(), 55*time.Millisecond)
	defer cancel()

	code := newTestScheduler(spy).Run(ctx, st)

	assert.Equal(t, 0, code)
	got := spy.calls.Load()
	assert.GreaterOrEqual(t, got, int64(6), "expected at least three rounds of two commands, got %d", got)
	assert.Empty(t, st.Commands, "queued commands are taken off the session")
}

func TestScheduler_FailuresDoNotStop(t *testing.T) {
	spy := &spyExecutor{err: errors.New("network down")}
	st := newScheduledStore(t, 1, "sync-down")
	ctx, cancel := context.WithTimeout(context.Background(), 35*time.Millisecond)
	defer cancel()

	code := newTestScheduler(spy).Run(ctx, st)

	assert.Equal(t, 0, code)
	assert.GreaterOrEqual(t, spy.calls.Load(), int64(2))
}

func TestScheduler_QuitStops(t *testing.T) {
	ctrl := gomock.NewController(t)
	exec := mock.NewMockExecutor(ctrl)
	st := newScheduledStore(t, 60, "sync-down", "q", "never")

	gomock.InOrder(
		exec.EXPECT().Execute(gomock.Any(), st, "sync-down").Return(nil),
		exec.EXPECT().Execute(gomock.Any(), st, "q").Return(commands.ErrQuit),
	)

	done := make(chan int, 1)
	go func() { done <- newTestScheduler(exec).Run(context.Background(), st) }()

	select {
	case code := <-done:
		assert.Equal(t, 0, code)
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop on quit")
	}
}

func TestScheduler_CancelledBeforeStart(t *testing.T) {
	ctrl := gomock.NewController(t)
	exec := mock.NewMockExecutor(ctrl)
	st := newScheduledStore(t, 1, "sync-down")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	code := newTestScheduler(exec).Run(ctx, st)

	assert.Equal(t, 0, code)
}

func TestScheduler_WithLoop(t *testing.T) {
	loop := commands.NewLoop(commands.NewRegistry(), strings.NewReader(""), io.Discard)
	st := newScheduledStore(t, 1, "whoami", "quit")

	code := newTestScheduler(loop).Run(context.Background(), st)

	assert.Equal(t, 0, code)
}
