// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the command-line bootstrap.
//
// [App.Run] parses the command line, builds a [session.Store] from the
// persisted configuration, overlays environment variables and flags, and
// selects how the session runs: the interactive shell, a one-shot command,
// commands read from stdin, or a scheduled runner. The command loop itself
// is supplied by the caller through [CommandLoop].
package client
