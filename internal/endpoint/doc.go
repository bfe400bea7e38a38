// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package endpoint decides which remote API host a session talks to.
//
// A [Resolver] is built from a symbolic region ("COM", "EU") or, for older
// configuration files, from a full server URL whose host is matched against
// the fixed region table. Resolution never fails: anything it cannot match
// is logged and falls back to [DefaultRegion].
//
// The resolver also carries endpoint-scoped metadata exchanged with the
// server (device id, server key id, transmission key) and reports through
// [Resolver.Dirty] whether the persisted part of it changed.
package endpoint
