// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package session holds the per-invocation session registry.
//
// A [Store] starts unauthenticated. The authentication collaborator moves it
// to the authenticated state by filling SessionToken, DataKey and related
// secrets; the sync collaborator then populates the entity caches.
// [Store.ClearSession] is the only way back, and the process may log in
// again right after it.
package session
