// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// AuditEvent is a security-relevant action queued on the session for later
// submission to the enterprise audit log.
type AuditEvent struct {
	// Type is the audit event name, e.g. "copy_password" or "open_record".
	Type string `json:"audit_event_type"`

	// Inputs holds the allow-listed attributes of the event.
	Inputs map[string]any `json:"inputs"`
}
