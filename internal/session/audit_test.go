package session

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/keeper-commander/models"
)

func TestQueueAuditEvent_NonEnterprise(t *testing.T) {
	tests := []struct {
		name    string
		license Entity
	}{
		{name: "no license", license: nil},
		{name: "no account type", license: Entity{"product_type_id": 1}},
		{name: "personal", license: Entity{"account_type": 0}},
		{name: "family", license: Entity{"account_type": 1}},
		{name: "garbage", license: Entity{"account_type": "enterprise"}},
		{name: "numeric string", license: Entity{"account_type": "2"}},
		{name: "fractional string", license: Entity{"account_type": "2.9"}},
		{name: "hex string", license: Entity{"account_type": "0x2"}},
		{name: "fraction", license: Entity{"account_type": 2.7}},
		{name: "fractional json number", license: Entity{"account_type": json.Number("2.5")}},
		{name: "bool", license: Entity{"account_type": true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := newTestStore(t, nil)
			st.License = tt.license

			st.QueueAuditEvent("open_record", map[string]any{"record_uid": "r1"})

			assert.Empty(t, st.EventQueue)
		})
	}
}

// TestQueueAuditEvent_Enterprise verifies that exactly one event is queued
// and that only allow-listed attributes reach it.
func TestQueueAuditEvent_Enterprise(t *testing.T) {
	tests := []struct {
		name        string
		accountType any
	}{
		{name: "int", accountType: 2},
		{name: "float", accountType: float64(2)},
		{name: "int64", accountType: int64(2)},
		{name: "json number", accountType: json.Number("2")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := newTestStore(t, nil)
			st.License = Entity{"account_type": tt.accountType}

			st.QueueAuditEvent("copy_password", map[string]any{
				"record_uid":  "r1",
				"to_username": "peer@example.com",
				"password":    "must not leak",
				"title":       "Bank",
			})

			require.Len(t, st.EventQueue, 1)
			assert.Equal(t, models.AuditEvent{
				Type: "copy_password",
				Inputs: map[string]any{
					"record_uid":  "r1",
					"to_username": "peer@example.com",
				},
			}, st.EventQueue[0])
		})
	}
}

func TestQueueAuditEvent_EmptyAttributes(t *testing.T) {
	st := newTestStore(t, nil)
	st.License = Entity{"account_type": 2}

	st.QueueAuditEvent("login", nil)
	st.QueueAuditEvent("export", map[string]any{"file_format": "json", "attachment_id": "a1"})

	require.Len(t, st.EventQueue, 2)
	assert.Empty(t, st.EventQueue[0].Inputs)
	assert.Equal(t, map[string]any{"file_format": "json", "attachment_id": "a1"}, st.EventQueue[1].Inputs)
}

func TestAuditEvent_JSON(t *testing.T) {
	data, err := json.Marshal(models.AuditEvent{Type: "open_record", Inputs: map[string]any{"record_uid": "r1"}})

	require.NoError(t, err)
	assert.JSONEq(t, `{"audit_event_type": "open_record", "inputs": {"record_uid": "r1"}}`, string(data))
}
