package session

import (
	"encoding/json"

	"github.com/samber/lo"

	"github.com/MKhiriev/keeper-commander/models"
)

// enterpriseAccountType is the license "account_type" of enterprise accounts.
const enterpriseAccountType = 2

// auditInputKeys are the only event attributes ever sent to the audit log.
var auditInputKeys = []string{"record_uid", "file_format", "attachment_id", "to_username"}

// QueueAuditEvent appends an audit event to EventQueue.
//
// Events are only recorded for enterprise accounts; for any other license,
// or none, the call does nothing. Attributes outside the audit allow-list
// are dropped.
func (st *Store) QueueAuditEvent(name string, attrs map[string]any) {
	if !st.isEnterpriseAccount() {
		return
	}

	st.EventQueue = append(st.EventQueue, models.AuditEvent{
		Type:   name,
		Inputs: lo.PickByKeys(attrs, auditInputKeys),
	})
}

func (st *Store) isEnterpriseAccount() bool {
	v, ok := st.License["account_type"]
	if !ok {
		return false
	}

	// Only numbers compare equal; strings and fractions never match.
	switch n := v.(type) {
	case int:
		return n == enterpriseAccountType
	case int32:
		return n == enterpriseAccountType
	case int64:
		return n == enterpriseAccountType
	case float32:
		return n == enterpriseAccountType
	case float64:
		return n == enterpriseAccountType
	case json.Number:
		i, err := n.Int64()
		return err == nil && i == enterpriseAccountType
	default:
		return false
	}
}
