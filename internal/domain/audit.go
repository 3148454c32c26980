package domain

import "time"

// AuditAction names the operation recorded in the audit log.
type AuditAction string

// Audited actions.
const (
	AuditCreate  AuditAction = "transaction.create"
	AuditUpdate  AuditAction = "transaction.update"
	AuditApprove AuditAction = "transaction.approve"
	AuditReject  AuditAction = "transaction.reject"
	AuditVoid    AuditAction = "transaction.void"
	AuditDelete  AuditAction = "transaction.delete"
)

// AuditEntry is an append-only record of a state-changing operation.
type AuditEntry struct {
	ID        int64       `json:"id"`
	Username  string      `json:"username"`
	Action    AuditAction `json:"action"`
	Details   string      `json:"details"`
	CreatedAt time.Time   `json:"created_at"`
}

// CreateAuditEntryParams is the input data to record an audit entry.
type CreateAuditEntryParams struct {
	Username string
	Action   AuditAction
	Details  string
}
