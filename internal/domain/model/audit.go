package model

import (
	"encoding/json"
	"time"
)

// AuditAction names a recorded mutation.
type AuditAction string

const (
	AuditJobCreated            AuditAction = "job.created"
	AuditJobUpdated            AuditAction = "job.updated"
	AuditJobDeleted            AuditAction = "job.deleted"
	AuditJobStatusChanged      AuditAction = "job.status_changed"
	AuditJobVerificationChange AuditAction = "job.verification_changed"
	AuditCreditsGranted        AuditAction = "employer.credits_granted"
)

// AuditLog is an append-only record of a committed mutation.
type AuditLog struct {
	ID         string          `json:"id"                 db:"id"`
	Action     AuditAction     `json:"action"             db:"action"`
	EntityType string          `json:"entity_type"        db:"entity_type"`
	EntityID   string          `json:"entity_id"          db:"entity_id"`
	ActorID    *string         `json:"actor_id,omitempty" db:"actor_id"`
	Payload    json.RawMessage `json:"payload,omitempty"  db:"payload"`
	CreatedAt  time.Time       `json:"created_at"         db:"created_at"`
}

// AuditEntry is the input for recording an audit log.
type AuditEntry struct {
	Action     AuditAction
	EntityType string
	EntityID   string
	ActorID    string
	Payload    any
}
