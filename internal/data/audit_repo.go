package data

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/target/jobmarket-api/internal/data/pgxutil"
	"github.com/target/jobmarket-api/internal/domain/model"
	apperrors "github.com/target/jobmarket-api/internal/errors"
)

const auditColumns = `id, action, entity_type, entity_id, actor_id, payload, created_at`

// AuditRepo persists audit records.
type AuditRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewAuditRepo creates a new AuditRepo with real time provider.
func NewAuditRepo(db *sql.DB) *AuditRepo {
	return &AuditRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// Create inserts an audit record.
func (r *AuditRepo) Create(ctx context.Context, entry model.AuditEntry) (*model.AuditLog, error) {
	if entry.Action == "" || entry.EntityType == "" || entry.EntityID == "" {
		return nil, apperrors.Validation("audit action, entity type and entity id are required")
	}

	var payload []byte
	if entry.Payload != nil {
		b, err := json.Marshal(entry.Payload)
		if err != nil {
			return nil, fmt.Errorf("encode audit payload: %w", err)
		}
		payload = b
	}
	var actor *string
	if entry.ActorID != "" {
		actor = &entry.ActorID
	}

	var out model.AuditLog
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO audit_logs (action, entity_type, entity_id, actor_id, payload, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING `+auditColumns,
			string(entry.Action), entry.EntityType, entry.EntityID, actor, payload, r.timeProvider.Now().UTC())
		if err != nil {
			return err
		}
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.AuditLog])
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create audit log: %w", apperrors.MapDBError(err))
	}
	return &out, nil
}

// ListByEntity returns the most recent audit records for an entity.
func (r *AuditRepo) ListByEntity(
	ctx context.Context,
	entityType, entityID string,
	limit int,
) ([]*model.AuditLog, error) {
	if limit <= 0 {
		limit = 50
	}
	var rowsOut []model.AuditLog
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT `+auditColumns+`
			FROM audit_logs
			WHERE entity_type = $1 AND entity_id = $2
			ORDER BY created_at DESC
			LIMIT $3`, entityType, entityID, limit)
		if err != nil {
			return err
		}
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.AuditLog])
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list audit logs: %w", err)
	}
	return toPtrs(rowsOut), nil
}
