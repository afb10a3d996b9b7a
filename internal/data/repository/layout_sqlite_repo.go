package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"floor-layout/internal/data/entity"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// sqliteTime keeps a fixed width so text ordering matches time ordering.
const sqliteTime = "2006-01-02T15:04:05.000000000Z"

func formatTime(t time.Time) string {
	return t.UTC().Format(sqliteTime)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(sqliteTime, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

type sqliteLayoutRepository struct {
	db  *sql.DB
	log *zap.Logger
}

func NewSQLiteLayoutRepository(db *sql.DB, log *zap.Logger) LayoutRepository {
	return &sqliteLayoutRepository{
		db:  db,
		log: log.With(zap.String("repository", "layout_sqlite")),
	}
}

func scanSQLiteLayout(row rowScanner) (*entity.FloorLayout, error) {
	var (
		layout               entity.FloorLayout
		data, metadata       string
		createdAt, updatedAt string
	)
	err := row.Scan(
		&layout.ID,
		&layout.TenantID,
		&layout.Status,
		&data,
		&metadata,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	layout.Data = json.RawMessage(data)
	layout.Metadata = json.RawMessage(metadata)
	if layout.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if layout.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &layout, nil
}

func (r *sqliteLayoutRepository) findOne(ctx context.Context, query string, args ...any) (*entity.FloorLayout, error) {
	layout, err := scanSQLiteLayout(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return layout, err
}

func (r *sqliteLayoutRepository) FindByID(ctx context.Context, tenantID string, id uuid.UUID) (*entity.FloorLayout, error) {
	query := `SELECT ` + layoutColumns + ` FROM floor_layouts WHERE tenant_id = ? AND id = ?`

	layout, err := r.findOne(ctx, query, tenantID, id.String())
	if err != nil {
		r.log.Error("Failed to find layout by ID",
			zap.Error(err),
			zap.String("tenant_id", tenantID),
			zap.String("layout_id", id.String()),
		)
		return nil, fmt.Errorf("find layout %s: %w", id.String(), err)
	}
	return layout, nil
}

func (r *sqliteLayoutRepository) FindActive(ctx context.Context, tenantID string) (*entity.FloorLayout, error) {
	return r.findByStatus(ctx, tenantID, entity.LayoutStatusActive)
}

func (r *sqliteLayoutRepository) FindDraft(ctx context.Context, tenantID string) (*entity.FloorLayout, error) {
	return r.findByStatus(ctx, tenantID, entity.LayoutStatusDraft)
}

func (r *sqliteLayoutRepository) findByStatus(ctx context.Context, tenantID string, status entity.LayoutStatus) (*entity.FloorLayout, error) {
	query := `
		SELECT ` + layoutColumns + `
		FROM floor_layouts
		WHERE tenant_id = ? AND status = ?
		ORDER BY updated_at DESC
		LIMIT 1
	`

	layout, err := r.findOne(ctx, query, tenantID, string(status))
	if err != nil {
		r.log.Error("Failed to find layout by status",
			zap.Error(err),
			zap.String("tenant_id", tenantID),
			zap.String("status", string(status)),
		)
		return nil, fmt.Errorf("find %s layout for tenant %s: %w", status, tenantID, err)
	}
	return layout, nil
}

func (r *sqliteLayoutRepository) FindByTenant(ctx context.Context, tenantID string, limit, offset int) ([]*entity.FloorLayout, error) {
	query := `
		SELECT ` + layoutColumns + `
		FROM floor_layouts
		WHERE tenant_id = ?
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?
	`

	rows, err := r.db.QueryContext(ctx, query, tenantID, limit, offset)
	if err != nil {
		r.log.Error("Failed to list layouts",
			zap.Error(err),
			zap.String("tenant_id", tenantID),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("list layouts for tenant %s: %w", tenantID, err)
	}
	defer rows.Close()

	var layouts []*entity.FloorLayout
	for rows.Next() {
		layout, err := scanSQLiteLayout(rows)
		if err != nil {
			r.log.Error("Failed to scan layout row", zap.Error(err))
			return nil, fmt.Errorf("scan layout row: %w", err)
		}
		layouts = append(layouts, layout)
	}

	return layouts, rows.Err()
}

func (r *sqliteLayoutRepository) CountByTenant(ctx context.Context, tenantID string) (int64, error) {
	query := `SELECT COUNT(*) FROM floor_layouts WHERE tenant_id = ?`

	var count int64
	if err := r.db.QueryRowContext(ctx, query, tenantID).Scan(&count); err != nil {
		r.log.Error("Failed to count layouts",
			zap.Error(err),
			zap.String("tenant_id", tenantID),
		)
		return 0, fmt.Errorf("count layouts for tenant %s: %w", tenantID, err)
	}
	return count, nil
}

func (r *sqliteLayoutRepository) SaveDraft(ctx context.Context, layout *entity.FloorLayout) (*entity.FloorLayout, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin save draft: %w", err)
	}
	defer tx.Rollback()

	update := `
		UPDATE floor_layouts
		SET data = ?, metadata = ?, updated_at = ?
		WHERE tenant_id = ? AND status = ?
		RETURNING ` + layoutColumns

	saved, err := scanSQLiteLayout(tx.QueryRowContext(ctx, update,
		string(layout.Data),
		string(metadataOrEmpty(layout.Metadata)),
		formatTime(layout.UpdatedAt),
		layout.TenantID,
		string(entity.LayoutStatusDraft),
	))
	if errors.Is(err, sql.ErrNoRows) {
		insert := `
			INSERT INTO floor_layouts (` + layoutColumns + `)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			RETURNING ` + layoutColumns

		saved, err = scanSQLiteLayout(tx.QueryRowContext(ctx, insert,
			layout.ID.String(),
			layout.TenantID,
			string(entity.LayoutStatusDraft),
			string(layout.Data),
			string(metadataOrEmpty(layout.Metadata)),
			formatTime(layout.CreatedAt),
			formatTime(layout.UpdatedAt),
		))
	}
	if err != nil {
		r.log.Error("Failed to save draft",
			zap.Error(err),
			zap.String("tenant_id", layout.TenantID),
		)
		return nil, fmt.Errorf("save draft for tenant %s: %w", layout.TenantID, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit save draft: %w", err)
	}
	return saved, nil
}

func (r *sqliteLayoutRepository) DeleteDraft(ctx context.Context, tenantID string) (bool, error) {
	query := `DELETE FROM floor_layouts WHERE tenant_id = ? AND status = ?`

	result, err := r.db.ExecContext(ctx, query, tenantID, string(entity.LayoutStatusDraft))
	if err != nil {
		r.log.Error("Failed to delete draft",
			zap.Error(err),
			zap.String("tenant_id", tenantID),
		)
		return false, fmt.Errorf("delete draft for tenant %s: %w", tenantID, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete draft rows affected: %w", err)
	}
	return n > 0, nil
}

func (r *sqliteLayoutRepository) Activate(ctx context.Context, layout *entity.FloorLayout, statuses []*entity.TableStatus) (*ActivationResult, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin activation: %w", err)
	}
	// no-op once committed
	defer tx.Rollback()

	result, err := r.activateTx(ctx, tx, layout, statuses)
	if err != nil {
		r.log.Error("Activation rolled back",
			zap.Error(err),
			zap.String("tenant_id", layout.TenantID),
			zap.String("layout_id", layout.ID.String()),
		)
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit activation: %w", err)
	}
	return result, nil
}

func (r *sqliteLayoutRepository) activateTx(ctx context.Context, tx *sql.Tx, layout *entity.FloorLayout, statuses []*entity.TableStatus) (*ActivationResult, error) {
	result := &ActivationResult{}

	res, err := tx.ExecContext(ctx,
		`UPDATE floor_layouts SET status = ?, updated_at = ? WHERE tenant_id = ? AND status = ?`,
		string(entity.LayoutStatusArchived), formatTime(layout.UpdatedAt),
		layout.TenantID, string(entity.LayoutStatusActive),
	)
	if err != nil {
		return nil, fmt.Errorf("archive active layout: %w", err)
	}
	if result.Archived, err = res.RowsAffected(); err != nil {
		return nil, fmt.Errorf("archive rows affected: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO floor_layouts (`+layoutColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		layout.ID.String(),
		layout.TenantID,
		string(entity.LayoutStatusActive),
		string(layout.Data),
		string(metadataOrEmpty(layout.Metadata)),
		formatTime(layout.CreatedAt),
		formatTime(layout.UpdatedAt),
	)
	if err != nil {
		return nil, fmt.Errorf("insert active layout: %w", err)
	}

	res, err = tx.ExecContext(ctx, `DELETE FROM table_statuses WHERE tenant_id = ?`, layout.TenantID)
	if err != nil {
		return nil, fmt.Errorf("clear table statuses: %w", err)
	}
	if result.StatusesReset, err = res.RowsAffected(); err != nil {
		return nil, fmt.Errorf("clear statuses rows affected: %w", err)
	}

	if err := insertStatusesSQLite(ctx, tx, statuses); err != nil {
		return nil, err
	}

	res, err = tx.ExecContext(ctx,
		`DELETE FROM floor_layouts WHERE tenant_id = ? AND status = ?`,
		layout.TenantID, string(entity.LayoutStatusDraft),
	)
	if err != nil {
		return nil, fmt.Errorf("delete draft layout: %w", err)
	}
	if result.DraftsRemoved, err = res.RowsAffected(); err != nil {
		return nil, fmt.Errorf("delete draft rows affected: %w", err)
	}

	return result, nil
}

func insertStatusesSQLite(ctx context.Context, tx *sql.Tx, statuses []*entity.TableStatus) error {
	if len(statuses) == 0 {
		return nil
	}

	var sb strings.Builder
	sb.WriteString(`INSERT INTO table_statuses (` + tableStatusColumns + `) VALUES `)
	args := make([]any, 0, len(statuses)*6)

	for i, st := range statuses {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("(?, ?, ?, ?, ?, ?)")

		args = append(args,
			st.ID.String(),
			st.TableID,
			st.TenantID,
			string(st.Status),
			formatTime(st.UpdatedAt),
			string(metadataOrEmpty(st.Metadata)),
		)
	}

	if _, err := tx.ExecContext(ctx, sb.String(), args...); err != nil {
		return fmt.Errorf("insert %d table statuses: %w", len(statuses), err)
	}
	return nil
}
