package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"floor-layout/internal/data/entity"
	"floor-layout/internal/floorplan"

	"go.uber.org/zap"
)

type sqliteTableStatusRepository struct {
	db  *sql.DB
	log *zap.Logger
}

func NewSQLiteTableStatusRepository(db *sql.DB, log *zap.Logger) TableStatusRepository {
	return &sqliteTableStatusRepository{
		db:  db,
		log: log.With(zap.String("repository", "table_status_sqlite")),
	}
}

func scanSQLiteTableStatus(row rowScanner) (*entity.TableStatus, error) {
	var (
		st                  entity.TableStatus
		updatedAt, metadata string
	)
	err := row.Scan(
		&st.ID,
		&st.TableID,
		&st.TenantID,
		&st.Status,
		&updatedAt,
		&metadata,
	)
	if err != nil {
		return nil, err
	}

	st.Metadata = json.RawMessage(metadata)
	if st.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &st, nil
}

func (r *sqliteTableStatusRepository) FindByTenant(ctx context.Context, tenantID string) ([]*entity.TableStatus, error) {
	query := `SELECT ` + tableStatusColumns + ` FROM table_statuses WHERE tenant_id = ? ORDER BY table_id`

	rows, err := r.db.QueryContext(ctx, query, tenantID)
	if err != nil {
		r.log.Error("Failed to list table statuses",
			zap.Error(err),
			zap.String("tenant_id", tenantID),
		)
		return nil, fmt.Errorf("list table statuses for tenant %s: %w", tenantID, err)
	}
	defer rows.Close()

	var statuses []*entity.TableStatus
	for rows.Next() {
		st, err := scanSQLiteTableStatus(rows)
		if err != nil {
			r.log.Error("Failed to scan table status row", zap.Error(err))
			return nil, fmt.Errorf("scan table status row: %w", err)
		}
		statuses = append(statuses, st)
	}

	return statuses, rows.Err()
}

func (r *sqliteTableStatusRepository) FindByTableID(ctx context.Context, tenantID, tableID string) (*entity.TableStatus, error) {
	query := `SELECT ` + tableStatusColumns + ` FROM table_statuses WHERE tenant_id = ? AND table_id = ?`

	st, err := scanSQLiteTableStatus(r.db.QueryRowContext(ctx, query, tenantID, tableID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find table status",
			zap.Error(err),
			zap.String("tenant_id", tenantID),
			zap.String("table_id", tableID),
		)
		return nil, fmt.Errorf("find status of table %s: %w", tableID, err)
	}
	return st, nil
}

func (r *sqliteTableStatusRepository) UpdateStatus(ctx context.Context, tenantID, tableID string, status floorplan.TableStatus, at time.Time) error {
	query := `UPDATE table_statuses SET status = ?, updated_at = ? WHERE tenant_id = ? AND table_id = ?`

	res, err := r.db.ExecContext(ctx, query, string(status), formatTime(at), tenantID, tableID)
	if err != nil {
		r.log.Error("Failed to update table status",
			zap.Error(err),
			zap.String("tenant_id", tenantID),
			zap.String("table_id", tableID),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update status of table %s: %w", tableID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update status rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("table %s: %w", tableID, ErrNotFound)
	}
	return nil
}
