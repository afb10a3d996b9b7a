package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"floor-layout/internal/data/entity"
	"floor-layout/internal/floorplan"
	"floor-layout/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const tableStatusColumns = `id, table_id, tenant_id, status, updated_at, metadata`

type tableStatusRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTableStatusRepository(db database.PgxIface, log *zap.Logger) TableStatusRepository {
	return &tableStatusRepository{
		db:  db,
		log: log.With(zap.String("repository", "table_status")),
	}
}

func scanTableStatus(row pgx.Row) (*entity.TableStatus, error) {
	var st entity.TableStatus
	err := row.Scan(
		&st.ID,
		&st.TableID,
		&st.TenantID,
		&st.Status,
		&st.UpdatedAt,
		&st.Metadata,
	)
	if err != nil {
		return nil, err
	}
	return &st, nil
}

func (r *tableStatusRepository) FindByTenant(ctx context.Context, tenantID string) ([]*entity.TableStatus, error) {
	query := `SELECT ` + tableStatusColumns + ` FROM table_statuses WHERE tenant_id = $1 ORDER BY table_id`

	rows, err := r.db.Query(ctx, query, tenantID)
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
		st, err := scanTableStatus(rows)
		if err != nil {
			r.log.Error("Failed to scan table status row", zap.Error(err))
			return nil, fmt.Errorf("scan table status row: %w", err)
		}
		statuses = append(statuses, st)
	}

	return statuses, rows.Err()
}

func (r *tableStatusRepository) FindByTableID(ctx context.Context, tenantID, tableID string) (*entity.TableStatus, error) {
	query := `SELECT ` + tableStatusColumns + ` FROM table_statuses WHERE tenant_id = $1 AND table_id = $2`

	st, err := scanTableStatus(r.db.QueryRow(ctx, query, tenantID, tableID))
	if errors.Is(err, pgx.ErrNoRows) {
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

func (r *tableStatusRepository) UpdateStatus(ctx context.Context, tenantID, tableID string, status floorplan.TableStatus, at time.Time) error {
	query := `UPDATE table_statuses SET status = $3, updated_at = $4 WHERE tenant_id = $1 AND table_id = $2`

	tag, err := r.db.Exec(ctx, query, tenantID, tableID, status, at)
	if err != nil {
		r.log.Error("Failed to update table status",
			zap.Error(err),
			zap.String("tenant_id", tenantID),
			zap.String("table_id", tableID),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update status of table %s: %w", tableID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("table %s: %w", tableID, ErrNotFound)
	}
	return nil
}
