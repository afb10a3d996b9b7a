package repository

import (
	"context"
	"errors"
	"fmt"

	"floor-layout/internal/data/entity"
	"floor-layout/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const layoutColumns = `id, tenant_id, status, data, metadata, created_at, updated_at`

type layoutRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewLayoutRepository(db database.PgxIface, log *zap.Logger) LayoutRepository {
	return &layoutRepository{
		db:  db,
		log: log.With(zap.String("repository", "layout")),
	}
}

func scanLayout(row pgx.Row) (*entity.FloorLayout, error) {
	var layout entity.FloorLayout
	err := row.Scan(
		&layout.ID,
		&layout.TenantID,
		&layout.Status,
		&layout.Data,
		&layout.Metadata,
		&layout.CreatedAt,
		&layout.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &layout, nil
}

func (r *layoutRepository) findOne(ctx context.Context, query string, args ...any) (*entity.FloorLayout, error) {
	layout, err := scanLayout(r.db.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return layout, err
}

func (r *layoutRepository) FindByID(ctx context.Context, tenantID string, id uuid.UUID) (*entity.FloorLayout, error) {
	query := `SELECT ` + layoutColumns + ` FROM floor_layouts WHERE tenant_id = $1 AND id = $2`

	layout, err := r.findOne(ctx, query, tenantID, id)
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

func (r *layoutRepository) FindActive(ctx context.Context, tenantID string) (*entity.FloorLayout, error) {
	return r.findByStatus(ctx, tenantID, entity.LayoutStatusActive)
}

func (r *layoutRepository) FindDraft(ctx context.Context, tenantID string) (*entity.FloorLayout, error) {
	return r.findByStatus(ctx, tenantID, entity.LayoutStatusDraft)
}

func (r *layoutRepository) findByStatus(ctx context.Context, tenantID string, status entity.LayoutStatus) (*entity.FloorLayout, error) {
	query := `
		SELECT ` + layoutColumns + `
		FROM floor_layouts
		WHERE tenant_id = $1 AND status = $2
		ORDER BY updated_at DESC
		LIMIT 1
	`

	layout, err := r.findOne(ctx, query, tenantID, status)
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

func (r *layoutRepository) FindByTenant(ctx context.Context, tenantID string, limit, offset int) ([]*entity.FloorLayout, error) {
	query := `
		SELECT ` + layoutColumns + `
		FROM floor_layouts
		WHERE tenant_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, tenantID, limit, offset)
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
		layout, err := scanLayout(rows)
		if err != nil {
			r.log.Error("Failed to scan layout row", zap.Error(err))
			return nil, fmt.Errorf("scan layout row: %w", err)
		}
		layouts = append(layouts, layout)
	}

	return layouts, rows.Err()
}

func (r *layoutRepository) CountByTenant(ctx context.Context, tenantID string) (int64, error) {
	query := `SELECT COUNT(*) FROM floor_layouts WHERE tenant_id = $1`

	var count int64
	if err := r.db.QueryRow(ctx, query, tenantID).Scan(&count); err != nil {
		r.log.Error("Failed to count layouts",
			zap.Error(err),
			zap.String("tenant_id", tenantID),
		)
		return 0, fmt.Errorf("count layouts for tenant %s: %w", tenantID, err)
	}
	return count, nil
}

func (r *layoutRepository) SaveDraft(ctx context.Context, layout *entity.FloorLayout) (*entity.FloorLayout, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin save draft: %w", err)
	}
	defer tx.Rollback(ctx)

	update := `
		UPDATE floor_layouts
		SET data = $3, metadata = $4, updated_at = $5
		WHERE tenant_id = $1 AND status = $2
		RETURNING ` + layoutColumns

	saved, err := scanLayout(tx.QueryRow(ctx, update,
		layout.TenantID,
		entity.LayoutStatusDraft,
		layout.Data,
		metadataOrEmpty(layout.Metadata),
		layout.UpdatedAt,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		insert := `
			INSERT INTO floor_layouts (` + layoutColumns + `)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING ` + layoutColumns

		saved, err = scanLayout(tx.QueryRow(ctx, insert,
			layout.ID,
			layout.TenantID,
			entity.LayoutStatusDraft,
			layout.Data,
			metadataOrEmpty(layout.Metadata),
			layout.CreatedAt,
			layout.UpdatedAt,
		))
	}
	if err != nil {
		r.log.Error("Failed to save draft",
			zap.Error(err),
			zap.String("tenant_id", layout.TenantID),
		)
		return nil, fmt.Errorf("save draft for tenant %s: %w", layout.TenantID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit save draft: %w", err)
	}
	return saved, nil
}

func (r *layoutRepository) DeleteDraft(ctx context.Context, tenantID string) (bool, error) {
	query := `DELETE FROM floor_layouts WHERE tenant_id = $1 AND status = $2`

	result, err := r.db.Exec(ctx, query, tenantID, entity.LayoutStatusDraft)
	if err != nil {
		r.log.Error("Failed to delete draft",
			zap.Error(err),
			zap.String("tenant_id", tenantID),
		)
		return false, fmt.Errorf("delete draft for tenant %s: %w", tenantID, err)
	}
	return result.RowsAffected() > 0, nil
}

func (r *layoutRepository) Activate(ctx context.Context, layout *entity.FloorLayout, statuses []*entity.TableStatus) (*ActivationResult, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin activation: %w", err)
	}
	// no-op once committed
	defer tx.Rollback(ctx)

	result, err := r.activateTx(ctx, tx, layout, statuses)
	if err != nil {
		r.log.Error("Activation rolled back",
			zap.Error(err),
			zap.String("tenant_id", layout.TenantID),
			zap.String("layout_id", layout.ID.String()),
		)
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit activation: %w", err)
	}
	return result, nil
}

func (r *layoutRepository) activateTx(ctx context.Context, tx pgx.Tx, layout *entity.FloorLayout, statuses []*entity.TableStatus) (*ActivationResult, error) {
	result := &ActivationResult{}

	tag, err := tx.Exec(ctx,
		`UPDATE floor_layouts SET status = $3, updated_at = $4 WHERE tenant_id = $1 AND status = $2`,
		layout.TenantID, entity.LayoutStatusActive, entity.LayoutStatusArchived, layout.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("archive active layout: %w", err)
	}
	result.Archived = tag.RowsAffected()

	_, err = tx.Exec(ctx,
		`INSERT INTO floor_layouts (`+layoutColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		layout.ID,
		layout.TenantID,
		entity.LayoutStatusActive,
		layout.Data,
		metadataOrEmpty(layout.Metadata),
		layout.CreatedAt,
		layout.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert active layout: %w", err)
	}

	tag, err = tx.Exec(ctx, `DELETE FROM table_statuses WHERE tenant_id = $1`, layout.TenantID)
	if err != nil {
		return nil, fmt.Errorf("clear table statuses: %w", err)
	}
	result.StatusesReset = tag.RowsAffected()

	if err := insertStatusesPgx(ctx, tx, statuses); err != nil {
		return nil, err
	}

	tag, err = tx.Exec(ctx,
		`DELETE FROM floor_layouts WHERE tenant_id = $1 AND status = $2`,
		layout.TenantID, entity.LayoutStatusDraft,
	)
	if err != nil {
		return nil, fmt.Errorf("delete draft layout: %w", err)
	}
	result.DraftsRemoved = tag.RowsAffected()

	return result, nil
}

// insertStatusesPgx writes all rows with one multi-VALUES insert.
func insertStatusesPgx(ctx context.Context, tx pgx.Tx, statuses []*entity.TableStatus) error {
	if len(statuses) == 0 {
		return nil
	}

	query := `INSERT INTO table_statuses (id, table_id, tenant_id, status, updated_at, metadata) VALUES `
	args := make([]any, 0, len(statuses)*6)

	for i, st := range statuses {
		if i > 0 {
			query += ", "
		}
		query += fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d)",
			i*6+1, i*6+2, i*6+3, i*6+4, i*6+5, i*6+6)

		args = append(args,
			st.ID,
			st.TableID,
			st.TenantID,
			st.Status,
			st.UpdatedAt,
			metadataOrEmpty(st.Metadata),
		)
	}

	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("insert %d table statuses: %w", len(statuses), err)
	}
	return nil
}

func metadataOrEmpty(m []byte) []byte {
	if len(m) == 0 {
		return []byte("{}")
	}
	return m
}
