package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"floor-layout/internal/data/entity"
	"floor-layout/internal/floorplan"
	"floor-layout/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrNotFound is wrapped by repository errors for rows that do not exist.
var ErrNotFound = errors.New("not found")

// ActivationResult reports what an activation replaced.
type ActivationResult struct {
	Archived      int64
	DraftsRemoved int64
	StatusesReset int64
}

type LayoutRepository interface {
	FindByID(ctx context.Context, tenantID string, id uuid.UUID) (*entity.FloorLayout, error)
	FindActive(ctx context.Context, tenantID string) (*entity.FloorLayout, error)
	FindDraft(ctx context.Context, tenantID string) (*entity.FloorLayout, error)
	FindByTenant(ctx context.Context, tenantID string, limit, offset int) ([]*entity.FloorLayout, error)
	CountByTenant(ctx context.Context, tenantID string) (int64, error)

	// SaveDraft replaces the tenant's draft or creates it. The stored row is
	// returned; an existing draft keeps its id and created_at.
	SaveDraft(ctx context.Context, layout *entity.FloorLayout) (*entity.FloorLayout, error)
	DeleteDraft(ctx context.Context, tenantID string) (bool, error)

	// Activate runs in one transaction: archive the current ACTIVE row, insert
	// layout as ACTIVE, recreate the tenant's table statuses and drop the DRAFT.
	Activate(ctx context.Context, layout *entity.FloorLayout, statuses []*entity.TableStatus) (*ActivationResult, error)
}

type TableStatusRepository interface {
	FindByTenant(ctx context.Context, tenantID string) ([]*entity.TableStatus, error)
	FindByTableID(ctx context.Context, tenantID, tableID string) (*entity.TableStatus, error)
	UpdateStatus(ctx context.Context, tenantID, tableID string, status floorplan.TableStatus, at time.Time) error
}

type Repository struct {
	Layout      LayoutRepository
	TableStatus TableStatusRepository
}

// NewRepository builds the Postgres repositories.
func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Layout:      NewLayoutRepository(db, log),
		TableStatus: NewTableStatusRepository(db, log),
	}
}

// NewSQLiteRepository builds the embedded-database repositories.
func NewSQLiteRepository(db *sql.DB, log *zap.Logger) *Repository {
	return &Repository{
		Layout:      NewSQLiteLayoutRepository(db, log),
		TableStatus: NewSQLiteTableStatusRepository(db, log),
	}
}
