package repository

import (
	"context"
	"testing"
	"time"

	"floor-layout/internal/data/entity"
	"floor-layout/internal/floorplan"
	"floor-layout/pkg/database"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var baseTime = time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()
	db, err := database.OpenSQLite(database.MemoryDSN)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.MigrateSQLite(context.Background(), db))
	return NewSQLiteRepository(db, zap.NewNop())
}

func newLayout(t *testing.T, tenantID string, at time.Time, tableIDs ...string) *entity.FloorLayout {
	t.Helper()
	tables := make([]floorplan.Table, 0, len(tableIDs))
	for i, id := range tableIDs {
		tables = append(tables, floorplan.Table{
			ID: id, X: float64(i) * 100, Y: 0, W: 80, H: 80,
			Shape: floorplan.ShapeRound, Capacity: 4, Seats: 4,
		})
	}

	layout := &entity.FloorLayout{
		Base:     entity.Base{ID: uuid.New(), CreatedAt: at, UpdatedAt: at},
		TenantID: tenantID,
		Metadata: []byte(`{"version":1}`),
	}
	require.NoError(t, layout.SetLayout(floorplan.Layout{Tables: tables}))
	return layout
}

func freeStatuses(layout *entity.FloorLayout, tableIDs ...string) []*entity.TableStatus {
	statuses := make([]*entity.TableStatus, 0, len(tableIDs))
	for _, id := range tableIDs {
		statuses = append(statuses, &entity.TableStatus{
			ID:        uuid.New(),
			TableID:   id,
			TenantID:  layout.TenantID,
			Status:    floorplan.StatusFree,
			UpdatedAt: layout.UpdatedAt,
		})
	}
	return statuses
}

func TestActivateReplacesActiveLayout(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	first := newLayout(t, "bistro", baseTime, "t1", "t2")
	_, err := repo.Layout.Activate(ctx, first, freeStatuses(first, "t1", "t2"))
	require.NoError(t, err)

	second := newLayout(t, "bistro", baseTime.Add(time.Minute), "a", "b", "c")
	result, err := repo.Layout.Activate(ctx, second, freeStatuses(second, "a", "b", "c"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Archived)
	assert.Equal(t, int64(2), result.StatusesReset)

	active, err := repo.Layout.FindActive(ctx, "bistro")
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, second.ID, active.ID)
	assert.Equal(t, entity.LayoutStatusActive, active.Status)
	assert.True(t, second.CreatedAt.Equal(active.CreatedAt))
	assert.JSONEq(t, `{"version":1}`, string(active.Metadata))

	old, err := repo.Layout.FindByID(ctx, "bistro", first.ID)
	require.NoError(t, err)
	require.NotNil(t, old)
	assert.Equal(t, entity.LayoutStatusArchived, old.Status)

	statuses, err := repo.TableStatus.FindByTenant(ctx, "bistro")
	require.NoError(t, err)
	require.Len(t, statuses, 3)
	for _, st := range statuses {
		assert.Equal(t, floorplan.StatusFree, st.Status)
	}
	assert.Equal(t, "a", statuses[0].TableID)

	decoded, err := active.Layout()
	require.NoError(t, err)
	assert.Len(t, decoded.Tables, 3)
}

func TestActivateRemovesDraft(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	draft := newLayout(t, "bistro", baseTime, "t1")
	_, err := repo.Layout.SaveDraft(ctx, draft)
	require.NoError(t, err)

	active := newLayout(t, "bistro", baseTime.Add(time.Minute), "t1")
	result, err := repo.Layout.Activate(ctx, active, freeStatuses(active, "t1"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.DraftsRemoved)

	got, err := repo.Layout.FindDraft(ctx, "bistro")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestActivateRollsBackOnFailure(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	first := newLayout(t, "bistro", baseTime, "t1", "t2")
	_, err := repo.Layout.Activate(ctx, first, freeStatuses(first, "t1", "t2"))
	require.NoError(t, err)

	draft := newLayout(t, "bistro", baseTime.Add(time.Minute), "t9")
	_, err = repo.Layout.SaveDraft(ctx, draft)
	require.NoError(t, err)

	// the repeated table id violates UNIQUE(tenant_id, table_id) after the archive step ran
	broken := newLayout(t, "bistro", baseTime.Add(2*time.Minute), "x", "x")
	_, err = repo.Layout.Activate(ctx, broken, freeStatuses(broken, "x", "x"))
	require.Error(t, err)

	active, err := repo.Layout.FindActive(ctx, "bistro")
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, first.ID, active.ID)

	statuses, err := repo.TableStatus.FindByTenant(ctx, "bistro")
	require.NoError(t, err)
	assert.Len(t, statuses, 2)

	stillDraft, err := repo.Layout.FindDraft(ctx, "bistro")
	require.NoError(t, err)
	require.NotNil(t, stillDraft)
	assert.Equal(t, draft.ID, stillDraft.ID)

	missing, err := repo.Layout.FindByID(ctx, "bistro", broken.ID)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestActivateKeepsTenantsApart(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	a := newLayout(t, "north", baseTime, "t1")
	b := newLayout(t, "south", baseTime, "t1", "t2")
	_, err := repo.Layout.Activate(ctx, a, freeStatuses(a, "t1"))
	require.NoError(t, err)
	_, err = repo.Layout.Activate(ctx, b, freeStatuses(b, "t1", "t2"))
	require.NoError(t, err)

	north, err := repo.Layout.FindActive(ctx, "north")
	require.NoError(t, err)
	assert.Equal(t, a.ID, north.ID)

	statuses, err := repo.TableStatus.FindByTenant(ctx, "north")
	require.NoError(t, err)
	assert.Len(t, statuses, 1)
}

func TestSaveDraftKeepsSingleRow(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	first := newLayout(t, "bistro", baseTime, "t1")
	saved, err := repo.Layout.SaveDraft(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, first.ID, saved.ID)
	assert.Equal(t, entity.LayoutStatusDraft, saved.Status)

	second := newLayout(t, "bistro", baseTime.Add(time.Minute), "t1", "t2")
	saved, err = repo.Layout.SaveDraft(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, first.ID, saved.ID, "existing draft keeps its id")
	assert.True(t, first.CreatedAt.Equal(saved.CreatedAt))
	assert.True(t, second.UpdatedAt.Equal(saved.UpdatedAt))

	count, err := repo.Layout.CountByTenant(ctx, "bistro")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	decoded, err := saved.Layout()
	require.NoError(t, err)
	assert.Len(t, decoded.Tables, 2)
}

func TestDeleteDraft(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	removed, err := repo.Layout.DeleteDraft(ctx, "bistro")
	require.NoError(t, err)
	assert.False(t, removed)

	_, err = repo.Layout.SaveDraft(ctx, newLayout(t, "bistro", baseTime, "t1"))
	require.NoError(t, err)

	removed, err = repo.Layout.DeleteDraft(ctx, "bistro")
	require.NoError(t, err)
	assert.True(t, removed)
}

func TestFindByTenantNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	var ids []uuid.UUID
	for i := 0; i < 3; i++ {
		l := newLayout(t, "bistro", baseTime.Add(time.Duration(i)*time.Hour), "t1")
		_, err := repo.Layout.Activate(ctx, l, freeStatuses(l, "t1"))
		require.NoError(t, err)
		ids = append(ids, l.ID)
	}

	page, err := repo.Layout.FindByTenant(ctx, "bistro", 2, 0)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, ids[2], page[0].ID)
	assert.Equal(t, ids[1], page[1].ID)

	page, err = repo.Layout.FindByTenant(ctx, "bistro", 2, 2)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, ids[0], page[0].ID)

	count, err := repo.Layout.CountByTenant(ctx, "bistro")
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestUpdateTableStatus(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	l := newLayout(t, "bistro", baseTime, "t1")
	_, err := repo.Layout.Activate(ctx, l, freeStatuses(l, "t1"))
	require.NoError(t, err)

	at := baseTime.Add(time.Hour)
	require.NoError(t, repo.TableStatus.UpdateStatus(ctx, "bistro", "t1", floorplan.StatusSeated, at))

	st, err := repo.TableStatus.FindByTableID(ctx, "bistro", "t1")
	require.NoError(t, err)
	require.NotNil(t, st)
	assert.Equal(t, floorplan.StatusSeated, st.Status)
	assert.True(t, at.Equal(st.UpdatedAt))

	err = repo.TableStatus.UpdateStatus(ctx, "bistro", "nope", floorplan.StatusDirty, at)
	assert.ErrorIs(t, err, ErrNotFound)

	missing, err := repo.TableStatus.FindByTableID(ctx, "other", "t1")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
