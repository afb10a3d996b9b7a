package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"floor-layout/internal/data/cache"
	"floor-layout/internal/data/repository"
	"floor-layout/internal/dto/request"
	"floor-layout/internal/floorplan"
	"floor-layout/pkg/database"
	"floor-layout/pkg/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testEnv struct {
	repo     *repository.Repository
	layouts  *layoutService
	statuses *tableStatusService
	redis    *miniredis.Miniredis
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := database.OpenSQLite(database.MemoryDSN)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.MigrateSQLite(context.Background(), db))

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	log := zap.NewNop()
	repo := repository.NewSQLiteRepository(db, log)
	layoutCache := cache.NewRedisLayoutCache(client, time.Minute, log)

	clock := time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)
	tick := func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}

	layouts := NewLayoutService(repo, layoutCache, utils.FloorConfig{GridSize: 8, SnapToGrid: true}, log).(*layoutService)
	layouts.now = tick
	statuses := NewTableStatusService(repo, log).(*tableStatusService)
	statuses.now = tick

	return &testEnv{repo: repo, layouts: layouts, statuses: statuses, redis: mr}
}

func tableReq(id, label string, x, y, w, h float64) request.TableRequest {
	return request.TableRequest{
		ID: id, Label: label, X: &x, Y: &y, W: w, H: h,
		Shape: "round", Capacity: 4, Seats: 4,
	}
}

func layoutReq(tables ...request.TableRequest) *request.LayoutRequest {
	return &request.LayoutRequest{
		Tables:   tables,
		Zones:    []request.ZoneRequest{},
		Metadata: request.LayoutMetadata{Version: 1, TableCount: 99},
	}
}

func requireLayoutError(t *testing.T, err error, code string) *LayoutError {
	t.Helper()
	var lerr *LayoutError
	require.True(t, errors.As(err, &lerr), "want LayoutError, got %v", err)
	assert.Equal(t, code, lerr.Code)
	return lerr
}

func TestActivateSingleTable(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	res, err := env.layouts.Activate(ctx, "default", layoutReq(tableReq("t1", "", 0, 0, 100, 100)))
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, 1, res.TableCount)
	assert.Equal(t, 0, res.ZoneCount)
	assert.NotEmpty(t, res.LayoutID)

	active, err := env.layouts.GetActive(ctx, "default")
	require.NoError(t, err)
	assert.Equal(t, res.LayoutID, active.ID)
	require.Len(t, active.Tables, 1)
	assert.Equal(t, floorplan.StatusFree, active.Tables[0].Status)

	var meta map[string]any
	require.NoError(t, json.Unmarshal(active.Metadata, &meta))
	assert.EqualValues(t, 1, meta["tableCount"], "counts come from the payload, not the client")
	assert.NotEmpty(t, meta["activatedAt"])

	statuses, err := env.statuses.List(ctx, "default")
	require.NoError(t, err)
	require.Len(t, statuses, 1)
	assert.Equal(t, "t1", statuses[0].TableID)
	assert.Equal(t, "FREE", statuses[0].Status)
}

func TestActivateWithoutTables(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	_, err := env.layouts.Activate(ctx, "default", layoutReq())
	requireLayoutError(t, err, CodeNoTables)

	_, err = env.layouts.GetActive(ctx, "default")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestActivateIdenticalBoxesOverlap(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	_, err := env.layouts.Activate(ctx, "default", layoutReq(
		tableReq("a", "Window", 0, 0, 10, 10),
		tableReq("b", "Booth", 0, 0, 10, 10),
	))

	lerr := requireLayoutError(t, err, CodeTablesOverlap)
	assert.Contains(t, lerr.Message, "Window")
	assert.Contains(t, lerr.Message, "Booth")

	count, err := env.repo.Layout.CountByTenant(ctx, "default")
	require.NoError(t, err)
	assert.Zero(t, count, "rejected payloads never reach storage")
}

func TestActivateDuplicateIDs(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	_, err := env.layouts.Activate(ctx, "default", layoutReq(
		tableReq("a", "A", 0, 0, 10, 10),
		tableReq("a", "B", 50, 50, 10, 10),
	))
	requireLayoutError(t, err, CodeDuplicateTable)
}

func TestActivateArchivesPreviousAndRefreshesCache(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	first, err := env.layouts.Activate(ctx, "bistro", layoutReq(tableReq("t1", "", 0, 0, 80, 80)))
	require.NoError(t, err)

	_, err = env.layouts.GetActive(ctx, "bistro")
	require.NoError(t, err)
	assert.True(t, env.redis.Exists("floor:layout:active:bistro"))

	second, err := env.layouts.Activate(ctx, "bistro", layoutReq(
		tableReq("t1", "", 0, 0, 80, 80),
		tableReq("t2", "", 100, 0, 80, 80),
	))
	require.NoError(t, err)
	assert.False(t, env.redis.Exists("floor:layout:active:bistro"))

	active, err := env.layouts.GetActive(ctx, "bistro")
	require.NoError(t, err)
	assert.Equal(t, second.LayoutID, active.ID)
	assert.Len(t, active.Tables, 2)

	history, err := env.layouts.History(ctx, "bistro", &request.PaginatedRequest{Page: 1, PerPage: 10})
	require.NoError(t, err)
	require.Len(t, history.Data, 2)
	assert.Equal(t, second.LayoutID, history.Data[0].ID)
	assert.Equal(t, "ACTIVE", history.Data[0].Status)
	assert.Equal(t, first.LayoutID, history.Data[1].ID)
	assert.Equal(t, "ARCHIVED", history.Data[1].Status)
	assert.Equal(t, int64(2), history.Pagination.Total)

	statuses, err := env.statuses.List(ctx, "bistro")
	require.NoError(t, err)
	assert.Len(t, statuses, 2)
}

func TestDraftLifecycle(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	_, err := env.layouts.GetDraft(ctx, "bistro")
	assert.ErrorIs(t, err, ErrNotFound)

	first, err := env.layouts.SaveDraft(ctx, "bistro", layoutReq(tableReq("t1", "", 0, 0, 80, 80)))
	require.NoError(t, err)
	assert.Equal(t, "Draft saved successfully", first.Message)

	second, err := env.layouts.SaveDraft(ctx, "bistro", layoutReq(
		tableReq("t1", "", 0, 0, 80, 80),
		tableReq("t2", "", 200, 0, 80, 80),
	))
	require.NoError(t, err)
	assert.Equal(t, first.LayoutID, second.LayoutID)

	draft, err := env.layouts.GetDraft(ctx, "bistro")
	require.NoError(t, err)
	assert.Equal(t, "DRAFT", draft.Status)
	assert.Len(t, draft.Tables, 2)

	_, err = env.layouts.Activate(ctx, "bistro", layoutReq(tableReq("t1", "", 0, 0, 80, 80)))
	require.NoError(t, err)

	_, err = env.layouts.GetDraft(ctx, "bistro")
	assert.ErrorIs(t, err, ErrNotFound, "activation drops the draft")
}

func TestSaveDraftIsValidated(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	_, err := env.layouts.SaveDraft(ctx, "bistro", layoutReq(
		tableReq("a", "A", 0, 0, 50, 50),
		tableReq("b", "B", 25, 25, 50, 50),
	))
	requireLayoutError(t, err, CodeTablesOverlap)
}

func TestDiscardDraft(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	assert.ErrorIs(t, env.layouts.DiscardDraft(ctx, "bistro"), ErrNotFound)

	_, err := env.layouts.SaveDraft(ctx, "bistro", layoutReq(tableReq("t1", "", 0, 0, 80, 80)))
	require.NoError(t, err)
	require.NoError(t, env.layouts.DiscardDraft(ctx, "bistro"))

	_, err = env.layouts.GetDraft(ctx, "bistro")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestValidateIsAdvisory(t *testing.T) {
	env := newTestEnv(t)

	res := env.layouts.Validate(context.Background(), layoutReq(
		tableReq("a", "A", 0, 0, 50, 50),
		tableReq("b", "B", 25, 25, 50, 50),
		tableReq("c", "C", 30, 30, 50, 50),
	))
	assert.False(t, res.Valid)
	assert.Len(t, res.Issues, 3)

	res = env.layouts.Validate(context.Background(), layoutReq(tableReq("a", "A", 0, 0, 50, 50)))
	assert.True(t, res.Valid)
	assert.NotNil(t, res.Issues)
	assert.Empty(t, res.Issues)
}

func TestEditorConfigFillsDefaults(t *testing.T) {
	env := newTestEnv(t)

	cfg := env.layouts.EditorConfig()
	assert.Equal(t, 8.0, cfg.GridSize)
	assert.Equal(t, 32.0, cfg.MinTableSize)
	assert.Equal(t, floorplan.DefaultCanvasWidth, cfg.CanvasWidth)
	assert.Equal(t, 20, cfg.MaxCapacity)
	assert.Equal(t, []string{"round", "square", "rect"}, cfg.Shapes)
}

func TestUpdateTableStatus(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	_, err := env.layouts.Activate(ctx, "bistro", layoutReq(tableReq("t1", "", 0, 0, 80, 80)))
	require.NoError(t, err)

	res, err := env.statuses.UpdateStatus(ctx, "bistro", "t1", &request.UpdateTableStatusRequest{Status: "occupied"})
	require.NoError(t, err)
	assert.Equal(t, "SEATED", res.Status)

	statuses, err := env.statuses.List(ctx, "bistro")
	require.NoError(t, err)
	require.Len(t, statuses, 1)
	assert.Equal(t, "SEATED", statuses[0].Status)

	_, err = env.statuses.UpdateStatus(ctx, "bistro", "t1", &request.UpdateTableStatusRequest{Status: "closed"})
	requireLayoutError(t, err, CodeInvalidStatus)

	_, err = env.statuses.UpdateStatus(ctx, "bistro", "t9", &request.UpdateTableStatusRequest{Status: "DIRTY"})
	assert.ErrorIs(t, err, ErrNotFound)
}
