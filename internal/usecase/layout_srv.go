package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"floor-layout/internal/data/cache"
	"floor-layout/internal/data/entity"
	"floor-layout/internal/data/repository"
	"floor-layout/internal/dto/request"
	"floor-layout/internal/dto/response"
	"floor-layout/internal/floorplan"
	"floor-layout/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type LayoutService interface {
	Activate(ctx context.Context, tenantID string, req *request.LayoutRequest) (*response.LayoutSavedResponse, error)
	SaveDraft(ctx context.Context, tenantID string, req *request.LayoutRequest) (*response.LayoutSavedResponse, error)
	DiscardDraft(ctx context.Context, tenantID string) error

	GetActive(ctx context.Context, tenantID string) (*response.LayoutResponse, error)
	GetDraft(ctx context.Context, tenantID string) (*response.LayoutResponse, error)
	History(ctx context.Context, tenantID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.LayoutSummaryResponse], error)

	Validate(ctx context.Context, req *request.LayoutRequest) *response.ValidationResponse
	EditorConfig() *response.EditorConfigResponse
}

type layoutService struct {
	repo  *repository.Repository
	cache cache.LayoutCache
	floor utils.FloorConfig
	log   *zap.Logger
	now   func() time.Time
}

func NewLayoutService(repo *repository.Repository, layoutCache cache.LayoutCache, floor utils.FloorConfig, log *zap.Logger) LayoutService {
	return &layoutService{
		repo:  repo,
		cache: layoutCache,
		floor: floor,
		log:   log.With(zap.String("service", "layout")),
		now:   time.Now,
	}
}

func (s *layoutService) Activate(ctx context.Context, tenantID string, req *request.LayoutRequest) (*response.LayoutSavedResponse, error) {
	layout := layoutFromRequest(req)
	if lerr := checkLayout(layout.Tables); lerr != nil {
		s.log.Warn("Activation rejected",
			zap.String("tenant_id", tenantID),
			zap.String("code", lerr.Code),
			zap.String("reason", lerr.Message),
		)
		return nil, lerr
	}

	now := s.now().UTC()
	row, err := newLayoutRow(tenantID, entity.LayoutStatusActive, layout, req.Metadata, now)
	if err != nil {
		return nil, err
	}

	statuses := make([]*entity.TableStatus, 0, len(layout.Tables))
	for _, t := range layout.Tables {
		meta, err := json.Marshal(map[string]any{"label": t.DisplayName(), "capacity": t.Capacity})
		if err != nil {
			return nil, fmt.Errorf("encode status metadata: %w", err)
		}
		statuses = append(statuses, &entity.TableStatus{
			ID:        uuid.New(),
			TableID:   t.ID,
			TenantID:  tenantID,
			Status:    floorplan.StatusFree,
			UpdatedAt: now,
			Metadata:  meta,
		})
	}

	result, err := s.repo.Layout.Activate(ctx, row, statuses)
	if err != nil {
		s.log.Error("Failed to activate layout",
			zap.Error(err),
			zap.String("tenant_id", tenantID),
			zap.String("layout_id", row.ID.String()),
		)
		return nil, fmt.Errorf("activate layout: %w", err)
	}

	if err := s.cache.Invalidate(ctx, tenantID); err != nil {
		s.log.Warn("Failed to invalidate active layout cache",
			zap.Error(err),
			zap.String("tenant_id", tenantID),
		)
	}

	s.log.Info("Layout activated",
		zap.String("tenant_id", tenantID),
		zap.String("layout_id", row.ID.String()),
		zap.Int("tables", len(layout.Tables)),
		zap.Int("zones", len(layout.Zones)),
		zap.Int64("archived", result.Archived),
		zap.Int64("drafts_removed", result.DraftsRemoved),
	)

	return &response.LayoutSavedResponse{
		Success:    true,
		Message:    "Layout activated successfully",
		LayoutID:   row.ID.String(),
		TableCount: len(layout.Tables),
		ZoneCount:  len(layout.Zones),
		Timestamp:  now,
	}, nil
}

func (s *layoutService) SaveDraft(ctx context.Context, tenantID string, req *request.LayoutRequest) (*response.LayoutSavedResponse, error) {
	layout := layoutFromRequest(req)
	if lerr := checkLayout(layout.Tables); lerr != nil {
		s.log.Warn("Draft rejected",
			zap.String("tenant_id", tenantID),
			zap.String("code", lerr.Code),
			zap.String("reason", lerr.Message),
		)
		return nil, lerr
	}

	now := s.now().UTC()
	row, err := newLayoutRow(tenantID, entity.LayoutStatusDraft, layout, req.Metadata, now)
	if err != nil {
		return nil, err
	}

	saved, err := s.repo.Layout.SaveDraft(ctx, row)
	if err != nil {
		s.log.Error("Failed to save draft",
			zap.Error(err),
			zap.String("tenant_id", tenantID),
		)
		return nil, fmt.Errorf("save draft: %w", err)
	}

	s.log.Info("Draft saved",
		zap.String("tenant_id", tenantID),
		zap.String("layout_id", saved.ID.String()),
		zap.Int("tables", len(layout.Tables)),
	)

	return &response.LayoutSavedResponse{
		Success:    true,
		Message:    "Draft saved successfully",
		LayoutID:   saved.ID.String(),
		TableCount: len(layout.Tables),
		ZoneCount:  len(layout.Zones),
		Timestamp:  now,
	}, nil
}

func (s *layoutService) DiscardDraft(ctx context.Context, tenantID string) error {
	removed, err := s.repo.Layout.DeleteDraft(ctx, tenantID)
	if err != nil {
		return fmt.Errorf("discard draft: %w", err)
	}
	if !removed {
		return fmt.Errorf("draft for tenant %s: %w", tenantID, ErrNotFound)
	}

	s.log.Info("Draft discarded", zap.String("tenant_id", tenantID))
	return nil
}

func (s *layoutService) GetActive(ctx context.Context, tenantID string) (*response.LayoutResponse, error) {
	cached, err := s.cache.Get(ctx, tenantID)
	if err != nil {
		s.log.Warn("Active layout cache read failed",
			zap.Error(err),
			zap.String("tenant_id", tenantID),
		)
	}
	if cached != nil {
		return response.LayoutToResponse(cached)
	}

	layout, err := s.repo.Layout.FindActive(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("get active layout: %w", err)
	}
	if layout == nil {
		return nil, fmt.Errorf("active layout for tenant %s: %w", tenantID, ErrNotFound)
	}

	if err := s.cache.Set(ctx, layout); err != nil {
		s.log.Warn("Failed to cache active layout",
			zap.Error(err),
			zap.String("tenant_id", tenantID),
		)
	}

	return response.LayoutToResponse(layout)
}

func (s *layoutService) GetDraft(ctx context.Context, tenantID string) (*response.LayoutResponse, error) {
	layout, err := s.repo.Layout.FindDraft(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("get draft: %w", err)
	}
	if layout == nil {
		return nil, fmt.Errorf("draft for tenant %s: %w", tenantID, ErrNotFound)
	}
	return response.LayoutToResponse(layout)
}

func (s *layoutService) History(ctx context.Context, tenantID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.LayoutSummaryResponse], error) {
	layouts, err := s.repo.Layout.FindByTenant(ctx, tenantID, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("get layout history: %w", err)
	}

	total, err := s.repo.Layout.CountByTenant(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("count layout history: %w", err)
	}

	summaries := make([]response.LayoutSummaryResponse, len(layouts))
	for i, l := range layouts {
		if summaries[i], err = response.LayoutToSummary(l); err != nil {
			return nil, err
		}
	}

	s.log.Info("Layout history retrieved",
		zap.String("tenant_id", tenantID),
		zap.Int("count", len(layouts)),
		zap.Int64("total", total),
	)

	return response.NewPaginatedResponse(summaries, req.Page, req.Limit(), total), nil
}

func (s *layoutService) Validate(ctx context.Context, req *request.LayoutRequest) *response.ValidationResponse {
	issues := floorplan.Validate(layoutFromRequest(req).Tables)
	if issues == nil {
		issues = []floorplan.Issue{}
	}
	return &response.ValidationResponse{
		Valid:  len(issues) == 0,
		Issues: issues,
	}
}

func (s *layoutService) EditorConfig() *response.EditorConfigResponse {
	opts := floorplan.Options{
		GridSize:     s.floor.GridSize,
		SnapToGrid:   s.floor.SnapToGrid,
		CanvasWidth:  s.floor.CanvasWidth,
		CanvasHeight: s.floor.CanvasHeight,
	}.WithDefaults()

	return &response.EditorConfigResponse{
		GridSize:         opts.GridSize,
		SnapToGrid:       opts.SnapToGrid,
		CanvasWidth:      opts.CanvasWidth,
		CanvasHeight:     opts.CanvasHeight,
		MinTableSize:     opts.MinTableSize(),
		DefaultTableSize: floorplan.DefaultTableSize,
		HandleSize:       floorplan.DefaultHandleSize,
		MinCapacity:      floorplan.MinCapacity,
		MaxCapacity:      floorplan.MaxCapacity,
		Shapes: []string{
			string(floorplan.ShapeRound),
			string(floorplan.ShapeSquare),
			string(floorplan.ShapeRect),
		},
		Statuses: []string{
			string(floorplan.StatusFree),
			string(floorplan.StatusSeated),
			string(floorplan.StatusReserved),
			string(floorplan.StatusDirty),
		},
	}
}

func layoutFromRequest(req *request.LayoutRequest) floorplan.Layout {
	layout := floorplan.Layout{
		Tables: make([]floorplan.Table, 0, len(req.Tables)),
		Zones:  make([]floorplan.Zone, 0, len(req.Zones)),
	}

	for _, t := range req.Tables {
		var x, y float64
		if t.X != nil {
			x = *t.X
		}
		if t.Y != nil {
			y = *t.Y
		}
		layout.Tables = append(layout.Tables, floorplan.Table{
			ID:       t.ID,
			X:        x,
			Y:        y,
			W:        t.W,
			H:        t.H,
			Shape:    floorplan.Shape(t.Shape),
			Capacity: t.Capacity,
			Seats:    t.Seats,
			Label:    t.Label,
			ZoneID:   t.ZoneID,
			Status:   floorplan.StatusFree,
			ChildIDs: t.ChildIDs,
			ParentID: t.ParentID,
			Metadata: t.Metadata,
		})
	}

	for _, z := range req.Zones {
		layout.Zones = append(layout.Zones, floorplan.Zone{
			ID:      z.ID,
			Name:    z.Name,
			Color:   z.Color,
			Visible: z.Visible,
		})
	}

	return layout
}

func newLayoutRow(tenantID string, status entity.LayoutStatus, layout floorplan.Layout, meta request.LayoutMetadata, now time.Time) (*entity.FloorLayout, error) {
	row := &entity.FloorLayout{
		Base:     entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		TenantID: tenantID,
		Status:   status,
	}
	if err := row.SetLayout(layout); err != nil {
		return nil, err
	}

	meta.TableCount = len(layout.Tables)
	meta.ZoneCount = len(layout.Zones)
	if status == entity.LayoutStatusActive && meta.ActivatedAt == "" {
		meta.ActivatedAt = now.Format(time.RFC3339)
	}

	data, err := json.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("encode layout metadata: %w", err)
	}
	row.Metadata = data
	return row, nil
}
