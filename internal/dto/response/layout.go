package response

import (
	"encoding/json"
	"time"

	"floor-layout/internal/data/entity"
	"floor-layout/internal/floorplan"
)

// LayoutSavedResponse answers activate and save-draft.
type LayoutSavedResponse struct {
	Success    bool      `json:"success"`
	Message    string    `json:"message"`
	LayoutID   string    `json:"layoutId"`
	TableCount int       `json:"tableCount"`
	ZoneCount  int       `json:"zoneCount"`
	Timestamp  time.Time `json:"timestamp"`
}

type LayoutResponse struct {
	ID        string            `json:"id"`
	TenantID  string            `json:"tenantId"`
	Status    string            `json:"status"`
	Tables    []floorplan.Table `json:"tables"`
	Zones     []floorplan.Zone  `json:"zones"`
	Metadata  json.RawMessage   `json:"metadata,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// LayoutSummaryResponse is a history entry without the table geometry.
type LayoutSummaryResponse struct {
	ID         string    `json:"id"`
	Status     string    `json:"status"`
	TableCount int       `json:"tableCount"`
	ZoneCount  int       `json:"zoneCount"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type ValidationResponse struct {
	Valid  bool              `json:"valid"`
	Issues []floorplan.Issue `json:"issues"`
}

type TableStatusResponse struct {
	TableID   string    `json:"tableId"`
	Status    string    `json:"status"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type EditorConfigResponse struct {
	GridSize         float64  `json:"gridSize"`
	SnapToGrid       bool     `json:"snapToGrid"`
	CanvasWidth      float64  `json:"canvasWidth"`
	CanvasHeight     float64  `json:"canvasHeight"`
	MinTableSize     float64  `json:"minTableSize"`
	DefaultTableSize float64  `json:"defaultTableSize"`
	HandleSize       float64  `json:"handleSize"`
	MinCapacity      int      `json:"minCapacity"`
	MaxCapacity      int      `json:"maxCapacity"`
	Shapes           []string `json:"shapes"`
	Statuses         []string `json:"statuses"`
}

// Helper converters
func LayoutToResponse(layout *entity.FloorLayout) (*LayoutResponse, error) {
	data, err := layout.Layout()
	if err != nil {
		return nil, err
	}
	if data.Tables == nil {
		data.Tables = []floorplan.Table{}
	}
	if data.Zones == nil {
		data.Zones = []floorplan.Zone{}
	}

	return &LayoutResponse{
		ID:        layout.ID.String(),
		TenantID:  layout.TenantID,
		Status:    string(layout.Status),
		Tables:    data.Tables,
		Zones:     data.Zones,
		Metadata:  layout.Metadata,
		CreatedAt: layout.CreatedAt,
		UpdatedAt: layout.UpdatedAt,
	}, nil
}

func LayoutToSummary(layout *entity.FloorLayout) (LayoutSummaryResponse, error) {
	data, err := layout.Layout()
	if err != nil {
		return LayoutSummaryResponse{}, err
	}

	return LayoutSummaryResponse{
		ID:         layout.ID.String(),
		Status:     string(layout.Status),
		TableCount: len(data.Tables),
		ZoneCount:  len(data.Zones),
		CreatedAt:  layout.CreatedAt,
		UpdatedAt:  layout.UpdatedAt,
	}, nil
}

func TableStatusToResponse(st *entity.TableStatus) TableStatusResponse {
	return TableStatusResponse{
		TableID:   st.TableID,
		Status:    string(st.Status),
		UpdatedAt: st.UpdatedAt,
	}
}
