package entity

import (
	"encoding/json"
	"fmt"

	"floor-layout/internal/floorplan"
)

type LayoutStatus string

const (
	LayoutStatusDraft    LayoutStatus = "DRAFT"
	LayoutStatusActive   LayoutStatus = "ACTIVE"
	LayoutStatusArchived LayoutStatus = "ARCHIVED"
)

// FloorLayout is one persisted version of a tenant's floor plan. Data holds the
// JSON encoded floorplan.Layout, Metadata the editor's free-form metadata.
type FloorLayout struct {
	Base
	TenantID string          `db:"tenant_id"`
	Status   LayoutStatus    `db:"status"`
	Data     json.RawMessage `db:"data"`
	Metadata json.RawMessage `db:"metadata"`
}

// Layout decodes Data.
func (l *FloorLayout) Layout() (floorplan.Layout, error) {
	var layout floorplan.Layout
	if len(l.Data) == 0 {
		return layout, nil
	}
	if err := json.Unmarshal(l.Data, &layout); err != nil {
		return layout, fmt.Errorf("decode layout %s data: %w", l.ID, err)
	}
	return layout, nil
}

// SetLayout encodes layout into Data. Nil slices are stored as empty arrays.
func (l *FloorLayout) SetLayout(layout floorplan.Layout) error {
	if layout.Tables == nil {
		layout.Tables = []floorplan.Table{}
	}
	if layout.Zones == nil {
		layout.Zones = []floorplan.Zone{}
	}
	data, err := json.Marshal(layout)
	if err != nil {
		return fmt.Errorf("encode layout data: %w", err)
	}
	l.Data = data
	return nil
}
