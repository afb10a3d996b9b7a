package entity

import (
	"encoding/json"
	"time"

	"floor-layout/internal/floorplan"

	"github.com/google/uuid"
)

// TableStatus is the live state of one table of the tenant's active layout.
type TableStatus struct {
	ID        uuid.UUID             `db:"id"`
	TableID   string                `db:"table_id"`
	TenantID  string                `db:"tenant_id"`
	Status    floorplan.TableStatus `db:"status"`
	UpdatedAt time.Time             `db:"updated_at"`
	Metadata  json.RawMessage       `db:"metadata"`
}
