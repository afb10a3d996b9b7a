package request

// LayoutRequest is the body of activate, save-draft and validate.
type LayoutRequest struct {
	Tables   []TableRequest `json:"tables" validate:"dive"`
	Zones    []ZoneRequest  `json:"zones" validate:"dive"`
	Metadata LayoutMetadata `json:"metadata"`
}

type TableRequest struct {
	ID       string         `json:"id" validate:"required,max=64"`
	X        *float64       `json:"x" validate:"required"`
	Y        *float64       `json:"y" validate:"required"`
	W        float64        `json:"w" validate:"gt=0"`
	H        float64        `json:"h" validate:"gt=0"`
	Shape    string         `json:"shape" validate:"required,oneof=round square rect"`
	Capacity int            `json:"capacity" validate:"min=1,max=20"`
	Seats    int            `json:"seats" validate:"min=1,max=20"`
	Label    string         `json:"label,omitempty" validate:"max=64"`
	ZoneID   string         `json:"zoneId,omitempty"`
	ChildIDs []string       `json:"childIds,omitempty"`
	ParentID string         `json:"parentId,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

type ZoneRequest struct {
	ID      string `json:"id" validate:"required,max=64"`
	Name    string `json:"name" validate:"required,max=64"`
	Color   string `json:"color" validate:"max=32"`
	Visible bool   `json:"visible"`
}

// LayoutMetadata is stored with the layout. The counts are recomputed server side.
type LayoutMetadata struct {
	Version     int    `json:"version" validate:"gte=0"`
	ActivatedAt string `json:"activatedAt,omitempty" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	ActivatedBy string `json:"activatedBy,omitempty" validate:"max=128"`
	TableCount  int    `json:"tableCount"`
	ZoneCount   int    `json:"zoneCount"`
}

type UpdateTableStatusRequest struct {
	Status string `json:"status" validate:"required"`
}
