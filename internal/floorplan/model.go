package floorplan

import "strings"

type Shape string

const (
	ShapeRound  Shape = "round"
	ShapeSquare Shape = "square"
	ShapeRect   Shape = "rect"
)

func (s Shape) Valid() bool {
	switch s {
	case ShapeRound, ShapeSquare, ShapeRect:
		return true
	}
	return false
}

type TableStatus string

const (
	StatusFree     TableStatus = "FREE"
	StatusSeated   TableStatus = "SEATED"
	StatusReserved TableStatus = "RESERVED"
	StatusDirty    TableStatus = "DIRTY"
)

var statusAliases = map[string]TableStatus{
	"available": StatusFree,
	"occupied":  StatusSeated,
	"reserved":  StatusReserved,
	"cleaning":  StatusDirty,
}

// ParseTableStatus accepts the canonical names and the editor's lowercase aliases.
func ParseTableStatus(s string) (TableStatus, bool) {
	switch st := TableStatus(strings.ToUpper(strings.TrimSpace(s))); st {
	case StatusFree, StatusSeated, StatusReserved, StatusDirty:
		return st, true
	}
	st, ok := statusAliases[strings.ToLower(strings.TrimSpace(s))]
	return st, ok
}

const (
	MinCapacity = 1
	MaxCapacity = 20
)

type Table struct {
	ID       string         `json:"id"`
	X        float64        `json:"x"`
	Y        float64        `json:"y"`
	W        float64        `json:"w"`
	H        float64        `json:"h"`
	Shape    Shape          `json:"shape"`
	Capacity int            `json:"capacity"`
	Seats    int            `json:"seats"`
	Label    string         `json:"label,omitempty"`
	ZoneID   string         `json:"zoneId,omitempty"`
	Status   TableStatus    `json:"status,omitempty"`
	ChildIDs []string       `json:"childIds,omitempty"`
	ParentID string         `json:"parentId,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

func (t Table) Rect() Rect {
	return Rect{X: t.X, Y: t.Y, W: t.W, H: t.H}
}

// DisplayName is the label when set, the id otherwise.
func (t Table) DisplayName() string {
	if t.Label != "" {
		return t.Label
	}
	return t.ID
}

type Zone struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Color   string `json:"color"`
	Visible bool   `json:"visible"`
}

type FixtureKind string

const (
	FixtureWall      FixtureKind = "wall"
	FixtureBar       FixtureKind = "bar"
	FixtureDoor      FixtureKind = "door"
	FixtureWindow    FixtureKind = "window"
	FixtureHostStand FixtureKind = "host_stand"
	FixtureKitchen   FixtureKind = "kitchen"
	FixtureRestroom  FixtureKind = "restroom"
	FixturePlant     FixtureKind = "plant"
)

// Fixture is a non-seating element of the floor. Fixtures never take part in overlap checks.
type Fixture struct {
	ID       string      `json:"id"`
	Kind     FixtureKind `json:"kind"`
	X        float64     `json:"x"`
	Y        float64     `json:"y"`
	W        float64     `json:"w"`
	H        float64     `json:"h"`
	Rotation float64     `json:"rotation"`
	Label    string      `json:"label,omitempty"`
}

func (f Fixture) Rect() Rect {
	return Rect{X: f.X, Y: f.Y, W: f.W, H: f.H}
}

// Chair is derived from its table and never edited directly.
type Chair struct {
	ID      string  `json:"id"`
	TableID string  `json:"tableId"`
	Index   int     `json:"index"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
}

// Layout is the persisted part of an editing session.
type Layout struct {
	Tables []Table `json:"tables"`
	Zones  []Zone  `json:"zones"`
}
