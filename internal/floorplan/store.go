package floorplan

import (
	"fmt"
	"math"
	"slices"
)

const (
	DefaultCanvasWidth  = 1200.0
	DefaultCanvasHeight = 800.0
	DefaultTableSize    = 80.0
	DefaultCapacity     = 4
)

type Options struct {
	GridSize     float64
	SnapToGrid   bool
	CanvasWidth  float64
	CanvasHeight float64
}

func DefaultOptions() Options {
	return Options{
		GridSize:     DefaultGridSize,
		SnapToGrid:   true,
		CanvasWidth:  DefaultCanvasWidth,
		CanvasHeight: DefaultCanvasHeight,
	}
}

func (o Options) WithDefaults() Options {
	if o.GridSize <= 0 {
		o.GridSize = DefaultGridSize
	}
	if o.CanvasWidth <= 0 {
		o.CanvasWidth = DefaultCanvasWidth
	}
	if o.CanvasHeight <= 0 {
		o.CanvasHeight = DefaultCanvasHeight
	}
	return o
}

// MinTableSize is the smallest width or height a resize may produce.
func (o Options) MinTableSize() float64 {
	return 4 * o.GridSize
}

type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// TablePatch carries the fields to merge into a table. Nil fields are left alone.
type TablePatch struct {
	X        *float64
	Y        *float64
	W        *float64
	H        *float64
	Shape    *Shape
	Capacity *int
	Seats    *int
	Label    *string
	ZoneID   *string
	Status   *TableStatus
}

type ZonePatch struct {
	Name    *string
	Color   *string
	Visible *bool
}

type FixturePatch struct {
	X        *float64
	Y        *float64
	W        *float64
	H        *float64
	Rotation *float64
	Label    *string
}

// Store is the authoritative state of one editing session. It is not safe for
// concurrent use; an editor drives it from a single event loop.
type Store struct {
	opts     Options
	tables   []Table
	zones    []Zone
	fixtures []Fixture
	chairs   map[string][]Chair
	selected string
	seq      int
}

func NewStore(opts Options) *Store {
	return &Store{
		opts:   opts.WithDefaults(),
		chairs: make(map[string][]Chair),
	}
}

func (s *Store) Options() Options { return s.opts }

// Load replaces the session content, e.g. with a saved draft.
func (s *Store) Load(layout Layout) {
	s.tables = slices.Clone(layout.Tables)
	s.zones = slices.Clone(layout.Zones)
	s.chairs = make(map[string][]Chair, len(s.tables))
	s.selected = ""
	for _, t := range s.tables {
		s.chairs[t.ID] = GenerateChairs(t)
	}
}

// Snapshot returns a copy of the persisted part of the session.
func (s *Store) Snapshot() Layout {
	return Layout{
		Tables: slices.Clone(s.tables),
		Zones:  slices.Clone(s.zones),
	}
}

// ==================== TABLES ====================

func (s *Store) Tables() []Table { return slices.Clone(s.tables) }

func (s *Store) Table(id string) (Table, bool) {
	i := s.tableIndex(id)
	if i < 0 {
		return Table{}, false
	}
	return s.tables[i], true
}

func (s *Store) Chairs(tableID string) []Chair {
	return slices.Clone(s.chairs[tableID])
}

// AddTable creates a round four-top at (x, y) and returns it.
func (s *Store) AddTable(x, y float64) Table {
	id, n := s.nextID("table")
	t := Table{
		ID:       id,
		W:        DefaultTableSize,
		H:        DefaultTableSize,
		Shape:    ShapeRound,
		Capacity: DefaultCapacity,
		Seats:    DefaultCapacity,
		Label:    fmt.Sprintf("T%d", n),
		Status:   StatusFree,
	}
	t.X, t.Y = s.place(x, y, t.W, t.H)
	s.tables = append(s.tables, t)
	s.chairs[t.ID] = GenerateChairs(t)
	return t
}

// UpdateTable shallow-merges p into the table. Chairs are regenerated when
// anything they depend on changed.
func (s *Store) UpdateTable(id string, p TablePatch) bool {
	i := s.tableIndex(id)
	if i < 0 {
		return false
	}
	t := s.tables[i]
	before := t

	if p.W != nil {
		t.W = *p.W
	}
	if p.H != nil {
		t.H = *p.H
	}
	if p.X != nil {
		t.X = *p.X
	}
	if p.Y != nil {
		t.Y = *p.Y
	}
	if p.Shape != nil && p.Shape.Valid() {
		t.Shape = *p.Shape
	}
	if p.Capacity != nil {
		t.Capacity = *p.Capacity
	}
	if p.Seats != nil {
		t.Seats = *p.Seats
	}
	if p.Label != nil {
		t.Label = *p.Label
	}
	if p.ZoneID != nil {
		t.ZoneID = *p.ZoneID
	}
	if p.Status != nil {
		t.Status = *p.Status
	}

	s.tables[i] = t
	if chairsDirty(before, t) {
		s.chairs[id] = GenerateChairs(t)
	}
	return true
}

// DeleteTable removes the table, its chairs and any merge references to it.
func (s *Store) DeleteTable(id string) bool {
	i := s.tableIndex(id)
	if i < 0 {
		return false
	}
	s.tables = slices.Delete(s.tables, i, i+1)
	delete(s.chairs, id)

	for j := range s.tables {
		if s.tables[j].ParentID == id {
			s.tables[j].ParentID = ""
		}
		if k := slices.Index(s.tables[j].ChildIDs, id); k >= 0 {
			s.tables[j].ChildIDs = slices.Delete(slices.Clone(s.tables[j].ChildIDs), k, k+1)
		}
	}

	if s.selected == id {
		s.selected = ""
	}
	return true
}

// MoveTable positions the table at (x, y), snapped when enabled and kept on the canvas.
func (s *Store) MoveTable(id string, x, y float64) bool {
	i := s.tableIndex(id)
	if i < 0 {
		return false
	}
	t := s.tables[i]
	x, y = s.place(x, y, t.W, t.H)
	return s.UpdateTable(id, TablePatch{X: &x, Y: &y})
}

// ResizeTable sets the table size, never below MinTableSize nor past the canvas edge.
func (s *Store) ResizeTable(id string, w, h float64) bool {
	i := s.tableIndex(id)
	if i < 0 {
		return false
	}
	r := s.fitSize(s.tables[i].Rect(), w, h)
	return s.UpdateTable(id, TablePatch{X: &r.X, Y: &r.Y, W: &r.W, H: &r.H})
}

// NudgeTable moves the table one grid step.
func (s *Store) NudgeTable(id string, dir Direction) bool {
	t, ok := s.Table(id)
	if !ok {
		return false
	}
	step := s.opts.GridSize
	switch dir {
	case DirUp:
		t.Y -= step
	case DirDown:
		t.Y += step
	case DirLeft:
		t.X -= step
	case DirRight:
		t.X += step
	}
	return s.MoveTable(id, t.X, t.Y)
}

// SelectTable selects a table by id; an empty or unknown id clears the selection.
func (s *Store) SelectTable(id string) {
	if s.tableIndex(id) < 0 {
		s.selected = ""
		return
	}
	s.selected = id
}

func (s *Store) Selected() (Table, bool) {
	if s.selected == "" {
		return Table{}, false
	}
	return s.Table(s.selected)
}

// TableAt returns the top-most table under p.
func (s *Store) TableAt(p Point) (Table, bool) {
	for i := len(s.tables) - 1; i >= 0; i-- {
		if s.tables[i].Rect().Contains(p) {
			return s.tables[i], true
		}
	}
	return Table{}, false
}

// ==================== ZONES ====================

func (s *Store) Zones() []Zone { return slices.Clone(s.zones) }

func (s *Store) AddZone(name, color string) Zone {
	id, _ := s.nextID("zone")
	z := Zone{ID: id, Name: name, Color: color, Visible: true}
	s.zones = append(s.zones, z)
	return z
}

func (s *Store) UpdateZone(id string, p ZonePatch) bool {
	i := slices.IndexFunc(s.zones, func(z Zone) bool { return z.ID == id })
	if i < 0 {
		return false
	}
	if p.Name != nil {
		s.zones[i].Name = *p.Name
	}
	if p.Color != nil {
		s.zones[i].Color = *p.Color
	}
	if p.Visible != nil {
		s.zones[i].Visible = *p.Visible
	}
	return true
}

// DeleteZone removes the zone only. Tables keep their zoneId.
func (s *Store) DeleteZone(id string) bool {
	i := slices.IndexFunc(s.zones, func(z Zone) bool { return z.ID == id })
	if i < 0 {
		return false
	}
	s.zones = slices.Delete(s.zones, i, i+1)
	return true
}

// ==================== FIXTURES ====================

func (s *Store) Fixtures() []Fixture { return slices.Clone(s.fixtures) }

func (s *Store) AddFixture(kind FixtureKind, x, y, w, h float64) Fixture {
	id, _ := s.nextID("fixture")
	f := Fixture{ID: id, Kind: kind, W: w, H: h}
	f.X, f.Y = s.place(x, y, w, h)
	s.fixtures = append(s.fixtures, f)
	return f
}

func (s *Store) UpdateFixture(id string, p FixturePatch) bool {
	i := slices.IndexFunc(s.fixtures, func(f Fixture) bool { return f.ID == id })
	if i < 0 {
		return false
	}
	f := &s.fixtures[i]
	if p.W != nil && *p.W > 0 {
		f.W = *p.W
	}
	if p.H != nil && *p.H > 0 {
		f.H = *p.H
	}
	if p.X != nil || p.Y != nil {
		x, y := f.X, f.Y
		if p.X != nil {
			x = *p.X
		}
		if p.Y != nil {
			y = *p.Y
		}
		f.X, f.Y = s.place(x, y, f.W, f.H)
	}
	if p.Rotation != nil {
		f.Rotation = math.Mod(*p.Rotation, 360)
	}
	if p.Label != nil {
		f.Label = *p.Label
	}
	return true
}

func (s *Store) DeleteFixture(id string) bool {
	i := slices.IndexFunc(s.fixtures, func(f Fixture) bool { return f.ID == id })
	if i < 0 {
		return false
	}
	s.fixtures = slices.Delete(s.fixtures, i, i+1)
	return true
}

// ==================== HELPERS ====================

func (s *Store) tableIndex(id string) int {
	if id == "" {
		return -1
	}
	return slices.IndexFunc(s.tables, func(t Table) bool { return t.ID == id })
}

// nextID hands out "<prefix>-<n>" ids that do not collide with loaded ones.
func (s *Store) nextID(prefix string) (string, int) {
	for {
		s.seq++
		id := fmt.Sprintf("%s-%d", prefix, s.seq)
		if !s.idTaken(id) {
			return id, s.seq
		}
	}
}

func (s *Store) idTaken(id string) bool {
	return slices.ContainsFunc(s.tables, func(t Table) bool { return t.ID == id }) ||
		slices.ContainsFunc(s.zones, func(z Zone) bool { return z.ID == id }) ||
		slices.ContainsFunc(s.fixtures, func(f Fixture) bool { return f.ID == id })
}

// place snaps (x, y) when enabled and clamps a w×h box onto the canvas.
func (s *Store) place(x, y, w, h float64) (float64, float64) {
	maxX := math.Max(0, s.opts.CanvasWidth-w)
	maxY := math.Max(0, s.opts.CanvasHeight-h)
	x, y = Clamp(x, 0, maxX), Clamp(y, 0, maxY)
	if s.opts.SnapToGrid {
		x, y = SnapToGrid(x, s.opts.GridSize), SnapToGrid(y, s.opts.GridSize)
		x, y = Clamp(x, 0, maxX), Clamp(y, 0, maxY)
	}
	return x, y
}

// fitSize applies the minimum size and keeps r inside the canvas, shifting the
// origin back only when the minimum itself does not fit.
func (s *Store) fitSize(r Rect, w, h float64) Rect {
	minSize := s.opts.MinTableSize()
	if s.opts.SnapToGrid {
		w, h = SnapToGrid(w, s.opts.GridSize), SnapToGrid(h, s.opts.GridSize)
	}
	r.W = Clamp(w, minSize, math.Max(minSize, s.opts.CanvasWidth-r.X))
	r.H = Clamp(h, minSize, math.Max(minSize, s.opts.CanvasHeight-r.Y))
	if r.Right() > s.opts.CanvasWidth {
		r.X = math.Max(0, s.opts.CanvasWidth-r.W)
	}
	if r.Bottom() > s.opts.CanvasHeight {
		r.Y = math.Max(0, s.opts.CanvasHeight-r.H)
	}
	return r
}

func chairsDirty(a, b Table) bool {
	return a.Seats != b.Seats || a.Capacity != b.Capacity || a.Shape != b.Shape || a.Rect() != b.Rect()
}
