package floorplan

import "math"

type Mode int

const (
	ModeIdle Mode = iota
	ModeDragging
	ModeResizing
)

func (m Mode) String() string {
	switch m {
	case ModeDragging:
		return "dragging"
	case ModeResizing:
		return "resizing"
	}
	return "idle"
}

// Handle identifies a resize grip on the selected table.
type Handle int

const (
	HandleNone Handle = iota
	HandleN
	HandleS
	HandleE
	HandleW
	HandleNE
	HandleNW
	HandleSE
	HandleSW
)

func (h Handle) moves() (left, right, top, bottom bool) {
	switch h {
	case HandleN:
		top = true
	case HandleS:
		bottom = true
	case HandleE:
		right = true
	case HandleW:
		left = true
	case HandleNE:
		top, right = true, true
	case HandleNW:
		top, left = true, true
	case HandleSE:
		bottom, right = true, true
	case HandleSW:
		bottom, left = true, true
	}
	return
}

// DefaultHandleSize is the side of the square hit area around each grip.
const DefaultHandleSize = 8.0

type Key string

const (
	KeyUp        Key = "ArrowUp"
	KeyDown      Key = "ArrowDown"
	KeyLeft      Key = "ArrowLeft"
	KeyRight     Key = "ArrowRight"
	KeyEscape    Key = "Escape"
	KeyDelete    Key = "Delete"
	KeyBackspace Key = "Backspace"
)

// Controller turns pointer and keyboard events into Store mutations. One
// interaction runs at a time; every method is a synchronous transition.
type Controller struct {
	store      *Store
	HandleSize float64

	mode    Mode
	target  string
	handle  Handle
	offset  Point
	initial Rect
}

func NewController(store *Store) *Controller {
	return &Controller{store: store, HandleSize: DefaultHandleSize}
}

func (c *Controller) Mode() Mode { return c.mode }

func (c *Controller) Store() *Store { return c.store }

// PointerDown starts a resize when p hits a grip of the selected table, a drag
// when it hits a table, and clears the selection on empty canvas.
func (c *Controller) PointerDown(p Point) {
	if c.mode != ModeIdle {
		return
	}

	if sel, ok := c.store.Selected(); ok {
		if h := c.handleAt(sel.Rect(), p); h != HandleNone {
			c.mode = ModeResizing
			c.target = sel.ID
			c.handle = h
			c.initial = sel.Rect()
			return
		}
	}

	t, ok := c.store.TableAt(p)
	if !ok {
		c.store.SelectTable("")
		return
	}
	c.store.SelectTable(t.ID)
	c.mode = ModeDragging
	c.target = t.ID
	c.offset = Point{X: p.X - t.X, Y: p.Y - t.Y}
}

// PointerMove updates the active interaction. Positions outside the canvas are clamped.
func (c *Controller) PointerMove(p Point) {
	switch c.mode {
	case ModeDragging:
		c.store.MoveTable(c.target, p.X-c.offset.X, p.Y-c.offset.Y)
	case ModeResizing:
		c.resizeTo(p)
	}
}

func (c *Controller) PointerUp() { c.reset() }

func (c *Controller) PointerLeave() { c.reset() }

// KeyDown handles arrows, Escape and Delete while Idle. It reports whether the key was consumed.
func (c *Controller) KeyDown(k Key) bool {
	if c.mode != ModeIdle {
		return false
	}
	sel, ok := c.store.Selected()
	if !ok {
		return false
	}

	switch k {
	case KeyUp:
		return c.store.NudgeTable(sel.ID, DirUp)
	case KeyDown:
		return c.store.NudgeTable(sel.ID, DirDown)
	case KeyLeft:
		return c.store.NudgeTable(sel.ID, DirLeft)
	case KeyRight:
		return c.store.NudgeTable(sel.ID, DirRight)
	case KeyEscape:
		c.store.SelectTable("")
		return true
	case KeyDelete, KeyBackspace:
		return c.store.DeleteTable(sel.ID)
	}
	return false
}

// DoubleClick on empty canvas adds a table there.
func (c *Controller) DoubleClick(p Point) (Table, bool) {
	if c.mode != ModeIdle {
		return Table{}, false
	}
	if _, hit := c.store.TableAt(p); hit {
		return Table{}, false
	}
	t := c.store.AddTable(p.X, p.Y)
	c.store.SelectTable(t.ID)
	return t, true
}

func (c *Controller) reset() {
	c.mode = ModeIdle
	c.target = ""
	c.handle = HandleNone
	c.offset = Point{}
	c.initial = Rect{}
}

func (c *Controller) handleAt(r Rect, p Point) Handle {
	half := c.HandleSize / 2
	cx, cy := r.X+r.W/2, r.Y+r.H/2
	grips := []struct {
		h    Handle
		x, y float64
	}{
		{HandleNW, r.X, r.Y},
		{HandleNE, r.Right(), r.Y},
		{HandleSW, r.X, r.Bottom()},
		{HandleSE, r.Right(), r.Bottom()},
		{HandleN, cx, r.Y},
		{HandleS, cx, r.Bottom()},
		{HandleW, r.X, cy},
		{HandleE, r.Right(), cy},
	}
	for _, g := range grips {
		if math.Abs(p.X-g.x) <= half && math.Abs(p.Y-g.y) <= half {
			return g.h
		}
	}
	return HandleNone
}

// resizeTo moves the grabbed edges to p while the opposite edges stay put.
func (c *Controller) resizeTo(p Point) {
	opts := c.store.Options()
	minSize := opts.MinTableSize()
	snap := func(v float64) float64 {
		if opts.SnapToGrid {
			return SnapToGrid(v, opts.GridSize)
		}
		return v
	}

	left, right, top, bottom := c.handle.moves()
	r := c.initial
	x0, y0, x1, y1 := r.X, r.Y, r.Right(), r.Bottom()

	if left {
		x0 = Clamp(snap(p.X), 0, x1-minSize)
	}
	if right {
		x1 = Clamp(snap(p.X), x0+minSize, math.Max(x0+minSize, opts.CanvasWidth))
	}
	if top {
		y0 = Clamp(snap(p.Y), 0, y1-minSize)
	}
	if bottom {
		y1 = Clamp(snap(p.Y), y0+minSize, math.Max(y0+minSize, opts.CanvasHeight))
	}

	x0, y0 = math.Max(0, x0), math.Max(0, y0)
	w, h := x1-x0, y1-y0
	c.store.UpdateTable(c.target, TablePatch{X: &x0, Y: &y0, W: &w, H: &h})
}
