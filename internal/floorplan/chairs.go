package floorplan

import (
	"fmt"
	"math"
)

// chairOffset is the distance from the table edge to a chair center.
const chairOffset = 12.0

// GenerateChairs places t.Seats chairs around t. Round tables get an even ring
// starting at twelve o'clock; square tables fill sides clockwise; rect tables
// seat their two long sides.
func GenerateChairs(t Table) []Chair {
	n := t.Seats
	if n <= 0 {
		return nil
	}

	chairs := make([]Chair, 0, n)
	add := func(p Point) {
		i := len(chairs)
		chairs = append(chairs, Chair{
			ID:      fmt.Sprintf("%s-chair-%d", t.ID, i),
			TableID: t.ID,
			Index:   i,
			X:       p.X,
			Y:       p.Y,
		})
	}

	switch t.Shape {
	case ShapeRound:
		c := t.Rect().Center()
		r := math.Max(t.W, t.H)/2 + chairOffset
		for i := 0; i < n; i++ {
			a := -math.Pi/2 + 2*math.Pi*float64(i)/float64(n)
			add(Point{X: c.X + r*math.Cos(a), Y: c.Y + r*math.Sin(a)})
		}
	case ShapeSquare:
		// top, right, bottom, left
		var per [4]int
		for i := 0; i < n; i++ {
			per[i%4]++
		}
		for side, k := range per {
			for _, p := range sidePoints(t, side, k) {
				add(p)
			}
		}
	default:
		first, second := 0, 2
		if t.H > t.W {
			first, second = 1, 3
		}
		a := (n + 1) / 2
		for _, p := range sidePoints(t, first, a) {
			add(p)
		}
		for _, p := range sidePoints(t, second, n-a) {
			add(p)
		}
	}
	return chairs
}

// sidePoints spreads k points evenly along one side of t, pushed out by chairOffset.
func sidePoints(t Table, side, k int) []Point {
	pts := make([]Point, 0, k)
	for i := 0; i < k; i++ {
		f := float64(i+1) / float64(k+1)
		switch side {
		case 0:
			pts = append(pts, Point{X: t.X + t.W*f, Y: t.Y - chairOffset})
		case 1:
			pts = append(pts, Point{X: t.X + t.W + chairOffset, Y: t.Y + t.H*f})
		case 2:
			pts = append(pts, Point{X: t.X + t.W*(1-f), Y: t.Y + t.H + chairOffset})
		case 3:
			pts = append(pts, Point{X: t.X - chairOffset, Y: t.Y + t.H*(1-f)})
		}
	}
	return pts
}
