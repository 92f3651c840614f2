package events

// Point is a pointer position in document coordinates.
type Point struct {
	X, Y int
}

// PointerEvent is a pointer-down on the document.
type PointerEvent struct {
	Point
}

// Region is anything that can say whether a pointer landed inside it.
type Region interface {
	Contains(p Point) bool
}

// Rect is an axis-aligned bounding box. Edges are inclusive on the top-left
// and exclusive on the bottom-right.
type Rect struct {
	X, Y, W, H int
}

func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// RegionFunc adapts a plain function to Region.
type RegionFunc func(p Point) bool

func (f RegionFunc) Contains(p Point) bool { return f(p) }
