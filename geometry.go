package uicore

// Vec2 is a 2D vector used for offsets, sizes and positions throughout the
// API. The coordinate system has its origin at the top-left, with Y
// increasing downward.
type Vec2 struct {
	X, Y float64
}

// Add returns the component-wise sum of v and o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Scale returns v with each component multiplied by f.
func (v Vec2) Scale(f Vec2) Vec2 {
	return Vec2{v.X * f.X, v.Y * f.Y}
}

// Rect is an axis-aligned rectangle described by an offset and a size.
type Rect struct {
	Offset Vec2
	Size   Vec2
}

// Contains reports whether the point p lies inside the rectangle. Points on
// the edge are considered inside.
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.Offset.X && p.X <= r.Offset.X+r.Size.X &&
		p.Y >= r.Offset.Y && p.Y <= r.Offset.Y+r.Size.Y
}

// Intersect returns the overlap of r and other, and whether they overlap at
// all. Adjacent rectangles (sharing only an edge) are not considered
// overlapping, matching the clip-culling semantics used during update.
func (r Rect) Intersect(other Rect) (Rect, bool) {
	x0 := max(r.Offset.X, other.Offset.X)
	y0 := max(r.Offset.Y, other.Offset.Y)
	x1 := min(r.Offset.X+r.Size.X, other.Offset.X+other.Size.X)
	y1 := min(r.Offset.Y+r.Size.Y, other.Offset.Y+other.Size.Y)
	if x1 <= x0 || y1 <= y0 {
		return Rect{}, false
	}
	return Rect{Offset: Vec2{x0, y0}, Size: Vec2{x1 - x0, y1 - y0}}, true
}
