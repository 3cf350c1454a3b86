package common

// Rect is an axis-aligned box in world space with its origin at the top-left.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// RectFromCenter builds a box of the given size centered on (cx, cy).
func RectFromCenter(cx, cy, w, h float64) Rect {
	return Rect{X: cx - w/2, Y: cy - h/2, Width: w, Height: h}
}

func (r Rect) Intersects(other Rect) bool {
	return r.X < other.X+other.Width &&
		r.X+r.Width > other.X &&
		r.Y < other.Y+other.Height &&
		r.Y+r.Height > other.Y
}

// Contains reports whether the point lies inside the box. Edges are inclusive.
func (r Rect) Contains(px, py float64) bool {
	return px >= r.X && px <= r.X+r.Width && py >= r.Y && py <= r.Y+r.Height
}

func (r Rect) Center() Vec {
	return Vec{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}
