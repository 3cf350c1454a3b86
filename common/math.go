package common

import "math"

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Vec is a world-space point or direction.
type Vec struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

func (v Vec) Sub(o Vec) Vec { return Vec{X: v.X - o.X, Y: v.Y - o.Y} }

func (v Vec) Len() float64 { return math.Hypot(v.X, v.Y) }

func Distance(a, b Vec) float64 { return b.Sub(a).Len() }

// AngleDeg returns the direction from a to b in degrees, screen coordinates
// (y grows downward, so "down" is +90).
func AngleDeg(a, b Vec) float64 {
	d := b.Sub(a)
	return math.Atan2(d.Y, d.X) * 180 / math.Pi
}

// AngleDiffDeg returns the absolute smallest difference between two angles.
func AngleDiffDeg(a, b float64) float64 {
	d := math.Mod(math.Abs(a-b), 360)
	if d > 180 {
		d = 360 - d
	}
	return d
}
