// Package physics provides vector math, sphere overlap tests and a uniform
// grid for broad-phase collision queries.
package physics

import "math"

// Distance calculates the Euclidean distance between two points.
func Distance(a, b Vec3) float64 {
	return math.Sqrt(DistanceSquared(a, b))
}

// DistanceSquared calculates the squared distance between two points.
// Use this when comparing distances to avoid the sqrt cost.
func DistanceSquared(a, b Vec3) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	dz := b.Z - a.Z
	return dx*dx + dy*dy + dz*dz
}

// SpheresOverlap reports whether two spheres touch or overlap.
// A sphere with a non-positive radius never overlaps anything.
func SpheresOverlap(a Vec3, ra float64, b Vec3, rb float64) bool {
	if ra <= 0 || rb <= 0 {
		return false
	}
	rr := ra + rb
	return DistanceSquared(a, b) <= rr*rr
}

// Clamp restricts v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampInt restricts v to [lo, hi].
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Lerp moves a toward b by fraction t.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// SmoothFactor converts a per-second convergence rate into the lerp
// fraction for a step of dt seconds, independent of frame rate.
func SmoothFactor(rate, dt float64) float64 {
	return 1 - math.Exp(-rate*dt)
}
