package phys

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/exp/constraints"
)

// Clamp restricts v to the closed interval [lo, hi].
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Vec3HzDistSqr returns the squared horizontal (XZ-plane) length of v.
func Vec3HzDistSqr(v mgl32.Vec3) float32 {
	return v.X()*v.X() + v.Z()*v.Z()
}

// IsFiniteVec3 reports whether every component of v is finite (not NaN, not
// infinite). Used to reject numerically invalid commands per spec §4.4.
func IsFiniteVec3(v mgl32.Vec3) bool {
	for _, c := range v {
		if math32.IsNaN(c) || math32.IsInf(c, 0) {
			return false
		}
	}
	return true
}
