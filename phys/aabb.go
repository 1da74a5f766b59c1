package phys

import (
	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
)

// CapsuleAABB returns the axis-aligned bounding box of a vertical capsule of
// radius r and half-height h centered at pos.
func CapsuleAABB(pos mgl32.Vec3, r, h float32) cube.BBox {
	return cube.Box(
		pos.X()-r, pos.Y()-h-r, pos.Z()-r,
		pos.X()+r, pos.Y()+h+r, pos.Z()+r,
	)
}

// UnionAABB returns the smallest AABB containing both a and b.
func UnionAABB(a, b cube.BBox) cube.BBox {
	return cube.Box(
		math32.Min(a.Min().X(), b.Min().X()),
		math32.Min(a.Min().Y(), b.Min().Y()),
		math32.Min(a.Min().Z(), b.Min().Z()),
		math32.Max(a.Max().X(), b.Max().X()),
		math32.Max(a.Max().Y(), b.Max().Y()),
		math32.Max(a.Max().Z(), b.Max().Z()),
	)
}

// AABBFromPoints returns the smallest AABB containing every point given.
func AABBFromPoints(points ...mgl32.Vec3) cube.BBox {
	min := mgl32.Vec3{math32.MaxFloat32, math32.MaxFloat32, math32.MaxFloat32}
	max := mgl32.Vec3{-math32.MaxFloat32, -math32.MaxFloat32, -math32.MaxFloat32}
	for _, p := range points {
		min = mgl32.Vec3{math32.Min(min.X(), p.X()), math32.Min(min.Y(), p.Y()), math32.Min(min.Z(), p.Z())}
		max = mgl32.Vec3{math32.Max(max.X(), p.X()), math32.Max(max.Y(), p.Y()), math32.Max(max.Z(), p.Z())}
	}
	return cube.Box(min.X(), min.Y(), min.Z(), max.X(), max.Y(), max.Z())
}

// OverlapsAABB reports whether two AABBs overlap (touching counts as
// overlapping, matching the teacher's inclusive convention).
func OverlapsAABB(a, b cube.BBox) bool {
	return a.Min().X() <= b.Max().X() && a.Max().X() >= b.Min().X() &&
		a.Min().Y() <= b.Max().Y() && a.Max().Y() >= b.Min().Y() &&
		a.Min().Z() <= b.Max().Z() && a.Max().Z() >= b.Min().Z()
}

// TransformAABB re-derives the tightest world-space AABB for a local-space
// AABB after applying an affine matrix, by transforming all eight corners.
// Ported from other_examples/viamrobotics-rdk__bvh.go's transformAABB.
func TransformAABB(bb cube.BBox, m mgl32.Mat4) cube.BBox {
	min, max := bb.Min(), bb.Max()
	corners := [8]mgl32.Vec3{
		{min.X(), min.Y(), min.Z()}, {min.X(), min.Y(), max.Z()},
		{min.X(), max.Y(), min.Z()}, {min.X(), max.Y(), max.Z()},
		{max.X(), min.Y(), min.Z()}, {max.X(), min.Y(), max.Z()},
		{max.X(), max.Y(), min.Z()}, {max.X(), max.Y(), max.Z()},
	}

	newMin := mgl32.Vec3{math32.MaxFloat32, math32.MaxFloat32, math32.MaxFloat32}
	newMax := mgl32.Vec3{-math32.MaxFloat32, -math32.MaxFloat32, -math32.MaxFloat32}
	for _, c := range corners {
		wp := mgl32.TransformCoordinate(c, m)
		newMin = mgl32.Vec3{math32.Min(newMin.X(), wp.X()), math32.Min(newMin.Y(), wp.Y()), math32.Min(newMin.Z(), wp.Z())}
		newMax = mgl32.Vec3{math32.Max(newMax.X(), wp.X()), math32.Max(newMax.Y(), wp.Y()), math32.Max(newMax.Z(), wp.Z())}
	}
	return cube.Box(newMin.X(), newMin.Y(), newMin.Z(), newMax.X(), newMax.Y(), newMax.Z())
}
