// Package geometry implements the registry of collision environments: their
// triangle soup, immutable per-environment BVH, and world transform cache.
package geometry

import (
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/felixtrz/immersive-web-sdk/phys"
)

// Kind tags an Environment's mobility. It is a tagged variant rather than a
// type hierarchy: kinematic environments carry transform history the Core
// consults for platform-follow, static ones never move after insertion.
type Kind uint8

const (
	KindStatic Kind = iota
	KindKinematic
)

func (k Kind) String() string {
	if k == KindKinematic {
		return "kinematic"
	}
	return "static"
}

// Environment is one registered collision mesh: a triangle soup, its
// immutable BVH, and the transform mapping it into world space.
//
// Invariants (spec 3): the BVH is never rebuilt after insertion; vertex data
// is never mutated after insertion; only the transform and its previous
// value change between ticks. Any kind accepts a transform update, but only
// kinematic environments rotate their history at tick boundaries.
type Environment struct {
	Handle int32
	Kind   Kind

	tris []Triangle
	bvh  *bvhNode

	transform     mgl32.Mat4
	inverse       mgl32.Mat4
	prevTransform mgl32.Mat4

	localAABB cube.BBox
	worldAABB cube.BBox
}

// newEnvironment builds the immutable BVH over verts/indices and computes
// the initial transform cache. verts is a flat triangle soup (3 vertices per
// triangle) when indices is nil, otherwise indices selects vertices from
// verts three at a time.
func newEnvironment(handle int32, verts []mgl32.Vec3, indices []uint32, kind Kind, transform mgl32.Mat4) *Environment {
	var tris []Triangle
	if len(indices) > 0 {
		tris = make([]Triangle, 0, len(indices)/3)
		for i := 0; i+2 < len(indices); i += 3 {
			tris = append(tris, Triangle{A: verts[indices[i]], B: verts[indices[i+1]], C: verts[indices[i+2]]})
		}
	} else {
		tris = make([]Triangle, 0, len(verts)/3)
		for i := 0; i+2 < len(verts); i += 3 {
			tris = append(tris, Triangle{A: verts[i], B: verts[i+1], C: verts[i+2]})
		}
	}

	e := &Environment{
		Handle: handle,
		Kind:   kind,
		tris:   tris,
		bvh:    buildBVH(tris),
	}
	e.localAABB = localBounds(tris)
	e.setTransform(transform)
	e.prevTransform = transform
	return e
}

func localBounds(tris []Triangle) cube.BBox {
	if len(tris) == 0 {
		return cube.Box(0, 0, 0, 0, 0, 0)
	}
	bb := tris[0].AABB()
	for _, t := range tris[1:] {
		bb = phys.UnionAABB(bb, t.AABB())
	}
	return bb
}

// setTransform recomputes the world AABB and the cached inverse so a query
// issued right after never observes a stale inverse (spec 4.1's "transform
// cache invariant").
func (e *Environment) setTransform(m mgl32.Mat4) {
	e.transform = m
	e.inverse = m.Inv()
	e.worldAABB = phys.TransformAABB(e.localAABB, m)
}

// UpdateTransform records the previous transform and installs m as current.
func (e *Environment) UpdateTransform(m mgl32.Mat4) {
	e.prevTransform = e.transform
	e.setTransform(m)
}

// RotateHistory advances the kinematic "previous transform" slot to the
// current transform at a tick boundary, per spec's "kinematic delta"
// invariant. Static environments ignore it.
func (e *Environment) RotateHistory() {
	if e.Kind == KindKinematic {
		e.prevTransform = e.transform
	}
}

// Delta returns the rigid transform describing how this environment moved
// since the last RotateHistory call: applying it to a world-space point that
// was resting on the environment carries it along with the platform.
func (e *Environment) Delta() mgl32.Mat4 {
	return e.transform.Mul4(e.prevTransform.Inv())
}

// WorldAABB returns the environment's current world-space bounding box.
func (e *Environment) WorldAABB() cube.BBox { return e.worldAABB }

// ToLocal maps a world-space point into the environment's local space.
func (e *Environment) ToLocal(p mgl32.Vec3) mgl32.Vec3 {
	return mgl32.TransformCoordinate(p, e.inverse)
}

// ToLocalDir maps a world-space direction (no translation) into local space.
func (e *Environment) ToLocalDir(d mgl32.Vec3) mgl32.Vec3 {
	return e.inverse.Mat3().Mul3x1(d)
}

// ToWorld maps a local-space point into world space.
func (e *Environment) ToWorld(p mgl32.Vec3) mgl32.Vec3 {
	return mgl32.TransformCoordinate(p, e.transform)
}

// ToWorldNormal maps a local-space normal into world space using the
// inverse-transpose, which keeps normals correct under non-uniform scale.
func (e *Environment) ToWorldNormal(n mgl32.Vec3) mgl32.Vec3 {
	return e.inverse.Transpose().Mat3().Mul3x1(n).Normalize()
}

// IntersectSegment tests the world-space segment [start,end] against this
// environment's BVH, used by the trajectory sampler once the AABB prefilter
// has selected candidate environments.
func (e *Environment) IntersectSegment(start, end mgl32.Vec3) (point, normal mgl32.Vec3, t float32, ok bool) {
	localStart := e.ToLocal(start)
	localEnd := e.ToLocal(end)
	seg := localEnd.Sub(localStart)
	length := seg.Len()
	if length < 1e-9 {
		return mgl32.Vec3{}, mgl32.Vec3{}, 0, false
	}
	dir := seg.Mul(1 / length)

	var hit rayHit
	e.bvh.raycast(e.tris, localStart, dir, length, &hit)
	if hit.dist == 0 {
		return mgl32.Vec3{}, mgl32.Vec3{}, 0, false
	}
	return e.ToWorld(hit.point), e.ToWorldNormal(hit.normal), hit.dist / length, true
}
