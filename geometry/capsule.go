package geometry

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/felixtrz/immersive-web-sdk/phys"
)

// Contact is a single capsule/triangle penetration, in world space.
type Contact struct {
	Handle      int32
	Point       mgl32.Vec3
	Normal      mgl32.Vec3
	Penetration float32
}

// QueryCapsule returns every triangle across the registry currently
// penetrating the vertical capsule centered at center with the given radius
// and half-height. Non-degenerate triangles only; distance is measured from
// the capsule's central segment (Ericson 5.1.5-style closest point).
func (r *Registry) QueryCapsule(center mgl32.Vec3, radius, halfHeight float32) []Contact {
	r.mu.RLock()
	defer r.mu.RUnlock()

	capsuleAABB := phys.CapsuleAABB(center, radius, halfHeight)
	var contacts []Contact

	for _, env := range r.envs {
		if !phys.OverlapsAABB(env.worldAABB, capsuleAABB) {
			continue
		}

		localCenter := env.ToLocal(center)
		localRadius := radius // uniform-scale assumption; transforms in this engine are rigid
		top := localCenter.Add(mgl32.Vec3{0, halfHeight, 0})
		bottom := localCenter.Sub(mgl32.Vec3{0, halfHeight, 0})
		localAABB := phys.CapsuleAABB(localCenter, localRadius, halfHeight)

		var candidates []int
		env.bvh.capsuleCandidates(env.tris, localAABB, &candidates)

		for _, idx := range candidates {
			tri := env.tris[idx]
			if tri.Degenerate() {
				continue
			}

			closestOnTri, closestOnSeg := closestPointsSegmentTriangle(bottom, top, tri)
			dist := closestOnTri.Sub(closestOnSeg).Len()
			if dist >= localRadius {
				continue
			}

			worldPoint := env.ToWorld(closestOnTri)
			normal := tri.Normal()
			// Orient the normal to point from the triangle toward the capsule
			// center so the depenetration resolver always pushes outward.
			if normal.Dot(localCenter.Sub(closestOnTri)) < 0 {
				normal = normal.Mul(-1)
			}

			contacts = append(contacts, Contact{
				Handle:      env.Handle,
				Point:       worldPoint,
				Normal:      env.ToWorldNormal(normal),
				Penetration: localRadius - dist,
			})
		}
	}
	return contacts
}

// closestPointsSegmentTriangle returns the closest point on tri and the
// closest point on segment [a,b], approximated by sampling the triangle's
// closest point to each segment endpoint and the segment's closest point to
// the triangle's closest point, iterated once — sufficient for the capsule
// radii and mesh density this engine targets.
func closestPointsSegmentTriangle(a, b mgl32.Vec3, tri Triangle) (onTri, onSeg mgl32.Vec3) {
	mid, _ := ClosestPointSegment(a, b, tri.ClosestPoint(a))
	onTri = tri.ClosestPoint(mid)
	onSeg, _ = ClosestPointSegment(a, b, onTri)
	onTri = tri.ClosestPoint(onSeg)
	return onTri, onSeg
}
