package geometry

import (
	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/felixtrz/immersive-web-sdk/phys"
)

// Triangle is one local-space face of an environment's triangle soup.
type Triangle struct {
	A, B, C mgl32.Vec3
}

// Normal returns the triangle's (non-unit-safe) surface normal. Degenerate
// triangles return the zero vector.
func (t Triangle) Normal() mgl32.Vec3 {
	edge1 := t.B.Sub(t.A)
	edge2 := t.C.Sub(t.A)
	n := edge1.Cross(edge2)
	if n.LenSqr() < phys.Epsilon*phys.Epsilon {
		return mgl32.Vec3{}
	}
	return n.Normalize()
}

// Area2 returns twice the triangle's area (the cross-product magnitude),
// which is what degeneracy checks compare against phys.DegenerateTriangleArea.
func (t Triangle) Area2() float32 {
	return t.B.Sub(t.A).Cross(t.C.Sub(t.A)).Len()
}

// Degenerate reports whether the triangle's area is too small to carry a
// meaningful normal, per spec: "degenerate triangles (area ~= 0) are skipped".
func (t Triangle) Degenerate() bool {
	return t.Area2() < phys.DegenerateTriangleArea
}

// AABB returns the local-space bounding box of the triangle.
func (t Triangle) AABB() cube.BBox {
	return phys.AABBFromPoints(t.A, t.B, t.C)
}

// Transform maps a local-space triangle into world space using m.
func (t Triangle) Transform(m mgl32.Mat4) Triangle {
	return Triangle{
		A: mgl32.TransformCoordinate(t.A, m),
		B: mgl32.TransformCoordinate(t.B, m),
		C: mgl32.TransformCoordinate(t.C, m),
	}
}

// IntersectRay performs a Moller-Trumbore ray/triangle intersection. ok is
// false if the ray misses, is parallel to the triangle plane, or hits behind
// the origin or beyond maxT.
func (t Triangle) IntersectRay(origin, dir mgl32.Vec3, maxT float32) (dist float32, point, normal mgl32.Vec3, ok bool) {
	edge1 := t.B.Sub(t.A)
	edge2 := t.C.Sub(t.A)
	h := dir.Cross(edge2)
	a := edge1.Dot(h)
	if math32.Abs(a) < phys.Epsilon {
		return 0, mgl32.Vec3{}, mgl32.Vec3{}, false
	}

	f := 1.0 / a
	s := origin.Sub(t.A)
	u := f * s.Dot(h)
	if u < 0 || u > 1 {
		return 0, mgl32.Vec3{}, mgl32.Vec3{}, false
	}

	q := s.Cross(edge1)
	v := f * dir.Dot(q)
	if v < 0 || u+v > 1 {
		return 0, mgl32.Vec3{}, mgl32.Vec3{}, false
	}

	dist = f * edge2.Dot(q)
	if dist < phys.Epsilon || dist > maxT {
		return 0, mgl32.Vec3{}, mgl32.Vec3{}, false
	}

	point = origin.Add(dir.Mul(dist))
	normal = t.Normal()
	if normal.Dot(dir) > 0 {
		normal = normal.Mul(-1)
	}
	return dist, point, normal, true
}

// ClosestPoint returns the point on the triangle closest to p, using
// barycentric region tests (Ericson, Real-Time Collision Detection 5.1.5).
func (t Triangle) ClosestPoint(p mgl32.Vec3) mgl32.Vec3 {
	ab := t.B.Sub(t.A)
	ac := t.C.Sub(t.A)
	ap := p.Sub(t.A)

	d1 := ab.Dot(ap)
	d2 := ac.Dot(ap)
	if d1 <= 0 && d2 <= 0 {
		return t.A
	}

	bp := p.Sub(t.B)
	d3 := ab.Dot(bp)
	d4 := ac.Dot(bp)
	if d3 >= 0 && d4 <= d3 {
		return t.B
	}

	vc := d1*d4 - d3*d2
	if vc <= 0 && d1 >= 0 && d3 <= 0 {
		v := d1 / (d1 - d3)
		return t.A.Add(ab.Mul(v))
	}

	cp := p.Sub(t.C)
	d5 := ab.Dot(cp)
	d6 := ac.Dot(cp)
	if d6 >= 0 && d5 <= d6 {
		return t.C
	}

	vb := d5*d2 - d1*d6
	if vb <= 0 && d2 >= 0 && d6 <= 0 {
		w := d2 / (d2 - d6)
		return t.A.Add(ac.Mul(w))
	}

	va := d3*d6 - d5*d4
	if va <= 0 && (d4-d3) >= 0 && (d5-d6) >= 0 {
		w := (d4 - d3) / ((d4 - d3) + (d5 - d6))
		return t.B.Add(t.C.Sub(t.B).Mul(w))
	}

	denom := 1.0 / (va + vb + vc)
	v := vb * denom
	w := vc * denom
	return t.A.Add(ab.Mul(v)).Add(ac.Mul(w))
}

// ClosestPointSegment returns the closest point on segment [a,b] to p and
// the parameter t in [0,1] at which it occurs.
func ClosestPointSegment(a, b, p mgl32.Vec3) (mgl32.Vec3, float32) {
	ab := b.Sub(a)
	denom := ab.Dot(ab)
	if denom < phys.Epsilon*phys.Epsilon {
		return a, 0
	}
	t := phys.Clamp(p.Sub(a).Dot(ab)/denom, float32(0), float32(1))
	return a.Add(ab.Mul(t)), t
}
