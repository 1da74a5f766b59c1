package geometry

import (
	"sort"

	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/felixtrz/immersive-web-sdk/assert"
	"github.com/felixtrz/immersive-web-sdk/phys"
)

// maxTrianglesPerLeaf bounds the size of a BVH leaf before it is split
// further. Ported from other_examples/viamrobotics-rdk__bvh.go's
// maxTrianglesPerLeaf.
const maxTrianglesPerLeaf = 8

// bvhNode is one node of an immutable, local-space bounding volume
// hierarchy. Leaves carry triangle indices into the owning Environment's
// triangle slice; internal nodes carry only bounds and children.
type bvhNode struct {
	bounds   cube.BBox
	left     *bvhNode
	right    *bvhNode
	triIndex []int
}

// buildBVH constructs a BVH over tris by recursive median-split on the
// longest axis, same strategy as the teacher's buildBVHNode. Every
// triangle is reachable by traversal regardless of split quality; the
// heuristic only affects query performance.
func buildBVH(tris []Triangle) *bvhNode {
	if len(tris) == 0 {
		return nil
	}
	indices := make([]int, len(tris))
	for i := range indices {
		indices[i] = i
	}
	root := buildBVHNode(tris, indices)
	assert.IsTrue(leafTriangleCount(root) == len(tris), "bvh: built with %d of %d triangles reachable", leafTriangleCount(root), len(tris))
	return root
}

func leafTriangleCount(n *bvhNode) int {
	if n == nil {
		return 0
	}
	if n.triIndex != nil {
		return len(n.triIndex)
	}
	return leafTriangleCount(n.left) + leafTriangleCount(n.right)
}

func buildBVHNode(tris []Triangle, indices []int) *bvhNode {
	node := &bvhNode{bounds: boundsOf(tris, indices)}
	if len(indices) <= maxTrianglesPerLeaf {
		node.triIndex = indices
		return node
	}

	extent := node.bounds.Max().Sub(node.bounds.Min())
	axis := 0
	if extent.Y() > extent.X() && extent.Y() > extent.Z() {
		axis = 1
	} else if extent.Z() > extent.X() && extent.Z() > extent.Y() {
		axis = 2
	}

	sort.Slice(indices, func(i, j int) bool {
		return centroid(tris[indices[i]])[axis] < centroid(tris[indices[j]])[axis]
	})

	mid := len(indices) / 2
	node.left = buildBVHNode(tris, indices[:mid])
	node.right = buildBVHNode(tris, indices[mid:])
	return node
}

func boundsOf(tris []Triangle, indices []int) cube.BBox {
	if len(indices) == 0 {
		return cube.Box(0, 0, 0, 0, 0, 0)
	}
	bb := tris[indices[0]].AABB()
	for _, i := range indices[1:] {
		bb = phys.UnionAABB(bb, tris[i].AABB())
	}
	return bb
}

func centroid(t Triangle) mgl32.Vec3 {
	return t.A.Add(t.B).Add(t.C).Mul(1.0 / 3.0)
}

// rayHit is the closest hit a BVH raycast has found so far, in local space;
// a zero dist means nothing has been hit yet.
type rayHit struct {
	dist   float32
	point  mgl32.Vec3
	normal mgl32.Vec3
	index  int
}

// raycast walks the BVH nearest-child-first, tracking the closest hit found
// so far to prune subtrees whose bounds start beyond it. origin/dir/maxT are
// in the same local space the BVH was built in.
func (n *bvhNode) raycast(tris []Triangle, origin, dir mgl32.Vec3, maxT float32, best *rayHit) {
	if n == nil {
		return
	}
	nodeLimit := maxT
	if best.dist > 0 {
		nodeLimit = best.dist
	}
	if !rayIntersectsAABB(n.bounds, origin, dir, nodeLimit) {
		return
	}

	if n.triIndex != nil {
		for _, idx := range n.triIndex {
			t := tris[idx]
			if t.Degenerate() {
				continue
			}
			limit := maxT
			if best.dist > 0 {
				limit = best.dist
			}
			dist, point, normal, ok := t.IntersectRay(origin, dir, limit)
			if !ok {
				continue
			}
			if best.dist == 0 || dist < best.dist {
				*best = rayHit{dist: dist, point: point, normal: normal, index: idx}
			}
		}
		return
	}

	first, second := n.left, n.right
	if nearerChild(n.right.bounds, n.left.bounds, origin) {
		first, second = n.right, n.left
	}
	first.raycast(tris, origin, dir, maxT, best)
	second.raycast(tris, origin, dir, maxT, best)
}

// nearerChild reports whether a's bounds center is closer to origin than
// b's, so traversal visits the nearer subtree first as required by the
// closest-hit contract.
func nearerChild(a, b cube.BBox, origin mgl32.Vec3) bool {
	ca := a.Min().Add(a.Max()).Mul(0.5)
	cb := b.Min().Add(b.Max()).Mul(0.5)
	return ca.Sub(origin).LenSqr() < cb.Sub(origin).LenSqr()
}

func rayIntersectsAABB(bb cube.BBox, origin, dir mgl32.Vec3, maxT float32) bool {
	tMin, tMax := float32(0), maxT
	min, max := bb.Min(), bb.Max()
	for i := 0; i < 3; i++ {
		o, d := origin[i], dir[i]
		if math32.Abs(d) < phys.Epsilon {
			if o < min[i] || o > max[i] {
				return false
			}
			continue
		}
		inv := 1.0 / d
		t1 := (min[i] - o) * inv
		t2 := (max[i] - o) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = math32.Max(tMin, t1)
		tMax = math32.Min(tMax, t2)
		if tMin > tMax {
			return false
		}
	}
	return true
}

// capsuleCandidates collects every triangle whose AABB overlaps the
// capsule's swept AABB, for narrow-phase testing by package collision.
func (n *bvhNode) capsuleCandidates(tris []Triangle, capsuleAABB cube.BBox, out *[]int) {
	if n == nil || !phys.OverlapsAABB(n.bounds, capsuleAABB) {
		return
	}
	if n.triIndex != nil {
		*out = append(*out, n.triIndex...)
		return
	}
	n.left.capsuleCandidates(tris, capsuleAABB, out)
	n.right.capsuleCandidates(tris, capsuleAABB, out)
}
