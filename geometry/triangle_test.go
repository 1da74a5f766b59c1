package geometry

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestTriangleIntersectRay_Hit(t *testing.T) {
	tri := Triangle{
		A: mgl32.Vec3{-1, 0, -1},
		B: mgl32.Vec3{1, 0, -1},
		C: mgl32.Vec3{0, 0, 1},
	}
	dist, point, normal, ok := tri.IntersectRay(mgl32.Vec3{0, 5, 0}, mgl32.Vec3{0, -1, 0}, 100)
	if !ok {
		t.Fatalf("expected a hit")
	}
	if math.Abs(float64(dist-5)) > 1e-4 {
		t.Fatalf("dist = %f, want 5", dist)
	}
	if point.Y() != 0 {
		t.Fatalf("point = %v, want y=0", point)
	}
	if normal.Y() <= 0 {
		t.Fatalf("normal = %v, want facing up toward the ray origin", normal)
	}
}

func TestTriangleIntersectRay_Miss(t *testing.T) {
	tri := Triangle{
		A: mgl32.Vec3{-1, 0, -1},
		B: mgl32.Vec3{1, 0, -1},
		C: mgl32.Vec3{0, 0, 1},
	}
	if _, _, _, ok := tri.IntersectRay(mgl32.Vec3{10, 5, 10}, mgl32.Vec3{0, -1, 0}, 100); ok {
		t.Fatalf("expected a miss for a ray outside the triangle's footprint")
	}
}

func TestTriangleDegenerate(t *testing.T) {
	tri := Triangle{A: mgl32.Vec3{0, 0, 0}, B: mgl32.Vec3{1, 0, 0}, C: mgl32.Vec3{2, 0, 0}}
	if !tri.Degenerate() {
		t.Fatalf("collinear triangle should be degenerate")
	}
}

func TestTriangleClosestPoint_Vertex(t *testing.T) {
	tri := Triangle{A: mgl32.Vec3{0, 0, 0}, B: mgl32.Vec3{1, 0, 0}, C: mgl32.Vec3{0, 1, 0}}
	got := tri.ClosestPoint(mgl32.Vec3{-5, -5, 0})
	if got != tri.A {
		t.Fatalf("closest point = %v, want vertex A %v", got, tri.A)
	}
}

func TestTriangleClosestPoint_Interior(t *testing.T) {
	tri := Triangle{A: mgl32.Vec3{0, 0, 0}, B: mgl32.Vec3{2, 0, 0}, C: mgl32.Vec3{0, 2, 0}}
	got := tri.ClosestPoint(mgl32.Vec3{0.3, 0.3, 5})
	if math.Abs(float64(got.Z())) > 1e-4 {
		t.Fatalf("closest point should lie in the triangle's plane, got %v", got)
	}
}
