package phys

import (
	"testing"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
)

func TestClamp(t *testing.T) {
	if got := Clamp(5, 0, 3); got != 3 {
		t.Fatalf("Clamp(5,0,3) = %d, want 3", got)
	}
	if got := Clamp(-1, 0, 3); got != 0 {
		t.Fatalf("Clamp(-1,0,3) = %d, want 0", got)
	}
	if got := Clamp(2, 0, 3); got != 2 {
		t.Fatalf("Clamp(2,0,3) = %d, want 2", got)
	}
}

func TestIsFiniteVec3(t *testing.T) {
	if !IsFiniteVec3(mgl32.Vec3{1, 2, 3}) {
		t.Fatalf("expected a finite vector to be reported finite")
	}
	var nan float32
	nan = nan / nan
	if IsFiniteVec3(mgl32.Vec3{nan, 0, 0}) {
		t.Fatalf("expected a NaN component to be reported non-finite")
	}
}

func TestOverlapsAABB(t *testing.T) {
	a := cube.Box(0, 0, 0, 1, 1, 1)
	b := cube.Box(0.5, 0.5, 0.5, 2, 2, 2)
	if !OverlapsAABB(a, b) {
		t.Fatalf("expected overlapping boxes to overlap")
	}
	c := cube.Box(5, 5, 5, 6, 6, 6)
	if OverlapsAABB(a, c) {
		t.Fatalf("expected disjoint boxes to not overlap")
	}
}

func TestAABBFromPoints(t *testing.T) {
	bb := AABBFromPoints(mgl32.Vec3{1, -1, 0}, mgl32.Vec3{-2, 3, 5})
	if bb.Min() != (mgl32.Vec3{-2, -1, 0}) {
		t.Fatalf("Min = %v, want (-2,-1,0)", bb.Min())
	}
	if bb.Max() != (mgl32.Vec3{1, 3, 5}) {
		t.Fatalf("Max = %v, want (1,3,5)", bb.Max())
	}
}

func TestVec3HzDistSqr(t *testing.T) {
	if got := Vec3HzDistSqr(mgl32.Vec3{3, 100, 4}); got != 25 {
		t.Fatalf("Vec3HzDistSqr = %f, want 25 (ignoring y)", got)
	}
}
