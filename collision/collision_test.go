package collision

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus"

	"github.com/felixtrz/immersive-web-sdk/geometry"
)

var up = mgl32.Vec3{0, 1, 0}

func quietLog() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func TestClassify(t *testing.T) {
	slopeMaxRad := float32(50 * math.Pi / 180)

	if got := Classify(mgl32.Vec3{0, 1, 0}, up, slopeMaxRad); got != Floor {
		t.Fatalf("Classify(up) = %v, want Floor", got)
	}
	if got := Classify(mgl32.Vec3{0, -1, 0}, up, slopeMaxRad); got != Ceiling {
		t.Fatalf("Classify(down) = %v, want Ceiling", got)
	}
	if got := Classify(mgl32.Vec3{1, 0, 0}, up, slopeMaxRad); got != Wall {
		t.Fatalf("Classify(horizontal) = %v, want Wall", got)
	}
}

func flatFloorRegistry(t *testing.T) *geometry.Registry {
	t.Helper()
	reg := geometry.NewRegistry(quietLog())
	verts := []mgl32.Vec3{
		{-10, 0, -10}, {10, 0, -10}, {10, 0, 10},
		{-10, 0, -10}, {10, 0, 10}, {-10, 0, 10},
	}
	if err := reg.Add(1, verts, nil, geometry.KindStatic, mgl32.Ident4()); err != nil {
		t.Fatalf("add floor: %v", err)
	}
	return reg
}

func TestGroundProbe_HitsFloorBelow(t *testing.T) {
	reg := flatFloorRegistry(t)
	hit, ok := GroundProbe(reg, mgl32.Vec3{0, 1, 0}, 0.75)
	if !ok {
		t.Fatalf("expected the probe to hit the floor")
	}
	if hit.Point.Y() != 0 {
		t.Fatalf("hit.Point.y = %f, want 0", hit.Point.Y())
	}
}

func TestGroundDistance_NoHitIsInfinite(t *testing.T) {
	if d := GroundDistance(geometry.Hit{}, false, 5, 0.75); !math.IsInf(float64(d), 1) {
		t.Fatalf("GroundDistance without a hit = %f, want +Inf", d)
	}
}

func TestResolve_PenetratingFloorPushesUpAndGrounds(t *testing.T) {
	reg := flatFloorRegistry(t)
	// Capsule center at y=0.65, so its lower sphere center sits 0.1m below the floor's surface; radius 0.3, halfHeight 0.75.
	res := Resolve(reg, mgl32.Vec3{0, 0.75 - 0.1, 0}, mgl32.Vec3{0, -1, 0}, up, 0.3, 0.75, float32(50*math.Pi/180))
	if !res.Grounded {
		t.Fatalf("expected Grounded after resolving floor penetration")
	}
	if res.Velocity.Y() < -1e-4 {
		t.Fatalf("expected downward velocity to be zeroed, got %f", res.Velocity.Y())
	}
	if res.Position.Y() <= 0.75-0.1 {
		t.Fatalf("expected the capsule to be pushed upward, got y=%f", res.Position.Y())
	}
}

func TestResolve_NoContactsLeavesStateUnchanged(t *testing.T) {
	reg := flatFloorRegistry(t)
	pos := mgl32.Vec3{0, 5, 0}
	vel := mgl32.Vec3{1, -1, 0}
	res := Resolve(reg, pos, vel, up, 0.3, 0.75, float32(50*math.Pi/180))
	if res.Position != pos || res.Velocity != vel {
		t.Fatalf("expected an unchanged pose far from any geometry, got pos=%v vel=%v", res.Position, res.Velocity)
	}
	if res.Grounded {
		t.Fatalf("expected Grounded == false far from any geometry")
	}
}
