package geometry

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus"
)

func quietLog() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func floorVerts() []mgl32.Vec3 {
	return []mgl32.Vec3{
		{-5, 0, -5}, {5, 0, -5}, {5, 0, 5},
		{-5, 0, -5}, {5, 0, 5}, {-5, 0, 5},
	}
}

func TestRegistry_AddRemoveRoundTrip(t *testing.T) {
	reg := NewRegistry(quietLog())
	before := reg.Checksum()

	if err := reg.Add(1, floorVerts(), nil, KindStatic, mgl32.Ident4()); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, ok := reg.Environment(1); !ok {
		t.Fatalf("expected handle 1 to be present after add")
	}

	reg.Remove(1)
	if _, ok := reg.Environment(1); ok {
		t.Fatalf("expected handle 1 to be gone after remove")
	}
	if after := reg.Checksum(); after != before {
		t.Fatalf("checksum after add+remove = %d, want %d (pre-add state)", after, before)
	}
}

func TestRegistry_AddDuplicateHandle(t *testing.T) {
	reg := NewRegistry(quietLog())
	if err := reg.Add(1, floorVerts(), nil, KindStatic, mgl32.Ident4()); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := reg.Add(1, floorVerts(), nil, KindStatic, mgl32.Ident4()); err == nil {
		t.Fatalf("expected an error re-adding an existing handle")
	}
}

func TestRegistry_AddRejectsInvalidGeometry(t *testing.T) {
	reg := NewRegistry(quietLog())
	if err := reg.Add(1, []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}}, nil, KindStatic, mgl32.Ident4()); err == nil {
		t.Fatalf("expected an error for fewer than 3 vertices")
	}
	if err := reg.Add(2, floorVerts(), []uint32{0, 1, 6}, KindStatic, mgl32.Ident4()); err == nil {
		t.Fatalf("expected an error for an out-of-range index")
	}
}

func TestRegistry_AddRejectsNonFiniteMatrix(t *testing.T) {
	reg := NewRegistry(quietLog())
	var nan float32
	nan = nan / nan
	bad := mgl32.Ident4()
	bad[0] = nan
	if err := reg.Add(1, floorVerts(), nil, KindStatic, bad); err == nil {
		t.Fatalf("expected an error for a non-finite world matrix")
	}
}

func TestRegistry_UpdateUnknownHandle(t *testing.T) {
	reg := NewRegistry(quietLog())
	if err := reg.UpdateTransform(99, mgl32.Ident4()); err == nil {
		t.Fatalf("expected an error updating an unknown handle")
	}
}

func TestRegistry_QueryRayHitsClosest(t *testing.T) {
	reg := NewRegistry(quietLog())
	if err := reg.Add(1, floorVerts(), nil, KindStatic, mgl32.Ident4()); err != nil {
		t.Fatalf("add: %v", err)
	}
	hit, ok := reg.QueryRay(mgl32.Vec3{0, 5, 0}, mgl32.Vec3{0, -1, 0}, 100)
	if !ok {
		t.Fatalf("expected a ray hit against the floor")
	}
	if hit.Handle != 1 {
		t.Fatalf("hit.Handle = %d, want 1", hit.Handle)
	}
	if hit.Point.Y() != 0 {
		t.Fatalf("hit.Point = %v, want y=0", hit.Point)
	}
}

func TestRegistry_KinematicDelta(t *testing.T) {
	reg := NewRegistry(quietLog())
	if err := reg.Add(2, floorVerts(), nil, KindKinematic, mgl32.Ident4()); err != nil {
		t.Fatalf("add: %v", err)
	}
	reg.RotateKinematicHistory()
	moved := mgl32.Translate3D(0.01, 0, 0)
	if err := reg.UpdateTransform(2, moved); err != nil {
		t.Fatalf("update transform: %v", err)
	}
	delta := reg.Delta(2)
	p := mgl32.TransformCoordinate(mgl32.Vec3{0, 0, 0}, delta)
	if p.X() < 0.009 || p.X() > 0.011 {
		t.Fatalf("delta.x = %f, want ~0.01", p.X())
	}
}
