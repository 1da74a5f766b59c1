package player

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestPending_LaterCommandOverwritesEarlierOfSameKind(t *testing.T) {
	var p Pending
	p.Push(Slide{V: mgl32.Vec3{1, 0, 0}})
	p.Push(Slide{V: mgl32.Vec3{2, 0, 0}})
	if p.Slide.V != (mgl32.Vec3{2, 0, 0}) {
		t.Fatalf("Slide = %v, want the later push to win", p.Slide.V)
	}
}

func TestPending_ResetClearsEverything(t *testing.T) {
	var p Pending
	p.Push(Slide{V: mgl32.Vec3{1, 0, 0}})
	p.Push(Teleport{P: mgl32.Vec3{0, 1, 0}})
	p.Push(Jump{})
	p.Reset()
	if p.Slide != nil || p.Teleport != nil || p.Jump {
		t.Fatalf("expected Reset to clear all pending commands, got %+v", p)
	}
}
