package transport

import (
	"context"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus"

	"github.com/felixtrz/immersive-web-sdk/config"
	"github.com/felixtrz/immersive-web-sdk/geometry"
	"github.com/felixtrz/immersive-web-sdk/player"
)

func newTestWorker(t *testing.T) *Worker {
	t.Helper()
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	cfg := config.New(config.WithFrequency(120))
	reg := geometry.NewRegistry(log)
	verts := []mgl32.Vec3{
		{-10, 0, -10}, {10, 0, -10}, {10, 0, 10},
		{-10, 0, -10}, {10, 0, 10}, {-10, 0, 10},
	}
	if err := reg.Add(1, verts, nil, geometry.KindStatic, mgl32.Ident4()); err != nil {
		t.Fatalf("add floor: %v", err)
	}
	core := player.NewCore(log, cfg, reg)
	return NewWorker(log, cfg, reg, core)
}

func TestWorker_IgnoresCommandsBeforeInit(t *testing.T) {
	w := newTestWorker(t)
	w.handleHotPath(HotPath{float32(KindSlide), 1, 0, 0})
	if w.pending.Slide != nil {
		t.Fatalf("expected Slide to be ignored before Init")
	}
}

func TestWorker_InitThenSlideProducesPositionUpdate(t *testing.T) {
	w := newTestWorker(t)
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	done := make(chan struct{})
	go func() {
		_ = w.Run(ctx)
		close(done)
	}()

	w.HotIn <- HotPath{float32(KindInit), 0, 2, 0}
	w.HotIn <- HotPath{float32(KindSlide), 1, 0, 0}

	select {
	case msg := <-w.PosOut:
		if msg.Kind() != KindPositionUpdate {
			t.Fatalf("Kind() = %v, want KindPositionUpdate", msg.Kind())
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for a position update")
	}

	<-done
}

func TestWorker_ParabolicRaycastRespondsSynchronously(t *testing.T) {
	w := newTestWorker(t)
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	done := make(chan struct{})
	go func() {
		_ = w.Run(ctx)
		close(done)
	}()

	w.HotIn <- HotPath{float32(KindInit), 0, 2, 0}
	w.HotIn <- HotPath{float32(KindParabolicRaycast), 0, 2, 0, 0, 5, 0}

	select {
	case msg := <-w.RaycastOut:
		if msg.Kind() != KindRaycastUpdate {
			t.Fatalf("Kind() = %v, want KindRaycastUpdate", msg.Kind())
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for a raycast response")
	}

	<-done
}
