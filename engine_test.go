package locomotion

import (
	"context"
	"testing"
	"time"

	"github.com/felixtrz/immersive-web-sdk/config"
	"github.com/felixtrz/immersive-web-sdk/transport"
)

func TestEngine_RunAndClose(t *testing.T) {
	engine := New(nil, config.WithFrequency(120))

	ctx := context.Background()
	done := make(chan error, 1)
	go func() { done <- engine.Run(ctx) }()

	engine.Worker.HotIn <- transport.HotPath{float32(transport.KindInit), 0, 2, 0}

	select {
	case msg := <-engine.Worker.PosOut:
		if msg.Kind() != transport.KindPositionUpdate {
			t.Fatalf("Kind() = %v, want KindPositionUpdate", msg.Kind())
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for the engine to produce a position update")
	}

	if err := engine.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned an error after Close: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for Run to return after Close")
	}
}
