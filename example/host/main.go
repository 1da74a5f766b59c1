// Command host runs a minimal locomotion.Engine session against a YAML
// scene fixture and prints live stats to the terminal. It exists to
// exercise the engine end-to-end, not as a production host implementation.
package main

import (
	"context"
	"os"
	"os/signal"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/felixtrz/immersive-web-sdk"
	"github.com/felixtrz/immersive-web-sdk/config"
	exhost "github.com/felixtrz/immersive-web-sdk/example/host"
	"github.com/felixtrz/immersive-web-sdk/transport"
)

func main() {
	log := logrus.New()
	log.Formatter = &logrus.TextFormatter{ForceColors: true}

	hostCfg, err := exhost.LoadHostConfig()
	if err != nil {
		log.WithError(err).Fatal("host: could not load host.toml")
	}

	scene, err := exhost.LoadScene(hostCfg.ScenePath)
	if err != nil {
		log.WithError(err).Fatal("host: could not load scene fixture")
	}

	engine := locomotion.New(log, config.WithFrequency(hostCfg.Frequency))

	for _, mesh := range scene.Meshes {
		if err := engine.Registry.Add(mesh.Handle, mesh.Vertices(), mesh.Indices, mesh.GeometryKind(), mesh.WorldMatrix()); err != nil {
			log.WithError(err).WithField("handle", mesh.Handle).Warn("host: could not register scene mesh")
		}
	}

	engine.Worker.HotIn <- transport.HotPath{
		float32(transport.KindInit),
		scene.StartPosition[0], scene.StartPosition[1], scene.StartPosition[2],
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		if err := engine.Run(ctx); err != nil {
			log.WithError(err).Error("host: engine run loop exited with error")
		}
	}()

	monitor, err := exhost.NewMonitor()
	if err != nil {
		log.WithError(err).Fatal("host: could not start terminal monitor")
	}
	defer monitor.Close()

	// The monitor's raw terminal mode delivers ctrl-c as a key event rather
	// than SIGINT, so a quit key also ends the session.
	go func() {
		for !monitor.PollQuit() {
		}
		stop()
	}()

	go drainOutputs(engine)

	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			pos := engine.Core.Player.Pos
			monitor.Render(engine.Worker.Stats.Snapshot(), [3]float32{pos.X(), pos.Y(), pos.Z()}, engine.Core.Player.Grounded)
		}
	}
}

// drainOutputs discards PositionUpdate/RaycastUpdate messages the worker
// emits; a real host would forward these to the render thread.
func drainOutputs(engine *locomotion.Engine) {
	for {
		select {
		case <-engine.Worker.PosOut:
		case <-engine.Worker.RaycastOut:
		}
	}
}
