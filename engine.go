// Package locomotion is the composition root of the VR/AR locomotion
// engine: it wires the geometry registry, the locomotion core, and the
// worker transport into a single runnable Engine.
package locomotion

import (
	"context"

	"github.com/sirupsen/logrus"
	"go.uber.org/automaxprocs/maxprocs"
	"golang.org/x/sync/errgroup"

	"github.com/felixtrz/immersive-web-sdk/config"
	"github.com/felixtrz/immersive-web-sdk/geometry"
	"github.com/felixtrz/immersive-web-sdk/player"
	"github.com/felixtrz/immersive-web-sdk/transport"
)

func init() {
	// GOMAXPROCS defaults to the host's full core count even inside a
	// container cgroup quota; automaxprocs corrects it once at process
	// start so the worker's single tick goroutine doesn't compete with a
	// runtime that thinks it has more parallelism than it does.
	if _, err := maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {})); err != nil {
		logrus.WithError(err).Debug("locomotion: automaxprocs could not adjust GOMAXPROCS")
	}
}

// Engine is one running locomotion session: a registry, a core, and the
// worker transport that drives them at a fixed tick rate.
type Engine struct {
	Log      *logrus.Logger
	Config   *config.Config
	Registry *geometry.Registry
	Core     *player.Core
	Worker   *transport.Worker

	group  *errgroup.Group
	cancel context.CancelFunc
}

// New constructs an Engine with the given logger (nil uses a default
// logrus.Logger) and config options.
func New(log *logrus.Logger, opts ...config.Option) *Engine {
	if log == nil {
		log = logrus.New()
	}
	cfg := config.New(opts...)
	reg := geometry.NewRegistry(log)
	core := player.NewCore(log, cfg, reg)
	worker := transport.NewWorker(log, cfg, reg, core)

	return &Engine{
		Log:      log,
		Config:   cfg,
		Registry: reg,
		Core:     core,
		Worker:   worker,
	}
}

// Run starts the worker's tick loop and blocks until ctx is canceled or the
// loop returns an error. It is safe to call Close concurrently to trigger
// an early, graceful shutdown.
func (e *Engine) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	e.cancel = cancel

	group, groupCtx := errgroup.WithContext(ctx)
	e.group = group

	group.Go(func() error {
		return e.Worker.Run(groupCtx)
	})

	return group.Wait()
}

// Close terminates the worker loop. Per spec 4.5, no cleanup is required
// from the Core beyond releasing its registry, which happens naturally once
// the Engine is dropped.
func (e *Engine) Close() error {
	if e.cancel != nil {
		e.cancel()
	}
	if e.group != nil {
		return e.group.Wait()
	}
	return nil
}
