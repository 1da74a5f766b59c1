package transport

import (
	"context"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"

	"github.com/felixtrz/immersive-web-sdk/config"
	"github.com/felixtrz/immersive-web-sdk/geometry"
	"github.com/felixtrz/immersive-web-sdk/player"
)

// Worker is the cooperative single-threaded scheduler described in spec
// 4.5: it wakes on either a scheduled tick deadline or an incoming message,
// whichever comes first, and never yields mid-tick. It owns no state of its
// own beyond the pending command set — Player state lives in Core, mesh
// state lives in Registry.
//
// Grounded in the teacher's worker.Submit pool (worker/worker.go): same
// sentry.Recover-guarded goroutine body, generalized from an anonymous job
// queue to the fixed-rate tick/message select loop this engine needs.
type Worker struct {
	log *logrus.Logger
	cfg *config.Config
	reg *geometry.Registry
	core *player.Core

	pending player.Pending

	HotIn  chan HotPath
	StructIn chan Structured

	PosOut     chan HotPath
	RaycastOut chan HotPath

	Stats *Stats
}

// NewWorker builds a Worker around the given Core/Registry/Config. Channel
// buffers are sized generously since the host is expected to keep pace with
// the fixed tick rate; the worker never blocks on output: when an outbound
// channel is full, that position update or raycast response is dropped and
// a warning is logged.
func NewWorker(log *logrus.Logger, cfg *config.Config, reg *geometry.Registry, core *player.Core) *Worker {
	if log == nil {
		log = logrus.New()
	}
	return &Worker{
		log:        log,
		cfg:        cfg,
		reg:        reg,
		core:       core,
		HotIn:      make(chan HotPath, 64),
		StructIn:   make(chan Structured, 16),
		PosOut:     make(chan HotPath, 8),
		RaycastOut: make(chan HotPath, 16),
		Stats:      NewStats(),
	}
}

// Run drives the tick/message loop until ctx is canceled. It never returns
// an error on its own; a panic during message handling or a tick is
// recovered and logged so one bad tick cannot take the whole engine down.
func (w *Worker) Run(ctx context.Context) error {
	period := time.Duration(float64(time.Second) / float64(w.cfg.Frequency))
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	messagesThisTick := 0

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-ticker.C:
			w.runTick(period, messagesThisTick)
			messagesThisTick = 0

		case msg, ok := <-w.HotIn:
			if !ok {
				return nil
			}
			w.handleHotPath(msg)
			messagesThisTick++

		case msg, ok := <-w.StructIn:
			if !ok {
				return nil
			}
			w.handleStructured(msg)
			messagesThisTick++
		}
	}
}

func (w *Worker) runTick(budget time.Duration, messages int) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			sentry.CurrentHub().Recover(r)
			w.log.WithField("panic", r).Error("transport: tick panicked, isolated")
		}
		w.Stats.RecordTick(time.Since(start), budget, messages)
	}()

	dt := float32(budget.Seconds())
	update := w.core.Tick(dt, w.pending)
	w.pending.Reset()

	if update != nil {
		msg := EncodePositionUpdate(update.Position.X(), update.Position.Y(), update.Position.Z(), update.Grounded)
		select {
		case w.PosOut <- msg:
		default:
			w.log.Warn("transport: PosOut full, dropping position update")
		}
	}
}

func (w *Worker) handleHotPath(msg HotPath) {
	defer func() {
		if r := recover(); r != nil {
			sentry.CurrentHub().Recover(r)
			w.log.WithField("panic", r).Error("transport: hot-path message panicked, isolated")
		}
	}()

	if !w.core.Player.Ready() && msg.Kind() != KindInit {
		return
	}

	switch msg.Kind() {
	case KindInit:
		pos, err := DecodeInit(msg)
		if err != nil {
			w.log.WithError(err).Warn("transport: malformed Init")
			return
		}
		w.core.Player.Init(pos)

	case KindSlide:
		cmd, err := DecodeSlide(msg)
		if err != nil {
			w.log.WithError(err).Warn("transport: malformed Slide")
			return
		}
		w.pending.Push(cmd)

	case KindTeleport:
		cmd, err := DecodeTeleport(msg)
		if err != nil {
			w.log.WithError(err).Warn("transport: malformed Teleport")
			return
		}
		w.pending.Push(cmd)

	case KindJump:
		w.pending.Push(player.Jump{})

	case KindParabolicRaycast:
		req, err := DecodeParabolicRaycast(msg)
		if err != nil {
			w.log.WithError(err).Warn("transport: malformed ParabolicRaycast")
			return
		}
		result := w.core.Raycast(req)
		var point, normal [3]float32
		if result.Hit {
			point = [3]float32{result.Point.X(), result.Point.Y(), result.Point.Z()}
			normal = [3]float32{result.Normal.X(), result.Normal.Y(), result.Normal.Z()}
		}
		out := EncodeRaycastUpdate(result.Hit, point, normal)
		select {
		case w.RaycastOut <- out:
		default:
			w.log.Warn("transport: RaycastOut full, dropping raycast response")
		}

	case KindUpdateKinematicEnvironment:
		handle, matrix, err := DecodeUpdateKinematicEnvironment(msg)
		if err != nil {
			w.log.WithError(err).Warn("transport: malformed UpdateKinematicEnvironment")
			return
		}
		if err := w.reg.UpdateTransform(handle, matrix); err != nil {
			w.log.WithError(err).WithField("handle", handle).Warn("transport: UpdateKinematicEnvironment on unknown handle")
		}

	default:
		w.log.WithField("kind", msg.Kind()).Warn("transport: unrecognized hot-path kind")
	}
}

func (w *Worker) handleStructured(msg Structured) {
	defer func() {
		if r := recover(); r != nil {
			sentry.CurrentHub().Recover(r)
			w.log.WithField("panic", r).Error("transport: structured message panicked, isolated")
		}
	}()

	if !w.core.Player.Ready() && msg.Kind != KindConfig {
		return
	}

	switch msg.Kind {
	case KindConfig:
		payload, ok := msg.Payload.(ConfigPayload)
		if !ok {
			w.log.Warn("transport: malformed Config payload")
			return
		}
		if err := w.cfg.ApplyMessage(payload); err != nil {
			w.log.WithError(err).Warn("transport: Config message failed validation")
		}

	case KindAddEnvironment:
		payload, ok := msg.Payload.(AddEnvironmentPayload)
		if !ok {
			w.log.Warn("transport: malformed AddEnvironment payload")
			return
		}
		verts, indices, kind, matrix, err := DecodeAddEnvironment(payload)
		if err != nil {
			w.log.WithError(err).Warn("transport: could not decode AddEnvironment")
			return
		}
		if err := w.reg.Add(payload.Handle, verts, indices, kind, matrix); err != nil {
			w.log.WithError(err).WithField("handle", payload.Handle).Warn("transport: add_environment ignored")
		}

	case KindRemoveEnvironment:
		payload, ok := msg.Payload.(RemoveEnvironmentPayload)
		if !ok {
			w.log.Warn("transport: malformed RemoveEnvironment payload")
			return
		}
		w.reg.Remove(payload.Handle)

	default:
		w.log.WithField("kind", msg.Kind).Warn("transport: unrecognized structured kind")
	}
}

