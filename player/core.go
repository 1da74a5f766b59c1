package player

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus"

	"github.com/felixtrz/immersive-web-sdk/collision"
	"github.com/felixtrz/immersive-web-sdk/config"
	"github.com/felixtrz/immersive-web-sdk/geometry"
	"github.com/felixtrz/immersive-web-sdk/phys"
	"github.com/felixtrz/immersive-web-sdk/trajectory"
)

var up = mgl32.Vec3{0, 1, 0}

// PositionUpdate is emitted when the tick's Updating flag is set (spec 4.4
// step 9).
type PositionUpdate struct {
	Position mgl32.Vec3
	Grounded bool
}

// RaycastResult answers one ParabolicRaycast command.
type RaycastResult struct {
	Hit    bool
	Point  mgl32.Vec3
	Normal mgl32.Vec3
}

// Core owns the Player and runs the per-tick integrator against a shared
// geometry Registry. It has no knowledge of the transport wire format.
type Core struct {
	log *logrus.Logger
	cfg *config.Config
	reg *geometry.Registry

	Player Player
}

// NewCore constructs a Core bound to reg and cfg. log may be nil.
func NewCore(log *logrus.Logger, cfg *config.Config, reg *geometry.Registry) *Core {
	if log == nil {
		log = logrus.New()
	}
	c := &Core{log: log, cfg: cfg, reg: reg}
	c.Player.GroundHandle = -1
	return c
}

// Raycast answers a ParabolicRaycast command synchronously. It reads the
// registry but never mutates registry or player state, so the transport
// layer may call it as soon as the request arrives rather than waiting for
// a tick boundary (spec 4.5).
func (c *Core) Raycast(req ParabolicRaycast) RaycastResult {
	if !phys.IsFiniteVec3(req.Origin) || !phys.IsFiniteVec3(req.Dir) {
		return RaycastResult{}
	}
	minY := req.Origin.Y() - c.cfg.MaxDropDistance
	r := trajectory.Sample(c.reg, req.Origin, req.Dir, up, minY, c.cfg.RayGravity, c.cfg.TrajectorySegments)
	return RaycastResult{Hit: r.Hit, Point: r.Point, Normal: r.Normal}
}

// Tick advances the player by one fixed step, applying pending as described
// in spec 4.4. It returns a PositionUpdate when the tick should emit one.
func (c *Core) Tick(dt float32, pending Pending) (update *PositionUpdate) {
	if !c.Player.Ready() {
		return nil
	}
	c.Player.Clock += float64(dt)

	// RotateKinematicHistory must run at the tick boundary, after this
	// tick's Delta reads have consumed the motion since the last
	// UpdateKinematicEnvironment message. Running it first would clobber
	// prevTransform before step 2 ever reads it, making Delta always
	// identity.
	defer c.reg.RotateKinematicHistory()

	// Step 2: kinematic platform follow.
	if c.Player.Grounded && c.Player.GroundHandle >= 0 {
		if _, ok := c.reg.Environment(c.Player.GroundHandle); ok {
			delta := c.reg.Delta(c.Player.GroundHandle)
			c.Player.SetPos(mgl32.TransformCoordinate(c.Player.Pos, delta))
		}
	}

	// Step 3: apply input.
	wasUpdating := false
	if pending.Teleport != nil {
		if !phys.IsFiniteVec3(pending.Teleport.P) {
			c.log.Warn("player: teleport with non-finite target, tick skipped")
			return nil
		}
		c.Player.SetPos(pending.Teleport.P)
		c.Player.SetVel(mgl32.Vec3{})
		c.Player.Grounded = false
		c.Player.JumpState = Falling
		wasUpdating = true
	}

	horizontalTarget := mgl32.Vec3{}
	hasHorizontalInput := false
	if pending.Slide != nil {
		if !phys.IsFiniteVec3(pending.Slide.V) {
			c.log.Warn("player: slide with non-finite velocity, tick skipped")
			return nil
		}
		horizontalTarget = mgl32.Vec3{pending.Slide.V.X(), 0, pending.Slide.V.Z()}
		hasHorizontalInput = phys.Vec3HzDistSqr(pending.Slide.V) > phys.VelocityEpsilon
		c.Player.SetVel(mgl32.Vec3{horizontalTarget.X(), c.Player.Vel.Y(), horizontalTarget.Z()})
		wasUpdating = wasUpdating || hasHorizontalInput
	}

	if pending.Jump && c.Player.Grounded && c.Player.JumpCooldown <= 0 {
		vUp := math32.Sqrt(2 * c.cfg.Gravity * c.cfg.JumpHeight)
		vel := c.Player.Vel
		vel = mgl32.Vec3{vel.X(), vUp, vel.Z()}
		c.Player.SetVel(vel)
		c.Player.JumpState = Ascending
		c.Player.JumpCooldown = c.cfg.JumpCooldown
		c.Player.Grounded = false
		wasUpdating = true
	}

	if !phys.IsFiniteVec3(c.Player.Pos) || !phys.IsFiniteVec3(c.Player.Vel) {
		c.log.Error("player: numerically invalid state, skipping integration")
		return nil
	}

	// Step 4: gravity.
	vel := c.Player.Vel
	vel = mgl32.Vec3{vel.X(), vel.Y() - c.cfg.Gravity*dt, vel.Z()}
	c.Player.SetVel(vel)

	// Step 5: ground probe.
	hit, hasHit := collision.GroundProbe(c.reg, c.Player.Pos, c.cfg.HalfHeight)
	groundDist := collision.GroundDistance(hit, hasHit, c.Player.Pos.Y(), c.cfg.HalfHeight)

	// Step 6: floating ground force.
	c.Player.Grounded = false
	if hasHit && groundDist < c.cfg.GroundingThreshold() {
		targetY := hit.Point.Y() + c.cfg.HalfHeight + c.cfg.FloatHeight
		errY := targetY - c.Player.Pos.Y()
		springForce := c.cfg.SpringK*errY - c.cfg.SpringDamping*c.Player.Vel.Y()
		springForce = phys.Clamp(springForce, -c.cfg.MaxSpringForce, c.cfg.MaxSpringForce)

		vel := c.Player.Vel
		vel = mgl32.Vec3{vel.X(), vel.Y() + (springForce/c.cfg.Mass)*dt, vel.Z()}
		c.Player.SetVel(vel)

		c.Player.Grounded = true
		c.Player.GroundHandle = hit.Handle
		c.Player.FallDistance = 0
		if c.Player.JumpState != Ascending {
			c.Player.JumpState = Grounded
		}
	} else {
		c.Player.GroundHandle = -1
	}

	// Jump state machine transitions not already covered above.
	if c.Player.JumpState == Ascending && c.Player.Vel.Y() <= 0 {
		c.Player.JumpState = Falling
	}

	// Step 7: apply velocity, with max-drop-distance clamp: once the fall
	// since last grounded exceeds MaxDropDistance, this tick's gravity is
	// given back, so the downward speed stops growing until grounded again.
	step := c.Player.Vel.Mul(dt)
	if !c.Player.Grounded && step.Y() < 0 {
		c.Player.FallDistance += -step.Y()
		if c.Player.FallDistance > c.cfg.MaxDropDistance {
			vel := c.Player.Vel
			vel = mgl32.Vec3{vel.X(), vel.Y() + c.cfg.Gravity*dt, vel.Z()}
			c.Player.SetVel(vel)
			step = vel.Mul(dt)
		}
	}
	c.Player.SetPos(c.Player.Pos.Add(step))

	// Step 8: depenetration.
	res := collision.Resolve(c.reg, c.Player.Pos, c.Player.Vel, up, c.cfg.Radius, c.cfg.HalfHeight, mgl32.DegToRad(c.cfg.SlopeMaxAngleDegrees))
	c.Player.SetPos(res.Position)
	c.Player.SetVel(res.Velocity)
	if res.Grounded {
		c.Player.Grounded = true
		if c.Player.JumpState != Ascending {
			c.Player.JumpState = Grounded
		}
	}

	if c.Player.JumpCooldown > 0 {
		c.Player.JumpCooldown -= dt
		if c.Player.JumpCooldown < 0 {
			c.Player.JumpCooldown = 0
		}
	}

	// Step 9: emit update.
	stillMoving := c.Player.Vel.LenSqr() > phys.VelocityEpsilon*phys.VelocityEpsilon
	c.Player.Updating = wasUpdating || !c.Player.Grounded || stillMoving || hasHorizontalInput
	if c.Player.Updating {
		return &PositionUpdate{Position: c.Player.Pos, Grounded: c.Player.Grounded}
	}
	return nil
}
