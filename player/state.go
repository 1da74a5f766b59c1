// Package player implements the locomotion core: player state, the per-tick
// integrator, and the slide/teleport/jump/parabolic_raycast commands.
package player

import (
	"github.com/go-gl/mathgl/mgl32"
)

// JumpState is the player's jump state machine (spec 4.4).
type JumpState uint8

const (
	Grounded JumpState = iota
	Ascending
	Falling
)

func (s JumpState) String() string {
	switch s {
	case Ascending:
		return "ascending"
	case Falling:
		return "falling"
	default:
		return "grounded"
	}
}

// Player is the locomotion core's authoritative state for one player.
// Position and velocity carry the value they held before their most recent
// SetPos/SetVel call alongside the current one, mirroring the teacher's
// MovementState Last* fields, so the integrator and diagnostics can always
// see both without re-deriving deltas.
type Player struct {
	Pos, LastPos mgl32.Vec3
	Vel, LastVel mgl32.Vec3

	Grounded bool
	Updating bool

	JumpState    JumpState
	JumpCooldown float32

	// GroundHandle is the environment handle the player is currently
	// resting on, or -1 if ungrounded.
	GroundHandle int32

	// FallDistance accumulates downward travel since the player was last
	// grounded, used to enforce Config.MaxDropDistance.
	FallDistance float32

	// Clock accumulates elapsed simulation time, in seconds; Core.Tick
	// advances it by dt on every tick after Init.
	Clock float64

	initialized bool
}

// SetPos records the previous position before installing newPos.
func (p *Player) SetPos(newPos mgl32.Vec3) {
	p.LastPos = p.Pos
	p.Pos = newPos
}

// SetVel records the previous velocity before installing newVel.
func (p *Player) SetVel(newVel mgl32.Vec3) {
	p.LastVel = p.Vel
	p.Vel = newVel
}

// Init sets the player's starting position (the Init message, spec 4.5) and
// marks the player ready for ticking.
func (p *Player) Init(pos mgl32.Vec3) {
	p.Pos, p.LastPos = pos, pos
	p.Vel, p.LastVel = mgl32.Vec3{}, mgl32.Vec3{}
	p.GroundHandle = -1
	p.initialized = true
}

// Ready reports whether Init has been called; spec 4.5's backpressure rule
// ignores every command but Init and Config until this is true.
func (p *Player) Ready() bool { return p.initialized }
