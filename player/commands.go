package player

import "github.com/go-gl/mathgl/mgl32"

// Command is one pending host instruction for the current tick. At most one
// of each kind is honored per tick; a later command of the same kind
// overwrites an earlier one still pending (spec 4.4 step 1).
type Command interface{ isCommand() }

// Slide sets the horizontal target velocity; V's vertical component is
// ignored and replaced by the integrator's own output.
type Slide struct{ V mgl32.Vec3 }

// Teleport snaps the player to P, clears velocity, and forces a
// re-assessment of grounding on the next tick.
type Teleport struct{ P mgl32.Vec3 }

// Jump requests a jump; only honored when Grounded and cooldown is zero.
type Jump struct{}

// ParabolicRaycast delegates to the trajectory sampler. Unlike the other
// commands it is handled synchronously by Core.Raycast as soon as it
// arrives — it does not mutate registry or player state, so it never waits
// for a tick boundary (spec 4.5).
type ParabolicRaycast struct {
	Origin mgl32.Vec3
	Dir    mgl32.Vec3 // direction * speed
}

func (Slide) isCommand()    {}
func (Teleport) isCommand() {}
func (Jump) isCommand()     {}

// Pending is the coalesced set of commands read at the top of a tick: at
// most one slide, one teleport, and one jump request.
type Pending struct {
	Slide    *Slide
	Teleport *Teleport
	Jump     bool
}

// Push folds cmd into p, letting a later command overwrite an earlier one of
// the same kind.
func (p *Pending) Push(cmd Command) {
	switch c := cmd.(type) {
	case Slide:
		p.Slide = &c
	case Teleport:
		p.Teleport = &c
	case Jump:
		p.Jump = true
	}
}

// Reset clears the pending set after a tick consumes it.
func (p *Pending) Reset() {
	p.Slide = nil
	p.Teleport = nil
	p.Jump = false
}
