package collision

import (
	"sort"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/felixtrz/immersive-web-sdk/geometry"
	"github.com/felixtrz/immersive-web-sdk/phys"
)

// Classification is the triangle-normal-vs-up-axis bucket a contact falls
// into, per spec 4.2.
type Classification uint8

const (
	Floor Classification = iota
	Wall
	Ceiling
)

// Classify buckets a world-space triangle normal by its angle to up,
// against the configured slope threshold.
func Classify(normal, up mgl32.Vec3, slopeMaxRad float32) Classification {
	angle := math32.Acos(phys.Clamp(normal.Dot(up), -1, 1))
	switch {
	case angle <= slopeMaxRad:
		return Floor
	case angle > math32.Pi-slopeMaxRad:
		return Ceiling
	default:
		return Wall
	}
}

// Resolution is the outcome of Resolve: the corrected position, the velocity
// after floor/ceiling components were zeroed, and whether grounded should be
// considered true for the tick.
type Resolution struct {
	Position     mgl32.Vec3
	Velocity     mgl32.Vec3
	Grounded     bool
	Unconverged  int
}

// Resolve depenetrates a vertical capsule against every contact returned by
// the registry, in at most phys.MaxDepenetrationPasses passes. Contacts are
// sorted so the deepest penetration is resolved first within a pass ("smaller
// penetration depth resolved last", spec 4.2); the pose is updated between
// each correction so later contacts see the corrected position.
func Resolve(reg *geometry.Registry, position, velocity, up mgl32.Vec3, radius, halfHeight, slopeMaxRad float32) Resolution {
	res := Resolution{Position: position, Velocity: velocity}

	for pass := 0; pass < phys.MaxDepenetrationPasses; pass++ {
		contacts := reg.QueryCapsule(res.Position, radius, halfHeight)
		if len(contacts) == 0 {
			return res
		}

		sort.Slice(contacts, func(i, j int) bool {
			return contacts[i].Penetration > contacts[j].Penetration
		})

		anyResolved := false
		// moved accumulates this pass's corrections so each later contact's
		// depth is measured against the already-corrected pose.
		moved := mgl32.Vec3{}
		for _, c := range contacts {
			depth := c.Penetration - moved.Dot(c.Normal)
			if depth <= phys.Epsilon {
				continue
			}
			anyResolved = true
			before := res.Position

			switch Classify(c.Normal, up, slopeMaxRad) {
			case Floor:
				res.Position = res.Position.Add(up.Mul(depth))
				if res.Velocity.Dot(up) < 0 {
					res.Velocity = res.Velocity.Sub(up.Mul(res.Velocity.Dot(up)))
				}
				res.Grounded = true
			case Ceiling:
				res.Position = res.Position.Sub(up.Mul(depth))
				if res.Velocity.Dot(up) > 0 {
					res.Velocity = res.Velocity.Sub(up.Mul(res.Velocity.Dot(up)))
				}
			case Wall:
				horizontal := mgl32.Vec3{c.Normal.X(), 0, c.Normal.Z()}
				if horizontal.LenSqr() > phys.Epsilon*phys.Epsilon {
					horizontal = horizontal.Normalize()
					res.Position = res.Position.Add(horizontal.Mul(depth))
					along := res.Velocity.Dot(horizontal)
					if along < 0 {
						res.Velocity = res.Velocity.Sub(horizontal.Mul(along))
					}
				}
			}
			moved = moved.Add(res.Position.Sub(before))
		}

		if !anyResolved {
			return res
		}
	}

	remaining := reg.QueryCapsule(res.Position, radius, halfHeight)
	res.Unconverged = len(remaining)
	return res
}
