// Package trajectory implements the parabolic raycast used to preview a
// teleport target: given an origin, an initial velocity, and gravity, it
// samples a ballistic arc and reports the first triangle it would strike.
package trajectory

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/felixtrz/immersive-web-sdk/geometry"
	"github.com/felixtrz/immersive-web-sdk/phys"
)

// Result is the outcome of Sample. Hit is false for the no-hit sentinel.
type Result struct {
	Hit    bool
	Handle int32
	Point  mgl32.Vec3
	Normal mgl32.Vec3
}

// Sample casts a parabolic arc from origin with initial velocity vel under
// gravity g (a positive scalar applied along -up), stopping at minY, and
// returns the first triangle it strikes across reg. Deterministic: the same
// registry state and inputs always produce the same Result.
func Sample(reg *geometry.Registry, origin, vel, up mgl32.Vec3, minY, g float32, segments int) Result {
	if segments <= 0 {
		segments = phys.DefaultTrajectorySegments
	}

	vy := vel.Dot(up)
	py := origin.Dot(up)

	tEnd, ok := endTime(py, vy, minY, g)
	if !ok {
		return Result{}
	}

	peakY := py
	if vy > 0 {
		peakY = py + vy*vy/(2*g)
	}
	peak := pointAtHeight(origin, up, peakY-py)
	end := arcPoint(origin, vel, up, g, tEnd)

	bounds := phys.AABBFromPoints(origin, peak, end)
	candidates := reg.QueryEnvironments(func(env *geometry.Environment) bool {
		return phys.OverlapsAABB(env.WorldAABB(), bounds)
	})
	if len(candidates) == 0 {
		return Result{}
	}

	prev := origin
	bestT := float32(-1)
	var best Result

	for i := 1; i <= segments; i++ {
		t := tEnd * float32(i) / float32(segments)
		cur := arcPoint(origin, vel, up, g, t)

		for _, env := range candidates {
			point, normal, segT, hit := env.IntersectSegment(prev, cur)
			if !hit {
				continue
			}
			globalT := (float32(i-1) + segT) / float32(segments)
			if bestT < 0 || globalT < bestT {
				bestT = globalT
				best = Result{Hit: true, Handle: env.Handle, Point: point, Normal: normal}
			}
		}
		if bestT >= 0 {
			return best
		}
		prev = cur
	}
	return Result{}
}

// endTime solves py + vy*t - (1/2) g t^2 = minY for the positive root, i.e.
// the time the arc first reaches minY.
func endTime(py, vy, minY, g float32) (float32, bool) {
	if g <= 0 {
		return 0, false
	}
	disc := vy*vy + 2*g*(py-minY)
	if disc < 0 {
		return 0, false
	}
	t := (vy + math32.Sqrt(disc)) / g
	if t <= 0 {
		return 0, false
	}
	return t, true
}

// arcPoint evaluates the position along the ballistic arc at time t.
func arcPoint(origin, vel, up mgl32.Vec3, g, t float32) mgl32.Vec3 {
	horizontalVel := vel.Sub(up.Mul(vel.Dot(up)))
	drop := 0.5 * g * t * t
	vy := vel.Dot(up)
	return origin.Add(horizontalVel.Mul(t)).Add(up.Mul(vy*t - drop))
}

func pointAtHeight(origin, up mgl32.Vec3, deltaAlongUp float32) mgl32.Vec3 {
	return origin.Add(up.Mul(deltaAlongUp))
}
