// Package collision implements the capsule ground probe and depenetration
// resolver that the locomotion core runs against the geometry registry every
// tick.
package collision

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/felixtrz/immersive-web-sdk/geometry"
)

// probeSegmentLength bounds how far below the capsule the ground probe
// looks; ground_distance beyond this reads as +Inf per spec 4.4 step 5.
const probeSegmentLength = 4.0

// GroundProbe casts a short downward segment from the capsule's lower
// sphere center and returns the closest hit across every environment in the
// registry, in world space. halfHeight is the capsule's H.
func GroundProbe(reg *geometry.Registry, center mgl32.Vec3, halfHeight float32) (geometry.Hit, bool) {
	lowerSphere := center.Sub(mgl32.Vec3{0, halfHeight, 0})
	return reg.QueryRay(lowerSphere, mgl32.Vec3{0, -1, 0}, probeSegmentLength)
}

// GroundDistance returns |hit.Y - (playerY - H)|, or +Inf when there is no
// hit, per spec 4.4 step 5.
func GroundDistance(hit geometry.Hit, hasHit bool, playerY, halfHeight float32) float32 {
	if !hasHit {
		return math32.Inf(1)
	}
	d := hit.Point.Y() - (playerY - halfHeight)
	if d < 0 {
		d = -d
	}
	return d
}
