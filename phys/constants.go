// Package phys holds the numeric building blocks shared by every physics
// package in the locomotion engine: vector helpers and AABBs.
package phys

const (
	// Epsilon is the "touching" contact tolerance used throughout the
	// resolver and probes, in meters.
	Epsilon = 1e-4

	// VelocityEpsilon is the tolerance below which two velocities are
	// considered unchanged by a collision response.
	VelocityEpsilon = 1e-5

	// DegenerateTriangleArea is the twice-area (cross-product magnitude)
	// below which a triangle is skipped as degenerate.
	DegenerateTriangleArea = 1e-8

	// MaxDepenetrationPasses bounds the capsule depenetration resolver's
	// iteration budget (spec §4.2: "at most ~4 passes").
	MaxDepenetrationPasses = 4

	// DefaultSlopeMaxAngleDegrees is the default floor/wall threshold.
	DefaultSlopeMaxAngleDegrees = 50.0

	// DefaultTrajectorySegments is the number of straight-line segments the
	// trajectory sampler approximates a ballistic arc with.
	DefaultTrajectorySegments = 30
)
