// Package config holds the locomotion engine's tunables and validates the
// runtime Config message the host may send to adjust them mid-session.
package config

import (
	"github.com/felixtrz/immersive-web-sdk/phys"
)

// Config holds every tunable named by spec 6 and the physics defaults spec
// 4.4 references. Values are always carried at runtime, never baked in as
// compile-time constants. A host Config message (ApplyMessage) can override
// RayGravity, MaxDropDistance, JumpHeight, JumpCooldown and Frequency; the
// other fields are set only at construction. Worker.Run reads Frequency
// once when it starts, so a later Frequency change does not alter the tick
// rate of a loop already running.
type Config struct {
	Frequency float32 // ticks per second, default 60

	// Gravity and RayGravity are both positive magnitudes, applied along -up
	// by the integrator and trajectory sampler respectively; the sign is
	// never carried in configuration, only in where each is subtracted.
	// Independent knobs: a teleport arc's gravity is not derived from the
	// player's own fall gravity.
	Gravity    float32 // integrator gravity magnitude, m/s^2
	RayGravity float32 // trajectory sampler gravity magnitude, m/s^2

	JumpHeight   float32
	JumpCooldown float32

	MaxDropDistance float32

	FloatHeight float32
	Radius      float32
	HalfHeight  float32
	Mass        float32

	SlopeMaxAngleDegrees float32

	MaxSpringForce float32
	SpringK        float32
	SpringDamping  float32

	TrajectorySegments int
}

// Option mutates a Config being built by New.
type Option func(*Config)

// New builds a Config from the engine defaults with opts applied in order.
func New(opts ...Option) *Config {
	c := &Config{
		Frequency:            60,
		Gravity:              9.8,
		RayGravity:           0.4,
		JumpHeight:           1.5,
		JumpCooldown:         0.1,
		MaxDropDistance:      5.0,
		FloatHeight:          0.5,
		Radius:               0.25,
		HalfHeight:           0.9,
		Mass:                 70,
		SlopeMaxAngleDegrees: phys.DefaultSlopeMaxAngleDegrees,
		MaxSpringForce:       1500,
		SpringK:              900,
		SpringDamping:        60,
		TrajectorySegments:   phys.DefaultTrajectorySegments,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GroundingThreshold is the ground_distance below which the floating ground
// force engages, per spec 4.4 step 6: float_height + R + 0.15m.
func (c *Config) GroundingThreshold() float32 {
	return c.FloatHeight + c.Radius + 0.15
}

func WithFrequency(hz float32) Option { return func(c *Config) { c.Frequency = hz } }
func WithGravity(g float32) Option    { return func(c *Config) { c.Gravity = g } }
func WithRayGravity(g float32) Option { return func(c *Config) { c.RayGravity = g } }
func WithJumpHeight(h float32) Option { return func(c *Config) { c.JumpHeight = h } }
func WithJumpCooldown(s float32) Option {
	return func(c *Config) { c.JumpCooldown = s }
}
func WithMaxDropDistance(d float32) Option {
	return func(c *Config) { c.MaxDropDistance = d }
}
func WithCapsule(radius, halfHeight float32) Option {
	return func(c *Config) { c.Radius, c.HalfHeight = radius, halfHeight }
}
func WithSlopeMaxAngleDegrees(deg float32) Option {
	return func(c *Config) { c.SlopeMaxAngleDegrees = deg }
}
