package config

import "testing"

func TestNewDefaults(t *testing.T) {
	c := New()
	if c.Frequency != 60 {
		t.Fatalf("Frequency = %f, want 60", c.Frequency)
	}
	if c.Radius != 0.25 || c.HalfHeight != 0.9 {
		t.Fatalf("capsule dims = (%f,%f), want (0.25,0.9)", c.Radius, c.HalfHeight)
	}
}

func TestOptionsOverrideDefaults(t *testing.T) {
	c := New(WithFrequency(90), WithCapsule(0.4, 0.9), WithJumpHeight(2))
	if c.Frequency != 90 {
		t.Fatalf("Frequency = %f, want 90", c.Frequency)
	}
	if c.Radius != 0.4 || c.HalfHeight != 0.9 {
		t.Fatalf("capsule dims = (%f,%f), want (0.4,0.9)", c.Radius, c.HalfHeight)
	}
	if c.JumpHeight != 2 {
		t.Fatalf("JumpHeight = %f, want 2", c.JumpHeight)
	}
}

func TestApplyMessage_AppliesKnownFields(t *testing.T) {
	c := New()
	err := c.ApplyMessage(map[string]interface{}{
		"jumpHeight":      2.5,
		"maxDropDistance": 30.0,
	})
	if err != nil {
		t.Fatalf("ApplyMessage: %v", err)
	}
	if c.JumpHeight != 2.5 {
		t.Fatalf("JumpHeight = %f, want 2.5", c.JumpHeight)
	}
	if c.MaxDropDistance != 30 {
		t.Fatalf("MaxDropDistance = %f, want 30", c.MaxDropDistance)
	}
}

func TestApplyMessage_RejectsUnknownField(t *testing.T) {
	c := New()
	if err := c.ApplyMessage(map[string]interface{}{"bogus": 1.0}); err == nil {
		t.Fatalf("expected an error for an unrecognized field")
	}
}

func TestApplyMessage_RejectsNegativeJumpHeight(t *testing.T) {
	c := New()
	if err := c.ApplyMessage(map[string]interface{}{"jumpHeight": -1.0}); err == nil {
		t.Fatalf("expected an error for a negative jumpHeight")
	}
}

func TestApplyMessage_RejectsNegativeRayGravity(t *testing.T) {
	c := New()
	if err := c.ApplyMessage(map[string]interface{}{"rayGravity": -0.4}); err == nil {
		t.Fatalf("expected an error for a negative rayGravity; it is a positive magnitude applied along -up")
	}
}

func TestApplyMessage_RejectsZeroUpdateFrequency(t *testing.T) {
	c := New()
	if err := c.ApplyMessage(map[string]interface{}{"updateFrequency": 0.0}); err == nil {
		t.Fatalf("expected an error for a non-positive updateFrequency")
	}
}
