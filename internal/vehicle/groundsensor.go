package vehicle

import (
	"drivekit/internal/engine"
	"drivekit/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var worldUp = rl.Vector3{Y: 1}

// GroundSensor probes for ground contact with a single downward ray.
// One ray, not a multi-point sample: cheaper and robust enough for
// arcade handling.
type GroundSensor struct {
	rayLength float32
	grounded  bool
	normal    rl.Vector3
}

func NewGroundSensor() *GroundSensor {
	return &GroundSensor{
		rayLength: minRayLength,
		normal:    worldUp,
	}
}

// Configure derives the ray length from the body's bounds. Degenerate
// bounds clamp to the minimum so the ray is never zero length.
func (s *GroundSensor) Configure(bounds physics.AABB) {
	s.rayLength = bounds.HalfHeight() + rayMargin
	if s.rayLength < minRayLength {
		s.rayLength = minRayLength
	}
}

// Update casts the ground ray. A nil caster or a miss both resolve to
// ungrounded with a world-up normal; an ungrounded frame is always a safe
// fallback, so raycast failures never abort the control loop.
func (s *GroundSensor) Update(caster engine.WorldAccess, origin, down rl.Vector3, ignore *engine.GameObject) {
	if caster == nil {
		s.grounded = false
		s.normal = worldUp
		return
	}

	hit, ok := caster.Raycast(origin, down, s.rayLength, ignore)
	if !ok {
		s.grounded = false
		s.normal = worldUp
		return
	}

	s.grounded = true
	s.normal = hit.Normal
	if rl.Vector3Length(s.normal) < 1e-6 {
		s.normal = worldUp
	}
}

func (s *GroundSensor) Grounded() bool {
	return s.grounded
}

// Normal returns the contact normal of the last hit, or world-up when
// ungrounded.
func (s *GroundSensor) Normal() rl.Vector3 {
	return s.normal
}

func (s *GroundSensor) RayLength() float32 {
	return s.rayLength
}
