package vehicle

import (
	"drivekit/internal/engine"
	"drivekit/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	// Ray extends a little past the body's lower face so resting contact
	// still registers as grounded.
	rayMargin    = 0.1
	minRayLength = 0.5

	// Fraction of the half-height the center of mass is pulled down by.
	heightBias = 0.55

	// Ray origin is lifted off the center of mass to avoid starting the
	// cast inside the body's own collider.
	originLift = 0.05
)

// GeometryProfile holds the size-derived parameters of a bound body. It is
// computed once per bind and stays immutable until the next bind.
type GeometryProfile struct {
	Bounds       physics.AABB
	RayLength    float32
	CenterOffset rl.Vector3
}

// ComputeBounds returns the world AABB enclosing every collider on the
// object and its children. Objects with no colliders get a degenerate
// zero-size box at their origin, which callers treat as "unknown size".
func ComputeBounds(g *engine.GameObject) physics.AABB {
	if g == nil {
		return physics.DegenerateAABB(rl.Vector3{})
	}
	bounds, ok := physics.ObjectBounds(g)
	if !ok {
		return physics.DegenerateAABB(g.WorldPosition())
	}
	return bounds
}

// LowerCenterOfMass derives a center-of-mass offset from the body's bounds.
// Pulling the center down increases the restoring torque against tipping,
// which keeps tall shapes drivable without per-vehicle tuning.
func LowerCenterOfMass(bounds physics.AABB) rl.Vector3 {
	if bounds.IsDegenerate() {
		return rl.Vector3{}
	}
	return rl.Vector3{Y: -bounds.HalfHeight() * heightBias}
}

// NewGeometryProfile derives all size-dependent parameters for a body.
func NewGeometryProfile(g *engine.GameObject) GeometryProfile {
	bounds := ComputeBounds(g)
	rayLength := bounds.HalfHeight() + rayMargin
	if rayLength < minRayLength {
		rayLength = minRayLength
	}
	return GeometryProfile{
		Bounds:       bounds,
		RayLength:    rayLength,
		CenterOffset: LowerCenterOfMass(bounds),
	}
}
