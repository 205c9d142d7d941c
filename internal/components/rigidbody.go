package components

import (
	"math"

	"drivekit/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Rigidbody is the dynamic state the physics world integrates each step.
// Forces are applied through the Apply* methods, which update velocity
// immediately so that later callers within the same step observe them.
type Rigidbody struct {
	engine.BaseComponent
	Velocity        rl.Vector3
	AngularVelocity rl.Vector3 // radians per second, world axes
	Mass            float32
	Bounciness      float32 // 0 = no bounce, 1 = perfect bounce
	Friction        float32 // 0 = ice, 1 = stops immediately
	LinearDamping   float32 // fraction of linear velocity shed per second
	AngularDamping  float32 // fraction of angular velocity shed per second
	CenterOffset    rl.Vector3 // local-space center of mass offset
	Interpolate     bool       // render positions blended between steps
	UseGravity      bool
	IsKinematic     bool // moves but doesn't get pushed by physics

	// Position at the start of the last integration step, kept for
	// interpolated rendering.
	PrevPosition rl.Vector3
}

func NewRigidbody() *Rigidbody {
	return &Rigidbody{
		Velocity:        rl.Vector3{},
		AngularVelocity: rl.Vector3{},
		Mass:            1.0,
		Bounciness:      0.1,
		Friction:        0.1,
		LinearDamping:   0.0,
		AngularDamping:  0.05,
		UseGravity:      true,
		IsKinematic:     false,
	}
}

// ApplyAcceleration applies a mass-independent force over dt: the resulting
// velocity change does not depend on the body's mass.
func (r *Rigidbody) ApplyAcceleration(accel rl.Vector3, dt float32) {
	if !finiteVec(accel) {
		return
	}
	r.Velocity = rl.Vector3Add(r.Velocity, rl.Vector3Scale(accel, dt))
}

// ApplyForce applies a mass-scaled force over dt.
func (r *Rigidbody) ApplyForce(force rl.Vector3, dt float32) {
	if r.Mass <= 0 {
		return
	}
	r.ApplyAcceleration(rl.Vector3Scale(force, 1/r.Mass), dt)
}

// ApplyTorque applies a mass-independent angular acceleration (rad/s^2)
// over dt.
func (r *Rigidbody) ApplyTorque(accel rl.Vector3, dt float32) {
	if !finiteVec(accel) {
		return
	}
	r.AngularVelocity = rl.Vector3Add(r.AngularVelocity, rl.Vector3Scale(accel, dt))
}

// WorldCenterOfMass returns the body's center of mass in world space,
// accounting for the configured local offset.
func (r *Rigidbody) WorldCenterOfMass() rl.Vector3 {
	g := r.GetGameObject()
	if g == nil {
		return rl.Vector3{}
	}
	if r.CenterOffset.X == 0 && r.CenterOffset.Y == 0 && r.CenterOffset.Z == 0 {
		return g.WorldPosition()
	}
	offset := rl.Vector3Transform(r.CenterOffset, g.RotationMatrix())
	return rl.Vector3Add(g.WorldPosition(), offset)
}

func (r *Rigidbody) Speed() float32 {
	return rl.Vector3Length(r.Velocity)
}

// InterpolatedPosition blends the previous and current step positions.
// Alpha is the accumulator remainder in [0,1]; bodies without the
// Interpolate flag return the current position unchanged.
func (r *Rigidbody) InterpolatedPosition(alpha float32) rl.Vector3 {
	g := r.GetGameObject()
	if g == nil {
		return rl.Vector3{}
	}
	if !r.Interpolate {
		return g.Transform.Position
	}
	return rl.Vector3Lerp(r.PrevPosition, g.Transform.Position, clamp01(alpha))
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func finiteVec(v rl.Vector3) bool {
	return finite(v.X) && finite(v.Y) && finite(v.Z)
}

func finite(f float32) bool {
	f64 := float64(f)
	return !math.IsNaN(f64) && !math.IsInf(f64, 0)
}
