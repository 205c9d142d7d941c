package vehicle

import (
	"math"

	"drivekit/internal/components"
	"drivekit/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// ForceShaper runs the ordered correction pipeline each fixed tick. The
// stage order is a contract: every stage reads the velocity as left by the
// stages before it, and the speed clamp runs last so nothing can push the
// body past the limit afterwards.
type ForceShaper struct {
	tuning *Tuning
}

func NewForceShaper(tuning *Tuning) *ForceShaper {
	if tuning == nil {
		tuning = DefaultTuning()
	}
	return &ForceShaper{tuning: tuning}
}

func (f *ForceShaper) Tuning() *Tuning {
	return f.tuning
}

// Apply runs all stages for one tick. A missing input source is handled by
// the caller passing a zero Drive: stabilization and the clamp still run,
// only propulsion and steering go quiet.
func (f *ForceShaper) Apply(g *engine.GameObject, rb *components.Rigidbody, st State, in Drive, dt float32) {
	f.applyDrive(g, rb, st, in, dt)
	f.applySteering(g, rb, st, in, dt)
	f.applyLateralGrip(g, rb, st, dt)
	f.applyDownforce(rb, st, dt)
	f.applyUpright(g, rb, st, dt)
	f.applyRecovery(g, rb, st, dt)
	f.applyAngularCap(rb, st)
	f.applySpeedClamp(rb)
}

// applyDrive pushes the body along its forward axis. Airborne drive is
// reduced, not cut, so mid-air throttle still nudges the arc.
func (f *ForceShaper) applyDrive(g *engine.GameObject, rb *components.Rigidbody, st State, in Drive, dt float32) {
	authority := f.tuning.AirborneDrive
	if st.Grounded {
		authority = 1
	}
	accel := rl.Vector3Scale(g.Forward(), in.Throttle*f.tuning.ForwardSpeedFactor*authority)
	rb.ApplyAcceleration(accel, dt)
}

// applySteering uses a target-yaw-rate model: compute the yaw rate the
// input asks for, clamp it, and torque toward it. Steering is gated by
// throttle magnitude so a stationary vehicle cannot spin in place.
func (f *ForceShaper) applySteering(g *engine.GameObject, rb *components.Rigidbody, st State, in Drive, dt float32) {
	throttleMag := absf(in.Throttle)
	targetYaw := clampf(
		in.Steering*f.tuning.TurnSpeedFactor*st.ControlAuthority*throttleMag,
		-f.tuning.MaxYawSpeed, f.tuning.MaxYawSpeed)

	up := g.Up()
	currentYaw := rl.Vector3DotProduct(rb.AngularVelocity, up)
	yawDelta := targetYaw - currentYaw

	response := f.tuning.SteeringResponse
	if !st.Grounded {
		response *= f.tuning.AirborneSteering
	}
	rb.ApplyTorque(rl.Vector3Scale(up, yawDelta*response), dt)
}

// applyLateralGrip damps sideways sliding while grounded. This is a direct
// velocity edit, not a force: the lateral component is lerped toward zero
// and the velocity recomposed. Intentional reshaping rather than a
// physically derived friction force.
func (f *ForceShaper) applyLateralGrip(g *engine.GameObject, rb *components.Rigidbody, st State, dt float32) {
	if !st.Grounded {
		return
	}
	right := g.Right()
	lateral := rl.Vector3DotProduct(rb.Velocity, right)
	damped := rl.Lerp(lateral, 0, clamp01f(f.tuning.GripStrength*dt))
	rb.Velocity = rl.Vector3Add(rb.Velocity, rl.Vector3Scale(right, damped-lateral))
}

// applyDownforce presses the body into the surface, scaling with speed and
// grip. Zero at zero speed with the stock base of 0.
func (f *ForceShaper) applyDownforce(rb *components.Rigidbody, st State, dt float32) {
	if !st.Grounded {
		return
	}
	mag := (f.tuning.BaseDownforce + absf(st.ForwardSpeed)*f.tuning.DownforceSpeedFactor) * st.GripFactor
	accel := rl.Vector3Scale(st.GroundNormal, -mag)
	rb.ApplyAcceleration(accel, dt)
}

// applyUpright biases the body's up axis toward the ground normal (or
// world-up while airborne) and bleeds off angular velocity. A continuous
// bias, never a snap.
func (f *ForceShaper) applyUpright(g *engine.GameObject, rb *components.Rigidbody, st State, dt float32) {
	targetUp := worldUp
	if st.Grounded {
		targetUp = st.GroundNormal
	}
	axis := rl.Vector3CrossProduct(g.Up(), targetUp)
	rb.ApplyTorque(rl.Vector3Scale(axis, f.tuning.UprightGain), dt)

	factor := clamp01f(1 - f.tuning.AngularDampingRate*dt)
	rb.AngularVelocity = rl.Vector3Scale(rb.AngularVelocity, factor)
}

// applyRecovery adds torque toward upright when the body sits inverted on
// the ground. It biases recovery rather than forcing it: residual momentum
// or player input finishes the flip.
func (f *ForceShaper) applyRecovery(g *engine.GameObject, rb *components.Rigidbody, st State, dt float32) {
	if !st.Grounded {
		return
	}
	bodyUp := g.Up()
	if rl.Vector3DotProduct(bodyUp, worldUp) >= f.tuning.InvertedThreshold {
		return
	}
	axis := rl.Vector3CrossProduct(bodyUp, worldUp)
	if rl.Vector3Length(axis) < 1e-4 {
		// Exactly upside down: the cross product vanishes, so roll
		// around the forward axis instead of stalling.
		axis = g.Forward()
	}
	torque := rl.Vector3Scale(axis, f.tuning.RecoveryGain*st.GripFactor)
	rb.ApplyTorque(torque, dt)
}

// applyAngularCap limits tumbling while airborne, where no grounded
// correction can catch runaway spin.
func (f *ForceShaper) applyAngularCap(rb *components.Rigidbody, st State) {
	if st.Grounded {
		return
	}
	speed := rl.Vector3Length(rb.AngularVelocity)
	if speed > f.tuning.AirborneAngularCap {
		rb.AngularVelocity = rl.Vector3Scale(rb.AngularVelocity,
			f.tuning.AirborneAngularCap/speed)
	}
}

// applySpeedClamp rescales the horizontal velocity to MaxSpeed when it
// exceeds it. The vertical component passes through untouched so gravity
// and jump arcs are never clamped.
func (f *ForceShaper) applySpeedClamp(rb *components.Rigidbody) {
	hx := float64(rb.Velocity.X)
	hz := float64(rb.Velocity.Z)
	horizontal := float32(math.Sqrt(hx*hx + hz*hz))
	if horizontal <= f.tuning.MaxSpeed {
		return
	}
	scale := f.tuning.MaxSpeed / horizontal
	rb.Velocity.X *= scale
	rb.Velocity.Z *= scale
}
