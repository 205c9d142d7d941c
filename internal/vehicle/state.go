package vehicle

import (
	"drivekit/internal/components"
	"drivekit/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// State is the per-tick snapshot the shaper works from. It is recomputed
// from scratch every tick; nothing in it carries over between ticks except
// through the body's own physics state.
type State struct {
	ForwardSpeed     float32 // signed, along body-local Z
	LateralSpeed     float32 // signed, along body-local X
	Grounded         bool
	GroundNormal     rl.Vector3
	GripFactor       float32
	ControlAuthority float32
}

// readState samples the body and sensor into a fresh State. The sensor must
// have been updated for this tick before calling; grip and authority derive
// from the grounded flag it reports.
func readState(g *engine.GameObject, rb *components.Rigidbody, sensor *GroundSensor, tuning *Tuning) State {
	forward := g.Forward()
	right := g.Right()

	st := State{
		ForwardSpeed: rl.Vector3DotProduct(rb.Velocity, forward),
		LateralSpeed: rl.Vector3DotProduct(rb.Velocity, right),
		Grounded:     sensor.Grounded(),
		GroundNormal: sensor.Normal(),
	}

	if st.Grounded {
		speedNorm := clamp01f(absf(st.ForwardSpeed) / tuning.MaxSpeed)
		st.GripFactor = rl.Lerp(tuning.GripMin, tuning.GripMax, speedNorm)
		st.ControlAuthority = st.GripFactor
	} else {
		st.GripFactor = tuning.GripAirborne
		st.ControlAuthority = tuning.GripAirborne
	}

	return st
}

func clamp01f(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
