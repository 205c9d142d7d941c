package vehicle

import (
	"errors"

	"drivekit/internal/components"
	"drivekit/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"
)

var (
	ErrNilTarget   = errors.New("bind target is nil")
	ErrNoRigidbody = errors.New("bind target has no rigidbody")
	ErrZeroMass    = errors.New("bind target has zero or negative mass")
	ErrNoCollider  = errors.New("bind target has no collider")
)

// binding is the immutable pair the shaper drives: one body plus the
// geometry-derived parameters computed for it at bind time. Swapped as a
// whole between ticks so a tick never sees a half-updated pair.
type binding struct {
	obj     *engine.GameObject
	body    *components.Rigidbody
	profile GeometryProfile
	sensor  *GroundSensor
}

// Rig owns the driven body. It refreshes the per-tick state, polls input
// and runs the shaper, all inside the fixed-step update of the scene it
// belongs to. One rig drives exactly one body at a time.
type Rig struct {
	engine.BaseComponent

	shaper *ForceShaper
	input  InputSource
	log    *zap.Logger

	binding *binding

	OnBound   engine.EventWithArg[*engine.GameObject]
	OnUnbound engine.EventWithArg[*engine.GameObject]

	lastState State

	// Once-only latches so a missing body or input source is reported a
	// single time, not every tick.
	warnedNoBody  bool
	warnedNoInput bool
}

func NewRig(shaper *ForceShaper) *Rig {
	if shaper == nil {
		shaper = NewForceShaper(nil)
	}
	return &Rig{
		shaper: shaper,
		log:    zap.NewNop(),
	}
}

// SetLogger routes the rig's diagnostics. Nil restores the no-op logger.
func (r *Rig) SetLogger(log *zap.Logger) {
	if log == nil {
		log = zap.NewNop()
	}
	r.log = log
}

func (r *Rig) SetInput(in InputSource) {
	r.input = in
	r.warnedNoInput = false
}

// Bind takes ownership of a new driven body. The target must carry a
// rigidbody with positive mass and at least one collider. On failure the
// previous binding stays intact.
func (r *Rig) Bind(target *engine.GameObject) error {
	if target == nil {
		return ErrNilTarget
	}
	rb := engine.GetComponent[*components.Rigidbody](target)
	if rb == nil {
		return ErrNoRigidbody
	}
	if rb.Mass <= 0 {
		return ErrZeroMass
	}

	profile := NewGeometryProfile(target)
	if profile.Bounds.IsDegenerate() {
		return ErrNoCollider
	}

	sensor := NewGroundSensor()
	sensor.Configure(profile.Bounds)

	rb.CenterOffset = profile.CenterOffset

	old := r.binding
	r.binding = &binding{
		obj:     target,
		body:    rb,
		profile: profile,
		sensor:  sensor,
	}
	r.warnedNoBody = false

	if old != nil {
		r.OnUnbound.Invoke(old.obj)
	}
	r.OnBound.Invoke(target)
	r.log.Info("vehicle bound",
		zap.String("name", target.Name),
		zap.Float32("ray_length", profile.RayLength),
		zap.Float32("com_offset_y", profile.CenterOffset.Y))
	return nil
}

// Unbind releases the driven body. Safe to call when nothing is bound.
func (r *Rig) Unbind() {
	if r.binding == nil {
		return
	}
	old := r.binding.obj
	r.binding = nil
	r.OnUnbound.Invoke(old)
	r.log.Info("vehicle unbound", zap.String("name", old.Name))
}

// Bound returns the currently driven object, or nil.
func (r *Rig) Bound() *engine.GameObject {
	if r.binding == nil {
		return nil
	}
	return r.binding.obj
}

// Profile returns the geometry profile of the current binding.
func (r *Rig) Profile() (GeometryProfile, bool) {
	if r.binding == nil {
		return GeometryProfile{}, false
	}
	return r.binding.profile, true
}

// LastState returns the snapshot computed on the most recent tick.
func (r *Rig) LastState() State {
	return r.lastState
}

// Update runs one control tick: refresh grounding, sample state, poll
// input, run the shaper. With no binding the tick is skipped entirely.
func (r *Rig) Update(dt float32) {
	b := r.binding
	if b == nil {
		if !r.warnedNoBody {
			r.log.Warn("no vehicle bound, skipping control tick")
			r.warnedNoBody = true
		}
		return
	}

	var caster engine.WorldAccess
	if g := r.GetGameObject(); g != nil && g.Scene != nil {
		caster = g.Scene.World
	} else if b.obj.Scene != nil {
		caster = b.obj.Scene.World
	}

	// Cast straight down in world space from the geometric center, not
	// the center of mass: the lowered CoM sits above the geometric center
	// while inverted, which would cost the ray its reach below the roof
	// exactly when recovery needs the grounded flag. The lift along
	// body-up keeps the origin off the collider surface.
	origin := rl.Vector3Add(b.obj.WorldPosition(),
		rl.Vector3Scale(b.obj.Up(), originLift))
	b.sensor.Update(caster, origin, rl.Vector3{Y: -1}, b.obj)

	st := readState(b.obj, b.body, b.sensor, r.shaper.Tuning())
	r.lastState = st

	var drive Drive
	if r.input != nil {
		drive = r.input.Poll()
	} else if !r.warnedNoInput {
		r.log.Warn("no input source bound, driving with zero input")
		r.warnedNoInput = true
	}

	r.shaper.Apply(b.obj, b.body, st, drive, dt)
}
