package physics

import (
	"unsafe"

	"drivekit/internal/components"
	"drivekit/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	angularImpulseScale = 0.3
	maxAngularSpeed     = 10.0
)

// World steps rigidbodies and resolves collisions between them and the
// static environment. Dynamic objects carry a Rigidbody plus a collider,
// statics only need a collider.
type World struct {
	Gravity rl.Vector3
	Objects []*engine.GameObject
	Statics []*engine.GameObject

	// Contact pairs seen last step and this step, for enter/exit callbacks
	activeContacts map[contactPair]bool
	frameContacts  map[contactPair]bool
}

type contactPair struct {
	a, b *engine.GameObject
}

func makePair(a, b *engine.GameObject) contactPair {
	if uintptr(unsafe.Pointer(a)) < uintptr(unsafe.Pointer(b)) {
		return contactPair{a, b}
	}
	return contactPair{b, a}
}

func NewWorld() *World {
	return &World{
		Gravity:        rl.Vector3{Y: -9.81},
		activeContacts: make(map[contactPair]bool),
		frameContacts:  make(map[contactPair]bool),
	}
}

func (w *World) AddObject(g *engine.GameObject) {
	w.Objects = append(w.Objects, g)
}

func (w *World) AddStatic(g *engine.GameObject) {
	w.Statics = append(w.Statics, g)
}

// Step advances the simulation by dt seconds: integrate velocities, move
// bodies, then resolve dynamic-dynamic and dynamic-static contacts.
func (w *World) Step(dt float32) {
	for _, g := range w.Objects {
		if !g.Active {
			continue
		}
		rb := engine.GetComponent[*components.Rigidbody](g)
		if rb == nil || rb.IsKinematic {
			continue
		}

		rb.PrevPosition = g.Transform.Position

		if rb.UseGravity {
			rb.Velocity = rl.Vector3Add(rb.Velocity, rl.Vector3Scale(w.Gravity, dt))
		}

		// Per-second damping fractions
		linFactor := clamp(1-rb.LinearDamping*dt, 0, 1)
		rb.Velocity = rl.Vector3Scale(rb.Velocity, linFactor)
		angFactor := clamp(1-rb.AngularDamping*dt, 0, 1)
		rb.AngularVelocity = rl.Vector3Scale(rb.AngularVelocity, angFactor)

		if rl.Vector3Length(rb.AngularVelocity) > maxAngularSpeed {
			rb.AngularVelocity = rl.Vector3Scale(
				rl.Vector3Normalize(rb.AngularVelocity), maxAngularSpeed)
		}

		g.Transform.Position = rl.Vector3Add(
			g.Transform.Position, rl.Vector3Scale(rb.Velocity, dt))

		// Angular velocity is radians/sec, Transform.Rotation is degrees
		g.Transform.Rotation = rl.Vector3Add(
			g.Transform.Rotation,
			rl.Vector3Scale(rb.AngularVelocity, rl.Rad2deg*dt))
	}

	w.resolveDynamics(dt)
	w.resolveStatics(dt)
	w.flushContacts()
}

// flushContacts compares this step's contact set against the previous one and
// fires enter/exit callbacks for the differences.
func (w *World) flushContacts() {
	for pair := range w.frameContacts {
		if !w.activeContacts[pair] {
			notifyEnter(pair.a, pair.b)
			notifyEnter(pair.b, pair.a)
		}
	}
	for pair := range w.activeContacts {
		if !w.frameContacts[pair] {
			notifyExit(pair.a, pair.b)
			notifyExit(pair.b, pair.a)
		}
	}
	w.activeContacts, w.frameContacts = w.frameContacts, w.activeContacts
	clear(w.frameContacts)
}

func notifyEnter(g, other *engine.GameObject) {
	for _, c := range g.Components() {
		if h, ok := c.(engine.CollisionHandler); ok {
			h.OnCollisionEnter(other)
		}
	}
}

func notifyExit(g, other *engine.GameObject) {
	for _, c := range g.Components() {
		if h, ok := c.(engine.CollisionHandler); ok {
			h.OnCollisionExit(other)
		}
	}
}

func (w *World) resolveDynamics(dt float32) {
	for i := 0; i < len(w.Objects); i++ {
		a := w.Objects[i]
		if !a.Active {
			continue
		}
		for j := i + 1; j < len(w.Objects); j++ {
			b := w.Objects[j]
			if !b.Active {
				continue
			}
			w.resolvePair(a, b)
		}
	}
}

func (w *World) resolvePair(a, b *engine.GameObject) {
	rbA := engine.GetComponent[*components.Rigidbody](a)
	rbB := engine.GetComponent[*components.Rigidbody](b)
	if rbA == nil || rbB == nil {
		return
	}

	obbA, okA := colliderOBB(a)
	obbB, okB := colliderOBB(b)
	if !okA || !okB {
		return
	}

	// Cheap AABB overlap check before the full SAT resolve
	if !obbA.EnclosingAABB().Intersects(obbB.EnclosingAABB()) {
		return
	}

	mtv := obbA.ResolveOBB(obbB)
	if rl.Vector3Length(mtv) < 1e-6 {
		return
	}

	normal := rl.Vector3Normalize(mtv)

	// Split the correction by inverse mass
	totalMass := rbA.Mass + rbB.Mass
	shareA := rbB.Mass / totalMass
	shareB := rbA.Mass / totalMass
	if rbA.IsKinematic {
		shareA, shareB = 0, 1
	} else if rbB.IsKinematic {
		shareA, shareB = 1, 0
	}

	a.Transform.Position = rl.Vector3Add(a.Transform.Position, rl.Vector3Scale(mtv, shareA))
	b.Transform.Position = rl.Vector3Subtract(b.Transform.Position, rl.Vector3Scale(mtv, shareB))

	w.frameContacts[makePair(a, b)] = true

	// Impulse along the contact normal
	relVel := rl.Vector3Subtract(rbA.Velocity, rbB.Velocity)
	velAlongNormal := rl.Vector3DotProduct(relVel, normal)
	if velAlongNormal >= 0 {
		return
	}

	restitution := minf(rbA.Bounciness, rbB.Bounciness)
	impulseMag := -(1 + restitution) * velAlongNormal / (1/rbA.Mass + 1/rbB.Mass)
	impulse := rl.Vector3Scale(normal, impulseMag)

	if !rbA.IsKinematic {
		rbA.Velocity = rl.Vector3Add(rbA.Velocity, rl.Vector3Scale(impulse, 1/rbA.Mass))
	}
	if !rbB.IsKinematic {
		rbB.Velocity = rl.Vector3Subtract(rbB.Velocity, rl.Vector3Scale(impulse, 1/rbB.Mass))
	}

	// Off-center hits spin the bodies
	contact := estimateContactPoint(obbA.Center, obbA.HalfSize, normal)
	applyContactTorque(a, rbA, contact, impulse)
	applyContactTorque(b, rbB, contact, rl.Vector3Scale(impulse, -1))
}

func (w *World) resolveStatics(dt float32) {
	for _, g := range w.Objects {
		if !g.Active {
			continue
		}
		rb := engine.GetComponent[*components.Rigidbody](g)
		if rb == nil || rb.IsKinematic {
			continue
		}
		obb, ok := colliderOBB(g)
		if !ok {
			continue
		}

		for _, s := range w.Statics {
			if !s.Active {
				continue
			}
			sObb, ok := colliderOBB(s)
			if !ok {
				continue
			}

			if !obb.EnclosingAABB().Intersects(sObb.EnclosingAABB()) {
				continue
			}

			mtv := obb.ResolveOBB(sObb)
			if rl.Vector3Length(mtv) < 1e-6 {
				continue
			}

			g.Transform.Position = rl.Vector3Add(g.Transform.Position, mtv)
			obb.Center = rl.Vector3Add(obb.Center, mtv)

			normal := rl.Vector3Normalize(mtv)
			velAlongNormal := rl.Vector3DotProduct(rb.Velocity, normal)
			if velAlongNormal < 0 {
				// Kill the inward component and bounce the rest
				rb.Velocity = rl.Vector3Subtract(rb.Velocity,
					rl.Vector3Scale(normal, velAlongNormal*(1+rb.Bounciness)))

				// Surface friction on the tangential component
				tangent := rl.Vector3Subtract(rb.Velocity,
					rl.Vector3Scale(normal, rl.Vector3DotProduct(rb.Velocity, normal)))
				rb.Velocity = rl.Vector3Subtract(rb.Velocity,
					rl.Vector3Scale(tangent, clamp(rb.Friction*dt*10, 0, 1)))

				contact := estimateContactPoint(obb.Center, obb.HalfSize, normal)
				impulse := rl.Vector3Scale(normal, -velAlongNormal*rb.Mass)
				applyContactTorque(g, rb, contact, impulse)
			}

			w.frameContacts[makePair(g, s)] = true
		}
	}
}

// applyContactTorque converts a contact impulse into angular velocity change,
// with the lever arm measured from the body's world center of mass.
func applyContactTorque(g *engine.GameObject, rb *components.Rigidbody, contact, impulse rl.Vector3) {
	if rb.IsKinematic {
		return
	}
	lever := rl.Vector3Subtract(contact, rb.WorldCenterOfMass())
	torque := cross(lever, impulse)
	rb.AngularVelocity = rl.Vector3Add(rb.AngularVelocity,
		rl.Vector3Scale(torque, angularImpulseScale/rb.Mass))
}

// colliderOBB builds a world-space OBB from the object's first box or
// sphere collider. Spheres are approximated by their enclosing box.
func colliderOBB(g *engine.GameObject) (OBB, bool) {
	if box := engine.GetComponent[*components.BoxCollider](g); box != nil {
		return NewOBB(box.GetCenter(), box.GetWorldSize(), g.WorldRotation()), true
	}
	if sphere := engine.GetComponent[*components.SphereCollider](g); sphere != nil {
		d := sphere.Radius * 2
		return NewOBB(sphere.GetCenter(), rl.Vector3{X: d, Y: d, Z: d}, rl.Vector3{}), true
	}
	return OBB{}, false
}
