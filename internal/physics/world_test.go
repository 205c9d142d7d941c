package physics

import (
	"testing"

	"drivekit/internal/components"
	"drivekit/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const stepDt = float32(1.0 / 60.0)

func newDynamicBox(name string, pos, size rl.Vector3, mass float32) (*engine.GameObject, *components.Rigidbody) {
	g := engine.NewGameObject(name)
	g.Transform.Position = pos
	rb := components.NewRigidbody()
	rb.Mass = mass
	g.AddComponent(rb)
	g.AddComponent(components.NewBoxCollider(size))
	return g, rb
}

func TestStepAppliesGravity(t *testing.T) {
	w := NewWorld()
	g, rb := newDynamicBox("Faller", rl.Vector3{Y: 50}, rl.Vector3{X: 1, Y: 1, Z: 1}, 1)
	w.AddObject(g)

	w.Step(stepDt)

	if rb.Velocity.Y >= 0 {
		t.Errorf("Gravity should produce downward velocity, got %v", rb.Velocity.Y)
	}
	if g.Transform.Position.Y >= 50 {
		t.Error("Body should have moved down")
	}
}

func TestStepSavesPrevPosition(t *testing.T) {
	w := NewWorld()
	g, rb := newDynamicBox("Mover", rl.Vector3{Y: 10}, rl.Vector3{X: 1, Y: 1, Z: 1}, 1)
	w.AddObject(g)

	w.Step(stepDt)

	if rb.PrevPosition.Y != 10 {
		t.Errorf("PrevPosition should hold the pre-step position, got %v", rb.PrevPosition.Y)
	}
}

func TestStepSkipsKinematic(t *testing.T) {
	w := NewWorld()
	g, rb := newDynamicBox("Platform", rl.Vector3{Y: 5}, rl.Vector3{X: 1, Y: 1, Z: 1}, 1)
	rb.IsKinematic = true
	w.AddObject(g)

	w.Step(stepDt)

	if g.Transform.Position.Y != 5 {
		t.Error("Kinematic bodies should not be integrated")
	}
	if rb.Velocity.Y != 0 {
		t.Error("Kinematic bodies should not gain gravity velocity")
	}
}

func TestBodyComesToRestOnFloor(t *testing.T) {
	w := NewWorld()
	body, rb := newDynamicBox("Box", rl.Vector3{Y: 3}, rl.Vector3{X: 1, Y: 1, Z: 1}, 1)
	rb.Bounciness = 0
	w.AddObject(body)

	floor := engine.NewGameObject("Floor")
	floor.Transform.Position = rl.Vector3{Y: -0.5}
	floor.AddComponent(components.NewBoxCollider(rl.Vector3{X: 100, Y: 1, Z: 100}))
	w.AddStatic(floor)

	for i := 0; i < 300; i++ {
		w.Step(stepDt)
	}

	// Resting on the floor: bottom face at y=0, center at half height
	if absf(body.Transform.Position.Y-0.5) > 0.05 {
		t.Errorf("Expected body resting at y=0.5, got %v", body.Transform.Position.Y)
	}
	if absf(rb.Velocity.Y) > 0.5 {
		t.Errorf("Resting body should have near-zero vertical velocity, got %v", rb.Velocity.Y)
	}
}

func TestAngularVelocityRotatesBody(t *testing.T) {
	w := NewWorld()
	g, rb := newDynamicBox("Spinner", rl.Vector3{Y: 50}, rl.Vector3{X: 1, Y: 1, Z: 1}, 1)
	rb.UseGravity = false
	rb.AngularDamping = 0
	rb.AngularVelocity = rl.Vector3{Y: 1} // 1 rad/s
	w.AddObject(g)

	w.Step(1)

	// One radian in degrees
	want := float32(57.29578)
	if absf(g.Transform.Position.Y-50) > 1e-4 {
		t.Error("Spin should not translate the body")
	}
	if absf(g.Transform.Rotation.Y-want) > 0.1 {
		t.Errorf("Expected rotation %v degrees, got %v", want, g.Transform.Rotation.Y)
	}
}

func TestDynamicPairSeparates(t *testing.T) {
	w := NewWorld()
	a, rbA := newDynamicBox("A", rl.Vector3{}, rl.Vector3{X: 2, Y: 2, Z: 2}, 1)
	b, rbB := newDynamicBox("B", rl.Vector3{X: 1}, rl.Vector3{X: 2, Y: 2, Z: 2}, 1)
	rbA.UseGravity = false
	rbB.UseGravity = false
	w.AddObject(a)
	w.AddObject(b)

	w.Step(stepDt)

	dist := rl.Vector3Length(rl.Vector3Subtract(a.Transform.Position, b.Transform.Position))
	if dist < 1.9 {
		t.Errorf("Overlapping pair should be pushed apart, distance %v", dist)
	}
}

func TestSeparatedPairUntouched(t *testing.T) {
	w := NewWorld()
	a, rbA := newDynamicBox("A", rl.Vector3{}, rl.Vector3{X: 2, Y: 2, Z: 2}, 1)
	b, rbB := newDynamicBox("B", rl.Vector3{X: 10}, rl.Vector3{X: 2, Y: 2, Z: 2}, 1)
	rbA.UseGravity = false
	rbB.UseGravity = false
	w.AddObject(a)
	w.AddObject(b)

	w.Step(stepDt)

	if rbA.Velocity != (rl.Vector3{}) || rbB.Velocity != (rl.Vector3{}) {
		t.Error("Distant bodies must not exchange impulses")
	}
	if a.Transform.Position.X != 0 || b.Transform.Position.X != 10 {
		t.Error("Distant bodies must not be displaced")
	}
}

type contactRecorder struct {
	engine.BaseComponent
	enters int
	exits  int
}

func (c *contactRecorder) OnCollisionEnter(other *engine.GameObject) { c.enters++ }
func (c *contactRecorder) OnCollisionExit(other *engine.GameObject)  { c.exits++ }

func TestCollisionCallbacks(t *testing.T) {
	w := NewWorld()
	body, rb := newDynamicBox("Box", rl.Vector3{Y: 1.2}, rl.Vector3{X: 1, Y: 1, Z: 1}, 1)
	rb.Bounciness = 0
	rec := &contactRecorder{}
	body.AddComponent(rec)
	w.AddObject(body)

	floor := engine.NewGameObject("Floor")
	floor.Transform.Position = rl.Vector3{Y: -0.5}
	floor.AddComponent(components.NewBoxCollider(rl.Vector3{X: 100, Y: 1, Z: 100}))
	w.AddStatic(floor)

	for i := 0; i < 120; i++ {
		w.Step(stepDt)
	}

	if rec.enters == 0 {
		t.Error("Landing on the floor should fire OnCollisionEnter")
	}
}
