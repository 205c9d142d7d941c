package engine

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func TestNewGameObject(t *testing.T) {
	obj := NewGameObject("TestObject")

	if obj.Name != "TestObject" {
		t.Errorf("Expected name 'TestObject', got '%s'", obj.Name)
	}

	if !obj.Active {
		t.Error("New objects should start active")
	}

	if obj.components == nil {
		t.Error("components slice should be initialized")
	}

	if obj.Transform.Scale.X != 1 || obj.Transform.Scale.Y != 1 || obj.Transform.Scale.Z != 1 {
		t.Errorf("Expected unit scale, got %v", obj.Transform.Scale)
	}
}

func TestGameObjectHasTag(t *testing.T) {
	obj := NewGameObject("Test")
	obj.Tags = []string{"vehicle", "driveable"}

	if !obj.HasTag("vehicle") {
		t.Error("HasTag should return true for existing tag")
	}

	if obj.HasTag("static") {
		t.Error("HasTag should return false for non-existent tag")
	}

	obj2 := NewGameObject("Test2")
	if obj2.HasTag("anything") {
		t.Error("HasTag should return false when Tags is nil/empty")
	}
}

func TestGameObjectParentChild(t *testing.T) {
	parent := NewGameObject("Parent")
	child := NewGameObject("Child")

	parent.AddChild(child)

	if child.Parent != parent {
		t.Error("Child.Parent should be set")
	}

	if len(parent.Children) != 1 {
		t.Errorf("Expected 1 child, got %d", len(parent.Children))
	}

	parent.RemoveChild(child)

	if child.Parent != nil {
		t.Error("Child.Parent should be cleared after removal")
	}
	if len(parent.Children) != 0 {
		t.Errorf("Expected 0 children after removal, got %d", len(parent.Children))
	}
}

type dummyComponent struct {
	BaseComponent
	started bool
	updates int
}

func (d *dummyComponent) Start() { d.started = true }

func (d *dummyComponent) Update(deltaTime float32) { d.updates++ }

func TestGetComponent(t *testing.T) {
	obj := NewGameObject("Test")
	c := &dummyComponent{}
	obj.AddComponent(c)

	if got := GetComponent[*dummyComponent](obj); got != c {
		t.Error("GetComponent should return the added component")
	}

	if c.GetGameObject() != obj {
		t.Error("AddComponent should set the component's game object")
	}

	empty := NewGameObject("Empty")
	if got := GetComponent[*dummyComponent](empty); got != nil {
		t.Error("GetComponent should return nil for missing component")
	}
}

func TestStartRunsOnce(t *testing.T) {
	obj := NewGameObject("Test")
	c := &dummyComponent{}
	obj.AddComponent(c)

	obj.Start()
	c.started = false
	obj.Start()

	if c.started {
		t.Error("Start should only run component Start once")
	}
}

func TestUpdateSkipsInactive(t *testing.T) {
	obj := NewGameObject("Test")
	c := &dummyComponent{}
	obj.AddComponent(c)

	obj.Active = false
	obj.Update(0.016)

	if c.updates != 0 {
		t.Error("Inactive objects should not update components")
	}
}

func approxVec(a, b rl.Vector3, eps float32) bool {
	d := rl.Vector3Subtract(a, b)
	return rl.Vector3Length(d) < eps
}

func TestBasisVectorsIdentity(t *testing.T) {
	obj := NewGameObject("Test")

	if !approxVec(obj.Forward(), rl.Vector3{Z: 1}, 1e-5) {
		t.Errorf("Identity forward should be +Z, got %v", obj.Forward())
	}
	if !approxVec(obj.Up(), rl.Vector3{Y: 1}, 1e-5) {
		t.Errorf("Identity up should be +Y, got %v", obj.Up())
	}
	if !approxVec(obj.Right(), rl.Vector3{X: 1}, 1e-5) {
		t.Errorf("Identity right should be +X, got %v", obj.Right())
	}
}

func TestBasisVectorsYaw(t *testing.T) {
	obj := NewGameObject("Test")
	obj.Transform.Rotation = rl.Vector3{Y: 90}

	if !approxVec(obj.Forward(), rl.Vector3{X: 1}, 1e-4) {
		t.Errorf("90 degree yaw should turn forward to +X, got %v", obj.Forward())
	}
	if !approxVec(obj.Up(), rl.Vector3{Y: 1}, 1e-4) {
		t.Errorf("Yaw should not change up, got %v", obj.Up())
	}
}

func TestBasisVectorsInverted(t *testing.T) {
	obj := NewGameObject("Test")
	obj.Transform.Rotation = rl.Vector3{Z: 180}

	if !approxVec(obj.Up(), rl.Vector3{Y: -1}, 1e-4) {
		t.Errorf("180 degree roll should flip up to -Y, got %v", obj.Up())
	}
}

func TestWorldPositionWithParent(t *testing.T) {
	parent := NewGameObject("Parent")
	parent.Transform.Position = rl.Vector3{X: 10}

	child := NewGameObject("Child")
	child.Transform.Position = rl.Vector3{Z: 2}
	parent.AddChild(child)

	if !approxVec(child.WorldPosition(), rl.Vector3{X: 10, Z: 2}, 1e-5) {
		t.Errorf("Expected world position (10,0,2), got %v", child.WorldPosition())
	}
}
