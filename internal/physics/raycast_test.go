package physics

import (
	"testing"

	"drivekit/internal/components"
	"drivekit/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func newStaticBox(name string, pos, size rl.Vector3) *engine.GameObject {
	g := engine.NewGameObject(name)
	g.Transform.Position = pos
	g.AddComponent(components.NewBoxCollider(size))
	return g
}

func TestRaycastHitsFloor(t *testing.T) {
	w := NewWorld()
	floor := newStaticBox("Floor", rl.Vector3{Y: -0.5}, rl.Vector3{X: 100, Y: 1, Z: 100})
	w.AddStatic(floor)

	hit, ok := w.Raycast(rl.Vector3{Y: 2}, rl.Vector3{Y: -1}, 10, nil)
	if !ok {
		t.Fatal("Ray straight down should hit the floor")
	}
	if hit.GameObject != floor {
		t.Error("Hit should reference the floor object")
	}
	if absf(hit.Distance-2) > 1e-4 {
		t.Errorf("Expected hit distance 2, got %v", hit.Distance)
	}
	if absf(hit.Normal.Y-1) > 1e-4 {
		t.Errorf("Floor normal should be +Y, got %v", hit.Normal)
	}
}

func TestRaycastMissBeyondRange(t *testing.T) {
	w := NewWorld()
	w.AddStatic(newStaticBox("Floor", rl.Vector3{Y: -0.5}, rl.Vector3{X: 100, Y: 1, Z: 100}))

	if _, ok := w.Raycast(rl.Vector3{Y: 20}, rl.Vector3{Y: -1}, 5, nil); ok {
		t.Error("Ray should miss surfaces beyond max distance")
	}
}

func TestRaycastIgnoresCaster(t *testing.T) {
	w := NewWorld()
	body := newStaticBox("Body", rl.Vector3{Y: 1}, rl.Vector3{X: 1, Y: 1, Z: 1})
	floor := newStaticBox("Floor", rl.Vector3{Y: -0.5}, rl.Vector3{X: 100, Y: 1, Z: 100})
	w.AddObject(body)
	w.AddStatic(floor)

	// Cast from inside the body, ignoring it: should reach the floor
	hit, ok := w.Raycast(rl.Vector3{Y: 1}, rl.Vector3{Y: -1}, 10, body)
	if !ok {
		t.Fatal("Ray should pass through the ignored body")
	}
	if hit.GameObject != floor {
		t.Errorf("Expected floor hit, got %v", hit.GameObject.Name)
	}
}

func TestRaycastClosestOfSeveral(t *testing.T) {
	w := NewWorld()
	near := newStaticBox("Near", rl.Vector3{Z: 5}, rl.Vector3{X: 1, Y: 1, Z: 1})
	far := newStaticBox("Far", rl.Vector3{Z: 10}, rl.Vector3{X: 1, Y: 1, Z: 1})
	w.AddStatic(far)
	w.AddStatic(near)

	hit, ok := w.Raycast(rl.Vector3{}, rl.Vector3{Z: 1}, 20, nil)
	if !ok {
		t.Fatal("Ray should hit a box")
	}
	if hit.GameObject != near {
		t.Errorf("Expected closest hit 'Near', got '%s'", hit.GameObject.Name)
	}
}

func TestRaycastSphere(t *testing.T) {
	w := NewWorld()
	g := engine.NewGameObject("Ball")
	g.Transform.Position = rl.Vector3{Z: 5}
	g.AddComponent(components.NewSphereCollider(1))
	w.AddStatic(g)

	hit, ok := w.Raycast(rl.Vector3{}, rl.Vector3{Z: 1}, 20, nil)
	if !ok {
		t.Fatal("Ray should hit the sphere")
	}
	if absf(hit.Distance-4) > 1e-3 {
		t.Errorf("Expected hit distance 4, got %v", hit.Distance)
	}
	if absf(hit.Normal.Z+1) > 1e-3 {
		t.Errorf("Normal should face back toward the ray, got %v", hit.Normal)
	}
}

func TestRaycastSlopedSurfaceNormal(t *testing.T) {
	w := NewWorld()
	ramp := engine.NewGameObject("Ramp")
	ramp.Transform.Rotation = rl.Vector3{X: -30}
	ramp.AddComponent(components.NewBoxCollider(rl.Vector3{X: 10, Y: 1, Z: 10}))
	w.AddStatic(ramp)

	hit, ok := w.Raycast(rl.Vector3{Y: 5}, rl.Vector3{Y: -1}, 10, nil)
	if !ok {
		t.Fatal("Ray should hit the ramp")
	}
	if hit.Normal.Y <= 0.5 {
		t.Errorf("Ramp normal should point mostly up, got %v", hit.Normal)
	}
	if absf(hit.Normal.Y-1) < 1e-4 {
		t.Error("Ramp normal should be tilted, not world up")
	}
}
