package physics

import (
	"drivekit/internal/components"
	"drivekit/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// ObjectBounds returns the world-space AABB enclosing every collider on the
// object and its children. Reports false if no collider was found.
func ObjectBounds(g *engine.GameObject) (AABB, bool) {
	var bounds AABB
	found := false

	merge := func(b AABB) {
		if !found {
			bounds = b
			found = true
		} else {
			bounds = bounds.Merge(b)
		}
	}

	var walk func(obj *engine.GameObject)
	walk = func(obj *engine.GameObject) {
		if obj == nil {
			return
		}
		if box := engine.GetComponent[*components.BoxCollider](obj); box != nil {
			obb := NewOBB(box.GetCenter(), box.GetWorldSize(), obj.WorldRotation())
			merge(obb.EnclosingAABB())
		}
		if sphere := engine.GetComponent[*components.SphereCollider](obj); sphere != nil {
			d := sphere.GetRadius() * 2
			merge(NewAABBFromCenter(sphere.GetCenter(), rl.Vector3{X: d, Y: d, Z: d}))
		}
		for _, child := range obj.Children {
			walk(child)
		}
	}
	walk(g)

	return bounds, found
}
