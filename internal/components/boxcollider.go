package components

import (
	"drivekit/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type BoxCollider struct {
	engine.BaseComponent
	Size   rl.Vector3
	Offset rl.Vector3
}

func NewBoxCollider(size rl.Vector3) *BoxCollider {
	return &BoxCollider{
		Size:   size,
		Offset: rl.Vector3{},
	}
}

// GetCenter returns the world-space center of this collider
func (b *BoxCollider) GetCenter() rl.Vector3 {
	g := b.GetGameObject()
	return rl.Vector3Add(g.WorldPosition(), b.Offset)
}

// GetWorldSize returns the collider size scaled by the object's world scale
func (b *BoxCollider) GetWorldSize() rl.Vector3 {
	g := b.GetGameObject()
	scale := g.WorldScale()
	return rl.Vector3{
		X: b.Size.X * scale.X,
		Y: b.Size.Y * scale.Y,
		Z: b.Size.Z * scale.Z,
	}
}
