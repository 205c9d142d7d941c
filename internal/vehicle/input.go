package vehicle

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Drive is the normalized input contract every source resolves to before
// the shaper sees it. Both components are in [-1,1].
type Drive struct {
	Throttle float32
	Steering float32
}

// InputSource produces one Drive sample per tick. Implementations cover
// keyboard, pointer drag, or anything else able to emit the pair.
type InputSource interface {
	Poll() Drive
}

// KeyboardInput maps the usual WASD/arrow keys to throttle and steering.
type KeyboardInput struct{}

func NewKeyboardInput() *KeyboardInput {
	return &KeyboardInput{}
}

func (k *KeyboardInput) Poll() Drive {
	var d Drive
	if rl.IsKeyDown(rl.KeyW) || rl.IsKeyDown(rl.KeyUp) {
		d.Throttle += 1
	}
	if rl.IsKeyDown(rl.KeyS) || rl.IsKeyDown(rl.KeyDown) {
		d.Throttle -= 1
	}
	if rl.IsKeyDown(rl.KeyD) || rl.IsKeyDown(rl.KeyRight) {
		d.Steering += 1
	}
	if rl.IsKeyDown(rl.KeyA) || rl.IsKeyDown(rl.KeyLeft) {
		d.Steering -= 1
	}
	return clampDrive(d)
}

// DragInput resolves a 2-D drag vector (on-screen joystick style) to the
// common contract: magnitude becomes throttle, the X component steering.
type DragInput struct {
	Vector rl.Vector2
}

func (d *DragInput) Set(v rl.Vector2) {
	d.Vector = v
}

func (d *DragInput) Poll() Drive {
	mag := float32(math.Hypot(float64(d.Vector.X), float64(d.Vector.Y)))
	return clampDrive(Drive{
		Throttle: clamp01f(mag),
		Steering: d.Vector.X,
	})
}

// StaticInput returns a fixed Drive every poll. Used by tests and demos.
type StaticInput struct {
	Drive Drive
}

func (s *StaticInput) Poll() Drive {
	return clampDrive(s.Drive)
}

func clampDrive(d Drive) Drive {
	return Drive{
		Throttle: clampf(d.Throttle, -1, 1),
		Steering: clampf(d.Steering, -1, 1),
	}
}

func clampf(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
