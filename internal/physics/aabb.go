package physics

import rl "github.com/gen2brain/raylib-go/raylib"

type AABB struct {
	Min rl.Vector3
	Max rl.Vector3
}

// NewAABBFromCenter creates an AABB from a center point and full size dimensions.
func NewAABBFromCenter(center, size rl.Vector3) AABB {
	half := rl.Vector3{X: size.X / 2, Y: size.Y / 2, Z: size.Z / 2}
	return AABB{
		Min: rl.Vector3Subtract(center, half),
		Max: rl.Vector3Add(center, half),
	}
}

// DegenerateAABB returns a zero-size box at the given point. Used as the
// "unknown size" fallback when an object exposes no bounds at all.
func DegenerateAABB(at rl.Vector3) AABB {
	return AABB{Min: at, Max: at}
}

func (a AABB) Center() rl.Vector3 {
	return rl.Vector3{
		X: (a.Min.X + a.Max.X) / 2,
		Y: (a.Min.Y + a.Max.Y) / 2,
		Z: (a.Min.Z + a.Max.Z) / 2,
	}
}

func (a AABB) Size() rl.Vector3 {
	return rl.Vector3Subtract(a.Max, a.Min)
}

// HalfHeight returns half the vertical extent of the box.
func (a AABB) HalfHeight() float32 {
	return (a.Max.Y - a.Min.Y) / 2
}

// IsDegenerate reports whether the box has zero extent on every axis.
func (a AABB) IsDegenerate() bool {
	return a.Min.X >= a.Max.X && a.Min.Y >= a.Max.Y && a.Min.Z >= a.Max.Z
}

// Merge returns the smallest AABB enclosing both boxes.
func (a AABB) Merge(b AABB) AABB {
	return AABB{
		Min: rl.Vector3{
			X: minf(a.Min.X, b.Min.X),
			Y: minf(a.Min.Y, b.Min.Y),
			Z: minf(a.Min.Z, b.Min.Z),
		},
		Max: rl.Vector3{
			X: maxf(a.Max.X, b.Max.X),
			Y: maxf(a.Max.Y, b.Max.Y),
			Z: maxf(a.Max.Z, b.Max.Z),
		},
	}
}

func (a AABB) Intersects(b AABB) bool {
	return a.Min.X <= b.Max.X && a.Max.X >= b.Min.X &&
		a.Min.Y <= b.Max.Y && a.Max.Y >= b.Min.Y &&
		a.Min.Z <= b.Max.Z && a.Max.Z >= b.Min.Z
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
