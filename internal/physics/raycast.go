package physics

import (
	"math"

	"drivekit/internal/components"
	"drivekit/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// rayIntersectsOBB tests a ray against an oriented box using the slab method
// in the box's local space. Returns the hit distance and surface normal.
func rayIntersectsOBB(origin, direction rl.Vector3, obb OBB, maxDistance float32) (float32, rl.Vector3, bool) {
	// Transform ray into the box's local space
	delta := rl.Vector3Subtract(origin, obb.Center)
	localOrigin := rl.Vector3{
		X: rl.Vector3DotProduct(delta, obb.Axes[0]),
		Y: rl.Vector3DotProduct(delta, obb.Axes[1]),
		Z: rl.Vector3DotProduct(delta, obb.Axes[2]),
	}
	localDir := rl.Vector3{
		X: rl.Vector3DotProduct(direction, obb.Axes[0]),
		Y: rl.Vector3DotProduct(direction, obb.Axes[1]),
		Z: rl.Vector3DotProduct(direction, obb.Axes[2]),
	}

	tMin := float32(0)
	tMax := maxDistance
	normalAxis := -1
	normalSign := float32(1)

	origins := [3]float32{localOrigin.X, localOrigin.Y, localOrigin.Z}
	dirs := [3]float32{localDir.X, localDir.Y, localDir.Z}
	extents := [3]float32{obb.HalfSize.X, obb.HalfSize.Y, obb.HalfSize.Z}

	for i := 0; i < 3; i++ {
		if absf(dirs[i]) < 1e-8 {
			// Ray parallel to this slab
			if origins[i] < -extents[i] || origins[i] > extents[i] {
				return 0, rl.Vector3{}, false
			}
			continue
		}

		invD := 1 / dirs[i]
		t1 := (-extents[i] - origins[i]) * invD
		t2 := (extents[i] - origins[i]) * invD

		sign := float32(-1)
		if t1 > t2 {
			t1, t2 = t2, t1
			sign = 1
		}
		if t1 > tMin {
			tMin = t1
			normalAxis = i
			normalSign = sign
		}
		if t2 < tMax {
			tMax = t2
		}
		if tMin > tMax {
			return 0, rl.Vector3{}, false
		}
	}

	if normalAxis < 0 {
		// Ray started inside the box
		return tMin, rl.Vector3Scale(direction, -1), true
	}

	normal := rl.Vector3Scale(obb.Axes[normalAxis], normalSign)
	return tMin, normal, true
}

// rayIntersectsSphere solves the quadratic for a ray against a sphere.
func rayIntersectsSphere(origin, direction, center rl.Vector3, radius, maxDistance float32) (float32, rl.Vector3, bool) {
	oc := rl.Vector3Subtract(origin, center)
	b := rl.Vector3DotProduct(oc, direction)
	c := rl.Vector3DotProduct(oc, oc) - radius*radius

	disc := b*b - c
	if disc < 0 {
		return 0, rl.Vector3{}, false
	}

	sqrtDisc := float32(math.Sqrt(float64(disc)))
	t := -b - sqrtDisc
	if t < 0 {
		t = -b + sqrtDisc
	}
	if t < 0 || t > maxDistance {
		return 0, rl.Vector3{}, false
	}

	point := rl.Vector3Add(origin, rl.Vector3Scale(direction, t))
	normal := rl.Vector3Normalize(rl.Vector3Subtract(point, center))
	return t, normal, true
}

// Raycast casts a ray against every collider in the world and returns the
// closest hit. The ignore object (and its children) is skipped, which lets a
// body probe the ground without hitting itself.
func (w *World) Raycast(origin, direction rl.Vector3, maxDistance float32, ignore *engine.GameObject) (engine.RaycastResult, bool) {
	direction = rl.Vector3Normalize(direction)

	best := engine.RaycastResult{Distance: maxDistance}
	hit := false

	record := func(g *engine.GameObject, t float32, n rl.Vector3) {
		best = engine.RaycastResult{
			GameObject: g,
			Point:      rl.Vector3Add(origin, rl.Vector3Scale(direction, t)),
			Normal:     n,
			Distance:   t,
		}
		hit = true
	}

	test := func(g *engine.GameObject) {
		if g == nil || !g.Active {
			return
		}
		if ignore != nil && (g == ignore || isDescendantOf(g, ignore)) {
			return
		}

		if box := engine.GetComponent[*components.BoxCollider](g); box != nil {
			obb := NewOBB(box.GetCenter(), box.GetWorldSize(), g.WorldRotation())
			if t, n, ok := rayIntersectsOBB(origin, direction, obb, best.Distance); ok && t < best.Distance {
				record(g, t, n)
			}
		}
		if sphere := engine.GetComponent[*components.SphereCollider](g); sphere != nil {
			if t, n, ok := rayIntersectsSphere(origin, direction, sphere.GetCenter(), sphere.GetRadius(), best.Distance); ok && t < best.Distance {
				record(g, t, n)
			}
		}
	}

	for _, g := range w.Objects {
		test(g)
	}
	for _, g := range w.Statics {
		test(g)
	}

	return best, hit
}

func isDescendantOf(g, ancestor *engine.GameObject) bool {
	for p := g.Parent; p != nil; p = p.Parent {
		if p == ancestor {
			return true
		}
	}
	return false
}
