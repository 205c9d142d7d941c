package sim

import (
	"fmt"

	"drivekit/internal/components"
	"drivekit/internal/engine"
	"drivekit/internal/physics"
	"drivekit/internal/vehicle"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"
)

const fixedDelta = float32(1.0 / 60.0)

// Sim is the playable demo: a handful of box vehicles on a test course,
// one rig driving whichever vehicle is currently bound.
type Sim struct {
	scene    *engine.Scene
	world    *physics.World
	rig      *vehicle.Rig
	vehicles []*engine.GameObject
	current  int
	log      *zap.Logger

	accumulator float32
}

func New(tuning *vehicle.Tuning, log *zap.Logger) *Sim {
	if log == nil {
		log = zap.NewNop()
	}

	s := &Sim{
		scene: engine.NewScene("course"),
		world: physics.NewWorld(),
		log:   log,
	}
	s.scene.World = s.world

	s.buildCourse()
	s.buildVehicles()

	shaper := vehicle.NewForceShaper(tuning)
	s.rig = vehicle.NewRig(shaper)
	s.rig.SetLogger(log)
	s.rig.SetInput(vehicle.NewKeyboardInput())
	s.rig.OnBound.AddListener(func(g *engine.GameObject) {
		s.log.Info("driving", zap.String("vehicle", g.Name))
	})

	controller := engine.NewGameObject("Controller")
	controller.AddComponent(s.rig)
	s.scene.AddGameObject(controller)

	if err := s.rig.Bind(s.vehicles[0]); err != nil {
		s.log.Error("initial bind failed", zap.Error(err))
	}

	return s
}

func (s *Sim) buildCourse() {
	addStatic := func(name string, pos, size rl.Vector3, rot rl.Vector3) {
		g := engine.NewGameObject(name)
		g.Transform.Position = pos
		g.Transform.Rotation = rot
		g.AddComponent(components.NewBoxCollider(size))
		s.scene.AddGameObject(g)
		s.world.AddStatic(g)
	}

	addStatic("Ground", rl.Vector3{Y: -0.5}, rl.Vector3{X: 200, Y: 1, Z: 200}, rl.Vector3{})
	addStatic("Ramp", rl.Vector3{X: 12, Y: 0.8, Z: 20}, rl.Vector3{X: 8, Y: 0.5, Z: 12}, rl.Vector3{X: -15})
	addStatic("WallNorth", rl.Vector3{Z: 100, Y: 2}, rl.Vector3{X: 200, Y: 4, Z: 1}, rl.Vector3{})
	addStatic("WallSouth", rl.Vector3{Z: -100, Y: 2}, rl.Vector3{X: 200, Y: 4, Z: 1}, rl.Vector3{})
	addStatic("WallEast", rl.Vector3{X: 100, Y: 2}, rl.Vector3{X: 1, Y: 4, Z: 200}, rl.Vector3{})
	addStatic("WallWest", rl.Vector3{X: -100, Y: 2}, rl.Vector3{X: 1, Y: 4, Z: 200}, rl.Vector3{})
}

func (s *Sim) buildVehicles() {
	prefabs := []struct {
		name string
		size rl.Vector3
		pos  rl.Vector3
		mass float32
	}{
		{"Roadster", rl.Vector3{X: 1, Y: 0.5, Z: 2}, rl.Vector3{Y: 0.5}, 1},
		{"Hauler", rl.Vector3{X: 1.4, Y: 1.2, Z: 3}, rl.Vector3{X: -4, Y: 0.8}, 3},
		{"Block", rl.Vector3{X: 1.2, Y: 1.2, Z: 1.2}, rl.Vector3{X: 4, Y: 0.8}, 2},
	}

	for _, p := range prefabs {
		g := engine.NewGameObject(p.name)
		g.Transform.Position = p.pos

		rb := components.NewRigidbody()
		rb.Mass = p.mass
		rb.Interpolate = true
		g.AddComponent(rb)
		g.AddComponent(components.NewBoxCollider(p.size))

		s.scene.AddGameObject(g)
		s.world.AddObject(g)
		s.vehicles = append(s.vehicles, g)
	}
}

// Run opens the window and drives the fixed-step loop until close.
func (s *Sim) Run() {
	rl.SetConfigFlags(rl.FlagWindowHighdpi)
	rl.InitWindow(1280, 720, "drivekit demo")
	defer rl.CloseWindow()
	rl.SetTargetFPS(120)

	s.scene.Start()

	camera := rl.Camera3D{
		Position:   rl.Vector3{X: 0, Y: 8, Z: -12},
		Target:     rl.Vector3{},
		Up:         rl.Vector3{Y: 1},
		Fovy:       60,
		Projection: rl.CameraPerspective,
	}

	for !rl.WindowShouldClose() {
		s.handleKeys()

		frame := rl.GetFrameTime()
		if frame > 0.25 {
			frame = 0.25
		}
		s.accumulator += frame
		for s.accumulator >= fixedDelta {
			s.scene.Update(fixedDelta)
			s.world.Step(fixedDelta)
			s.accumulator -= fixedDelta
		}

		alpha := s.accumulator / fixedDelta
		s.updateCamera(&camera, alpha)
		s.draw(camera, alpha)
	}
}

func (s *Sim) handleKeys() {
	if rl.IsKeyPressed(rl.KeyTab) {
		s.current = (s.current + 1) % len(s.vehicles)
		if err := s.rig.Bind(s.vehicles[s.current]); err != nil {
			s.log.Error("bind failed", zap.Error(err))
		}
	}

	// Flip the driven vehicle upside down to exercise recovery
	if rl.IsKeyPressed(rl.KeyR) {
		if g := s.rig.Bound(); g != nil {
			g.Transform.Rotation.Z += 180
		}
	}
}

func (s *Sim) updateCamera(camera *rl.Camera3D, alpha float32) {
	g := s.rig.Bound()
	if g == nil {
		return
	}
	pos := g.Transform.Position
	if rb := engine.GetComponent[*components.Rigidbody](g); rb != nil {
		pos = rb.InterpolatedPosition(alpha)
	}

	back := rl.Vector3Scale(g.Forward(), -10)
	target := rl.Vector3Add(pos, rl.Vector3{Y: 1})
	wanted := rl.Vector3Add(rl.Vector3Add(pos, back), rl.Vector3{Y: 5})

	camera.Position = rl.Vector3Lerp(camera.Position, wanted, 0.1)
	camera.Target = target
}

func (s *Sim) draw(camera rl.Camera3D, alpha float32) {
	rl.BeginDrawing()
	rl.ClearBackground(rl.SkyBlue)

	rl.BeginMode3D(camera)
	rl.DrawGrid(100, 2)

	for _, g := range s.scene.GameObjects {
		box := engine.GetComponent[*components.BoxCollider](g)
		if box == nil {
			continue
		}

		pos := g.Transform.Position
		if rb := engine.GetComponent[*components.Rigidbody](g); rb != nil {
			pos = rb.InterpolatedPosition(alpha)
		}

		color := rl.Gray
		if g == s.rig.Bound() {
			color = rl.Red
		} else if len(s.vehicles) > 0 && containsObject(s.vehicles, g) {
			color = rl.Orange
		}

		drawRotatedCube(pos, box.GetWorldSize(), g.WorldRotation(), color)
	}

	rl.EndMode3D()

	s.drawHUD()
	rl.EndDrawing()
}

func (s *Sim) drawHUD() {
	rl.DrawText("WASD drive | Tab switch vehicle | R flip", 10, 10, 20, rl.DarkGray)

	st := s.rig.LastState()
	regime := "airborne"
	if st.Grounded {
		regime = "grounded"
	}
	rl.DrawText(regime, 10, 36, 20, rl.DarkGray)

	if g := s.rig.Bound(); g != nil {
		if rb := engine.GetComponent[*components.Rigidbody](g); rb != nil {
			rl.DrawText(fmt.Sprintf("%.1f m/s", rb.Speed()), 10, 62, 20, rl.DarkGray)
		}
	}
	rl.DrawFPS(10, 88)
}

func drawRotatedCube(pos, size, rotationDeg rl.Vector3, color rl.Color) {
	rl.PushMatrix()
	rl.Translatef(pos.X, pos.Y, pos.Z)
	rl.Rotatef(rotationDeg.X, 1, 0, 0)
	rl.Rotatef(rotationDeg.Y, 0, 1, 0)
	rl.Rotatef(rotationDeg.Z, 0, 0, 1)
	rl.DrawCube(rl.Vector3{}, size.X, size.Y, size.Z, color)
	rl.DrawCubeWires(rl.Vector3{}, size.X, size.Y, size.Z, rl.Black)
	rl.PopMatrix()
}

func containsObject(list []*engine.GameObject, g *engine.GameObject) bool {
	for _, o := range list {
		if o == g {
			return true
		}
	}
	return false
}
