package gekko2d

import (
	"fmt"
)

// PhysicsModule installs a *World resource and steps it once per frame with the
// frame delta from the Time resource, so TimeModule must be installed as well.
type PhysicsModule struct {
	// Config defaults to DefaultConfig when left zero.
	Config Config
	// Scene is spawned into the world on install when set.
	Scene *SceneDef
}

func (m PhysicsModule) Install(app *App, cmd *Commands) {
	cfg := m.Config
	if cfg == (Config{}) {
		cfg = DefaultConfig()
	}

	world, err := NewWorld(cfg, WithLogger(app.Logger()))
	if err != nil {
		panic(fmt.Sprintf("physics module: %v", err))
	}
	if m.Scene != nil {
		if _, err := world.Spawn(*m.Scene); err != nil {
			panic(fmt.Sprintf("physics module: %v", err))
		}
	}
	cmd.AddResources(world)

	app.UseSystem(
		System(PhysicsStepSystem).
			InStage(Update),
	)
}

// PhysicsStepSystem feeds the frame delta into the world accumulator.
func PhysicsStepSystem(t *Time, world *World) {
	world.Update(t.DeltaSeconds())
}

// DebugDrawTarget is the resource DebugDrawModule draws through.
type DebugDrawTarget struct {
	Renderer DebugRenderer
}

// FrameRenderer is a DebugRenderer that needs to know where frames start and end.
type FrameRenderer interface {
	DebugRenderer
	BeginFrame()
	EndFrame()
}

// DebugDrawModule draws the world's collider outlines in the Render stage while
// debug drawing is enabled on the world.
type DebugDrawModule struct {
	Renderer DebugRenderer
}

func (m DebugDrawModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&DebugDrawTarget{Renderer: m.Renderer})
	app.UseSystem(
		System(DebugDrawSystem).
			InStage(Render),
	)
}

func DebugDrawSystem(world *World, target *DebugDrawTarget) {
	if target.Renderer == nil || !world.DebugDrawEnabled() {
		return
	}
	if fr, ok := target.Renderer.(FrameRenderer); ok {
		fr.BeginFrame()
		defer fr.EndFrame()
	}
	world.DebugDraw(target.Renderer)
}
