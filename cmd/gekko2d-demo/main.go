package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gekko3d/gekko2d"
	"github.com/gekko3d/gekko2d/render/raster"
	"github.com/gekko3d/gekko2d/render/term"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const frameTime = time.Second / 60

type options struct {
	configPath string
	scenePath  string
	sound      bool
	debug      bool
	frames     int
	pngPath    string
	scale      float64
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "YAML physics config")
	flag.StringVar(&opts.scenePath, "scene", "", "JSON scene file (built-in scene when empty)")
	flag.BoolVar(&opts.sound, "sound", false, "click on new contacts")
	flag.BoolVar(&opts.debug, "debug", false, "debug logging")
	flag.IntVar(&opts.frames, "frames", 0, "run headless for N frames instead of drawing to the terminal")
	flag.StringVar(&opts.pngPath, "png", "", "with -frames, write the final frame to this PNG file")
	flag.Float64Var(&opts.scale, "scale", 1, "world units per terminal cell")
	flag.Parse()

	if err := run(opts); err != nil {
		log.Fatal(err)
	}
}

func run(opts options) error {
	cfg := gekko2d.DefaultConfig()
	if opts.configPath != "" {
		var err error
		if cfg, err = gekko2d.LoadConfig(opts.configPath); err != nil {
			return err
		}
	}
	cfg.DebugDraw = true

	scene := demoScene()
	if opts.scenePath != "" {
		var err error
		if scene, err = gekko2d.LoadScene(opts.scenePath); err != nil {
			return err
		}
	}

	if opts.frames > 0 {
		return runHeadless(opts, cfg, scene)
	}
	return runTerminal(opts, cfg, scene)
}

// runHeadless steps a fixed number of frames with a synthetic clock and renders the
// last one to PNG.
func runHeadless(opts options, cfg gekko2d.Config, scene gekko2d.SceneDef) error {
	renderer := raster.New(640, 400)
	renderer.Scale = 5

	clock := newStepClock(frameTime)
	app := gekko2d.NewAppBuilder().UseModule(
		gekko2d.LoggingModule{Prefix: "demo", Debug: opts.debug},
		gekko2d.TimeModule{Clock: clock.Now},
		gekko2d.PhysicsModule{Config: cfg, Scene: &scene},
		gekko2d.DebugDrawModule{Renderer: renderer},
	).Build()

	world, _ := gekko2d.Resource[gekko2d.World](app)
	for i := 0; i < opts.frames; i++ {
		app.Tick()
	}

	stats := world.Stats()
	app.Logger().Infof("%d frames, %d steps, %d contacts", opts.frames, stats.Steps, stats.Contacts)

	if opts.pngPath == "" {
		return nil
	}
	f, err := os.Create(opts.pngPath)
	if err != nil {
		return err
	}
	defer f.Close()
	return renderer.WritePNG(f)
}

func runTerminal(opts options, cfg gekko2d.Config, scene gekko2d.SceneDef) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	renderer := term.New(screen, opts.scale)
	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	app := gekko2d.NewAppBuilder().UseModule(
		gekko2d.LoggingModule{Prefix: "demo", Debug: opts.debug},
		gekko2d.TimeModule{},
		gekko2d.PhysicsModule{Config: cfg, Scene: &scene},
		gekko2d.DebugDrawModule{Renderer: renderer},
		inputModule{events: events},
	).Build()

	if opts.sound {
		world, _ := gekko2d.Resource[gekko2d.World](app)
		if err := enableSound(world); err != nil {
			// Non-fatal, the demo runs without sound
			app.Logger().Warnf("audio initialization failed: %v", err)
		}
	}

	app.Run()
	return nil
}

type inputQueue struct {
	events <-chan tcell.Event
}

type inputModule struct {
	events <-chan tcell.Event
}

func (m inputModule) Install(app *gekko2d.App, cmd *gekko2d.Commands) {
	cmd.AddResources(&inputQueue{events: m.events})
	app.UseSystem(gekko2d.System(inputSystem).InStage(gekko2d.PreUpdate))
	app.UseSystem(gekko2d.System(frameLimitSystem).InStage(gekko2d.Finale))
}

func inputSystem(cmd *gekko2d.Commands, queue *inputQueue, world *gekko2d.World) {
	for {
		select {
		case ev := <-queue.events:
			key, ok := ev.(*tcell.EventKey)
			if !ok {
				continue
			}
			switch {
			case key.Key() == tcell.KeyEscape || key.Key() == tcell.KeyCtrlC:
				cmd.Exit()
			case key.Key() == tcell.KeyRune && key.Rune() == 'q':
				cmd.Exit()
			case key.Key() == tcell.KeyRune && key.Rune() == ' ':
				dropBall(cmd, world)
			case key.Key() == tcell.KeyRune && key.Rune() == 'd':
				world.SetDebugDraw(!world.DebugDrawEnabled())
			}
		default:
			return
		}
	}
}

func dropBall(cmd *gekko2d.Commands, world *gekko2d.World) {
	ball, err := world.CreateCircle(gekko2d.BodyDynamic, mgl64.Vec2{40, 44}, 1.5, gekko2d.BouncyMaterial())
	if err != nil {
		cmd.Logger().Warnf("drop ball: %v", err)
		return
	}
	ball.SetVelocity(mgl64.Vec2{float64(world.BodyCount()%7) - 3, 0})
}

func frameLimitSystem(t *gekko2d.Time) {
	if elapsed := time.Since(t.Time); elapsed < frameTime {
		time.Sleep(frameTime - elapsed)
	}
}

const sampleRate = beep.SampleRate(44100)

func enableSound(world *gekko2d.World) error {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return err
	}
	world.OnCollisionEnter(func(ev gekko2d.CollisionEvent) {
		if ev.Trigger || ev.NormalImpulse < 1 {
			return
		}
		sine, err := generators.SineTone(sampleRate, 660)
		if err != nil {
			return
		}
		speaker.Play(beep.Take(sampleRate.N(30*time.Millisecond), sine))
	})
	return nil
}

// stepClock advances by a fixed amount every time it is read.
type stepClock struct {
	now  time.Time
	step time.Duration
}

func newStepClock(step time.Duration) *stepClock {
	return &stepClock{now: time.Unix(0, 0), step: step}
}

func (c *stepClock) Now() time.Time {
	t := c.now
	c.now = c.now.Add(c.step)
	return t
}

func demoScene() gekko2d.SceneDef {
	wall := func(x, y, w, h float64) gekko2d.BodyDef {
		return gekko2d.BodyDef{
			Type:      gekko2d.BodyStatic,
			Position:  mgl64.Vec2{x, y},
			Colliders: []gekko2d.ColliderDef{{Shape: gekko2d.ShapeBox, Width: w, Height: h, Material: "stone"}},
		}
	}
	ball := func(x, y, vx float64, material string) gekko2d.BodyDef {
		return gekko2d.BodyDef{
			Position:    mgl64.Vec2{x, y},
			Velocity:    mgl64.Vec2{vx, 0},
			ComputeMass: true,
			Colliders:   []gekko2d.ColliderDef{{Shape: gekko2d.ShapeCircle, Radius: 1.5, Material: material}},
		}
	}

	scene := gekko2d.SceneDef{
		Bodies: []gekko2d.BodyDef{
			wall(40, 1, 80, 2),
			wall(1, 24, 2, 48),
			wall(79, 24, 2, 48),
			ball(20, 40, 6, "bouncy"),
			ball(40, 30, -4, "rubber"),
			ball(60, 36, 0, "superbouncy"),
			{
				Position:  mgl64.Vec2{30, 20},
				Colliders: []gekko2d.ColliderDef{{Shape: gekko2d.ShapeBox, Width: 6, Height: 4, Material: "wood"}},
			},
			{
				Type:     gekko2d.BodyStatic,
				Position: mgl64.Vec2{55, 12},
				Colliders: []gekko2d.ColliderDef{
					{Shape: gekko2d.ShapeBox, Width: 10, Height: 6, Trigger: true},
				},
			},
		},
	}
	for i := range scene.Bodies {
		scene.Bodies[i].UserData = fmt.Sprintf("demo-%d", i)
	}
	return scene
}
