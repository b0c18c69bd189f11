package gekko2d

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// accumulatorEpsilon absorbs rounding when the accumulator holds a whole number of steps.
const accumulatorEpsilon = 1e-9

type bodySlot struct {
	body       *Body
	generation uint32
}

// Stats are counters about the most recent step plus running totals.
type Stats struct {
	Steps         uint64
	Bodies        int
	PairsTested   int
	Manifolds     int
	Resolved      int
	Contacts      int
	ClampedFrames uint64
}

// World owns every body and steps them with a fixed timestep.
type World struct {
	cfg    Config
	logger Logger

	solver   *ImpulseSolver
	broad    BroadPhase
	narrow   *narrowPhase
	contacts *contactCache

	slots []bodySlot
	free  []uint32
	count int

	accumulator float64
	stepping    bool
	debugDraw   bool
	stats       Stats

	onCollision []CollisionHandler
	onEnter     []CollisionHandler
	onStay      []CollisionHandler
	onExit      []CollisionHandler

	// scratch reused across steps
	live      []*Body
	pairs     []bodyPair
	manifolds []Manifold
}

type WorldOption func(*World)

func WithLogger(logger Logger) WorldOption {
	return func(w *World) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// WithBroadPhase replaces the broad-phase picked from Config.BroadPhase.
func WithBroadPhase(bp BroadPhase) WorldOption {
	return func(w *World) {
		if bp != nil {
			w.broad = bp
		}
	}
}

func NewWorld(cfg Config, opts ...WorldOption) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	w := &World{
		cfg:       cfg,
		logger:    NewNopLogger(),
		solver:    NewImpulseSolver(cfg.Solver),
		broad:     newBroadPhase(cfg),
		narrow:    newNarrowPhase(cfg.NarrowPhaseWorkers),
		contacts:  newContactCache(),
		debugDraw: cfg.DebugDraw,
	}
	for _, opt := range opts {
		opt(w)
	}

	w.logger.Debugf("physics world: dt=%.4f broad-phase=%s workers=%d",
		cfg.FixedTimestep, cfg.BroadPhase, cfg.NarrowPhaseWorkers)
	return w, nil
}

func (w *World) Config() Config            { return w.cfg }
func (w *World) Gravity() mgl64.Vec2       { return w.cfg.Gravity }
func (w *World) SetGravity(g mgl64.Vec2)   { w.cfg.Gravity = g }
func (w *World) FixedTimestep() float64    { return w.cfg.FixedTimestep }
func (w *World) Stats() Stats              { return w.stats }
func (w *World) Logger() Logger            { return w.logger }
func (w *World) Solver() *ImpulseSolver    { return w.solver }
func (w *World) BroadPhase() BroadPhase    { return w.broad }
func (w *World) BodyCount() int            { return w.count }
func (w *World) Locked() bool              { return w.stepping }
func (w *World) DebugDrawEnabled() bool    { return w.debugDraw }
func (w *World) SetDebugDraw(enabled bool) { w.debugDraw = enabled }

// Alpha is the fraction of a fixed step left in the accumulator, for render interpolation.
func (w *World) Alpha() float64 {
	return w.accumulator / w.cfg.FixedTimestep
}

// Update feeds frame time into the accumulator and runs as many fixed steps as it
// holds, at most Config.MaxSteps. Negative and NaN frame times are ignored.
// It returns the number of steps run.
func (w *World) Update(dt float64) int {
	if !(dt > 0) {
		return 0
	}

	fixed := w.cfg.FixedTimestep
	w.accumulator += dt

	limit := float64(w.cfg.MaxSteps) * fixed
	if w.accumulator > limit {
		w.logger.Warnf("physics fell behind: %.4fs queued, clamping to %d steps", w.accumulator, w.cfg.MaxSteps)
		w.accumulator = limit
		w.stats.ClampedFrames++
	}

	steps := int(math.Floor(w.accumulator/fixed + accumulatorEpsilon))
	steps = min(steps, w.cfg.MaxSteps)
	for i := 0; i < steps; i++ {
		w.Step(fixed)
	}

	w.accumulator = math.Max(w.accumulator-float64(steps)*fixed, 0)
	return steps
}

// Step advances the simulation by exactly dt.
func (w *World) Step(dt float64) {
	w.stepping = true
	defer func() { w.stepping = false }()

	w.stats.Steps++
	step := w.stats.Steps

	w.live = w.live[:0]
	for _, slot := range w.slots {
		if slot.body != nil {
			w.live = append(w.live, slot.body)
		}
	}

	for _, b := range w.live {
		b.Integrate(dt, w.cfg.Gravity)
	}

	w.pairs = w.broad.Pairs(w.live, w.pairs)
	w.manifolds = w.narrow.detect(w.live, w.pairs, w.manifolds)

	resolved := 0
	for i := range w.manifolds {
		m := &w.manifolds[i]
		key := m.Key()
		touching := w.contacts.touching(key)

		if !m.IsTrigger() || w.cfg.ResolveTriggers {
			if w.cfg.WarmStarting {
				m.AccumulatedNormalImpulse = w.contacts.warmImpulse(key, m.Normal)
				w.solver.WarmStart(m)
			}
			if res := w.solver.Resolve(m); !res.Skipped {
				resolved++
			}
		}

		// Cached contacts always carry their last event for exit handlers.
		event, err := newCollisionEvent(m, step)
		if err != nil {
			w.logger.Errorf("collision event: %v", err)
		}
		w.contacts.store(key, m, event)

		w.emit(w.onCollision, event)
		if touching {
			w.emit(w.onStay, event)
		} else {
			w.emit(w.onEnter, event)
		}
	}

	for _, event := range w.contacts.swap() {
		event.Step = step
		w.emit(w.onExit, event)
	}

	w.stats.Bodies = len(w.live)
	w.stats.PairsTested = len(w.pairs)
	w.stats.Manifolds = len(w.manifolds)
	w.stats.Resolved = resolved
	w.stats.Contacts = w.contacts.len()
}

func (w *World) emit(handlers []CollisionHandler, event CollisionEvent) {
	for _, fn := range handlers {
		fn(event)
	}
}

// OnCollision registers fn for every manifold of every step.
func (w *World) OnCollision(fn CollisionHandler) { w.onCollision = append(w.onCollision, fn) }

// OnCollisionEnter fires for contacts that did not exist in the previous step.
func (w *World) OnCollisionEnter(fn CollisionHandler) { w.onEnter = append(w.onEnter, fn) }

// OnCollisionStay fires for contacts that persist from the previous step.
func (w *World) OnCollisionStay(fn CollisionHandler) { w.onStay = append(w.onStay, fn) }

// OnCollisionExit fires once when a contact stops. The event carries the last
// state seen while touching.
func (w *World) OnCollisionExit(fn CollisionHandler) { w.onExit = append(w.onExit, fn) }

// CreateBody adds a body built from def. It fails while a step is running.
func (w *World) CreateBody(def BodyDef) (*Body, error) {
	if w.stepping {
		return nil, fmt.Errorf("create body: %w", ErrWorldLocked)
	}

	b, err := def.build()
	if err != nil {
		return nil, err
	}
	w.insert(b)
	return b, nil
}

func (w *World) CreateCircle(typ BodyType, position mgl64.Vec2, radius float64, material Material) (*Body, error) {
	return w.CreateBody(BodyDef{
		Type:      typ,
		Position:  position,
		Colliders: []ColliderDef{CircleDef(radius, material)},
	})
}

func (w *World) CreateBox(typ BodyType, position mgl64.Vec2, width, height float64, material Material) (*Body, error) {
	return w.CreateBody(BodyDef{
		Type:      typ,
		Position:  position,
		Colliders: []ColliderDef{BoxDef(width, height, material)},
	})
}

func (w *World) insert(b *Body) {
	var index uint32
	if n := len(w.free); n > 0 {
		index = w.free[n-1]
		w.free = w.free[:n-1]
	} else {
		index = uint32(len(w.slots))
		w.slots = append(w.slots, bodySlot{})
	}

	slot := &w.slots[index]
	slot.generation++
	slot.body = b
	b.handle = BodyHandle{Index: index, Generation: slot.generation}
	w.count++

	w.logger.Debugf("created %s at %v with %d collider(s)", b, b.position, len(b.colliders))
}

// DestroyBody removes the body and its colliders. Its handle becomes stale.
func (w *World) DestroyBody(h BodyHandle) error {
	if w.stepping {
		return fmt.Errorf("destroy %s: %w", h, ErrWorldLocked)
	}
	b, ok := w.Body(h)
	if !ok {
		return fmt.Errorf("destroy %s: %w", h, ErrStaleHandle)
	}

	w.slots[h.Index].body = nil
	w.free = append(w.free, h.Index)
	w.count--
	w.contacts.forget(h)

	w.logger.Debugf("destroyed %s", b)
	return nil
}

// Body resolves a handle. Handles of destroyed bodies report false.
func (w *World) Body(h BodyHandle) (*Body, bool) {
	if int(h.Index) >= len(w.slots) {
		return nil, false
	}
	slot := w.slots[h.Index]
	if slot.body == nil || slot.generation != h.Generation {
		return nil, false
	}
	return slot.body, true
}

// Bodies returns the live bodies in slot order, which is also the step order.
func (w *World) Bodies() []*Body {
	bodies := make([]*Body, 0, w.count)
	for _, slot := range w.slots {
		if slot.body != nil {
			bodies = append(bodies, slot.body)
		}
	}
	return bodies
}

// DebugShapes describes every collider, whether or not debug drawing is enabled.
func (w *World) DebugShapes() []DebugShape {
	var shapes []DebugShape
	for _, slot := range w.slots {
		if slot.body == nil {
			continue
		}
		for _, c := range slot.body.colliders {
			shapes = append(shapes, colliderDebugShape(c))
		}
	}
	return shapes
}

// DebugDraw sends every collider outline to r. It does nothing while debug drawing
// is disabled.
func (w *World) DebugDraw(r DebugRenderer) {
	if !w.debugDraw || r == nil {
		return
	}
	for _, shape := range w.DebugShapes() {
		shape.Draw(r)
	}
}
