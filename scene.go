package gekko2d

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	ShapeCircle = "circle"
	ShapeBox    = "box"
)

// SceneDef is a set of bodies to spawn into a World, usually loaded from JSON.
type SceneDef struct {
	// Gravity overrides the world gravity when set.
	Gravity *mgl64.Vec2 `json:"gravity,omitempty"`
	Bodies  []BodyDef   `json:"bodies"`
}

// BodyDef describes a body and its colliders.
type BodyDef struct {
	Type            BodyType   `json:"type"`
	Position        mgl64.Vec2 `json:"position"`
	Rotation        float64    `json:"rotation,omitempty"`
	Velocity        mgl64.Vec2 `json:"velocity"`
	AngularVelocity float64    `json:"angular_velocity,omitempty"`

	// Mass <= 0 means 1, or the collider mass when ComputeMass is set.
	Mass        float64 `json:"mass,omitempty"`
	ComputeMass bool    `json:"compute_mass,omitempty"`

	// GravityScale defaults to 1.
	GravityScale   *float64 `json:"gravity_scale,omitempty"`
	LinearDamping  float64  `json:"linear_damping,omitempty"`
	AngularDamping float64  `json:"angular_damping,omitempty"`
	FixedRotation  bool     `json:"fixed_rotation,omitempty"`

	Colliders []ColliderDef `json:"colliders"`
	UserData  any           `json:"-"`
}

// ColliderDef describes one collider. Material names a preset; MaterialValues wins
// when both are set. With neither, DefaultMaterial is used.
type ColliderDef struct {
	Shape  string     `json:"shape"`
	Radius float64    `json:"radius,omitempty"`
	Width  float64    `json:"width,omitempty"`
	Height float64    `json:"height,omitempty"`
	Offset mgl64.Vec2 `json:"offset"`

	Material       string    `json:"material,omitempty"`
	MaterialValues *Material `json:"material_values,omitempty"`
	Trigger        bool      `json:"trigger,omitempty"`
}

func CircleDef(radius float64, material Material) ColliderDef {
	return ColliderDef{Shape: ShapeCircle, Radius: radius, MaterialValues: &material}
}

func BoxDef(width, height float64, material Material) ColliderDef {
	return ColliderDef{Shape: ShapeBox, Width: width, Height: height, MaterialValues: &material}
}

func (def ColliderDef) material() (Material, error) {
	switch {
	case def.MaterialValues != nil:
		return *def.MaterialValues, nil
	case def.Material != "":
		return MaterialByName(def.Material)
	}
	return DefaultMaterial(), nil
}

// Build creates a detached collider from the definition.
func (def ColliderDef) Build() (*Collider, error) {
	mat, err := def.material()
	if err != nil {
		return nil, err
	}
	if err := mat.Validate(); err != nil {
		return nil, fmt.Errorf("material: %w", err)
	}

	var c *Collider
	switch strings.ToLower(def.Shape) {
	case ShapeCircle:
		if !(def.Radius > 0) {
			return nil, fmt.Errorf("circle radius %v must be > 0", def.Radius)
		}
		c = NewCircleCollider(def.Radius, mat)
	case ShapeBox:
		if !(def.Width > 0 && def.Height > 0) {
			return nil, fmt.Errorf("box size %vx%v must be > 0", def.Width, def.Height)
		}
		c = NewBoxCollider(def.Width, def.Height, mat)
	default:
		return nil, fmt.Errorf("shape %q: %w", def.Shape, ErrUnknownShape)
	}
	return c.SetOffset(def.Offset).SetTrigger(def.Trigger), nil
}

func (def BodyDef) build() (*Body, error) {
	b := newBody()
	b.SetPosition(def.Position)
	b.SetRotation(def.Rotation)

	for i, cd := range def.Colliders {
		c, err := cd.Build()
		if err != nil {
			return nil, fmt.Errorf("collider %d: %w", i, err)
		}
		if err := b.AttachCollider(c); err != nil {
			return nil, err
		}
	}

	switch {
	case def.Mass > 0:
		b.SetMass(def.Mass)
	case def.ComputeMass && len(b.colliders) > 0:
		b.ComputeMassFromColliders()
	default:
		b.SetMass(1)
	}

	// Type last so static and kinematic bodies end with zero inverse mass.
	b.SetType(def.Type)
	b.SetVelocity(def.Velocity)
	b.SetAngularVelocity(def.AngularVelocity)
	if def.GravityScale != nil {
		b.SetGravityScale(*def.GravityScale)
	}
	b.SetLinearDamping(def.LinearDamping)
	b.SetAngularDamping(def.AngularDamping)
	b.SetFixedRotation(def.FixedRotation)
	b.UserData = def.UserData
	return b, nil
}

// Spawn creates every body of the scene in order. On error, bodies already created
// stay in the world and are returned with the error.
func (w *World) Spawn(scene SceneDef) ([]*Body, error) {
	if scene.Gravity != nil {
		w.SetGravity(*scene.Gravity)
	}

	bodies := make([]*Body, 0, len(scene.Bodies))
	for i, def := range scene.Bodies {
		b, err := w.CreateBody(def)
		if err != nil {
			return bodies, fmt.Errorf("scene body %d: %w", i, err)
		}
		bodies = append(bodies, b)
	}
	w.logger.Infof("spawned %d bodies", len(bodies))
	return bodies, nil
}

func LoadScene(filename string) (SceneDef, error) {
	bytes, err := os.ReadFile(filename)
	if err != nil {
		return SceneDef{}, err
	}

	var scene SceneDef
	if err := json.Unmarshal(bytes, &scene); err != nil {
		return SceneDef{}, fmt.Errorf("scene %s: %w", filename, err)
	}
	return scene, nil
}

func SaveScene(filename string, scene SceneDef) error {
	bytes, err := json.MarshalIndent(scene, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filename, bytes, 0644)
}

// SceneFromWorld captures the live bodies of w as a scene. UserData is not saved.
func SceneFromWorld(w *World) SceneDef {
	gravity := w.Gravity()
	scene := SceneDef{Gravity: &gravity}

	for _, b := range w.Bodies() {
		gs := b.gravityScale
		def := BodyDef{
			Type:            b.bodyType,
			Position:        b.position,
			Rotation:        b.rotation,
			Velocity:        b.velocity,
			AngularVelocity: b.angularVelocity,
			Mass:            b.mass,
			GravityScale:    &gs,
			LinearDamping:   b.linearDamping,
			AngularDamping:  b.angularDamping,
			FixedRotation:   b.fixedRotation,
		}
		for _, c := range b.colliders {
			mat := c.material
			cd := ColliderDef{Offset: c.offset, MaterialValues: &mat, Trigger: c.trigger}
			switch s := c.shape.(type) {
			case Circle:
				cd.Shape, cd.Radius = ShapeCircle, s.Radius
			case Box:
				cd.Shape, cd.Width, cd.Height = ShapeBox, s.Width(), s.Height()
			}
			def.Colliders = append(def.Colliders, cd)
		}
		scene.Bodies = append(scene.Bodies, def)
	}
	return scene
}
