package gekko2d

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// BodyType selects how a body takes part in the simulation. The zero value is BodyDynamic.
type BodyType int

const (
	BodyDynamic BodyType = iota
	BodyStatic
	BodyKinematic
)

func (t BodyType) String() string {
	switch t {
	case BodyStatic:
		return "static"
	case BodyKinematic:
		return "kinematic"
	case BodyDynamic:
		return "dynamic"
	}
	return fmt.Sprintf("BodyType(%d)", int(t))
}

// ParseBodyType accepts the names produced by BodyType.String.
func ParseBodyType(s string) (BodyType, error) {
	switch s {
	case "static":
		return BodyStatic, nil
	case "kinematic":
		return BodyKinematic, nil
	case "dynamic", "":
		return BodyDynamic, nil
	}
	return BodyDynamic, fmt.Errorf("unknown body type %q", s)
}

func (t BodyType) MarshalText() ([]byte, error) {
	switch t {
	case BodyStatic, BodyKinematic, BodyDynamic:
		return []byte(t.String()), nil
	}
	return nil, fmt.Errorf("unknown body type %d", int(t))
}

func (t *BodyType) UnmarshalText(text []byte) error {
	parsed, err := ParseBodyType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// BodyHandle addresses a body slot inside a World. The generation makes handles of
// destroyed bodies stale instead of aliasing a newer body in the same slot.
type BodyHandle struct {
	Index      uint32
	Generation uint32
}

func (h BodyHandle) String() string {
	return fmt.Sprintf("body#%d.%d", h.Index, h.Generation)
}

// Body is a rigid body owned by a World.
type Body struct {
	id     uuid.UUID
	handle BodyHandle

	position         mgl64.Vec2
	previousPosition mgl64.Vec2
	rotation         float64
	previousRotation float64

	velocity        mgl64.Vec2
	angularVelocity float64
	force           mgl64.Vec2
	torque          float64

	mass           float64
	invMass        float64
	inertia        float64
	invInertia     float64
	bodyType       BodyType
	linearDamping  float64
	angularDamping float64
	gravityScale   float64
	fixedRotation  bool

	colliders []*Collider

	UserData any
}

func newBody() *Body {
	return &Body{
		id:           uuid.New(),
		mass:         1,
		invMass:      1,
		inertia:      1,
		invInertia:   1,
		bodyType:     BodyDynamic,
		gravityScale: 1,
	}
}

func (b *Body) ID() uuid.UUID            { return b.id }
func (b *Body) Handle() BodyHandle       { return b.handle }
func (b *Body) Type() BodyType           { return b.bodyType }
func (b *Body) IsStatic() bool           { return b.bodyType == BodyStatic }
func (b *Body) IsKinematic() bool        { return b.bodyType == BodyKinematic }
func (b *Body) IsDynamic() bool          { return b.bodyType == BodyDynamic }
func (b *Body) Position() mgl64.Vec2     { return b.position }
func (b *Body) Rotation() float64        { return b.rotation }
func (b *Body) Velocity() mgl64.Vec2     { return b.velocity }
func (b *Body) AngularVelocity() float64 { return b.angularVelocity }
func (b *Body) Force() mgl64.Vec2        { return b.force }
func (b *Body) Torque() float64          { return b.torque }
func (b *Body) Mass() float64            { return b.mass }
func (b *Body) InvMass() float64         { return b.invMass }
func (b *Body) Inertia() float64         { return b.inertia }
func (b *Body) InvInertia() float64      { return b.invInertia }
func (b *Body) GravityScale() float64    { return b.gravityScale }
func (b *Body) LinearDamping() float64   { return b.linearDamping }
func (b *Body) AngularDamping() float64  { return b.angularDamping }
func (b *Body) FixedRotation() bool      { return b.fixedRotation }

// SetPosition teleports the body; the previous position is reset so interpolation
// does not smear across the jump.
func (b *Body) SetPosition(p mgl64.Vec2) {
	b.position = p
	b.previousPosition = p
}

func (b *Body) SetRotation(angle float64) {
	b.rotation = angle
	b.previousRotation = angle
}

// SetVelocity is ignored for static bodies.
func (b *Body) SetVelocity(v mgl64.Vec2) {
	if b.bodyType == BodyStatic {
		return
	}
	b.velocity = v
}

func (b *Body) SetAngularVelocity(w float64) {
	if b.bodyType == BodyStatic {
		return
	}
	b.angularVelocity = w
}

func (b *Body) SetGravityScale(scale float64)     { b.gravityScale = scale }
func (b *Body) SetLinearDamping(damping float64)  { b.linearDamping = damping }
func (b *Body) SetAngularDamping(damping float64) { b.angularDamping = damping }

func (b *Body) SetFixedRotation(fixed bool) {
	b.fixedRotation = fixed
	if fixed {
		b.angularVelocity = 0
		b.torque = 0
	}
}

func (b *Body) ApplyForce(f mgl64.Vec2) {
	if b.bodyType != BodyDynamic {
		return
	}
	b.force = b.force.Add(f)
}

func (b *Body) ApplyImpulse(j mgl64.Vec2) {
	if b.bodyType != BodyDynamic {
		return
	}
	b.velocity = b.velocity.Add(j.Mul(b.invMass))
}

func (b *Body) ApplyTorque(t float64) {
	if b.bodyType != BodyDynamic || b.fixedRotation {
		return
	}
	b.torque += t
}

// SetMass replaces non-positive (and NaN) masses with 1.
func (b *Body) SetMass(m float64) {
	if !(m > 0) || math.IsInf(m, 0) {
		m = 1
	}
	b.mass = m
	if b.bodyType == BodyDynamic {
		b.invMass = 1 / m
	}
	b.updateInertia()
}

// ComputeMassFromColliders sets the mass to the sum of density*area over all colliders.
func (b *Body) ComputeMassFromColliders() {
	total := 0.0
	for _, c := range b.colliders {
		total += c.material.Density * c.shape.Area()
	}
	b.SetMass(total)
}

// SetType switches the body type. Static and kinematic bodies get infinite mass.
func (b *Body) SetType(t BodyType) {
	b.bodyType = t
	switch t {
	case BodyStatic:
		b.invMass = 0
		b.invInertia = 0
		b.velocity = mgl64.Vec2{}
		b.angularVelocity = 0
	case BodyKinematic:
		b.invMass = 0
		b.invInertia = 0
	case BodyDynamic:
		b.invMass = 1 / b.mass
		b.updateInertia()
	}
	b.force = mgl64.Vec2{}
	b.torque = 0
}

// AttachCollider hands ownership of c to the body.
func (b *Body) AttachCollider(c *Collider) error {
	if c.body != nil {
		return fmt.Errorf("attach %s to %s: %w", c, b.handle, ErrColliderAttached)
	}
	c.body = b
	c.index = len(b.colliders)
	b.colliders = append(b.colliders, c)
	b.updateInertia()
	return nil
}

func (b *Body) AddCircle(radius float64, material Material) *Collider {
	c := NewCircleCollider(radius, material)
	_ = b.AttachCollider(c)
	return c
}

func (b *Body) AddBox(width, height float64, material Material) *Collider {
	c := NewBoxCollider(width, height, material)
	_ = b.AttachCollider(c)
	return c
}

func (b *Body) Colliders() []*Collider { return b.colliders }

// Collider returns the i-th attached collider or nil.
func (b *Body) Collider(i int) *Collider {
	if i < 0 || i >= len(b.colliders) {
		return nil
	}
	return b.colliders[i]
}

func (b *Body) updateInertia() {
	if b.bodyType != BodyDynamic {
		b.invInertia = 0
		return
	}

	inertia := 0.0
	for _, c := range b.colliders {
		inertia += c.shape.Inertia(b.mass)
	}

	if inertia > 0 {
		b.inertia = inertia
		b.invInertia = 1 / inertia
	} else {
		b.inertia = 1
		b.invInertia = 1
	}
}

// Integrate advances a dynamic body by dt with semi-implicit Euler: velocity first,
// then position from the new velocity. Accumulated force and torque are cleared.
func (b *Body) Integrate(dt float64, gravity mgl64.Vec2) {
	if b.bodyType != BodyDynamic {
		return
	}

	b.previousPosition = b.position
	b.previousRotation = b.rotation

	force := b.force.Add(gravity.Mul(b.gravityScale * b.mass))

	b.velocity = b.velocity.Add(force.Mul(b.invMass * dt))
	b.velocity = b.velocity.Mul(1 / (1 + dt*b.linearDamping))

	if !b.fixedRotation {
		b.angularVelocity += b.torque * b.invInertia * dt
		b.angularVelocity *= 1 / (1 + dt*b.angularDamping)
	}

	b.position = b.position.Add(b.velocity.Mul(dt))
	if !b.fixedRotation {
		b.rotation += b.angularVelocity * dt
	}

	b.force = mgl64.Vec2{}
	b.torque = 0
}

func (b *Body) InterpolatedPosition(alpha float64) mgl64.Vec2 {
	return b.previousPosition.Mul(1 - alpha).Add(b.position.Mul(alpha))
}

func (b *Body) InterpolatedRotation(alpha float64) float64 {
	return b.previousRotation*(1-alpha) + b.rotation*alpha
}

// TranslatePosition moves the body without touching its velocity.
func (b *Body) TranslatePosition(delta mgl64.Vec2) {
	b.position = b.position.Add(delta)
}

func (b *Body) String() string {
	return fmt.Sprintf("%s(%s)", b.handle, b.bodyType)
}
