package gekko2d

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// ColliderRef names a collider by its body handle and index inside the body.
type ColliderRef struct {
	Body  BodyHandle
	Index int
}

// ContactKey identifies the same pair of colliders across steps.
type ContactKey struct {
	A ColliderRef
	B ColliderRef
}

func (k ContactKey) String() string {
	return fmt.Sprintf("%s/%d-%s/%d", k.A.Body, k.A.Index, k.B.Body, k.B.Index)
}

// Manifold is the contact data for one colliding pair. Normal points from A to B.
type Manifold struct {
	BodyA     *Body
	BodyB     *Body
	ColliderA *Collider
	ColliderB *Collider

	Normal      mgl64.Vec2
	Penetration float64
	Restitution float64
	Friction    float64

	// Impulse totals of the last resolution of this contact.
	AccumulatedNormalImpulse  float64
	AccumulatedTangentImpulse float64
}

// Key is only meaningful while both colliders are attached.
func (m *Manifold) Key() ContactKey {
	return ContactKey{
		A: ColliderRef{Body: m.BodyA.handle, Index: m.ColliderA.index},
		B: ColliderRef{Body: m.BodyB.handle, Index: m.ColliderB.index},
	}
}

// IsTrigger reports whether either side is a trigger collider.
func (m *Manifold) IsTrigger() bool {
	return (m.ColliderA != nil && m.ColliderA.trigger) || (m.ColliderB != nil && m.ColliderB.trigger)
}

func (m *Manifold) swap() {
	m.BodyA, m.BodyB = m.BodyB, m.BodyA
	m.ColliderA, m.ColliderB = m.ColliderB, m.ColliderA
	m.Normal = m.Normal.Mul(-1)
}
