package gekko2d

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

// BodySnapshot is a copy of a body's public state at the time an event fired.
type BodySnapshot struct {
	ID              uuid.UUID
	Handle          BodyHandle
	Type            BodyType
	Position        mgl64.Vec2
	Rotation        float64
	Velocity        mgl64.Vec2
	AngularVelocity float64
	Mass            float64
	UserData        any
}

type ColliderSnapshot struct {
	Index         int
	Shape         Shape
	Offset        mgl64.Vec2
	Material      Material
	WorldPosition mgl64.Vec2
	IsTrigger     bool
}

// CollisionEvent describes one manifold. Handlers get copies, so mutating an event
// never touches the world.
type CollisionEvent struct {
	BodyA     BodySnapshot
	BodyB     BodySnapshot
	ColliderA ColliderSnapshot
	ColliderB ColliderSnapshot

	Normal        mgl64.Vec2
	Penetration   float64
	NormalImpulse float64
	Trigger       bool

	// Step is the World step counter the event belongs to.
	Step uint64
}

func (e CollisionEvent) Key() ContactKey {
	return ContactKey{
		A: ColliderRef{Body: e.BodyA.Handle, Index: e.ColliderA.Index},
		B: ColliderRef{Body: e.BodyB.Handle, Index: e.ColliderB.Index},
	}
}

// CollisionHandler receives collision events.
type CollisionHandler func(CollisionEvent)

// copySnapshot fills a snapshot from the live object it mirrors.
var copySnapshot = func(to, from any) error {
	return copier.CopyWithOption(to, from, copier.Option{CaseSensitive: true})
}

func snapshotBody(b *Body) (BodySnapshot, error) {
	var snap BodySnapshot
	if b == nil {
		return snap, nil
	}
	if err := copySnapshot(&snap, b); err != nil {
		return snap, fmt.Errorf("snapshot %s: %w", b, err)
	}
	return snap, nil
}

func snapshotCollider(c *Collider) (ColliderSnapshot, error) {
	var snap ColliderSnapshot
	if c == nil {
		return snap, nil
	}
	if err := copySnapshot(&snap, c); err != nil {
		return snap, fmt.Errorf("snapshot collider %d: %w", c.Index(), err)
	}
	return snap, nil
}

// newCollisionEvent snapshots both sides of the manifold. On error the event is
// still returned with whatever could be copied.
func newCollisionEvent(m *Manifold, step uint64) (CollisionEvent, error) {
	bodyA, errBodyA := snapshotBody(m.BodyA)
	bodyB, errBodyB := snapshotBody(m.BodyB)
	colliderA, errColliderA := snapshotCollider(m.ColliderA)
	colliderB, errColliderB := snapshotCollider(m.ColliderB)

	event := CollisionEvent{
		BodyA:         bodyA,
		BodyB:         bodyB,
		ColliderA:     colliderA,
		ColliderB:     colliderB,
		Normal:        m.Normal,
		Penetration:   m.Penetration,
		NormalImpulse: m.AccumulatedNormalImpulse,
		Trigger:       m.IsTrigger(),
		Step:          step,
	}
	return event, errors.Join(errBodyA, errBodyB, errColliderA, errColliderB)
}
