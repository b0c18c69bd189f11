package gekko2d

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// coincidentEpsilon is the center distance below which two circles are treated as
// sitting on top of each other.
const coincidentEpsilon = 1e-9

// Detect runs the narrow-phase test for a collider pair. It returns false when the
// colliders do not overlap or either one is not attached to a body.
func Detect(a, b *Collider) (Manifold, bool) {
	if a == nil || b == nil || a.body == nil || b.body == nil {
		return Manifold{}, false
	}

	var (
		m  Manifold
		ok bool
	)
	switch sa := a.shape.(type) {
	case Circle:
		switch sb := b.shape.(type) {
		case Circle:
			m, ok = circleCircle(a, sa, b, sb)
		case Box:
			m, ok = circleBox(a, sa, b, sb)
		}
	case Box:
		switch sb := b.shape.(type) {
		case Circle:
			m, ok = circleBox(b, sb, a, sa)
			if ok {
				m.swap()
			}
		case Box:
			m, ok = boxBox(a, sa, b, sb)
		}
	}
	if !ok {
		return Manifold{}, false
	}

	m.Friction, m.Restitution = CombineMaterials(m.ColliderA.material, m.ColliderB.material)
	return m, true
}

func newManifold(a, b *Collider) Manifold {
	return Manifold{BodyA: a.body, BodyB: b.body, ColliderA: a, ColliderB: b}
}

func circleCircle(a *Collider, ca Circle, b *Collider, cb Circle) (Manifold, bool) {
	diff := b.WorldPosition().Sub(a.WorldPosition())
	radii := ca.Radius + cb.Radius

	distSq := diff.LenSqr()
	if distSq >= radii*radii {
		return Manifold{}, false
	}

	dist := diff.Len()
	m := newManifold(a, b)
	m.Penetration = radii - dist
	if dist > coincidentEpsilon {
		m.Normal = unit(diff, dist)
	} else {
		m.Normal = mgl64.Vec2{0, 1}
	}
	return m, true
}

func boxBox(a *Collider, _ Box, b *Collider, _ Box) (Manifold, bool) {
	ba, bb := a.AABB(), b.AABB()
	if !ba.Overlaps(bb) {
		return Manifold{}, false
	}

	overlapX := math.Min(ba.Max.X()-bb.Min.X(), bb.Max.X()-ba.Min.X())
	overlapY := math.Min(ba.Max.Y()-bb.Min.Y(), bb.Max.Y()-ba.Min.Y())
	pa, pb := a.WorldPosition(), b.WorldPosition()

	m := newManifold(a, b)
	if overlapX < overlapY {
		m.Penetration = overlapX
		if pa.X() < pb.X() {
			m.Normal = mgl64.Vec2{1, 0}
		} else {
			m.Normal = mgl64.Vec2{-1, 0}
		}
	} else {
		m.Penetration = overlapY
		if pa.Y() < pb.Y() {
			m.Normal = mgl64.Vec2{0, 1}
		} else {
			m.Normal = mgl64.Vec2{0, -1}
		}
	}
	return m, true
}

// circleBox treats the circle as A. The normal points from the circle toward the box.
func circleBox(circle *Collider, c Circle, box *Collider, _ Box) (Manifold, bool) {
	center := circle.WorldPosition()
	bounds := box.AABB()
	closest := bounds.ClosestPoint(center)

	diff := center.Sub(closest)
	distSq := diff.LenSqr()
	if distSq >= c.Radius*c.Radius {
		return Manifold{}, false
	}

	dist := diff.Len()
	m := newManifold(circle, box)
	m.Penetration = c.Radius - dist

	if dist > 0 {
		m.Normal = unit(diff, dist).Mul(-1)
		return m, true
	}

	// Center is inside the box: push out along the dominant offset axis.
	toCenter := center.Sub(box.WorldPosition())
	if math.Abs(toCenter.X()) > math.Abs(toCenter.Y()) {
		m.Normal = mgl64.Vec2{-outward(toCenter.X()), 0}
	} else {
		m.Normal = mgl64.Vec2{0, -outward(toCenter.Y())}
	}
	return m, true
}

// outward is the side of the box center a coordinate offset lies on; zero counts as negative.
func outward(v float64) float64 {
	if v > 0 {
		return 1
	}
	return -1
}

// unit divides v by its length component-wise so axis-aligned offsets give
// exactly unit normals.
func unit(v mgl64.Vec2, length float64) mgl64.Vec2 {
	return mgl64.Vec2{v.X() / length, v.Y() / length}
}
