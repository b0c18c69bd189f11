package gekko2d

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Shape is the geometry of a collider. The set of shapes is closed: Circle and Box.
type Shape interface {
	isShape()
	Area() float64
	// Inertia returns the moment of inertia of the shape for the given body mass.
	Inertia(mass float64) float64
	Bounds(center mgl64.Vec2) AABB
}

type Circle struct {
	Radius float64
}

// Box is axis-aligned; rotation of the owning body does not rotate it.
type Box struct {
	HalfWidth  float64
	HalfHeight float64
}

func (Circle) isShape() {}
func (Box) isShape()    {}

func (c Circle) Area() float64 { return math.Pi * c.Radius * c.Radius }

func (c Circle) Inertia(mass float64) float64 { return 0.5 * mass * c.Radius * c.Radius }

func (c Circle) Bounds(center mgl64.Vec2) AABB {
	r := mgl64.Vec2{c.Radius, c.Radius}
	return AABB{Min: center.Sub(r), Max: center.Add(r)}
}

// BoxSize builds a Box from full width and height.
func BoxSize(width, height float64) Box {
	return Box{HalfWidth: width * 0.5, HalfHeight: height * 0.5}
}

func (b Box) Width() float64  { return b.HalfWidth * 2 }
func (b Box) Height() float64 { return b.HalfHeight * 2 }

func (b Box) Size() mgl64.Vec2 { return mgl64.Vec2{b.Width(), b.Height()} }

func (b Box) Area() float64 { return b.Width() * b.Height() }

func (b Box) Inertia(mass float64) float64 {
	w, h := b.Width(), b.Height()
	return mass * (w*w + h*h) / 12.0
}

func (b Box) Bounds(center mgl64.Vec2) AABB {
	half := mgl64.Vec2{b.HalfWidth, b.HalfHeight}
	return AABB{Min: center.Sub(half), Max: center.Add(half)}
}

type AABB struct {
	Min mgl64.Vec2
	Max mgl64.Vec2
}

// Overlaps uses strict inequalities: boxes that only touch do not overlap.
func (a AABB) Overlaps(o AABB) bool {
	return a.Min.X() < o.Max.X() && a.Max.X() > o.Min.X() &&
		a.Min.Y() < o.Max.Y() && a.Max.Y() > o.Min.Y()
}

func (a AABB) Contains(p mgl64.Vec2) bool {
	return p.X() >= a.Min.X() && p.X() <= a.Max.X() &&
		p.Y() >= a.Min.Y() && p.Y() <= a.Max.Y()
}

func (a AABB) Center() mgl64.Vec2 {
	return a.Min.Add(a.Max).Mul(0.5)
}

func (a AABB) Size() mgl64.Vec2 {
	return a.Max.Sub(a.Min)
}

// Union grows a to also cover o.
func (a AABB) Union(o AABB) AABB {
	return AABB{
		Min: mgl64.Vec2{math.Min(a.Min.X(), o.Min.X()), math.Min(a.Min.Y(), o.Min.Y())},
		Max: mgl64.Vec2{math.Max(a.Max.X(), o.Max.X()), math.Max(a.Max.Y(), o.Max.Y())},
	}
}

// ClosestPoint clamps p into the box.
func (a AABB) ClosestPoint(p mgl64.Vec2) mgl64.Vec2 {
	return mgl64.Vec2{
		mgl64.Clamp(p.X(), a.Min.X(), a.Max.X()),
		mgl64.Clamp(p.Y(), a.Min.Y(), a.Max.Y()),
	}
}
