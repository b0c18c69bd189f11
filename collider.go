package gekko2d

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Collider attaches a Shape to a Body. Once attached it belongs to that body until
// the body is destroyed.
type Collider struct {
	shape    Shape
	offset   mgl64.Vec2
	material Material
	trigger  bool

	body  *Body
	index int
}

func NewCollider(shape Shape, material Material) *Collider {
	return &Collider{shape: shape, material: material, index: -1}
}

func NewCircleCollider(radius float64, material Material) *Collider {
	return NewCollider(Circle{Radius: radius}, material)
}

func NewBoxCollider(width, height float64, material Material) *Collider {
	return NewCollider(BoxSize(width, height), material)
}

func (c *Collider) Shape() Shape { return c.shape }

func (c *Collider) Offset() mgl64.Vec2 { return c.offset }

func (c *Collider) SetOffset(offset mgl64.Vec2) *Collider {
	c.offset = offset
	return c
}

func (c *Collider) Material() Material { return c.material }

func (c *Collider) SetMaterial(m Material) *Collider {
	c.material = m
	return c
}

// IsTrigger reports whether contacts on this collider are reported without a response.
func (c *Collider) IsTrigger() bool { return c.trigger }

func (c *Collider) SetTrigger(trigger bool) *Collider {
	c.trigger = trigger
	return c
}

// Body returns the owning body, or nil while detached.
func (c *Collider) Body() *Body { return c.body }

// Index is the position of the collider inside its body, -1 while detached.
func (c *Collider) Index() int { return c.index }

func (c *Collider) WorldPosition() mgl64.Vec2 {
	if c.body == nil {
		return c.offset
	}
	return c.body.position.Add(c.offset)
}

// AABB returns world space extents. For a Box these are its exact min/max.
func (c *Collider) AABB() AABB {
	return c.shape.Bounds(c.WorldPosition())
}

func (c *Collider) String() string {
	switch s := c.shape.(type) {
	case Circle:
		return fmt.Sprintf("circle(r=%.3g)#%d", s.Radius, c.index)
	case Box:
		return fmt.Sprintf("box(%.3gx%.3g)#%d", s.Width(), s.Height(), c.index)
	}
	return fmt.Sprintf("collider#%d", c.index)
}
