package gekko2d

import (
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

// warmStartNormalTolerance is the minimum dot product between the cached and the
// current normal for a cached impulse to be reused.
const warmStartNormalTolerance = 0.95

type cachedContact struct {
	normal        mgl64.Vec2
	normalImpulse float64
	event         CollisionEvent
}

// contactCache remembers the contacts of the previous step. It carries accumulated
// impulses into the next step and tells new contacts from persisting ones.
type contactCache struct {
	previous map[ContactKey]cachedContact
	current  map[ContactKey]cachedContact
}

func newContactCache() *contactCache {
	return &contactCache{
		previous: make(map[ContactKey]cachedContact),
		current:  make(map[ContactKey]cachedContact),
	}
}

// warmImpulse returns the impulse to seed a manifold with, or zero when the contact
// is new or its normal flipped since the last step.
func (c *contactCache) warmImpulse(key ContactKey, normal mgl64.Vec2) float64 {
	prev, ok := c.previous[key]
	if !ok || prev.normal.Dot(normal) < warmStartNormalTolerance {
		return 0
	}
	return prev.normalImpulse
}

func (c *contactCache) touching(key ContactKey) bool {
	_, ok := c.previous[key]
	return ok
}

func (c *contactCache) store(key ContactKey, m *Manifold, event CollisionEvent) {
	c.current[key] = cachedContact{
		normal:        m.Normal,
		normalImpulse: m.AccumulatedNormalImpulse,
		event:         event,
	}
}

// swap ends a step: contacts seen in the previous step but not in this one are
// returned in key order, then the current set becomes the previous one.
func (c *contactCache) swap() []CollisionEvent {
	var ended []ContactKey
	for key := range c.previous {
		if _, ok := c.current[key]; !ok {
			ended = append(ended, key)
		}
	}
	sortContactKeys(ended)

	exits := make([]CollisionEvent, 0, len(ended))
	for _, key := range ended {
		exits = append(exits, c.previous[key].event)
	}

	c.previous, c.current = c.current, c.previous
	clear(c.current)
	return exits
}

// forget drops every contact that involves the body.
func (c *contactCache) forget(h BodyHandle) {
	for key := range c.previous {
		if key.A.Body == h || key.B.Body == h {
			delete(c.previous, key)
		}
	}
	for key := range c.current {
		if key.A.Body == h || key.B.Body == h {
			delete(c.current, key)
		}
	}
}

func (c *contactCache) len() int { return len(c.previous) }

func sortContactKeys(keys []ContactKey) {
	sort.Slice(keys, func(i, j int) bool {
		return lessColliderRef(keys[i].A, keys[j].A) ||
			(keys[i].A == keys[j].A && lessColliderRef(keys[i].B, keys[j].B))
	})
}

func lessColliderRef(a, b ColliderRef) bool {
	if a.Body.Index != b.Body.Index {
		return a.Body.Index < b.Body.Index
	}
	if a.Body.Generation != b.Body.Generation {
		return a.Body.Generation < b.Body.Generation
	}
	return a.Index < b.Index
}
