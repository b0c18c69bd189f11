package gekko2d

import "errors"

var (
	ErrWorldLocked      = errors.New("world is locked during a step")
	ErrStaleHandle      = errors.New("body handle does not refer to a live body")
	ErrColliderAttached = errors.New("collider is already attached to a body")
	ErrInvalidConfig    = errors.New("invalid physics config")
	ErrUnknownMaterial  = errors.New("unknown material preset")
	ErrUnknownShape     = errors.New("unknown collider shape")
)
