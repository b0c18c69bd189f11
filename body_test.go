package gekko2d

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBody_IntegrateSemiImplicitEuler(t *testing.T) {
	b := newBody()
	b.SetMass(2)
	b.SetVelocity(mgl64.Vec2{1, 0})

	dt := 0.5
	b.Integrate(dt, mgl64.Vec2{0, -10})

	// Velocity is updated first, position uses the new velocity.
	assert.InDelta(t, 1.0, b.Velocity().X(), 1e-12)
	assert.InDelta(t, -5.0, b.Velocity().Y(), 1e-12)
	assert.InDelta(t, 0.5, b.Position().X(), 1e-12)
	assert.InDelta(t, -2.5, b.Position().Y(), 1e-12)
	assert.Equal(t, mgl64.Vec2{}, b.Force())
}

func TestBody_IntegrateAppliesForceAndDamping(t *testing.T) {
	b := newBody()
	b.SetLinearDamping(1)
	b.ApplyForce(mgl64.Vec2{4, 0})

	b.Integrate(1, mgl64.Vec2{})

	// v = 4, then scaled by 1/(1+1).
	assert.InDelta(t, 2.0, b.Velocity().X(), 1e-12)
	assert.InDelta(t, 2.0, b.Position().X(), 1e-12)
	assert.Equal(t, mgl64.Vec2{}, b.Force(), "force accumulator must be cleared")
}

func TestBody_StaticAndKinematicIgnoreForces(t *testing.T) {
	for _, typ := range []BodyType{BodyStatic, BodyKinematic} {
		t.Run(typ.String(), func(t *testing.T) {
			b := newBody()
			b.SetType(typ)
			b.SetPosition(mgl64.Vec2{3, 4})

			b.ApplyForce(mgl64.Vec2{100, 0})
			b.ApplyImpulse(mgl64.Vec2{100, 0})
			b.ApplyTorque(5)
			b.Integrate(1.0/60.0, mgl64.Vec2{0, -9.8})

			assert.Equal(t, mgl64.Vec2{3, 4}, b.Position())
			assert.Equal(t, 0.0, b.InvMass())
			assert.Equal(t, 0.0, b.InvInertia())
			assert.Equal(t, mgl64.Vec2{}, b.Force())
			assert.Equal(t, 0.0, b.Torque())
		})
	}
}

func TestBody_StaticHasNoVelocity(t *testing.T) {
	b := newBody()
	b.SetVelocity(mgl64.Vec2{5, 5})
	b.SetAngularVelocity(2)

	b.SetType(BodyStatic)
	assert.Equal(t, mgl64.Vec2{}, b.Velocity())
	assert.Equal(t, 0.0, b.AngularVelocity())

	b.SetVelocity(mgl64.Vec2{1, 1})
	assert.Equal(t, mgl64.Vec2{}, b.Velocity())
}

func TestBody_KinematicKeepsVelocityAndIsNotIntegrated(t *testing.T) {
	b := newBody()
	b.SetType(BodyKinematic)
	b.SetPosition(mgl64.Vec2{1, 2})
	b.SetVelocity(mgl64.Vec2{2, 0})
	b.ApplyImpulse(mgl64.Vec2{5, 5})

	b.Integrate(0.5, mgl64.Vec2{0, -10})
	assert.Equal(t, mgl64.Vec2{2, 0}, b.Velocity())
	assert.Equal(t, mgl64.Vec2{1, 2}, b.Position())
}

func TestBody_SetMassFallsBackToOne(t *testing.T) {
	for _, m := range []float64{0, -3, math.NaN(), math.Inf(1)} {
		b := newBody()
		b.SetMass(m)
		assert.Equal(t, 1.0, b.Mass())
		assert.Equal(t, 1.0, b.InvMass())
	}

	b := newBody()
	b.SetMass(4)
	assert.Equal(t, 0.25, b.InvMass())
}

func TestBody_TypeRoundTripRestoresInverseMass(t *testing.T) {
	b := newBody()
	b.SetMass(4)
	b.SetType(BodyStatic)
	require.Equal(t, 0.0, b.InvMass())

	b.SetType(BodyDynamic)
	assert.Equal(t, 0.25, b.InvMass())
	assert.Greater(t, b.InvInertia(), 0.0)
}

func TestBody_InertiaFromColliders(t *testing.T) {
	b := newBody()
	b.SetMass(2)
	b.AddCircle(3, DefaultMaterial())
	assert.InDelta(t, 0.5*2*9, b.Inertia(), 1e-12)

	b.AddBox(6, 12, DefaultMaterial())
	assert.InDelta(t, 9+2*(36.0+144.0)/12.0, b.Inertia(), 1e-12)
	assert.InDelta(t, 1/b.Inertia(), b.InvInertia(), 1e-12)
}

func TestBody_InertiaFallsBackWithoutColliders(t *testing.T) {
	b := newBody()
	b.SetMass(5)
	assert.Equal(t, 1.0, b.Inertia())
	assert.Equal(t, 1.0, b.InvInertia())
}

func TestBody_AttachColliderTwiceFails(t *testing.T) {
	a, b := newBody(), newBody()
	c := NewCircleCollider(1, DefaultMaterial())

	require.NoError(t, a.AttachCollider(c))
	err := b.AttachCollider(c)
	assert.True(t, errors.Is(err, ErrColliderAttached))
	assert.Same(t, a, c.Body())
	assert.Empty(t, b.Colliders())
}

func TestBody_ColliderIndexes(t *testing.T) {
	b := newBody()
	first := b.AddCircle(1, DefaultMaterial())
	second := b.AddBox(2, 2, DefaultMaterial())

	assert.Equal(t, 0, first.Index())
	assert.Equal(t, 1, second.Index())
	assert.Same(t, second, b.Collider(1))
	assert.Nil(t, b.Collider(2))
	assert.Nil(t, b.Collider(-1))
}

func TestBody_ComputeMassFromColliders(t *testing.T) {
	b := newBody()
	b.AddBox(2, 3, NewMaterial(0.3, 0, 2))
	b.ComputeMassFromColliders()
	assert.InDelta(t, 12.0, b.Mass(), 1e-12)
}

func TestBody_Interpolation(t *testing.T) {
	b := newBody()
	b.SetVelocity(mgl64.Vec2{10, 0})
	b.SetAngularVelocity(1)
	b.Integrate(1, mgl64.Vec2{})

	assert.Equal(t, mgl64.Vec2{0, 0}, b.InterpolatedPosition(0))
	assert.Equal(t, mgl64.Vec2{10, 0}, b.InterpolatedPosition(1))
	assert.InDelta(t, 2.5, b.InterpolatedPosition(0.25).X(), 1e-12)
	assert.InDelta(t, 0.5, b.InterpolatedRotation(0.5), 1e-12)
}

func TestBody_SetPositionResetsInterpolation(t *testing.T) {
	b := newBody()
	b.SetVelocity(mgl64.Vec2{10, 0})
	b.Integrate(1, mgl64.Vec2{})
	b.SetPosition(mgl64.Vec2{-5, 0})

	assert.Equal(t, mgl64.Vec2{-5, 0}, b.InterpolatedPosition(0.3))
}

func TestBody_FixedRotation(t *testing.T) {
	b := newBody()
	b.SetAngularVelocity(3)
	b.SetFixedRotation(true)
	b.ApplyTorque(10)
	b.Integrate(1, mgl64.Vec2{})

	assert.Equal(t, 0.0, b.AngularVelocity())
	assert.Equal(t, 0.0, b.Rotation())
}

func TestBodyType_Text(t *testing.T) {
	data, err := json.Marshal(struct{ T BodyType }{BodyKinematic})
	require.NoError(t, err)
	assert.JSONEq(t, `{"T":"kinematic"}`, string(data))

	var out struct{ T BodyType }
	require.NoError(t, json.Unmarshal([]byte(`{"T":"static"}`), &out))
	assert.Equal(t, BodyStatic, out.T)

	assert.Error(t, json.Unmarshal([]byte(`{"T":"floating"}`), &out))
	assert.Equal(t, BodyDynamic, BodyType(0))
}
