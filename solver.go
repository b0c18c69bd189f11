package gekko2d

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// SolverConfig holds the tuning constants of the impulse solver.
type SolverConfig struct {
	VelocityIterations int     `yaml:"velocity_iterations"`
	PositionIterations int     `yaml:"position_iterations"`
	Slop               float64 `yaml:"slop"`
	Baumgarte          float64 `yaml:"baumgarte"`
	MaxCorrection      float64 `yaml:"max_correction"`
	VelocityEpsilon    float64 `yaml:"velocity_epsilon"`
	WarmStartFactor    float64 `yaml:"warm_start_factor"`
}

func DefaultSolverConfig() SolverConfig {
	return SolverConfig{
		VelocityIterations: 6,
		PositionIterations: 2,
		Slop:               0.5,
		Baumgarte:          0.2,
		MaxCorrection:      5.0,
		VelocityEpsilon:    1e-4,
		WarmStartFactor:    0.8,
	}
}

// Resolution summarizes what Resolve did to a manifold.
type Resolution struct {
	Skipped            bool
	VelocityIterations int
	NormalImpulse      float64
	FrictionImpulse    float64
	Correction         float64
}

// ImpulseSolver resolves manifolds with sequential impulses followed by Baumgarte
// position correction. It holds no per-contact state; warm-start data lives on the
// manifold.
type ImpulseSolver struct {
	cfg SolverConfig

	// onVelocityIteration observes the accumulated normal impulse after each iteration.
	onVelocityIteration func(iteration int, accumulated float64)
}

func NewImpulseSolver(cfg SolverConfig) *ImpulseSolver {
	return &ImpulseSolver{cfg: cfg}
}

func (s *ImpulseSolver) Config() SolverConfig { return s.cfg }

func movable(m *Manifold) (invA, invB float64, ok bool) {
	if m.BodyA == nil || m.BodyB == nil {
		return 0, 0, false
	}
	invA, invB = m.BodyA.invMass, m.BodyB.invMass
	return invA, invB, invA+invB > 0
}

func applyPairImpulse(a, b *Body, impulse mgl64.Vec2) {
	a.ApplyImpulse(impulse.Mul(-1))
	b.ApplyImpulse(impulse)
}

// WarmStart applies a fraction of the normal impulse carried over from the previous
// resolution of the same contact and leaves that fraction as the starting accumulator.
func (s *ImpulseSolver) WarmStart(m *Manifold) {
	if _, _, ok := movable(m); !ok {
		return
	}
	if m.AccumulatedNormalImpulse <= 0 {
		m.AccumulatedNormalImpulse = 0
		return
	}

	impulse := m.AccumulatedNormalImpulse * s.cfg.WarmStartFactor
	applyPairImpulse(m.BodyA, m.BodyB, m.Normal.Mul(impulse))
	m.AccumulatedNormalImpulse = impulse
}

// Resolve runs the velocity phase, one friction pass and the position phase.
// Pairs of immovable bodies are left untouched.
func (s *ImpulseSolver) Resolve(m *Manifold) Resolution {
	invA, invB, ok := movable(m)
	if !ok {
		return Resolution{Skipped: true}
	}
	invSum := invA + invB

	var res Resolution
	bodyA, bodyB := m.BodyA, m.BodyB

	accumulated := math.Max(m.AccumulatedNormalImpulse, 0)
	for i := 0; i < s.cfg.VelocityIterations; i++ {
		velAlongNormal := bodyB.velocity.Sub(bodyA.velocity).Dot(m.Normal)
		if velAlongNormal >= -s.cfg.VelocityEpsilon {
			break
		}

		restitution := 0.0
		if i == 0 {
			restitution = m.Restitution
		}
		jn := -(1 + restitution) * velAlongNormal / invSum

		next := math.Max(accumulated+jn, 0)
		delta := next - accumulated
		accumulated = next
		applyPairImpulse(bodyA, bodyB, m.Normal.Mul(delta))

		res.VelocityIterations++
		if s.onVelocityIteration != nil {
			s.onVelocityIteration(i, accumulated)
		}
	}
	m.AccumulatedNormalImpulse = accumulated
	res.NormalImpulse = accumulated

	res.FrictionImpulse = s.applyFriction(m, invSum)
	res.Correction = s.correctPosition(m, invA, invB)
	return res
}

func (s *ImpulseSolver) applyFriction(m *Manifold, invSum float64) float64 {
	bodyA, bodyB := m.BodyA, m.BodyB

	relVel := bodyB.velocity.Sub(bodyA.velocity)
	tangent := relVel.Sub(m.Normal.Mul(relVel.Dot(m.Normal)))
	tangentSpeed := tangent.Len()
	if tangentSpeed < s.cfg.VelocityEpsilon {
		m.AccumulatedTangentImpulse = 0
		return 0
	}
	tangent = tangent.Mul(1 / tangentSpeed)

	limit := m.Friction * math.Abs(m.AccumulatedNormalImpulse)
	jt := mgl64.Clamp(-relVel.Dot(tangent)/invSum, -limit, limit)
	if jt != 0 {
		applyPairImpulse(bodyA, bodyB, tangent.Mul(jt))
	}
	m.AccumulatedTangentImpulse = jt
	return jt
}

// correctPosition pushes the bodies apart along the normal without touching
// velocities. The manifold's reported penetration is left as detected.
func (s *ImpulseSolver) correctPosition(m *Manifold, invA, invB float64) float64 {
	invSum := invA + invB
	penetration := m.Penetration
	total := 0.0

	for i := 0; i < s.cfg.PositionIterations; i++ {
		if penetration <= s.cfg.Slop {
			break
		}
		correction := (penetration - s.cfg.Slop) * s.cfg.Baumgarte
		if correction > s.cfg.MaxCorrection {
			correction = s.cfg.MaxCorrection
		}

		step := m.Normal.Mul(correction / invSum)
		if m.BodyA.IsDynamic() {
			m.BodyA.TranslatePosition(step.Mul(-invA))
		}
		if m.BodyB.IsDynamic() {
			m.BodyB.TranslatePosition(step.Mul(invB))
		}

		penetration -= correction
		total += correction
	}
	return total
}
