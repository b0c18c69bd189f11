package gekko2d

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Material describes how a collider surface behaves on contact.
type Material struct {
	Friction    float64 `json:"friction" yaml:"friction"`
	Restitution float64 `json:"restitution" yaml:"restitution"`
	Density     float64 `json:"density" yaml:"density"`
}

func NewMaterial(friction, restitution, density float64) Material {
	return Material{Friction: friction, Restitution: restitution, Density: density}
}

func DefaultMaterial() Material     { return Material{Friction: 0.3, Restitution: 0.0, Density: 1.0} }
func BouncyMaterial() Material      { return Material{Friction: 0.3, Restitution: 0.8, Density: 1.0} }
func SuperBouncyMaterial() Material { return Material{Friction: 0.2, Restitution: 0.95, Density: 0.5} }
func IceMaterial() Material         { return Material{Friction: 0.03, Restitution: 0.1, Density: 0.9} }
func RubberMaterial() Material      { return Material{Friction: 0.8, Restitution: 0.7, Density: 1.2} }
func WoodMaterial() Material        { return Material{Friction: 0.4, Restitution: 0.3, Density: 0.6} }
func MetalMaterial() Material       { return Material{Friction: 0.2, Restitution: 0.4, Density: 7.8} }
func StoneMaterial() Material       { return Material{Friction: 0.6, Restitution: 0.1, Density: 2.5} }

var materialPresets = map[string]func() Material{
	"default":     DefaultMaterial,
	"bouncy":      BouncyMaterial,
	"superbouncy": SuperBouncyMaterial,
	"ice":         IceMaterial,
	"rubber":      RubberMaterial,
	"wood":        WoodMaterial,
	"metal":       MetalMaterial,
	"stone":       StoneMaterial,
}

// MaterialByName looks up a preset. Names are case-insensitive.
func MaterialByName(name string) (Material, error) {
	fn, ok := materialPresets[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Material{}, fmt.Errorf("material %q: %w", name, ErrUnknownMaterial)
	}
	return fn(), nil
}

// MaterialNames returns the preset names in sorted order.
func MaterialNames() []string {
	names := make([]string, 0, len(materialPresets))
	for name := range materialPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate reports values outside the usable range. Friction above 1 is allowed.
func (m Material) Validate() error {
	switch {
	case math.IsNaN(m.Friction) || m.Friction < 0:
		return fmt.Errorf("friction %v must be >= 0", m.Friction)
	case math.IsNaN(m.Restitution) || m.Restitution < 0 || m.Restitution > 1:
		return fmt.Errorf("restitution %v must be in [0,1]", m.Restitution)
	case math.IsNaN(m.Density) || m.Density <= 0:
		return fmt.Errorf("density %v must be > 0", m.Density)
	}
	return nil
}

// CombineMaterials returns the friction and restitution used for a touching pair.
// Both take the minimum so the less grippy and less bouncy surface wins.
func CombineMaterials(a, b Material) (friction, restitution float64) {
	return math.Min(a.Friction, b.Friction), math.Min(a.Restitution, b.Restitution)
}
