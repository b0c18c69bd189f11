package gekko2d

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCombineMaterials_TakesMinimum(t *testing.T) {
	friction, restitution := CombineMaterials(RubberMaterial(), IceMaterial())
	assert.Equal(t, 0.03, friction)
	assert.Equal(t, 0.1, restitution)

	friction, restitution = CombineMaterials(BouncyMaterial(), BouncyMaterial())
	assert.Equal(t, 0.3, friction)
	assert.Equal(t, 0.8, restitution)
}

func TestMaterialByName(t *testing.T) {
	m, err := MaterialByName("  Bouncy ")
	require.NoError(t, err)
	assert.Equal(t, BouncyMaterial(), m)

	_, err = MaterialByName("jelly")
	assert.True(t, errors.Is(err, ErrUnknownMaterial))
}

func TestMaterialNames_SortedAndResolvable(t *testing.T) {
	names := MaterialNames()
	require.Len(t, names, len(materialPresets))
	assert.IsIncreasing(t, names)

	for _, name := range names {
		m, err := MaterialByName(name)
		require.NoError(t, err, name)
		assert.NoError(t, m.Validate(), name)
	}
}

func TestMaterial_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mat     Material
		wantErr bool
	}{
		{"default", DefaultMaterial(), false},
		{"grippy friction above one", NewMaterial(1.4, 0, 1), false},
		{"negative friction", NewMaterial(-0.1, 0, 1), true},
		{"restitution above one", NewMaterial(0.3, 1.2, 1), true},
		{"zero density", NewMaterial(0.3, 0.5, 0), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.mat.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
