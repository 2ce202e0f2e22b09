package game_test

import (
	"testing"

	"github.com/plus3/sparsecs/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadArsenal(t *testing.T) {
	weapons, err := game.LoadArsenal("testdata/weapons.yaml")
	require.NoError(t, err)
	require.Len(t, weapons, 2)

	assert.Equal(t, "pistol", weapons[0].Name)
	assert.Equal(t, game.Hostile, weapons[0].Group)
	assert.Equal(t, float32(2), weapons[0].FireRate)

	shotgun := weapons[1]
	assert.Equal(t, 5, shotgun.BulletsShot)
	assert.Equal(t, float32(30), shotgun.BulletSpread)
	assert.Equal(t, 1, shotgun.Pierce)
	assert.Equal(t, game.Both, shotgun.Group)
}

func TestLoadArsenalMissingFile(t *testing.T) {
	_, err := game.LoadArsenal("testdata/missing.yaml")
	assert.Error(t, err)
}

func TestParseArsenal(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		_, err := game.ParseArsenal([]byte("weapons: []\n"))
		assert.ErrorIs(t, err, game.ErrNoWeapons)
	})

	t.Run("defaults", func(t *testing.T) {
		weapons, err := game.ParseArsenal([]byte("weapons:\n  - name: pea\n    fire_rate: 1\n"))
		require.NoError(t, err)
		assert.Equal(t, 1, weapons[0].BulletsShot)
		assert.Equal(t, 1, weapons[0].Damage)
		assert.Equal(t, game.Friendly, weapons[0].Group)
	})

	t.Run("bad group", func(t *testing.T) {
		_, err := game.ParseArsenal([]byte("weapons:\n  - name: pea\n    fire_rate: 1\n    group: neutral\n"))
		assert.ErrorContains(t, err, "neutral")
	})

	t.Run("no fire rate", func(t *testing.T) {
		_, err := game.ParseArsenal([]byte("weapons:\n  - name: pea\n"))
		assert.ErrorContains(t, err, "fire_rate")
	})
}

func TestParseDamageGroup(t *testing.T) {
	for name, want := range map[string]game.DamageGroup{
		"friendly": game.Friendly,
		"player":   game.Friendly,
		"Enemy":    game.Hostile,
		" both ":   game.Both,
	} {
		got, err := game.ParseDamageGroup(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}
}
