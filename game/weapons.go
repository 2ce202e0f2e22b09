package game

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrNoWeapons is returned for an arsenal file without weapons.
var ErrNoWeapons = errors.New("game: arsenal has no weapons")

type arsenalFile struct {
	Weapons []Weapon `yaml:"weapons"`
}

// LoadArsenal reads weapon definitions from a YAML file.
func LoadArsenal(path string) ([]Weapon, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read arsenal: %w", err)
	}
	weapons, err := ParseArsenal(raw)
	if err != nil {
		return nil, fmt.Errorf("parse arsenal %s: %w", path, err)
	}
	return weapons, nil
}

// ParseArsenal decodes weapon definitions and fills defaults for fields
// left at zero.
func ParseArsenal(raw []byte) ([]Weapon, error) {
	var file arsenalFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, err
	}
	if len(file.Weapons) == 0 {
		return nil, ErrNoWeapons
	}
	for i := range file.Weapons {
		w := &file.Weapons[i]
		if w.FireRate <= 0 {
			return nil, fmt.Errorf("weapon %d (%s): fire_rate must be positive", i, w.Name)
		}
		if w.BulletsShot <= 0 {
			w.BulletsShot = 1
		}
		if w.Damage <= 0 {
			w.Damage = 1
		}
	}
	return file.Weapons, nil
}

// DefaultArsenal is the loadout used when no weapon file is configured.
func DefaultArsenal() []Weapon {
	return []Weapon{
		{
			Name:           "pistol",
			FireRate:       2,
			BulletSpeed:    200,
			BulletsShot:    1,
			BulletRadius:   10,
			BulletLifetime: 100,
			Damage:         1,
			Group:          Hostile,
		},
		{
			Name:           "spray",
			FireRate:       10,
			BulletSpeed:    100,
			BulletsShot:    1,
			BulletRadius:   20,
			BulletLifetime: 1,
			Damage:         1,
			Group:          Hostile,
		},
	}
}

// WithGroup returns a copy of weapons that damage group g.
func WithGroup(weapons []Weapon, g DamageGroup) []Weapon {
	out := make([]Weapon, len(weapons))
	copy(out, weapons)
	for i := range out {
		out[i].Group = g
	}
	return out
}
