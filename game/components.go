package game

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/plus3/sparsecs/ecs"
	"gopkg.in/yaml.v3"
)

// DamageGroup selects who a bullet can hurt.
type DamageGroup int

const (
	Friendly DamageGroup = iota
	Hostile
	Both
)

func (g DamageGroup) String() string {
	switch g {
	case Friendly:
		return "friendly"
	case Hostile:
		return "enemy"
	case Both:
		return "both"
	default:
		return fmt.Sprintf("group(%d)", int(g))
	}
}

// Hits reports whether damage from g applies to a target in group target.
func (g DamageGroup) Hits(target DamageGroup) bool {
	return g == Both || g == target
}

// ParseDamageGroup parses the names used in weapon files.
func ParseDamageGroup(s string) (DamageGroup, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "friendly", "player":
		return Friendly, nil
	case "enemy", "hostile":
		return Hostile, nil
	case "both":
		return Both, nil
	}
	return 0, fmt.Errorf("unknown damage group %q", s)
}

// UnmarshalYAML decodes a damage group from its name.
func (g *DamageGroup) UnmarshalYAML(node *yaml.Node) error {
	var name string
	if err := node.Decode(&name); err != nil {
		return err
	}
	parsed, err := ParseDamageGroup(name)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*g = parsed
	return nil
}

// MarshalYAML encodes a damage group by name.
func (g DamageGroup) MarshalYAML() (any, error) {
	return g.String(), nil
}

type Position struct {
	X, Y float32
}

type Velocity struct {
	X, Y float32
}

// Friction slows velocity by Amount per second, as a fraction of speed.
type Friction struct {
	Amount float32
}

type Health struct {
	HP    int
	Group DamageGroup
}

type CircleCollider struct {
	Radius float32
}

type Drawable struct {
	Color color.RGBA
}

// PlayerMovement turns the input axis into velocity.
type PlayerMovement struct {
	Speed float32
}

// Weapon describes how bullets are fired. Cooldown counts down to the next
// shot.
type Weapon struct {
	Name           string      `yaml:"name"`
	FireRate       float32     `yaml:"fire_rate"` // shots per second
	BulletSpeed    float32     `yaml:"bullet_speed"`
	BulletSpread   float32     `yaml:"bullet_spread"` // degrees between outermost bullets
	BulletsShot    int         `yaml:"bullets_shot"`
	BulletRadius   float32     `yaml:"bullet_radius"`
	BulletLifetime float32     `yaml:"bullet_lifetime"` // seconds
	Damage         int         `yaml:"damage"`
	Pierce         int         `yaml:"pierce"`
	Group          DamageGroup `yaml:"group"`
	Cooldown       float32     `yaml:"-"`
}

type WeaponArsenal struct {
	Weapons  []Weapon
	Selected int
}

// Current returns the selected weapon, or nil for an empty arsenal.
func (a *WeaponArsenal) Current() *Weapon {
	if len(a.Weapons) == 0 {
		return nil
	}
	if a.Selected < 0 || a.Selected >= len(a.Weapons) {
		a.Selected = 0
	}
	return &a.Weapons[a.Selected]
}

// PlayerWeaponLogic marks an arsenal driven by player input.
type PlayerWeaponLogic struct{}

// EnemyShootingLogic makes an arsenal fire at Target whenever ready. Target
// is a reference so a recycled id is not mistaken for the original entity.
type EnemyShootingLogic struct {
	Target ecs.EntityRef
}

// EnemySteering moves an entity toward Target at Speed.
type EnemySteering struct {
	Target ecs.EntityRef
	Speed  float32
}

type Bullet struct {
	Damage int
	Pierce int
	Group  DamageGroup
	Hits   []ecs.Entity
}

// Lifetime destroys its entity once Remaining drops to zero.
type Lifetime struct {
	Remaining float32
}

// Register adds every gameplay component to types.
func Register(types *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Position](types)
	ecs.RegisterComponent[Velocity](types)
	ecs.RegisterComponent[Friction](types)
	ecs.RegisterComponent[Health](types)
	ecs.RegisterComponent[CircleCollider](types)
	ecs.RegisterComponent[Drawable](types)
	ecs.RegisterComponent[PlayerMovement](types)
	ecs.RegisterComponent[WeaponArsenal](types)
	ecs.RegisterComponent[PlayerWeaponLogic](types)
	ecs.RegisterComponent[EnemyShootingLogic](types)
	ecs.RegisterComponent[EnemySteering](types)
	ecs.RegisterComponent[Bullet](types)
	ecs.RegisterComponent[Lifetime](types)
}
