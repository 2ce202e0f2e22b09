package game

import (
	"image/color"

	"github.com/plus3/sparsecs/ecs"
	"github.com/plus3/sparsecs/level"
)

var (
	playerColor = color.RGBA{R: 80, G: 200, B: 120, A: 255}
	enemyColor  = color.RGBA{R: 220, G: 60, B: 60, A: 255}

	defaultPlayerPos = Position{X: 300, Y: 300}
	defaultEnemyPos  = Position{X: 500, Y: 300}
)

const (
	playerHP     = 3
	playerSpeed  = 100
	playerRadius = 30
	enemyHP      = 10
	enemySpeed   = 50
	enemyRadius  = 30
	bodyFriction = 20
)

// SafeHouse holds the entities of the opening scene.
type SafeHouse struct {
	Player ecs.Entity
	Enemy  ecs.Entity
}

// NewSafeHouse stages the player and one enemy. The player's arsenal damages
// enemies and the enemy gets a copy that damages the player. With an Arena
// level the player starts on the start tile and the enemy on the first enemy
// tile. The entities exist after the next Apply.
func NewSafeHouse(r *ecs.Registry, arsenal []Weapon) SafeHouse {
	playerPos, enemyPos := defaultPlayerPos, defaultEnemyPos
	if arena, ok := ecs.ReadSingleton[Arena](r); ok && arena.Level != nil {
		lvl := arena.Level
		half := lvl.TileSize() / 2
		start := lvl.StartPosition()
		playerPos = Position{X: start.X + half, Y: start.Y + half}
		if lanes := lvl.FindTiles(level.Enemy); len(lanes) > 0 {
			p := lvl.TilePosition(lanes[0][0], lanes[0][1])
			enemyPos = Position{X: p.X + half, Y: p.Y + half}
		}
	}

	player := r.CreateEntity()
	ecs.Add(r, player, playerPos)
	ecs.Add(r, player, Velocity{})
	ecs.Add(r, player, Friction{Amount: bodyFriction})
	ecs.Add(r, player, PlayerMovement{Speed: playerSpeed})
	ecs.Add(r, player, Health{HP: playerHP, Group: Friendly})
	ecs.Add(r, player, CircleCollider{Radius: playerRadius})
	ecs.Add(r, player, Drawable{Color: playerColor})
	ecs.Add(r, player, WeaponArsenal{Weapons: WithGroup(arsenal, Hostile)})
	ecs.Add(r, player, PlayerWeaponLogic{})

	enemy := r.CreateEntity()
	ecs.Add(r, enemy, enemyPos)
	ecs.Add(r, enemy, Velocity{})
	ecs.Add(r, enemy, Health{HP: enemyHP, Group: Hostile})
	ecs.Add(r, enemy, CircleCollider{Radius: enemyRadius})
	ecs.Add(r, enemy, Drawable{Color: enemyColor})
	ecs.Add(r, enemy, EnemySteering{Target: r.Ref(player), Speed: enemySpeed})
	ecs.Add(r, enemy, WeaponArsenal{Weapons: WithGroup(arsenal, Friendly)})
	ecs.Add(r, enemy, EnemyShootingLogic{Target: r.Ref(player)})

	return SafeHouse{Player: player, Enemy: enemy}
}
