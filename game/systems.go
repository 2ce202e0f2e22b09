package game

import (
	"image/color"
	"math"

	"github.com/plus3/sparsecs/ecs"
	"github.com/plus3/sparsecs/level"
	"go.uber.org/zap"
)

// Arena is the registry singleton holding the level being played.
type Arena struct {
	Level *level.Level
}

var bulletColor = color.RGBA{R: 255, G: 220, B: 60, A: 255}

// PlayerMovementSystem sets player velocity from the input axis.
type PlayerMovementSystem struct {
	Controls ecs.Singleton[Controls]
}

func (s *PlayerMovementSystem) ExecuteEntity(frame *ecs.UpdateFrame, e ecs.Entity) {
	r := frame.Registry
	in := s.Controls.Get().Input
	if in == nil {
		return
	}
	move, ok := ecs.Get[PlayerMovement](r, e)
	if !ok {
		return
	}
	vel, ok := ecs.Get[Velocity](r, e)
	if !ok {
		return
	}
	x, y := in.Move()
	if l := float32(math.Hypot(float64(x), float64(y))); l > 1 {
		x, y = x/l, y/l
	}
	vel.X, vel.Y = x*move.Speed, y*move.Speed
}

// SteeringSystem points enemies at their target. Steering whose target is
// gone is dropped.
type SteeringSystem struct{}

func (s *SteeringSystem) ExecuteEntity(frame *ecs.UpdateFrame, e ecs.Entity) {
	r := frame.Registry
	steer, ok := ecs.Get[EnemySteering](r, e)
	if !ok {
		return
	}
	pos, ok := ecs.Get[Position](r, e)
	if !ok {
		return
	}
	targetEntity, ok := r.Resolve(steer.Target)
	if !ok || r.Destroying(targetEntity) {
		ecs.Remove[EnemySteering](r, e)
		if vel, ok := ecs.Get[Velocity](r, e); ok {
			vel.X, vel.Y = 0, 0
		}
		return
	}
	target, ok := ecs.Get[Position](r, targetEntity)
	if !ok {
		return
	}
	dx, dy, dist := direction(*pos, *target)
	if dist == 0 {
		return
	}
	vel, ok := ecs.Get[Velocity](r, e)
	if !ok {
		ecs.Add(r, e, Velocity{X: dx * steer.Speed, Y: dy * steer.Speed})
		return
	}
	vel.X, vel.Y = dx*steer.Speed, dy*steer.Speed
}

// WeaponSystem ticks weapon cooldowns and fires bullets for players holding
// the trigger and for enemies with a live target.
type WeaponSystem struct {
	Controls ecs.Singleton[Controls]
	Log      *zap.Logger
}

func (s *WeaponSystem) ExecuteEntity(frame *ecs.UpdateFrame, e ecs.Entity) {
	r := frame.Registry
	arsenal, ok := ecs.Get[WeaponArsenal](r, e)
	if !ok {
		return
	}
	pos, ok := ecs.Get[Position](r, e)
	if !ok {
		return
	}
	dt := float32(frame.DeltaTime)
	for i := range arsenal.Weapons {
		if arsenal.Weapons[i].Cooldown > 0 {
			arsenal.Weapons[i].Cooldown -= dt
		}
	}

	var aim Position
	switch {
	case ecs.Has[PlayerWeaponLogic](r, e):
		in := s.Controls.Get().Input
		if in == nil {
			return
		}
		if slot, ok := in.Weapon(); ok && slot < len(arsenal.Weapons) {
			arsenal.Selected = slot
		}
		if !in.Firing() {
			return
		}
		aim.X, aim.Y = in.Aim()
	case ecs.Has[EnemyShootingLogic](r, e):
		logic, _ := ecs.Get[EnemyShootingLogic](r, e)
		targetEntity, ok := r.Resolve(logic.Target)
		if !ok || r.Destroying(targetEntity) {
			return
		}
		target, ok := ecs.Get[Position](r, targetEntity)
		if !ok {
			return
		}
		aim = *target
	default:
		return
	}

	w := arsenal.Current()
	if w == nil || w.Cooldown > 0 {
		return
	}
	dx, dy, dist := direction(*pos, aim)
	if dist == 0 {
		return
	}
	w.Cooldown = 1 / w.FireRate
	fire(r, *pos, dx, dy, w)
	if s.Log != nil {
		s.Log.Debug("weapon fired",
			zap.Uint32("entity", uint32(e)),
			zap.String("weapon", w.Name),
			zap.Int("bullets", w.BulletsShot))
	}
}

// fire spawns w.BulletsShot bullets fanned evenly across w.BulletSpread
// degrees around the aim direction.
func fire(r *ecs.Registry, from Position, dx, dy float32, w *Weapon) {
	base := math.Atan2(float64(dy), float64(dx))
	spread := float64(w.BulletSpread) * math.Pi / 180
	for i := 0; i < w.BulletsShot; i++ {
		angle := base
		if w.BulletsShot > 1 {
			angle += spread * (float64(i)/float64(w.BulletsShot-1) - 0.5)
		}
		b := r.CreateEntity()
		ecs.Add(r, b, from)
		ecs.Add(r, b, Velocity{
			X: float32(math.Cos(angle)) * w.BulletSpeed,
			Y: float32(math.Sin(angle)) * w.BulletSpeed,
		})
		ecs.Add(r, b, Bullet{Damage: w.Damage, Pierce: w.Pierce, Group: w.Group})
		ecs.Add(r, b, CircleCollider{Radius: w.BulletRadius})
		ecs.Add(r, b, Drawable{Color: bulletColor})
		if w.BulletLifetime > 0 {
			ecs.Add(r, b, Lifetime{Remaining: w.BulletLifetime})
		}
	}
}

// FrictionSystem decays velocity.
type FrictionSystem struct{}

func (s *FrictionSystem) ExecuteEntity(frame *ecs.UpdateFrame, e ecs.Entity) {
	r := frame.Registry
	f, ok := ecs.Get[Friction](r, e)
	if !ok {
		return
	}
	vel, ok := ecs.Get[Velocity](r, e)
	if !ok {
		return
	}
	k := 1 - f.Amount*float32(frame.DeltaTime)
	if k < 0 {
		k = 0
	}
	vel.X *= k
	vel.Y *= k
}

// MovementSystem integrates velocity. When an Arena level is set, movement
// into a wall is refused and bullets hitting a wall are destroyed.
type MovementSystem struct {
	Arena ecs.Singleton[Arena]
}

func (s *MovementSystem) ExecuteEntity(frame *ecs.UpdateFrame, e ecs.Entity) {
	r := frame.Registry
	pos, ok := ecs.Get[Position](r, e)
	if !ok {
		return
	}
	vel, ok := ecs.Get[Velocity](r, e)
	if !ok {
		return
	}
	dt := float32(frame.DeltaTime)
	next := Position{X: pos.X + vel.X*dt, Y: pos.Y + vel.Y*dt}
	if lvl := s.Arena.Get().Level; lvl != nil && !lvl.Walkable(level.Vec{X: next.X, Y: next.Y}) {
		if ecs.Has[Bullet](r, e) {
			r.Destroy(e)
		}
		return
	}
	*pos = next
}

// LifetimeSystem destroys entities whose lifetime ran out.
type LifetimeSystem struct{}

func (s *LifetimeSystem) ExecuteEntity(frame *ecs.UpdateFrame, e ecs.Entity) {
	r := frame.Registry
	life, ok := ecs.Get[Lifetime](r, e)
	if !ok {
		return
	}
	life.Remaining -= float32(frame.DeltaTime)
	if life.Remaining <= 0 {
		r.Destroy(e)
	}
}

// CollisionSystem applies bullet hits. A bullet damages a Health entity it
// overlaps when its group matches, once per target. Pierce counts the extra
// targets a bullet may pass through.
type CollisionSystem struct {
	Log *zap.Logger

	bullets []ecs.Entity
	targets []ecs.Entity
}

func (s *CollisionSystem) Execute(frame *ecs.UpdateFrame) {
	r := frame.Registry
	s.bullets = append(s.bullets[:0], ecs.EntitiesWith[Bullet](r)...)
	s.targets = append(s.targets[:0], ecs.EntitiesWith[Health](r)...)

	for _, b := range s.bullets {
		bullet, _ := ecs.Get[Bullet](r, b)
		bpos, ok := ecs.Get[Position](r, b)
		if !ok {
			continue
		}
		for _, t := range s.targets {
			if r.Destroying(b) {
				break
			}
			if t == b || r.Destroying(t) || hitBefore(bullet, t) {
				continue
			}
			health, _ := ecs.Get[Health](r, t)
			if !bullet.Group.Hits(health.Group) {
				continue
			}
			tpos, ok := ecs.Get[Position](r, t)
			if !ok || !overlaps(r, b, *bpos, t, *tpos) {
				continue
			}
			s.hit(r, b, bullet, t, health)
		}
	}
}

func (s *CollisionSystem) hit(r *ecs.Registry, b ecs.Entity, bullet *Bullet, t ecs.Entity, health *Health) {
	health.HP -= bullet.Damage
	bullet.Hits = append(bullet.Hits, t)
	if s.Log != nil {
		s.Log.Debug("bullet hit",
			zap.Uint32("bullet", uint32(b)),
			zap.Uint32("target", uint32(t)),
			zap.Int("hp", health.HP))
	}
	if health.HP <= 0 {
		r.Destroy(t)
	}
	if bullet.Pierce <= 0 {
		r.Destroy(b)
		return
	}
	bullet.Pierce--
}

func hitBefore(b *Bullet, t ecs.Entity) bool {
	for _, h := range b.Hits {
		if h == t {
			return true
		}
	}
	return false
}

func overlaps(r *ecs.Registry, a ecs.Entity, ap Position, b ecs.Entity, bp Position) bool {
	var reach float32
	if c, ok := ecs.Get[CircleCollider](r, a); ok {
		reach += c.Radius
	}
	if c, ok := ecs.Get[CircleCollider](r, b); ok {
		reach += c.Radius
	}
	dx, dy := bp.X-ap.X, bp.Y-ap.Y
	return dx*dx+dy*dy <= reach*reach
}

func direction(from, to Position) (dx, dy, dist float32) {
	x, y := to.X-from.X, to.Y-from.Y
	d := float32(math.Hypot(float64(x), float64(y)))
	if d == 0 {
		return 0, 0, 0
	}
	return x / d, y / d, d
}
