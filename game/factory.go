package game

import (
	"math"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/voidrift/components"
	"github.com/pthm-cable/voidrift/config"
	"github.com/pthm-cable/voidrift/renderer"
	"github.com/pthm-cable/voidrift/systems"
)

// Entity archetype defaults. Everything here is a spawn-time stat, not a
// simulation tuning knob; the knobs live in config.
const (
	PlayerHealth     = 200.0
	PlayerShield     = 100.0
	PlayerRegenRate  = 10.0
	PlayerRegenDelay = 3.0
	PlayerRadius     = 8.0
	PlayerDamage     = 25.0
	PlayerFireRate   = 4.0
	PlayerLaserRange = 300.0
	PlayerCargoCap   = 100.0

	StandardHealth = 60.0
	StandardSpeed  = 140.0
	StandardRadius = 6.0
	HeavyHealth    = 180.0
	HeavySpeed     = 70.0
	HeavyRadius    = 12.0
	SwiftHealth    = 35.0
	SwiftSpeed     = 220.0
	SwiftRadius    = 4.0

	BossHealth = 1500.0
	BossShield = 400.0
	BossSpeed  = 90.0
	BossRadius = 30.0

	MinionHealth = 30.0
	MinionSpeed  = 160.0
	MinionRadius = 4.0

	ProjectileSpeed  = 500.0
	ProjectileRadius = 2.0
	ProjectileMaxAge = 3.0

	AsteroidRadius = 15.0

	DefaultMass = 1.0
	DefaultDrag = 0.5
)

// resetRow clears the cross-system rows a recycled handle may have left
// dirty. Component values are not zeroed on free, so every spawner runs
// this before filling in its own rows.
func (g *Game) resetRow(e components.Entity) {
	s := g.store
	s.SetVelocity(e, r3.Vec{})
	s.ClearForce(e)
	s.SetRotation(e, quat.Number{Real: 1})
	s.SetScale(e, r3.Vec{X: 1, Y: 1, Z: 1})

	s.Body.Mass[e] = DefaultMass
	s.Body.Drag[e] = 0
	s.Body.AngularDrag[e] = 0
	s.Body.Kinematic[e] = 0
	s.Body.FreezeRot[e] = 0

	s.Health.TimeSinceLastDamage[e] = math.MaxFloat64 / 2
	s.Health.DamageResistance[e] = 0
	s.Health.Shield[e] = 0
	s.Health.MaxShield[e] = 0
	s.Health.ShieldRegenRate[e] = 0
	s.Health.ShieldRegenDelay[e] = 0

	s.Weapon.TimeSinceLastShot[e] = 0
	s.Weapon.FireRate[e] = 0
	s.Weapon.Damage[e] = 0

	s.AI.State[e] = components.StateIdle
	s.AI.PlayerFound[e] = 0
	s.AI.StateTimer[e] = 0
	s.AI.TimeAlive[e] = 0

	s.Boss.PhaseActive[e] = 0
	s.Boss.BeamActive[e] = 0

	s.Laser.Active[e] = 0
	s.Laser.Target[e] = components.None
	s.Laser.Progress[e] = 0
	s.Mineable.BeingMined[e] = 0

	s.Lifetime.Age[e] = 0
	s.Lifetime.MaxAge[e] = -1

	s.Mesh.Index[e] = -1
	s.Render.Visible[e] = 1
	s.Render.CastShadow[e] = 1
	s.Render.ReceiveShadow[e] = 0
}

// attachMesh registers a fresh mesh for the entity and bridges it.
func (g *Game) attachMesh(e components.Entity) {
	idx := g.meshes.Register(&renderer.Mesh{})
	g.store.Mesh.Index[e] = idx
}

// SpawnPlayer creates the player ship and points the AI systems at it.
// The player doubles as the mining platform: it carries the laser and
// the cargo hold.
func (g *Game) SpawnPlayer(pos r3.Vec) (components.Entity, error) {
	e, err := g.registry.Alloc()
	if err != nil {
		return components.None, err
	}
	g.resetRow(e)
	s := g.store

	s.SetPosition(e, pos)
	s.Collider.Radius[e] = PlayerRadius
	s.Body.Drag[e] = DefaultDrag

	s.Health.Current[e] = PlayerHealth
	s.Health.Max[e] = PlayerHealth
	s.Health.Shield[e] = PlayerShield
	s.Health.MaxShield[e] = PlayerShield
	s.Health.ShieldRegenRate[e] = PlayerRegenRate
	s.Health.ShieldRegenDelay[e] = PlayerRegenDelay

	s.Weapon.Damage[e] = PlayerDamage
	s.Weapon.FireRate[e] = PlayerFireRate
	s.Weapon.Range[e] = 1000
	s.Weapon.Level[e] = 1

	s.Laser.Range[e] = PlayerLaserRange
	s.Cargo.Capacity[e] = PlayerCargoCap
	s.Cargo.Used[e] = 0
	for r := 0; r < components.NumResources; r++ {
		s.Cargo.Held[r][e] = 0
	}

	g.attachMesh(e)
	g.player = e
	g.damageable = append(g.damageable, e)
	g.movable = append(g.movable, e)
	g.miners = append(g.miners, e)
	g.renderable = append(g.renderable, e)

	g.log.Info("player spawned", zap.Int32("entity", int32(e)))
	return e, nil
}

// SpawnEnemy creates an enemy of the given subtype in IDLE state. The
// detection system captures its spawn origin on the first tick.
func (g *Game) SpawnEnemy(subtype components.Subtype, faction int32, pos r3.Vec) (components.Entity, error) {
	e, err := g.registry.Alloc()
	if err != nil {
		return components.None, err
	}
	g.resetRow(e)
	s := g.store

	var health, speed, radius float64
	switch subtype {
	case components.SubtypeHeavy:
		health, speed, radius = HeavyHealth, HeavySpeed, HeavyRadius
	case components.SubtypeSwift:
		health, speed, radius = SwiftHealth, SwiftSpeed, SwiftRadius
	default:
		health, speed, radius = StandardHealth, StandardSpeed, StandardRadius
	}

	s.SetPosition(e, pos)
	s.Collider.Radius[e] = radius
	s.Health.Current[e] = health
	s.Health.Max[e] = health

	s.AI.Faction[e] = faction
	s.AI.Subtype[e] = subtype
	s.AI.State[e] = components.StateIdle
	s.AI.DetectionRange[e] = config.Cfg().Enemy.DetectionRange
	s.AI.Damage[e] = 10
	s.AI.Speed[e] = speed
	s.AI.SeparationInfluence[e] = 1
	s.AI.SpiralPhase[e] = g.rng.Float64() * 2 * math.Pi
	s.AI.SpiralRate[e] = 2 + g.rng.Float64()*2

	s.Weapon.Damage[e] = s.AI.Damage[e]
	s.Weapon.FireRate[e] = 1

	g.attachMesh(e)
	g.enemies = append(g.enemies, e)
	g.damageable = append(g.damageable, e)
	g.movable = append(g.movable, e)
	g.mortal = append(g.mortal, e)
	g.renderable = append(g.renderable, e)

	return e, nil
}

// SpawnBoss creates a boss with its encounter timers reset.
func (g *Game) SpawnBoss(bossType components.BossType, pos r3.Vec) (components.Entity, error) {
	e, err := g.registry.Alloc()
	if err != nil {
		return components.None, err
	}
	g.resetRow(e)
	s := g.store

	s.SetPosition(e, pos)
	s.SetScale(e, r3.Vec{X: 3, Y: 3, Z: 3})
	s.Collider.Radius[e] = BossRadius

	s.Health.Current[e] = BossHealth
	s.Health.Max[e] = BossHealth
	s.Health.Shield[e] = BossShield
	s.Health.MaxShield[e] = BossShield
	s.Health.ShieldRegenRate[e] = 5
	s.Health.ShieldRegenDelay[e] = 5
	s.Health.DamageResistance[e] = 0.2

	s.AI.Speed[e] = BossSpeed
	s.AI.TimeAlive[e] = 0

	s.Boss.Type[e] = bossType
	s.Boss.PhaseTimer[e] = 0
	s.Boss.SpawnCooldown[e] = 0
	s.Boss.MinionsSpawned[e] = 0
	s.Boss.BeamChargeTime[e] = 0
	s.Boss.OriginalScale[e] = 3

	g.attachMesh(e)
	g.bosses = append(g.bosses, e)
	g.damageable = append(g.damageable, e)
	g.movable = append(g.movable, e)
	g.renderable = append(g.renderable, e)

	g.log.Info("boss spawned",
		zap.Int32("entity", int32(e)),
		zap.String("type", bossType.String()),
	)
	return e, nil
}

// SpawnProjectile creates a projectile travelling along dir with the
// given weapon damage. Projectiles expire on their lifetime rather than
// on range.
func (g *Game) SpawnProjectile(pos, dir r3.Vec, damage float64) (components.Entity, error) {
	e, err := g.registry.Alloc()
	if err != nil {
		return components.None, err
	}
	g.resetRow(e)
	s := g.store

	s.SetPosition(e, pos)
	s.SetVelocity(e, r3.Scale(ProjectileSpeed, r3.Unit(dir)))
	s.Collider.Radius[e] = ProjectileRadius
	s.Weapon.Damage[e] = damage
	s.Lifetime.MaxAge[e] = ProjectileMaxAge
	s.Render.CastShadow[e] = 0

	g.attachMesh(e)
	g.projectiles = append(g.projectiles, e)
	g.movable = append(g.movable, e)
	g.mortal = append(g.mortal, e)
	g.renderable = append(g.renderable, e)

	return e, nil
}

// SpawnAsteroid creates a mineable asteroid. Asteroids are kinematic:
// they render and get mined but never integrate forces.
func (g *Game) SpawnAsteroid(resource components.Resource, amount, difficulty float64, pos r3.Vec) (components.Entity, error) {
	e, err := g.registry.Alloc()
	if err != nil {
		return components.None, err
	}
	g.resetRow(e)
	s := g.store

	s.SetPosition(e, pos)
	s.Collider.Radius[e] = AsteroidRadius
	s.Body.Kinematic[e] = 1

	s.Mineable.Resource[e] = resource
	s.Mineable.Remaining[e] = amount
	s.Mineable.Difficulty[e] = difficulty

	g.attachMesh(e)
	g.asteroids = append(g.asteroids, e)
	g.renderable = append(g.renderable, e)

	return e, nil
}

// spawnMinion interprets a boss spawn intent. Minions are small standard
// enemies that skip IDLE and chase immediately.
func (g *Game) spawnMinion(intent systems.SpawnIntent) (components.Entity, error) {
	e, err := g.SpawnEnemy(components.SubtypeStandard, 0, intent.Pos)
	if err != nil {
		return components.None, err
	}
	s := g.store
	s.Health.Current[e] = MinionHealth
	s.Health.Max[e] = MinionHealth
	s.AI.Speed[e] = MinionSpeed
	s.Collider.Radius[e] = MinionRadius
	s.AI.State[e] = components.StateChase
	s.AI.PlayerFound[e] = 1
	s.AI.SpawnX[e] = intent.Pos.X
	s.AI.SpawnY[e] = intent.Pos.Y
	s.AI.SpawnZ[e] = intent.Pos.Z
	return e, nil
}
