package game

import (
	"go.uber.org/zap"

	"github.com/pthm-cable/voidrift/components"
	"github.com/pthm-cable/voidrift/systems"
)

// Update advances the simulation by one tick. The system order is a hard
// invariant: detection before pursuit so this tick's transitions steer
// this tick's movement, separation before pursuit so the forces consumed
// are fresh, physics after the AI writes velocity, and render sync
// strictly last. The tick always runs to completion.
func (g *Game) Update(dt float64) {
	g.tick++
	g.simTime += dt

	g.detection.Update(g.store, g.enemies, g.player)
	g.separation.Update(g.store, g.enemies)
	g.pursuit.Update(g.store, g.enemies, g.player, dt)
	intents := g.boss.Update(g.store, g.bosses, g.player, dt)

	g.updateWeaponTimers(dt)

	systems.ApplyDrag(g.store, g.movable, dt)
	systems.IntegrateForces(g.store, g.movable, dt)
	systems.IntegratePositions(g.store, g.movable, dt)

	g.updateMining(dt)
	g.updateCombat(dt)
	g.expireEntities(dt)
	g.cullDestroyed()
	g.processSpawnIntents(intents)

	systems.SyncMeshes(g.store, g.meshes, g.renderable)

	g.flushTelemetry()
}

// updateWeaponTimers advances fire cooldowns for everything armed.
func (g *Game) updateWeaponTimers(dt float64) {
	if g.store.InRange(g.player) {
		g.store.Weapon.TimeSinceLastShot[g.player] += dt
	}
	for _, e := range g.enemies {
		if g.store.InRange(e) {
			g.store.Weapon.TimeSinceLastShot[e] += dt
		}
	}
}

// updateMining accrues mining progress and records extractions.
func (g *Game) updateMining(dt float64) {
	extractions := g.mining.Update(g.store, g.miners, dt, nil)
	for _, x := range extractions {
		g.collector.RecordExtraction(x.Amount)
		g.log.Debug("ore extracted",
			zap.Int32("miner", int32(x.Miner)),
			zap.Int32("asteroid", int32(x.Asteroid)),
			zap.String("resource", x.Resource.String()),
			zap.Float64("amount", x.Amount),
		)
	}
}

// updateCombat resolves projectile hits, applies damage, destroys spent
// projectiles, and regenerates shields.
func (g *Game) updateCombat(dt float64) {
	g.hitBuf = systems.CollideProjectiles(g.store, g.projectiles, g.damageable, g.hitBuf[:0])
	systems.ApplyHits(g.store, g.hitBuf)

	for _, h := range g.hitBuf {
		dmg := g.store.Weapon.Damage[h.Projectile] * (1 - g.store.Health.DamageResistance[h.Target])
		g.collector.RecordHit(dmg)
		g.Destroy(h.Projectile)
	}

	systems.RegenShields(g.store, g.damageable, dt)
}

// expireEntities ages lifetimes and destroys anything past its max age.
func (g *Game) expireEntities(dt float64) {
	g.expireBuf = systems.ExpireLifetimes(g.store, g.mortal, dt, g.expireBuf[:0])
	for _, e := range g.expireBuf {
		g.collector.RecordExpiry()
		g.Destroy(e)
	}
}

// flushTelemetry emits a stats window when one has elapsed.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}

	g.healthBuf = g.healthBuf[:0]
	for _, e := range g.enemies {
		if g.store.InRange(e) && g.store.Health.Max[e] > 0 {
			g.healthBuf = append(g.healthBuf, g.store.Health.Current[e]/g.store.Health.Max[e])
		}
	}

	stats := g.collector.Flush(g.tick, len(g.enemies), len(g.bosses), len(g.projectiles), g.healthBuf)
	if err := g.output.WriteTelemetry(stats); err != nil {
		g.log.Warn("telemetry write failed", zap.Error(err))
	}
	if g.logStats {
		g.log.Info("window stats",
			zap.Int64("tick", stats.WindowEndTick),
			zap.Int("enemies", stats.EnemyCount),
			zap.Int("bosses", stats.BossCount),
			zap.Int("shots", stats.ShotsFired),
			zap.Int("hits", stats.Hits),
			zap.Int("kills", stats.Kills),
			zap.Float64("ore_mined", stats.OreMined),
			zap.Float64("health_mean", stats.HealthMean),
		)
	}
}

// RecordShot lets the external input layer count fired projectiles.
func (g *Game) RecordShot() {
	g.collector.RecordShot()
}

// CanFire reports whether an armed entity's weapon cooldown has elapsed.
func (g *Game) CanFire(e components.Entity) bool {
	if !g.store.InRange(e) || g.store.Weapon.FireRate[e] <= 0 {
		return false
	}
	return g.store.Weapon.TimeSinceLastShot[e] >= 1/g.store.Weapon.FireRate[e]
}
