package game

import (
	"errors"

	"go.uber.org/zap"

	"github.com/pthm-cable/voidrift/components"
	"github.com/pthm-cable/voidrift/systems"
)

// Destroy removes an entity from every tracked group, releases its mesh,
// and returns its handle to the registry. Safe to call on a handle that
// was already destroyed this tick.
func (g *Game) Destroy(e components.Entity) {
	if !g.registry.Alive(e) {
		return
	}

	if idx := g.store.Mesh.Index[e]; idx >= 0 {
		g.meshes.Unregister(idx)
		g.store.Mesh.Index[e] = -1
	}

	// If anything was mid-mining this entity, release the lock.
	if g.store.Mineable.BeingMined[e] == 1 {
		for _, m := range g.miners {
			if g.store.Laser.Target[m] == e {
				g.mining.Stop(g.store, m)
			}
		}
	}

	g.enemies = removeHandle(g.enemies, e)
	g.bosses = removeHandle(g.bosses, e)
	g.projectiles = removeHandle(g.projectiles, e)
	g.damageable = removeHandle(g.damageable, e)
	g.miners = removeHandle(g.miners, e)
	g.asteroids = removeHandle(g.asteroids, e)
	g.movable = removeHandle(g.movable, e)
	g.mortal = removeHandle(g.mortal, e)
	g.renderable = removeHandle(g.renderable, e)

	if e == g.player {
		g.player = components.None
	}

	g.registry.Free(e)
}

// cullDestroyed sweeps entities whose hull reached zero. The player is
// excluded; the embedding layer decides what player death means.
func (g *Game) cullDestroyed() {
	g.expireBuf = g.expireBuf[:0]
	for _, e := range g.damageable {
		if e == g.player || !g.store.InRange(e) {
			continue
		}
		if g.store.Health.Max[e] > 0 && g.store.Health.Current[e] <= 0 {
			g.expireBuf = append(g.expireBuf, e)
		}
	}

	for _, e := range g.expireBuf {
		g.collector.RecordKill()
		g.log.Debug("entity destroyed",
			zap.Int32("entity", int32(e)),
			zap.String("state", g.store.AI.State[e].String()),
		)
		g.Destroy(e)
	}
}

// processSpawnIntents materializes boss minion spawn requests. Capacity
// exhaustion is not fatal: the remaining intents are dropped and the
// bosses retry on their next cooldown.
func (g *Game) processSpawnIntents(intents []systems.SpawnIntent) {
	for _, intent := range intents {
		e, err := g.spawnMinion(intent)
		if err != nil {
			if errors.Is(err, components.ErrCapacityExhausted) {
				g.log.Warn("minion spawn dropped", zap.Int32("boss", int32(intent.Boss)))
				return
			}
			g.log.Error("minion spawn failed", zap.Error(err))
			return
		}
		g.collector.RecordMinionSpawn()
		g.log.Debug("minion spawned",
			zap.Int32("boss", int32(intent.Boss)),
			zap.Int32("minion", int32(e)),
			zap.String("boss_type", intent.BossType.String()),
		)
	}
}
