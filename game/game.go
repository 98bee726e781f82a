// Package game wires the component store, entity registry, and systems
// into a frame-driven simulation. It is the frame driver the core expects:
// it owns the tracked entity groups, translates spawn intents into
// entities, and runs the per-tick pipeline in its fixed order.
package game

import (
	"fmt"
	"math/rand"

	"go.uber.org/zap"

	"github.com/pthm-cable/voidrift/components"
	"github.com/pthm-cable/voidrift/config"
	"github.com/pthm-cable/voidrift/renderer"
	"github.com/pthm-cable/voidrift/systems"
	"github.com/pthm-cable/voidrift/telemetry"
)

// Options configures game construction.
type Options struct {
	Seed      int64
	OutputDir string
	LogStats  bool
	Logger    *zap.Logger
}

// Game holds the complete simulation state.
type Game struct {
	store    *components.Store
	registry *components.Registry
	meshes   *renderer.Registry
	rng      *rand.Rand
	log      *zap.Logger

	detection  *systems.DetectionSystem
	separation *systems.SeparationSystem
	pursuit    *systems.PursuitSystem
	boss       *systems.BossSystem
	mining     *systems.MiningSystem

	collector *telemetry.Collector
	output    *telemetry.OutputManager
	logStats  bool

	// Tracked entity groups. The core never discovers entities; these
	// lists are the only way anything enters the pipeline.
	player      components.Entity
	enemies     []components.Entity
	bosses      []components.Entity
	projectiles []components.Entity
	damageable  []components.Entity
	miners      []components.Entity
	asteroids   []components.Entity
	movable     []components.Entity
	mortal      []components.Entity
	renderable  []components.Entity

	// Reused per-tick buffers
	hitBuf    []systems.HitEvent
	expireBuf []components.Entity
	healthBuf []float64

	tick    int64
	simTime float64
}

// New creates a game from the loaded config.
func New(opts Options) (*Game, error) {
	cfg := config.Cfg()

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("initializing telemetry output: %w", err)
	}
	if err := output.WriteConfig(cfg); err != nil {
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}

	g := &Game{
		store:      components.NewStore(cfg.World.MaxEntities),
		registry:   components.NewRegistry(cfg.World.MaxEntities),
		meshes:     renderer.NewRegistry(),
		rng:        rand.New(rand.NewSource(opts.Seed)),
		log:        logger,
		detection:  systems.NewDetectionSystem(),
		separation: systems.NewSeparationSystem(cfg.Enemy.SeparationRadiusFactor, cfg.Enemy.SeparationStrength),
		pursuit:    systems.NewPursuitSystem(opts.Seed),
		boss:       systems.NewBossSystem(opts.Seed + 1),
		mining:     systems.NewMiningSystem(),
		collector:  telemetry.NewCollector(cfg.Telemetry.StatsWindow, cfg.Physics.DT),
		output:     output,
		logStats:   opts.LogStats,
		player:     components.None,
	}
	return g, nil
}

// Store exposes the component store for external readers between ticks.
func (g *Game) Store() *components.Store {
	return g.store
}

// Meshes exposes the mesh registry render sync writes into.
func (g *Game) Meshes() *renderer.Registry {
	return g.meshes
}

// Tick returns the current tick counter.
func (g *Game) Tick() int64 {
	return g.tick
}

// SimTime returns the accumulated simulation time in seconds.
func (g *Game) SimTime() float64 {
	return g.simTime
}

// Player returns the current player handle, or components.None.
func (g *Game) Player() components.Entity {
	return g.player
}

// SetPlayer points the AI systems at a player entity. Pass components.None
// to clear it; detection and pursuit then treat the player as absent.
func (g *Game) SetPlayer(e components.Entity) {
	g.player = e
}

// Enemies returns the tracked enemy list.
func (g *Game) Enemies() []components.Entity {
	return g.enemies
}

// EnemiesByFaction filters the tracked enemy list to one faction. The
// result is appended to dst so callers can reuse a buffer.
func (g *Game) EnemiesByFaction(faction int32, dst []components.Entity) []components.Entity {
	for _, e := range g.enemies {
		if g.store.InRange(e) && g.store.AI.Faction[e] == faction {
			dst = append(dst, e)
		}
	}
	return dst
}

// Bosses returns the tracked boss list.
func (g *Game) Bosses() []components.Entity {
	return g.bosses
}

// Projectiles returns the tracked projectile list.
func (g *Game) Projectiles() []components.Entity {
	return g.projectiles
}

// AddDamageable tracks an entity in the "anything with health" group
// used for collision targets and shield regeneration.
func (g *Game) AddDamageable(e components.Entity) {
	g.damageable = append(g.damageable, e)
}

// RemoveDamageable stops tracking an entity's health.
func (g *Game) RemoveDamageable(e components.Entity) {
	g.damageable = removeHandle(g.damageable, e)
}

// StartMining activates a miner's laser against the nearest asteroid in
// range. Returns the acquired target, or components.None.
func (g *Game) StartMining(miner components.Entity) components.Entity {
	target := g.mining.AcquireTarget(g.store, miner, g.asteroids)
	if target != components.None {
		g.store.Laser.Active[miner] = 1
	}
	return target
}

// StopMining deactivates a miner's laser.
func (g *Game) StopMining(miner components.Entity) {
	g.mining.Stop(g.store, miner)
}

// Close flushes telemetry output.
func (g *Game) Close() error {
	return g.output.Close()
}

// removeHandle removes the first occurrence of e, preserving order.
func removeHandle(list []components.Entity, e components.Entity) []components.Entity {
	for i, v := range list {
		if v == e {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}
