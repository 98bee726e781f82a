// Package telemetry accumulates per-window simulation statistics and
// writes them out as CSV.
package telemetry

// Collector accumulates events within time windows and produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int64
	dt                  float64

	windowStartTick int64

	// Event counters for current window
	shotsFired     int
	hits           int
	kills          int
	minionsSpawned int
	expiries       int
	extractions    int
	oreMined       float64
	damageDealt    float64
}

// NewCollector creates a stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec, dt float64) *Collector {
	ticksPerWindow := int64(windowDurationSec / dt)
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}
	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
	}
}

// RecordShot records a projectile being fired.
func (c *Collector) RecordShot() {
	c.shotsFired++
}

// RecordHit records a projectile hit and the damage it dealt.
func (c *Collector) RecordHit(damage float64) {
	c.hits++
	c.damageDealt += damage
}

// RecordKill records an entity destroyed by damage.
func (c *Collector) RecordKill() {
	c.kills++
}

// RecordMinionSpawn records a boss minion spawn.
func (c *Collector) RecordMinionSpawn() {
	c.minionsSpawned++
}

// RecordExpiry records a lifetime expiry.
func (c *Collector) RecordExpiry() {
	c.expiries++
}

// RecordExtraction records a completed mining cycle.
func (c *Collector) RecordExtraction(amount float64) {
	c.extractions++
	c.oreMined += amount
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int64) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats and resets counters for the next window.
// Population counts and health samples describe the moment of the flush.
func (c *Collector) Flush(currentTick int64, enemies, bosses, projectiles int, healthFractions []float64) WindowStats {
	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * c.dt,

		EnemyCount:      enemies,
		BossCount:       bosses,
		ProjectileCount: projectiles,

		ShotsFired:     c.shotsFired,
		Hits:           c.hits,
		Kills:          c.kills,
		MinionsSpawned: c.minionsSpawned,
		Expiries:       c.expiries,
		Extractions:    c.extractions,
		OreMined:       c.oreMined,
		DamageDealt:    c.damageDealt,
	}
	if c.shotsFired > 0 {
		stats.HitRate = float64(c.hits) / float64(c.shotsFired)
	}
	stats.HealthMean, stats.HealthStd = ComputeHealthStats(healthFractions)

	c.windowStartTick = currentTick
	c.shotsFired = 0
	c.hits = 0
	c.kills = 0
	c.minionsSpawned = 0
	c.expiries = 0
	c.extractions = 0
	c.oreMined = 0
	c.damageDealt = 0

	return stats
}
