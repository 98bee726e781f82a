package telemetry

import (
	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int64   `csv:"-"`
	WindowEndTick   int64   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Population counts at window end
	EnemyCount      int `csv:"enemies"`
	BossCount       int `csv:"bosses"`
	ProjectileCount int `csv:"projectiles"`

	// Events during window
	ShotsFired     int     `csv:"shots_fired"`
	Hits           int     `csv:"hits"`
	Kills          int     `csv:"kills"`
	HitRate        float64 `csv:"hit_rate"`
	DamageDealt    float64 `csv:"damage_dealt"`
	MinionsSpawned int     `csv:"minions_spawned"`
	Expiries       int     `csv:"expiries"`
	Extractions    int     `csv:"extractions"`
	OreMined       float64 `csv:"ore_mined"`

	// Enemy hull fraction distribution (sampled at window end)
	HealthMean float64 `csv:"health_mean"`
	HealthStd  float64 `csv:"health_std"`
}

// ComputeHealthStats calculates mean and standard deviation of health
// fractions. Returns zeros for an empty sample.
func ComputeHealthStats(values []float64) (mean, std float64) {
	if len(values) == 0 {
		return 0, 0
	}
	mean = stat.Mean(values, nil)
	if len(values) > 1 {
		std = stat.StdDev(values, nil)
	}
	return mean, std
}
