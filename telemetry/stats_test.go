package telemetry

import (
	"math"
	"testing"
)

func TestComputeHealthStats(t *testing.T) {
	values := []float64{0.2, 0.4, 0.6, 0.8, 1.0}
	mean, std := ComputeHealthStats(values)

	if math.Abs(mean-0.6) > 0.001 {
		t.Errorf("mean = %v, want 0.6", mean)
	}
	// Sample standard deviation of an arithmetic sequence step 0.2.
	if math.Abs(std-0.3162) > 0.001 {
		t.Errorf("std = %v, want ~0.3162", std)
	}
}

func TestComputeHealthStatsEmpty(t *testing.T) {
	mean, std := ComputeHealthStats(nil)
	if mean != 0 || std != 0 {
		t.Errorf("empty sample = (%v, %v), want (0, 0)", mean, std)
	}
}

func TestComputeHealthStatsSingle(t *testing.T) {
	mean, std := ComputeHealthStats([]float64{0.5})
	if mean != 0.5 {
		t.Errorf("mean = %v, want 0.5", mean)
	}
	if std != 0 {
		t.Errorf("std = %v, want 0 for single sample", std)
	}
}

func TestCollectorWindowFlush(t *testing.T) {
	// 5s window at dt 0.1 = 50 ticks per window.
	c := NewCollector(5.0, 0.1)

	if c.ShouldFlush(49) {
		t.Error("ShouldFlush(49) = true, want false")
	}
	if !c.ShouldFlush(50) {
		t.Error("ShouldFlush(50) = false, want true")
	}

	c.RecordShot()
	c.RecordShot()
	c.RecordHit(30)
	c.RecordKill()
	c.RecordMinionSpawn()
	c.RecordExpiry()
	c.RecordExtraction(7.5)

	stats := c.Flush(50, 12, 3, 5, []float64{0.5, 0.7})

	if stats.WindowStartTick != 0 || stats.WindowEndTick != 50 {
		t.Errorf("window = [%d, %d], want [0, 50]", stats.WindowStartTick, stats.WindowEndTick)
	}
	if math.Abs(stats.SimTimeSec-5.0) > 1e-9 {
		t.Errorf("simTime = %v, want 5.0", stats.SimTimeSec)
	}
	if stats.EnemyCount != 12 || stats.BossCount != 3 || stats.ProjectileCount != 5 {
		t.Errorf("populations = %d/%d/%d, want 12/3/5",
			stats.EnemyCount, stats.BossCount, stats.ProjectileCount)
	}
	if stats.ShotsFired != 2 || stats.Hits != 1 || stats.Kills != 1 {
		t.Errorf("events = %d shots/%d hits/%d kills, want 2/1/1",
			stats.ShotsFired, stats.Hits, stats.Kills)
	}
	if stats.HitRate != 0.5 {
		t.Errorf("hitRate = %v, want 0.5", stats.HitRate)
	}
	if stats.DamageDealt != 30 {
		t.Errorf("damageDealt = %v, want 30", stats.DamageDealt)
	}
	if stats.MinionsSpawned != 1 || stats.Expiries != 1 {
		t.Errorf("spawns/expiries = %d/%d, want 1/1", stats.MinionsSpawned, stats.Expiries)
	}
	if stats.Extractions != 1 || stats.OreMined != 7.5 {
		t.Errorf("extractions = %d/%v, want 1/7.5", stats.Extractions, stats.OreMined)
	}
	if math.Abs(stats.HealthMean-0.6) > 0.001 {
		t.Errorf("healthMean = %v, want 0.6", stats.HealthMean)
	}
}

func TestCollectorResetsAfterFlush(t *testing.T) {
	c := NewCollector(5.0, 0.1)
	c.RecordShot()
	c.RecordHit(10)
	c.Flush(50, 0, 0, 0, nil)

	if c.ShouldFlush(50) {
		t.Error("ShouldFlush immediately after flush = true, want false")
	}
	if !c.ShouldFlush(100) {
		t.Error("ShouldFlush one window later = false, want true")
	}

	stats := c.Flush(100, 0, 0, 0, nil)
	if stats.ShotsFired != 0 || stats.Hits != 0 || stats.DamageDealt != 0 {
		t.Errorf("counters leaked across windows: %+v", stats)
	}
	if stats.HitRate != 0 {
		t.Errorf("hitRate = %v, want 0 with no shots", stats.HitRate)
	}
}

func TestCollectorTinyWindowClamped(t *testing.T) {
	// A window shorter than one tick still flushes every tick.
	c := NewCollector(0.001, 0.1)
	if !c.ShouldFlush(1) {
		t.Error("ShouldFlush(1) = false, want true for sub-tick window")
	}
}
