package systems

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/voidrift/components"
)

func newMiningStore() (*components.Store, components.Entity) {
	s := components.NewStore(4)
	miner := components.Entity(0)
	s.Laser.Range[miner] = 100
	s.Laser.Target[miner] = components.None
	s.Cargo.Capacity[miner] = 100
	return s, miner
}

func newAsteroid(s *components.Store, e components.Entity, res components.Resource, remaining, difficulty float64, pos r3.Vec) components.Entity {
	s.SetPosition(e, pos)
	s.Mineable.Resource[e] = res
	s.Mineable.Remaining[e] = remaining
	s.Mineable.Difficulty[e] = difficulty
	return e
}

func TestAcquireTargetPicksNearestInRange(t *testing.T) {
	s, miner := newMiningStore()
	near := newAsteroid(s, 1, components.ResourceIron, 50, 1, r3.Vec{X: 30})
	newAsteroid(s, 2, components.ResourceGold, 50, 1, r3.Vec{X: 60})
	newAsteroid(s, 3, components.ResourceCrystal, 50, 1, r3.Vec{X: 500})

	m := NewMiningSystem()
	got := m.AcquireTarget(s, miner, []components.Entity{2, 3, 1})

	if got != near {
		t.Errorf("AcquireTarget = %d, want %d (nearest)", got, near)
	}
	if s.Laser.Target[miner] != near {
		t.Errorf("laser target = %d, want %d", s.Laser.Target[miner], near)
	}
	if s.Mineable.BeingMined[near] != 1 {
		t.Error("nearest asteroid not flagged being mined")
	}
}

func TestAcquireTargetSkipsDepleted(t *testing.T) {
	s, miner := newMiningStore()
	newAsteroid(s, 1, components.ResourceIron, 0, 1, r3.Vec{X: 10})
	live := newAsteroid(s, 2, components.ResourceIron, 50, 1, r3.Vec{X: 80})

	got := NewMiningSystem().AcquireTarget(s, miner, []components.Entity{1, 2})
	if got != live {
		t.Errorf("AcquireTarget = %d, want %d (depleted skipped)", got, live)
	}
}

func TestAcquireTargetNoneInRange(t *testing.T) {
	s, miner := newMiningStore()
	s.Laser.Target[miner] = 1
	newAsteroid(s, 1, components.ResourceIron, 50, 1, r3.Vec{X: 500})

	got := NewMiningSystem().AcquireTarget(s, miner, []components.Entity{1})
	if got != components.None {
		t.Errorf("AcquireTarget = %d, want None", got)
	}
	if s.Laser.Target[miner] != components.None {
		t.Error("stale target not cleared")
	}
}

func TestMiningProgressRate(t *testing.T) {
	// Iron base rate is 0.5/s; difficulty divides it.
	tests := []struct {
		name       string
		difficulty float64
		dt         float64
		want       float64
	}{
		{"neutral difficulty", 1, 1.0, 0.5},
		{"double difficulty", 2, 1.0, 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, miner := newMiningStore()
			a := newAsteroid(s, 1, components.ResourceIron, 50, tt.difficulty, r3.Vec{X: 30})
			s.Laser.Active[miner] = 1
			s.Laser.Target[miner] = a

			NewMiningSystem().Update(s, []components.Entity{miner}, tt.dt, nil)

			if got := s.Laser.Progress[miner]; math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("progress = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMiningExtractionClampedToCargo(t *testing.T) {
	s, miner := newMiningStore()
	s.Cargo.Capacity[miner] = 10
	a := newAsteroid(s, 1, components.ResourceIron, 50, 1, r3.Vec{X: 30})
	s.Laser.Active[miner] = 1
	s.Laser.Target[miner] = a
	s.Laser.Progress[miner] = 0.99

	// Push progress past 1.0 to trigger one extraction cycle.
	got := NewMiningSystem().Update(s, []components.Entity{miner}, 1.0, nil)

	if len(got) != 1 {
		t.Fatalf("extractions = %d, want 1", len(got))
	}
	if got[0].Amount != 10 {
		t.Errorf("extracted = %v, want 10 (free cargo)", got[0].Amount)
	}
	if s.Mineable.Remaining[a] != 40 {
		t.Errorf("remaining = %v, want 40", s.Mineable.Remaining[a])
	}
	if s.Cargo.Held[components.ResourceIron][miner] != 10 {
		t.Errorf("held iron = %v, want 10", s.Cargo.Held[components.ResourceIron][miner])
	}
	if s.Cargo.Used[miner] != 10 {
		t.Errorf("cargo used = %v, want 10", s.Cargo.Used[miner])
	}
	if s.Laser.Progress[miner] != 0 {
		t.Errorf("progress = %v, want 0 after extraction", s.Laser.Progress[miner])
	}
}

func TestMiningDepletionReleasesTarget(t *testing.T) {
	s, miner := newMiningStore()
	a := newAsteroid(s, 1, components.ResourceIron, 3, 1, r3.Vec{X: 30})
	s.Mineable.BeingMined[a] = 1
	s.Laser.Active[miner] = 1
	s.Laser.Target[miner] = a
	s.Laser.Progress[miner] = 0.99

	got := NewMiningSystem().Update(s, []components.Entity{miner}, 1.0, nil)

	if len(got) != 1 || got[0].Amount != 3 {
		t.Fatalf("extractions = %v, want one of amount 3", got)
	}
	if s.Mineable.Remaining[a] != 0 {
		t.Errorf("remaining = %v, want 0", s.Mineable.Remaining[a])
	}
	if s.Mineable.BeingMined[a] != 0 {
		t.Error("depleted asteroid still flagged being mined")
	}
	if s.Laser.Target[miner] != components.None {
		t.Error("laser still targeting depleted asteroid")
	}
}

func TestMiningFullCargoExtractsNothing(t *testing.T) {
	s, miner := newMiningStore()
	s.Cargo.Capacity[miner] = 10
	s.Cargo.Used[miner] = 10
	a := newAsteroid(s, 1, components.ResourceIron, 50, 1, r3.Vec{X: 30})
	s.Laser.Active[miner] = 1
	s.Laser.Target[miner] = a
	s.Laser.Progress[miner] = 0.99

	got := NewMiningSystem().Update(s, []components.Entity{miner}, 1.0, nil)

	if len(got) != 0 {
		t.Errorf("extractions = %d, want 0 with a full hold", len(got))
	}
	if s.Mineable.Remaining[a] != 50 {
		t.Errorf("remaining = %v, want 50 (untouched)", s.Mineable.Remaining[a])
	}
}

func TestMiningStopReleasesEverything(t *testing.T) {
	s, miner := newMiningStore()
	a := newAsteroid(s, 1, components.ResourceIron, 50, 1, r3.Vec{X: 30})
	s.Mineable.BeingMined[a] = 1
	s.Laser.Active[miner] = 1
	s.Laser.Target[miner] = a
	s.Laser.Progress[miner] = 0.7

	NewMiningSystem().Stop(s, miner)

	if s.Laser.Active[miner] != 0 {
		t.Error("laser still active after Stop")
	}
	if s.Laser.Progress[miner] != 0 {
		t.Errorf("progress = %v, want 0", s.Laser.Progress[miner])
	}
	if s.Laser.Target[miner] != components.None {
		t.Error("target not cleared")
	}
	if s.Mineable.BeingMined[a] != 0 {
		t.Error("asteroid still flagged being mined")
	}
}
