package systems

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/voidrift/components"
	"github.com/pthm-cable/voidrift/config"
)

// Extraction records one completed mining cycle for the driver/telemetry.
type Extraction struct {
	Miner    components.Entity
	Asteroid components.Entity
	Resource components.Resource
	Amount   float64
}

// MiningSystem handles target acquisition, progress accrual, and
// capacity-limited extraction. Base rates are per resource type; the
// asteroid's difficulty divides the effective rate, so difficulty 1 is
// neutral and higher values mine slower.
type MiningSystem struct {
	rates [components.NumResources]float64
}

// NewMiningSystem creates a mining system from the loaded config.
func NewMiningSystem() *MiningSystem {
	return &MiningSystem{rates: config.Cfg().Derived.MiningRate}
}

// AcquireTarget picks the closest candidate within the miner's range,
// marks it being mined, and records it as the laser target. Candidates
// out of range or already exhausted are ignored; with none in range the
// target is cleared. Ties go to the first-found closest.
func (m *MiningSystem) AcquireTarget(s *components.Store, miner components.Entity, candidates []components.Entity) components.Entity {
	if !s.InRange(miner) {
		return components.None
	}

	pos := s.Position(miner)
	best := components.None
	bestDist := s.Laser.Range[miner]

	for _, a := range candidates {
		if !s.InRange(a) || s.Mineable.Remaining[a] <= 0 {
			continue
		}
		d := r3.Norm(r3.Sub(s.Position(a), pos))
		if d <= bestDist {
			best = a
			bestDist = d
		}
	}

	s.Laser.Target[miner] = best
	if best != components.None {
		s.Mineable.BeingMined[best] = 1
	}
	return best
}

// Update accrues progress for active miners and extracts once a cycle
// completes. Extraction is clamped to both the asteroid's remaining
// amount and the miner's free cargo capacity; running the hold full is
// valid and simply extracts less.
func (m *MiningSystem) Update(s *components.Store, miners []components.Entity, dt float64, dst []Extraction) []Extraction {
	for _, e := range miners {
		if !s.InRange(e) || s.Laser.Active[e] == 0 {
			continue
		}
		target := s.Laser.Target[e]
		if !s.InRange(target) {
			continue
		}

		res := s.Mineable.Resource[target]
		rate := m.rates[res]
		if diff := s.Mineable.Difficulty[target]; diff > 0 {
			rate /= diff
		}
		s.Laser.Progress[e] += rate * dt

		if s.Laser.Progress[e] < 1 {
			continue
		}
		s.Laser.Progress[e] = 0

		amount := s.Mineable.Remaining[target]
		if free := s.Cargo.Capacity[e] - s.Cargo.Used[e]; amount > free {
			amount = free
		}
		if amount <= 0 {
			continue
		}

		s.Cargo.Held[res][e] += amount
		s.Cargo.Used[e] += amount
		s.Mineable.Remaining[target] -= amount

		if s.Mineable.Remaining[target] <= 0 {
			s.Mineable.BeingMined[target] = 0
			s.Laser.Target[e] = components.None
		}

		dst = append(dst, Extraction{Miner: e, Asteroid: target, Resource: res, Amount: amount})
	}
	return dst
}

// Stop deactivates a miner's laser, zeroing progress and releasing the
// target asteroid's being-mined flag.
func (m *MiningSystem) Stop(s *components.Store, miner components.Entity) {
	if !s.InRange(miner) {
		return
	}
	s.Laser.Active[miner] = 0
	s.Laser.Progress[miner] = 0
	if t := s.Laser.Target[miner]; s.InRange(t) {
		s.Mineable.BeingMined[t] = 0
	}
	s.Laser.Target[miner] = components.None
}
