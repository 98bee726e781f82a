package systems

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/voidrift/components"
)

// SeparationSystem computes pairwise flocking repulsion between enemies.
// The output is transient: every SeparationForce row touched by the list
// is rebuilt from scratch each tick.
//
// The scan is O(n²) over the supplied list, which is fine at tens of
// enemies. A spatial grid should replace the pairwise loop if counts ever
// grow, without changing the force semantics.
type SeparationSystem struct {
	radiusFactor float64
	strength     float64
}

// NewSeparationSystem creates a separation system from config tuning.
func NewSeparationSystem(radiusFactor, strength float64) *SeparationSystem {
	return &SeparationSystem{radiusFactor: radiusFactor, strength: strength}
}

// Update recomputes separation forces for the supplied enemy list.
// Each interacting pair receives equal and opposite contributions
// proportional to 1/distance.
func (sep *SeparationSystem) Update(s *components.Store, enemies []components.Entity) {
	for _, e := range enemies {
		if !s.InRange(e) {
			continue
		}
		s.Separation.X[e] = 0
		s.Separation.Y[e] = 0
		s.Separation.Z[e] = 0
	}

	for i := 0; i < len(enemies); i++ {
		a := enemies[i]
		if !s.InRange(a) {
			continue
		}
		for j := i + 1; j < len(enemies); j++ {
			b := enemies[j]
			if !s.InRange(b) {
				continue
			}

			delta := r3.Sub(s.Position(b), s.Position(a))
			dist := r3.Norm(delta)
			reach := (s.Collider.Radius[a] + s.Collider.Radius[b]) * sep.radiusFactor
			if dist >= reach || dist < 1e-9 {
				continue
			}

			// Repulsion falls off as 1/distance, pushing both members apart.
			push := r3.Scale(sep.strength/(dist*dist), delta)

			s.Separation.X[a] -= push.X
			s.Separation.Y[a] -= push.Y
			s.Separation.Z[a] -= push.Z
			s.Separation.X[b] += push.X
			s.Separation.Y[b] += push.Y
			s.Separation.Z[b] += push.Z
		}
	}
}
