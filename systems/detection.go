package systems

import (
	"github.com/pthm-cable/voidrift/components"
)

// DetectionSystem advances the front half of the enemy state machine:
// IDLE entities wake into PATROL (capturing their spawn origin), and
// PATROL entities that see the player switch to CHASE.
type DetectionSystem struct{}

// NewDetectionSystem creates a detection system.
func NewDetectionSystem() *DetectionSystem {
	return &DetectionSystem{}
}

// Update runs one detection pass over the supplied enemy list.
// An invalid player handle makes the PATROL range check a no-op; IDLE
// entities still wake up so patrols run without a player present.
func (d *DetectionSystem) Update(s *components.Store, enemies []components.Entity, player components.Entity) {
	playerValid := s.InRange(player)

	for _, e := range enemies {
		if !s.InRange(e) {
			continue
		}

		switch s.AI.State[e] {
		case components.StateIdle:
			s.AI.SpawnX[e] = s.Pos.X[e]
			s.AI.SpawnY[e] = s.Pos.Y[e]
			s.AI.SpawnZ[e] = s.Pos.Z[e]
			s.AI.State[e] = components.StatePatrol

		case components.StatePatrol:
			if !playerValid {
				continue
			}
			dist := r3Dist(s, e, player)
			if dist <= s.AI.DetectionRange[e] {
				s.AI.State[e] = components.StateChase
				s.AI.PlayerFound[e] = 1
			}
		}
	}
}

// r3Dist returns the distance between two entities' positions.
func r3Dist(s *components.Store, a, b components.Entity) float64 {
	return dist3(s.Pos.X[a]-s.Pos.X[b], s.Pos.Y[a]-s.Pos.Y[b], s.Pos.Z[a]-s.Pos.Z[b])
}
