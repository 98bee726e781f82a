package systems

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/voidrift/components"
)

func newChasingEnemy(s *components.Store, e, player components.Entity) {
	s.AI.State[e] = components.StateChase
	s.AI.Speed[e] = 100
	s.AI.SeparationInfluence[e] = 1
	s.Health.Current[e] = 100
	s.Health.Max[e] = 100
	s.SetPosition(player, r3.Vec{X: 300})
}

func TestChaseEntersEvadeBelowThreshold(t *testing.T) {
	tests := []struct {
		name   string
		health float64
		want   components.AIState
	}{
		{"well below", 20, components.StateEvade},
		{"just below", 24.9, components.StateEvade},
		{"exactly at threshold", 25, components.StateChase},
		{"above", 50, components.StateChase},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := components.NewStore(2)
			e := components.Entity(0)
			player := components.Entity(1)
			newChasingEnemy(s, e, player)
			s.Health.Current[e] = tt.health

			NewPursuitSystem(1).Update(s, []components.Entity{e}, player, 0.016)

			if got := s.AI.State[e]; got != tt.want {
				t.Errorf("state at %v%% health = %v, want %v", tt.health, got, tt.want)
			}
		})
	}
}

func TestEvadeExitsOnTimer(t *testing.T) {
	s := components.NewStore(2)
	e := components.Entity(0)
	player := components.Entity(1)
	newChasingEnemy(s, e, player)
	s.Health.Current[e] = 20
	s.AI.State[e] = components.StateEvade
	s.AI.StateTimer[e] = 0

	p := NewPursuitSystem(1)
	list := []components.Entity{e}

	// Health stays below the exit threshold the whole time, so only the
	// timer can end the evade.
	p.Update(s, list, player, 1.0)
	p.Update(s, list, player, 1.0)
	if got := s.AI.State[e]; got != components.StateEvade {
		t.Fatalf("state at 2.0s = %v, want evade", got)
	}

	p.Update(s, list, player, 1.0)
	if got := s.AI.State[e]; got != components.StateChase {
		t.Errorf("state at 3.0s = %v, want chase", got)
	}
	if got := s.AI.StateTimer[e]; got != 0 {
		t.Errorf("stateTimer after exit = %v, want 0", got)
	}
}

func TestEvadeExitsOnRecovery(t *testing.T) {
	s := components.NewStore(2)
	e := components.Entity(0)
	player := components.Entity(1)
	newChasingEnemy(s, e, player)
	s.AI.State[e] = components.StateEvade
	s.AI.StateTimer[e] = 0

	p := NewPursuitSystem(1)
	list := []components.Entity{e}

	// At 30% the hysteresis band holds the evade even though 30% > 25%.
	s.Health.Current[e] = 30
	p.Update(s, list, player, 0.1)
	if got := s.AI.State[e]; got != components.StateEvade {
		t.Fatalf("state at 30%% health = %v, want evade (hysteresis)", got)
	}

	s.Health.Current[e] = 40
	p.Update(s, list, player, 0.1)
	if got := s.AI.State[e]; got != components.StateChase {
		t.Errorf("state at 40%% health = %v, want chase", got)
	}
}

func TestEvadeMovesAwayFromPlayer(t *testing.T) {
	s := components.NewStore(2)
	e := components.Entity(0)
	player := components.Entity(1)
	newChasingEnemy(s, e, player)
	s.Health.Current[e] = 10
	s.AI.State[e] = components.StateEvade

	NewPursuitSystem(1).Update(s, []components.Entity{e}, player, 0.016)

	// Player is at +X; fleeing velocity must have a negative X component.
	if got := s.Vel.X[e]; got >= 0 {
		t.Errorf("evade velocity X = %v, want negative (away from player)", got)
	}
}

func TestChaseMovesTowardPlayerAtSpeed(t *testing.T) {
	for _, subtype := range []components.Subtype{
		components.SubtypeStandard, components.SubtypeHeavy, components.SubtypeSwift,
	} {
		s := components.NewStore(2)
		e := components.Entity(0)
		player := components.Entity(1)
		newChasingEnemy(s, e, player)
		s.AI.Subtype[e] = subtype

		NewPursuitSystem(1).Update(s, []components.Entity{e}, player, 0.016)

		vel := s.Velocity(e)
		if vel.X <= 0 {
			t.Errorf("subtype %d: velocity X = %v, want positive (toward player)", subtype, vel.X)
		}
		// No separation force in play, so speed is exactly the stat.
		if got := r3.Norm(vel); math.Abs(got-100) > 1e-6 {
			t.Errorf("subtype %d: |velocity| = %v, want 100", subtype, got)
		}
	}
}

func TestChaseBlendsSeparation(t *testing.T) {
	s := components.NewStore(2)
	e := components.Entity(0)
	player := components.Entity(1)
	newChasingEnemy(s, e, player)
	s.Separation.Y[e] = 40

	NewPursuitSystem(1).Update(s, []components.Entity{e}, player, 0.016)

	// Standard response is 1.0, so the full force lands in the velocity.
	base := r3.Sub(s.Velocity(e), r3.Vec{Y: 40})
	if got := r3.Norm(base); math.Abs(got-100) > 1e-6 {
		t.Errorf("steering speed without separation = %v, want 100", got)
	}
}

func TestPatrolDoesNotMove(t *testing.T) {
	s := components.NewStore(2)
	e := components.Entity(0)
	player := components.Entity(1)
	newChasingEnemy(s, e, player)
	s.AI.State[e] = components.StatePatrol

	NewPursuitSystem(1).Update(s, []components.Entity{e}, player, 0.016)

	if got := s.Velocity(e); got != (r3.Vec{}) {
		t.Errorf("patrol velocity = %v, want zero", got)
	}
	if got := s.AI.TimeAlive[e]; got != 0.016 {
		t.Errorf("timeAlive = %v, want 0.016", got)
	}
}
