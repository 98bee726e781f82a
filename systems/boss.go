package systems

import (
	"math"

	"github.com/ojrac/opensimplex-go"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/voidrift/components"
	"github.com/pthm-cable/voidrift/config"
)

// SpawnIntent asks the frame driver to create one minion near a boss.
// The core never creates entities itself; intents are the only side
// channel out of the boss state machines.
type SpawnIntent struct {
	Boss     components.Entity
	BossType components.BossType
	Pos      r3.Vec
}

// BossSystem runs the three scripted encounter behaviors. Bosses do not
// use the IDLE/PATROL/CHASE/EVADE machine; each boss type is its own
// timer-driven script over the shared movement primitives, and multiple
// bosses in one list update independently.
type BossSystem struct {
	dread config.DreadnoughtConfig
	shift config.PhaseShifterConfig
	queen config.SwarmQueenConfig

	noise opensimplex.Noise
	time  float64
}

// NewBossSystem creates a boss system from the loaded config.
func NewBossSystem(seed int64) *BossSystem {
	cfg := config.Cfg().Boss
	return &BossSystem{
		dread: cfg.Dreadnought,
		shift: cfg.PhaseShifter,
		queen: cfg.SwarmQueen,
		noise: opensimplex.New(seed),
	}
}

// Update advances every boss in the list and returns the minion spawns
// the driver should perform this tick.
func (b *BossSystem) Update(s *components.Store, bosses []components.Entity, player components.Entity, dt float64) []SpawnIntent {
	var intents []SpawnIntent
	b.time += dt
	playerValid := s.InRange(player)

	for _, e := range bosses {
		if !s.InRange(e) {
			continue
		}
		s.AI.TimeAlive[e] += dt

		switch s.Boss.Type[e] {
		case components.BossDreadnought:
			intents = b.updateDreadnought(s, e, player, playerValid, dt, intents)
		case components.BossPhaseShifter:
			b.updatePhaseShifter(s, e, player, playerValid, dt)
		case components.BossSwarmQueen:
			intents = b.updateSwarmQueen(s, e, player, playerValid, dt, intents)
		}
	}
	return intents
}

// updateDreadnought is the tank archetype: slow direct advance, a charged
// beam that only fires with the player in range, and a slow minion drip.
func (b *BossSystem) updateDreadnought(s *components.Store, e, player components.Entity, playerValid bool, dt float64, intents []SpawnIntent) []SpawnIntent {
	if playerValid {
		dir := safeUnit(r3.Sub(s.Position(player), s.Position(e)))
		vel := r3.Scale(s.AI.Speed[e]*b.dread.SpeedFactor, dir)
		s.SetVelocity(e, vel)
		b.faceBoss(s, e, vel)
	}

	// Beam cycle: charge always accrues; firing waits for the player to be
	// in range, and the whole cycle resets once the total window elapses.
	s.Boss.BeamChargeTime[e] += dt
	if s.Boss.BeamChargeTime[e] >= b.dread.BeamTotalTime {
		s.Boss.BeamActive[e] = 0
		s.Boss.BeamChargeTime[e] = 0
	} else if s.Boss.BeamChargeTime[e] >= b.dread.BeamChargeTime && s.Boss.BeamActive[e] == 0 {
		if playerValid && r3Dist(s, e, player) <= b.dread.BeamRange {
			s.Boss.BeamActive[e] = 1
		}
	}

	s.Boss.SpawnCooldown[e] += dt
	if s.Boss.SpawnCooldown[e] >= b.dread.SpawnInterval && int(s.Boss.MinionsSpawned[e]) < b.dread.MaxMinions {
		intents = append(intents, SpawnIntent{Boss: e, BossType: components.BossDreadnought, Pos: b.spawnPoint(s, e, 0)})
		s.Boss.MinionsSpawned[e]++
		s.Boss.SpawnCooldown[e] = 0
	}
	return intents
}

// updatePhaseShifter is the skirmisher archetype: fast zigzag approach and
// a periodic invulnerability phase.
func (b *BossSystem) updatePhaseShifter(s *components.Store, e, player components.Entity, playerValid bool, dt float64) {
	if playerValid {
		dir := safeUnit(r3.Sub(s.Position(player), s.Position(e)))
		side := sideAxis(dir)
		zig := r3.Scale(math.Sin(b.time*b.shift.ZigzagFrequency+float64(e))*b.shift.ZigzagAmplitude, side)
		vel := r3.Add(r3.Scale(s.AI.Speed[e]*b.shift.SpeedFactor, safeUnit(dir)), zig)
		s.SetVelocity(e, vel)
		b.faceBoss(s, e, vel)
	}

	s.Boss.PhaseTimer[e] += dt
	if s.Boss.PhaseActive[e] == 0 {
		if s.Boss.PhaseTimer[e] >= b.shift.PhaseInterval {
			s.Boss.PhaseActive[e] = 1
			s.Boss.PhaseTimer[e] = 0
		}
	} else if s.Boss.PhaseTimer[e] >= b.shift.PhaseDuration {
		s.Boss.PhaseActive[e] = 0
		s.Boss.PhaseTimer[e] = 0
	}
}

// updateSwarmQueen holds a target orbit distance with a proportional
// controller plus a circular orbital component, and spawns minions in pairs.
func (b *BossSystem) updateSwarmQueen(s *components.Store, e, player components.Entity, playerValid bool, dt float64, intents []SpawnIntent) []SpawnIntent {
	if playerValid {
		toPlayer := r3.Sub(s.Position(player), s.Position(e))
		dist := r3.Norm(toPlayer)
		radial := safeUnit(toPlayer)

		// Positive error closes in, negative backs off.
		radialVel := r3.Scale((dist-b.queen.OrbitDistance)*b.queen.OrbitGain, radial)
		tangent := safeUnit(r3.Cross(radial, worldUp))
		vel := r3.Add(radialVel, r3.Scale(b.queen.OrbitSpeed, tangent))
		s.SetVelocity(e, vel)
		b.faceBoss(s, e, vel)
	}

	s.Boss.SpawnCooldown[e] += dt
	if s.Boss.SpawnCooldown[e] >= b.queen.SpawnInterval {
		remaining := b.queen.MaxMinions - int(s.Boss.MinionsSpawned[e])
		count := b.queen.MinionsPerCycle
		if count > remaining {
			count = remaining
		}
		if count > 0 {
			for i := 0; i < count; i++ {
				intents = append(intents, SpawnIntent{Boss: e, BossType: components.BossSwarmQueen, Pos: b.spawnPoint(s, e, i)})
			}
			s.Boss.MinionsSpawned[e] += int32(count)
			s.Boss.SpawnCooldown[e] = 0
		}
	}
	return intents
}

// spawnPoint picks a noisy offset near the boss for a minion to appear at.
func (b *BossSystem) spawnPoint(s *components.Store, e components.Entity, i int) r3.Vec {
	angle := b.noise.Eval2(b.time, float64(e)*31+float64(i)) * math.Pi
	r := s.Collider.Radius[e]*2 + 20
	return r3.Add(s.Position(e), r3.Vec{X: math.Cos(angle) * r, Y: 0, Z: math.Sin(angle) * r})
}

// faceBoss orients a boss along its travel direction, no banking.
func (b *BossSystem) faceBoss(s *components.Store, e components.Entity, vel r3.Vec) {
	if s.Body.FreezeRot[e] != 0 {
		return
	}
	if travel := safeUnit(vel); (travel != r3.Vec{}) {
		s.SetRotation(e, lookRotation(travel, 0))
	}
}
