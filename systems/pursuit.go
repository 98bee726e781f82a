package systems

import (
	"math"

	"github.com/ojrac/opensimplex-go"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/voidrift/components"
	"github.com/pthm-cable/voidrift/config"
)

// PursuitSystem runs the back half of the enemy state machine: CHASE
// movement with per-subtype patterns, and EVADE with its hysteresis band.
// Enemies enter EVADE below 25% hull and leave it either after the evade
// timer elapses or once hull recovers to 40%, whichever comes first. The
// gap between the two thresholds stops the state from flapping.
type PursuitSystem struct {
	evadeEnter    float64
	evadeExit     float64
	evadeDuration float64

	spiralAmplitude    float64
	spiralTightenRange float64
	farBand            float64
	closeBand          float64

	standardResponse float64
	heavyResponse    float64
	swiftResponse    float64

	heavyWobble float64
	zigzagFreq  float64
	zigzagAmp   float64
	jitterFreq  float64
	jitterAmp   float64
	bankAngle   float64

	noise opensimplex.Noise
	time  float64
}

// NewPursuitSystem creates a pursuit system from the loaded config.
func NewPursuitSystem(seed int64) *PursuitSystem {
	cfg := config.Cfg().Enemy
	return &PursuitSystem{
		evadeEnter:         cfg.EvadeEnterHealth,
		evadeExit:          cfg.EvadeExitHealth,
		evadeDuration:      cfg.EvadeDuration,
		spiralAmplitude:    cfg.SpiralAmplitude,
		spiralTightenRange: cfg.SpiralTightenRange,
		farBand:            cfg.FarBandRange,
		closeBand:          cfg.CloseBandRange,
		standardResponse:   cfg.StandardSeparationResponse,
		heavyResponse:      cfg.HeavySeparationResponse,
		swiftResponse:      cfg.SwiftSeparationResponse,
		heavyWobble:        cfg.HeavyWobbleAmplitude,
		zigzagFreq:         cfg.ZigzagFrequency,
		zigzagAmp:          cfg.ZigzagAmplitude,
		jitterFreq:         cfg.JitterFrequency,
		jitterAmp:          cfg.JitterAmplitude,
		bankAngle:          cfg.BankAngle,
		noise:              opensimplex.New(seed),
	}
}

// Update advances CHASE and EVADE entities in the supplied enemy list.
// Separation forces are consumed as computed this tick, so the separation
// system must run first.
func (p *PursuitSystem) Update(s *components.Store, enemies []components.Entity, player components.Entity, dt float64) {
	p.time += dt
	playerValid := s.InRange(player)

	for _, e := range enemies {
		if !s.InRange(e) {
			continue
		}
		s.AI.TimeAlive[e] += dt

		switch s.AI.State[e] {
		case components.StateChase:
			p.chase(s, e, player, playerValid)
		case components.StateEvade:
			p.evade(s, e, player, playerValid, dt)
		}
	}
}

// chase steers e toward the player using its subtype movement pattern.
func (p *PursuitSystem) chase(s *components.Store, e, player components.Entity, playerValid bool) {
	if s.Health.Max[e] > 0 && s.Health.Current[e]/s.Health.Max[e] < p.evadeEnter {
		s.AI.State[e] = components.StateEvade
		s.AI.StateTimer[e] = 0
		return
	}
	if !playerValid {
		return
	}

	toPlayer := r3.Sub(s.Position(player), s.Position(e))
	dist := r3.Norm(toPlayer)
	dir := safeUnit(toPlayer)
	speed := s.AI.Speed[e]

	var offset r3.Vec
	response := p.standardResponse
	switch s.AI.Subtype[e] {
	case components.SubtypeHeavy:
		offset = p.heavyOffset(e, dir)
		response = p.heavyResponse
	case components.SubtypeSwift:
		offset = p.swiftOffset(s, e, dir, dist)
		response = p.swiftResponse
	default:
		offset = p.standardOffset(s, e, dir, dist)
	}

	steer := safeUnit(r3.Add(dir, r3.Scale(1/math.Max(speed, 1e-9), offset)))
	sepBlend := r3.Scale(s.AI.SeparationInfluence[e]*response, s.SeparationVec(e))
	vel := r3.Add(r3.Scale(speed, steer), sepBlend)
	s.SetVelocity(e, vel)

	p.face(s, e, vel, dir)
}

// standardOffset is the spiral approach: a sinusoidal lateral/vertical
// offset around the direct line, tightening as the enemy closes in, with
// drone-style bands layered on by distance.
func (p *PursuitSystem) standardOffset(s *components.Store, e components.Entity, dir r3.Vec, dist float64) r3.Vec {
	side := sideAxis(dir)
	up := safeUnit(r3.Cross(dir, side))

	amp := p.spiralAmplitude * clamp01(dist/p.spiralTightenRange)
	phase := s.AI.SpiralPhase[e] + p.time*s.AI.SpiralRate[e]
	offset := r3.Add(r3.Scale(math.Sin(phase)*amp, side), r3.Scale(math.Cos(phase)*amp, up))

	switch {
	case dist > p.farBand:
		// Rapid zigzag while closing from far out.
		offset = r3.Add(offset, r3.Scale(math.Sin(p.time*p.zigzagFreq+float64(e))*p.zigzagAmp, side))
	case dist > p.closeBand:
		// Strafing orbit at medium range: bias sideways around the target.
		offset = r3.Add(offset, r3.Scale(p.zigzagAmp*0.6, side))
	default:
		// Erratic evasive jitter up close.
		offset = r3.Add(offset, p.jitter(e, p.jitterAmp, side, up))
	}
	return offset
}

// heavyOffset is the tank approach: near-direct with a slow, small wobble.
func (p *PursuitSystem) heavyOffset(e components.Entity, dir r3.Vec) r3.Vec {
	side := sideAxis(dir)
	return r3.Scale(math.Sin(p.time*1.3+float64(e))*p.heavyWobble, side)
}

// swiftOffset is the skirmisher approach: high-frequency zigzag, a vertical
// dodge, and a hit-and-run strafe once inside close range.
func (p *PursuitSystem) swiftOffset(s *components.Store, e components.Entity, dir r3.Vec, dist float64) r3.Vec {
	side := sideAxis(dir)
	up := safeUnit(r3.Cross(dir, side))

	t := p.time*p.zigzagFreq + s.AI.SpiralPhase[e]
	offset := r3.Add(r3.Scale(math.Sin(t)*p.zigzagAmp, side),
		r3.Scale(math.Cos(t*0.7)*p.zigzagAmp*0.5, up))

	if dist < p.closeBand {
		// Hit-and-run: swing hard sideways instead of overshooting.
		offset = r3.Add(r3.Add(offset, r3.Scale(p.zigzagAmp*1.5, side)), p.jitter(e, p.jitterAmp*0.5, side, up))
	}
	return offset
}

// evade steers e away from the player until the hysteresis window closes.
func (p *PursuitSystem) evade(s *components.Store, e, player components.Entity, playerValid bool, dt float64) {
	s.AI.StateTimer[e] += dt

	recovered := s.Health.Max[e] > 0 && s.Health.Current[e]/s.Health.Max[e] >= p.evadeExit
	if s.AI.StateTimer[e] >= p.evadeDuration || recovered {
		s.AI.State[e] = components.StateChase
		s.AI.StateTimer[e] = 0
		return
	}

	speed := s.AI.Speed[e]
	var flee r3.Vec
	if playerValid {
		flee = safeUnit(r3.Sub(s.Position(e), s.Position(player)))
	} else {
		// No player to flee from: pick an evasive lateral heading from noise.
		n := p.noise.Eval2(p.time*p.jitterFreq, float64(e))
		flee = safeUnit(r3.Vec{X: math.Cos(n * math.Pi), Z: math.Sin(n * math.Pi)})
	}

	side := sideAxis(flee)
	up := safeUnit(r3.Cross(flee, side))
	offset := p.jitter(e, p.jitterAmp, side, up)
	if s.AI.Subtype[e] == components.SubtypeSwift {
		offset = r3.Add(offset, r3.Scale(math.Sin(p.time*p.zigzagFreq)*p.zigzagAmp*0.5, up))
	}

	steer := safeUnit(r3.Add(flee, r3.Scale(1/math.Max(speed, 1e-9), offset)))
	vel := r3.Scale(speed, steer)
	s.SetVelocity(e, vel)

	p.face(s, e, vel, flee)
}

// jitter samples smooth noise into an erratic lateral/vertical offset.
func (p *PursuitSystem) jitter(e components.Entity, amp float64, side, up r3.Vec) r3.Vec {
	nx := p.noise.Eval2(p.time*p.jitterFreq, float64(e)*17.3)
	ny := p.noise.Eval2(p.time*p.jitterFreq, float64(e)*17.3+512)
	return r3.Add(r3.Scale(nx*amp, side), r3.Scale(ny*amp, up))
}

// face orients e along its travel direction with a cosmetic bank
// proportional to how hard it is steering sideways.
func (p *PursuitSystem) face(s *components.Store, e components.Entity, vel, dir r3.Vec) {
	if s.Body.FreezeRot[e] != 0 {
		return
	}
	travel := safeUnit(vel)
	if (travel == r3.Vec{}) {
		return
	}
	roll := -r3.Dot(travel, sideAxis(dir)) * p.bankAngle
	s.SetRotation(e, lookRotation(travel, roll))
}
