package systems

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/voidrift/components"
)

// HitEvent records one projectile-target overlap found by collision
// detection. Damage is applied in a separate pass so detection stays
// side-effect free.
type HitEvent struct {
	Projectile components.Entity
	Target     components.Entity
	Pos        r3.Vec
}

// CollideProjectiles runs the pairwise sphere test between a projectile
// list and a target list. A hit registers when the spheres overlap. Hits
// are appended to dst so the driver can reuse a buffer across ticks.
func CollideProjectiles(s *components.Store, projectiles, targets []components.Entity, dst []HitEvent) []HitEvent {
	for _, p := range projectiles {
		if !s.InRange(p) {
			continue
		}
		pp := s.Position(p)
		pr := s.Collider.Radius[p]

		for _, t := range targets {
			if !s.InRange(t) || t == p {
				continue
			}
			reach := pr + s.Collider.Radius[t]
			if r3.Norm(r3.Sub(s.Position(t), pp)) < reach {
				dst = append(dst, HitEvent{Projectile: p, Target: t, Pos: pp})
			}
		}
	}
	return dst
}

// ApplyHits applies shield-then-hull damage for each hit event.
// Effective damage is the projectile's weapon damage scaled down by the
// target's resistance; the shield absorbs first and the remainder comes
// off the hull, floored at zero. Any hit resets the regen delay timer.
// Phase-active bosses are invulnerable and take nothing.
func ApplyHits(s *components.Store, hits []HitEvent) {
	for _, h := range hits {
		if !s.InRange(h.Projectile) || !s.InRange(h.Target) {
			continue
		}
		if s.Boss.PhaseActive[h.Target] != 0 {
			continue
		}

		damage := s.Weapon.Damage[h.Projectile] * (1 - s.Health.DamageResistance[h.Target])
		if damage <= 0 {
			continue
		}

		if shield := s.Health.Shield[h.Target]; shield >= damage {
			s.Health.Shield[h.Target] = shield - damage
		} else {
			s.Health.Shield[h.Target] = 0
			hull := s.Health.Current[h.Target] - (damage - shield)
			if hull < 0 {
				hull = 0
			}
			s.Health.Current[h.Target] = hull
		}
		s.Health.TimeSinceLastDamage[h.Target] = 0
	}
}

// RegenShields regenerates shields for entities whose regen delay has
// passed, then advances the since-damage timers. The gate is checked
// before the timer advances, so an entity damaged this tick regenerates
// nothing until the full delay elapses again.
func RegenShields(s *components.Store, entities []components.Entity, dt float64) {
	for _, e := range entities {
		if !s.InRange(e) {
			continue
		}
		if s.Health.TimeSinceLastDamage[e] >= s.Health.ShieldRegenDelay[e] {
			shield := s.Health.Shield[e] + s.Health.ShieldRegenRate[e]*dt
			if shield > s.Health.MaxShield[e] {
				shield = s.Health.MaxShield[e]
			}
			s.Health.Shield[e] = shield
		}
		s.Health.TimeSinceLastDamage[e] += dt
	}
}

// ExpireLifetimes ages every entity in the list and appends the ones past
// their max age to dst for the driver to destroy. MaxAge of -1 means the
// entity never expires.
func ExpireLifetimes(s *components.Store, entities []components.Entity, dt float64, dst []components.Entity) []components.Entity {
	for _, e := range entities {
		if !s.InRange(e) {
			continue
		}
		s.Lifetime.Age[e] += dt
		if s.Lifetime.MaxAge[e] < 0 {
			continue
		}
		if s.Lifetime.Age[e] > s.Lifetime.MaxAge[e] {
			dst = append(dst, e)
		}
	}
	return dst
}
