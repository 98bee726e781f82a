package systems

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/voidrift/components"
)

// ApplyDrag decays velocity multiplicatively by each entity's drag factor.
// This is the thrust-side pre-pass: the integrator itself stays drag-free.
func ApplyDrag(s *components.Store, entities []components.Entity, dt float64) {
	for _, e := range entities {
		if !s.InRange(e) || s.Body.Kinematic[e] != 0 {
			continue
		}
		decay := 1 - s.Body.Drag[e]*dt
		if decay < 0 {
			decay = 0
		}
		s.Vel.X[e] *= decay
		s.Vel.Y[e] *= decay
		s.Vel.Z[e] *= decay
	}
}

// IntegrateForces applies accumulated forces to velocity (semi-implicit
// Euler) and clears the accumulators. Mass must be positive; the spawner
// guarantees it and this loop does not defend against zero.
func IntegrateForces(s *components.Store, entities []components.Entity, dt float64) {
	for _, e := range entities {
		if !s.InRange(e) {
			continue
		}
		if s.Body.Kinematic[e] != 0 {
			s.ClearForce(e)
			continue
		}
		accel := r3.Scale(dt/s.Body.Mass[e], s.ForceVec(e))
		s.SetVelocity(e, r3.Add(s.Velocity(e), accel))
		s.ClearForce(e)
	}
}

// IntegratePositions advances positions from velocity.
func IntegratePositions(s *components.Store, entities []components.Entity, dt float64) {
	for _, e := range entities {
		if !s.InRange(e) {
			continue
		}
		s.SetPosition(e, r3.Add(s.Position(e), r3.Scale(dt, s.Velocity(e))))
	}
}
