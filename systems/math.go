// Package systems contains the per-tick simulation systems. Every system
// operates on caller-supplied entity handle lists against the shared
// component store; none of them discovers entities on its own.
package systems

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

var worldUp = r3.Vec{Y: 1}

// clamp01 clamps v to the [0, 1] range.
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// clampFloat clamps v between minVal and maxVal.
func clampFloat(v, minVal, maxVal float64) float64 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// dist3 returns the Euclidean length of (dx, dy, dz).
func dist3(dx, dy, dz float64) float64 {
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// safeUnit normalizes v, returning the zero vector for degenerate input.
func safeUnit(v r3.Vec) r3.Vec {
	n := r3.Norm(v)
	if n < 1e-9 {
		return r3.Vec{}
	}
	return r3.Scale(1/n, v)
}

// sideAxis returns a unit vector perpendicular to dir in the horizontal
// plane, falling back to +X when dir is (near-)vertical.
func sideAxis(dir r3.Vec) r3.Vec {
	side := r3.Cross(dir, worldUp)
	if r3.Norm2(side) < 1e-9 {
		return r3.Vec{X: 1}
	}
	return safeUnit(side)
}

// axisAngle builds a unit quaternion rotating by angle around axis.
// axis must be unit length.
func axisAngle(axis r3.Vec, angle float64) quat.Number {
	s, c := math.Sincos(angle / 2)
	return quat.Number{Real: c, Imag: axis.X * s, Jmag: axis.Y * s, Kmag: axis.Z * s}
}

// lookRotation builds the facing quaternion for a direction of travel,
// with an optional roll (bank) around the travel axis. Composed as
// yaw * pitch * roll so the bank reads as a cosmetic tilt.
func lookRotation(dir r3.Vec, roll float64) quat.Number {
	d := safeUnit(dir)
	if (d == r3.Vec{}) {
		return quat.Number{Real: 1}
	}

	yaw := math.Atan2(d.X, d.Z)
	pitch := -math.Asin(clampFloat(d.Y, -1, 1))

	q := quat.Mul(axisAngle(r3.Vec{Y: 1}, yaw), axisAngle(r3.Vec{X: 1}, pitch))
	if roll != 0 {
		q = quat.Mul(q, axisAngle(r3.Vec{Z: 1}, roll))
	}
	return q
}
