// Package main tunes enemy and boss parameters toward a target encounter
// balance using Nelder-Mead over headless simulation runs.
package main

import (
	"github.com/pthm-cable/voidrift/config"
)

// ParamSpec defines a single tunable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all tunable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of tunable parameters.
// Structural values (state thresholds, boss caps) stay locked; tuning
// only moves the movement and pressure knobs.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "detection_range", Path: "enemy.detection_range", Min: 300, Max: 1200, Default: 600},
			{Name: "separation_strength", Path: "enemy.separation_strength", Min: 10, Max: 200, Default: 60},
			{Name: "separation_radius_factor", Path: "enemy.separation_radius_factor", Min: 1.0, Max: 5.0, Default: 2.5},
			{Name: "spiral_amplitude", Path: "enemy.spiral_amplitude", Min: 10, Max: 120, Default: 40},
			{Name: "zigzag_amplitude", Path: "enemy.zigzag_amplitude", Min: 10, Max: 150, Default: 50},
			{Name: "jitter_amplitude", Path: "enemy.jitter_amplitude", Min: 5, Max: 100, Default: 35},
			{Name: "queen_orbit_distance", Path: "boss.swarm_queen.orbit_distance", Min: 200, Max: 800, Default: 400},
			{Name: "queen_orbit_speed", Path: "boss.swarm_queen.orbit_speed", Min: 50, Max: 250, Default: 120},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Clamp bounds every value to its spec range.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		val := v[i]
		if val < spec.Min {
			val = spec.Min
		}
		if val > spec.Max {
			val = spec.Max
		}
		clamped[i] = val
	}
	return clamped
}

// ApplyToConfig writes raw parameter values into a config.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, raw []float64) {
	for i, spec := range pv.Specs {
		switch spec.Path {
		case "enemy.detection_range":
			cfg.Enemy.DetectionRange = raw[i]
		case "enemy.separation_strength":
			cfg.Enemy.SeparationStrength = raw[i]
		case "enemy.separation_radius_factor":
			cfg.Enemy.SeparationRadiusFactor = raw[i]
		case "enemy.spiral_amplitude":
			cfg.Enemy.SpiralAmplitude = raw[i]
		case "enemy.zigzag_amplitude":
			cfg.Enemy.ZigzagAmplitude = raw[i]
		case "enemy.jitter_amplitude":
			cfg.Enemy.JitterAmplitude = raw[i]
		case "boss.swarm_queen.orbit_distance":
			cfg.Boss.SwarmQueen.OrbitDistance = raw[i]
		case "boss.swarm_queen.orbit_speed":
			cfg.Boss.SwarmQueen.OrbitSpeed = raw[i]
		}
	}
}
