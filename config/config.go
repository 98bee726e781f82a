// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/voidrift/components"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation tuning parameters.
type Config struct {
	World     WorldConfig     `yaml:"world"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Enemy     EnemyConfig     `yaml:"enemy"`
	Boss      BossConfig      `yaml:"boss"`
	Mining    MiningConfig    `yaml:"mining"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// WorldConfig holds global capacity settings.
type WorldConfig struct {
	MaxEntities int `yaml:"max_entities"` // Hard entity cap; the store never grows
}

// PhysicsConfig holds simulation stepping parameters.
type PhysicsConfig struct {
	DT float64 `yaml:"dt"` // Nominal seconds per tick for fixed-step drivers
}

// EnemyConfig holds enemy AI tuning.
type EnemyConfig struct {
	DetectionRange float64 `yaml:"detection_range"` // Default player detection radius

	EvadeEnterHealth float64 `yaml:"evade_enter_health"` // Health fraction below which CHASE -> EVADE
	EvadeExitHealth  float64 `yaml:"evade_exit_health"`  // Health fraction at which EVADE -> CHASE
	EvadeDuration    float64 `yaml:"evade_duration"`     // Seconds in EVADE before returning regardless

	SeparationRadiusFactor float64 `yaml:"separation_radius_factor"` // Pair interacts within (r1+r2) * factor
	SeparationStrength     float64 `yaml:"separation_strength"`      // Scales the 1/d repulsion

	SpiralAmplitude    float64 `yaml:"spiral_amplitude"`     // Lateral spiral offset (standard subtype)
	SpiralTightenRange float64 `yaml:"spiral_tighten_range"` // Spiral shrinks linearly inside this distance
	FarBandRange       float64 `yaml:"far_band_range"`       // Beyond this: rapid zigzag approach
	CloseBandRange     float64 `yaml:"close_band_range"`     // Inside this: erratic jitter / hit-and-run

	StandardSeparationResponse float64 `yaml:"standard_separation_response"`
	HeavySeparationResponse    float64 `yaml:"heavy_separation_response"`
	SwiftSeparationResponse    float64 `yaml:"swift_separation_response"`

	HeavyWobbleAmplitude float64 `yaml:"heavy_wobble_amplitude"`
	ZigzagFrequency      float64 `yaml:"zigzag_frequency"`
	ZigzagAmplitude      float64 `yaml:"zigzag_amplitude"`
	JitterFrequency      float64 `yaml:"jitter_frequency"`
	JitterAmplitude      float64 `yaml:"jitter_amplitude"`
	BankAngle            float64 `yaml:"bank_angle"` // Max cosmetic roll when turning, radians
}

// BossConfig holds the three boss behavior tunings.
type BossConfig struct {
	Dreadnought  DreadnoughtConfig  `yaml:"dreadnought"`
	PhaseShifter PhaseShifterConfig `yaml:"phase_shifter"`
	SwarmQueen   SwarmQueenConfig   `yaml:"swarm_queen"`
}

// DreadnoughtConfig holds tank/beam boss parameters.
type DreadnoughtConfig struct {
	SpeedFactor    float64 `yaml:"speed_factor"`     // Fraction of nominal speed
	BeamChargeTime float64 `yaml:"beam_charge_time"` // Seconds of charge before the beam can fire
	BeamTotalTime  float64 `yaml:"beam_total_time"`  // Charge seconds at which the beam cycle resets
	BeamRange      float64 `yaml:"beam_range"`       // Player must be inside this to fire
	SpawnInterval  float64 `yaml:"spawn_interval"`   // Seconds between minion spawns
	MaxMinions     int     `yaml:"max_minions"`
}

// PhaseShifterConfig holds teleport/zigzag boss parameters.
type PhaseShifterConfig struct {
	SpeedFactor     float64 `yaml:"speed_factor"`
	PhaseInterval   float64 `yaml:"phase_interval"` // Seconds between phase shifts
	PhaseDuration   float64 `yaml:"phase_duration"` // Seconds of invulnerability per shift
	ZigzagFrequency float64 `yaml:"zigzag_frequency"`
	ZigzagAmplitude float64 `yaml:"zigzag_amplitude"`
}

// SwarmQueenConfig holds orbit/swarm boss parameters.
type SwarmQueenConfig struct {
	OrbitDistance   float64 `yaml:"orbit_distance"` // Target distance from the player
	OrbitGain       float64 `yaml:"orbit_gain"`     // Proportional gain on distance error
	OrbitSpeed      float64 `yaml:"orbit_speed"`    // Tangential orbital speed
	SpawnInterval   float64 `yaml:"spawn_interval"`
	MinionsPerCycle int     `yaml:"minions_per_cycle"`
	MaxMinions      int     `yaml:"max_minions"`
}

// MiningConfig holds extraction rates per resource.
type MiningConfig struct {
	Rates MiningRates `yaml:"rates"`
}

// MiningRates holds base progress per second for each resource.
// Effective rate is base rate divided by the asteroid's difficulty.
type MiningRates struct {
	Iron    float64 `yaml:"iron"`
	Gold    float64 `yaml:"gold"`
	Crystal float64 `yaml:"crystal"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	// MiningRate is the base rate indexed by components.Resource.
	MiningRate [components.NumResources]float64
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Set installs a configuration as the global one, recomputing derived
// values. Tooling that evaluates candidate configs swaps them in here
// before constructing a simulation.
func Set(cfg *Config) {
	cfg.computeDerived()
	global = cfg
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.computeDerived()

	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.MiningRate[components.ResourceIron] = c.Mining.Rates.Iron
	c.Derived.MiningRate[components.ResourceGold] = c.Mining.Rates.Gold
	c.Derived.MiningRate[components.ResourceCrystal] = c.Mining.Rates.Crystal
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
