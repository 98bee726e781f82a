// Package components defines the struct-of-arrays component tables for the simulation.
//
// Every entity is an integer handle into fixed-capacity parallel arrays.
// There is no per-entity object: an entity is the union of the component
// rows its spawner filled in. Component values are not zeroed when a
// handle is recycled; the next spawner overwrites whatever it needs.
package components

// Entity is an integer handle used to index every component array.
type Entity int32

// None marks an absent or invalid entity reference.
const None Entity = -1

// AIState is the enemy state machine state.
type AIState int32

const (
	StateIdle AIState = iota
	StatePatrol
	StateChase
	StateEvade
)

// String returns the state name for logging.
func (s AIState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePatrol:
		return "patrol"
	case StateChase:
		return "chase"
	case StateEvade:
		return "evade"
	}
	return "unknown"
}

// Subtype selects an enemy movement-behavior variant.
type Subtype int32

const (
	SubtypeStandard Subtype = iota
	SubtypeHeavy
	SubtypeSwift
)

// BossType selects one of the scripted boss encounter behaviors.
type BossType int32

const (
	BossDreadnought BossType = iota
	BossPhaseShifter
	BossSwarmQueen
)

// String returns the boss name for logging.
func (b BossType) String() string {
	switch b {
	case BossDreadnought:
		return "dreadnought"
	case BossPhaseShifter:
		return "phase_shifter"
	case BossSwarmQueen:
		return "swarm_queen"
	}
	return "unknown"
}

// Resource identifies a mineable resource type.
type Resource int32

const (
	ResourceIron Resource = iota
	ResourceGold
	ResourceCrystal

	// NumResources is the number of resource kinds; sized into cargo tables.
	NumResources = 3
)

// String returns the resource name for logging and config lookup.
func (r Resource) String() string {
	switch r {
	case ResourceIron:
		return "iron"
	case ResourceGold:
		return "gold"
	case ResourceCrystal:
		return "crystal"
	}
	return "unknown"
}
