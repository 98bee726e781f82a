package components

import (
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Positions holds entity world positions, one array per axis.
type Positions struct {
	X, Y, Z []float64
}

// Velocities holds entity velocities.
type Velocities struct {
	X, Y, Z []float64
}

// Rotations holds unit quaternions (|q| ~= 1).
type Rotations struct {
	X, Y, Z, W []float64
}

// Scales holds per-axis render scale.
type Scales struct {
	X, Y, Z []float64
}

// Rigidbodies holds mass and drag parameters.
// Mass must be positive for any entity run through force integration;
// the spawner is responsible, the integrator does not defend against it.
type Rigidbodies struct {
	Mass        []float64
	Drag        []float64
	AngularDrag []float64
	Kinematic   []int8
	FreezeRot   []int8
}

// Forces is the per-tick force accumulator, cleared after integration.
type Forces struct {
	X, Y, Z []float64
}

// Colliders holds sphere collision radii (the only collision volume).
type Colliders struct {
	Radius []float64
}

// Healths holds hull, shield, and regeneration state.
// Invariants: 0 <= Current <= Max, 0 <= Shield <= MaxShield.
type Healths struct {
	Current             []float64
	Max                 []float64
	Shield              []float64
	MaxShield           []float64
	ShieldRegenRate     []float64
	ShieldRegenDelay    []float64
	TimeSinceLastDamage []float64
	DamageResistance    []float64
}

// Weapons holds weapon stats and fire timing.
type Weapons struct {
	Damage            []float64
	FireRate          []float64
	Range             []float64
	TimeSinceLastShot []float64
	Level             []int32
}

// EnemyAIs holds the enemy state machine and movement tuning.
type EnemyAIs struct {
	Faction        []int32
	Subtype        []Subtype
	State          []AIState
	DetectionRange []float64
	Damage         []float64
	Speed          []float64
	PlayerFound    []int8

	// Spawn origin, captured on the IDLE -> PATROL transition.
	SpawnX, SpawnY, SpawnZ []float64

	StateTimer []float64
	TimeAlive  []float64

	// Spiral movement parameters (standard subtype).
	SpiralPhase []float64
	SpiralRate  []float64

	SeparationInfluence []float64
}

// SeparationForces is the transient flocking output, rebuilt every tick.
type SeparationForces struct {
	X, Y, Z []float64
}

// Bosses holds the scripted encounter state machines.
type Bosses struct {
	Type           []BossType
	PhaseTimer     []float64
	PhaseActive    []int8
	SpawnCooldown  []float64
	MinionsSpawned []int32
	BeamChargeTime []float64
	BeamActive     []int8
	OriginalScale  []float64
}

// MiningLasers holds miner-side extraction state.
type MiningLasers struct {
	Active   []int8
	Target   []Entity
	Progress []float64
	Range    []float64
}

// Mineables holds asteroid-side resource state.
type Mineables struct {
	Resource   []Resource
	Remaining  []float64
	Difficulty []float64
	BeingMined []int8
}

// Cargos holds hold capacity and per-resource counters.
type Cargos struct {
	Capacity []float64
	Used     []float64
	// Held[resource][entity] is the amount of that resource carried.
	Held [NumResources][]float64
}

// Lifetimes holds age-based expiry. MaxAge of -1 means the entity never expires.
type Lifetimes struct {
	Age    []float64
	MaxAge []float64
}

// MeshRefs bridges entities to the external mesh registry. -1 means no mesh.
type MeshRefs struct {
	Index []int32
}

// Renderables holds render visibility flags.
type Renderables struct {
	Visible       []int8
	CastShadow    []int8
	ReceiveShadow []int8
}

// Store owns every component table for the process lifetime.
// It is created once, sized to a fixed maximum entity count, and never
// resized. Systems receive it by reference together with caller-supplied
// handle lists; they hold no entity references across calls.
type Store struct {
	capacity int

	Pos        Positions
	Vel        Velocities
	Rot        Rotations
	Scale      Scales
	Body       Rigidbodies
	Force      Forces
	Collider   Colliders
	Health     Healths
	Weapon     Weapons
	AI         EnemyAIs
	Separation SeparationForces
	Boss       Bosses
	Laser      MiningLasers
	Mineable   Mineables
	Cargo      Cargos
	Lifetime   Lifetimes
	Mesh       MeshRefs
	Render     Renderables
}

// NewStore allocates all component arrays at the given capacity.
func NewStore(capacity int) *Store {
	s := &Store{capacity: capacity}

	f := func() []float64 { return make([]float64, capacity) }
	i8 := func() []int8 { return make([]int8, capacity) }
	i32 := func() []int32 { return make([]int32, capacity) }

	s.Pos = Positions{X: f(), Y: f(), Z: f()}
	s.Vel = Velocities{X: f(), Y: f(), Z: f()}
	s.Rot = Rotations{X: f(), Y: f(), Z: f(), W: f()}
	s.Scale = Scales{X: f(), Y: f(), Z: f()}
	s.Body = Rigidbodies{Mass: f(), Drag: f(), AngularDrag: f(), Kinematic: i8(), FreezeRot: i8()}
	s.Force = Forces{X: f(), Y: f(), Z: f()}
	s.Collider = Colliders{Radius: f()}
	s.Health = Healths{
		Current: f(), Max: f(), Shield: f(), MaxShield: f(),
		ShieldRegenRate: f(), ShieldRegenDelay: f(),
		TimeSinceLastDamage: f(), DamageResistance: f(),
	}
	s.Weapon = Weapons{Damage: f(), FireRate: f(), Range: f(), TimeSinceLastShot: f(), Level: i32()}
	s.AI = EnemyAIs{
		Faction: i32(), Subtype: make([]Subtype, capacity), State: make([]AIState, capacity),
		DetectionRange: f(), Damage: f(), Speed: f(), PlayerFound: i8(),
		SpawnX: f(), SpawnY: f(), SpawnZ: f(),
		StateTimer: f(), TimeAlive: f(),
		SpiralPhase: f(), SpiralRate: f(),
		SeparationInfluence: f(),
	}
	s.Separation = SeparationForces{X: f(), Y: f(), Z: f()}
	s.Boss = Bosses{
		Type: make([]BossType, capacity), PhaseTimer: f(), PhaseActive: i8(),
		SpawnCooldown: f(), MinionsSpawned: i32(),
		BeamChargeTime: f(), BeamActive: i8(), OriginalScale: f(),
	}
	s.Laser = MiningLasers{Active: i8(), Target: make([]Entity, capacity), Progress: f(), Range: f()}
	s.Mineable = Mineables{Resource: make([]Resource, capacity), Remaining: f(), Difficulty: f(), BeingMined: i8()}
	s.Cargo = Cargos{Capacity: f(), Used: f()}
	for r := 0; r < NumResources; r++ {
		s.Cargo.Held[r] = f()
	}
	s.Lifetime = Lifetimes{Age: f(), MaxAge: f()}
	s.Mesh = MeshRefs{Index: i32()}
	s.Render = Renderables{Visible: i8(), CastShadow: i8(), ReceiveShadow: i8()}

	return s
}

// Capacity returns the fixed maximum entity count.
func (s *Store) Capacity() int {
	return s.capacity
}

// InRange reports whether e is a valid index into the component arrays.
// It says nothing about liveness; that is the registry's business.
func (s *Store) InRange(e Entity) bool {
	return e >= 0 && int(e) < s.capacity
}

// Position returns entity e's position as a vector.
func (s *Store) Position(e Entity) r3.Vec {
	return r3.Vec{X: s.Pos.X[e], Y: s.Pos.Y[e], Z: s.Pos.Z[e]}
}

// SetPosition writes entity e's position.
func (s *Store) SetPosition(e Entity, v r3.Vec) {
	s.Pos.X[e], s.Pos.Y[e], s.Pos.Z[e] = v.X, v.Y, v.Z
}

// Velocity returns entity e's velocity as a vector.
func (s *Store) Velocity(e Entity) r3.Vec {
	return r3.Vec{X: s.Vel.X[e], Y: s.Vel.Y[e], Z: s.Vel.Z[e]}
}

// SetVelocity writes entity e's velocity.
func (s *Store) SetVelocity(e Entity, v r3.Vec) {
	s.Vel.X[e], s.Vel.Y[e], s.Vel.Z[e] = v.X, v.Y, v.Z
}

// Rotation returns entity e's rotation quaternion.
func (s *Store) Rotation(e Entity) quat.Number {
	return quat.Number{Real: s.Rot.W[e], Imag: s.Rot.X[e], Jmag: s.Rot.Y[e], Kmag: s.Rot.Z[e]}
}

// SetRotation writes entity e's rotation quaternion.
func (s *Store) SetRotation(e Entity, q quat.Number) {
	s.Rot.W[e], s.Rot.X[e], s.Rot.Y[e], s.Rot.Z[e] = q.Real, q.Imag, q.Jmag, q.Kmag
}

// ScaleVec returns entity e's scale as a vector.
func (s *Store) ScaleVec(e Entity) r3.Vec {
	return r3.Vec{X: s.Scale.X[e], Y: s.Scale.Y[e], Z: s.Scale.Z[e]}
}

// SetScale writes entity e's scale.
func (s *Store) SetScale(e Entity, v r3.Vec) {
	s.Scale.X[e], s.Scale.Y[e], s.Scale.Z[e] = v.X, v.Y, v.Z
}

// ForceVec returns entity e's accumulated force.
func (s *Store) ForceVec(e Entity) r3.Vec {
	return r3.Vec{X: s.Force.X[e], Y: s.Force.Y[e], Z: s.Force.Z[e]}
}

// AddForce accumulates a force on entity e for this tick.
func (s *Store) AddForce(e Entity, v r3.Vec) {
	s.Force.X[e] += v.X
	s.Force.Y[e] += v.Y
	s.Force.Z[e] += v.Z
}

// ClearForce resets entity e's force accumulator.
func (s *Store) ClearForce(e Entity) {
	s.Force.X[e], s.Force.Y[e], s.Force.Z[e] = 0, 0, 0
}

// SeparationVec returns entity e's separation force for this tick.
func (s *Store) SeparationVec(e Entity) r3.Vec {
	return r3.Vec{X: s.Separation.X[e], Y: s.Separation.Y[e], Z: s.Separation.Z[e]}
}
