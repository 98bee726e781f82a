package game

import (
	"errors"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/voidrift/components"
	"github.com/pthm-cable/voidrift/config"
)

func init() {
	config.MustInit("")
}

func newTestGame(t *testing.T) *Game {
	t.Helper()
	g, err := New(Options{Seed: 1})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return g
}

func TestGameDetectionToChase(t *testing.T) {
	g := newTestGame(t)

	if _, err := g.SpawnPlayer(r3.Vec{}); err != nil {
		t.Fatal(err)
	}
	e, err := g.SpawnEnemy(components.SubtypeStandard, 0, r3.Vec{X: 500})
	if err != nil {
		t.Fatal(err)
	}

	// First tick wakes the enemy into patrol, second sees the player.
	g.Update(1.0 / 60)
	if got := g.Store().AI.State[e]; got != components.StatePatrol {
		t.Fatalf("state after tick 1 = %v, want patrol", got)
	}

	g.Update(1.0 / 60)
	if got := g.Store().AI.State[e]; got != components.StateChase {
		t.Errorf("state after tick 2 = %v, want chase", got)
	}

	// A chasing enemy closes in on the player.
	before := g.Store().Pos.X[e]
	g.Update(1.0 / 60)
	if after := g.Store().Pos.X[e]; after >= before {
		t.Errorf("enemy X went %v -> %v, want closing on player at origin", before, after)
	}
}

func TestGameProjectileDestroysEnemy(t *testing.T) {
	g := newTestGame(t)

	if _, err := g.SpawnPlayer(r3.Vec{Y: 5000}); err != nil {
		t.Fatal(err)
	}
	e, err := g.SpawnEnemy(components.SubtypeStandard, 0, r3.Vec{X: 100})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := g.SpawnProjectile(r3.Vec{X: 100}, r3.Vec{X: 1}, 1000); err != nil {
		t.Fatal(err)
	}
	g.RecordShot()

	// Tiny step so the projectile stays inside the enemy's collider.
	g.Update(0.001)

	if g.Store().Health.Current[e] != 0 {
		t.Errorf("enemy hull = %v, want 0", g.Store().Health.Current[e])
	}
	if got := len(g.Enemies()); got != 0 {
		t.Errorf("enemy list length = %d, want 0 after cull", got)
	}
	if got := len(g.Projectiles()); got != 0 {
		t.Errorf("projectile list length = %d, want 0 after impact", got)
	}
}

func TestGameProjectileExpires(t *testing.T) {
	g := newTestGame(t)

	p, err := g.SpawnProjectile(r3.Vec{}, r3.Vec{X: 1}, 10)
	if err != nil {
		t.Fatal(err)
	}

	g.Update(ProjectileMaxAge + 1)

	if got := len(g.Projectiles()); got != 0 {
		t.Errorf("projectile list length = %d, want 0 after expiry", got)
	}
	if g.Store().InRange(p) && g.Meshes().Has(g.Store().Mesh.Index[p]) {
		t.Error("expired projectile still holds a mesh")
	}
}

func TestGameBossSpawnsMinions(t *testing.T) {
	g := newTestGame(t)

	if _, err := g.SpawnPlayer(r3.Vec{}); err != nil {
		t.Fatal(err)
	}
	if _, err := g.SpawnBoss(components.BossSwarmQueen, r3.Vec{X: 600}); err != nil {
		t.Fatal(err)
	}

	// One full spawn interval in a single tick triggers a pair.
	g.Update(5.0)

	if got := len(g.Enemies()); got != 2 {
		t.Errorf("enemy list length = %d, want 2 minions", got)
	}
	for _, m := range g.Enemies() {
		if got := g.Store().AI.State[m]; got != components.StateChase {
			t.Errorf("minion state = %v, want chase", got)
		}
	}
}

func TestGameMiningFillsCargo(t *testing.T) {
	g := newTestGame(t)

	player, err := g.SpawnPlayer(r3.Vec{})
	if err != nil {
		t.Fatal(err)
	}
	a, err := g.SpawnAsteroid(components.ResourceIron, 50, 1, r3.Vec{X: 100})
	if err != nil {
		t.Fatal(err)
	}

	if got := g.StartMining(player); got != a {
		t.Fatalf("StartMining = %d, want %d", got, a)
	}

	// Iron mines at 0.5 progress/s; three 1s ticks cover one full cycle.
	for i := 0; i < 3; i++ {
		g.Update(1.0)
	}

	s := g.Store()
	if s.Cargo.Used[player] <= 0 {
		t.Error("cargo still empty after a full mining cycle")
	}
	if s.Cargo.Held[components.ResourceIron][player] != s.Cargo.Used[player] {
		t.Errorf("held iron %v != cargo used %v",
			s.Cargo.Held[components.ResourceIron][player], s.Cargo.Used[player])
	}
	if s.Mineable.Remaining[a] >= 50 {
		t.Errorf("asteroid remaining = %v, want below 50", s.Mineable.Remaining[a])
	}

	g.StopMining(player)
	if s.Laser.Active[player] != 0 {
		t.Error("laser still active after StopMining")
	}
}

func TestGameRenderSyncLast(t *testing.T) {
	g := newTestGame(t)

	player, err := g.SpawnPlayer(r3.Vec{})
	if err != nil {
		t.Fatal(err)
	}
	s := g.Store()
	s.SetVelocity(player, r3.Vec{X: 60})

	g.Update(1.0)

	mesh := g.Meshes().Get(s.Mesh.Index[player])
	if mesh == nil {
		t.Fatal("player mesh not registered")
	}
	// The mesh must reflect the post-integration position of this tick.
	if mesh.Position != s.Position(player) {
		t.Errorf("mesh position %v != store position %v", mesh.Position, s.Position(player))
	}
	if mesh.Position.X <= 0 {
		t.Errorf("mesh X = %v, want advanced past origin", mesh.Position.X)
	}
}

func TestGameWeaponCooldown(t *testing.T) {
	g := newTestGame(t)

	player, err := g.SpawnPlayer(r3.Vec{})
	if err != nil {
		t.Fatal(err)
	}

	// Fire rate 4/s: the cooldown is 0.25s from the last shot.
	if g.CanFire(player) {
		t.Error("CanFire immediately after spawn = true, want false")
	}

	g.Update(0.3)
	if !g.CanFire(player) {
		t.Error("CanFire after 0.3s = false, want true")
	}

	g.Store().Weapon.TimeSinceLastShot[player] = 0
	if g.CanFire(player) {
		t.Error("CanFire right after firing = true, want false")
	}

	if g.CanFire(components.None) {
		t.Error("CanFire(None) = true, want false")
	}
}

func TestGameCapacityExhausted(t *testing.T) {
	g := newTestGame(t)
	capacity := g.Store().Capacity()

	spawned := 0
	for {
		_, err := g.SpawnAsteroid(components.ResourceIron, 10, 1, r3.Vec{})
		if err != nil {
			if !errors.Is(err, components.ErrCapacityExhausted) {
				t.Fatalf("spawn error = %v, want ErrCapacityExhausted", err)
			}
			break
		}
		spawned++
	}

	if spawned != capacity {
		t.Errorf("spawned %d entities before exhaustion, want %d", spawned, capacity)
	}
}

func TestGameDestroyRecyclesCleanly(t *testing.T) {
	g := newTestGame(t)

	e, err := g.SpawnEnemy(components.SubtypeSwift, 0, r3.Vec{X: 50})
	if err != nil {
		t.Fatal(err)
	}
	meshIdx := g.Store().Mesh.Index[e]

	g.Destroy(e)

	if got := len(g.Enemies()); got != 0 {
		t.Errorf("enemy list length = %d, want 0", got)
	}
	if g.Meshes().Has(meshIdx) {
		t.Error("destroyed entity's mesh still registered")
	}

	// Double destroy is a no-op.
	g.Destroy(e)

	// The handle comes back and the spawner overwrites the stale rows.
	e2, err := g.SpawnEnemy(components.SubtypeHeavy, 0, r3.Vec{})
	if err != nil {
		t.Fatal(err)
	}
	if e2 != e {
		t.Fatalf("recycled handle = %d, want %d", e2, e)
	}
	if got := g.Store().AI.State[e2]; got != components.StateIdle {
		t.Errorf("recycled enemy state = %v, want idle", got)
	}
	if got := g.Store().AI.Subtype[e2]; got != components.SubtypeHeavy {
		t.Errorf("recycled enemy subtype = %v, want heavy", got)
	}
}

func TestGameEnemiesByFaction(t *testing.T) {
	g := newTestGame(t)

	a, _ := g.SpawnEnemy(components.SubtypeStandard, 1, r3.Vec{X: 10})
	g.SpawnEnemy(components.SubtypeStandard, 2, r3.Vec{X: 20})
	b, _ := g.SpawnEnemy(components.SubtypeSwift, 1, r3.Vec{X: 30})

	got := g.EnemiesByFaction(1, nil)
	if len(got) != 2 || got[0] != a || got[1] != b {
		t.Errorf("EnemiesByFaction(1) = %v, want [%d %d]", got, a, b)
	}
	if got := g.EnemiesByFaction(9, nil); len(got) != 0 {
		t.Errorf("EnemiesByFaction(9) = %v, want empty", got)
	}
}

func TestGamePlayerDeathNotCulled(t *testing.T) {
	g := newTestGame(t)

	player, err := g.SpawnPlayer(r3.Vec{})
	if err != nil {
		t.Fatal(err)
	}
	g.Store().Health.Current[player] = 0

	g.Update(1.0 / 60)

	if g.Player() != player {
		t.Error("player culled by the destroy sweep; death handling belongs to the driver")
	}
}
