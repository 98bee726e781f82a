package main

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/voidrift/components"
	"github.com/pthm-cable/voidrift/config"
	"github.com/pthm-cable/voidrift/game"
)

// Balance targets. The encounter should leave the player alive but
// pressured, clear most of the wings within the run, and still allow
// some mining on the side.
const (
	targetPlayerHull = 0.5
	targetOreMined   = 20.0

	weightRemaining  = 4.0
	weightPlayerHull = 2.0
	weightOre        = 0.05
)

// runResult holds the metrics from a single simulation run.
type runResult struct {
	enemiesRemaining int
	enemiesSpawned   int
	playerHull       float64 // fraction, 0 if the player died
	oreMined         float64
}

// Evaluator runs headless simulations and scores candidate parameters.
type Evaluator struct {
	params   *ParamVector
	maxTicks int
	seeds    []int64
	baseCfg  *config.Config

	// History of evaluations for the results CSV.
	Evals int
	Best  float64
	BestX []float64
}

// NewEvaluator creates an evaluator over the given seeds.
func NewEvaluator(params *ParamVector, maxTicks int, seeds []int64, baseCfg *config.Config) *Evaluator {
	return &Evaluator{
		params:   params,
		maxTicks: maxTicks,
		seeds:    seeds,
		baseCfg:  baseCfg,
		Best:     math.Inf(1),
	}
}

// Evaluate computes the balance score for a parameter vector; lower is
// better. Seeds run sequentially because each evaluation swaps the
// global config.
func (ev *Evaluator) Evaluate(x []float64) float64 {
	raw := ev.params.Clamp(x)

	cfg := *ev.baseCfg
	ev.params.ApplyToConfig(&cfg, raw)
	config.Set(&cfg)

	var total float64
	for _, seed := range ev.seeds {
		result := ev.runSimulation(seed)
		total += ev.score(result)
	}
	fitness := total / float64(len(ev.seeds))

	ev.Evals++
	if fitness < ev.Best {
		ev.Best = fitness
		ev.BestX = append([]float64(nil), raw...)
	}
	return fitness
}

// score folds one run's metrics into a scalar penalty.
func (ev *Evaluator) score(r runResult) float64 {
	remainingFrac := 0.0
	if r.enemiesSpawned > 0 {
		remainingFrac = float64(r.enemiesRemaining) / float64(r.enemiesSpawned)
	}

	hullErr := r.playerHull - targetPlayerHull
	oreShortfall := math.Max(0, targetOreMined-r.oreMined)

	return weightRemaining*remainingFrac*remainingFrac +
		weightPlayerHull*hullErr*hullErr +
		weightOre*oreShortfall
}

// runSimulation plays the demo scenario headless with a scripted player.
func (ev *Evaluator) runSimulation(seed int64) runResult {
	cfg := config.Cfg()

	g, err := game.New(game.Options{Seed: seed})
	if err != nil {
		return runResult{}
	}
	defer g.Close()

	if err := game.SpawnDemoScenario(g); err != nil {
		return runResult{}
	}
	spawned := len(g.Enemies())

	dt := cfg.Physics.DT
	for t := 0; t < ev.maxTicks; t++ {
		autopilot(g)
		g.Update(dt)

		if g.Player() == components.None {
			break
		}
	}

	s := g.Store()
	result := runResult{
		enemiesRemaining: len(g.Enemies()),
		enemiesSpawned:   spawned,
	}
	if player := g.Player(); s.InRange(player) && s.Health.Current[player] > 0 {
		result.playerHull = s.Health.Current[player] / s.Health.Max[player]
		for res := 0; res < components.NumResources; res++ {
			result.oreMined += s.Cargo.Held[res][player]
		}
	}
	return result
}

// autopilot is the scripted player: fire at the nearest enemy on
// cooldown and keep the mining laser busy.
func autopilot(g *game.Game) {
	s := g.Store()
	player := g.Player()
	if !s.InRange(player) {
		return
	}

	if s.Laser.Active[player] == 0 || !s.InRange(s.Laser.Target[player]) {
		g.StartMining(player)
	}

	if !g.CanFire(player) {
		return
	}
	pos := s.Position(player)
	target := components.None
	best := math.MaxFloat64
	for _, e := range g.Enemies() {
		if d := r3.Norm(r3.Sub(s.Position(e), pos)); d < best {
			best = d
			target = e
		}
	}
	if target == components.None {
		return
	}
	dir := r3.Sub(s.Position(target), pos)
	if r3.Norm(dir) == 0 {
		return
	}
	if _, err := g.SpawnProjectile(pos, dir, s.Weapon.Damage[player]); err != nil {
		return
	}
	s.Weapon.TimeSinceLastShot[player] = 0
	g.RecordShot()
}
