package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"time"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/voidrift/components"
	"github.com/pthm-cable/voidrift/config"
	"github.com/pthm-cable/voidrift/game"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV telemetry and config snapshot")
	logStats := flag.Bool("log-stats", false, "Log window stats")
	debug := flag.Bool("debug", false, "Enable debug logging")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 3600, "Stop after N ticks (0 = unlimited)")
	dt := flag.Float64("dt", 0, "Fixed timestep in seconds (0 = use config)")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	logger, err := game.NewLogger(*debug)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to build logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	step := cfg.Physics.DT
	if *dt > 0 {
		step = *dt
	}

	g, err := game.New(game.Options{
		Seed:      rngSeed,
		OutputDir: *outputDir,
		LogStats:  *logStats,
		Logger:    logger,
	})
	if err != nil {
		logger.Fatal("failed to create game", zap.Error(err))
	}
	defer g.Close()

	if err := game.SpawnDemoScenario(g); err != nil {
		logger.Fatal("failed to build scenario", zap.Error(err))
	}

	logger.Info("starting headless simulation",
		zap.Int64("seed", rngSeed),
		zap.Float64("dt", step),
		zap.Int("max_ticks", *maxTicks),
	)

	for {
		driveWeapons(g)
		driveMining(g)
		g.Update(step)

		if *maxTicks > 0 && int(g.Tick()) >= *maxTicks {
			logger.Info("max ticks reached", zap.Int64("tick", g.Tick()))
			return
		}
	}
}

// driveWeapons is the stand-in input layer: the player fires at the
// nearest enemy whenever the cooldown allows.
func driveWeapons(g *game.Game) {
	s := g.Store()
	player := g.Player()
	if !s.InRange(player) || !g.CanFire(player) {
		return
	}

	pos := s.Position(player)
	target := components.None
	best := math.MaxFloat64
	for _, e := range g.Enemies() {
		d := r3.Norm(r3.Sub(s.Position(e), pos))
		if d < best {
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

// driveMining keeps the player's laser locked on whatever asteroid is
// nearest, reacquiring when the previous target runs dry.
func driveMining(g *game.Game) {
	s := g.Store()
	player := g.Player()
	if !s.InRange(player) {
		return
	}
	if s.Laser.Active[player] == 1 && s.InRange(s.Laser.Target[player]) {
		return
	}
	g.StartMining(player)
}
