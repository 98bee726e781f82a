package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/voidrift/config"
)

// EvalRecord is one row of the optimization history CSV.
type EvalRecord struct {
	Eval    int     `csv:"eval"`
	Fitness float64 `csv:"fitness"`
	Best    float64 `csv:"best"`
	Elapsed float64 `csv:"elapsed_sec"`
}

func main() {
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	maxTicks := flag.Int("max-ticks", 7200, "Simulation ticks per run")
	seeds := flag.Int("seeds", 3, "Number of seeds per evaluation")
	maxEvals := flag.Int("max-evals", 100, "Maximum number of evaluations")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	if *outputDir == "" {
		log.Fatal("--output is required")
	}
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	baseCfg := *config.Cfg()

	params := NewParamVector()

	evalSeeds := make([]int64, *seeds)
	for i := range evalSeeds {
		evalSeeds[i] = int64(i*1000 + 42)
	}

	evaluator := NewEvaluator(params, *maxTicks, evalSeeds, &baseCfg)

	start := time.Now()
	var history []EvalRecord

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			f := evaluator.Evaluate(x)
			history = append(history, EvalRecord{
				Eval:    evaluator.Evals,
				Fitness: f,
				Best:    evaluator.Best,
				Elapsed: time.Since(start).Seconds(),
			})
			fmt.Printf("eval %3d  fitness %.4f  best %.4f\n", evaluator.Evals, f, evaluator.Best)
			return f
		},
	}

	settings := &optimize.Settings{
		FuncEvaluations: *maxEvals,
	}

	result, err := optimize.Minimize(problem, params.DefaultVector(), settings, &optimize.NelderMead{})
	if err != nil {
		log.Printf("optimization stopped: %v", err)
	}
	if result != nil {
		fmt.Printf("final fitness %.4f after %d evaluations\n", result.F, evaluator.Evals)
	}

	// Persist the history and the best config found.
	if err := writeHistory(filepath.Join(*outputDir, "history.csv"), history); err != nil {
		log.Fatalf("failed to write history: %v", err)
	}

	bestX := evaluator.BestX
	if bestX == nil {
		bestX = params.DefaultVector()
	}
	bestCfg := baseCfg
	params.ApplyToConfig(&bestCfg, bestX)
	if err := bestCfg.WriteYAML(filepath.Join(*outputDir, "best_config.yaml")); err != nil {
		log.Fatalf("failed to write best config: %v", err)
	}

	fmt.Println("best parameters:")
	for i, spec := range params.Specs {
		fmt.Printf("  %-26s %.3f\n", spec.Name, bestX[i])
	}
}

func writeHistory(path string, history []EvalRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gocsv.Marshal(history, f)
}
