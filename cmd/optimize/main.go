package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/genesis/config"
)

// formatDuration formats a duration as HH:MM:SS or MM:SS for shorter durations.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

// logRow is one parameter of one evaluation in optimize_log.csv.
type logRow struct {
	Eval     int     `csv:"eval"`
	Fitness  float64 `csv:"fitness"`
	Survival float64 `csv:"survival_ticks"`
	Quality  float64 `csv:"quality"`
	Param    string  `csv:"param"`
	Value    float64 `csv:"value"`
}

// evalLog appends evaluation rows to a CSV file, writing the header once.
type evalLog struct {
	f             *os.File
	headerWritten bool
}

func newEvalLog(path string) (*evalLog, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating eval log: %w", err)
	}
	return &evalLog{f: f}, nil
}

func (l *evalLog) Write(rows []logRow) error {
	if !l.headerWritten {
		l.headerWritten = true
		return gocsv.Marshal(rows, l.f)
	}
	return gocsv.MarshalWithoutHeaders(rows, l.f)
}

func (l *evalLog) Close() error {
	return l.f.Close()
}

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	maxTicks := flag.Int("max-ticks", 2000, "Maximum simulation duration in ticks (cap)")
	seeds := flag.Int("seeds", 3, "Number of seeds per evaluation")
	maxEvals := flag.Int("max-evals", 200, "Maximum number of evaluations")
	simplexSize := flag.Float64("simplex", 0.2, "Initial Nelder-Mead simplex size in normalized units")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	// Progress goes to the optimizer logger; per-run engine logs are muted.
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	if err := run(logger, *configPath, *outputDir, *maxTicks, *seeds, *maxEvals, *simplexSize); err != nil {
		logger.Error("optimization failed", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger, configPath, outputDir string, maxTicks, seeds, maxEvals int, simplexSize float64) error {
	if outputDir == "" {
		return fmt.Errorf("--output is required")
	}
	if seeds < 1 {
		return fmt.Errorf("--seeds must be at least 1, got %d", seeds)
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	baseCfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	params := NewParamVector()

	evalSeeds := make([]int64, seeds)
	for i := range evalSeeds {
		evalSeeds[i] = int64(i*1000 + 42)
	}

	evaluator := NewFitnessEvaluator(params, maxTicks, evalSeeds, baseCfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logFile, err := newEvalLog(filepath.Join(outputDir, "optimize_log.csv"))
	if err != nil {
		return err
	}
	defer logFile.Close()

	dim := params.Dim()
	initX := params.Normalize(params.Clamp(params.ExtractFromConfig(baseCfg)))

	evalCount := 0
	bestFitness := math.Inf(1)
	var bestParams []float64
	var evalErr error
	startTime := time.Now()

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			if evalErr != nil {
				return math.Inf(1)
			}
			clamped := params.Clamp(params.Denormalize(x))
			res, err := evaluator.Evaluate(ctx, clamped)
			if err != nil {
				evalErr = err
				return math.Inf(1)
			}
			evalCount++

			if res.Fitness < bestFitness {
				bestFitness = res.Fitness
				bestParams = clamped
			}

			rows := make([]logRow, len(clamped))
			for i, v := range clamped {
				rows[i] = logRow{
					Eval:     evalCount,
					Fitness:  res.Fitness,
					Survival: res.Survival,
					Quality:  res.Quality,
					Param:    params.Specs[i].Name,
					Value:    v,
				}
			}
			if err := logFile.Write(rows); err != nil {
				logger.Error("failed to write eval log", "eval", evalCount, "error", err)
			}

			elapsed := time.Since(startTime)
			avgPerEval := elapsed / time.Duration(evalCount)
			remaining := time.Duration(maxEvals-evalCount) * avgPerEval

			logger.Info("eval",
				"n", evalCount,
				"of", maxEvals,
				"survival", res.Survival,
				"quality", res.Quality,
				"fitness", res.Fitness,
				"best", bestFitness,
				"elapsed", formatDuration(elapsed),
				"eta", formatDuration(remaining),
			)
			return res.Fitness
		},
	}

	settings := &optimize.Settings{
		FuncEvaluations: maxEvals,
		Concurrent:      0, // seeds already run in parallel
	}
	method := &optimize.NelderMead{SimplexSize: simplexSize}

	logger.Info("optimization started",
		"params", dim,
		"max_evals", maxEvals,
		"seeds", seeds,
		"max_ticks", maxTicks,
	)

	result, err := optimize.Minimize(problem, initX, settings, method)
	if err != nil {
		logger.Warn("optimization ended", "error", err)
	}
	if evalErr != nil && bestParams == nil {
		return evalErr
	}

	// Use best params found (may be from any evaluation, not just final)
	if bestParams == nil && result != nil {
		bestParams = params.Clamp(params.Denormalize(result.X))
	}
	if bestParams == nil {
		return fmt.Errorf("no evaluation completed")
	}

	logger.Info("optimization complete",
		"evals", evalCount,
		"elapsed", formatDuration(time.Since(startTime)),
		"best_fitness", bestFitness,
	)
	for i, spec := range params.Specs {
		logger.Info("best parameter", "name", spec.Name, "path", spec.Path, "value", bestParams[i])
	}

	bestCfg := baseCfg.Clone()
	params.ApplyToConfig(bestCfg, bestParams)

	configOutPath := filepath.Join(outputDir, "best_config.yaml")
	if err := bestCfg.WriteYAML(configOutPath); err != nil {
		return fmt.Errorf("writing best config: %w", err)
	}
	logger.Info("best config saved", "path", configOutPath)
	return nil
}
