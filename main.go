package main

import (
	"fmt"
	"os"
	"runtime/pprof"
	"time"

	"github.com/alexflint/go-arg"
	"github.com/rs/zerolog"

	"github.com/hartley-labs/cdclsat/internal/dimacs"
	"github.com/hartley-labs/cdclsat/internal/sat"
)

type args struct {
	Instance   string `arg:"positional,required" help:"DIMACS CNF instance file, or - for stdin"`
	Gzipped    bool   `arg:"--gzip" help:"instance file is gzip-compressed"`
	Seed       uint64 `arg:"--seed" default:"1" help:"seed for the decision-polarity RNG"`
	Profile    string `arg:"--profile" help:"write solve statistics as a structured zerolog record to this path, or - for stdout"`
	Verbose    bool   `arg:"-v,--verbose" help:"enable debug-level search logging"`
	CPUProfile string `arg:"--cpuprof" help:"write a pprof CPU profile to this path"`
	MemProfile string `arg:"--memprof" help:"write a pprof heap profile to this path"`
}

func (args) Description() string {
	return "cdclsat decides satisfiability of a DIMACS CNF instance using CDCL search."
}

func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(level).
		With().Timestamp().Logger()
}

func loadInstance(a args, solver *sat.Solver) error {
	if a.Instance == "-" {
		return dimacs.LoadDIMACSReader(os.Stdin, solver)
	}
	return dimacs.LoadDIMACS(a.Instance, a.Gzipped, solver)
}

// writeProfile serializes stats as a structured zerolog record to path (or
// stdout for "-"), the same ambient logging stack the rest of the program
// uses rather than a one-off encoding/json dump.
func writeProfile(path string, stats sat.Stats) error {
	out := os.Stdout
	if path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	profiler := zerolog.New(out).With().Timestamp().Logger()
	profiler.Info().
		Int("preprocess_passes", stats.PreprocessPasses).
		Int64("decisions", stats.Decisions).
		Int64("propagations", stats.Propagations).
		Int64("conflicts", stats.Conflicts).
		Int64("restarts", stats.Restarts).
		Int64("learned_clauses", stats.LearnedClauses).
		Dur("duration", stats.Duration).
		Msg("profile")
	return nil
}

func run(a args, logger zerolog.Logger) (satisfiable bool, exitCode int) {
	if a.CPUProfile != "" {
		f, err := os.Create(a.CPUProfile)
		if err != nil {
			logger.Error().Err(err).Msg("could not create cpu profile")
			return false, 1
		}
		defer f.Close()
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	solver := sat.NewSolver(sat.Options{Seed: a.Seed, Logger: logger})
	if err := loadInstance(a, solver); err != nil {
		logger.Error().Err(err).Msg("could not load instance")
		return false, 1
	}
	logger.Info().Int("variables", solver.NumVars()).Msg("instance loaded")

	result, _ := solver.Solve()

	stats := solver.Stats()
	logger.Info().
		Int64("decisions", stats.Decisions).
		Int64("conflicts", stats.Conflicts).
		Int64("restarts", stats.Restarts).
		Dur("duration", stats.Duration).
		Msg("solve finished")

	if a.Profile != "" {
		if err := writeProfile(a.Profile, stats); err != nil {
			logger.Error().Err(err).Msg("could not write profile")
			return result, 1
		}
	}

	if a.MemProfile != "" {
		f, err := os.Create(a.MemProfile)
		if err != nil {
			logger.Error().Err(err).Msg("could not create mem profile")
			return result, 1
		}
		pprof.WriteHeapProfile(f)
		f.Close()
	}

	return result, 0
}

func main() {
	var a args
	arg.MustParse(&a)

	logger := newLogger(a.Verbose)
	result, code := run(a, logger)
	if code != 0 {
		os.Exit(code)
	}

	if result {
		fmt.Println("sat")
	} else {
		fmt.Println("unsat")
	}
}
