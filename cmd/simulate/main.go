// Command simulate runs one simulation against the catalog and prints the
// export document.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/MikeSquared-Agency/Regen/internal/catalog"
	"github.com/MikeSquared-Agency/Regen/internal/metrics"
	"github.com/MikeSquared-Agency/Regen/internal/scoring"
	"github.com/MikeSquared-Agency/Regen/internal/simulator"
	"github.com/MikeSquared-Agency/Regen/internal/store"
)

// constFlags collects repeated -const id=value pairs.
type constFlags map[string]float64

func (c constFlags) String() string {
	parts := make([]string, 0, len(c))
	for k, v := range c {
		parts = append(parts, fmt.Sprintf("%s=%g", k, v))
	}
	return strings.Join(parts, ",")
}

func (c constFlags) Set(s string) error {
	k, v, ok := strings.Cut(s, "=")
	if !ok || k == "" {
		return fmt.Errorf("expected id=value, got %q", s)
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("constant %s: %w", k, err)
	}
	c[k] = f
	return nil
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "simulate:", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("simulate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	catalogPath := fs.String("catalog", "configs/catalog.yaml", "path to catalog file")
	damage := fs.String("damage", "", "damage type id")
	techList := fs.String("tech", "", "comma-separated technology ids")
	iterations := fs.Int("iterations", 100, "confidence interval iterations")
	seed := fs.Int64("seed", 0, "random seed (0 uses the clock)")
	verbose := fs.Bool("v", false, "log to stderr")
	constants := constFlags{}
	fs.Var(constants, "const", "constant override id=value (repeatable)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	logOut := io.Discard
	if *verbose {
		logOut = stderr
	}
	logger := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: slog.LevelDebug}))

	cat, err := catalog.Load(*catalogPath)
	if err != nil {
		return err
	}

	var techs []string
	for _, id := range strings.Split(*techList, ",") {
		if id = strings.TrimSpace(id); id != "" {
			techs = append(techs, id)
		}
	}

	s := *seed
	if s == 0 {
		s = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewPCG(uint64(s), uint64(s>>1)))

	svc := simulator.New(
		cat,
		scoring.NewOptimizer(rng, 1, logger),
		store.NewMemoryStore(1),
		nil,
		metrics.New(prometheus.NewRegistry()),
		*iterations,
		logger,
	)

	ctx := context.Background()
	r, err := svc.Run(ctx, simulator.Request{
		DamageTypeID:  *damage,
		TechnologyIDs: techs,
		Constants:     constants,
		Iterations:    *iterations,
	}, store.SourceCLI)
	if err != nil {
		return err
	}

	exp, err := svc.Export(ctx, r.ID)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(exp)
}
