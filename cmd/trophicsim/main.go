package main

import (
	"flag"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/pthm-cable/trophic/config"
	"github.com/pthm-cable/trophic/geom"
	"github.com/pthm-cable/trophic/gridworld"
	"github.com/pthm-cable/trophic/sim"
	"github.com/pthm-cable/trophic/species"
	"github.com/pthm-cable/trophic/telemetry"
)

// spawnAttemptInterval is how often ambient spawning is attempted, in ticks.
const spawnAttemptInterval = 500

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	speciesPath := flag.String("species", "", "Path to species.yaml (empty = use built-in catalog)")
	outputDir := flag.String("output-dir", "", "Output root for CSV logs and config snapshot (a run id subdirectory is created)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 200000, "Stop after N ticks")
	worldSize := flag.Float64("world-size", 2048, "World edge length in world units")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// Set up seed
	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Species catalog
	catalog := species.NewCatalog()
	var loaded int
	var err error
	if *speciesPath != "" {
		loaded, err = species.LoadFile(catalog, *speciesPath)
	} else {
		loaded, err = species.LoadDefaults(catalog)
	}
	if err != nil {
		slog.Error("failed to load species", "error", err)
		os.Exit(1)
	}

	// Run output
	runDir := ""
	if *outputDir != "" {
		runDir = filepath.Join(*outputDir, uuid.New().String())
	}
	output, err := telemetry.NewOutputManager(runDir)
	if err != nil {
		slog.Error("failed to create output directory", "error", err)
		os.Exit(1)
	}
	defer output.Close()
	if err := output.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
		os.Exit(1)
	}

	// Build world and engine
	world := gridworld.NewWorld(gridworld.Config{
		Size:         *worldSize,
		GridCellSize: 32,
		Seed:         rngSeed,
	}, catalog)
	engine := sim.New(world, catalog, sim.Options{Seed: rngSeed, Output: output})
	world.SetEngine(engine)

	slog.Info("starting simulation",
		"seed", rngSeed,
		"species", loaded,
		"world_size", *worldSize,
		"max_ticks", *maxTicks,
		"output", output.Dir(),
	)

	rng := rand.New(rand.NewSource(rngSeed))
	seedPopulations(world, engine, catalog, rng, *worldSize)

	for tick := 0; tick < *maxTicks; tick++ {
		world.Step()

		if tick%spawnAttemptInterval == 0 {
			ambientSpawns(world, engine, catalog, rng, *worldSize)
		}
		if world.Agents() == 0 {
			slog.Info("all populations extinct", "tick", world.Time())
			break
		}
	}

	slog.Info("simulation finished", "tick", world.Time(), "agents", world.Agents())
}

// seedPopulations places the initial animals. Each species gets attempts
// proportional to its base density over the world area; placements on
// water or over regional capacity are skipped.
func seedPopulations(world *gridworld.World, engine *sim.Simulation, catalog *species.Catalog, rng *rand.Rand, size float64) {
	cell := config.Cfg().Regions.CellSize
	cells := (size / cell) * (size / cell)
	for _, def := range catalog.All() {
		attempts := int(def.Population.BaseDensity * cells)
		placed := 0
		for i := 0; i < attempts; i++ {
			pos := geom.Vec3{X: rng.Float64() * size, Z: rng.Float64() * size}
			if !engine.CanSpawn(def.ID, pos) {
				continue
			}
			if world.Spawn(def.ID, pos) != nil {
				placed++
			}
		}
		slog.Info("seeded species", "species", def.ID, "placed", placed)
	}
}

// ambientSpawns trickles in newcomers where the population gate and the
// season allow, standing in for immigration from outside the world.
func ambientSpawns(world *gridworld.World, engine *sim.Simulation, catalog *species.Catalog, rng *rand.Rand, size float64) {
	for _, def := range catalog.All() {
		pos := geom.Vec3{X: rng.Float64() * size, Z: rng.Float64() * size}
		if rng.Float64() < engine.SpawnWeight(def.ID, pos) {
			world.Spawn(def.ID, pos)
		}
	}
}
