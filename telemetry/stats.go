// Package telemetry aggregates behavior events into time windows and
// writes them as CSV alongside structured logs.
package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int64   `csv:"-"`
	WindowEndTick   int64   `csv:"window_end"`
	Season          string  `csv:"season"`
	YearProgress    float64 `csv:"year_progress"`

	// Population at window end
	Agents int `csv:"agents"`

	// Events during window
	Kills             int     `csv:"kills"`
	Grazes            int     `csv:"grazes"`
	HuntStarts        int     `csv:"hunt_starts"`
	HuntAbandons      int     `csv:"hunt_abandons"`
	HuntSuccessRate   float64 `csv:"hunt_success_rate"`
	Breeds            int     `csv:"breeds"`
	LitterTotal       int     `csv:"litter_total"`
	MigrationStarts   int     `csv:"migration_starts"`
	MigrationArrivals int     `csv:"migration_arrivals"`
	Starvations       int     `csv:"starvations"`

	// Hunger distribution (sampled at window end)
	HungerMean float64 `csv:"hunger_mean"`
	HungerStd  float64 `csv:"hunger_std"`
	HungerP10  float64 `csv:"hunger_p10"`
	HungerP50  float64 `csv:"hunger_p50"`
	HungerP90  float64 `csv:"hunger_p90"`

	// Ecosystem state (mean over tracked regions)
	VegetationMean      float64 `csv:"vegetation_mean"`
	HuntingPressureMean float64 `csv:"hunting_pressure_mean"`
}

// ComputeHungerStats calculates mean, standard deviation and percentiles
// from sampled hunger values.
func ComputeHungerStats(values []float64) (mean, std, p10, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0, 0
	}

	mean = stat.Mean(values, nil)
	if len(values) > 1 {
		std = stat.StdDev(values, nil)
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	p10 = stat.Quantile(0.10, stat.Empirical, sorted, nil)
	p50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)

	return mean, std, p10, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("window_start", s.WindowStartTick),
		slog.Int64("window_end", s.WindowEndTick),
		slog.String("season", s.Season),
		slog.Float64("year_progress", s.YearProgress),
		slog.Int("agents", s.Agents),
		slog.Int("kills", s.Kills),
		slog.Int("grazes", s.Grazes),
		slog.Int("hunt_starts", s.HuntStarts),
		slog.Int("hunt_abandons", s.HuntAbandons),
		slog.Float64("hunt_success_rate", s.HuntSuccessRate),
		slog.Int("breeds", s.Breeds),
		slog.Int("litter_total", s.LitterTotal),
		slog.Int("migration_starts", s.MigrationStarts),
		slog.Int("migration_arrivals", s.MigrationArrivals),
		slog.Int("starvations", s.Starvations),
		slog.Float64("hunger_mean", s.HungerMean),
		slog.Float64("hunger_std", s.HungerStd),
		slog.Float64("hunger_p10", s.HungerP10),
		slog.Float64("hunger_p50", s.HungerP50),
		slog.Float64("hunger_p90", s.HungerP90),
		slog.Float64("vegetation_mean", s.VegetationMean),
		slog.Float64("hunting_pressure_mean", s.HuntingPressureMean),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("window", "stats", s)
}

// PopulationRow is one species' population count at a window boundary,
// written to populations.csv.
type PopulationRow struct {
	WindowEndTick int64  `csv:"window_end"`
	SpeciesID     string `csv:"species"`
	Count         int    `csv:"count"`
}
