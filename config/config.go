// Package config provides configuration loading and access for the engine.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all engine tunables.
type Config struct {
	Hunger     HungerConfig     `yaml:"hunger"`
	Hunt       HuntConfig       `yaml:"hunt"`
	Flee       FleeConfig       `yaml:"flee"`
	Forage     ForageConfig     `yaml:"forage"`
	Breeding   BreedingConfig   `yaml:"breeding"`
	Pack       PackConfig       `yaml:"pack"`
	Patrol     PatrolConfig     `yaml:"patrol"`
	Migration  MigrationConfig  `yaml:"migration"`
	Territory  TerritoryConfig  `yaml:"territory"`
	Seasons    SeasonsConfig    `yaml:"seasons"`
	Regions    RegionsConfig    `yaml:"regions"`
	Perception PerceptionConfig `yaml:"perception"`
	Population PopulationConfig `yaml:"population"`
	Behavior   BehaviorConfig   `yaml:"behavior"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// HungerConfig holds satiety decay and starvation parameters.
type HungerConfig struct {
	BaseDecayPerTick    float64 `yaml:"base_decay_per_tick"`  // Decay per tick before trophic scaling
	TrophicDecayScale   float64 `yaml:"trophic_decay_scale"`  // Extra decay fraction per trophic level above 1
	HungryThreshold     float64 `yaml:"hungry_threshold"`     // Below this the agent seeks food
	StarvationThreshold float64 `yaml:"starvation_threshold"` // Below this starvation damage begins
	StarvationInterval  int     `yaml:"starvation_interval"`  // Ticks between starvation damage events
	InitialMin          float64 `yaml:"initial_min"`          // New agents start in [min, min+spread]
	InitialSpread       float64 `yaml:"initial_spread"`
}

// HuntConfig holds hunt state machine parameters.
type HuntConfig struct {
	SearchRadius             float64 `yaml:"search_radius"`
	ChaseRadiusBonus         float64 `yaml:"chase_radius_bonus"` // Extra range allowed while chasing
	AttackRange              float64 `yaml:"attack_range"`
	StalkDistance            float64 `yaml:"stalk_distance"` // Within this, stalking becomes chasing
	StalkSpeed               float64 `yaml:"stalk_speed"`
	ChaseSpeed               float64 `yaml:"chase_speed"`
	MaxDurationTicks         int     `yaml:"max_duration_ticks"`
	DefaultCooldownTicks     int     `yaml:"default_cooldown_ticks"`     // Used when a species sets none
	DefaultNutritionalValue  float64 `yaml:"default_nutritional_value"`  // Used when prey is not in the prey table
	DefaultPreyPreference    float64 `yaml:"default_prey_preference"`    // Used when prey is not in the prey table
	CommitmentTicks          int     `yaml:"commitment_ticks"`           // Directional commitment window
	DirectionPreference      float64 `yaml:"direction_preference"`       // Max score reduction for aligned candidates
	OppositeDirectionPenalty float64 `yaml:"opposite_direction_penalty"` // Score penalty slope against misaligned candidates
	RetargetInterval         int     `yaml:"retarget_interval"`
}

// FleeConfig holds flight response parameters.
type FleeConfig struct {
	DetectionRadius     float64 `yaml:"detection_radius"`
	DefaultFleeDistance float64 `yaml:"default_flee_distance"`
	SafetyMultiplier    float64 `yaml:"safety_multiplier"` // Flee distance times this = safe
	SampleDirections    int     `yaml:"sample_directions"`
	SampleDistance      float64 `yaml:"sample_distance"`
	HomeRange           float64 `yaml:"home_range"`      // Max comfortable distance from home
	HomePenalty         float64 `yaml:"home_penalty"`    // Score multiplier outside home range
	PredatorWeight      float64 `yaml:"predator_weight"` // Weight of distance-from-predator in score
	MoveSpeed           float64 `yaml:"move_speed"`
	MaxDurationTicks    int     `yaml:"max_duration_ticks"`
	ReplanInterval      int     `yaml:"replan_interval"`
}

// ForageConfig holds foraging parameters.
type ForageConfig struct {
	SearchRadius      float64 `yaml:"search_radius"`
	SearchHeight      float64 `yaml:"search_height"`
	EatDurationTicks  int     `yaml:"eat_duration_ticks"`
	Nutrition         float64 `yaml:"nutrition"`           // Hunger restored per forage
	FailCooldownTicks int     `yaml:"fail_cooldown_ticks"` // Backoff after a failed search
	MoveSpeed         float64 `yaml:"move_speed"`
	MaxDurationTicks  int     `yaml:"max_duration_ticks"`
}

// BreedingConfig holds seasonal breeding parameters.
type BreedingConfig struct {
	MateSearchRadius    float64 `yaml:"mate_search_radius"`
	CrowdSampleRadius   float64 `yaml:"crowd_sample_radius"`   // Radius of the local capacity sample
	CapacityCells       int     `yaml:"capacity_cells"`        // Cell count the capacity sample represents
	PreyRatioRequired   float64 `yaml:"prey_ratio_required"`   // Local prey per predator needed to breed
	DwellTicks          int     `yaml:"dwell_ticks"`           // Ticks adjacent to mate before spawning
	AdjacentRange       float64 `yaml:"adjacent_range"`        // Counts as adjacent to the mate
	CooldownTicks       int     `yaml:"cooldown_ticks"`
	HunterCooldownScale float64 `yaml:"hunter_cooldown_scale"` // Cooldown multiplier for hunting species
	HungerCost          float64 `yaml:"hunger_cost"`
	HunterHungerCost    float64 `yaml:"hunter_hunger_cost"`
	MoveSpeed           float64 `yaml:"move_speed"`
	MaxDurationTicks    int     `yaml:"max_duration_ticks"`
}

// PackConfig holds pack follow parameters.
type PackConfig struct {
	StartDistance float64 `yaml:"start_distance"` // Regroup when farther than this from the leader
	StopDistance  float64 `yaml:"stop_distance"`  // Stop once within this of the centroid
	OffsetRadius  float64 `yaml:"offset_radius"`  // Per-agent jitter around the centroid
	MoveSpeed     float64 `yaml:"move_speed"`
}

// PatrolConfig holds territory patrol parameters.
type PatrolConfig struct {
	StartChance   float64 `yaml:"start_chance"` // Per-evaluation probability of starting
	Waypoints     int     `yaml:"waypoints"`
	InsetFraction float64 `yaml:"inset_fraction"` // Waypoints sit at radius*(1-inset)
	DwellTicks    int     `yaml:"dwell_ticks"`
	ArriveRadius  float64 `yaml:"arrive_radius"`
	MoveSpeed     float64 `yaml:"move_speed"`
}

// MigrationConfig holds migration planner parameters.
type MigrationConfig struct {
	UrgeThreshold        float64 `yaml:"urge_threshold"`   // Seasonal urge above this triggers planning
	ForageThreshold      float64 `yaml:"forage_threshold"` // Forage modifier below this triggers planning
	MinDistance          float64 `yaml:"min_distance"`
	DistanceSpread       float64 `yaml:"distance_spread"` // Candidate distance = min + rand*spread
	Attempts             int     `yaml:"attempts"`
	AngleJitter          float64 `yaml:"angle_jitter"` // Radians of jitter around the bias direction
	SuitabilityThreshold float64 `yaml:"suitability_threshold"`
	WaypointDistance     float64 `yaml:"waypoint_distance"`
	ArriveRadius         float64 `yaml:"arrive_radius"`
	MaxDurationTicks     int     `yaml:"max_duration_ticks"`
	StuckWindowTicks     int     `yaml:"stuck_window_ticks"`
	StuckDistance        float64 `yaml:"stuck_distance"` // Net displacement below this counts as stuck
	MaxReplans           int     `yaml:"max_replans"`
	MoveSpeed            float64 `yaml:"move_speed"`
}

// TerritoryConfig holds territory registry parameters.
type TerritoryConfig struct {
	CellSize      float64 `yaml:"cell_size"` // Spatial index bucket size
	DefaultRadius float64 `yaml:"default_radius"`
}

// SeasonsConfig holds season clock parameters.
type SeasonsConfig struct {
	YearLengthTicks int64 `yaml:"year_length_ticks"`
}

// RegionsConfig holds ecosystem region parameters.
type RegionsConfig struct {
	CellSize           float64 `yaml:"cell_size"`            // Region edge length in world units
	UpdateInterval     int     `yaml:"update_interval"`      // Ticks between region upkeep passes
	VegetationRegen    float64 `yaml:"vegetation_regen"`     // Regeneration per tick toward 1.0
	PressureDecay      float64 `yaml:"pressure_decay"`       // Hunting pressure decay per tick
	KillPressure       float64 `yaml:"kill_pressure"`        // Pressure added per kill
	GrazeVegetationHit float64 `yaml:"graze_vegetation_hit"` // Vegetation removed per graze
}

// PerceptionConfig holds perception query parameters.
type PerceptionConfig struct {
	PreferenceScoreWeight float64 `yaml:"preference_score_weight"` // Score discount at preference 1.0
	ThreatBaseVisibility  float64 `yaml:"threat_base_visibility"`
	ThreatBaseApproach    float64 `yaml:"threat_base_approach"`
}

// PopulationConfig holds population tracking and spawn gating parameters.
type PopulationConfig struct {
	ScanInterval    int     `yaml:"scan_interval"`     // Ticks between global population scans
	ScanRadius      float64 `yaml:"scan_radius"`       // Half-extent of the global scan box
	CapacityPerCell float64 `yaml:"capacity_per_cell"` // Fallback when a species sets none
}

// BehaviorConfig holds controller-level parameters.
type BehaviorConfig struct {
	SuppressHostTargeting bool `yaml:"suppress_host_targeting"` // Disable host-native target selection for managed agents
}

// TelemetryConfig holds telemetry output parameters.
type TelemetryConfig struct {
	Enabled     bool   `yaml:"enabled"`
	WindowTicks int    `yaml:"window_ticks"`
	OutputDir   string `yaml:"output_dir"`
	LogWindows  bool   `yaml:"log_windows"`
}

// DerivedConfig holds values computed after loading.
type DerivedConfig struct {
	SeasonLengthTicks int64 // Seasons.YearLengthTicks / 4
}

var global *Config

// Init loads configuration and installs it as the global config.
// An empty path uses the embedded defaults alone.
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// Cfg returns the global configuration. Init must have been called first.
func Cfg() *Config {
	if global == nil {
		panic("config.Cfg called before config.Init")
	}
	return global
}

// Set installs a configuration as the global config. Used by tests.
func Set(cfg *Config) {
	cfg.computeDerived()
	global = cfg
}

// Load parses the embedded defaults and, if path is non-empty, merges the
// user file over them.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	cfg.computeDerived()
	return cfg, nil
}

func (c *Config) computeDerived() {
	c.Derived.SeasonLengthTicks = c.Seasons.YearLengthTicks / 4
}

// WriteYAML saves the configuration to a file for run reproducibility.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}
