// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	World      WorldConfig      `yaml:"world"`
	Food       FoodConfig       `yaml:"food"`
	Pollution  PollutionConfig  `yaml:"pollution"`
	Population PopulationConfig `yaml:"population"`
	Species    SpeciesTable     `yaml:"species"`
	Mutation   MutationConfig   `yaml:"mutation"`
	Predation  PredationConfig  `yaml:"predation"`
	VM         VMConfig         `yaml:"vm"`
	Run        RunConfig        `yaml:"run"`
	Screen     ScreenConfig     `yaml:"screen"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// WorldConfig holds the grid dimensions in cells.
type WorldConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// FoodConfig holds food grid dynamics.
type FoodConfig struct {
	MaxUnits               int     `yaml:"max_units"`
	RegenProbability       float64 `yaml:"regen_probability"`       // +1 per tick on partially filled cells, scaled by (1 - pollution)
	DecayProbability       float64 `yaml:"decay_probability"`       // -1 per tick on non-empty cells, not affected by pollution
	SpontaneousProbability float64 `yaml:"spontaneous_probability"` // empty cell seeds 1 unit, scaled by (1 - pollution)
	Consumption            int     `yaml:"consumption"`             // units removed per EAT_PLANT
	EnergyFactor           float64 `yaml:"energy_factor"`           // energy per unit eaten

	InitialLayout   string  `yaml:"initial_layout"` // uniform | noise
	InitialFraction float64 `yaml:"initial_fraction"`
	InitialMin      int     `yaml:"initial_min"`
	InitialMax      int     `yaml:"initial_max"`
	NoiseScale      float64 `yaml:"noise_scale"` // noise layout only
}

// PollutionConfig holds the global pollution feedback parameters.
type PollutionConfig struct {
	IncrementPerLife float64 `yaml:"increment_per_life"`
	Cap              float64 `yaml:"cap"`
	DeathFactor      float64 `yaml:"death_factor"` // per-tick death chance = factor * level
}

// PopulationConfig holds initial spawn parameters.
type PopulationConfig struct {
	InitialA      int  `yaml:"initial_a"`
	InitialB      int  `yaml:"initial_b"`
	GenomeLength  int  `yaml:"genome_length"`
	MemorySize    int  `yaml:"memory_size"`
	RandomGenomes bool `yaml:"random_genomes"` // false = founder programs
}

// SpeciesTable holds the two species parameter sets.
type SpeciesTable struct {
	A SpeciesConfig `yaml:"a"`
	B SpeciesConfig `yaml:"b"`
}

// SpeciesConfig holds trait ranges and reproduction economics for one species.
type SpeciesConfig struct {
	Name   string `yaml:"name"`
	Symbol string `yaml:"symbol"`
	Color  []int  `yaml:"color"` // RGB

	LifespanMin   int     `yaml:"lifespan_min"`
	LifespanMax   int     `yaml:"lifespan_max"`
	EnergyMin     int     `yaml:"energy_min"`
	EnergyMax     int     `yaml:"energy_max"`
	MetabolismMin float64 `yaml:"metabolism_min"`
	MetabolismMax float64 `yaml:"metabolism_max"`
	MobilityMin   float64 `yaml:"mobility_min"`
	MobilityMax   float64 `yaml:"mobility_max"`

	ReproductionThreshold   float64 `yaml:"reproduction_threshold"`
	ReproductionCost        float64 `yaml:"reproduction_cost"`
	ReproductionProbability float64 `yaml:"reproduction_probability"`
}

// MutationConfig holds mutation parameters.
type MutationConfig struct {
	TraitProbability float64 `yaml:"trait_probability"` // per channel, per birth
	GenomeRate       float64 `yaml:"genome_rate"`       // per locus, per birth
	LifespanDelta    int     `yaml:"lifespan_delta"`
	MetabolismDelta  float64 `yaml:"metabolism_delta"`
	MobilityDelta    float64 `yaml:"mobility_delta"`
}

// PredationConfig holds predation parameters.
type PredationConfig struct {
	EnergyGain float64 `yaml:"energy_gain"`
}

// VMConfig holds gene VM parameters.
type VMConfig struct {
	MaxSteps           int     `yaml:"max_steps"`
	FoodVision         int     `yaml:"food_vision"`
	PreyVision         int     `yaml:"prey_vision"`
	LowEnergyThreshold float64 `yaml:"low_energy_threshold"`
}

// RunConfig holds run-loop limits.
type RunConfig struct {
	MaxTicks  int     `yaml:"max_ticks"`
	TickDelay float64 `yaml:"tick_delay"` // seconds between ticks (windowed/paced runs)
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	CellSize   int `yaml:"cell_size"`
	PanelWidth int `yaml:"panel_width"`
	TargetFPS  int `yaml:"target_fps"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	LogEvery int `yaml:"log_every"` // ticks between slog stats lines
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Cells     int           // World.Width * World.Height
	TickDelay time.Duration // Run.TickDelay as a duration
	ScreenW   int32         // window width in pixels
	ScreenH   int32         // window height in pixels
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
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
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	cfg.computeDerived()

	return cfg, nil
}

// Default returns a fresh copy of the embedded defaults.
// Panics if the embedded file is broken, which is a build defect.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return cfg
}

// Validate checks the construction-time invariants the engine relies on.
func (c *Config) Validate() error {
	var errs []error

	if c.World.Width <= 0 || c.World.Height <= 0 {
		errs = append(errs, fmt.Errorf("world dimensions must be positive, got %dx%d", c.World.Width, c.World.Height))
	}
	if c.Population.MemorySize <= 0 {
		errs = append(errs, fmt.Errorf("population.memory_size must be positive, got %d", c.Population.MemorySize))
	}
	if c.Population.GenomeLength < 0 {
		errs = append(errs, fmt.Errorf("population.genome_length must not be negative, got %d", c.Population.GenomeLength))
	}
	if c.Food.MaxUnits <= 0 {
		errs = append(errs, fmt.Errorf("food.max_units must be positive, got %d", c.Food.MaxUnits))
	}
	if c.VM.MaxSteps < 0 {
		errs = append(errs, fmt.Errorf("vm.max_steps must not be negative, got %d", c.VM.MaxSteps))
	}
	if c.Pollution.Cap < 0 || c.Pollution.Cap > 1 {
		errs = append(errs, fmt.Errorf("pollution.cap must be in [0,1], got %v", c.Pollution.Cap))
	}
	if c.Mutation.LifespanDelta < 0 {
		errs = append(errs, fmt.Errorf("mutation.lifespan_delta must not be negative, got %d", c.Mutation.LifespanDelta))
	}
	if c.Food.InitialMin > c.Food.InitialMax {
		errs = append(errs, fmt.Errorf("food initial range [%d,%d] is empty", c.Food.InitialMin, c.Food.InitialMax))
	}
	switch c.Food.InitialLayout {
	case "", "uniform", "noise":
	default:
		errs = append(errs, fmt.Errorf("food.initial_layout must be uniform or noise, got %q", c.Food.InitialLayout))
	}

	for _, sp := range []struct {
		key string
		cfg *SpeciesConfig
	}{{"a", &c.Species.A}, {"b", &c.Species.B}} {
		if err := sp.cfg.validate(); err != nil {
			errs = append(errs, fmt.Errorf("species.%s: %w", sp.key, err))
		}
	}

	return errors.Join(errs...)
}

func (s *SpeciesConfig) validate() error {
	switch {
	case s.LifespanMin > s.LifespanMax:
		return fmt.Errorf("lifespan range [%d,%d] is empty", s.LifespanMin, s.LifespanMax)
	case s.EnergyMin > s.EnergyMax:
		return fmt.Errorf("energy range [%d,%d] is empty", s.EnergyMin, s.EnergyMax)
	case s.MetabolismMin > s.MetabolismMax:
		return fmt.Errorf("metabolism range [%v,%v] is empty", s.MetabolismMin, s.MetabolismMax)
	case s.MobilityMin > s.MobilityMax:
		return fmt.Errorf("mobility range [%v,%v] is empty", s.MobilityMin, s.MobilityMax)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.Cells = c.World.Width * c.World.Height
	c.Derived.TickDelay = time.Duration(c.Run.TickDelay * float64(time.Second))
	c.Derived.ScreenW = int32(c.World.Width*c.Screen.CellSize + c.Screen.PanelWidth)
	c.Derived.ScreenH = int32(c.World.Height * c.Screen.CellSize)
}

// Clone returns a deep copy safe to mutate independently.
func (c *Config) Clone() *Config {
	cp := *c
	cp.Species.A.Color = append([]int(nil), c.Species.A.Color...)
	cp.Species.B.Color = append([]int(nil), c.Species.B.Color...)
	return &cp
}

// Recompute refreshes derived values after fields are changed in code.
func (c *Config) Recompute() {
	c.computeDerived()
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
