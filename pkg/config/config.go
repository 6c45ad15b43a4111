// Package config loads and validates the engine configuration from YAML.
//
// A config file is merged over DefaultConfig, so it only needs to name the
// fields it overrides. The merged result is validated with struct tags plus
// cross-field rules before it is handed to the caller.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cogpy/agent-neuro/pkg/logging"
)

// Config represents the complete configuration for the evolution engine.
type Config struct {
	// Evolution configuration
	Evolution EvolutionConfig `yaml:"evolution" validate:"required"`

	// Optimizer configuration
	Optimizer OptimizerConfig `yaml:"optimizer,omitempty" validate:"omitempty"`

	// Personality configuration
	Personality PersonalityConfig `yaml:"personality,omitempty" validate:"omitempty"`

	// Storage configuration
	Storage StorageConfig `yaml:"storage,omitempty" validate:"omitempty"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging,omitempty" validate:"omitempty"`
}

// EvolutionConfig holds population evolution parameters.
type EvolutionConfig struct {
	// Number of kernels in the population
	PopulationSize int `yaml:"population_size" validate:"min=1"`

	// Number of generations to run
	Generations int `yaml:"generations" validate:"min=1"`

	// Probability that an offspring is mutated (zero disables the gate)
	MutationRate float64 `yaml:"mutation_rate" validate:"min=0,max=1"`

	// Number of top kernels carried over unchanged (zero disables elitism)
	EliteSize int `yaml:"elite_size" validate:"min=0"`

	// Seed for the random source; zero selects a time-based seed
	Seed int64 `yaml:"seed"`

	// Maximum number of concurrent fitness evaluations
	Concurrency int `yaml:"concurrency" validate:"min=1"`
}

// OptimizerConfig holds hill-climbing parameters for single kernels.
type OptimizerConfig struct {
	// Number of self-optimization iterations applied to the best kernel
	SelfOptimizeIterations int `yaml:"self_optimize_iterations" validate:"min=0"`

	// Standard deviation of the Gaussian fitness estimator
	EstimatorSigma float64 `yaml:"estimator_sigma" validate:"min=0"`
}

// PersonalityConfig holds trait inheritance and emotional dynamics settings.
type PersonalityConfig struct {
	// Blend weight toward parent traits when deriving subordinates
	InheritanceFactor float64 `yaml:"inheritance_factor" validate:"min=0,max=1"`

	// Per-step decay applied to emotional intensity
	EmotionDecayRate float64 `yaml:"emotion_decay_rate" validate:"min=0,max=1"`

	// Base probability of chaos injection before trait scaling
	ChaosBaseProbability float64 `yaml:"chaos_base_probability" validate:"min=0,max=1"`
}

// StorageConfig selects the snapshot backend.
type StorageConfig struct {
	// Backend type (memory, sqlite)
	Backend string `yaml:"backend" validate:"omitempty,backend_type"`

	// Database file path (for the sqlite backend)
	Path string `yaml:"path"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Log level (DEBUG, INFO, WARN, ERROR, FATAL)
	Level string `yaml:"level" validate:"omitempty,log_level"`

	// Whether console output goes to stderr instead of stdout
	UseStderr bool `yaml:"use_stderr"`
}

// Severity converts the configured level to a logging severity.
// Unknown or empty levels fall back to INFO.
func (c LoggingConfig) Severity() logging.Severity {
	return logging.ParseSeverity(c.Level)
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() *Config {
	return &Config{
		Evolution: EvolutionConfig{
			PopulationSize: 12,
			Generations:    10,
			MutationRate:   0.15,
			EliteSize:      2,
			Seed:           0,
			Concurrency:    4,
		},
		Optimizer: OptimizerConfig{
			SelfOptimizeIterations: 25,
			EstimatorSigma:         0.05,
		},
		Personality: PersonalityConfig{
			InheritanceFactor:    0.7,
			EmotionDecayRate:     0.1,
			ChaosBaseProbability: 0.3,
		},
		Storage: StorageConfig{
			Backend: "memory",
			Path:    "",
		},
		Logging: LoggingConfig{
			Level:     "INFO",
			UseStderr: false,
		},
	}
}

// Load reads a YAML configuration file and merges it over the defaults.
// An empty path returns the validated defaults; a path that cannot be read
// or parsed is an error. The merged configuration is validated before it
// is returned.
func Load(path string) (*Config, error) {
	config := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse YAML from %s: %w", path, err)
		}
	}

	if err := ValidateConfiguration(config); err != nil {
		return nil, err
	}

	return config, nil
}
