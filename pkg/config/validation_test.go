package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError(t *testing.T) {
	err := &ValidationError{
		Field: "TestField",
		Tag:   "required",
		Value: nil,
	}

	assert.Contains(t, err.Error(), "TestField")
	assert.Contains(t, err.Error(), "required")

	// Test with custom message
	err.Message = "Custom validation message"
	assert.Equal(t, "Custom validation message", err.Error())
}

func TestValidationErrors(t *testing.T) {
	errors := ValidationErrors{
		{Field: "Field1", Tag: "required", Value: nil},
		{Field: "Field2", Tag: "min", Value: 0},
	}

	errStr := errors.Error()
	assert.Contains(t, errStr, "validation failed")
	assert.Contains(t, errStr, "Field1")
	assert.Contains(t, errStr, "Field2")
}

func TestNewValidator(t *testing.T) {
	validator, err := NewValidator()
	require.NoError(t, err)
	require.NotNil(t, validator)

	// The default config passes struct tags and custom rules
	err = validator.ValidateConfig(DefaultConfig())
	assert.NoError(t, err)
}

func TestValidateNilConfig(t *testing.T) {
	validator, err := NewValidator()
	require.NoError(t, err)

	err = validator.ValidateConfig(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config is nil")
}

func TestValidateStructTags(t *testing.T) {
	validator, err := NewValidator()
	require.NoError(t, err)

	tests := []struct {
		name      string
		mutate    func(*Config)
		errorText string
	}{
		{
			name:      "zero population size",
			mutate:    func(c *Config) { c.Evolution.PopulationSize = 0 },
			errorText: "PopulationSize",
		},
		{
			name:      "negative mutation rate",
			mutate:    func(c *Config) { c.Evolution.MutationRate = -0.1 },
			errorText: "MutationRate",
		},
		{
			name:      "mutation rate above one",
			mutate:    func(c *Config) { c.Evolution.MutationRate = 1.5 },
			errorText: "MutationRate must be at most 1",
		},
		{
			name:      "negative estimator sigma",
			mutate:    func(c *Config) { c.Optimizer.EstimatorSigma = -0.5 },
			errorText: "EstimatorSigma",
		},
		{
			name:      "inheritance factor above one",
			mutate:    func(c *Config) { c.Personality.InheritanceFactor = 2.0 },
			errorText: "InheritanceFactor",
		},
		{
			name:      "unknown log level",
			mutate:    func(c *Config) { c.Logging.Level = "LOUD" },
			errorText: "Level must be a valid log level",
		},
		{
			name:      "unknown storage backend",
			mutate:    func(c *Config) { c.Storage.Backend = "redis" },
			errorText: "Backend must be a supported backend",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.mutate(config)

			err := validator.ValidateConfig(config)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorText)
		})
	}
}

func TestValidateEvolutionConfig(t *testing.T) {
	validator, err := NewValidator()
	require.NoError(t, err)

	// Elite larger than the population
	config := DefaultConfig()
	config.Evolution.EliteSize = 20
	config.Evolution.PopulationSize = 8

	err = validator.ValidateConfig(config)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "elite size 20 exceeds population size 8")
}

func TestValidateStorageConfig(t *testing.T) {
	validator, err := NewValidator()
	require.NoError(t, err)

	// sqlite backend without a path
	config := DefaultConfig()
	config.Storage.Backend = "sqlite"
	config.Storage.Path = ""

	err = validator.ValidateConfig(config)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "path is required for the sqlite backend")

	// memory backend needs no path
	config = DefaultConfig()
	config.Storage.Backend = "memory"
	config.Storage.Path = ""

	err = validator.ValidateConfig(config)
	assert.NoError(t, err)
}

func TestGetValidator(t *testing.T) {
	validator1 := GetValidator()
	validator2 := GetValidator()

	// Should return the same instance
	require.NotNil(t, validator1)
	assert.Same(t, validator1, validator2)
}

func TestValidateConfiguration(t *testing.T) {
	config := DefaultConfig()
	err := ValidateConfiguration(config)
	assert.NoError(t, err)

	// Test with invalid config
	config.Evolution.Generations = -3
	err = ValidateConfiguration(config)
	assert.Error(t, err)
}
