package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Tag     string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}

	// Generate custom message based on tag
	switch e.Tag {
	case "required":
		return fmt.Sprintf("%s is required", e.Field)
	case "min":
		return fmt.Sprintf("%s must be at least", e.Field)
	case "max":
		return fmt.Sprintf("%s must be at most", e.Field)
	case "oneof":
		return fmt.Sprintf("%s must be one of", e.Field)
	default:
		return fmt.Sprintf("%s failed validation", e.Field)
	}
}

// ValidationErrors represents multiple validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	var messages []string
	for _, err := range e {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(messages, "; "))
}

// Validator provides configuration validation.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a new configuration validator.
func NewValidator() (*Validator, error) {
	validate := validator.New()

	// Register custom validation functions
	if err := registerAllValidators(validate); err != nil {
		return nil, fmt.Errorf("failed to register validators: %w", err)
	}

	return &Validator{validate: validate}, nil
}

// ValidateConfig validates a configuration struct.
func (v *Validator) ValidateConfig(config *Config) error {
	// Check for nil config first
	if config == nil {
		return ValidationErrors{
			ValidationError{
				Field:   "config",
				Tag:     "required",
				Value:   nil,
				Message: "config is nil",
			},
		}
	}

	err := v.validate.Struct(config)
	if err == nil {
		// Perform additional custom validations if struct validation passes
		if customErrors := v.validateCustomRules(config); len(customErrors) > 0 {
			return customErrors
		}
		return nil
	}

	// Convert validator errors to our custom error format
	var validationErrors ValidationErrors

	if errs, ok := err.(validator.ValidationErrors); ok {
		for _, e := range errs {
			validationErrors = append(validationErrors, ValidationError{
				Field:   e.Field(),
				Tag:     e.Tag(),
				Value:   e.Value(),
				Message: getValidationMessage(e),
			})
		}
	} else {
		validationErrors = append(validationErrors, ValidationError{
			Message: err.Error(),
		})
	}

	// Perform additional custom validations
	if customErrors := v.validateCustomRules(config); len(customErrors) > 0 {
		validationErrors = append(validationErrors, customErrors...)
	}

	if len(validationErrors) > 0 {
		return validationErrors
	}

	return nil
}

// validateCustomRules performs additional custom validation rules.
func (v *Validator) validateCustomRules(config *Config) ValidationErrors {
	var errors ValidationErrors

	if config == nil {
		errors = append(errors, ValidationError{
			Field:   "config",
			Tag:     "required",
			Value:   nil,
			Message: "config cannot be nil",
		})
		return errors
	}

	// Validate evolution configuration consistency
	if errs := v.validateEvolutionConfig(&config.Evolution); len(errs) > 0 {
		errors = append(errors, errs...)
	}

	// Validate storage configuration
	if errs := v.validateStorageConfig(&config.Storage); len(errs) > 0 {
		errors = append(errors, errs...)
	}

	return errors
}

// validateEvolutionConfig validates evolution configuration.
func (v *Validator) validateEvolutionConfig(config *EvolutionConfig) ValidationErrors {
	var errors ValidationErrors

	// An elite larger than the population leaves no room for offspring
	if config.EliteSize > config.PopulationSize {
		errors = append(errors, ValidationError{
			Field:   "Evolution.EliteSize",
			Message: fmt.Sprintf("elite size %d exceeds population size %d", config.EliteSize, config.PopulationSize),
		})
	}

	return errors
}

// validateStorageConfig validates storage configuration.
func (v *Validator) validateStorageConfig(config *StorageConfig) ValidationErrors {
	var errors ValidationErrors

	if config.Backend == "sqlite" && config.Path == "" {
		errors = append(errors, ValidationError{
			Field:   "Storage.Path",
			Message: "path is required for the sqlite backend",
		})
	}

	return errors
}

// registerAllValidators registers all custom validators.
func registerAllValidators(validate *validator.Validate) error {
	validators := map[string]validator.Func{
		"log_level":    validateLogLevel,
		"backend_type": validateBackendType,
	}

	for name, fn := range validators {
		if err := validate.RegisterValidation(name, fn); err != nil {
			return fmt.Errorf("failed to register validator '%s': %w", name, err)
		}
	}

	return nil
}

// validateLogLevel validates log levels.
func validateLogLevel(fl validator.FieldLevel) bool {
	level := fl.Field().String()
	validLevels := []string{"DEBUG", "INFO", "WARN", "ERROR", "FATAL"}
	for _, valid := range validLevels {
		if level == valid {
			return true
		}
	}
	return false
}

// validateBackendType validates snapshot backend types.
func validateBackendType(fl validator.FieldLevel) bool {
	backendType := fl.Field().String()
	validTypes := []string{"memory", "sqlite"}
	for _, valid := range validTypes {
		if backendType == valid {
			return true
		}
	}
	return false
}

// getValidationMessage returns a human-readable validation message.
func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", e.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s", e.Field(), e.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", e.Field(), e.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", e.Field(), e.Param())
	case "log_level":
		return fmt.Sprintf("%s must be a valid log level", e.Field())
	case "backend_type":
		return fmt.Sprintf("%s must be a supported backend", e.Field())
	default:
		return fmt.Sprintf("%s failed validation", e.Field())
	}
}

// Global validator instance.
var (
	globalValidator *Validator
	validatorOnce   sync.Once
)

// GetValidator returns the global validator instance.
func GetValidator() *Validator {
	validatorOnce.Do(func() {
		var err error
		globalValidator, err = NewValidator()
		if err != nil {
			panic(fmt.Sprintf("failed to create global validator: %v", err))
		}
	})
	return globalValidator
}

// ValidateConfiguration validates a configuration using the global validator.
func ValidateConfiguration(config *Config) error {
	return GetValidator().ValidateConfig(config)
}
