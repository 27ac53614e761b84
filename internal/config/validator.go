package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"sortbench/internal/benchmark"
	"sortbench/internal/dataset"
)

// OutputFormats lists the accepted values of output.format.
var OutputFormats = []string{"table", "markdown", "json", "yaml", "text", "chart"}

// ValidateConfig validates configuration values and returns an error if any are invalid.
// This function should be called after viper has loaded the configuration.
func ValidateConfig() error {
	var errors []string

	s, err := Current()
	if err != nil {
		errors = append(errors, err.Error())
	}

	if err == nil {
		if len(s.Sizes) == 0 {
			errors = append(errors, "sizes must list at least one size")
		}
		for _, size := range s.Sizes {
			if size <= 0 {
				errors = append(errors, fmt.Sprintf("sizes must be positive, got: %d", size))
			}
		}
		if s.Timeout < 0 {
			errors = append(errors, fmt.Sprintf("timeout must not be negative, got: %v", s.Timeout))
		}
	}

	if _, err := benchmark.ParseMode(viper.GetString("mode")); err != nil {
		errors = append(errors, fmt.Sprintf("mode must be skip or noskip, got: %q", viper.GetString("mode")))
	}

	if _, err := benchmark.PolicyByName(viper.GetString("skip.policy"),
		viper.GetInt("skip.threshold"), viper.GetInt("skip.selection_threshold")); err != nil {
		errors = append(errors, strings.TrimPrefix(err.Error(), benchmark.ErrInvalidConfig.Error()+": "))
	}

	if _, err := benchmark.ParseAlgorithms(stringList("algorithms")); err != nil {
		errors = append(errors, strings.TrimPrefix(err.Error(), benchmark.ErrInvalidConfig.Error()+": "))
	}

	if min, max := viper.GetInt("data.min"), viper.GetInt("data.max"); min > max {
		errors = append(errors, fmt.Sprintf("data.min (%d) must not exceed data.max (%d)", min, max))
	} else if err := dataset.CheckRange(min, max); err != nil {
		errors = append(errors, fmt.Sprintf("data.min (%d) and data.max (%d) span too many values", min, max))
	}

	if workers := viper.GetInt("workers"); workers <= 0 {
		errors = append(errors, fmt.Sprintf("workers must be positive, got: %d", workers))
	}

	format := viper.GetString("output.format")
	if !contains(OutputFormats, format) {
		errors = append(errors, fmt.Sprintf("output.format must be one of %s, got: %q",
			strings.Join(OutputFormats, ", "), format))
	}

	// Validate port numbers (if set, must be in valid range 1-65535)
	if port := viper.GetInt("server.port"); port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("server.port must be between 1 and 65535, got: %d", port))
	}
	if port := viper.GetInt("metrics_port"); port < 0 || port > 65535 {
		errors = append(errors, fmt.Sprintf("metrics_port must be between 0 and 65535, got: %d", port))
	}

	if max := viper.GetInt("server.max_size"); max <= 0 {
		errors = append(errors, fmt.Sprintf("server.max_size must be positive, got: %d", max))
	}
	if rate := viper.GetInt("server.rate_per_minute"); rate < 0 {
		errors = append(errors, fmt.Sprintf("server.rate_per_minute must not be negative, got: %d", rate))
	}

	if len(errors) > 0 {
		errorMsg := errors[0]
		for i := 1; i < len(errors); i++ {
			errorMsg += "\n  " + errors[i]
		}
		return fmt.Errorf("configuration validation failed:\n  %s", errorMsg)
	}

	return nil
}

// ValidateAndExit validates the configuration and exits with a non-zero code if validation fails.
func ValidateAndExit() {
	if err := ValidateConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
