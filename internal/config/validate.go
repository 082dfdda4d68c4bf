package config

import (
	"errors"
	"fmt"
	"strings"

	"menuforge/internal/language"
)

// Validate rejects configurations that cannot drive the workflow.
func (c *Config) Validate() error {
	var problems []string

	if strings.TrimSpace(c.Paths.DataDir) == "" {
		problems = append(problems, "paths.data_dir is required")
	}
	if c.Generation.PrimaryModel == "" {
		problems = append(problems, "generation.primary_model is required")
	}
	if c.Generation.SecondaryModel == "" {
		problems = append(problems, "generation.secondary_model is required")
	}
	if c.Generation.TimeoutSeconds <= 0 {
		problems = append(problems, "generation.timeout_seconds must be positive")
	}
	if c.Generation.RequestIntervalMS < 0 {
		problems = append(problems, "generation.request_interval_ms cannot be negative")
	}
	if c.Generation.MaxTokens <= 0 {
		problems = append(problems, "generation.max_tokens must be positive")
	}
	if c.Generation.Temperature < 0 || c.Generation.Temperature > 2 {
		problems = append(problems, "generation.temperature must be within [0, 2]")
	}
	if len(c.Generation.Languages) == 0 {
		problems = append(problems, "generation.languages must name at least one target")
	}
	for _, code := range c.Generation.Languages {
		if !language.Supported(code) {
			problems = append(problems, fmt.Sprintf("generation.languages: unsupported code %q", code))
		}
	}
	if c.Workflow.ApprovalThreshold <= 0 {
		problems = append(problems, "workflow.approval_threshold must be positive")
	}
	if c.Workflow.BackupRetention <= 0 {
		problems = append(problems, "workflow.backup_retention must be positive")
	}
	if c.Notifications.RequestTimeout < 0 {
		problems = append(problems, "notifications.request_timeout cannot be negative")
	}
	switch c.Logging.Format {
	case "", "console", "json":
	default:
		problems = append(problems, fmt.Sprintf("logging.format: unsupported value %q", c.Logging.Format))
	}

	if len(problems) > 0 {
		return errors.New("invalid configuration: " + strings.Join(problems, "; "))
	}
	return nil
}
