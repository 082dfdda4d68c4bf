// Package config loads and validates the menuforge configuration file.
//
// Configuration lives in a TOML file (default ~/.config/menuforge/config.toml)
// with sections for paths, generation service settings, workflow thresholds,
// notifications, and logging. Load applies defaults, expands paths, pulls the
// generation API key from the environment (including a .env file in the
// working directory), and rejects invalid combinations before anything else
// starts.
package config
