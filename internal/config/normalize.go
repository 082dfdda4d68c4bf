package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// apiKeyEnv is consulted when the config file carries no API key. A .env file
// in the working directory is honored the same way.
const apiKeyEnv = "MENUFORGE_API_KEY"

func (c *Config) normalize() error {
	var err error
	if c.Paths.DataDir, err = expandPath(strings.TrimSpace(c.Paths.DataDir)); err != nil {
		return err
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return err
	}
	if c.Paths.ExportDir, err = expandPath(strings.TrimSpace(c.Paths.ExportDir)); err != nil {
		return err
	}

	c.Generation.APIKey = strings.TrimSpace(c.Generation.APIKey)
	c.Generation.BaseURL = strings.TrimSpace(c.Generation.BaseURL)
	c.Generation.PrimaryModel = strings.TrimSpace(c.Generation.PrimaryModel)
	c.Generation.SecondaryModel = strings.TrimSpace(c.Generation.SecondaryModel)
	if c.Generation.APIKey == "" {
		// Best effort; a missing .env file is not an error.
		_ = godotenv.Load()
		c.Generation.APIKey = strings.TrimSpace(os.Getenv(apiKeyEnv))
	}

	languages := make([]string, 0, len(c.Generation.Languages))
	seen := make(map[string]struct{}, len(c.Generation.Languages))
	for _, code := range c.Generation.Languages {
		code = strings.TrimSpace(code)
		if code == "" {
			continue
		}
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		languages = append(languages, code)
	}
	c.Generation.Languages = languages

	c.Notifications.NtfyTopic = strings.TrimSpace(c.Notifications.NtfyTopic)
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	return nil
}
