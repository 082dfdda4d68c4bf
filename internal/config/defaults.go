package config

import "menuforge/internal/language"

// Default returns the built-in configuration values applied before any file
// is read.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:   "~/.local/share/menuforge",
			LogDir:    "~/.local/share/menuforge/logs",
			ExportDir: "~/.local/share/menuforge/export",
		},
		Generation: Generation{
			BaseURL:           "https://api.openai.com/v1/chat/completions",
			PrimaryModel:      "gpt-4",
			SecondaryModel:    "gpt-3.5-turbo",
			TimeoutSeconds:    30,
			RequestIntervalMS: 1000,
			MaxTokens:         1500,
			Temperature:       0.7,
			Languages:         language.Codes(),
		},
		Workflow: Workflow{
			ApprovalThreshold: 300,
			BackupRetention:   20,
		},
		Notifications: Notifications{
			RequestTimeout: 10,
			Generation:     true,
			Backup:         true,
			Errors:         true,
		},
		Logging: Logging{
			Format: "console",
			Level:  "info",
		},
	}
}
