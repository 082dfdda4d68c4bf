package main

import (
	"fmt"
	"strings"
	"time"

	"menuforge/internal/config"
	"menuforge/internal/language"
)

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}

func formatTime(ts time.Time) string {
	if ts.IsZero() {
		return "-"
	}
	return ts.Local().Format("2006-01-02 15:04:05")
}

func truncate(value string, max int) string {
	runes := []rune(value)
	if len(runes) <= max {
		return value
	}
	return string(runes[:max]) + "…"
}

// resolveLanguages turns a --languages flag value into concrete codes,
// defaulting to the configured set.
func resolveLanguages(cfg *config.Config, flagValue string) ([]string, error) {
	raw := strings.TrimSpace(flagValue)
	if raw == "" {
		return cfg.Generation.Languages, nil
	}
	var codes []string
	for _, part := range strings.Split(raw, ",") {
		code := strings.TrimSpace(part)
		if code == "" {
			continue
		}
		info, ok := language.Lookup(code)
		if !ok {
			return nil, fmt.Errorf("unsupported language %q (supported: %s)", code, strings.Join(language.Codes(), ", "))
		}
		codes = append(codes, info.Code)
	}
	if len(codes) == 0 {
		return nil, fmt.Errorf("no languages selected")
	}
	return codes, nil
}
