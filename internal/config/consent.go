package config

import (
	"fmt"
	"os"
	"strconv"
)

const (
	EnvConsentLexiconPath  = "CELESTINA_CONSENT_LEXICON_PATH"
	EnvConsentHistoryLimit = "CELESTINA_CONSENT_HISTORY_LIMIT"
)

// ConsentConfig holds consent engine settings. LexiconPath optionally points
// to a TOML file whose pattern lists extend the built-in Spanish lexicon.
type ConsentConfig struct {
	LexiconPath  string `toml:"lexicon_path"`
	HistoryLimit int    `toml:"history_limit"`
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *ConsentConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *ConsentConfig) Merge(overlay *ConsentConfig) {
	if overlay.LexiconPath != "" {
		c.LexiconPath = overlay.LexiconPath
	}
	if overlay.HistoryLimit != 0 {
		c.HistoryLimit = overlay.HistoryLimit
	}
}

func (c *ConsentConfig) loadDefaults() {
	if c.HistoryLimit == 0 {
		c.HistoryLimit = 50
	}
}

func (c *ConsentConfig) loadEnv() {
	if v := os.Getenv(EnvConsentLexiconPath); v != "" {
		c.LexiconPath = v
	}
	if v := os.Getenv(EnvConsentHistoryLimit); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.HistoryLimit = n
		}
	}
}

func (c *ConsentConfig) validate() error {
	if c.HistoryLimit < 1 {
		return fmt.Errorf("history_limit must be positive")
	}
	if c.LexiconPath != "" {
		if _, err := os.Stat(c.LexiconPath); err != nil {
			return fmt.Errorf("lexicon_path: %w", err)
		}
	}
	return nil
}
