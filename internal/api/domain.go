package api

import (
	"fmt"

	"github.com/celestina-app/celestina/internal/config"
	"github.com/celestina-app/celestina/internal/consent"
	"github.com/celestina-app/celestina/internal/verifications"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Verifications verifications.System
}

// NewDomain creates all domain systems from the API runtime. The consent
// lexicon is the built-in Spanish set, optionally extended from
// cfg.Consent.LexiconPath.
func NewDomain(cfg *config.Config, runtime *Runtime) (*Domain, error) {
	lexicon := consent.Default()
	if cfg.Consent.LexiconPath != "" {
		loaded, err := consent.Load(cfg.Consent.LexiconPath)
		if err != nil {
			return nil, fmt.Errorf("load lexicon: %w", err)
		}
		lexicon = loaded
	}

	verificationsSystem := verifications.New(
		runtime.Database.Connection(),
		consent.NewAnalyzer(lexicon),
		runtime.Logger,
		runtime.Pagination,
		cfg.Consent.HistoryLimit,
	)

	return &Domain{
		Verifications: verificationsSystem,
	}, nil
}
