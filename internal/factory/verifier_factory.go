package factory

import (
	"fmt"

	"github.com/mikey/job-contact-extractor/internal/adapters/mxcheck"
	"github.com/mikey/job-contact-extractor/internal/config"
	"github.com/mikey/job-contact-extractor/internal/core"
	"go.uber.org/zap"
)

// CreateVerifier creates the MX verifier, or nil when verification is disabled
func CreateVerifier(cfg *config.Config, logger *zap.Logger) (core.DomainVerifier, error) {
	mxCfg, err := cfg.GetMX()
	if err != nil {
		return nil, fmt.Errorf("invalid MX configuration: %w", err)
	}
	if !mxCfg.Enabled {
		return nil, nil
	}
	if len(mxCfg.Servers) == 0 {
		return nil, fmt.Errorf("MX verification enabled without DNS servers")
	}

	return mxcheck.NewVerifier(mxCfg.Servers, mxCfg.Timeout, logger.Named("mx")), nil
}
