package factory

import (
	"fmt"

	"github.com/mikey/job-contact-extractor/internal/config"
	"github.com/mikey/job-contact-extractor/internal/domainlist"
	"github.com/mikey/job-contact-extractor/internal/extractor"
	"go.uber.org/zap"
)

// ExtractorFactory builds the extraction engine from configuration
type ExtractorFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewExtractorFactory creates a new extractor factory
func NewExtractorFactory(cfg *config.Config, logger *zap.Logger) *ExtractorFactory {
	return &ExtractorFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateConfig maps the configured policy onto an extractor.Config.
// Empty lists keep the built-in tables.
func (f *ExtractorFactory) CreateConfig() (extractor.Config, error) {
	extCfg, err := f.cfg.GetExtractor()
	if err != nil {
		return extractor.Config{}, err
	}
	if extCfg.CompanyBonus < 0 {
		return extractor.Config{}, fmt.Errorf("extractor company bonus must not be negative: %d", extCfg.CompanyBonus)
	}

	c := extractor.DefaultConfig()
	c.CompanyBonus = extCfg.CompanyBonus
	c.DecodeEntities = extCfg.DecodeEntities
	c.FoldUnicode = extCfg.FoldUnicode

	if len(extCfg.Denylist) > 0 {
		c.Denylist = extCfg.Denylist
	}
	if len(extCfg.Suffixes) > 0 {
		c.Suffixes = extCfg.Suffixes
	}
	if len(extCfg.SuffixTLDs) > 0 {
		c.SuffixTLDs = extCfg.SuffixTLDs
	}
	if len(extCfg.WebsiteDenylist) > 0 {
		c.WebsiteDenylist = extCfg.WebsiteDenylist
	}
	if len(extCfg.PortalDomains) > 0 {
		c.PortalDomains = extCfg.PortalDomains
	}
	if len(extCfg.Weights) > 0 {
		c.Weights = make([]extractor.Weight, 0, len(extCfg.Weights))
		for _, w := range extCfg.Weights {
			c.Weights = append(c.Weights, extractor.Weight{Keyword: w.Keyword, Score: w.Score})
		}
	}

	return c, nil
}

// CreateExtractor creates the extraction engine
func (f *ExtractorFactory) CreateExtractor() (*extractor.Extractor, error) {
	c, err := f.CreateConfig()
	if err != nil {
		return nil, err
	}

	f.logger.Debug("Extractor configured",
		zap.Int("denylist", len(c.Denylist)),
		zap.Int("suffixes", len(c.Suffixes)),
		zap.Int("weights", len(c.Weights)),
		zap.Int("portal_categories", len(c.PortalDomains)),
		zap.Int("company_bonus", c.CompanyBonus))

	return extractor.New(c), nil
}

// CreateIgnoredDomains creates the checker for domains whose addresses are dropped
func (f *ExtractorFactory) CreateIgnoredDomains() *domainlist.Checker {
	return domainlist.NewChecker(f.cfg.GetStringSlice("extractor.ignored_domains"), f.logger)
}
