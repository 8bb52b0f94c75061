package factory

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/mikey/job-contact-extractor/internal/adapters/bedrock"
	"github.com/mikey/job-contact-extractor/internal/adapters/gemini"
	"github.com/mikey/job-contact-extractor/internal/adapters/openai"
	"github.com/mikey/job-contact-extractor/internal/adapters/ratelimit"
	"github.com/mikey/job-contact-extractor/internal/config"
	"github.com/mikey/job-contact-extractor/internal/core"
	"github.com/mikey/job-contact-extractor/internal/utils"
	"go.uber.org/zap"
)

// AssistFactory creates the LLM contact assistant
type AssistFactory struct {
	cfg           *config.Config
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
	closers       []io.Closer
}

// NewAssistFactory creates a new assistant factory
func NewAssistFactory(cfg *config.Config, logger *zap.Logger, textProcessor *utils.TextProcessor) *AssistFactory {
	return &AssistFactory{
		cfg:           cfg,
		logger:        logger,
		textProcessor: textProcessor,
	}
}

// CreateAssistant creates a rate limited assistant for the configured
// provider. A disabled assistant yields nil.
func (f *AssistFactory) CreateAssistant(ctx context.Context) (core.ContactAssistant, error) {
	assistCfg, err := f.cfg.GetAssist()
	if err != nil {
		return nil, fmt.Errorf("invalid assist configuration: %w", err)
	}
	if !assistCfg.Enabled {
		f.logger.Info("Contact assistant disabled")
		return nil, nil
	}

	logger := f.logger.Named(assistCfg.Provider)

	var client core.ContactAssistant
	switch assistCfg.Provider {
	case "bedrock":
		c, err := bedrock.NewFactory(f.cfg.GetBedrock(), assistCfg.MaxBodySize, logger, f.textProcessor).CreateClient(ctx)
		if err != nil {
			return nil, err
		}
		client = c
	case "gemini":
		c, err := gemini.NewFactory(f.cfg.GetGemini(), assistCfg.MaxBodySize, logger, f.textProcessor).CreateClient(ctx)
		if err != nil {
			return nil, err
		}
		f.closers = append(f.closers, c)
		client = c
	case "openai":
		c, err := openai.NewFactory(f.cfg.GetOpenAI(), assistCfg.MaxBodySize, logger, f.textProcessor).CreateClient()
		if err != nil {
			return nil, err
		}
		client = c
	default:
		return nil, fmt.Errorf("unsupported assist provider: %s", assistCfg.Provider)
	}

	f.logger.Info("Contact assistant enabled",
		zap.String("provider", assistCfg.Provider),
		zap.Float64("rate_limit", assistCfg.RateLimit),
		zap.Int("burst", assistCfg.Burst))

	return ratelimit.NewAssistant(client, assistCfg.RateLimit, assistCfg.Burst, assistCfg.Timeout, logger), nil
}

// Close releases the provider clients created by this factory
func (f *AssistFactory) Close() error {
	var errs []error
	for _, c := range f.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	f.closers = nil
	return errors.Join(errs...)
}
