package factory

import (
	"fmt"

	"github.com/mikey/job-contact-extractor/internal/adapters/intake"
	"github.com/mikey/job-contact-extractor/internal/config"
	"github.com/mikey/job-contact-extractor/internal/core"
	"github.com/mikey/job-contact-extractor/internal/ports"
	"go.uber.org/zap"
)

// IntakeFactory creates posting intakes based on configuration
type IntakeFactory struct {
	cfg     *config.Config
	logger  *zap.Logger
	service *core.ContactService
}

// NewIntakeFactory creates a new intake factory
func NewIntakeFactory(cfg *config.Config, logger *zap.Logger, service *core.ContactService) *IntakeFactory {
	return &IntakeFactory{
		cfg:     cfg,
		logger:  logger,
		service: service,
	}
}

// CreateIntake creates an intake based on the configuration
func (f *IntakeFactory) CreateIntake() (ports.Intake, error) {
	serverCfg, err := f.cfg.GetServer()
	if err != nil {
		return nil, fmt.Errorf("invalid server configuration: %w", err)
	}

	switch serverCfg.IntakeType {
	case "http":
		return intake.NewHTTPIntake(
			f.service,
			f.logger.Named("http"),
			serverCfg.ListenAddress,
			serverCfg.RequestTimeout,
		), nil
	case "smtp":
		smtpCfg, err := f.cfg.GetSMTP()
		if err != nil {
			return nil, fmt.Errorf("invalid SMTP configuration: %w", err)
		}
		return intake.NewSMTPIntake(f.service, f.logger.Named("smtp"), smtpCfg, serverCfg.RequestTimeout), nil
	case "cli":
		return intake.NewCLIIntake(f.service, f.logger, f.cfg.GetBool("cli.verbose")), nil
	default:
		return nil, fmt.Errorf("unsupported intake type: %s", serverCfg.IntakeType)
	}
}
