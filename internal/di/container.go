package di

import (
	"context"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/mikey/job-contact-extractor/internal/config"
	"github.com/mikey/job-contact-extractor/internal/core"
	"github.com/mikey/job-contact-extractor/internal/domainlist"
	"github.com/mikey/job-contact-extractor/internal/extractor"
	"github.com/mikey/job-contact-extractor/internal/factory"
	"github.com/mikey/job-contact-extractor/internal/logging"
	"github.com/mikey/job-contact-extractor/internal/ports"
	"github.com/mikey/job-contact-extractor/internal/utils"
)

// ServiceParams groups the collaborators of the contact service. The
// optional ones are nil when disabled.
type ServiceParams struct {
	dig.In

	Extractor *extractor.Extractor
	Store     core.ResultRepository
	Logger    *zap.Logger
	Factory   *factory.StoreFactory
	Ignored   *domainlist.Checker
	Assistant core.ContactAssistant
	Verifier  core.DomainVerifier
	Notifier  core.Notifier
}

// NewContactService builds the contact service from injected parameters
func NewContactService(p ServiceParams) (*core.ContactService, error) {
	ttl, err := p.Factory.GetTTL()
	if err != nil {
		return nil, err
	}

	opts := []core.Option{core.WithIgnoredDomains(p.Ignored)}
	if p.Assistant != nil {
		opts = append(opts, core.WithAssistant(p.Assistant))
	}
	if p.Verifier != nil {
		opts = append(opts, core.WithVerifier(p.Verifier))
	}
	if p.Notifier != nil {
		opts = append(opts, core.WithNotifier(p.Notifier))
	}

	return core.NewContactService(p.Extractor, p.Store, p.Logger, p.Factory.IsEnabled(), ttl, opts...), nil
}

// BuildContainer creates and configures a dependency injection container
func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(config.New); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(logging.InitLogger); err != nil {
		return nil, err
	}

	if err := provideCommon(container); err != nil {
		return nil, err
	}

	// Register result store
	if err := container.Provide(func(f *factory.StoreFactory) (core.ResultRepository, error) {
		return f.CreateStore()
	}); err != nil {
		return nil, err
	}

	// Register MX verifier and notifier
	if err := container.Provide(factory.CreateVerifier); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.CreateNotifier); err != nil {
		return nil, err
	}

	// Register contact service
	if err := container.Provide(NewContactService); err != nil {
		return nil, err
	}

	// Register intake
	if err := container.Provide(factory.NewIntakeFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(func(f *factory.IntakeFactory) (ports.Intake, error) {
		return f.CreateIntake()
	}); err != nil {
		return nil, err
	}

	return container, nil
}

// provideCommon registers the factories and engine shared by the daemon and the CLI
func provideCommon(container *dig.Container) error {
	// Register factories
	if err := container.Provide(factory.NewStoreFactory); err != nil {
		return err
	}
	if err := container.Provide(factory.NewExtractorFactory); err != nil {
		return err
	}
	if err := container.Provide(factory.NewAssistFactory); err != nil {
		return err
	}
	if err := container.Provide(factory.NewTextProcessorFactory); err != nil {
		return err
	}

	// Register text processor
	if err := container.Provide(func(f *factory.TextProcessorFactory) *utils.TextProcessor {
		return f.CreateTextProcessor()
	}); err != nil {
		return err
	}

	// Register extraction engine and ignored domains
	if err := container.Provide(func(f *factory.ExtractorFactory) (*extractor.Extractor, error) {
		return f.CreateExtractor()
	}); err != nil {
		return err
	}
	if err := container.Provide(func(f *factory.ExtractorFactory) *domainlist.Checker {
		return f.CreateIgnoredDomains()
	}); err != nil {
		return err
	}

	// Register contact assistant
	return container.Provide(func(f *factory.AssistFactory) (core.ContactAssistant, error) {
		return f.CreateAssistant(context.Background())
	})
}
