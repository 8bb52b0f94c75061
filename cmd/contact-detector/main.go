package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mikey/job-contact-extractor/internal/core"
	"github.com/mikey/job-contact-extractor/internal/di"
	"github.com/mikey/job-contact-extractor/internal/factory"
	"github.com/mikey/job-contact-extractor/internal/ports"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

func main() {
	flags := di.ParseFlags()

	// Build the dependency injection container
	container, err := di.BuildCLIContainer(flags)
	if err != nil {
		fmt.Printf("Failed to build dependency container: %v\n", err)
		os.Exit(1)
	}

	// Run the application
	if err := container.Invoke(run); err != nil {
		fmt.Printf("Application error: %v\n", err)
		os.Exit(1)
	}
}

// run reads one posting and prints the extracted contacts
func run(
	flags *di.CLIFlags,
	logger *zap.Logger,
	intake ports.Intake,
	service *core.ContactService,
	assistFactory *factory.AssistFactory,
) error {
	defer logger.Sync()
	defer func() {
		if err := assistFactory.Close(); err != nil {
			logger.Error("Failed to close assistant", zap.Error(err))
		}
	}()

	// Read posting from file or stdin
	var reader io.Reader
	if flags.InputFile != "" {
		file, err := os.Open(flags.InputFile)
		if err != nil {
			return fmt.Errorf("failed to open input file %s: %w", flags.InputFile, err)
		}
		defer file.Close()
		reader = file
		logger.Debug("Reading posting from file", zap.String("file", flags.InputFile))
	} else {
		reader = os.Stdin
		logger.Debug("Reading posting from stdin")
	}

	html, err := io.ReadAll(reader)
	if err != nil {
		return fmt.Errorf("failed to read posting: %w", err)
	}

	posting := &core.JobPosting{
		Reference: flags.Reference,
		SourceURL: flags.SourceURL,
		Employer:  flags.Employer,
		HTML:      string(html),
	}

	switch flags.Format {
	case "text":
		_, err = intake.ProcessPosting(context.Background(), posting)
		return err
	case "json":
		record, err := service.ProcessPosting(context.Background(), posting)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(record)
	case "yaml":
		record, err := service.ProcessPosting(context.Background(), posting)
		if err != nil {
			return err
		}
		enc := yaml.NewEncoder(os.Stdout)
		defer enc.Close()
		return enc.Encode(record)
	default:
		return fmt.Errorf("unsupported output format: %s", flags.Format)
	}
}
