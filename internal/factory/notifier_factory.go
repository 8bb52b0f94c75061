package factory

import (
	"github.com/mikey/job-contact-extractor/internal/adapters/notify"
	"github.com/mikey/job-contact-extractor/internal/config"
	"github.com/mikey/job-contact-extractor/internal/core"
	"go.uber.org/zap"
)

// CreateNotifier creates the Telegram notifier, or nil when notifications are disabled
func CreateNotifier(cfg *config.Config, logger *zap.Logger) (core.Notifier, error) {
	tgCfg := cfg.GetTelegram()
	if !tgCfg.Enabled {
		return nil, nil
	}

	n, err := notify.NewTelegramNotifier(tgCfg.Token, tgCfg.ChatID, logger.Named("telegram"))
	if err != nil {
		return nil, err
	}
	return n, nil
}
