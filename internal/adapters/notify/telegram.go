package notify

import (
	"context"
	"fmt"
	"html"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/mikey/job-contact-extractor/internal/core"
	"go.uber.org/zap"
)

// sender is the part of tgbotapi.BotAPI the notifier uses
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramNotifier posts found contacts to a Telegram chat
type TelegramNotifier struct {
	bot    sender
	chatID int64
	logger *zap.Logger
}

// NewTelegramNotifier creates a notifier for the bot identified by token
func NewTelegramNotifier(token string, chatID int64, logger *zap.Logger) (*TelegramNotifier, error) {
	if token == "" {
		return nil, fmt.Errorf("telegram token is required")
	}
	if chatID == 0 {
		return nil, fmt.Errorf("telegram chat id is required")
	}

	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram bot: %w", err)
	}

	logger.Info("Initialized Telegram notifier",
		zap.String("bot", bot.Self.UserName),
		zap.Int64("chat_id", chatID))

	return &TelegramNotifier{
		bot:    bot,
		chatID: chatID,
		logger: logger,
	}, nil
}

// NotifyContact sends one message per record
func (n *TelegramNotifier) NotifyContact(ctx context.Context, record *core.ContactRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := tgbotapi.NewMessage(n.chatID, formatContact(record))
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true

	if _, err := n.bot.Send(msg); err != nil {
		return fmt.Errorf("failed to send telegram message: %w", err)
	}

	n.logger.Debug("Sent contact notification", zap.String("reference", record.Reference))
	return nil
}

func formatContact(record *core.ContactRecord) string {
	var b strings.Builder

	employer := record.Employer
	if employer == "" {
		employer = "Unbekannter Arbeitgeber"
	}
	fmt.Fprintf(&b, "📬 <b>%s</b>\n", html.EscapeString(employer))
	fmt.Fprintf(&b, "🆔 %s\n", html.EscapeString(record.Reference))
	fmt.Fprintf(&b, "✉️ <code>%s</code>", html.EscapeString(record.BestEmail))
	if record.EmailCount > 1 {
		fmt.Fprintf(&b, " (+%d)", record.EmailCount-1)
	}
	b.WriteString("\n")

	if record.MXChecked && !record.HasMX {
		b.WriteString("⚠️ keine MX-Einträge\n")
	}
	if record.Method == core.MethodAssist {
		b.WriteString("🤖 per Assistent gefunden\n")
	}
	if record.SourceURL != "" {
		fmt.Fprintf(&b, "🔗 <a href=\"%s\">Stellenanzeige</a>", html.EscapeString(record.SourceURL))
	}

	return strings.TrimRight(b.String(), "\n")
}
