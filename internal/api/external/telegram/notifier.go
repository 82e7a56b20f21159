package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"ticketpix/internal/api/messaging"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Notifier posts plain-text messages to the admin chat.
type Notifier struct {
	bot    sender
	chatID int64
}

func NewNotifier(token string, chatID int64) (*Notifier, error) {
	if chatID == 0 {
		return nil, errors.New("telegram admin chat id is not set")
	}

	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram bot: %w", err)
	}

	slog.Info("Telegram bot authorized", "username", bot.Self.UserName)
	return &Notifier{bot: bot, chatID: chatID}, nil
}

func (n *Notifier) Notify(ctx context.Context, text string) error {
	msg := tgbotapi.NewMessage(n.chatID, text)
	msg.DisableWebPagePreview = true

	if _, err := n.bot.Send(msg); err != nil {
		var apiErr *tgbotapi.Error
		// rejected requests will not succeed on retry
		if errors.As(err, &apiErr) && apiErr.Code >= http.StatusBadRequest && apiErr.Code < http.StatusInternalServerError &&
			apiErr.Code != http.StatusTooManyRequests {
			return fmt.Errorf("%w: telegram send: %s", messaging.ErrPermanent, apiErr.Message)
		}
		return fmt.Errorf("telegram send: %w", err)
	}

	slog.DebugContext(ctx, "Telegram notification sent", "chat_id", n.chatID)
	return nil
}

// LogNotifier writes notifications to the log when no bot is configured.
type LogNotifier struct{}

func (LogNotifier) Notify(ctx context.Context, text string) error {
	slog.InfoContext(ctx, "Admin notification", "text", text)
	return nil
}
