package telegram

import (
	"context"
	"errors"
	"testing"

	"ticketpix/internal/api/messaging"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	sent []tgbotapi.Chattable
	err  error
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.sent = append(f.sent, c)
	return tgbotapi.Message{}, f.err
}

func TestNotifier_Notify(t *testing.T) {
	tests := []struct {
		name          string
		sendErr       error
		wantErr       bool
		wantPermanent bool
	}{
		{name: "sent"},
		{
			name:    "network failure is retryable",
			sendErr: errors.New("connection reset"),
			wantErr: true,
		},
		{
			name:          "bad request is permanent",
			sendErr:       &tgbotapi.Error{Code: 400, Message: "chat not found"},
			wantErr:       true,
			wantPermanent: true,
		},
		{
			name:    "rate limit is retryable",
			sendErr: &tgbotapi.Error{Code: 429, Message: "too many requests"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bot := &fakeSender{err: tt.sendErr}
			n := &Notifier{bot: bot, chatID: 42}

			err := n.Notify(context.Background(), "new order")

			require.Len(t, bot.sent, 1)
			msg, ok := bot.sent[0].(tgbotapi.MessageConfig)
			require.True(t, ok)
			assert.Equal(t, int64(42), msg.ChatID)
			assert.Equal(t, "new order", msg.Text)

			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantPermanent, errors.Is(err, messaging.ErrPermanent))
		})
	}
}
