package notify

import (
	"context"
	"fmt"

	"github.com/mymmrac/telego"
)

// TelegramNotifier sends alert messages to a Telegram chat.
type TelegramNotifier struct {
	bot    *telego.Bot
	chatID int64
}

// NewTelegramNotifier creates a notifier for the given bot token and chat.
// Returns an error if the token is malformed; the bot is not contacted here.
func NewTelegramNotifier(token string, chatID int64) (*TelegramNotifier, error) {
	bot, err := telego.NewBot(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	return &TelegramNotifier{bot: bot, chatID: chatID}, nil
}

// Send delivers one message to the configured chat.
func (n *TelegramNotifier) Send(ctx context.Context, message string) error {
	_, err := n.bot.SendMessage(ctx, &telego.SendMessageParams{
		ChatID: telego.ChatID{ID: n.chatID},
		Text:   message,
	})
	if err != nil {
		return fmt.Errorf("failed to send telegram message: %w", err)
	}

	return nil
}
