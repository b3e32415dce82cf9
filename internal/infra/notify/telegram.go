package notify

import (
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Notifier pushes catalog events to the shop admin.
type Notifier interface {
	ImportCompleted(fileName string, count int)
	LowStock(zeroed, belowMinimum int)
}

// Noop is used when Telegram notifications are disabled.
type Noop struct{}

func (Noop) ImportCompleted(string, int) {}
func (Noop) LowStock(int, int)           {}

// Telegram sends messages to a single admin chat.
type Telegram struct {
	api    *tgbotapi.BotAPI
	chatID int64
	log    *slog.Logger
}

func NewTelegram(token string, chatID int64, log *slog.Logger) (*Telegram, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram auth: %w", err)
	}
	return &Telegram{api: api, chatID: chatID, log: log}, nil
}

func (t *Telegram) ImportCompleted(fileName string, count int) {
	t.send(fmt.Sprintf("Import finished: %d records from %s", count, fileName))
}

func (t *Telegram) LowStock(zeroed, belowMinimum int) {
	t.send(fmt.Sprintf("Stock alert: %d models out of stock, %d below minimum", zeroed, belowMinimum))
}

func (t *Telegram) send(text string) {
	if _, err := t.api.Send(tgbotapi.NewMessage(t.chatID, text)); err != nil {
		t.log.Error("telegram send failed", "err", err)
	}
}
