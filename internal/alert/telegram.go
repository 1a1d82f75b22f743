package alert

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"whalewatch/internal/model"
)

// TelegramSink delivers alerts to a Telegram chat.
type TelegramSink struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegramSink connects to the Telegram bot API.
func NewTelegramSink(token string, chatID int64) (*TelegramSink, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram auth: %w", err)
	}
	return &TelegramSink{bot: bot, chatID: chatID}, nil
}

// SendConsensusAlert sends the formatted alert message.
func (s *TelegramSink) SendConsensusAlert(_ context.Context, alert *model.ConsensusAlert) error {
	return s.send(FormatConsensusAlert(alert))
}

// SendPurchase sends a formatted individual purchase message.
func (s *TelegramSink) SendPurchase(_ context.Context, event model.PurchaseEvent) error {
	return s.send(FormatPurchase(event))
}

func (s *TelegramSink) send(text string) error {
	msg := tgbotapi.NewMessage(s.chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true
	if _, err := s.bot.Send(msg); err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	return nil
}
