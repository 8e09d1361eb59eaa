// Package notify pushes admin alerts to a Telegram group: new pending
// top-ups found by the background scan and confirmations dispatched from
// the dashboard.
package notify

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"gamemart/models"
)

type Notifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	log    *logrus.Logger
}

// New connects the bot. An empty token disables notifications; callers
// treat a nil *Notifier as "off".
func New(token string, chatID int64, log *logrus.Logger) (*Notifier, error) {
	if token == "" || chatID == 0 {
		return nil, nil
	}
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("notify: connect bot: %w", err)
	}
	return &Notifier{bot: bot, chatID: chatID, log: log}, nil
}

func (n *Notifier) send(text string) {
	if n == nil {
		return
	}
	msg := tgbotapi.NewMessage(n.chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	if _, err := n.bot.Send(msg); err != nil {
		n.log.WithError(err).Warn("telegram notification failed")
	}
}

func (n *Notifier) PendingTopUp(t models.TopUp) {
	username := "unknown"
	if t.User != nil {
		username = t.User.Username
	}
	n.send(fmt.Sprintf(
		"💰 <b>New top-up request</b>\nID: %d\nUser: %s\nAmount: %s\nMethod: %s",
		t.ID, username, t.Amount, t.PaymentMethod,
	))
}

func (n *Notifier) TopUpConfirmed(id int64, actor string) {
	n.send(fmt.Sprintf("✅ Top-up #%d confirmed by %s", id, actor))
}

func (n *Notifier) OrderConfirmed(id int64, actor string) {
	n.send(fmt.Sprintf("📦 Order #%d confirmed by %s", id, actor))
}
