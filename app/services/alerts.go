package services

import (
	"fmt"
	"log"
	"os"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/shopspring/decimal"

	"github.com/mshamiyanice-cmyk/BYOSE.Money.Tracker/app/models"
)

// Notifier pushes ledger alerts to a Telegram chat. A nil Notifier is valid
// and drops every message, so callers never need to guard.
type Notifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewNotifierFromEnv builds a Notifier from TELEGRAM_BOT_TOKEN and
// TELEGRAM_CHAT_ID. Returns nil (alerts disabled) when either is unset.
func NewNotifierFromEnv() *Notifier {
	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	chat := os.Getenv("TELEGRAM_CHAT_ID")
	if token == "" || chat == "" {
		return nil
	}

	chatID, err := strconv.ParseInt(chat, 10, 64)
	if err != nil {
		log.Printf("Telegram alerts disabled: bad TELEGRAM_CHAT_ID: %v", err)
		return nil
	}
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		log.Printf("Telegram alerts disabled: %v", err)
		return nil
	}

	log.Printf("Telegram alerts enabled for bot @%s", bot.Self.UserName)
	return &Notifier{bot: bot, chatID: chatID}
}

func (n *Notifier) send(text string) {
	if n == nil {
		return
	}
	if _, err := n.bot.Send(tgbotapi.NewMessage(n.chatID, text)); err != nil {
		log.Printf("Failed to send Telegram alert: %v", err)
	}
}

// OverdraftCreated alerts that an outflow exceeded its pot and the
// shortfall was externalized.
func (n *Notifier) OverdraftCreated(od *models.Overdraft) {
	n.send(fmt.Sprintf("⚠️ New overdraft: %s owed to %s\n%s", od.Amount.String(), od.Seller, od.Purpose))
}

// OverdraftSettled alerts on a full or partial settlement payment.
func (n *Notifier) OverdraftSettled(od *models.Overdraft, payment decimal.Decimal) {
	if od.IsSettled {
		n.send(fmt.Sprintf("✅ Overdraft settled: paid %s to %s", payment.String(), od.Seller))
		return
	}
	n.send(fmt.Sprintf("💸 Partial settlement: paid %s to %s, %s still owed", payment.String(), od.Seller, od.Amount.String()))
}

// DailyReminder lists the liabilities still awaiting settlement.
func (n *Notifier) DailyReminder(unsettled []*models.Overdraft) {
	if n == nil || len(unsettled) == 0 {
		return
	}
	total := decimal.Zero
	msg := "📋 Unsettled liabilities:\n"
	for _, od := range unsettled {
		msg += fmt.Sprintf("• %s — %s (%s)\n", od.Seller, od.Amount.String(), od.Date)
		total = total.Add(od.Amount)
	}
	msg += "Total owed: " + total.String()
	n.send(msg)
}
