package payment

import (
	"context" // Request cancellation
	"errors"  // Sentinel errors
	"fmt"     // Error wrapping

	"github.com/google/uuid"     // Invoice payloads
	"github.com/sirupsen/logrus" // Logging library
	tele "gopkg.in/telebot.v3"   // Telegram Bot API client
)

// CurrencyStars is Telegram's in-app currency; invoices in it need no payment provider
const CurrencyStars = "XTR"

var ErrInvalidAmount = errors.New("invoice amount must be positive")

// TelegramBiller creates Telegram Stars invoice links for topping up a game balance
type TelegramBiller struct {
	bot         *tele.Bot
	title       string
	description string
}

// Option tweaks a TelegramBiller
type Option func(*TelegramBiller)

// WithAPIURL points the bot at another Bot API server
func WithAPIURL(url string) Option {
	return func(b *TelegramBiller) { b.bot.URL = url }
}

// NewTelegramBiller creates a biller for the bot token. It never polls for updates
func NewTelegramBiller(token string, opts ...Option) (*TelegramBiller, error) {
	bot, err := tele.NewBot(tele.Settings{
		Token:   token,
		Offline: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	b := &TelegramBiller{
		bot:         bot,
		title:       "Balance top-up",
		description: "Top up your game balance",
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// CreateInvoiceLink returns a link to an invoice of amount stars
func (b *TelegramBiller) CreateInvoiceLink(ctx context.Context, amount int) (string, error) {
	if amount <= 0 {
		return "", ErrInvalidAmount
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	payload := uuid.NewString()
	link, err := b.bot.CreateInvoiceLink(tele.Invoice{
		Title:       b.title,
		Description: b.description,
		Payload:     payload,
		Currency:    CurrencyStars,
		Prices:      []tele.Price{{Label: CurrencyStars, Amount: amount}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to create invoice link: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"payload": payload,
		"amount":  amount,
	}).Info("Invoice link created")

	return link, nil
}
