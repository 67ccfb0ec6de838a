// Package telegram provides a Telegram bot front-end for the draw oracle.
// It answers /stats and /predict commands from the configured chat and
// announces new imports, with retry logic for message delivery.
//
// Messages use MarkdownV2 formatting; all dynamic text is escaped.
package telegram

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rewired-gh/draworacle/internal/logger"
	"github.com/rewired-gh/draworacle/internal/models"
)

const noDataMessage = "No data available"

// Responder computes the answers to bot commands
type Responder interface {
	Statistics() (*models.Statistics, error)
	Predictions() ([]models.PredictionResult, error)
}

// Client handles Telegram commands and notifications
type Client struct {
	bot            *tgbotapi.BotAPI
	chatID         int64
	maxRetries     int
	retryDelayBase time.Duration
}

// NewClient creates a new Telegram client
func NewClient(botToken, chatID string, maxRetries int, retryDelayBase time.Duration) (*Client, error) {
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot: %w", err)
	}

	chatIDInt, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid chat ID: %w", err)
	}

	if maxRetries <= 0 {
		maxRetries = 3
	}
	if retryDelayBase <= 0 {
		retryDelayBase = time.Second
	}

	return &Client{
		bot:            bot,
		chatID:         chatIDInt,
		maxRetries:     maxRetries,
		retryDelayBase: retryDelayBase,
	}, nil
}

// NotifyImport announces a completed import to the configured chat.
func (c *Client) NotifyImport(importID string, count int) error {
	return c.send(c.chatID, formatImport(importID, count))
}

// ListenForCommands answers bot commands until ctx is cancelled.
// Messages from chats other than the configured one are ignored.
func (c *Client) ListenForCommands(ctx context.Context, r Responder) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := c.bot.GetUpdatesChan(u)
	defer c.bot.StopReceivingUpdates()

	logger.Info("Listening for Telegram commands")

	for {
		select {
		case <-ctx.Done():
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil || !update.Message.IsCommand() {
				continue
			}
			if update.Message.Chat.ID != c.chatID {
				logger.Debug("Ignoring command from chat %d", update.Message.Chat.ID)
				continue
			}

			reply := handleCommand(update.Message.Command(), r)
			if err := c.send(c.chatID, reply); err != nil {
				logger.Error("Failed to answer /%s: %v", update.Message.Command(), err)
			}
		}
	}
}

// send delivers text with retry
func (c *Client) send(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdownV2

	return retry(c.maxRetries, c.retryDelayBase, time.Sleep, func() error {
		_, err := c.bot.Send(msg)
		return err
	})
}

// retry calls fn up to attempts times, sleeping base*n after the nth failure.
// There is no sleep after the final attempt.
func retry(attempts int, base time.Duration, sleep func(time.Duration), fn func() error) error {
	var lastErr error
	for i := 0; i < attempts; i++ {
		if lastErr = fn(); lastErr == nil {
			return nil
		}
		if i < attempts-1 {
			sleep(base * time.Duration(i+1))
		}
	}

	return fmt.Errorf("failed to send message after %d retries: %w", attempts, lastErr)
}

// handleCommand builds the reply for a command
func handleCommand(command string, r Responder) string {
	switch command {
	case "stats":
		s, err := r.Statistics()
		if err != nil {
			return formatError(err)
		}
		return formatStats(s)
	case "predict":
		predictions, err := r.Predictions()
		if err != nil {
			return formatError(err)
		}
		return formatPredictions(predictions)
	default:
		return formatHelp()
	}
}

func formatError(err error) string {
	if errors.Is(err, models.ErrEmptySeries) {
		return escapeMarkdownV2(noDataMessage)
	}
	return escapeMarkdownV2("Error: " + err.Error())
}

func formatHelp() string {
	return escapeMarkdownV2("Commands:\n/stats - digit distribution and categories\n/predict - next draw forecast")
}

// formatImport formats an import announcement
func formatImport(importID string, count int) string {
	return fmt.Sprintf("📥 *New draw history imported*\n\n%s numbers loaded\nImport: `%s`",
		escapeMarkdownV2(strconv.Itoa(count)), escapeMarkdownV2(importID))
}

// formatStats formats statistics into a Telegram message
func formatStats(s *models.Statistics) string {
	var b strings.Builder
	b.WriteString("📊 *Draw Statistics*\n\n")
	b.WriteString(escapeMarkdownV2(fmt.Sprintf("Total: %d\n", s.Categories.Total)))
	b.WriteString(escapeMarkdownV2(fmt.Sprintf("Besar: %.1f%%  Kecil: %.1f%%\n", s.Categories.Besar, s.Categories.Kecil)))
	b.WriteString(escapeMarkdownV2(fmt.Sprintf("Ganjil: %.1f%%  Genap: %.1f%%\n\n", s.Categories.Ganjil, s.Categories.Genap)))

	b.WriteString("*Most frequent digit*\n")
	for pos, label := range models.PositionLabels {
		digit, pct := s.Distribution.MostFrequent(pos)
		b.WriteString(escapeMarkdownV2(fmt.Sprintf("%s: %d (%.1f%%)\n", label, digit, pct)))
	}

	return b.String()
}

// formatPredictions formats forecast entries into a Telegram message
func formatPredictions(predictions []models.PredictionResult) string {
	var b strings.Builder
	b.WriteString("🔮 *Next Draw Forecast*\n\n")
	for i, p := range predictions {
		b.WriteString(fmt.Sprintf("%d\\. *%s* %s\n   %s\n",
			i+1, escapeMarkdownV2(p.Number), escapeMarkdownV2(p.Shio), escapeMarkdownV2(p.Ekor)))
	}
	return b.String()
}

// escapeMarkdownV2 escapes special characters for Telegram MarkdownV2
func escapeMarkdownV2(text string) string {
	// Characters that need escaping in MarkdownV2:
	// _ * [ ] ( ) ~ ` > # + - = | { } . !
	var b strings.Builder
	for _, char := range text {
		switch char {
		case '_', '*', '[', ']', '(', ')', '~', '`', '>', '#', '+', '-', '=', '|', '{', '}', '.', '!':
			b.WriteRune('\\')
		}
		b.WriteRune(char)
	}
	return b.String()
}
