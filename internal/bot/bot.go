// Package bot exposes the daily signals over Telegram: on-demand
// commands and a scheduled broadcast of the analysis report.
package bot

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/anderson155081/Taiwan-ETF-Tracker/internal/collector"
	"github.com/anderson155081/Taiwan-ETF-Tracker/internal/pipeline"
)

// Bot wraps the Telegram Bot API with the tracker's command set.
type Bot struct {
	api      *tgbotapi.BotAPI
	chatID   int64
	Pipeline *pipeline.Pipeline
}

// New authenticates against the Telegram Bot API. chatID is the default
// chat for broadcasts.
func New(token, chatID string, pipe *pipeline.Pipeline) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}
	id, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parse telegram chat id %q: %w", chatID, err)
	}
	log.Printf("[INFO] telegram bot authorized as %s", api.Self.UserName)
	return &Bot{api: api, chatID: id, Pipeline: pipe}, nil
}

// StartPolling long-polls Telegram for commands. Blocks until ctx is
// cancelled. Not used when the webhook route is configured.
func (b *Bot) StartPolling(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			log.Println("[INFO] telegram polling stopped")
			return
		case update := <-updates:
			b.HandleUpdate(update)
		}
	}
}

// HandleUpdate processes one incoming update. It is called both by the
// polling loop and by the web server's webhook route.
func (b *Bot) HandleUpdate(update tgbotapi.Update) {
	if update.Message == nil || update.Message.Text == "" {
		return
	}
	chatID := update.Message.Chat.ID
	log.Printf("[INFO] telegram command from %d: %s", chatID, update.Message.Text)

	switch update.Message.Command() {
	case "signal", "etf":
		code := strings.TrimSpace(update.Message.CommandArguments())
		if code == "" {
			b.reply(chatID, "Usage: /signal <code>, e.g. /signal 0050")
			return
		}
		b.replySignal(chatID, code)
	case "list":
		b.reply(chatID, FormatList(collector.SupportedETFs()))
	case "help", "start":
		b.reply(chatID, helpText)
	default:
		b.reply(chatID, "Unknown command.\n"+helpText)
	}
}

func (b *Bot) replySignal(chatID int64, code string) {
	if !collector.Supported(code) {
		b.reply(chatID, fmt.Sprintf("ETF %s is not supported. Try /list.", code))
		return
	}
	res, err := b.Pipeline.Process(code, pipeline.Options{})
	if err != nil {
		log.Printf("[ERROR] bot process %s: %v", code, err)
		b.reply(chatID, fmt.Sprintf("Analysis for %s failed, please try again later.", code))
		return
	}
	b.reply(chatID, FormatReport(res))
}

func (b *Bot) reply(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("[ERROR] telegram send: %v", err)
	}
}

// Broadcast sends text to the configured chat with exponential backoff.
func (b *Bot) Broadcast(ctx context.Context, text string) error {
	const maxRetries = 3
	var lastErr error
	for i := 0; i <= maxRetries; i++ {
		msg := tgbotapi.NewMessage(b.chatID, text)
		msg.ParseMode = tgbotapi.ModeHTML
		if _, err := b.api.Send(msg); err != nil {
			lastErr = err
			backoff := time.Duration(1<<uint(i)) * time.Second
			log.Printf("[WARN] telegram broadcast failed (attempt %d/%d): %v, retrying in %v",
				i+1, maxRetries+1, err, backoff)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
				continue
			}
		}
		return nil
	}
	return fmt.Errorf("all %d retries exhausted: %w", maxRetries+1, lastErr)
}
