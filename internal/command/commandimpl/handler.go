package commandimpl

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/panjf2000/ants/v2"
)

const defaultWorkers = 16

func (c *CommandImpl) HandleCommand(ctx context.Context) error {
	workers := c.Config.App.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}

	pool, err := ants.NewPool(workers, ants.WithPanicHandler(func(r interface{}) {
		c.Logger.Error("Panic recovered while processing an update", "panic", r, "stack", string(debug.Stack()))
	}))
	if err != nil {
		return fmt.Errorf("failed to create update worker pool: %w", err)
	}
	defer pool.Release()

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := c.Telegram.GetUpdatesChan(u)
	c.Logger.Info("Command handler started, listening for updates.", "workers", workers)

	for {
		select {
		case <-ctx.Done():
			c.Logger.Info("Command handler shutting down.")
			c.Telegram.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				c.Logger.Warn("Telegram updates channel closed unexpectedly.")
				return errors.New("telegram updates channel closed")
			}

			if err := pool.Submit(func() { c.processUpdate(ctx, update) }); err != nil {
				c.Logger.Error("Failed to submit update to worker pool", "update_id", update.UpdateID, "error", err)
			}
		}
	}
}

func (c *CommandImpl) processUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		c.handleCallback(ctx, update.CallbackQuery)
		return
	}

	msg := update.Message
	if msg == nil {
		return
	}

	chatID := msg.Chat.ID
	if !c.Limiter.Allow(chatID) {
		c.Logger.Debug("Rate limited", "chat_id", chatID)
		c.Telegram.SendMessage(chatID, escape("You're going a bit fast. Please wait a moment and try again."))
		return
	}

	var err error
	switch {
	case msg.IsCommand():
		c.Logger.Info("Command received", "chat_id", chatID, "command", msg.Command())
		err = c.processCommand(ctx, msg)
	case strings.TrimSpace(msg.Text) != "":
		// Plain text is a search, like typing into the search box.
		err = c.handleSearch(ctx, chatID, msg.Text)
	}
	if err != nil {
		c.Logger.Error("Error processing message", "chat_id", chatID, "command", msg.Command(), "error", err)
	}
}
