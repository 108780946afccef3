package commandimpl

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/orgball2608/wallify-bot/internal/domain"
	"github.com/orgball2608/wallify-bot/internal/feed"
)

const (
	actionOpen     = "open"
	actionDownload = "dl"
	actionClose    = "close"
	actionMore     = "more"
	actionCategory = "cat"
	actionPreset   = "preset"
)

// callbackData is kept short: Telegram allows 64 bytes per button.
type callbackData struct {
	Action string `json:"a"`
	Value  string `json:"v,omitempty"`
}

func encodeCallback(action, value string) string {
	data, _ := json.Marshal(callbackData{Action: action, Value: value})
	return string(data)
}

func decodeCallback(data string) (callbackData, error) {
	var cb callbackData
	if err := json.Unmarshal([]byte(data), &cb); err != nil {
		return cb, err
	}
	if cb.Action == "" {
		return cb, errors.New("callback without action")
	}
	return cb, nil
}

func (c *CommandImpl) handleCallback(ctx context.Context, query *tgbotapi.CallbackQuery) {
	if query.Message == nil {
		c.Telegram.AnswerCallback(query.ID, "")
		return
	}
	chatID := query.Message.Chat.ID

	if !c.Limiter.Allow(chatID) {
		c.Telegram.AnswerCallback(query.ID, "Too many taps, slow down a little.")
		return
	}

	cb, err := decodeCallback(query.Data)
	if err != nil {
		c.Logger.Error("Failed to unmarshal callback data", "data", query.Data, "error", err)
		c.Telegram.AnswerCallback(query.ID, "")
		return
	}

	c.Logger.Debug("Callback received", "chat_id", chatID, "action", cb.Action, "value", cb.Value)

	switch cb.Action {
	case actionOpen:
		err = c.handleOpen(ctx, chatID, query.ID, cb.Value)
	case actionDownload:
		err = c.handleDownload(ctx, chatID, query.ID, cb.Value)
	case actionClose:
		c.Sessions.Get(ctx, chatID).ClosePreview()
		c.Telegram.AnswerCallback(query.ID, "")
		err = c.Telegram.DeleteMessage(chatID, query.Message.MessageID)
	case actionMore:
		c.Telegram.AnswerCallback(query.ID, "")
		c.retireLoadMore(chatID, query.Message)
		err = c.handleLoadMore(ctx, chatID)
	case actionCategory:
		category, parseErr := domain.ParseCategory(cb.Value)
		if parseErr != nil {
			c.Telegram.AnswerCallback(query.ID, "Unknown category.")
			return
		}
		c.Telegram.AnswerCallback(query.ID, "")
		err = c.handleCategory(ctx, chatID, category)
	case actionPreset:
		c.Telegram.AnswerCallback(query.ID, "")
		err = c.handlePreset(ctx, chatID, cb.Value)
	default:
		c.Logger.Warn("Unknown callback action", "action", cb.Action)
		c.Telegram.AnswerCallback(query.ID, "")
	}

	if err != nil {
		c.Logger.Error("Error handling callback", "chat_id", chatID, "action", cb.Action, "error", err)
	}
}

func (c *CommandImpl) handleOpen(ctx context.Context, chatID int64, callbackID, value string) error {
	ctrl := c.Sessions.Get(ctx, chatID)

	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		c.Telegram.AnswerCallback(callbackID, "")
		return err
	}

	photo, err := ctrl.OpenPreview(id)
	if err != nil {
		c.Telegram.AnswerCallback(callbackID, "This wallpaper is no longer in your feed.")
		return nil
	}
	c.Telegram.AnswerCallback(callbackID, "")

	keyboard := previewKeyboard(photo)
	_, err = c.Telegram.SendPhoto(chatID, feed.PreviewImageURL(photo), previewCaption(photo), &keyboard)
	return err
}

func (c *CommandImpl) handleDownload(ctx context.Context, chatID int64, callbackID, value string) error {
	ctrl := c.Sessions.Get(ctx, chatID)

	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		c.Telegram.AnswerCallback(callbackID, "")
		return err
	}
	c.Telegram.AnswerCallback(callbackID, "")

	filename, err := ctrl.Download(ctx, id)
	if err != nil {
		if errors.Is(err, feed.ErrPhotoNotFound) {
			_, err = c.Telegram.SendMessage(chatID, escape("This wallpaper is no longer in your feed."))
		}
		return err
	}

	return c.DownloadRepo.Create(ctx, domain.DownloadRecord{
		ChatID:   chatID,
		PhotoID:  id,
		Filename: filename,
	})
}

// retireLoadMore drops the Load More button from the tapped grid message.
// The next grid carries its own.
func (c *CommandImpl) retireLoadMore(chatID int64, msg *tgbotapi.Message) {
	if msg.Text == "" {
		return
	}
	keyboard, ok := withoutLoadMore(msg.ReplyMarkup)
	if !ok {
		return
	}
	if err := c.Telegram.EditMessageText(chatID, msg.MessageID, escape(msg.Text), keyboard); err != nil {
		c.Logger.Warn("Failed to update grid keyboard", "chat_id", chatID, "message_id", msg.MessageID, "error", err)
	}
}
