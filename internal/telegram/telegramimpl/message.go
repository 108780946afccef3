package telegramimpl

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/orgball2608/wallify-bot/internal/telegram"
)

func (tg *TelegramImpl) GetUpdatesChan(u tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return tg.bot.GetUpdatesChan(u)
}

func (tg *TelegramImpl) StopReceivingUpdates() {
	tg.bot.StopReceivingUpdates()
}

// SendMessage sends a MarkdownV2 text message and returns its ID.
func (tg *TelegramImpl) SendMessage(chatID int64, text string) (int, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	return tg.send(chatID, msg, "message")
}

func (tg *TelegramImpl) SendMessageWithKeyboard(chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) (int, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	msg.ReplyMarkup = keyboard
	return tg.send(chatID, msg, "keyboard message")
}

// EditMessageText replaces the text and inline keyboard of a sent message.
func (tg *TelegramImpl) EditMessageText(chatID int64, messageID int, text string, keyboard tgbotapi.InlineKeyboardMarkup) error {
	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, text, keyboard)
	edit.ParseMode = tgbotapi.ModeMarkdownV2

	_, err := tg.bot.Request(edit)
	if err != nil && !isNotModified(err) {
		tg.logger.Error("Error editing message", "chatID", chatID, "messageID", messageID, "error", err)
		return fmt.Errorf("failed to edit message: %w", err)
	}
	return nil
}

func (tg *TelegramImpl) DeleteMessage(chatID int64, messageID int) error {
	if _, err := tg.bot.Request(tgbotapi.NewDeleteMessage(chatID, messageID)); err != nil {
		tg.logger.Warn("Error deleting message", "chatID", chatID, "messageID", messageID, "error", err)
		return fmt.Errorf("failed to delete message: %w", err)
	}
	return nil
}

// SendPhoto lets Telegram fetch the photo from photoURL.
func (tg *TelegramImpl) SendPhoto(chatID int64, photoURL, caption string, keyboard *tgbotapi.InlineKeyboardMarkup) (int, error) {
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileURL(photoURL))
	photo.Caption = caption
	photo.ParseMode = tgbotapi.ModeMarkdownV2
	if keyboard != nil {
		photo.ReplyMarkup = *keyboard
	}
	return tg.send(chatID, photo, "photo")
}

func (tg *TelegramImpl) SendMediaGroup(chatID int64, media []telegram.Media) error {
	if len(media) == 0 {
		return nil
	}
	if len(media) > telegram.MaxMediaGroup {
		return fmt.Errorf("media group of %d items exceeds the limit of %d", len(media), telegram.MaxMediaGroup)
	}

	files := make([]interface{}, 0, len(media))
	for _, m := range media {
		photo := tgbotapi.NewInputMediaPhoto(tgbotapi.FileURL(m.URL))
		if m.Caption != "" {
			photo.Caption = m.Caption
			photo.ParseMode = tgbotapi.ModeMarkdownV2
		}
		files = append(files, photo)
	}

	if _, err := tg.bot.SendMediaGroup(tgbotapi.NewMediaGroup(chatID, files)); err != nil {
		tg.logger.Error("Error sending media group", "chatID", chatID, "count", len(media), "error", err)
		return fmt.Errorf("failed to send media group: %w", err)
	}
	return nil
}

// SendDocument uploads data as a file so Telegram keeps the original quality.
func (tg *TelegramImpl) SendDocument(chatID int64, filename string, data []byte, caption string) error {
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: filename, Bytes: data})
	doc.Caption = caption
	doc.ParseMode = tgbotapi.ModeMarkdownV2

	if _, err := tg.send(chatID, doc, "document"); err != nil {
		return err
	}
	tg.logger.Info("Document sent", "chatID", chatID, "filename", filename, "bytes", len(data))
	return nil
}

// AnswerCallback stops the loading indicator on the pressed button.
func (tg *TelegramImpl) AnswerCallback(callbackID, text string) error {
	if _, err := tg.bot.Request(tgbotapi.NewCallback(callbackID, text)); err != nil {
		tg.logger.Warn("Error answering callback", "callbackID", callbackID, "error", err)
		return fmt.Errorf("failed to answer callback: %w", err)
	}
	return nil
}

func (tg *TelegramImpl) send(chatID int64, c tgbotapi.Chattable, kind string) (int, error) {
	sent, err := tg.bot.Send(c)
	if err != nil {
		tg.logger.Error("Error sending "+kind, "chatID", chatID, "error", err)
		return 0, fmt.Errorf("failed to send %s: %w", kind, err)
	}

	tg.logger.Debug("Sent "+kind, "chatID", chatID, "messageID", sent.MessageID)
	return sent.MessageID, nil
}

func isNotModified(err error) bool {
	return strings.Contains(err.Error(), "message is not modified")
}
