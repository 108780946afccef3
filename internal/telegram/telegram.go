package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// MaxMediaGroup is the largest album the Bot API accepts.
const MaxMediaGroup = 10

// Media is one photo of an album, referenced by URL.
type Media struct {
	URL     string
	Caption string
}

// Client sends to chats. Every text and caption is MarkdownV2; callers escape
// user-provided parts.
//
//go:generate go run go.uber.org/mock/mockgen -source=telegram.go -destination=mocks/mock.go
type Client interface {
	GetUpdatesChan(u tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()

	SendMessage(chatID int64, text string) (int, error)
	SendMessageWithKeyboard(chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) (int, error)
	EditMessageText(chatID int64, messageID int, text string, keyboard tgbotapi.InlineKeyboardMarkup) error
	DeleteMessage(chatID int64, messageID int) error

	SendPhoto(chatID int64, photoURL, caption string, keyboard *tgbotapi.InlineKeyboardMarkup) (int, error)
	SendMediaGroup(chatID int64, media []Media) error
	SendDocument(chatID int64, filename string, data []byte, caption string) error

	AnswerCallback(callbackID, text string) error
}
