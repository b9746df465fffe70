package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Messenger is the narrow delivery contract toward the chat platform.
// It exists so handlers and jobs can be tested without the Telegram SDK.
type Messenger interface {
	SendText(chatID int64, text string) error
	SendImage(chatID int64, path string) error
}

// TelegramMessenger implements Messenger on top of the Bot API client.
type TelegramMessenger struct {
	API *tgbotapi.BotAPI
}

// SendText delivers a plain text message to the chat.
func (m *TelegramMessenger) SendText(chatID int64, text string) error {
	_, err := m.API.Send(tgbotapi.NewMessage(chatID, text))
	return err
}

// SendImage delivers a photo from a local file path to the chat.
func (m *TelegramMessenger) SendImage(chatID int64, path string) error {
	_, err := m.API.Send(tgbotapi.NewPhoto(chatID, tgbotapi.FilePath(path)))
	return err
}
