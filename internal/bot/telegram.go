package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Telegram обвязка контроллера над Bot API: long polling входящих
// сообщений и отправка ответов с reply-клавиатурами
type Telegram struct {
	api         *tgbotapi.BotAPI
	controller  *Controller
	pollTimeout int
	logger      Logger
}

// NewTelegram создает подключение к Bot API
func NewTelegram(token string, debug bool, pollTimeout int, controller *Controller, logger Logger) (*Telegram, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("bot: connect to telegram: %w", err)
	}
	api.Debug = debug

	logger.Info("Authorized on telegram account @%s", api.Self.UserName)

	return &Telegram{
		api:         api,
		controller:  controller,
		pollTimeout: pollTimeout,
		logger:      logger,
	}, nil
}

// Run крутит цикл long polling до отмены контекста.
// Сообщения обрабатываются последовательно: Bot API отдает апдейты
// по порядку, и порядок реплик внутри чата сохраняется.
func (t *Telegram) Run(ctx context.Context) error {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = t.pollTimeout
	updates := t.api.GetUpdatesChan(cfg)

	for {
		select {
		case <-ctx.Done():
			t.api.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			t.handleUpdate(ctx, update)
		}
	}
}

func (t *Telegram) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.Message == nil || update.Message.Text == "" {
		return
	}

	chatID := update.Message.Chat.ID
	firstName := ""
	if update.Message.From != nil {
		firstName = update.Message.From.FirstName
	}

	for _, r := range t.controller.HandleMessage(ctx, chatID, firstName, update.Message.Text) {
		msg := tgbotapi.NewMessage(chatID, r.Text)

		switch {
		case r.RemoveKeyboard:
			msg.ReplyMarkup = tgbotapi.NewRemoveKeyboard(false)
		case len(r.Keyboard) > 0:
			rows := make([][]tgbotapi.KeyboardButton, 0, len(r.Keyboard))
			for _, row := range r.Keyboard {
				buttons := make([]tgbotapi.KeyboardButton, 0, len(row))
				for _, label := range row {
					buttons = append(buttons, tgbotapi.NewKeyboardButton(label))
				}
				rows = append(rows, buttons)
			}
			msg.ReplyMarkup = tgbotapi.NewReplyKeyboard(rows...)
		}

		if _, err := t.api.Send(msg); err != nil {
			t.logger.Error("send to chat=%d failed: %v", chatID, err)
		}
	}
}
