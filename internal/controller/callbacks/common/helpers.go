package common

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Helper functions для всех callback handlers

// AnswerCallback отвечает на callback query (без alert)
func AnswerCallback(ctx context.Context, b *bot.Bot, callbackID string, text string) {
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       false,
	})
}

// AnswerCallbackAlert отвечает на callback query с alert (всплывающее окно)
func AnswerCallbackAlert(ctx context.Context, b *bot.Bot, callbackID string, text string) {
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       true,
	})
}

// GetMessageFromCallback извлекает сообщение из callback query
func GetMessageFromCallback(callback *models.CallbackQuery) *models.Message {
	if callback.Message.Message != nil {
		return callback.Message.Message
	}
	return nil
}

// ParseIndexFromCallback извлекает индекс из callback data
// Например: "adm:loc:3" -> 3
func ParseIndexFromCallback(data, prefix string) (int, error) {
	rest, ok := strings.CutPrefix(data, prefix)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, data)
	}
	if i := strings.IndexByte(rest, ':'); i >= 0 {
		rest = rest[:i]
	}
	idx, err := strconv.Atoi(rest)
	if err != nil || idx < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, data)
	}
	return idx, nil
}

// SplitCallback возвращает части callback data после префикса
// Например: SplitCallback("adm:date:1:2024-06-01", "adm:date:") -> ["1", "2024-06-01"]
func SplitCallback(data, prefix string, parts int) ([]string, error) {
	rest, ok := strings.CutPrefix(data, prefix)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidFormat, data)
	}
	out := strings.SplitN(rest, ":", parts)
	if len(out) != parts {
		return nil, fmt.Errorf("%w: %q", ErrInvalidFormat, data)
	}
	for _, p := range out {
		if p == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidFormat, data)
		}
	}
	return out, nil
}

// IsMessageNotModifiedError проверяет ошибку Telegram "message is not modified"
func IsMessageNotModifiedError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "message is not modified")
}
