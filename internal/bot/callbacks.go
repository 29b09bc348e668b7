package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"football_bot/internal/model"
	"football_bot/internal/service"
)

const (
	cmdFollow   = "follow"
	cmdUnfollow = "unfollow"
	cmdMatches  = "matches"
	cmdDeleteMe = "deleteme"
	cmdNoop     = "noop"

	deleteConfirm = "confirm"
)

func callbackData(action, arg string) string {
	return action + ":" + arg
}

func followKeyboard(teams []model.Team) *tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, min(len(teams), maxButtons))
	for i, t := range teams {
		if i == maxButtons {
			break
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Follow "+t.Name, callbackData(cmdFollow, t.ID)),
		))
	}
	if len(rows) == 0 {
		return nil
	}
	markup := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return &markup
}

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	b.ack(cb.ID, "")

	action, arg, ok := ParseCallback(cb.Data)
	if !ok {
		return
	}

	chatID := cb.From.ID
	if cb.Message != nil && cb.Message.Chat != nil {
		chatID = cb.Message.Chat.ID
	}
	userID := cb.From.ID

	b.log.Info("callback",
		"action", action,
		"arg", arg,
		"chat_id", chatID,
		"user_id", userID,
		"username", cb.From.UserName,
	)

	switch action {
	case cmdFollow:
		b.handleFollow(ctx, chatID, userID, arg)
	case cmdUnfollow:
		b.handleUnfollow(ctx, chatID, userID, arg)
	case cmdMatches:
		b.handleMatches(ctx, chatID, arg)
	case cmdDeleteMe:
		if arg != deleteConfirm {
			return
		}
		if err := b.users.Delete(ctx, userID); err != nil && err.Code != service.ErrorCodeNotFound {
			b.reply(chatID, errorText(err))
			return
		}
		b.reply(chatID, "Your data has been deleted. Send /start to begin again.")
	}
}
