package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"football_bot/internal/config"
	"football_bot/internal/logger"
	"football_bot/internal/model"
	"football_bot/internal/service"
)

type telegramAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Services are the use cases the bot commands call into.
type Services struct {
	Users   *service.UserService
	Follows *service.FollowService
	Teams   *service.TeamService
}

// Bot is the Telegram bot that handles user commands and callbacks.
type Bot struct {
	api     telegramAPI
	users   *service.UserService
	follows *service.FollowService
	teams   *service.TeamService
	cfg     *config.Config
	log     *slog.Logger
}

// New creates a Bot with the given Telegram token, services, and config.
func New(token string, svc Services, cfg *config.Config, log *slog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}

	return &Bot{
		api:     api,
		users:   svc.Users,
		follows: svc.Follows,
		teams:   svc.Teams,
		cfg:     cfg,
		log:     log,
	}, nil
}

// Run starts the bot's long-polling loop, blocking until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) {
	if _, err := b.api.Request(tgbotapi.DeleteWebhookConfig{}); err != nil {
		b.log.Warn("delete webhook before polling", "error", err)
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case update := <-updates:
			b.HandleUpdate(ctx, update)
		}
	}
}

// RegisterWebhook points Telegram at url and drops updates queued meanwhile.
func (b *Bot) RegisterWebhook(url string) error {
	wh, err := tgbotapi.NewWebhook(url)
	if err != nil {
		return fmt.Errorf("build webhook config: %w", err)
	}
	wh.DropPendingUpdates = true
	if _, err := b.api.Request(wh); err != nil {
		return fmt.Errorf("set webhook: %w", err)
	}
	return nil
}

// HandleUpdate processes one inbound update. Every interaction registers or
// refreshes the user before it is handled.
func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	ctx = logger.WithLogger(ctx, b.log.With("update_id", update.UpdateID))

	switch {
	case update.CallbackQuery != nil:
		cb := update.CallbackQuery
		if cb.From == nil {
			return
		}
		if !b.cfg.IsUserAllowed(cb.From.ID) {
			b.ack(cb.ID, "Access denied.")
			return
		}
		b.touch(ctx, cb.From)
		b.handleCallback(ctx, cb)

	case update.Message != nil:
		msg := update.Message
		if msg.From == nil {
			return
		}
		if !b.cfg.IsUserAllowed(msg.From.ID) {
			b.reply(msg.Chat.ID, "Access denied.")
			return
		}
		b.touch(ctx, msg.From)
		if !msg.IsCommand() {
			b.reply(msg.Chat.ID, "Message received. Use /help to see what I can do.")
			return
		}
		b.handleCommand(ctx, msg)
	}
}

func (b *Bot) touch(ctx context.Context, from *tgbotapi.User) {
	if _, err := b.users.Touch(ctx, identityOf(from)); err != nil {
		b.log.Warn("register user", "user_id", from.ID, "error", err)
	}
}

func identityOf(u *tgbotapi.User) model.Identity {
	return model.Identity{ID: u.ID, Username: u.UserName, FirstName: u.FirstName}
}

// SendMessage sends a text message to the given chat.
func (b *Bot) SendMessage(chatID int64, text string) {
	b.send(chatID, text, nil)
}

func (b *Bot) send(chatID int64, text string, markup *tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.DisableWebPagePreview = true
	if markup != nil {
		msg.ReplyMarkup = *markup
	}
	if _, err := b.api.Send(msg); err != nil {
		b.log.Error("send message", "chat_id", chatID, "error", err)
	}
}

func (b *Bot) reply(chatID int64, text string) {
	b.SendMessage(chatID, text)
}

func (b *Bot) ack(callbackID, text string) {
	if _, err := b.api.Request(tgbotapi.NewCallback(callbackID, text)); err != nil {
		b.log.Error("send callback ack", "error", err)
	}
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	cmd := msg.Command()
	args := strings.TrimSpace(msg.CommandArguments())
	chatID := msg.Chat.ID
	userID := msg.From.ID

	b.log.Debug("command", "cmd", cmd, "args", args, "chat_id", chatID)

	switch cmd {
	case "start":
		b.handleStart(chatID, msg.From.FirstName)
	case "help":
		b.handleHelp(chatID)
	case "search":
		b.handleSearch(ctx, chatID, args)
	case "league":
		b.handleLeague(ctx, chatID, args)
	case cmdFollow:
		b.handleFollow(ctx, chatID, userID, args)
	case cmdUnfollow:
		b.handleUnfollow(ctx, chatID, userID, args)
	case "teams":
		b.handleTeams(ctx, chatID, userID)
	case cmdMatches:
		b.handleMatches(ctx, chatID, args)
	case "app":
		b.handleApp(chatID)
	case cmdDeleteMe:
		b.handleDeleteMe(chatID)
	default:
		b.reply(chatID, "Unknown command. Use /help for a list of commands.")
	}
}

// errorText turns a service error into a message for the user.
func errorText(err *service.Error) string {
	switch err.Code {
	case service.ErrorCodeUpstream:
		return "The service is temporarily unavailable. Please try again later."
	case service.ErrorCodePartial:
		return "Your changes were only partially saved. Please try again."
	case service.ErrorCodeUnspecified:
		return "Something went wrong. Please try again later."
	default:
		return err.Message
	}
}
