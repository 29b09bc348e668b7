package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"football_bot/internal/service"
)

// maxButtons caps the inline follow buttons attached to a team list.
const maxButtons = 10

func (b *Bot) handleStart(chatID int64, firstName string) {
	name := firstName
	if name == "" {
		name = "there"
	}
	text := fmt.Sprintf(`Welcome, %s!

Follow your football teams and get notified about their matches.

Quick start:
1. /search <team> — find a team
2. /follow <id> — follow it
3. /teams — see the teams you follow

Use /help for the full command reference.`, name)

	b.send(chatID, text, b.appKeyboard())
}

func (b *Bot) handleHelp(chatID int64) {
	b.reply(chatID, `Teams:
/search <name> — search teams (at least 2 characters)
/league <name> — list the teams of a league
/matches <id> — last results of a team

Following:
/follow <id> — follow a team
/unfollow <id> — stop following a team
/teams — show the teams you follow
/app — open the web app to manage teams and notifications

Account:
/deleteme — delete all your data`)
}

func (b *Bot) handleSearch(ctx context.Context, chatID int64, args string) {
	res, err := b.teams.Search(ctx, args)
	if err != nil {
		if err.Code == service.ErrorCodeValidation {
			b.reply(chatID, "Usage: /search <team name> (at least 2 characters)")
			return
		}
		b.reply(chatID, errorText(err))
		return
	}
	if len(res.Teams) == 0 {
		b.reply(chatID, fmt.Sprintf("No teams found for %q.", args))
		return
	}
	b.send(chatID, FormatTeamList(fmt.Sprintf("Teams matching %q:", args), res.Teams), followKeyboard(res.Teams))
}

func (b *Bot) handleLeague(ctx context.Context, chatID int64, args string) {
	res, err := b.teams.LeagueTeams(ctx, args)
	if err != nil {
		if err.Code == service.ErrorCodeValidation {
			b.reply(chatID, "Usage: /league <league name>, e.g. /league Turkish Super League")
			return
		}
		b.reply(chatID, errorText(err))
		return
	}
	if len(res.Teams) == 0 {
		b.reply(chatID, fmt.Sprintf("No teams found in league %q.", args))
		return
	}
	b.send(chatID, FormatTeamList(fmt.Sprintf("%s teams:", args), res.Teams), followKeyboard(res.Teams))
}

func (b *Bot) handleFollow(ctx context.Context, chatID, userID int64, args string) {
	id, perr := ParseTeamID(args)
	if perr != nil {
		b.reply(chatID, "Usage: /follow <team id>. Find ids with /search.")
		return
	}

	team, err := b.teams.Lookup(ctx, id)
	if err != nil {
		if err.Code == service.ErrorCodeNotFound {
			b.reply(chatID, fmt.Sprintf("Team %s not found.", id))
			return
		}
		b.reply(chatID, errorText(err))
		return
	}

	if _, err := b.follows.Follow(ctx, userID, team); err != nil {
		if err.Code == service.ErrorCodeAlreadyFollowing {
			b.reply(chatID, fmt.Sprintf("You already follow %s.", team.Name))
			return
		}
		b.reply(chatID, errorText(err))
		return
	}
	b.reply(chatID, fmt.Sprintf("You now follow %s (%s). All notifications are on; use /app to fine-tune them.", team.Name, team.League))
}

func (b *Bot) handleUnfollow(ctx context.Context, chatID, userID int64, args string) {
	id, perr := ParseTeamID(args)
	if perr != nil {
		b.reply(chatID, "Usage: /unfollow <team id>. See your teams with /teams.")
		return
	}

	if err := b.follows.Unfollow(ctx, userID, id); err != nil {
		if err.Code == service.ErrorCodeNotFound {
			b.reply(chatID, fmt.Sprintf("You don't follow team %s.", id))
			return
		}
		b.reply(chatID, errorText(err))
		return
	}
	b.reply(chatID, fmt.Sprintf("Team %s removed from your list.", id))
}

func (b *Bot) handleTeams(ctx context.Context, chatID, userID int64) {
	follows := b.follows.List(ctx, userID)
	if len(follows) == 0 {
		b.reply(chatID, FormatFollowList(follows))
		return
	}

	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(follows))
	for i, f := range follows {
		if i == maxButtons {
			break
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Matches: "+f.TeamName, callbackData(cmdMatches, f.TeamID)),
			tgbotapi.NewInlineKeyboardButtonData("Unfollow", callbackData(cmdUnfollow, f.TeamID)),
		))
	}
	markup := tgbotapi.NewInlineKeyboardMarkup(rows...)
	b.send(chatID, FormatFollowList(follows), &markup)
}

func (b *Bot) handleMatches(ctx context.Context, chatID int64, args string) {
	id, perr := ParseTeamID(args)
	if perr != nil {
		b.reply(chatID, "Usage: /matches <team id>")
		return
	}

	matches, err := b.teams.PastMatches(ctx, id)
	if err != nil {
		b.reply(chatID, errorText(err))
		return
	}
	b.reply(chatID, FormatMatches(id, matches))
}

func (b *Bot) handleApp(chatID int64) {
	kb := b.appKeyboard()
	if kb == nil {
		b.reply(chatID, "The web app is not configured.")
		return
	}
	b.send(chatID, "Manage your teams and notification settings in the web app:", kb)
}

func (b *Bot) handleDeleteMe(chatID int64) {
	markup := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Yes, delete my data", callbackData(cmdDeleteMe, deleteConfirm)),
			tgbotapi.NewInlineKeyboardButtonData("Cancel", callbackData(cmdNoop, "0")),
		),
	)
	b.send(chatID, "Delete your account and every team you follow? This cannot be undone.", &markup)
}

func (b *Bot) appKeyboard() *tgbotapi.InlineKeyboardMarkup {
	if b.cfg.WebAppURL == "" {
		return nil
	}
	markup := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonURL("Open app", b.cfg.WebAppURL)),
	)
	return &markup
}
