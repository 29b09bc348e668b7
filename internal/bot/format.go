package bot

import (
	"fmt"
	"strings"

	"football_bot/internal/model"
)

// maxListed caps how many teams a list message shows.
const maxListed = 30

// FormatTeamList formats search or league results under a heading.
func FormatTeamList(heading string, teams []model.Team) string {
	var b strings.Builder
	b.WriteString(heading)
	b.WriteString("\n")
	for i, t := range teams {
		if i == maxListed {
			fmt.Fprintf(&b, "\n…and %d more. Narrow your search.", len(teams)-maxListed)
			break
		}
		fmt.Fprintf(&b, "\n#%s %s", t.ID, t.Name)
		if t.AlternateName != "" && t.AlternateName != t.Name {
			fmt.Fprintf(&b, " (%s)", t.AlternateName)
		}
		fmt.Fprintf(&b, " | %s, %s", t.League, t.Country)
	}
	b.WriteString("\n\nFollow with /follow <id>.")
	return b.String()
}

// FormatFollowList formats the teams a user follows.
func FormatFollowList(follows []model.Follow) string {
	if len(follows) == 0 {
		return "You don't follow any teams yet. Use /search <team> to find one."
	}
	var b strings.Builder
	b.WriteString("Your teams:\n")
	for _, f := range follows {
		fmt.Fprintf(&b, "\n#%s %s\n   %s\n", f.TeamID, f.TeamName, settingsSummary(f.Settings))
	}
	return b.String()
}

func settingsSummary(s model.NotificationSettings) string {
	if s == model.DefaultSettings() {
		return "all notifications"
	}
	labels := []struct {
		on   bool
		name string
	}{
		{s.Before1h, "1h before"},
		{s.Before15m, "15m before"},
		{s.MatchStart, "kick-off"},
		{s.Goals, "goals"},
		{s.Cards, "cards"},
		{s.HalfTime, "half-time"},
		{s.FullTime, "full-time"},
	}
	var on []string
	for _, l := range labels {
		if l.on {
			on = append(on, l.name)
		}
	}
	if len(on) == 0 {
		return "notifications off"
	}
	return strings.Join(on, ", ")
}

// FormatMatches formats the last results of a team.
func FormatMatches(teamID string, matches []model.Match) string {
	if len(matches) == 0 {
		return fmt.Sprintf("No recent matches found for team %s.", teamID)
	}
	var b strings.Builder
	b.WriteString("Recent matches:\n")
	for _, m := range matches {
		fmt.Fprintf(&b, "\n%s %s %s - %s %s", m.Date, m.HomeTeam, score(m.HomeScore), score(m.AwayScore), m.AwayTeam)
		if m.League != "" {
			fmt.Fprintf(&b, " (%s)", m.League)
		}
	}
	return b.String()
}

func score(s *int) string {
	if s == nil {
		return "?"
	}
	return fmt.Sprint(*s)
}
