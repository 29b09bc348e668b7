package catalog

import (
	"context"
	"log/slog"
)

// Lenient wraps a Client and converts every failure into an empty result.
// Callers cannot tell "no results" from "provider error"; the reason is logged.
type Lenient struct {
	c   *Client
	log *slog.Logger
}

// NewLenient creates a Lenient wrapper around c.
func NewLenient(c *Client, log *slog.Logger) *Lenient {
	return &Lenient{c: c, log: log}
}

// Search returns matching teams, or nil on failure.
func (l *Lenient) Search(ctx context.Context, query string) []RawTeam {
	teams, err := l.c.Search(ctx, query)
	if err != nil {
		l.log.Warn("catalog search failed", "query", query, "error", err)
		return nil
	}
	return teams
}

// LeagueTeams returns the teams of a league, or nil on failure.
func (l *Lenient) LeagueTeams(ctx context.Context, league string) []RawTeam {
	teams, err := l.c.LeagueTeams(ctx, league)
	if err != nil {
		l.log.Warn("catalog league teams failed", "league", league, "error", err)
		return nil
	}
	return teams
}

// LookupTeam returns the team with the given id, or nil when absent or on failure.
func (l *Lenient) LookupTeam(ctx context.Context, id string) *RawTeam {
	team, err := l.c.LookupTeam(ctx, id)
	if err != nil {
		l.log.Warn("catalog lookup failed", "team_id", id, "error", err)
		return nil
	}
	return team
}

// LastEvents returns recent events of a team, or nil on failure.
func (l *Lenient) LastEvents(ctx context.Context, teamID string) []RawEvent {
	events, err := l.c.LastEvents(ctx, teamID)
	if err != nil {
		l.log.Warn("catalog last events failed", "team_id", teamID, "error", err)
		return nil
	}
	return events
}
