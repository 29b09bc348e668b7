package service

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"football_bot/internal/catalog"
	"football_bot/internal/logger"
	"football_bot/internal/model"
	"football_bot/internal/normalize"
)

const (
	// MinQueryLength is the shortest accepted search query, in characters.
	MinQueryLength = 2
	// PastMatchLimit caps how many finished matches are returned per team.
	PastMatchLimit = 5

	SourceCache = "cache"
	SourceAPI   = "api"
)

// SearchResult is a list of teams along with where they came from.
type SearchResult struct {
	Teams  []model.Team `json:"teams"`
	Source string       `json:"source"`
}

type TeamService struct {
	cache    TeamCache
	provider CatalogProvider
	timeout  time.Duration
}

func NewTeamService(cache TeamCache, provider CatalogProvider) *TeamService {
	return &TeamService{
		cache:    cache,
		provider: provider,
		timeout:  5 * time.Second,
	}
}

// WithTimeout bounds every cache refresh and provider call made by one operation.
func (s *TeamService) WithTimeout(d time.Duration) *TeamService {
	if d > 0 {
		s.timeout = d
	}
	return s
}

// Search looks teams up in the cached catalog and falls back to the provider
// when the cache has nothing.
func (s *TeamService) Search(ctx context.Context, query string) (*SearchResult, *Error) {
	q := strings.TrimSpace(query)
	if utf8.RuneCountInString(q) < MinQueryLength {
		return nil, NewError(ErrorCodeValidation, "query must be at least 2 characters")
	}

	l := logger.FromContext(ctx)
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if teams := s.cache.Search(ctx, q); len(teams) > 0 {
		l.Debug("search served from cache", "query", q, "teams", len(teams))
		return &SearchResult{Teams: teams, Source: SourceCache}, nil
	}

	teams := fromCatalog(s.provider.Search(ctx, q))
	l.Debug("search served from provider", "query", q, "teams", len(teams))
	return &SearchResult{Teams: teams, Source: SourceAPI}, nil
}

// LeagueTeams lists a league's teams from the cache, or from the provider when
// the cache knows none.
func (s *TeamService) LeagueTeams(ctx context.Context, league string) (*SearchResult, *Error) {
	name := strings.TrimSpace(league)
	if name == "" {
		return nil, NewError(ErrorCodeValidation, "league is required")
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if teams := s.cache.ByLeague(ctx, name); len(teams) > 0 {
		return &SearchResult{Teams: teams, Source: SourceCache}, nil
	}
	return &SearchResult{Teams: fromCatalog(s.provider.LeagueTeams(ctx, name)), Source: SourceAPI}, nil
}

// Lookup returns a single team by id.
func (s *TeamService) Lookup(ctx context.Context, id string) (model.Team, *Error) {
	id = normalize.ID(id)
	if id == "" {
		return model.Team{}, NewError(ErrorCodeValidation, "team id is required")
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if t, ok := s.cache.Lookup(ctx, id); ok {
		return t, nil
	}
	raw := s.provider.LookupTeam(ctx, id)
	if raw == nil {
		return model.Team{}, NewError(ErrorCodeNotFound, "team not found")
	}
	return normalize.FromCatalog(*raw), nil
}

// PastMatches returns the most recent finished matches of a team, newest first
// as the provider orders them.
func (s *TeamService) PastMatches(ctx context.Context, teamID string) ([]model.Match, *Error) {
	id := normalize.ID(teamID)
	if id == "" {
		return nil, NewError(ErrorCodeValidation, "team id is required")
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	events := s.provider.LastEvents(ctx, id)
	if len(events) > PastMatchLimit {
		events = events[:PastMatchLimit]
	}
	matches := make([]model.Match, 0, len(events))
	for _, e := range events {
		matches = append(matches, normalize.MatchFromCatalog(e))
	}
	return matches, nil
}

func fromCatalog(raw []catalog.RawTeam) []model.Team {
	teams := make([]model.Team, 0, len(raw))
	for _, r := range raw {
		teams = append(teams, normalize.FromCatalog(r))
	}
	return teams
}
