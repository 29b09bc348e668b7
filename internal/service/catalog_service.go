package service

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"football_bot/internal/logger"
	"football_bot/internal/model"
	"football_bot/internal/normalize"
	"football_bot/internal/repository"
)

// SyncReport describes one catalog sync run.
type SyncReport struct {
	Leagues      int      `json:"leagues"`
	Fetched      int      `json:"fetched"`
	Added        int      `json:"added"`
	FailedLeague []string `json:"failedLeagues,omitempty"`
}

type CatalogService struct {
	store   CatalogStore
	fetcher LeagueFetcher
	cache   TeamCache
}

func NewCatalogService(store CatalogStore, fetcher LeagueFetcher, cache TeamCache) *CatalogService {
	return &CatalogService{store: store, fetcher: fetcher, cache: cache}
}

// Sync fetches every league from the provider and appends teams whose id is not
// stored yet, filed under the requested league name. A failing league is
// skipped and reported; the run continues.
func (s *CatalogService) Sync(ctx context.Context, leagues []string) (SyncReport, *Error) {
	l := logger.FromContext(ctx)

	existing, err := s.store.ExistingIDs(ctx)
	if err != nil {
		l.Error("failed to read catalog ids", "error", err)
		return SyncReport{}, storeError(err, "failed to read catalog")
	}

	report := SyncReport{Leagues: len(leagues)}
	var fresh []model.Team
	for _, league := range leagues {
		raw, err := s.fetcher.LeagueTeams(ctx, league)
		if err != nil {
			l.Warn("failed to fetch league", "league", league, "error", err)
			report.FailedLeague = append(report.FailedLeague, league)
			continue
		}
		report.Fetched += len(raw)
		for _, r := range raw {
			t := normalize.FromCatalog(r)
			if name := strings.TrimSpace(league); name != "" {
				t.League = name
			}
			if t.ID == "" {
				continue
			}
			if _, ok := existing[t.ID]; ok {
				continue
			}
			existing[t.ID] = struct{}{}
			fresh = append(fresh, t)
		}
	}

	if len(fresh) > 0 {
		n, err := s.store.Append(ctx, fresh)
		report.Added = n
		if n > 0 {
			s.cache.Invalidate()
		}
		if err != nil {
			l.Error("failed to append catalog teams", "written", n, "error", err)
			return report, storeError(err, "failed to save catalog teams")
		}
	}

	l.Info("catalog synced", "leagues", report.Leagues, "fetched", report.Fetched, "added", report.Added)
	return report, nil
}

// ListTeams returns the stored catalog as is, bypassing the cache.
func (s *CatalogService) ListTeams(ctx context.Context) ([]model.Team, *Error) {
	teams, err := s.store.LoadTeams(ctx)
	if err != nil {
		logger.FromContext(ctx).Error("failed to load catalog", "error", err)
		return nil, storeError(err, "failed to load catalog")
	}
	return teams, nil
}

// ManualLeague files teams added by hand that name no league.
const ManualLeague = "Manual"

// AddTeam stores a single team supplied by an administrator.
func (s *CatalogService) AddTeam(ctx context.Context, team model.Team) (model.Team, *Error) {
	if strings.TrimSpace(team.League) == "" {
		team.League = ManualLeague
	}
	team = normalize.Canonical(team)
	if team.ID == "" || team.Name == "" {
		return model.Team{}, NewError(ErrorCodeValidation, "team id and name are required")
	}

	existing, err := s.store.ExistingIDs(ctx)
	if err != nil {
		return model.Team{}, storeError(err, "failed to read catalog")
	}
	if _, ok := existing[team.ID]; ok {
		return model.Team{}, NewError(ErrorCodeValidation, "team already exists")
	}
	if _, err := s.store.Append(ctx, []model.Team{team}); err != nil {
		logger.FromContext(ctx).Error("failed to add catalog team", "team_id", team.ID, "error", err)
		return model.Team{}, storeError(err, "failed to add team")
	}
	s.cache.Invalidate()
	return team, nil
}

// UpdateTeam patches a stored team.
func (s *CatalogService) UpdateTeam(ctx context.Context, id string, patch repository.TeamPatch) (model.Team, *Error) {
	id = normalize.ID(id)
	if id == "" {
		return model.Team{}, NewError(ErrorCodeValidation, "team id is required")
	}
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return model.Team{}, NewError(ErrorCodeValidation, "team name cannot be empty")
	}

	t, err := s.store.Update(ctx, id, patch)
	if errors.Is(err, repository.ErrNotFound) {
		return model.Team{}, NewError(ErrorCodeNotFound, "team not found")
	}
	if err != nil {
		logger.FromContext(ctx).Error("failed to update catalog team", "team_id", id, "error", err)
		return model.Team{}, storeError(err, "failed to update team")
	}
	s.cache.Invalidate()
	return t, nil
}

// DeleteTeam removes a stored team.
func (s *CatalogService) DeleteTeam(ctx context.Context, id string) *Error {
	id = normalize.ID(id)
	if id == "" {
		return NewError(ErrorCodeValidation, "team id is required")
	}

	err := s.store.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return NewError(ErrorCodeNotFound, "team not found")
	}
	if err != nil {
		logger.FromContext(ctx).Error("failed to delete catalog team", "team_id", id, "error", err)
		return storeError(err, "failed to delete team")
	}
	s.cache.Invalidate()
	return nil
}
