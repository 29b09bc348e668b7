// Package service implements the application use cases on top of the
// repositories, the team cache and the catalog provider.
package service

import (
	"context"

	"github.com/pkg/errors"

	"football_bot/internal/cache"
	"football_bot/internal/catalog"
	"football_bot/internal/model"
	"football_bot/internal/repository"
	"football_bot/internal/storage"
)

type UserStore interface {
	Upsert(ctx context.Context, id model.Identity) (model.User, error)
	Get(ctx context.Context, userID int64) (model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Update(ctx context.Context, userID int64, name, username string) (model.User, error)
	Delete(ctx context.Context, userID int64) error
}

type FollowStore interface {
	ListByUser(ctx context.Context, userID int64) ([]model.Follow, error)
	CountByUser(ctx context.Context) (map[int64]int, error)
	Add(ctx context.Context, f model.Follow) (model.Follow, error)
	UpdateSettings(ctx context.Context, f model.Follow, s model.NotificationSettings) error
	Delete(ctx context.Context, f model.Follow) error
}

type CatalogStore interface {
	LoadTeams(ctx context.Context) ([]model.Team, error)
	ExistingIDs(ctx context.Context) (map[string]struct{}, error)
	Append(ctx context.Context, teams []model.Team) (int, error)
	Update(ctx context.Context, id string, patch repository.TeamPatch) (model.Team, error)
	Delete(ctx context.Context, id string) error
}

// TeamCache is the read side of the team catalog snapshot.
type TeamCache interface {
	Search(ctx context.Context, query string) []model.Team
	ByLeague(ctx context.Context, league string) []model.Team
	Lookup(ctx context.Context, id string) (model.Team, bool)
	Invalidate()
}

// CatalogProvider is the empty-on-failure catalog surface.
type CatalogProvider interface {
	Search(ctx context.Context, query string) []catalog.RawTeam
	LeagueTeams(ctx context.Context, league string) []catalog.RawTeam
	LookupTeam(ctx context.Context, id string) *catalog.RawTeam
	LastEvents(ctx context.Context, teamID string) []catalog.RawEvent
}

// LeagueFetcher is the strict catalog surface used by sync, where a provider
// failure must not look like an empty league.
type LeagueFetcher interface {
	LeagueTeams(ctx context.Context, league string) ([]catalog.RawTeam, error)
}

var (
	_ UserStore       = (*repository.UserRepository)(nil)
	_ FollowStore     = (*repository.FollowRepository)(nil)
	_ CatalogStore    = (*repository.CatalogRepository)(nil)
	_ CatalogProvider = (*catalog.Lenient)(nil)
	_ LeagueFetcher   = (*catalog.Client)(nil)
	_ TeamCache       = (*cache.Cache)(nil)
)

// storeError converts a persistence failure into a coded error.
func storeError(err error, message string) *Error {
	switch {
	case errors.Is(err, repository.ErrNotFound), errors.Is(err, storage.ErrRowNotFound):
		return NewError(ErrorCodeNotFound, message)
	case errors.Is(err, storage.ErrUnavailable):
		return NewError(ErrorCodeUpstream, message)
	default:
		return NewError(ErrorCodeUnspecified, message)
	}
}
