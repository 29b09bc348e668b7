package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"football_bot/internal/catalog"
	"football_bot/internal/model"
	"football_bot/internal/repository"
)

type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) Upsert(ctx context.Context, id model.Identity) (model.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockUserStore) Get(ctx context.Context, userID int64) (model.User, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockUserStore) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserStore) Update(ctx context.Context, userID int64, name, username string) (model.User, error) {
	args := m.Called(ctx, userID, name, username)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockUserStore) Delete(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type MockFollowStore struct {
	mock.Mock
}

func (m *MockFollowStore) ListByUser(ctx context.Context, userID int64) ([]model.Follow, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Follow), args.Error(1)
}

func (m *MockFollowStore) CountByUser(ctx context.Context) (map[int64]int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]int), args.Error(1)
}

func (m *MockFollowStore) Add(ctx context.Context, f model.Follow) (model.Follow, error) {
	args := m.Called(ctx, f)
	return args.Get(0).(model.Follow), args.Error(1)
}

func (m *MockFollowStore) UpdateSettings(ctx context.Context, f model.Follow, s model.NotificationSettings) error {
	args := m.Called(ctx, f, s)
	return args.Error(0)
}

func (m *MockFollowStore) Delete(ctx context.Context, f model.Follow) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}

type MockCatalogStore struct {
	mock.Mock
}

func (m *MockCatalogStore) LoadTeams(ctx context.Context) ([]model.Team, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Team), args.Error(1)
}

func (m *MockCatalogStore) ExistingIDs(ctx context.Context) (map[string]struct{}, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]struct{}), args.Error(1)
}

func (m *MockCatalogStore) Append(ctx context.Context, teams []model.Team) (int, error) {
	args := m.Called(ctx, teams)
	return args.Int(0), args.Error(1)
}

func (m *MockCatalogStore) Update(ctx context.Context, id string, patch repository.TeamPatch) (model.Team, error) {
	args := m.Called(ctx, id, patch)
	return args.Get(0).(model.Team), args.Error(1)
}

func (m *MockCatalogStore) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockTeamCache struct {
	mock.Mock
}

func (m *MockTeamCache) Search(ctx context.Context, query string) []model.Team {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]model.Team)
}

func (m *MockTeamCache) ByLeague(ctx context.Context, league string) []model.Team {
	args := m.Called(ctx, league)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]model.Team)
}

func (m *MockTeamCache) Lookup(ctx context.Context, id string) (model.Team, bool) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Team), args.Bool(1)
}

func (m *MockTeamCache) Invalidate() {
	m.Called()
}

type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) Search(ctx context.Context, query string) []catalog.RawTeam {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]catalog.RawTeam)
}

func (m *MockProvider) LeagueTeams(ctx context.Context, league string) []catalog.RawTeam {
	args := m.Called(ctx, league)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]catalog.RawTeam)
}

func (m *MockProvider) LookupTeam(ctx context.Context, id string) *catalog.RawTeam {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*catalog.RawTeam)
}

func (m *MockProvider) LastEvents(ctx context.Context, teamID string) []catalog.RawEvent {
	args := m.Called(ctx, teamID)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]catalog.RawEvent)
}

type MockLeagueFetcher struct {
	mock.Mock
}

func (m *MockLeagueFetcher) LeagueTeams(ctx context.Context, league string) ([]catalog.RawTeam, error) {
	args := m.Called(ctx, league)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.RawTeam), args.Error(1)
}
