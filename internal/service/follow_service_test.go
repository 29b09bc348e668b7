package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"football_bot/internal/model"
	"football_bot/internal/repository"
	"football_bot/internal/storage"
)

func follow(rowID int64, teamID string) model.Follow {
	return model.Follow{RowID: rowID, UserID: 1, TeamID: teamID, TeamName: "Team " + teamID, Settings: model.DefaultSettings()}
}

func teamIs(id string) any {
	return mock.MatchedBy(func(f model.Follow) bool { return f.TeamID == id })
}

func TestFollowService_ReconcileDiff(t *testing.T) {
	store := new(MockFollowStore)
	a, b, c := follow(1, "A"), follow(2, "B"), follow(3, "C")
	store.On("ListByUser", mock.Anything, int64(1)).Return([]model.Follow{a, b, c}, nil)
	store.On("Delete", mock.Anything, a).Return(nil)
	store.On("UpdateSettings", mock.Anything, b, mock.Anything).Return(nil)
	store.On("UpdateSettings", mock.Anything, c, mock.Anything).Return(nil)
	store.On("Add", mock.Anything, teamIs("D")).Return(follow(4, "D"), nil)

	desired := []model.DesiredTeam{{ID: "B", Name: "Team B"}, {ID: "C", Name: "Team C"}, {ID: "D", Name: "Team D"}}
	got, err := NewFollowService(store).Reconcile(context.Background(), 1, desired)

	require.Nil(t, err)
	assert.Equal(t, ReconcileResult{Added: 1, Removed: 1, Updated: 2}, got)
	store.AssertNumberOfCalls(t, "Delete", 1)
	store.AssertNumberOfCalls(t, "Add", 1)
	store.AssertNumberOfCalls(t, "UpdateSettings", 2)
	store.AssertExpectations(t)
}

func TestFollowService_ReconcileSettings(t *testing.T) {
	store := new(MockFollowStore)
	existing := follow(1, "133604")
	custom := model.DefaultSettings()
	custom.Cards = false

	store.On("ListByUser", mock.Anything, int64(1)).Return([]model.Follow{existing}, nil)
	store.On("UpdateSettings", mock.Anything, existing, custom).Return(nil)
	store.On("Add", mock.Anything, mock.MatchedBy(func(f model.Follow) bool {
		return f.TeamID == "133612" && f.Settings == model.DefaultSettings() && f.TeamName == "Galatasaray"
	})).Return(follow(2, "133612"), nil)

	desired := []model.DesiredTeam{
		{ID: "0133604", Name: "Arsenal", Settings: &custom},
		{ID: "133612", Name: " Galatasaray "},
		{ID: "133612.0", Name: "Duplicate"},
	}
	got, err := NewFollowService(store).Reconcile(context.Background(), 1, desired)

	require.Nil(t, err)
	assert.Equal(t, ReconcileResult{Added: 1, Updated: 1}, got)
	store.AssertExpectations(t)
}

func TestFollowService_ReconcileCollapsesStoredDuplicates(t *testing.T) {
	store := new(MockFollowStore)
	first, dup := follow(1, "A"), follow(2, "A")
	store.On("ListByUser", mock.Anything, int64(1)).Return([]model.Follow{first, dup}, nil)
	store.On("Delete", mock.Anything, dup).Return(nil)
	store.On("UpdateSettings", mock.Anything, first, mock.Anything).Return(nil)

	got, err := NewFollowService(store).Reconcile(context.Background(), 1, []model.DesiredTeam{{ID: "A"}})

	require.Nil(t, err)
	assert.Equal(t, ReconcileResult{Removed: 1, Updated: 1}, got)
	store.AssertExpectations(t)
}

func TestFollowService_ReconcilePartialFailure(t *testing.T) {
	store := new(MockFollowStore)
	a, b := follow(1, "A"), follow(2, "B")
	store.On("ListByUser", mock.Anything, int64(1)).Return([]model.Follow{a, b}, nil)
	store.On("Delete", mock.Anything, a).Return(storage.ErrUnavailable)
	store.On("Delete", mock.Anything, b).Return(nil)
	store.On("Add", mock.Anything, teamIs("C")).Return(follow(3, "C"), nil)

	got, err := NewFollowService(store).Reconcile(context.Background(), 1, []model.DesiredTeam{{ID: "C"}})

	require.NotNil(t, err)
	assert.Equal(t, ErrorCodePartial, err.Code)
	assert.Equal(t, ReconcileResult{}, got)
	store.AssertExpectations(t)
}

func TestFollowService_ReconcileValidation(t *testing.T) {
	tests := []struct {
		name    string
		userID  int64
		desired []model.DesiredTeam
	}{
		{name: "missing user", userID: 0, desired: nil},
		{name: "blank team id", userID: 1, desired: []model.DesiredTeam{{ID: "A"}, {ID: "  "}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := new(MockFollowStore)
			_, err := NewFollowService(store).Reconcile(context.Background(), tt.userID, tt.desired)

			require.NotNil(t, err)
			assert.Equal(t, ErrorCodeValidation, err.Code)
			store.AssertNotCalled(t, "ListByUser", mock.Anything, mock.Anything)
		})
	}
}

func TestFollowService_ReconcileLoadFailure(t *testing.T) {
	store := new(MockFollowStore)
	store.On("ListByUser", mock.Anything, int64(1)).Return(nil, storage.ErrUnavailable)

	_, err := NewFollowService(store).Reconcile(context.Background(), 1, []model.DesiredTeam{{ID: "A"}})

	require.NotNil(t, err)
	assert.Equal(t, ErrorCodeUpstream, err.Code)
	store.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func newSQLiteFollows(t *testing.T) *repository.FollowRepository {
	t.Helper()
	s, err := storage.NewSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return repository.NewFollowRepository(s)
}

func teamIDs(follows []model.Follow) []string {
	out := make([]string, 0, len(follows))
	for _, f := range follows {
		out = append(out, f.TeamID)
	}
	return out
}

func TestFollowService_ReconcileIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := newSQLiteFollows(t)
	svc := NewFollowService(repo)

	goalsOff := model.DefaultSettings()
	goalsOff.Goals = false
	desired := []model.DesiredTeam{
		{ID: "133604", Name: "Arsenal"},
		{ID: "133612", Name: "Galatasaray", Settings: &goalsOff},
	}

	first, err := svc.Reconcile(ctx, 9, desired)
	require.Nil(t, err)
	assert.Equal(t, ReconcileResult{Added: 2}, first)
	after1, lerr := repo.ListByUser(ctx, 9)
	require.NoError(t, lerr)

	second, err := svc.Reconcile(ctx, 9, desired)
	require.Nil(t, err)
	assert.Equal(t, ReconcileResult{Updated: 2}, second)
	after2, lerr := repo.ListByUser(ctx, 9)
	require.NoError(t, lerr)

	assert.Equal(t, after1, after2)
	assert.ElementsMatch(t, []string{"133604", "133612"}, teamIDs(after2))

	third, err := svc.Reconcile(ctx, 9, desired[1:])
	require.Nil(t, err)
	assert.Equal(t, ReconcileResult{Removed: 1, Updated: 1}, third)
	after3, _ := repo.ListByUser(ctx, 9)
	assert.Equal(t, []string{"133612"}, teamIDs(after3))
	assert.Equal(t, goalsOff, after3[0].Settings)
}

func TestFollowService_FollowUnfollow(t *testing.T) {
	ctx := context.Background()
	svc := NewFollowService(newSQLiteFollows(t))
	arsenal := model.Team{ID: "133604", Name: "Arsenal"}

	f, err := svc.Follow(ctx, 5, arsenal)
	require.Nil(t, err)
	assert.Equal(t, model.DefaultSettings(), f.Settings)

	_, err = svc.Follow(ctx, 5, arsenal)
	require.NotNil(t, err)
	assert.Equal(t, ErrorCodeAlreadyFollowing, err.Code)

	off := model.NotificationSettings{FullTime: true}
	updated, err := svc.UpdateSettings(ctx, 5, "133604", off)
	require.Nil(t, err)
	assert.Equal(t, off, updated.Settings)

	require.Nil(t, svc.Unfollow(ctx, 5, "133604"))
	err = svc.Unfollow(ctx, 5, "133604")
	require.NotNil(t, err)
	assert.Equal(t, ErrorCodeNotFound, err.Code)

	assert.Empty(t, svc.List(ctx, 5))
}

func TestFollowService_ListDegrades(t *testing.T) {
	store := new(MockFollowStore)
	store.On("ListByUser", mock.Anything, int64(1)).Return(nil, errors.New("disk on fire"))

	got := NewFollowService(store).List(context.Background(), 1)

	assert.NotNil(t, got)
	assert.Empty(t, got)
}
