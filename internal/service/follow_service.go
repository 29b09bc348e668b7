package service

import (
	"context"
	"strings"

	"football_bot/internal/logger"
	"football_bot/internal/model"
	"football_bot/internal/normalize"
)

// ReconcileResult counts the row operations a reconciliation applied.
type ReconcileResult struct {
	Added   int `json:"added"`
	Removed int `json:"removed"`
	Updated int `json:"updated"`
}

type FollowService struct {
	follows FollowStore
}

func NewFollowService(follows FollowStore) *FollowService {
	return &FollowService{follows: follows}
}

// Reconcile moves the stored follow set of a user to desired. Removals are applied
// first, then every desired team is inserted or has its settings rewritten.
// Row operations are independent: a failure does not stop the others, and any
// failure is reported as a single PARTIAL_RECONCILIATION error.
func (s *FollowService) Reconcile(ctx context.Context, userID int64, desired []model.DesiredTeam) (ReconcileResult, *Error) {
	if userID <= 0 {
		return ReconcileResult{}, NewError(ErrorCodeValidation, "user id is required")
	}
	wanted, verr := dedupeDesired(desired)
	if verr != nil {
		return ReconcileResult{}, verr
	}

	l := logger.FromContext(ctx).With("user_id", userID)

	current, err := s.follows.ListByUser(ctx, userID)
	if err != nil {
		l.Error("failed to load follows", "error", err)
		return ReconcileResult{}, storeError(err, "failed to load follows")
	}

	wantedIDs := make(map[string]struct{}, len(wanted))
	for _, t := range wanted {
		wantedIDs[t.ID] = struct{}{}
	}

	existing := make(map[string]model.Follow, len(current))
	var toRemove []model.Follow
	for _, f := range current {
		if _, ok := wantedIDs[f.TeamID]; !ok {
			toRemove = append(toRemove, f)
			continue
		}
		if _, dup := existing[f.TeamID]; dup {
			toRemove = append(toRemove, f)
			continue
		}
		existing[f.TeamID] = f
	}

	var res ReconcileResult
	failed := 0

	for _, f := range toRemove {
		if err := s.follows.Delete(ctx, f); err != nil {
			l.Error("failed to remove follow", "team_id", f.TeamID, "error", err)
			failed++
			continue
		}
		res.Removed++
	}

	for _, t := range wanted {
		settings := model.DefaultSettings()
		if t.Settings != nil {
			settings = *t.Settings
		}

		if f, ok := existing[t.ID]; ok {
			if err := s.follows.UpdateSettings(ctx, f, settings); err != nil {
				l.Error("failed to update follow", "team_id", t.ID, "error", err)
				failed++
				continue
			}
			res.Updated++
			continue
		}

		if _, err := s.follows.Add(ctx, model.Follow{
			UserID:   userID,
			TeamID:   t.ID,
			TeamName: t.Name,
			Settings: settings,
		}); err != nil {
			l.Error("failed to add follow", "team_id", t.ID, "error", err)
			failed++
			continue
		}
		res.Added++
	}

	if failed > 0 {
		l.Warn("follow list partially reconciled", "failed", failed)
		return ReconcileResult{}, NewError(ErrorCodePartial, "follow list could not be fully saved")
	}

	l.Info("follow list reconciled", "added", res.Added, "removed", res.Removed, "updated", res.Updated)
	return res, nil
}

// dedupeDesired canonicalizes ids and keeps the first entry per id.
func dedupeDesired(desired []model.DesiredTeam) ([]model.DesiredTeam, *Error) {
	out := make([]model.DesiredTeam, 0, len(desired))
	seen := make(map[string]struct{}, len(desired))
	for _, t := range desired {
		t.ID = normalize.ID(t.ID)
		if t.ID == "" {
			return nil, NewError(ErrorCodeValidation, "every team needs an id")
		}
		if _, ok := seen[t.ID]; ok {
			continue
		}
		seen[t.ID] = struct{}{}
		t.Name = strings.TrimSpace(t.Name)
		out = append(out, t)
	}
	return out, nil
}

// List returns the follows of a user. Store failures degrade to an empty list.
func (s *FollowService) List(ctx context.Context, userID int64) []model.Follow {
	follows, err := s.follows.ListByUser(ctx, userID)
	if err != nil {
		logger.FromContext(ctx).Warn("failed to list follows", "user_id", userID, "error", err)
		return []model.Follow{}
	}
	return follows
}

// Follow adds a single team with default settings.
func (s *FollowService) Follow(ctx context.Context, userID int64, team model.Team) (model.Follow, *Error) {
	id := normalize.ID(team.ID)
	if userID <= 0 || id == "" {
		return model.Follow{}, NewError(ErrorCodeValidation, "user id and team id are required")
	}

	l := logger.FromContext(ctx).With("user_id", userID, "team_id", id)

	current, err := s.follows.ListByUser(ctx, userID)
	if err != nil {
		l.Error("failed to load follows", "error", err)
		return model.Follow{}, storeError(err, "failed to load follows")
	}
	for _, f := range current {
		if f.TeamID == id {
			return model.Follow{}, NewError(ErrorCodeAlreadyFollowing, "already following "+f.TeamName)
		}
	}

	f, err := s.follows.Add(ctx, model.Follow{
		UserID:   userID,
		TeamID:   id,
		TeamName: strings.TrimSpace(team.Name),
		Settings: model.DefaultSettings(),
	})
	if err != nil {
		l.Error("failed to add follow", "error", err)
		return model.Follow{}, storeError(err, "failed to add follow")
	}
	l.Info("team followed")
	return f, nil
}

// Unfollow removes every follow row of the user for teamID.
func (s *FollowService) Unfollow(ctx context.Context, userID int64, teamID string) *Error {
	id := normalize.ID(teamID)
	if userID <= 0 || id == "" {
		return NewError(ErrorCodeValidation, "user id and team id are required")
	}

	l := logger.FromContext(ctx).With("user_id", userID, "team_id", id)

	current, err := s.follows.ListByUser(ctx, userID)
	if err != nil {
		l.Error("failed to load follows", "error", err)
		return storeError(err, "failed to load follows")
	}

	found := false
	for _, f := range current {
		if f.TeamID != id {
			continue
		}
		found = true
		if err := s.follows.Delete(ctx, f); err != nil {
			l.Error("failed to remove follow", "error", err)
			return storeError(err, "failed to remove follow")
		}
	}
	if !found {
		return NewError(ErrorCodeNotFound, "not following this team")
	}
	l.Info("team unfollowed")
	return nil
}

// UpdateSettings rewrites the settings of one follow.
func (s *FollowService) UpdateSettings(ctx context.Context, userID int64, teamID string, settings model.NotificationSettings) (model.Follow, *Error) {
	id := normalize.ID(teamID)
	if userID <= 0 || id == "" {
		return model.Follow{}, NewError(ErrorCodeValidation, "user id and team id are required")
	}

	current, err := s.follows.ListByUser(ctx, userID)
	if err != nil {
		return model.Follow{}, storeError(err, "failed to load follows")
	}
	for _, f := range current {
		if f.TeamID != id {
			continue
		}
		if err := s.follows.UpdateSettings(ctx, f, settings); err != nil {
			logger.FromContext(ctx).Error("failed to update follow", "user_id", userID, "team_id", id, "error", err)
			return model.Follow{}, storeError(err, "failed to update follow")
		}
		f.Settings = settings
		return f, nil
	}
	return model.Follow{}, NewError(ErrorCodeNotFound, "not following this team")
}
