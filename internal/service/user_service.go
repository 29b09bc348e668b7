package service

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"football_bot/internal/logger"
	"football_bot/internal/model"
	"football_bot/internal/repository"
)

// UserSummary is a user together with how many teams they follow.
type UserSummary struct {
	model.User
	FollowCount int `json:"followCount"`
}

type UserService struct {
	users   UserStore
	follows FollowStore
}

func NewUserService(users UserStore, follows FollowStore) *UserService {
	return &UserService{users: users, follows: follows}
}

// Touch registers the user behind an interaction or refreshes their activity.
func (s *UserService) Touch(ctx context.Context, id model.Identity) (model.User, *Error) {
	if id.ID <= 0 {
		return model.User{}, NewError(ErrorCodeValidation, "user id is required")
	}
	u, err := s.users.Upsert(ctx, id)
	if err != nil {
		logger.FromContext(ctx).Error("failed to upsert user", "user_id", id.ID, "error", err)
		return model.User{}, storeError(err, "failed to save user")
	}
	return u, nil
}

func (s *UserService) Get(ctx context.Context, userID int64) (model.User, *Error) {
	u, err := s.users.Get(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return model.User{}, NewError(ErrorCodeNotFound, "user not found")
	}
	if err != nil {
		logger.FromContext(ctx).Error("failed to get user", "user_id", userID, "error", err)
		return model.User{}, storeError(err, "failed to get user")
	}
	return u, nil
}

// List returns every user with their follow count.
func (s *UserService) List(ctx context.Context) ([]UserSummary, *Error) {
	l := logger.FromContext(ctx)

	users, err := s.users.List(ctx)
	if err != nil {
		l.Error("failed to list users", "error", err)
		return nil, storeError(err, "failed to list users")
	}
	counts, err := s.follows.CountByUser(ctx)
	if err != nil {
		l.Error("failed to count follows", "error", err)
		return nil, storeError(err, "failed to count follows")
	}

	out := make([]UserSummary, 0, len(users))
	for _, u := range users {
		out = append(out, UserSummary{User: u, FollowCount: counts[u.ID]})
	}
	return out, nil
}

// Update changes the stored name and/or username of a user.
func (s *UserService) Update(ctx context.Context, userID int64, name, username string) (model.User, *Error) {
	name, username = strings.TrimSpace(name), strings.TrimSpace(username)
	if name == "" && username == "" {
		return model.User{}, NewError(ErrorCodeValidation, "name or username is required")
	}
	u, err := s.users.Update(ctx, userID, name, username)
	if err != nil {
		logger.FromContext(ctx).Error("failed to update user", "user_id", userID, "error", err)
		return model.User{}, storeError(err, "failed to update user")
	}
	return u, nil
}

// Delete removes a user and all of their follows. It is NOT_FOUND only when
// neither a user row nor any follow existed.
func (s *UserService) Delete(ctx context.Context, userID int64) *Error {
	l := logger.FromContext(ctx).With("user_id", userID)

	follows, err := s.follows.ListByUser(ctx, userID)
	if err != nil {
		l.Error("failed to load follows", "error", err)
		return storeError(err, "failed to load follows")
	}
	for _, f := range follows {
		if err := s.follows.Delete(ctx, f); err != nil {
			l.Error("failed to remove follow", "team_id", f.TeamID, "error", err)
			return storeError(err, "failed to remove follows")
		}
	}

	err = s.users.Delete(ctx, userID)
	switch {
	case errors.Is(err, repository.ErrNotFound) && len(follows) == 0:
		return NewError(ErrorCodeNotFound, "user not found")
	case errors.Is(err, repository.ErrNotFound):
	case err != nil:
		l.Error("failed to delete user", "error", err)
		return storeError(err, "failed to delete user")
	}

	l.Info("user deleted", "follows", len(follows))
	return nil
}

// Stats summarizes users and follows.
func (s *UserService) Stats(ctx context.Context) (model.Stats, *Error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return model.Stats{}, storeError(err, "failed to list users")
	}
	counts, err := s.follows.CountByUser(ctx)
	if err != nil {
		return model.Stats{}, storeError(err, "failed to count follows")
	}

	st := model.Stats{TotalUsers: len(users)}
	for _, u := range users {
		if u.Active {
			st.ActiveUsers++
		}
	}
	for _, n := range counts {
		st.TotalFollows += n
	}
	return st, nil
}
