package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"football_bot/internal/catalog"
	"football_bot/internal/logger"
	"football_bot/internal/model"
	"football_bot/internal/normalize"
	"football_bot/internal/service"
)

type teamsResponse struct {
	Teams []model.Follow `json:"teams"`
}

func (h *Handler) GetUserTeams(e echo.Context) error {
	ctx := e.Request().Context()

	userID, err := userIDParam(e)
	if err != nil {
		return h.transportError(e, err)
	}

	return e.JSON(http.StatusOK, teamsResponse{Teams: h.follows.List(ctx, userID)})
}

// saveTeamsRequest.Teams is nil only when the key is absent or null; an
// explicit empty list clears every follow.
type saveTeamsRequest struct {
	Teams []desiredTeam   `json:"teams" validate:"dive"`
	User  *model.Identity `json:"user" validate:"-"`
}

type desiredTeam struct {
	ID       catalog.Text    `json:"id" validate:"required"`
	Name     string          `json:"name"`
	Settings map[string]bool `json:"settings"`
}

type saveTeamsResponse struct {
	Success bool `json:"success"`
	Added   int  `json:"added"`
	Removed int  `json:"removed"`
	Updated int  `json:"updated"`
	Count   int  `json:"count"`
}

// SaveUserTeams replaces the stored follow list of a user with the submitted one.
func (h *Handler) SaveUserTeams(e echo.Context) error {
	ctx := e.Request().Context()
	l := logger.FromContext(ctx)

	userID, err := userIDParam(e)
	if err != nil {
		return h.transportError(e, err)
	}

	var req saveTeamsRequest
	if err := h.decodeRequest(e, &req); err != nil {
		l.Error("invalid request", "error", err)
		return h.transportError(e, err)
	}
	if req.Teams == nil {
		l.Error("invalid request", "error", "teams is missing")
		return h.transportError(e, service.NewError(service.ErrorCodeValidation, "teams is required"))
	}

	if req.User != nil {
		identity := *req.User
		identity.ID = userID
		if _, err := h.users.Touch(ctx, identity); err != nil {
			l.Warn("failed to register user", "user_id", userID, "error", err)
		}
	}

	desired := make([]model.DesiredTeam, 0, len(req.Teams))
	for _, t := range req.Teams {
		d := model.DesiredTeam{ID: normalize.ID(string(t.ID)), Name: t.Name}
		if t.Settings != nil {
			s := model.SettingsFromMap(t.Settings)
			d.Settings = &s
		}
		desired = append(desired, d)
	}

	l.Info("saving user teams", "user_id", userID, "teams", len(desired))

	res, err := h.follows.Reconcile(ctx, userID, desired)
	if err != nil {
		l.Error("failed to save user teams", "user_id", userID, "error", err)
		return h.transportError(e, err)
	}

	return e.JSON(http.StatusOK, saveTeamsResponse{
		Success: true,
		Added:   res.Added,
		Removed: res.Removed,
		Updated: res.Updated,
		Count:   res.Added + res.Updated,
	})
}

func (h *Handler) UpdateFollowSettings(e echo.Context) error {
	ctx := e.Request().Context()
	l := logger.FromContext(ctx)

	userID, err := userIDParam(e)
	if err != nil {
		return h.transportError(e, err)
	}

	var req struct {
		Settings map[string]bool `json:"settings" validate:"required"`
	}
	if err := h.decodeRequest(e, &req); err != nil {
		l.Error("invalid request", "error", err)
		return h.transportError(e, err)
	}

	teamID := e.Param("teamId")
	f, err := h.follows.UpdateSettings(ctx, userID, teamID, model.SettingsFromMap(req.Settings))
	if err != nil {
		l.Error("failed to update follow settings", "user_id", userID, "team_id", teamID, "error", err)
		return h.transportError(e, err)
	}

	return e.JSON(http.StatusOK, f)
}

// DeleteUser removes a user and every follow of theirs.
func (h *Handler) DeleteUser(e echo.Context) error {
	ctx := e.Request().Context()
	l := logger.FromContext(ctx)

	userID, err := userIDParam(e)
	if err != nil {
		return h.transportError(e, err)
	}

	l.Info("deleting user", "user_id", userID)

	if err := h.users.Delete(ctx, userID); err != nil {
		l.Error("failed to delete user", "user_id", userID, "error", err)
		return h.transportError(e, err)
	}

	return e.JSON(http.StatusOK, successResponse{Success: true})
}

type successResponse struct {
	Success bool `json:"success"`
}
