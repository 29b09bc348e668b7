package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"football_bot/internal/logger"
	"football_bot/internal/model"
	"football_bot/internal/repository"
	"football_bot/internal/service"
)

func (h *Handler) AdminListTeams(e echo.Context) error {
	ctx := e.Request().Context()

	teams, err := h.catalog.ListTeams(ctx)
	if err != nil {
		return h.transportError(e, err)
	}

	return e.JSON(http.StatusOK, struct {
		Teams []model.Team `json:"teams"`
		Count int          `json:"count"`
	}{Teams: teams, Count: len(teams)})
}

func (h *Handler) AdminAddTeam(e echo.Context) error {
	ctx := e.Request().Context()
	l := logger.FromContext(ctx)

	var req struct {
		ID      string `json:"id" validate:"required"`
		Name    string `json:"name" validate:"required"`
		Logo    string `json:"logo"`
		Country string `json:"country"`
		League  string `json:"league"`
	}
	if err := h.decodeRequest(e, &req); err != nil {
		l.Error("invalid request", "error", err)
		return h.transportError(e, err)
	}

	l.Info("adding team", "team_id", req.ID, "name", req.Name)

	team, err := h.catalog.AddTeam(ctx, model.Team{
		ID:      req.ID,
		Name:    req.Name,
		LogoURL: req.Logo,
		Country: req.Country,
		League:  req.League,
	})
	if err != nil {
		l.Error("failed to add team", "team_id", req.ID, "error", err)
		return h.transportError(e, err)
	}

	return e.JSON(http.StatusCreated, team)
}

func (h *Handler) AdminUpdateTeam(e echo.Context) error {
	ctx := e.Request().Context()
	l := logger.FromContext(ctx)

	var req struct {
		Name    *string `json:"name"`
		Logo    *string `json:"logo"`
		Country *string `json:"country"`
		League  *string `json:"league"`
	}
	if err := h.decodeRequest(e, &req); err != nil {
		l.Error("invalid request", "error", err)
		return h.transportError(e, err)
	}

	teamID := e.Param("teamId")
	team, err := h.catalog.UpdateTeam(ctx, teamID, repository.TeamPatch{
		Name:    req.Name,
		LogoURL: req.Logo,
		Country: req.Country,
		League:  req.League,
	})
	if err != nil {
		l.Error("failed to update team", "team_id", teamID, "error", err)
		return h.transportError(e, err)
	}

	return e.JSON(http.StatusOK, team)
}

func (h *Handler) AdminDeleteTeam(e echo.Context) error {
	ctx := e.Request().Context()
	teamID := e.Param("teamId")

	if err := h.catalog.DeleteTeam(ctx, teamID); err != nil {
		logger.FromContext(ctx).Error("failed to delete team", "team_id", teamID, "error", err)
		return h.transportError(e, err)
	}

	return e.JSON(http.StatusOK, successResponse{Success: true})
}

func (h *Handler) AdminListUsers(e echo.Context) error {
	ctx := e.Request().Context()

	users, err := h.users.List(ctx)
	if err != nil {
		return h.transportError(e, err)
	}

	return e.JSON(http.StatusOK, struct {
		Users []service.UserSummary `json:"users"`
		Count int                   `json:"count"`
	}{Users: users, Count: len(users)})
}

func (h *Handler) AdminUpdateUser(e echo.Context) error {
	ctx := e.Request().Context()
	l := logger.FromContext(ctx)

	userID, err := userIDParam(e)
	if err != nil {
		return h.transportError(e, err)
	}

	var req struct {
		Name     string `json:"name"`
		Username string `json:"username"`
	}
	if err := h.decodeRequest(e, &req); err != nil {
		l.Error("invalid request", "error", err)
		return h.transportError(e, err)
	}

	user, err := h.users.Update(ctx, userID, req.Name, req.Username)
	if err != nil {
		l.Error("failed to update user", "user_id", userID, "error", err)
		return h.transportError(e, err)
	}

	return e.JSON(http.StatusOK, user)
}

func (h *Handler) AdminStats(e echo.Context) error {
	stats, err := h.users.Stats(e.Request().Context())
	if err != nil {
		return h.transportError(e, err)
	}
	return e.JSON(http.StatusOK, stats)
}

// AdminSync mirrors provider leagues into the catalog. An empty body syncs the
// configured leagues.
func (h *Handler) AdminSync(e echo.Context) error {
	ctx := e.Request().Context()
	l := logger.FromContext(ctx)

	var req struct {
		Leagues []string `json:"leagues"`
	}
	if e.Request().ContentLength > 0 {
		if err := h.decodeRequest(e, &req); err != nil {
			l.Error("invalid request", "error", err)
			return h.transportError(e, err)
		}
	}
	leagues := req.Leagues
	if len(leagues) == 0 {
		leagues = h.syncLeagues
	}

	l.Info("syncing catalog", "leagues", len(leagues))

	report, err := h.catalog.Sync(ctx, leagues)
	if err != nil {
		l.Error("failed to sync catalog", "error", err)
		return h.transportError(e, err)
	}

	return e.JSON(http.StatusOK, report)
}
