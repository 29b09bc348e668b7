package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"football_bot/internal/logger"
	"football_bot/internal/model"
	"football_bot/internal/service"
)

// GetTeams searches teams by ?query= or lists a league by ?league=.
func (h *Handler) GetTeams(e echo.Context) error {
	ctx := e.Request().Context()
	l := logger.FromContext(ctx)

	query := e.QueryParam("query")
	if query == "" {
		query = e.QueryParam("q")
	}
	league := e.QueryParam("league")

	var (
		res *service.SearchResult
		err *service.Error
	)
	switch {
	case query != "":
		l.Info("searching teams", "query", query)
		res, err = h.teams.Search(ctx, query)
	case league != "":
		l.Info("listing league teams", "league", league)
		res, err = h.teams.LeagueTeams(ctx, league)
	default:
		err = service.NewError(service.ErrorCodeValidation, "query or league is required")
	}
	if err != nil {
		l.Error("failed to get teams", "query", query, "league", league, "error", err)
		return h.transportError(e, err)
	}

	return e.JSON(http.StatusOK, res)
}

func (h *Handler) GetTeam(e echo.Context) error {
	ctx := e.Request().Context()
	teamID := e.Param("teamId")

	team, err := h.teams.Lookup(ctx, teamID)
	if err != nil {
		logger.FromContext(ctx).Error("failed to get team", "team_id", teamID, "error", err)
		return h.transportError(e, err)
	}

	return e.JSON(http.StatusOK, team)
}

func (h *Handler) GetPastMatches(e echo.Context) error {
	ctx := e.Request().Context()
	teamID := e.Param("teamId")

	matches, err := h.teams.PastMatches(ctx, teamID)
	if err != nil {
		logger.FromContext(ctx).Error("failed to get past matches", "team_id", teamID, "error", err)
		return h.transportError(e, err)
	}

	return e.JSON(http.StatusOK, struct {
		Matches []model.Match `json:"matches"`
	}{Matches: matches})
}
