// Package api is the HTTP surface of the web mini-app, the admin endpoints
// and the Telegram webhook.
package api

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"football_bot/internal/service"
)

// UpdateHandler processes Telegram updates delivered to the webhook.
type UpdateHandler interface {
	HandleUpdate(ctx context.Context, update tgbotapi.Update)
}

type Handler struct {
	teams   *service.TeamService
	follows *service.FollowService
	users   *service.UserService
	catalog *service.CatalogService

	updates     UpdateHandler
	syncLeagues []string

	healthChecker HealthChecker

	logger *slog.Logger
}

func NewHandler(logger *slog.Logger) *Handler {
	return &Handler{
		logger: logger,
	}
}

func (h *Handler) WithHealthChecker(c HealthChecker) *Handler {
	h.healthChecker = c
	return h
}

func (h *Handler) WithTeamService(teams *service.TeamService) *Handler {
	h.teams = teams
	return h
}

func (h *Handler) WithFollowService(follows *service.FollowService) *Handler {
	h.follows = follows
	return h
}

func (h *Handler) WithUserService(users *service.UserService) *Handler {
	h.users = users
	return h
}

// WithCatalogService enables the admin catalog endpoints. leagues is the list
// synced when a sync request names none.
func (h *Handler) WithCatalogService(catalog *service.CatalogService, leagues []string) *Handler {
	h.catalog = catalog
	h.syncLeagues = leagues
	return h
}

func (h *Handler) WithUpdateHandler(u UpdateHandler) *Handler {
	h.updates = u
	return h
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.Validator = NewValidator()
	e.Use(middleware.RequestID())
	e.Use(SlogLoggerMiddleware(h.logger))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	if h.healthChecker != nil {
		e.GET("/health", h.healthChecker.HealthCheck())
	}

	e.GET("/webhook", h.WebhookStatus)
	e.POST("/webhook", h.Webhook)

	e.GET("/teams", h.GetTeams)
	e.GET("/teams/:teamId", h.GetTeam)
	e.GET("/teams/:teamId/matches", h.GetPastMatches)

	e.GET("/users/:userId/teams", h.GetUserTeams)
	e.POST("/users/:userId/teams", h.SaveUserTeams)
	e.PUT("/users/:userId/teams/:teamId", h.UpdateFollowSettings)
	e.DELETE("/users/:userId", h.DeleteUser)

	admin := e.Group("/admin")

	admin.GET("/teams", h.AdminListTeams)
	admin.POST("/teams", h.AdminAddTeam)
	admin.PUT("/teams/:teamId", h.AdminUpdateTeam)
	admin.DELETE("/teams/:teamId", h.AdminDeleteTeam)
	admin.GET("/users", h.AdminListUsers)
	admin.PUT("/users/:userId", h.AdminUpdateUser)
	admin.DELETE("/users/:userId", h.DeleteUser)
	admin.GET("/stats", h.AdminStats)
	admin.POST("/sync", h.AdminSync)
}

func (h *Handler) decodeRequest(e echo.Context, req any) *service.Error {
	if err := e.Bind(req); err != nil {
		return service.NewError(service.ErrorCodeValidation, "invalid request body")
	}

	if err := e.Validate(req); err != nil {
		return service.NewError(service.ErrorCodeValidation, errors.Wrap(err, "request validation failed").Error())
	}
	return nil
}

func userIDParam(e echo.Context) (int64, *service.Error) {
	id, err := strconv.ParseInt(e.Param("userId"), 10, 64)
	if err != nil || id <= 0 {
		return 0, service.NewError(service.ErrorCodeValidation, "invalid user id")
	}
	return id, nil
}

func (h *Handler) transportError(e echo.Context, err *service.Error) error {
	response := struct {
		Error *service.Error `json:"error"`
	}{Error: err}

	switch err.Code {
	case service.ErrorCodeValidation:
		return e.JSON(http.StatusBadRequest, response)
	case service.ErrorCodeNotFound:
		return e.JSON(http.StatusNotFound, response)
	case service.ErrorCodeUpstream:
		return e.JSON(http.StatusServiceUnavailable, response)
	case service.ErrorCodeAlreadyFollowing:
		return e.JSON(http.StatusConflict, response)
	default:
		return e.JSON(http.StatusInternalServerError, response)
	}
}
