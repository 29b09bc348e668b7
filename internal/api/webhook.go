package api

import (
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/labstack/echo/v4"

	"football_bot/internal/logger"
)

type okResponse struct {
	OK bool `json:"ok"`
}

func (h *Handler) WebhookStatus(e echo.Context) error {
	return e.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Webhook handles one Telegram update. It always answers 200 so Telegram
// does not redeliver updates that failed to process.
func (h *Handler) Webhook(e echo.Context) error {
	ctx := e.Request().Context()
	l := logger.FromContext(ctx)

	var update tgbotapi.Update
	if err := e.Bind(&update); err != nil {
		l.Warn("invalid webhook update", "error", err)
		return e.JSON(http.StatusOK, okResponse{OK: true})
	}

	if h.updates == nil {
		l.Warn("webhook update dropped, no handler", "update_id", update.UpdateID)
		return e.JSON(http.StatusOK, okResponse{OK: true})
	}

	h.updates.HandleUpdate(ctx, update)
	return e.JSON(http.StatusOK, okResponse{OK: true})
}
