package api

import (
	"context"
	"fmt"
	"time"

	"github.com/hellofresh/health-go/v5"
	"github.com/labstack/echo/v4"
)

type HealthChecker interface {
	HealthCheck() echo.HandlerFunc
}

type healthChecker struct {
	health *health.Health
}

// NewHealthChecker builds the /health handler from the given checks.
func NewHealthChecker(version string, checks ...health.Config) (HealthChecker, error) {
	h, err := health.New(health.WithComponent(health.Component{Name: "football-bot", Version: version}))
	if err != nil {
		return nil, fmt.Errorf("create health: %w", err)
	}

	for _, check := range checks {
		if err := h.Register(check); err != nil {
			return nil, fmt.Errorf("register health check %s: %w", check.Name, err)
		}
	}

	return &healthChecker{
		health: h,
	}, nil
}

func (h *healthChecker) HealthCheck() echo.HandlerFunc {
	return echo.WrapHandler(h.health.Handler())
}

// Pinger is anything that can report its own reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// StoreCheck reports the row store as unhealthy when it cannot be pinged.
func StoreCheck(p Pinger) health.Config {
	return health.Config{
		Name:      "row-store",
		Timeout:   2 * time.Second,
		SkipOnErr: false,
		Check:     p.Ping,
	}
}
