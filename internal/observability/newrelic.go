// Package observability wires the optional New Relic agent into the HTTP
// server.
package observability

import (
	"fmt"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"

	"github.com/akave-ai/ledgerdesk/internal/config"
)

// NewApplication starts the New Relic agent. It returns nil, nil when no
// license key is configured.
func NewApplication(cfg *config.ObservabilityConfig, logger zerolog.Logger) (*newrelic.Application, error) {
	if !cfg.NewRelicEnabled() {
		logger.Info().Msg("new relic disabled: no license key")
		return nil, nil
	}

	app, err := newrelic.NewApplication(
		newrelic.ConfigAppName(cfg.NewRelicAppName()),
		newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
		newrelic.ConfigDistributedTracerEnabled(true),
		func(c *newrelic.Config) {
			c.Labels = map[string]string{"env": cfg.Environment}
		},
	)
	if err != nil {
		return nil, fmt.Errorf("new relic application: %w", err)
	}
	logger.Info().Str("app_name", cfg.NewRelicAppName()).Msg("new relic enabled")
	return app, nil
}

// Shutdown flushes pending agent data. Safe on a nil application.
func Shutdown(app *newrelic.Application, timeout time.Duration) {
	if app == nil {
		return
	}
	app.Shutdown(timeout)
}

// Middleware records one web transaction per request, named by method and
// route pattern. A nil application yields a pass-through middleware.
func Middleware(app *newrelic.Application) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if app == nil {
			return next
		}
		return func(c echo.Context) error {
			req := c.Request()
			name := req.Method + " " + c.Path()
			txn := app.StartTransaction(name)
			defer txn.End()

			txn.SetWebRequestHTTP(req)
			c.Response().Writer = txn.SetWebResponse(c.Response().Writer)
			c.SetRequest(req.WithContext(newrelic.NewContext(req.Context(), txn)))

			err := next(c)
			if err != nil {
				txn.NoticeError(err)
			}
			return err
		}
	}
}
