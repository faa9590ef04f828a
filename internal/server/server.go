package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"

	"github.com/akave-ai/ledgerdesk/internal/classifier"
	"github.com/akave-ai/ledgerdesk/internal/config"
	"github.com/akave-ai/ledgerdesk/internal/handler"
	"github.com/akave-ai/ledgerdesk/internal/ingest"
	"github.com/akave-ai/ledgerdesk/internal/metrics"
	"github.com/akave-ai/ledgerdesk/internal/observability"
	"github.com/akave-ai/ledgerdesk/internal/repository"
	"github.com/akave-ai/ledgerdesk/internal/response"
	"github.com/akave-ai/ledgerdesk/internal/service"
)

// Server holds the Echo app and dependencies.
type Server struct {
	Echo    *echo.Echo
	Config  *config.Config
	Logger  zerolog.Logger
	Metrics *metrics.Metrics

	Tickets      *repository.TicketRepository
	Transactions *repository.TransactionRepository

	newRelic *newrelic.Application // optional; flushed on Shutdown
}

// New builds the Echo server, its stores and services, and registers routes.
// nr may be nil when New Relic is disabled.
func New(cfg *config.Config, logger zerolog.Logger, nr *newrelic.Application) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		Echo:         e,
		Config:       cfg,
		Logger:       logger,
		Metrics:      metrics.New(),
		Tickets:      repository.NewTicketRepository(),
		Transactions: repository.NewTransactionRepository(),
		newRelic:     nr,
	}

	e.HTTPErrorHandler = s.handleError
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(
		middleware.RequestID(),
		s.requestLogger(),
		middleware.Recover(),
		observability.Middleware(nr),
		middleware.BodyLimit(fmt.Sprintf("%dB", cfg.Server.MaxUploadBytes)),
	)

	engine := classifier.NewEngine(
		classifier.WithLogger(logger.With().Str("component", "classifier").Logger()),
		classifier.WithRecorder(s.Metrics),
	)
	tickets := service.NewTicketService(s.Tickets, engine, logger.With().Str("component", "tickets").Logger())
	importer := ingest.NewImporter(ingest.DefaultRegistry(), s.Tickets, logger.With().Str("component", "import").Logger(), s.Metrics)
	banking := service.NewBankingService(s.Transactions, logger.With().Str("component", "banking").Logger(), s.Metrics)

	s.routes(
		&handler.TicketHandler{Service: tickets},
		&handler.ImportHandler{Importer: importer},
		&handler.TransactionHandler{Service: banking},
		&handler.AccountHandler{Service: banking},
	)
	return s
}

func (s *Server) routes(th *handler.TicketHandler, ih *handler.ImportHandler, txh *handler.TransactionHandler, ah *handler.AccountHandler) {
	e := s.Echo
	e.GET("/", handler.Root)
	e.GET("/health", handler.Health)
	e.GET("/metrics", echo.WrapHandler(s.Metrics.Handler()))

	// Ticket API
	t := e.Group("/tickets")
	t.POST("", th.Create)
	t.GET("", th.List)
	t.POST("/import", ih.Import)
	t.GET("/import/formats", ih.Formats)
	t.GET("/:id", th.Get)
	t.PUT("/:id", th.Update)
	t.DELETE("/:id", th.Delete)
	t.POST("/:id/auto-classify", th.AutoClassify)

	// Banking API
	tx := e.Group("/transactions")
	tx.POST("", txh.Create)
	tx.GET("", txh.List)
	tx.GET("/export", txh.Export)
	tx.GET("/:id", txh.Get)

	a := e.Group("/accounts")
	a.GET("/:accountId/balance", ah.Balance)
	a.GET("/:accountId/summary", ah.Summary)
}

// requestLogger writes one zerolog line per request.
func (s *Server) requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			ev := s.Logger.Info()
			if v.Error != nil || v.Status >= http.StatusInternalServerError {
				ev = s.Logger.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}

// handleError renders errors no handler turned into a response. echo errors
// keep their status; anything else becomes a generic 500 and is logged.
func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		detail := fmt.Sprint(he.Message)
		if he.Code == http.StatusNotFound {
			detail = fmt.Sprintf("Route %s %s not found", c.Request().Method, c.Request().URL.Path)
		}
		if rerr := response.Error(c, he.Code, http.StatusText(he.Code), detail); rerr != nil {
			s.Logger.Error().Err(rerr).Msg("write error response")
		}
		return
	}

	s.Logger.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Request().URL.Path).
		Msg("unhandled error")
	if rerr := response.InternalError(c, "Internal server error", "Internal server error"); rerr != nil {
		s.Logger.Error().Err(rerr).Msg("write error response")
	}
}

// Start starts the HTTP server. Blocks until the context is cancelled or the server fails.
// On context cancel, Shutdown is called so in-flight requests can finish.
func (s *Server) Start(ctx context.Context) error {
	srv := s.Echo.Server
	srv.ReadTimeout = time.Duration(s.Config.Server.ReadTimeout) * time.Second
	srv.WriteTimeout = time.Duration(s.Config.Server.WriteTimeout) * time.Second
	srv.IdleTimeout = time.Duration(s.Config.Server.IdleTimeout) * time.Second

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.Shutdown(shutdownCtx); err != nil {
			s.Logger.Error().Err(err).Msg("shutdown")
		}
	}()

	addr := ":" + s.Config.Server.Port
	s.Logger.Info().Str("addr", addr).Msg("server listening")
	if err := s.Echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server and flushes the New Relic agent.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.Echo.Shutdown(ctx)
	observability.Shutdown(s.newRelic, 5*time.Second)
	return err
}
