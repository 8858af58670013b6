package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Temutjin2k/fare-estimator/config"
	"github.com/Temutjin2k/fare-estimator/internal/adapter/http/handler"
	"github.com/Temutjin2k/fare-estimator/internal/adapter/http/middleware"
	"github.com/Temutjin2k/fare-estimator/internal/domain/types"
	"github.com/Temutjin2k/fare-estimator/pkg/logger"
	wrap "github.com/Temutjin2k/fare-estimator/pkg/logger/wrapper"
	ws "github.com/Temutjin2k/fare-estimator/pkg/wsHub"
)

const (
	serverIPAddress = "%s:%s"
	serviceName     = "fare-estimator"
)

type API struct {
	mode   types.ServiceMode
	mux    *http.ServeMux
	server *http.Server
	routes *handlers
	m      *middleware.Middleware

	addr string
	log  logger.Logger
}

type handlers struct {
	health    *handler.Health
	estimator *handler.Estimator
	form      *handler.Form
	journal   *handler.Journal
}

// Services are the dependencies of the HTTP API. Only the ones used by the
// configured mode must be set.
type Services struct {
	Estimator           handler.EstimatorService
	Journal             handler.JournalService
	JournalSortSafelist []string
	Hub                 *ws.ConnectionHub
	Auth                middleware.AuthService
}

func New(cfg config.Config, s Services, logger logger.Logger) (*API, error) {
	if s.Auth == nil {
		return nil, errors.New("auth service is required")
	}

	handlers := &handlers{
		health: handler.NewHealth(serviceName, string(cfg.Mode), logger),
	}

	switch cfg.Mode {
	case types.EstimatorService:
		if s.Estimator == nil || s.Hub == nil {
			return nil, errors.New("estimator service and websocket hub are required")
		}
		handlers.estimator = handler.NewEstimator(s.Estimator, logger)
		handlers.form = handler.NewForm(s.Estimator, s.Hub, logger)
	case types.JournalService:
		if s.Journal == nil || len(s.JournalSortSafelist) == 0 {
			return nil, errors.New("journal service and sort safelist are required")
		}
		handlers.journal = handler.NewJournal(s.Journal, s.JournalSortSafelist, logger)
	default:
		return nil, fmt.Errorf("invalid mode: %s", cfg.Mode)
	}

	api := &API{
		mode:   cfg.Mode,
		mux:    http.NewServeMux(),
		routes: handlers,
		m:      middleware.NewMiddleware(s.Auth, logger),
		addr:   fmt.Sprintf(serverIPAddress, "0.0.0.0", cfg.Port()),
		log:    logger,
	}

	setupRoutes(api.mux, api.routes, api.m, api.mode, api.log)

	api.server = &http.Server{
		Addr:              api.addr,
		Handler:           api.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	return api, nil
}

func (a *API) Stop(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	ctx = wrap.WithAction(ctx, "http_server_stop")

	a.log.Debug(ctx, "shutting down HTTP server...", "address", a.addr)
	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("error shutting down server: %w", err)
	}
	a.log.Debug(ctx, "shutting down HTTP server completed")

	return nil
}

func (a *API) Run(ctx context.Context, errCh chan<- error) {
	go func() {
		ctx = wrap.WithAction(ctx, "http_server_start")
		a.log.Info(ctx, "started http server", "address", a.addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("failed to start HTTP server: %w", err)
			return
		}
	}()
}

// Handler returns the mux wrapped in the middleware chain.
func (a *API) Handler() http.Handler {
	return a.m.Metrics(string(a.mode))(a.m.Recover(a.m.RequestID(a.m.Logging(a.m.Auth(a.mux)))))
}
