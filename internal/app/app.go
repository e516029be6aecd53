package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sheetcal/sheetcal/internal/config"
	"github.com/sheetcal/sheetcal/pkg/sheets"
	"github.com/sheetcal/sheetcal/pkg/telegram"
	log "github.com/sirupsen/logrus"
)

// Application wires configuration, the store, Telegram and the HTTP server.
type Application struct {
	cfg    config.Application
	deps   *Dependencies
	router *mux.Router
	srv    *http.Server
}

// NewApplication connects to Google Sheets and Telegram and builds the bot,
// ready to Run().
func NewApplication(ctx context.Context, cfg config.Application) (*Application, error) {
	store, err := sheets.NewGoogleStore(ctx, cfg.Google)
	if err != nil {
		return nil, err
	}

	client, err := telegram.NewClient(cfg.Telegram)
	if err != nil {
		return nil, err
	}

	deps, err := BuildDependencies(ctx, cfg, store, client)
	if err != nil {
		return nil, err
	}
	return newApplication(cfg, deps), nil
}

func newApplication(cfg config.Application, deps *Dependencies) *Application {
	r := mux.NewRouter()
	SetupMiddleware(r)
	RegisterRoutes(r, deps, cfg)

	srv := &http.Server{
		Handler:      r,
		Addr:         cfg.HTTP.Addr,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Application{cfg: cfg, deps: deps, router: r, srv: srv}
}

// Run serves HTTP and receives updates until ctx is done.
func (a *Application) Run(ctx context.Context) error {
	defer a.deps.Close()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errs := make(chan error, 2)
	go func() {
		log.Infof("Starting server on %s", a.srv.Addr)
		if err := a.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- fmt.Errorf("http server: %w", err)
		}
	}()

	switch a.cfg.Telegram.Mode {
	case config.ModeWebhook:
		if err := a.deps.Receiver.RegisterWebhook(a.cfg.Telegram.WebhookUrl); err != nil {
			_ = a.shutdown()
			return err
		}
	default:
		go func() {
			if err := a.deps.Receiver.Poll(ctx, a.cfg.Telegram.PollTimeout); err != nil {
				errs <- err
			}
		}()
	}

	var runErr error
	select {
	case <-ctx.Done():
		log.Info("Shutting down")
	case runErr = <-errs:
		log.Errorf("Stopping after error: %v", runErr)
		cancel()
	}

	if err := a.shutdown(); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}

func (a *Application) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err := a.srv.Shutdown(ctx)
	a.deps.Receiver.Wait()
	return err
}
