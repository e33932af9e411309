package web

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrijs2005/textdesk/internal/client/app"
	"github.com/dmitrijs2005/textdesk/internal/client/config"
	"github.com/dmitrijs2005/textdesk/internal/logging"
)

const shutdownTimeout = 5 * time.Second

// App runs the browser form until SIGINT, SIGTERM or SIGQUIT.
type App struct {
	config     *config.Config
	logger     logging.Logger
	components *app.Components
	server     *http.Server
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	comps, err := app.Build(ctx, c, os.Stdout)
	if err != nil {
		return nil, err
	}

	if err := comps.Form.Restore(ctx); err != nil {
		comps.Logger.Warn(ctx, "drafts partially restored", "error", err)
	}

	s, err := NewServer(comps.Form, comps.Saver, comps.Logger)
	if err != nil {
		_ = comps.Close()
		return nil, err
	}

	return &App{
		config:     c,
		logger:     comps.Logger.With("module", "web"),
		components: comps,
		server:     &http.Server{Addr: c.WebAddr, Handler: s.Router()},
	}, nil
}

func (a *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer signal.Stop(sigs)
		select {
		case <-sigs:
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

// Run blocks until ctx is cancelled or a signal arrives, then shuts the
// server down and closes the draft store.
func (a *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()
	a.initSignalHandler(ctx, cancelFunc)

	errc := make(chan error, 1)
	go func() {
		a.logger.Info(ctx, "listening", "addr", a.config.WebAddr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-errc:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		a.logger.Error(ctx, "shutdown failed", "error", err)
	}
	if err := a.components.Close(); err != nil {
		a.logger.Error(ctx, "store close failed", "error", err)
	}

	a.logger.Info(context.Background(), "stopped")
	return runErr
}
