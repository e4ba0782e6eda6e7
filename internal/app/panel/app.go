package panel

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/DenisKhanov/BotPanel/internal/logcfg"
	"github.com/DenisKhanov/BotPanel/internal/panel/config"
	"github.com/sirupsen/logrus"
)

// shutdownTimeout is the grace period of the HTTP server.
const shutdownTimeout = 5 * time.Second

// App represents the application structure responsible for initializing dependencies
// and running the panel HTTP server together with the status poller.
type App struct {
	serviceProvider *ServiceProvider // The service provider for dependency injection
	config          *config.Config   // The configuration object for the application
	args            []string         // Command line arguments without the program name
	serverHTTP      *http.Server     // The panel HTTP server
}

// NewApp creates a new instance of the application.
func NewApp(ctx context.Context, args []string) (*App, error) {
	app := &App{args: args}
	err := app.initDeps(ctx)
	if err != nil {
		return nil, err
	}
	return app, nil
}

// Run starts the HTTP server and the poller and blocks until SIGINT or SIGTERM.
func (a *App) Run() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := a.run(ctx); err != nil {
		logrus.WithError(err).Fatal("Panel stopped with error")
	}
}

// initDeps initializes all dependencies required by the application.
func (a *App) initDeps(ctx context.Context) error {
	inits := []func(context.Context) error{
		a.initConfig,
		a.initServiceProvider,
		a.initHTTPServer,
	}

	for _, f := range inits {
		err := f(ctx)
		if err != nil {
			return err
		}
	}

	return nil
}

// initConfig initializes the application configuration and the logger.
func (a *App) initConfig(_ context.Context) error {
	cfg, err := config.NewConfig(config.DefaultEnvFile, a.args)
	if err != nil {
		return err
	}
	a.config = cfg
	return logcfg.RunLoggerConfig(a.config.EnvLogsLevel, a.config.EnvLogFileName)
}

// initServiceProvider initializes the service provider for dependency injection.
func (a *App) initServiceProvider(_ context.Context) error {
	a.serviceProvider = NewServiceProvider(a.config)
	return nil
}

// initHTTPServer initializes the panel HTTP server with middleware and routes.
func (a *App) initHTTPServer(_ context.Context) error {
	a.serverHTTP = &http.Server{
		Addr:              a.config.PanelAddr,
		Handler:           a.serviceProvider.Handler().Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return nil
}

// run serves until ctx is cancelled or the server fails, then shuts everything down.
func (a *App) run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		a.serviceProvider.Poller().Run(ctx)
	}()

	serveErr := make(chan error, 1)
	go func() {
		logrus.Infof("Panel HTTP server started on: %s", a.config.PanelAddr)
		if err := a.serverHTTP.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	var err error
	select {
	case <-ctx.Done():
		logrus.Info("Shutting down panel...")
	case err = <-serveErr:
		logrus.WithError(err).Error("Panel HTTP server failed")
	}
	cancel()

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()
	if shutdownErr := a.serverHTTP.Shutdown(shutdownCtx); shutdownErr != nil {
		logrus.WithError(shutdownErr).Error("HTTP server shutdown error")
	}

	wg.Wait()
	a.serviceProvider.Panel().Close()
	logrus.Info("Panel exited")

	return err
}

