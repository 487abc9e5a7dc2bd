package server

import (
	"context"
	"errors"
	"net/http"
	"time"
)

// App describes the sandbox application
type App struct {
	Config    *AppConfig
	Log       *Log
	LogBuffer *OverflowBuffer
	Mux       *http.ServeMux
	Users     *UserDatabase
	Fleet     *FleetDatabase
	Provider  *ProviderStore
	Rate      *RateController
}

// NewApp creates a new application. Routes are added by the caller,
// see AddRoute.
func NewApp(config *AppConfig) (*App, error) {
	app := &App{
		Config:    config,
		LogBuffer: NewOverflowBuffer(config.LogBufferSize),
		Mux:       http.NewServeMux(),
		Provider:  &ProviderStore{},
		Rate:      NewRateController(config.Rate),
	}

	app.Log = NewLog(config.Trace, app.LogBuffer)
	app.Log.Trace("log system available")

	var err error
	app.Users, err = NewUserDatabase(config.AdminPassword, config.BcryptCost)
	if err != nil {
		return nil, err
	}
	app.Log.Info("default user 'admin' created")

	app.Fleet, err = NewFleetDatabase(config.SeedVMs)
	if err != nil {
		return nil, err
	}
	app.Log.Infof("fleet: %d VM(s)", len(config.SeedVMs))

	return app, nil
}

// Run will start the app (in the foreground), until ctx is done
func (app *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              app.Config.Listen,
		Handler:           app.Mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go app.Rate.ScheduleClean(ctx, 10*time.Minute)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	app.Log.Infof("API server listening on %s", app.Config.Listen)
	err := srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		app.Log.Info("server stopped")
		return nil
	}
	return err
}
