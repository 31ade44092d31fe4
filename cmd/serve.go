package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"relay_control/internal/config"
	"relay_control/internal/handlers"
	"relay_control/internal/logger"
	"relay_control/internal/repository"
	"relay_control/internal/repository/db"
	"relay_control/internal/server"
	"relay_control/internal/service"

	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the relay release timer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := opts.loadSettings()
			if err != nil {
				return err
			}
			return serve(settings)
		},
	}
}

func serve(settings config.Settings) error {
	log := logger.Get(logger.Options{Level: settings.Log.Level, File: settings.Log.File})
	defer func() { _ = log.Close() }()

	log.Infow("settings_loaded",
		"port", settings.Port,
		"admin_phone", config.MaskPhone(settings.AdminPhone),
		"station_ssid", settings.Station.SSID,
		"ap_ssid", settings.AccessPoint.SSID,
		"ap_channel", settings.AccessPoint.Channel,
		"relay_pulse", settings.Relay.Pulse,
	)

	conn, err := db.InitDB(settings.DB.Path)
	if err != nil {
		log.Errorw("sqlite_init_failed", "path", settings.DB.Path, "err", err)
		return err
	}
	defer closeDB(conn, log)

	repos := repository.NewRepository(conn)
	services := service.NewService(repos, settings, log)
	apiHandler := handlers.NewHandler(services, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go services.Releaser.Run(ctx, settings.Relay.Tick)

	srv := &server.Server{}
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Run(settings.Port, apiHandler.InitRoutes())
	}()
	log.Infow("http_listening", "port", settings.Port)

	return waitForShutdown(cancel, srv, serveErr, log)
}

func closeDB(conn *sql.DB, log *logger.Logger) {
	if err := conn.Close(); err != nil {
		log.Errorw("sqlite_close_failed", "err", err)
	}
}

// waitForShutdown blocks until a termination signal or a server failure,
// then stops background goroutines and drains in-flight requests.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, serveErr <-chan error, log *logger.Logger) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case sig := <-quit:
		log.Infow("shutting_down", "signal", sig.String())
	case err := <-serveErr:
		cancel()
		if err != nil {
			log.Errorw("http_server_failed", "err", err)
		}
		return err
	}

	cancel()

	ctx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server_forced_shutdown", "err", err)
		return err
	}
	return nil
}
