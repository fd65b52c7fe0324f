package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookreview/internal/handlers"
	"bookreview/internal/logger"
	"bookreview/internal/repository"
	"bookreview/internal/repository/db"
	"bookreview/internal/server"
	"bookreview/internal/service"

	"github.com/spf13/viper"
)

const shutdownGrace = 10 * time.Second

func main() {
	loadConfig()

	log := logger.Get(viper.GetString("log.level"))

	if viper.GetString("token.secret") == "" {
		log.Fatalw("token.secret is not configured; refusing to start")
	}

	store, err := openStore(log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(store)
	services := service.NewService(repos, service.Config{
		TokenSecret: viper.GetString("token.secret"),
		TokenTTL:    viper.GetDuration("token.ttl"),
	})
	apiHandler := handlers.NewHandler(services, log)

	srv := &server.Server{}
	runHTTPServer(srv, viper.GetString("port"), apiHandler, log)

	waitForShutdown(srv, log)
}

// loadConfig reads configs/config.yml on top of built-in defaults. Only the
// token secret has no default; startup refuses to proceed without it.
func loadConfig() {
	viper.SetDefault("port", "8080")
	viper.SetDefault("db.path", "bookreview.db")
	viper.SetDefault("log.level", logger.InfoLevel)
	viper.SetDefault("token.ttl", 24*time.Hour)

	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")
	_ = viper.ReadInConfig()
}

// openStore opens the SQLite file, applies pragmas, and ensures the schema.
func openStore(log *logger.Logger) (*sql.DB, error) {
	path := viper.GetString("db.path")
	log.Infow("opening store", "path", path)
	return db.InitDB(path)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
	log.Infow("server listening", "port", port)
}

// waitForShutdown blocks on termination signals, then drains in-flight
// requests before returning.
func waitForShutdown(srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}
