package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mishasvintus/teams_api/internal/config"
	"github.com/mishasvintus/teams_api/internal/handler"
	"github.com/mishasvintus/teams_api/internal/logger"
	"github.com/mishasvintus/teams_api/internal/repository"
	"github.com/mishasvintus/teams_api/internal/router"
	"github.com/mishasvintus/teams_api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logg, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logg.Sync() }()

	db, err := repository.NewPostgresDB(cfg.Database.DSN(), cfg.Database.MaxOpenConns)
	if err != nil {
		logg.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() { _ = db.Close() }()

	if err := repository.Migrate(db); err != nil {
		logg.Fatal("failed to migrate database", zap.Error(err))
	}

	teamService := service.NewTeamService(db)
	personService := service.NewPersonService(db)

	teamHandler := handler.NewTeamHandler(teamService)
	personHandler := handler.NewPersonHandler(personService)
	healthHandler := handler.NewHealthHandler(db)

	gin.SetMode(cfg.Server.GinMode)
	r := router.SetupRoutes(logg, teamHandler, personHandler, healthHandler)

	srv := &http.Server{
		Addr:    cfg.Server.Addr(),
		Handler: r,
	}

	go func() {
		logg.Info("server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Fatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logg.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logg.Error("server forced to shutdown", zap.Error(err))
		return
	}

	logg.Info("server exited")
}
