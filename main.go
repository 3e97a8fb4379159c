package main

import (
	"errors"
	"log"
	"net/http"
	"os"

	"securities/src/api"
	"securities/src/config"
	"securities/src/database"
	"securities/src/models"
	"securities/src/repositories"
	"securities/src/scheduler"
	"securities/src/sessions"
	"securities/src/utils"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig("./settings", os.Getenv("ENV"))
	if err != nil {
		log.Println(err, "Error while loading config")
		return
	}
	errC, err := run(cfg)
	if err != nil {
		log.Println(err, "Couldn't run")
		return
	}

	if err := <-errC; err != nil {
		log.Println(err, "Error while running")
	}
}

func run(cfg *config.Config) (<-chan error, error) {
	errC := make(chan error, 1)

	logger := utils.NewLogger(cfg.Service.LogLevel)

	db, err := database.SetupDB(cfg)
	if err != nil {
		return nil, err
	}

	store, err := sessions.NewRedisStore(cfg)
	if err != nil {
		return nil, err
	}

	server := api.NewServer(cfg, db, store, logger)
	httpServer := api.NewHTTPServer(server)

	markets := repositories.NewMarketRepository(db, models.BuildSchema())
	task, err := scheduler.NewPriceDateRefresh(markets, logger)
	if err != nil {
		return nil, err
	}

	go func() {
		logger.WithField("port", cfg.Service.Port).Info("Starting server")

		// "ListenAndServe always returns a non-nil error. After Shutdown or Close, the returned error is
		// ErrServerClosed."
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			task.Cancel()
			errC <- err
		}
	}()
	return errC, nil
}
