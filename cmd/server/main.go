package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"songboard/internal/app"
	"songboard/internal/bot"
	"songboard/internal/config"
	"songboard/internal/httpapp"
	"songboard/internal/logger"
	"songboard/internal/scheduler"
	"songboard/internal/spotify"
	"songboard/internal/store"
)

func main() {
	cfg := config.Load()

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	// Initialize Logger
	appLogger := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	// Initialize DB
	db, err := store.NewSQLiteDB(cfg.DBPath)
	if err != nil {
		appLogger.Error("Failed to init DB", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	settingsRepo := store.NewSettingsRepo(db)

	// Initialize Services
	weekService := app.NewWeekService(db, settingsRepo, cfg.AnchorWeekday(), appLogger.WithComponent("weeks"))
	songService := app.NewSongService(db, weekService, cfg.RatingMax, appLogger.WithComponent("songs"))

	// Initialize rollover scheduler
	sched, err := scheduler.New(weekService, cfg.RolloverCron, appLogger.WithComponent("scheduler"))
	if err != nil {
		appLogger.Error("Failed to init scheduler", "error", err)
		os.Exit(1)
	}
	sched.Start()
	defer sched.Stop()

	// Initialize Router
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Routes
	h := httpapp.NewHandler(songService, weekService, appLogger.WithComponent("http"))

	// The chat gateway relays channel messages here when configured.
	if cfg.DiscordChannelID != "" {
		tracks := spotify.NewClient(cfg.SpotifyClientID, cfg.SpotifyClientSecret)
		h.Bot = bot.NewProcessor(songService, tracks, cfg.DiscordChannelID, appLogger.WithComponent("bot"))
	}

	h.RegisterRoutes(r)

	// Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.Printf("Server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}
