package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Rl0h4w/mealty-food-creator/internal/catalog"
	"github.com/Rl0h4w/mealty-food-creator/internal/config"
	"github.com/Rl0h4w/mealty-food-creator/internal/database"
	"github.com/Rl0h4w/mealty-food-creator/internal/diet"
	"github.com/Rl0h4w/mealty-food-creator/internal/scraper"
	"github.com/Rl0h4w/mealty-food-creator/internal/solver"
	"github.com/Rl0h4w/mealty-food-creator/internal/telegram"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.RequireTelegram(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	// 2. Initialize the SQLite catalog cache
	db, err := database.NewDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	store := catalog.NewStore(db.SQL)
	source := scraper.New(cfg.MealtyBaseURL)
	catalogSvc := catalog.NewService(store, source)

	// 3. Initialize the diet search engine
	engine := diet.NewEngine(solver.NewBranchBound(cfg.SolveTimeLimit), diet.Options{})

	// 4. Initialize Telegram Bot
	bot, err := telegram.NewBot(cfg, catalogSvc, engine)
	if err != nil {
		log.Fatalf("Failed to initialize Telegram Bot: %v", err)
	}

	// 5. Start Server with Graceful Shutdown
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	bot.RegisterHandlers()

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: nil,
	}

	go func() {
		log.Printf("Telegram Bot Server listening on port %s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}
