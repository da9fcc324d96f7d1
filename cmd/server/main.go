package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"dataqc/adapters/postgres"
	"dataqc/internal/analysis"
	"dataqc/internal/api"
	"dataqc/internal/config"
	"dataqc/internal/testkit"
	"dataqc/ports"
)

func main() {
	// .env is optional; real deployments set the environment directly
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	rules, cleanup, err := setupRuleStore(cfg)
	if err != nil {
		log.Fatalf("Failed to set up rule store: %v", err)
	}
	defer cleanup()

	analyzer := analysis.New(analysis.Config{
		SampleSize:        cfg.Analysis.SampleSize,
		ZScoreThreshold:   cfg.Analysis.ZScoreThreshold,
		MinOutlierSamples: cfg.Analysis.MinOutlierSamples,
	})

	server := api.NewServer(analyzer, rules)
	httpServer := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: server.Router(),
	}

	go func() {
		log.Printf("Starting dataqc server on :%s", cfg.Server.Port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Printf("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Printf("Forced shutdown: %v", err)
	}
}

// setupRuleStore connects to postgres when DATABASE_URL is set and falls
// back to the in-memory store otherwise.
func setupRuleStore(cfg *config.Config) (ports.RuleRepository, func(), error) {
	if cfg.Database.URL == "" {
		log.Printf("DATABASE_URL not set, custom rules are kept in memory")
		return testkit.NewInMemoryRuleRepository(), func() {}, nil
	}

	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		return nil, nil, err
	}
	if err := postgres.Migrate(db); err != nil {
		db.Close()
		return nil, nil, err
	}
	return postgres.NewRuleRepository(db), func() { db.Close() }, nil
}
