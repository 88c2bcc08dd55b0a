package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"x-impressions/internal/config"
	"x-impressions/internal/database"
)

func main() {
	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL environment variable is not set. Please check your .env file.")
	}

	fmt.Println("Attempting to connect to PostgreSQL...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	repo, err := database.ConnectDB(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	defer repo.Close()

	if err := repo.EnsureSchema(ctx); err != nil {
		log.Fatalf("❌ %v", err)
	}
	fmt.Println("✅ view_snapshots table ready")

	latest, err := repo.LatestSnapshot(ctx, cfg.PostURL)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	if latest == nil {
		fmt.Println("ℹ️ No snapshots recorded yet for", cfg.PostURL)
		return
	}
	fmt.Printf("📦 Latest: %s (%s) at %s\n", latest.Impressions, latest.Method, latest.ScrapedAt.Format(time.RFC3339))
}
