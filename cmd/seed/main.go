package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"

	"salesdesk/internal/backend"
	"salesdesk/internal/config"
	"salesdesk/internal/seed"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[seed] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	client := backend.New(cfg.BackendBaseURL, cfg.BackendTimeout, logger)

	if err := seed.Apply(ctx, client); err != nil {
		logger.Fatalf("seed apply: %v", err)
	}

	logger.Println("seed applied")
}
