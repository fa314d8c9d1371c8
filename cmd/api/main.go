package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"debtledger/internal/config"
	"debtledger/internal/database"
	"debtledger/internal/domain/client"
	"debtledger/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	store := client.NewStore(db)
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("store close: %v", err)
		}
	}()

	srv, err := server.New(cfg, store)
	if err != nil {
		log.Fatalf("server: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		log.Printf("server stopped: %v", err)
	}
}
