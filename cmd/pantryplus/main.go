package main

import (
	"context"
	"log"

	"github.com/GrandCart/PantryPlus2/internal/blobstore/local"
	"github.com/GrandCart/PantryPlus2/internal/cache"
	"github.com/GrandCart/PantryPlus2/internal/config"
	"github.com/GrandCart/PantryPlus2/internal/db"
	"github.com/GrandCart/PantryPlus2/internal/identity"
	"github.com/GrandCart/PantryPlus2/internal/logging"
	"github.com/GrandCart/PantryPlus2/internal/service"
	"github.com/GrandCart/PantryPlus2/internal/store"
	"github.com/GrandCart/PantryPlus2/internal/web"
)

func main() {
	cfg := config.Load()

	logger, cleanup, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer cleanup()

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		return
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	blobs, err := local.NewLocalBlobStore(cfg.BlobPath)
	if err != nil {
		logger.Error("failed to initialize blob store", "error", err)
		return
	}

	itemStore := store.NewItemStore(database)
	itemCache := cache.New()
	provider := identity.NewLocalProvider()

	inventory := service.NewInventoryService(itemStore, blobs, itemCache, cfg.ExpiringDays, logger)
	binding := service.NewSessionBinding(provider, inventory, itemCache, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go binding.Run(ctx)

	server := web.NewServer(inventory, provider, blobs, logger)
	if err := server.ListenAndServe(cfg.ListenAddr); err != nil {
		logger.Error("server error", "error", err)
	}
}
