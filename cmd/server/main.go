package main

import (
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/docvault/backend/internal/api"
	"github.com/docvault/backend/internal/config"
	"github.com/docvault/backend/internal/engine"
	"github.com/docvault/backend/internal/storage"
	"github.com/docvault/backend/internal/store"
)

func main() {
	// Setup Logging
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	entry := logger.WithField("service", "docvault-api")

	entry.Info("Starting DocVault API Service")

	// 1. Config (.env first, then environment)
	if err := godotenv.Load(); err != nil {
		entry.Debug("No .env file found, using environment")
	}
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		entry.Fatalf("Invalid configuration: %v", err)
	}

	// 2. Stores
	st, err := store.Open(cfg.Storage.DataDir)
	if err != nil {
		entry.Fatalf("Failed to open document store: %v", err)
	}
	defer st.Close()

	files, err := storage.NewFileStorage(cfg.Storage.UploadDir)
	if err != nil {
		entry.Fatalf("Failed to initialize upload storage: %v", err)
	}

	// 3. Engine
	eng, err := engine.NewEngine(cfg, entry, st, files)
	if err != nil {
		entry.Fatalf("Failed to initialize engine: %v", err)
	}

	// 4. API Server
	server := api.NewServer(eng, entry)

	entry.Infof("DocVault API ready on %s", cfg.Server.Addr)
	if err := server.Start(cfg.Server.Addr); err != nil {
		entry.Fatal(err)
	}
}
