package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"action-graph/backend/internal/graph"
	"action-graph/backend/pkg/config"
	"action-graph/backend/pkg/logger"
	"go.uber.org/zap"
)

func main() {
	timeout := flag.Duration("timeout", 60*time.Second, "Overall timeout for connecting and applying the schema")
	verify := flag.Bool("verify", true, "List schema objects afterwards and report any that are missing")
	flag.Parse()

	// Initialize logger
	if err := logger.Init("development"); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	log := logger.Get()
	log.Info("Initializing Neo4j schema...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	if !cfg.TrackingEnabled() {
		log.Error("Missing Neo4j configuration", zap.Strings("missing", cfg.MissingTrackingKeys()))
		logger.Sync()
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	// Connect applies the schema
	repo, err := graph.Connect(ctx, graph.Config{
		URI:      cfg.Neo4jURI,
		Username: cfg.Neo4jUser,
		Password: cfg.Neo4jPassword,
		Database: cfg.Neo4jDatabase,
	})
	if err != nil {
		log.Fatal("Failed to initialize Neo4j schema", zap.Error(err))
	}
	defer repo.Close(context.Background())

	log.Info("Neo4j schema initialized successfully!")

	if !*verify {
		return
	}

	present, err := repo.SchemaObjects(ctx)
	if err != nil {
		log.Fatal("Failed to list schema objects", zap.Error(err))
	}

	existing := make(map[string]bool, len(present))
	for _, name := range present {
		existing[name] = true
	}

	var missing []string
	for _, name := range graph.ExpectedSchemaObjects() {
		if !existing[name] {
			missing = append(missing, name)
		}
	}

	if len(missing) > 0 {
		// the full-text index may exist under another definition
		log.Warn("Some schema objects are missing", zap.Strings("missing", missing))
		return
	}
	log.Info("All schema objects present", zap.Int("count", len(present)))
}
