package graph

import (
	"context"

	apperrors "action-graph/backend/pkg/errors"
	"action-graph/backend/pkg/logger"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"
)

// Config holds Neo4j connection settings
type Config struct {
	URI      string
	Username string
	Password string
	Database string
}

// Repository handles all Neo4j operations for the action graph. It owns the
// driver's connection pool; every operation opens and closes its own session.
type Repository struct {
	driver   neo4j.DriverWithContext
	database string
	logger   *zap.Logger
}

// NewRepository wraps an existing driver
func NewRepository(driver neo4j.DriverWithContext, database string) *Repository {
	return &Repository{
		driver:   driver,
		database: database,
		logger:   logger.Named("graph"),
	}
}

// Connect creates a driver, verifies the endpoint accepts our credentials and
// initializes the schema. Failures are returned to the caller and are not
// retried.
func Connect(ctx context.Context, cfg Config) (*Repository, error) {
	driver, err := neo4j.NewDriverWithContext(
		cfg.URI,
		neo4j.BasicAuth(cfg.Username, cfg.Password, ""),
	)
	if err != nil {
		return nil, apperrors.NewGraphConnectionFailed(cfg.URI, err)
	}

	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, apperrors.NewGraphConnectionFailed(cfg.URI, err)
	}

	repo := NewRepository(driver, cfg.Database)
	repo.logger.Info("Connected to Neo4j", zap.String("uri", cfg.URI))

	if err := repo.EnsureSchema(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, err
	}

	return repo, nil
}

// Close releases the driver's pooled connections
func (r *Repository) Close(ctx context.Context) error {
	return r.driver.Close(ctx)
}

func (r *Repository) session(ctx context.Context, mode neo4j.AccessMode) neo4j.SessionWithContext {
	return r.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   mode,
		DatabaseName: r.database,
	})
}

// collectActions reads (action, mcp) rows, skipping rows whose stored
// payloads cannot be decoded
func (r *Repository) collectActions(ctx context.Context, result neo4j.ResultWithContext) ([]ActionWithMCP, error) {
	actions := []ActionWithMCP{}
	for result.Next(ctx) {
		record := result.Record()
		item, err := actionWithMCPFromRecord(record, "action", "mcp")
		if err != nil {
			r.logger.Warn("Skipping malformed action", zap.Error(err))
			continue
		}
		actions = append(actions, item)
	}
	if err := result.Err(); err != nil {
		return nil, err
	}
	return actions, nil
}
