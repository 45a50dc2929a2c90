// Action graph MCP server.
//
// Serves the action graph tools over stdio. Clients report their own tool
// invocations with record_action; tools registered on the same server by an
// embedding program are recorded automatically after they run. Without Neo4j
// configuration the tools are listed but every call reports that tracking is
// disabled.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"action-graph/backend/internal/graph"
	"action-graph/backend/internal/tools"
	"action-graph/backend/internal/tracker"
	"action-graph/backend/pkg/config"
	"action-graph/backend/pkg/logger"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Env); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	if err := run(cfg); err != nil {
		logger.Get().Error("MCP server exited with error", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	log := logger.Get()

	var t *tracker.Tracker
	if cfg.TrackingEnabled() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		repo, err := graph.Connect(ctx, graph.Config{
			URI:      cfg.Neo4jURI,
			Username: cfg.Neo4jUser,
			Password: cfg.Neo4jPassword,
			Database: cfg.Neo4jDatabase,
		})
		cancel()
		if err != nil {
			log.Warn("Failed to connect to Neo4j. Action tracking will be disabled.", zap.Error(err))
		} else {
			defer repo.Close(context.Background())
			t = tracker.New(repo, tracker.Options{
				SessionWindow:   cfg.SuggestWindow,
				GlobalSequences: cfg.SuggestScope == config.SuggestScopeGlobal,
			})
			log.Info("Neo4j Action Tracker connected")
		}
	} else {
		log.Info("Neo4j configuration not found. Action tracking will be disabled.",
			zap.Strings("missing", cfg.MissingTrackingKeys()),
		)
	}

	return server.ServeStdio(newServer(cfg, t))
}

// newServer builds the MCP server. A nil tracker yields tools that report
// tracking as disabled and no recording middleware.
func newServer(cfg *config.Config, t *tracker.Tracker) *server.MCPServer {
	opts := []server.ServerOption{
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	}
	if t != nil {
		rec := tools.NewRecorder(t, identityFromConfig(cfg))
		opts = append(opts, server.WithToolHandlerMiddleware(rec.Middleware))
	}

	s := server.NewMCPServer("action-graph", Version, opts...)
	tools.Register(s, t)
	return s
}

func identityFromConfig(cfg *config.Config) tools.Identity {
	return tools.Identity{
		MCPID:     cfg.MCPID,
		MCPType:   cfg.MCPType,
		MCPName:   cfg.MCPName,
		UserID:    cfg.DefaultUserID,
		UserName:  cfg.DefaultUserName,
		UserEmail: cfg.DefaultUserEmail,
		UserTeam:  cfg.DefaultUserTeam,
	}
}
