package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	apperrors "action-graph/backend/pkg/errors"
	"github.com/joho/godotenv"
)

// Sequence mining scopes
const (
	SuggestScopePersonal = "personal"
	SuggestScopeGlobal   = "global"
)

// Config holds all application configuration
type Config struct {
	// App
	Port string
	Env  string

	// Neo4j. Tracking is disabled unless all three connection values are set.
	Neo4jURI      string
	Neo4jUser     string
	Neo4jPassword string
	Neo4jDatabase string // empty selects the server default

	// Identity of the service whose tool calls get recorded
	MCPID   string
	MCPType string
	MCPName string

	// Fallback user for tool calls that carry no user identity
	DefaultUserID    string
	DefaultUserName  string
	DefaultUserEmail string
	DefaultUserTeam  string

	// Sequence prediction
	SuggestScope  string
	SuggestWindow time.Duration
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file, but don't fail if it doesn't exist
	_ = godotenv.Load()

	cfg := &Config{
		Port:             getEnv("PORT", "8080"),
		Env:              getEnv("ENV", "development"),
		Neo4jURI:         getEnv("NEO4J_URI", ""),
		Neo4jUser:        getEnv("NEO4J_USERNAME", getEnv("NEO4J_USER", "")),
		Neo4jPassword:    getEnv("NEO4J_PASSWORD", ""),
		Neo4jDatabase:    getEnv("NEO4J_DATABASE", ""),
		MCPID:            getEnv("TRACKING_MCP_ID", "mcp-action-graph"),
		MCPType:          getEnv("TRACKING_MCP_TYPE", "ActionGraph"),
		MCPName:          getEnv("TRACKING_MCP_NAME", "Action Graph MCP Server"),
		DefaultUserID:    getEnv("TRACKING_USER_ID", ""),
		DefaultUserName:  getEnv("TRACKING_USER_NAME", ""),
		DefaultUserEmail: getEnv("TRACKING_USER_EMAIL", ""),
		DefaultUserTeam:  getEnv("TRACKING_USER_TEAM", ""),
		SuggestScope:     getEnv("SUGGEST_SCOPE", SuggestScopePersonal),
		SuggestWindow:    getEnvDuration("SUGGEST_WINDOW", 30*time.Minute),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that configuration values are usable. Missing Neo4j
// settings are not an error; they only disable tracking.
func (c *Config) Validate() error {
	if c.Port == "" {
		return apperrors.NewConfigMissingRequired("PORT")
	}
	if _, err := strconv.Atoi(c.Port); err != nil {
		return invalid(fmt.Sprintf("PORT must be numeric, got %q", c.Port))
	}
	if c.SuggestScope != SuggestScopePersonal && c.SuggestScope != SuggestScopeGlobal {
		return invalid(fmt.Sprintf("SUGGEST_SCOPE must be %q or %q, got %q", SuggestScopePersonal, SuggestScopeGlobal, c.SuggestScope))
	}
	if c.SuggestWindow <= 0 {
		return invalid("SUGGEST_WINDOW must be positive")
	}
	if c.MCPID == "" {
		return apperrors.NewConfigMissingRequired("TRACKING_MCP_ID")
	}
	if c.MCPType == "" {
		return apperrors.NewConfigMissingRequired("TRACKING_MCP_TYPE")
	}
	return nil
}

func invalid(msg string) error {
	return apperrors.NewBaseError(apperrors.ErrorTypeConfig, msg, nil)
}

// TrackingEnabled reports whether all Neo4j connection values are present
func (c *Config) TrackingEnabled() bool {
	return c.Neo4jURI != "" && c.Neo4jUser != "" && c.Neo4jPassword != ""
}

// MissingTrackingKeys lists the unset Neo4j connection variables
func (c *Config) MissingTrackingKeys() []string {
	var missing []string
	if c.Neo4jURI == "" {
		missing = append(missing, "NEO4J_URI")
	}
	if c.Neo4jUser == "" {
		missing = append(missing, "NEO4J_USERNAME")
	}
	if c.Neo4jPassword == "" {
		missing = append(missing, "NEO4J_PASSWORD")
	}
	return missing
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		// bare numbers are minutes
		if m, err := strconv.Atoi(value); err == nil {
			return time.Duration(m) * time.Minute
		}
	}
	return defaultValue
}
