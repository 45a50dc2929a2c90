package graph

import (
	"context"
	"sort"

	apperrors "action-graph/backend/pkg/errors"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"
)

// FullTextIndexName is the full-text index over Action name and type
const FullTextIndexName = "actionContext"

// schemaStatements are applied in order. All of them are idempotent.
var schemaStatements = []struct {
	name  string
	query string
}{
	{"user_id_unique", `CREATE CONSTRAINT user_id_unique IF NOT EXISTS FOR (user:User) REQUIRE user.id IS UNIQUE`},
	{"action_id_unique", `CREATE CONSTRAINT action_id_unique IF NOT EXISTS FOR (action:Action) REQUIRE action.id IS UNIQUE`},
	{"mcp_id_unique", `CREATE CONSTRAINT mcp_id_unique IF NOT EXISTS FOR (mcp:MCP) REQUIRE mcp.id IS UNIQUE`},
	{"user_email", `CREATE INDEX user_email IF NOT EXISTS FOR (user:User) ON (user.email)`},
	{"user_team", `CREATE INDEX user_team IF NOT EXISTS FOR (user:User) ON (user.team)`},
	{"action_type", `CREATE INDEX action_type IF NOT EXISTS FOR (action:Action) ON (action.type)`},
	{"action_name", `CREATE INDEX action_name IF NOT EXISTS FOR (action:Action) ON (action.name)`},
	{"action_timestamp", `CREATE INDEX action_timestamp IF NOT EXISTS FOR (action:Action) ON (action.timestamp)`},
	{"action_mcp_type", `CREATE INDEX action_mcp_type IF NOT EXISTS FOR (action:Action) ON (action.mcpType)`},
}

const fullTextStatement = `
	CREATE FULLTEXT INDEX actionContext IF NOT EXISTS
	FOR (a:Action) ON EACH [a.name, a.type]
`

// EnsureSchema declares constraints and indexes inside one session.
// Re-running it against an initialized store is a no-op. A full-text index
// failure is logged and ignored.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	session := r.session(ctx, neo4j.AccessModeWrite)
	defer session.Close(ctx)

	for _, stmt := range schemaStatements {
		if err := runAndConsume(ctx, session, stmt.query); err != nil {
			return apperrors.NewGraphSchemaFailed(stmt.name, err)
		}
		r.logger.Debug("Schema statement applied", zap.String("name", stmt.name))
	}

	if err := runAndConsume(ctx, session, fullTextStatement); err != nil {
		r.logger.Warn("Full-text index not created, it may already exist with another definition",
			zap.String("index", FullTextIndexName),
			zap.Error(err),
		)
	}

	return nil
}

// runAndConsume executes an auto-commit statement and waits for the server
// to acknowledge it, so errors are not deferred to the next statement
func runAndConsume(ctx context.Context, session neo4j.SessionWithContext, query string) error {
	result, err := session.Run(ctx, query, nil)
	if err != nil {
		return err
	}
	_, err = result.Consume(ctx)
	return err
}

// ExpectedSchemaObjects lists the constraint and index names EnsureSchema
// declares, full-text index included
func ExpectedSchemaObjects() []string {
	names := make([]string, 0, len(schemaStatements)+1)
	for _, stmt := range schemaStatements {
		names = append(names, stmt.name)
	}
	names = append(names, FullTextIndexName)
	sort.Strings(names)
	return names
}

// SchemaObjects returns the names of the constraints and indexes present in
// the database
func (r *Repository) SchemaObjects(ctx context.Context) ([]string, error) {
	session := r.session(ctx, neo4j.AccessModeRead)
	defer session.Close(ctx)

	var names []string
	for _, query := range []string{
		"SHOW CONSTRAINTS YIELD name RETURN name",
		"SHOW INDEXES YIELD name RETURN name",
	} {
		result, err := session.Run(ctx, query, nil)
		if err != nil {
			return nil, queryFailed(ctx, "schema_objects", err)
		}
		records, err := result.Collect(ctx)
		if err != nil {
			return nil, queryFailed(ctx, "schema_objects", err)
		}
		for _, record := range records {
			if name := getStringFromRecord(record, "name"); name != "" {
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)
	return names, nil
}
