package graph

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// ============================================================================
// Search Operations
// ============================================================================

// SearchActions returns actions whose name or type contains text
// (case-insensitive), newest first. A limit of zero returns every match.
func (r *Repository) SearchActions(ctx context.Context, text string, limit int) ([]ActionWithMCP, error) {
	session := r.session(ctx, neo4j.AccessModeRead)
	defer session.Close(ctx)

	query := `
		MATCH (:User)-[:PERFORMED]->(action:Action)-[:USED]->(mcp:MCP)
		WHERE toLower(action.name) CONTAINS toLower($text)
		   OR toLower(action.type) CONTAINS toLower($text)
		RETURN action, mcp
		ORDER BY action.timestamp DESC
	`
	params := map[string]interface{}{"text": text}
	if limit > 0 {
		query += "LIMIT $limit"
		params["limit"] = int64(limit)
	}

	result, err := session.Run(ctx, query, params)
	if err != nil {
		return nil, queryFailed(ctx, "search_actions", err)
	}

	actions, err := r.collectActions(ctx, result)
	if err != nil {
		return nil, queryFailed(ctx, "search_actions", err)
	}
	return actions, nil
}
