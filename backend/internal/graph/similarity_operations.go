package graph

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// ============================================================================
// Similarity Candidates
// ============================================================================

// CandidateActions returns actions of actionType performed against services
// of mcpType, most recent first. When keys is non-empty, actions that share
// none of those parameter keys are filtered out in the store; scoring is left
// to the caller.
func (r *Repository) CandidateActions(ctx context.Context, mcpType, actionType string, keys []string) ([]ActionWithMCP, error) {
	session := r.session(ctx, neo4j.AccessModeRead)
	defer session.Close(ctx)

	// parameterKeys is absent on actions written before it was introduced;
	// those are kept and scored from the decoded parameters.
	query := `
		MATCH (action:Action)-[:USED]->(mcp:MCP)
		WHERE mcp.type = $mcpType AND action.type = $actionType
		  AND (size($keys) = 0
		       OR action.parameterKeys IS NULL
		       OR any(key IN action.parameterKeys WHERE key IN $keys))
		RETURN action, mcp
		ORDER BY action.timestamp DESC
	`

	if keys == nil {
		keys = []string{}
	}

	result, err := session.Run(ctx, query, map[string]interface{}{
		"mcpType":    mcpType,
		"actionType": actionType,
		"keys":       keys,
	})
	if err != nil {
		return nil, queryFailed(ctx, "candidate_actions", err)
	}

	actions, err := r.collectActions(ctx, result)
	if err != nil {
		return nil, queryFailed(ctx, "candidate_actions", err)
	}
	return actions, nil
}
