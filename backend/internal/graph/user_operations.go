package graph

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// ============================================================================
// User Operations
// ============================================================================

// UserActions returns the actions performed by userID with their MCPs,
// newest first, capped at limit. An unknown user yields an empty slice.
func (r *Repository) UserActions(ctx context.Context, userID string, limit int) ([]ActionWithMCP, error) {
	session := r.session(ctx, neo4j.AccessModeRead)
	defer session.Close(ctx)

	query := `
		MATCH (user:User {id: $userId})-[:PERFORMED]->(action:Action)-[:USED]->(mcp:MCP)
		RETURN action, mcp
		ORDER BY action.timestamp DESC
		LIMIT $limit
	`

	result, err := session.Run(ctx, query, map[string]interface{}{
		"userId": userID,
		"limit":  int64(limit),
	})
	if err != nil {
		return nil, queryFailed(ctx, "user_actions", err)
	}

	actions, err := r.collectActions(ctx, result)
	if err != nil {
		return nil, queryFailed(ctx, "user_actions", err)
	}
	return actions, nil
}

// FindUserByEmail looks up a user by exact email. The boolean is false when
// no user matches.
func (r *Repository) FindUserByEmail(ctx context.Context, email string) (*User, bool, error) {
	session := r.session(ctx, neo4j.AccessModeRead)
	defer session.Close(ctx)

	query := `
		MATCH (user:User {email: $email})
		RETURN user
		LIMIT 1
	`

	result, err := session.Run(ctx, query, map[string]interface{}{
		"email": email,
	})
	if err != nil {
		return nil, false, queryFailed(ctx, "find_user_by_email", err)
	}

	if !result.Next(ctx) {
		if err := result.Err(); err != nil {
			return nil, false, queryFailed(ctx, "find_user_by_email", err)
		}
		return nil, false, nil
	}

	node, err := getNodeFromRecord(result.Record(), "user")
	if err != nil {
		return nil, false, queryFailed(ctx, "find_user_by_email", err)
	}
	user := userFromNode(node)
	return &user, true, nil
}
