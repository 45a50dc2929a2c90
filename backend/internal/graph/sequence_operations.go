package graph

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"
)

// ============================================================================
// Sequence Operations
// ============================================================================

const personalReferenceMatch = `
	MATCH (user:User {id: $userId})-[:PERFORMED]->(current:Action {type: $actionType})-[:USED]->(mcp:MCP {type: $mcpType})
`

const globalReferenceMatch = `
	MATCH (user:User)-[:PERFORMED]->(current:Action {type: $actionType})-[:USED]->(mcp:MCP {type: $mcpType})
`

const transitionsTail = `
	MATCH (user)-[:PERFORMED]->(next:Action)-[:USED]->(mcp)
	WHERE next.timestamp > current.timestamp
	  AND datetime(next.timestamp) < datetime(current.timestamp) + duration({seconds: $windowSeconds})
	RETURN user.id AS userId, current, next, mcp
`

// ActionTransitions returns pairs where a user performed a reference action
// (q.ActionType against an MCP of q.MCPType) and then another action against
// the same MCP instance within q.Window
func (r *Repository) ActionTransitions(ctx context.Context, q TransitionQuery) ([]Transition, error) {
	session := r.session(ctx, neo4j.AccessModeRead)
	defer session.Close(ctx)

	query := personalReferenceMatch + transitionsTail
	if q.Global {
		query = globalReferenceMatch + transitionsTail
	}

	result, err := session.Run(ctx, query, map[string]interface{}{
		"userId":        q.UserID,
		"actionType":    q.ActionType,
		"mcpType":       q.MCPType,
		"windowSeconds": int64(q.Window.Seconds()),
	})
	if err != nil {
		return nil, queryFailed(ctx, "action_transitions", err)
	}

	transitions := []Transition{}
	for result.Next(ctx) {
		record := result.Record()

		from, err := actionWithMCPFromRecord(record, "current", "mcp")
		if err != nil {
			r.logger.Warn("Skipping malformed transition", zap.Error(err))
			continue
		}
		toNode, err := getNodeFromRecord(record, "next")
		if err != nil {
			r.logger.Warn("Skipping malformed transition", zap.Error(err))
			continue
		}
		to, err := actionFromNode(toNode)
		if err != nil {
			r.logger.Warn("Skipping malformed transition", zap.Error(err))
			continue
		}

		transitions = append(transitions, Transition{
			UserID: getStringFromRecord(record, "userId"),
			From:   from.Action,
			To:     to,
			MCP:    from.MCP,
		})
	}
	if err := result.Err(); err != nil {
		return nil, queryFailed(ctx, "action_transitions", err)
	}

	return transitions, nil
}
