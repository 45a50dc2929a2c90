package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"
)

// ============================================================================
// Action Recording
// ============================================================================

const recordActionQuery = `
	MERGE (user:User {id: $userId})
	ON CREATE SET user.name = $userName,
	              user.email = $userEmail,
	              user.team = $userTeam,
	              user.createdAt = $timestamp
	ON MATCH SET user.name = COALESCE($userName, user.name),
	             user.email = COALESCE($userEmail, user.email),
	             user.team = COALESCE($userTeam, user.team)

	MERGE (mcp:MCP {id: $mcpId})
	ON CREATE SET mcp.type = $mcpType,
	              mcp.name = $mcpName,
	              mcp.createdAt = $timestamp

	CREATE (action:Action {
		id: $actionId,
		type: $actionType,
		name: $actionName,
		parameters: $parametersJson,
		parameterKeys: $parameterKeys,
		result: $resultJson,
		status: $status,
		timestamp: $timestamp,
		mcpType: mcp.type
	})

	CREATE (user)-[:PERFORMED]->(action)
	CREATE (action)-[:USED]->(mcp)

	RETURN action.id AS actionId
`

// RecordAction upserts the user and MCP and creates the action with both
// edges in a single write transaction
func (r *Repository) RecordAction(ctx context.Context, rec ActionRecord) error {
	session := r.session(ctx, neo4j.AccessModeWrite)
	defer session.Close(ctx)

	keys := rec.ParameterKeys
	if keys == nil {
		keys = []string{}
	}

	params := map[string]interface{}{
		"userId":         rec.UserID,
		"userName":       nullable(rec.UserName),
		"userEmail":      nullable(rec.UserEmail),
		"userTeam":       nullable(rec.UserTeam),
		"mcpId":          rec.MCPID,
		"mcpType":        rec.MCPType,
		"mcpName":        rec.MCPName,
		"actionId":       rec.ActionID,
		"actionType":     rec.ActionType,
		"actionName":     rec.ActionName,
		"parametersJson": rec.ParametersJSON,
		"parameterKeys":  keys,
		"resultJson":     rec.ResultJSON,
		"status":         string(rec.Status),
		"timestamp":      FormatTimestamp(rec.Timestamp),
	}

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (interface{}, error) {
		result, err := tx.Run(ctx, recordActionQuery, params)
		if err != nil {
			return nil, err
		}
		record, err := result.Single(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to verify action creation: %w", err)
		}
		return getStringFromRecord(record, "actionId"), nil
	})
	if err != nil {
		return queryFailed(ctx, "record_action", err)
	}

	r.logger.Debug("Action recorded",
		zap.String("action_id", rec.ActionID),
		zap.String("user_id", rec.UserID),
		zap.String("mcp_id", rec.MCPID),
		zap.String("action_type", rec.ActionType),
	)
	return nil
}
