package graph

import (
	"context"
	"fmt"
	"time"

	apperrors "action-graph/backend/pkg/errors"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// ============================================================================
// Helper Functions
// ============================================================================

// queryFailed wraps a driver error. A failure caused by the caller's context
// ending is reported as a cancellation rather than a query fault.
func queryFailed(ctx context.Context, operation string, err error) error {
	if ctx.Err() != nil {
		return apperrors.NewContextCancelled(operation, err)
	}
	return apperrors.NewGraphQueryFailed(operation, err)
}

func getStringFromRecord(record *neo4j.Record, key string) string {
	val, ok := record.Get(key)
	if !ok || val == nil {
		return ""
	}
	if str, ok := val.(string); ok {
		return str
	}
	return ""
}

func getNodeFromRecord(record *neo4j.Record, key string) (neo4j.Node, error) {
	val, ok := record.Get(key)
	if !ok || val == nil {
		return neo4j.Node{}, fmt.Errorf("missing %q in record", key)
	}
	node, ok := val.(neo4j.Node)
	if !ok {
		return neo4j.Node{}, fmt.Errorf("%q is %T, not a node", key, val)
	}
	return node, nil
}

func getStringFromMap(m map[string]interface{}, key, defaultValue string) string {
	val, ok := m[key]
	if !ok || val == nil {
		return defaultValue
	}
	if str, ok := val.(string); ok {
		return str
	}
	return defaultValue
}

// getTimeFromMap accepts both stored ISO strings and native temporal values
func getTimeFromMap(m map[string]interface{}, key string) time.Time {
	switch v := m[key].(type) {
	case string:
		if t, err := ParseTimestamp(v); err == nil {
			return t
		}
	case time.Time:
		return v.UTC()
	}
	return time.Time{}
}

// nullable maps empty strings to nil so Cypher COALESCE keeps prior values
func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func actionFromNode(node neo4j.Node) (Action, error) {
	props := node.Props

	params, err := DecodeParams(getStringFromMap(props, "parameters", ""))
	if err != nil {
		return Action{}, fmt.Errorf("action %s: %w", getStringFromMap(props, "id", "?"), err)
	}
	result, err := DecodeResult(getStringFromMap(props, "result", ""))
	if err != nil {
		return Action{}, fmt.Errorf("action %s: %w", getStringFromMap(props, "id", "?"), err)
	}

	return Action{
		ID:         getStringFromMap(props, "id", ""),
		Type:       getStringFromMap(props, "type", ""),
		Name:       getStringFromMap(props, "name", ""),
		Parameters: params,
		Result:     result,
		Status:     Status(getStringFromMap(props, "status", "")),
		Timestamp:  getTimeFromMap(props, "timestamp"),
	}, nil
}

func mcpFromNode(node neo4j.Node) MCP {
	props := node.Props
	return MCP{
		ID:        getStringFromMap(props, "id", ""),
		Type:      getStringFromMap(props, "type", ""),
		Name:      getStringFromMap(props, "name", ""),
		CreatedAt: getTimeFromMap(props, "createdAt"),
	}
}

func userFromNode(node neo4j.Node) User {
	props := node.Props
	return User{
		ID:        getStringFromMap(props, "id", ""),
		Name:      getStringFromMap(props, "name", ""),
		Email:     getStringFromMap(props, "email", ""),
		Team:      getStringFromMap(props, "team", ""),
		CreatedAt: getTimeFromMap(props, "createdAt"),
	}
}

func actionWithMCPFromRecord(record *neo4j.Record, actionKey, mcpKey string) (ActionWithMCP, error) {
	actionNode, err := getNodeFromRecord(record, actionKey)
	if err != nil {
		return ActionWithMCP{}, err
	}
	mcpNode, err := getNodeFromRecord(record, mcpKey)
	if err != nil {
		return ActionWithMCP{}, err
	}
	action, err := actionFromNode(actionNode)
	if err != nil {
		return ActionWithMCP{}, err
	}
	return ActionWithMCP{Action: action, MCP: mcpFromNode(mcpNode)}, nil
}
