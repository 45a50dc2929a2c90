// Package tools exposes the action graph over MCP.
//
// Each tool follows the same pattern:
// - A struct with the tracker injected via constructor
// - Definition() returns the mcp.Tool schema
// - Handle() processes the request and returns a JSON ToolResult
//
// Recorder wraps the handlers of every other tool on the same server so that
// their invocations land in the graph.
package tools

import (
	"encoding/json"
	"fmt"

	"action-graph/backend/internal/graph"
	apperrors "action-graph/backend/pkg/errors"
	"github.com/mark3labs/mcp-go/mcp"
)

// Tool names - Action Graph Tools
const (
	ToolRecordAction             = "record_action"
	ToolGetSimilarActions        = "get_similar_actions"
	ToolGetUserHistory           = "get_user_history"
	ToolSuggestNextAction        = "suggest_next_action"
	ToolFindUserByEmail          = "find_user_by_email"
	ToolGetActionRecommendations = "get_action_recommendations"
)

var trackerTools = map[string]struct{}{
	ToolRecordAction:             {},
	ToolGetSimilarActions:        {},
	ToolGetUserHistory:           {},
	ToolSuggestNextAction:        {},
	ToolFindUserByEmail:          {},
	ToolGetActionRecommendations: {},
}

// IsTrackerTool reports whether name is one of the tools in this package.
// The middleware never records their invocations.
func IsTrackerTool(name string) bool {
	_, ok := trackerTools[name]
	return ok
}

// ToolResult represents the result of a tool execution
type ToolResult struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

func successResult(data interface{}) (*mcp.CallToolResult, error) {
	return encodeResult(ToolResult{Success: true, Data: data})
}

func failureResult(tool string, err error) (*mcp.CallToolResult, error) {
	wrapped := apperrors.NewToolExecutionFailed(tool, err.Error(), err)
	res, encErr := encodeResult(ToolResult{Success: false, Error: wrapped.Error()})
	if res != nil {
		res.IsError = true
	}
	return res, encErr
}

func encodeResult(res ToolResult) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(res)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}

// intArg extracts an integer argument from a tool request, returning
// defaultVal if the key is missing or not a number (JSON numbers are float64).
func intArg(req mcp.CallToolRequest, key string, defaultVal int) int {
	switch v := req.GetArguments()[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return defaultVal
}

// paramsArg extracts an object argument as action parameters
func paramsArg(req mcp.CallToolRequest, key string) graph.Params {
	switch v := req.GetArguments()[key].(type) {
	case map[string]interface{}:
		return graph.Params(v)
	case graph.Params:
		return v
	}
	return graph.Params{}
}
