package tools

import (
	"context"

	"action-graph/backend/internal/tracker"
	"github.com/mark3labs/mcp-go/mcp"
)

// UserHistoryTool handles the get_user_history MCP tool.
type UserHistoryTool struct {
	tracker *tracker.Tracker
}

// NewUserHistoryTool creates a UserHistoryTool.
func NewUserHistoryTool(t *tracker.Tracker) *UserHistoryTool {
	return &UserHistoryTool{tracker: t}
}

// Definition returns the MCP tool definition for get_user_history.
func (t *UserHistoryTool) Definition() mcp.Tool {
	return mcp.NewTool(ToolGetUserHistory,
		mcp.WithDescription("Gets a user's action history, most recent first."),
		mcp.WithString("userId",
			mcp.Required(),
			mcp.Description("ID of the user"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of actions to return (default: 20)"),
		),
	)
}

// Handle processes the get_user_history tool call.
func (t *UserHistoryTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	history, err := t.tracker.GetUserActionHistory(ctx,
		req.GetString("userId", ""),
		intArg(req, "limit", tracker.DefaultHistoryLimit),
	)
	if err != nil {
		return failureResult(ToolGetUserHistory, err)
	}
	return successResult(history)
}
