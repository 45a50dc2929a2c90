package tools

import (
	"context"

	"action-graph/backend/internal/tracker"
	"github.com/mark3labs/mcp-go/mcp"
)

// SuggestNextActionTool handles the suggest_next_action MCP tool.
type SuggestNextActionTool struct {
	tracker *tracker.Tracker
}

// NewSuggestNextActionTool creates a SuggestNextActionTool.
func NewSuggestNextActionTool(t *tracker.Tracker) *SuggestNextActionTool {
	return &SuggestNextActionTool{tracker: t}
}

// Definition returns the MCP tool definition for suggest_next_action.
func (t *SuggestNextActionTool) Definition() mcp.Tool {
	return mcp.NewTool(ToolSuggestNextAction,
		mcp.WithDescription("Suggests the next action based on what usually follows the current one."),
		mcp.WithString("userId",
			mcp.Required(),
			mcp.Description("ID of the user"),
		),
		mcp.WithString("mcpType",
			mcp.Required(),
			mcp.Description("Type of MCP (Mattermost, DynamoDB, Jira, etc.)"),
		),
		mcp.WithString("currentActionType",
			mcp.Required(),
			mcp.Description("Type of the current action"),
		),
		mcp.WithObject("currentParameters",
			mcp.Description("Parameters of the current action"),
		),
	)
}

// Handle processes the suggest_next_action tool call.
func (t *SuggestNextActionTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	suggestions, err := t.tracker.SuggestNextAction(ctx, tracker.SuggestionQuery{
		UserID:            req.GetString("userId", ""),
		MCPType:           req.GetString("mcpType", ""),
		CurrentActionType: req.GetString("currentActionType", ""),
		CurrentParameters: paramsArg(req, "currentParameters"),
	})
	if err != nil {
		return failureResult(ToolSuggestNextAction, err)
	}
	return successResult(suggestions)
}
