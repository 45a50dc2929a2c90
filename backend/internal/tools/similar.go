package tools

import (
	"context"

	"action-graph/backend/internal/tracker"
	"github.com/mark3labs/mcp-go/mcp"
)

// SimilarActionsTool handles the get_similar_actions MCP tool.
type SimilarActionsTool struct {
	tracker *tracker.Tracker
}

// NewSimilarActionsTool creates a SimilarActionsTool.
func NewSimilarActionsTool(t *tracker.Tracker) *SimilarActionsTool {
	return &SimilarActionsTool{tracker: t}
}

// Definition returns the MCP tool definition for get_similar_actions.
func (t *SimilarActionsTool) Definition() mcp.Tool {
	return mcp.NewTool(ToolGetSimilarActions,
		mcp.WithDescription("Finds previously recorded actions similar to the current one, scored by shared parameter names."),
		mcp.WithString("mcpType",
			mcp.Required(),
			mcp.Description("Type of MCP (Mattermost, DynamoDB, Jira, etc.)"),
		),
		mcp.WithString("actionType",
			mcp.Required(),
			mcp.Description("Type of action being performed"),
		),
		mcp.WithObject("parameters",
			mcp.Description("Parameters of the action"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of similar actions to return (default: 5)"),
		),
	)
}

// Handle processes the get_similar_actions tool call.
func (t *SimilarActionsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	similar, err := t.tracker.FindSimilarActions(ctx, tracker.SimilarityQuery{
		MCPType:    req.GetString("mcpType", ""),
		ActionType: req.GetString("actionType", ""),
		Parameters: paramsArg(req, "parameters"),
		Limit:      intArg(req, "limit", tracker.DefaultSimilarLimit),
	})
	if err != nil {
		return failureResult(ToolGetSimilarActions, err)
	}
	return successResult(similar)
}
