package tools

import (
	"context"

	"action-graph/backend/internal/tracker"
	"github.com/mark3labs/mcp-go/mcp"
)

// RecommendationsTool handles the get_action_recommendations MCP tool.
type RecommendationsTool struct {
	tracker *tracker.Tracker
}

// NewRecommendationsTool creates a RecommendationsTool.
func NewRecommendationsTool(t *tracker.Tracker) *RecommendationsTool {
	return &RecommendationsTool{tracker: t}
}

// Definition returns the MCP tool definition for get_action_recommendations.
func (t *RecommendationsTool) Definition() mcp.Tool {
	return mcp.NewTool(ToolGetActionRecommendations,
		mcp.WithDescription("Recommends the actions most often performed in a context, matched against action names and types."),
		mcp.WithString("context",
			mcp.Required(),
			mcp.Description("Free text describing what the user is working on"),
		),
	)
}

// Handle processes the get_action_recommendations tool call.
func (t *RecommendationsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	recs, err := t.tracker.GetActionRecommendations(ctx, req.GetString("context", ""))
	if err != nil {
		return failureResult(ToolGetActionRecommendations, err)
	}
	return successResult(recs)
}
