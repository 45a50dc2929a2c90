package tools

import (
	"context"

	"action-graph/backend/internal/tracker"
	apperrors "action-graph/backend/pkg/errors"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

type tool interface {
	Definition() mcp.Tool
	Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error)
}

// Register adds the action graph tools to s. With a nil tracker the tools are
// still listed but every call reports that tracking is disabled.
func Register(s *server.MCPServer, t *tracker.Tracker) {
	all := []tool{
		NewRecordActionTool(t),
		NewSimilarActionsTool(t),
		NewUserHistoryTool(t),
		NewSuggestNextActionTool(t),
		NewFindUserByEmailTool(t),
		NewRecommendationsTool(t),
	}

	for _, tl := range all {
		def := tl.Definition()
		if t == nil {
			s.AddTool(def, disabledHandler(def.Name))
			continue
		}
		s.AddTool(def, tl.Handle)
	}
}

func disabledHandler(name string) server.ToolHandlerFunc {
	return func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return failureResult(name, apperrors.ErrTrackingDisabled)
	}
}
