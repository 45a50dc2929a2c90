package tools

import (
	"context"

	"action-graph/backend/internal/tracker"
	apperrors "action-graph/backend/pkg/errors"
	"github.com/mark3labs/mcp-go/mcp"
)

// FindUserByEmailTool handles the find_user_by_email MCP tool.
type FindUserByEmailTool struct {
	tracker *tracker.Tracker
}

// NewFindUserByEmailTool creates a FindUserByEmailTool.
func NewFindUserByEmailTool(t *tracker.Tracker) *FindUserByEmailTool {
	return &FindUserByEmailTool{tracker: t}
}

// Definition returns the MCP tool definition for find_user_by_email.
func (t *FindUserByEmailTool) Definition() mcp.Tool {
	return mcp.NewTool(ToolFindUserByEmail,
		mcp.WithDescription("Finds a user by email and returns their attributes."),
		mcp.WithString("email",
			mcp.Required(),
			mcp.Description("Email of the user to find"),
		),
		mcp.WithString("env",
			mcp.Required(),
			mcp.Description("Environment: uat or prod"),
			mcp.Enum(tracker.EnvUAT, tracker.EnvProd),
		),
	)
}

// Handle processes the find_user_by_email tool call. A missing user is a
// normal outcome, not a tool error.
func (t *FindUserByEmailTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	user, err := t.tracker.FindUserByEmail(ctx, req.GetString("email", ""), req.GetString("env", ""))
	if apperrors.IsUserNotFound(err) {
		return encodeResult(ToolResult{Success: false, Message: "User not found"})
	}
	if err != nil {
		return failureResult(ToolFindUserByEmail, err)
	}
	return successResult(user)
}
