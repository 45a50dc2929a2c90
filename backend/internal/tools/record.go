package tools

import (
	"context"

	"action-graph/backend/internal/graph"
	"action-graph/backend/internal/tracker"
	"github.com/mark3labs/mcp-go/mcp"
)

// RecordActionTool handles the record_action MCP tool. It lets a client that
// runs its own tools report their invocations to the graph.
type RecordActionTool struct {
	tracker *tracker.Tracker
}

// NewRecordActionTool creates a RecordActionTool.
func NewRecordActionTool(t *tracker.Tracker) *RecordActionTool {
	return &RecordActionTool{tracker: t}
}

// Definition returns the MCP tool definition for record_action.
func (t *RecordActionTool) Definition() mcp.Tool {
	return mcp.NewTool(ToolRecordAction,
		mcp.WithDescription("Records a tool invocation performed by a user through an MCP service."),
		mcp.WithString("userId",
			mcp.Required(),
			mcp.Description("ID of the user who performed the action"),
		),
		mcp.WithString("userName", mcp.Description("Display name of the user")),
		mcp.WithString("userEmail", mcp.Description("Email of the user")),
		mcp.WithString("userTeam", mcp.Description("Team of the user")),
		mcp.WithString("mcpId",
			mcp.Required(),
			mcp.Description("ID of the MCP service instance"),
		),
		mcp.WithString("mcpType",
			mcp.Required(),
			mcp.Description("Type of the MCP service (e.g., discord)"),
		),
		mcp.WithString("mcpName", mcp.Description("Display name of the MCP service")),
		mcp.WithString("actionType",
			mcp.Required(),
			mcp.Description("Type of action performed (e.g., post_creation)"),
		),
		mcp.WithString("actionName", mcp.Description("Name of the action (default: actionType)")),
		mcp.WithObject("parameters", mcp.Description("Parameters the action was called with")),
		mcp.WithObject("result", mcp.Description("Result the action produced")),
		mcp.WithString("status",
			mcp.Description("Outcome of the action (default: success)"),
			mcp.Enum(string(graph.StatusSuccess), string(graph.StatusFailure)),
		),
	)
}

// Handle processes the record_action tool call.
func (t *RecordActionTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	actionType := req.GetString("actionType", "")

	res := t.tracker.RecordAction(ctx, tracker.RecordActionRequest{
		UserID:     req.GetString("userId", ""),
		UserName:   req.GetString("userName", ""),
		UserEmail:  req.GetString("userEmail", ""),
		UserTeam:   req.GetString("userTeam", ""),
		MCPID:      req.GetString("mcpId", ""),
		MCPType:    req.GetString("mcpType", ""),
		MCPName:    req.GetString("mcpName", ""),
		ActionType: actionType,
		ActionName: req.GetString("actionName", actionType),
		Parameters: paramsArg(req, "parameters"),
		Result:     req.GetArguments()["result"],
		Status:     graph.Status(req.GetString("status", string(graph.StatusSuccess))),
	})
	if !res.Success {
		out, err := encodeResult(ToolResult{Success: false, Error: res.Message})
		if out != nil {
			out.IsError = true
		}
		return out, err
	}
	return successResult(res)
}
