package tools

import (
	"context"
	"encoding/json"
	"time"

	"action-graph/backend/internal/graph"
	"action-graph/backend/internal/tracker"
	"action-graph/backend/pkg/logger"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
)

const recordTimeout = 5 * time.Second

// Identity is attached to every recorded invocation. The user fields are the
// fallback when a call carries no userId argument.
type Identity struct {
	MCPID   string
	MCPType string
	MCPName string

	UserID    string
	UserName  string
	UserEmail string
	UserTeam  string
}

// Recorder records tool invocations after their handler returns
type Recorder struct {
	tracker  *tracker.Tracker
	identity Identity
	logger   *zap.Logger
}

// NewRecorder creates a Recorder
func NewRecorder(t *tracker.Tracker, identity Identity) *Recorder {
	return &Recorder{
		tracker:  t,
		identity: identity,
		logger:   logger.Named("recorder"),
	}
}

// Middleware records every tool call outside this package, successful or not. The
// handler's result is returned unchanged; recording failures are only logged.
func (r *Recorder) Middleware(next server.ToolHandlerFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		res, err := next(ctx, req)
		if IsTrackerTool(req.Params.Name) {
			return res, err
		}

		recordCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), recordTimeout)
		defer cancel()

		out := r.tracker.RecordAction(recordCtx, r.request(req, res, err))
		if !out.Success {
			r.logger.Warn("Failed to record tool call",
				zap.String("tool", req.Params.Name),
				zap.String("message", out.Message),
			)
		}
		return res, err
	}
}

func (r *Recorder) request(req mcp.CallToolRequest, res *mcp.CallToolResult, callErr error) tracker.RecordActionRequest {
	args := req.GetArguments()

	rec := tracker.RecordActionRequest{
		UserID:     r.identity.UserID,
		UserName:   r.identity.UserName,
		UserEmail:  r.identity.UserEmail,
		UserTeam:   r.identity.UserTeam,
		MCPID:      r.identity.MCPID,
		MCPType:    r.identity.MCPType,
		MCPName:    r.identity.MCPName,
		ActionType: req.Params.Name,
		ActionName: req.Params.Name,
		Parameters: graph.Params(args),
		Status:     graph.StatusSuccess,
	}

	if id := stringArg(args, "userId", "user_id"); id != "" && id != r.identity.UserID {
		rec.UserID = id
		rec.UserName = ""
		rec.UserEmail = ""
		rec.UserTeam = ""
	}

	switch {
	case callErr != nil:
		rec.Status = graph.StatusFailure
		rec.Result = map[string]interface{}{"error": callErr.Error()}
	case res == nil:
		rec.Result = nil
	default:
		if res.IsError {
			rec.Status = graph.StatusFailure
		}
		rec.Result = resultPayload(res)
	}
	return rec
}

func stringArg(args map[string]interface{}, keys ...string) string {
	for _, k := range keys {
		if s, ok := args[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// resultPayload keeps the text content of a result, decoded when it is JSON
func resultPayload(res *mcp.CallToolResult) interface{} {
	var texts []interface{}
	for _, c := range res.Content {
		tc, ok := c.(mcp.TextContent)
		if !ok {
			continue
		}
		var decoded interface{}
		if json.Unmarshal([]byte(tc.Text), &decoded) == nil {
			texts = append(texts, decoded)
		} else {
			texts = append(texts, tc.Text)
		}
	}
	switch len(texts) {
	case 0:
		return nil
	case 1:
		return texts[0]
	}
	return texts
}
