package main

import (
	"context"
	"encoding/json"
	"testing"

	"action-graph/backend/internal/tools"
	"action-graph/backend/internal/tracker"
	"action-graph/backend/internal/tracker/trackertest"
	"action-graph/backend/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig() *config.Config {
	return &config.Config{
		MCPID:         "mcp-test",
		MCPType:       "Test",
		MCPName:       "Test MCP",
		DefaultUserID: "u-default",
	}
}

func call(t *testing.T, handle func(context.Context, json.RawMessage) interface{}, msg string) string {
	t.Helper()
	out, err := json.Marshal(handle(context.Background(), json.RawMessage(msg)))
	require.NoError(t, err)
	return string(out)
}

func TestNewServer_RegistersTools(t *testing.T) {
	tr := tracker.New(trackertest.NewMemoryStore(), tracker.Options{Logger: zap.NewNop()})
	s := newServer(testConfig(), tr)

	handle := func(ctx context.Context, raw json.RawMessage) interface{} { return s.HandleMessage(ctx, raw) }
	body := call(t, handle, `{"jsonrpc":"2.0","id":1,"method":"tools/list"}`)

	for _, name := range []string{
		tools.ToolRecordAction,
		tools.ToolGetSimilarActions,
		tools.ToolGetUserHistory,
		tools.ToolSuggestNextAction,
		tools.ToolFindUserByEmail,
		tools.ToolGetActionRecommendations,
	} {
		assert.Contains(t, body, name)
	}
}

func TestNewServer_AnalyticsCallsAreNotRecorded(t *testing.T) {
	store := trackertest.NewMemoryStore()
	tr := tracker.New(store, tracker.Options{Logger: zap.NewNop()})
	s := newServer(testConfig(), tr)

	handle := func(ctx context.Context, raw json.RawMessage) interface{} { return s.HandleMessage(ctx, raw) }
	body := call(t, handle, `{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"get_user_history","arguments":{"userId":"u1"}}}`)

	assert.Contains(t, body, `\"success\":true`)
	assert.Equal(t, 0, store.ActionCount())
}

func TestNewServer_RecordActionTool(t *testing.T) {
	store := trackertest.NewMemoryStore()
	tr := tracker.New(store, tracker.Options{Logger: zap.NewNop()})
	s := newServer(testConfig(), tr)

	handle := func(ctx context.Context, raw json.RawMessage) interface{} { return s.HandleMessage(ctx, raw) }
	body := call(t, handle, `{"jsonrpc":"2.0","id":3,"method":"tools/call","params":{"name":"record_action","arguments":{"userId":"u1","mcpId":"discord-1","mcpType":"discord","actionType":"post_creation","parameters":{"channelId":"c1"}}}}`)

	assert.Contains(t, body, `\"success\":true`)
	// recorded once by the tool, never again by the middleware
	assert.Equal(t, 1, store.ActionCount())
}

func TestNewServer_WithoutTracker(t *testing.T) {
	s := newServer(testConfig(), nil)

	handle := func(ctx context.Context, raw json.RawMessage) interface{} { return s.HandleMessage(ctx, raw) }
	body := call(t, handle, `{"jsonrpc":"2.0","id":4,"method":"tools/call","params":{"name":"get_user_history","arguments":{"userId":"u1"}}}`)

	assert.Contains(t, body, `\"success\":false`)
	assert.Contains(t, body, "action tracking is not configured")
}

func TestIdentityFromConfig(t *testing.T) {
	id := identityFromConfig(testConfig())

	assert.Equal(t, "mcp-test", id.MCPID)
	assert.Equal(t, "Test", id.MCPType)
	assert.Equal(t, "Test MCP", id.MCPName)
	assert.Equal(t, "u-default", id.UserID)
}
