package tracker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"action-graph/backend/internal/graph"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordAction_Success(t *testing.T) {
	tr, store, _ := newTestTracker(t, Options{})

	req := discordRequest("u1", "post_creation", graph.Params{"channelId": "c1", "message": "hi"})
	req.UserName = "Ada"
	req.UserEmail = "ada@example.com"
	req.UserTeam = "Platform"

	res := tr.RecordAction(context.Background(), req)

	assert.True(t, res.Success)
	assert.Equal(t, "action-001", res.ActionID)
	assert.Equal(t, "Action recorded successfully", res.Message)
	assert.Equal(t, 1, store.ActionCount())

	user, ok := store.User("u1")
	require.True(t, ok)
	assert.Equal(t, "Ada", user.Name)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.Equal(t, "Platform", user.Team)
	assert.Equal(t, baseTime, user.CreatedAt)

	mcp, ok := store.MCP("discord-1")
	require.True(t, ok)
	assert.Equal(t, "discord", mcp.Type)
	assert.Equal(t, "Discord", mcp.Name)
}

func TestRecordAction_SecondCallReusesUser(t *testing.T) {
	tr, store, clock := newTestTracker(t, Options{})
	ctx := context.Background()

	first := discordRequest("u1", "post_creation", graph.Params{"channelId": "c1"})
	first.UserName = "Ada"
	first.UserEmail = "ada@example.com"
	require.True(t, tr.RecordAction(ctx, first).Success)

	clock.Advance(time.Minute)
	second := discordRequest("u1", "reaction_add", graph.Params{"emoji": "+1"})
	second.UserName = "Ada L."
	require.True(t, tr.RecordAction(ctx, second).Success)

	assert.Equal(t, 1, store.UserCount())
	assert.Equal(t, 2, store.ActionCount())

	user, _ := store.User("u1")
	assert.Equal(t, "Ada L.", user.Name)
	assert.Equal(t, "ada@example.com", user.Email, "empty email must not overwrite")
	assert.Equal(t, baseTime, user.CreatedAt)
}

func TestRecordAction_MCPNotUpdatedOnReuse(t *testing.T) {
	tr, store, _ := newTestTracker(t, Options{})
	ctx := context.Background()

	require.True(t, tr.RecordAction(ctx, discordRequest("u1", "post_creation", nil)).Success)
	renamed := discordRequest("u1", "post_creation", nil)
	renamed.MCPName = "Renamed"
	require.True(t, tr.RecordAction(ctx, renamed).Success)

	mcp, _ := store.MCP("discord-1")
	assert.Equal(t, "Discord", mcp.Name)
}

func TestRecordAction_EmptyParametersStoredAsEmptyObject(t *testing.T) {
	tr, store, _ := newTestTracker(t, Options{})
	ctx := context.Background()

	req := discordRequest("u1", "ping", nil)
	req.Result = nil
	require.True(t, tr.RecordAction(ctx, req).Success)

	actions, err := store.UserActions(ctx, "u1", 10)
	require.NoError(t, err)
	require.Len(t, actions, 1)
	assert.NotNil(t, actions[0].Action.Parameters)
	assert.Empty(t, actions[0].Action.Parameters)
	assert.Equal(t, map[string]any{}, actions[0].Action.Result)
}

func TestRecordAction_FailureStatusIsRecorded(t *testing.T) {
	tr, store, _ := newTestTracker(t, Options{})
	ctx := context.Background()

	req := discordRequest("u1", "post_creation", graph.Params{"channelId": "c1"})
	req.Status = graph.StatusFailure
	req.Result = map[string]any{"error": "rate limited"}
	require.True(t, tr.RecordAction(ctx, req).Success)

	actions, _ := store.UserActions(ctx, "u1", 10)
	require.Len(t, actions, 1)
	assert.Equal(t, graph.StatusFailure, actions[0].Action.Status)
}

func TestRecordAction_ValidationFailure(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RecordActionRequest)
		want   string
	}{
		{"missing user", func(r *RecordActionRequest) { r.UserID = "" }, "userId"},
		{"missing mcp id", func(r *RecordActionRequest) { r.MCPID = "" }, "mcpId"},
		{"missing action type", func(r *RecordActionRequest) { r.ActionType = "" }, "actionType"},
		{"bad status", func(r *RecordActionRequest) { r.Status = "pending" }, "status"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, store, _ := newTestTracker(t, Options{})
			req := discordRequest("u1", "post_creation", nil)
			tt.mutate(&req)

			res := tr.RecordAction(context.Background(), req)

			assert.False(t, res.Success)
			assert.Empty(t, res.ActionID)
			assert.Contains(t, res.Message, "Failed to record action")
			assert.Contains(t, res.Message, tt.want)
			assert.Equal(t, 0, store.ActionCount())
		})
	}
}

func TestRecordAction_StoreFailureIsReported(t *testing.T) {
	tr, store, _ := newTestTracker(t, Options{})
	store.Err = errors.New("connection refused")

	res := tr.RecordAction(context.Background(), discordRequest("u1", "post_creation", nil))

	assert.False(t, res.Success)
	assert.Contains(t, res.Message, "connection refused")
}

func TestRecordAction_UnencodableResult(t *testing.T) {
	tr, store, _ := newTestTracker(t, Options{})

	req := discordRequest("u1", "post_creation", nil)
	req.Result = make(chan int)
	res := tr.RecordAction(context.Background(), req)

	assert.False(t, res.Success)
	assert.Equal(t, 0, store.ActionCount())
}

func TestRecordAction_Concurrent(t *testing.T) {
	tr, store, _ := newTestTracker(t, Options{})
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tr.RecordAction(ctx, discordRequest("u1", "post_creation", graph.Params{"channelId": "c1"}))
		}()
	}
	wg.Wait()

	assert.Equal(t, 20, store.ActionCount())
	assert.Equal(t, 1, store.UserCount())
}

func TestRecordAction_InvalidStatusUsesFixedMetricLabel(t *testing.T) {
	tr, _, _ := newTestTracker(t, Options{})
	before := testutil.ToFloat64(actionsRecorded.WithLabelValues("invalid", "error"))

	for _, status := range []string{"pending", "queued", "x-1"} {
		req := discordRequest("u1", "post_creation", nil)
		req.Status = graph.Status(status)
		assert.False(t, tr.RecordAction(context.Background(), req).Success)
	}

	assert.Equal(t, before+3, testutil.ToFloat64(actionsRecorded.WithLabelValues("invalid", "error")))
	assert.Equal(t, "success", statusLabel(graph.StatusSuccess))
	assert.Equal(t, "failure", statusLabel(graph.StatusFailure))
	assert.Equal(t, "invalid", statusLabel("pending"))
}
