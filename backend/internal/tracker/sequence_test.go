package tracker

import (
	"context"
	"testing"
	"time"

	"action-graph/backend/internal/graph"
	apperrors "action-graph/backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggestNextAction_FollowsObservedSequence(t *testing.T) {
	tr, _, clock := newTestTracker(t, Options{})
	ctx := context.Background()

	require.True(t, tr.RecordAction(ctx, discordRequest("u1", "post_creation", graph.Params{"channelId": "c1"})).Success)
	clock.Advance(5 * time.Minute)
	require.True(t, tr.RecordAction(ctx, discordRequest("u1", "reaction_add", graph.Params{"emoji": "+1"})).Success)

	suggestions, err := tr.SuggestNextAction(ctx, SuggestionQuery{
		UserID:            "u1",
		MCPType:           "discord",
		CurrentActionType: "post_creation",
	})

	require.NoError(t, err)
	require.NotEmpty(t, suggestions)
	assert.Equal(t, "reaction_add", suggestions[0].ActionType)
	assert.GreaterOrEqual(t, suggestions[0].Frequency, 1)
	assert.Equal(t, []graph.Params{{"emoji": "+1"}}, suggestions[0].PossibleParameters)
}

func TestSuggestNextAction_OutsideWindowExcluded(t *testing.T) {
	tr, _, clock := newTestTracker(t, Options{})
	ctx := context.Background()

	require.True(t, tr.RecordAction(ctx, discordRequest("u1", "post_creation", nil)).Success)
	clock.Advance(31 * time.Minute)
	require.True(t, tr.RecordAction(ctx, discordRequest("u1", "reaction_add", nil)).Success)

	suggestions, err := tr.SuggestNextAction(ctx, SuggestionQuery{
		UserID:            "u1",
		MCPType:           "discord",
		CurrentActionType: "post_creation",
	})

	require.NoError(t, err)
	assert.Empty(t, suggestions)
}

func TestSuggestNextAction_RanksAndCapsGroups(t *testing.T) {
	tr, _, clock := newTestTracker(t, Options{})
	ctx := context.Background()

	// each session: post_creation followed by one next action a minute later
	session := func(next string, params graph.Params) {
		require.True(t, tr.RecordAction(ctx, discordRequest("u1", "post_creation", nil)).Success)
		clock.Advance(time.Minute)
		require.True(t, tr.RecordAction(ctx, discordRequest("u1", next, params)).Success)
		clock.Advance(time.Hour)
	}
	session("reaction_add", graph.Params{"emoji": "+1"})
	session("reaction_add", graph.Params{"emoji": "+1"})
	session("reaction_add", graph.Params{"emoji": "heart"})
	session("thread_reply", graph.Params{"text": "a"})
	session("thread_reply", graph.Params{"text": "b"})
	session("pin_message", nil)
	session("edit_message", nil)

	suggestions, err := tr.SuggestNextAction(ctx, SuggestionQuery{
		UserID:            "u1",
		MCPType:           "discord",
		CurrentActionType: "post_creation",
	})

	require.NoError(t, err)
	require.Len(t, suggestions, MaxSuggestions)

	assert.Equal(t, "reaction_add", suggestions[0].ActionType)
	assert.Equal(t, 3, suggestions[0].Frequency)
	assert.Len(t, suggestions[0].PossibleParameters, 2, "parameter sets are distinct")

	assert.Equal(t, "thread_reply", suggestions[1].ActionType)
	assert.Equal(t, 2, suggestions[1].Frequency)

	// ties break on type name
	assert.Equal(t, "edit_message", suggestions[2].ActionType)
	assert.Equal(t, 1, suggestions[2].Frequency)
}

func TestSuggestNextAction_PersonalScope(t *testing.T) {
	tr, _, clock := newTestTracker(t, Options{})
	ctx := context.Background()

	require.True(t, tr.RecordAction(ctx, discordRequest("u2", "post_creation", nil)).Success)
	clock.Advance(time.Minute)
	require.True(t, tr.RecordAction(ctx, discordRequest("u2", "reaction_add", nil)).Success)

	query := SuggestionQuery{UserID: "u1", MCPType: "discord", CurrentActionType: "post_creation"}
	suggestions, err := tr.SuggestNextAction(ctx, query)
	require.NoError(t, err)
	assert.Empty(t, suggestions)
}

func TestSuggestNextAction_GlobalScope(t *testing.T) {
	tr, _, clock := newTestTracker(t, Options{GlobalSequences: true})
	ctx := context.Background()

	require.True(t, tr.RecordAction(ctx, discordRequest("u2", "post_creation", nil)).Success)
	clock.Advance(time.Minute)
	// another user's action never counts as a continuation
	require.True(t, tr.RecordAction(ctx, discordRequest("u3", "thread_reply", nil)).Success)
	clock.Advance(time.Minute)
	require.True(t, tr.RecordAction(ctx, discordRequest("u2", "reaction_add", nil)).Success)

	suggestions, err := tr.SuggestNextAction(ctx, SuggestionQuery{MCPType: "discord", CurrentActionType: "post_creation"})

	require.NoError(t, err)
	require.Len(t, suggestions, 1)
	assert.Equal(t, "reaction_add", suggestions[0].ActionType)
}

func TestSuggestNextAction_SameMCPInstanceOnly(t *testing.T) {
	tr, _, clock := newTestTracker(t, Options{})
	ctx := context.Background()

	require.True(t, tr.RecordAction(ctx, discordRequest("u1", "post_creation", nil)).Success)
	clock.Advance(time.Minute)
	other := discordRequest("u1", "reaction_add", nil)
	other.MCPID = "discord-2"
	require.True(t, tr.RecordAction(ctx, other).Success)

	suggestions, err := tr.SuggestNextAction(ctx, SuggestionQuery{UserID: "u1", MCPType: "discord", CurrentActionType: "post_creation"})

	require.NoError(t, err)
	assert.Empty(t, suggestions)
}

func TestSuggestNextAction_Validation(t *testing.T) {
	tr, _, _ := newTestTracker(t, Options{})
	ctx := context.Background()

	_, err := tr.SuggestNextAction(ctx, SuggestionQuery{MCPType: "discord", CurrentActionType: "x"})
	assert.True(t, apperrors.IsInvalidInput(err))

	_, err = tr.SuggestNextAction(ctx, SuggestionQuery{UserID: "u1", CurrentActionType: "x"})
	assert.True(t, apperrors.IsInvalidInput(err))

	_, err = tr.SuggestNextAction(ctx, SuggestionQuery{UserID: "u1", MCPType: "discord"})
	assert.True(t, apperrors.IsInvalidInput(err))
}

func TestGroupTransitions_DropsOutOfWindowPairs(t *testing.T) {
	tr, _, _ := newTestTracker(t, Options{})
	from := graph.Action{ID: "a", Type: "post_creation", Timestamp: baseTime}

	transitions := []graph.Transition{
		{From: from, To: graph.Action{ID: "b", Type: "later", Timestamp: baseTime.Add(30 * time.Minute)}},
		{From: from, To: graph.Action{ID: "c", Type: "same_time", Timestamp: baseTime}},
		{From: from, To: from},
		{From: from, To: graph.Action{ID: "d", Type: "ok", Timestamp: baseTime.Add(29 * time.Minute)}},
	}

	suggestions := tr.groupTransitions(transitions)

	require.Len(t, suggestions, 1)
	assert.Equal(t, "ok", suggestions[0].ActionType)
}
