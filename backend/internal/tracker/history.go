package tracker

import (
	"context"
	"sort"
	"time"

	"action-graph/backend/internal/graph"
	apperrors "action-graph/backend/pkg/errors"
	"go.uber.org/zap"
)

// DefaultHistoryLimit caps GetUserActionHistory when no limit is given
const DefaultHistoryLimit = 20

// GetUserActionHistory returns the user's actions with their MCPs, newest
// first. A user with no recorded actions gets an empty slice.
func (t *Tracker) GetUserActionHistory(ctx context.Context, userID string, limit int) (actions []graph.ActionWithMCP, err error) {
	start := time.Now()
	defer func() { observeQuery("get_user_action_history", start, err) }()

	if userID == "" {
		return nil, apperrors.NewInvalidInput("userId", "is required")
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	actions, err = t.store.UserActions(ctx, userID, limit)
	if err != nil {
		t.logger.Error("Error getting user action history",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return nil, err
	}
	if actions == nil {
		actions = []graph.ActionWithMCP{}
	}

	sort.SliceStable(actions, func(i, j int) bool {
		return actions[i].Action.Timestamp.After(actions[j].Action.Timestamp)
	})
	if len(actions) > limit {
		actions = actions[:limit]
	}
	return actions, nil
}
