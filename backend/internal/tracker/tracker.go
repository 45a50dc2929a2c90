// Package tracker records tool invocations into the action graph and answers
// analytical queries over it: similar actions, user history, next-action
// suggestions, context recommendations and user lookup.
//
// The tracker holds no mutable state. Every method is safe for concurrent use
// and performs exactly one store operation; ordering of concurrent writes is
// left to the store's transactions.
package tracker

import (
	"context"
	"time"

	"action-graph/backend/internal/graph"
	"action-graph/backend/pkg/logger"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// GraphStore is the persistence backend. graph.Repository implements it on
// Neo4j; the tracker owns scoring, grouping and ordering.
type GraphStore interface {
	RecordAction(ctx context.Context, rec graph.ActionRecord) error
	CandidateActions(ctx context.Context, mcpType, actionType string, keys []string) ([]graph.ActionWithMCP, error)
	UserActions(ctx context.Context, userID string, limit int) ([]graph.ActionWithMCP, error)
	ActionTransitions(ctx context.Context, q graph.TransitionQuery) ([]graph.Transition, error)
	SearchActions(ctx context.Context, text string, limit int) ([]graph.ActionWithMCP, error)
	FindUserByEmail(ctx context.Context, email string) (*graph.User, bool, error)
}

var _ GraphStore = (*graph.Repository)(nil)

// Options tune the tracker. Zero values select the defaults.
type Options struct {
	// SessionWindow bounds the gap between two actions that count as a sequence
	SessionWindow time.Duration
	// GlobalSequences mines every user's history for suggestions instead of
	// only the requesting user's
	GlobalSequences bool

	Clock       func() time.Time
	IDGenerator func() string
	Logger      *zap.Logger
}

// Tracker is the action tracking and recommendation engine
type Tracker struct {
	store    GraphStore
	window   time.Duration
	global   bool
	now      func() time.Time
	newID    func() string
	validate *validator.Validate
	logger   *zap.Logger
}

// New creates a tracker over store
func New(store GraphStore, opts Options) *Tracker {
	t := &Tracker{
		store:    store,
		window:   opts.SessionWindow,
		global:   opts.GlobalSequences,
		now:      opts.Clock,
		newID:    opts.IDGenerator,
		validate: newValidator(),
		logger:   opts.Logger,
	}
	if t.window <= 0 {
		t.window = DefaultSessionWindow
	}
	if t.now == nil {
		t.now = time.Now
	}
	if t.newID == nil {
		t.newID = uuid.NewString
	}
	if t.logger == nil {
		t.logger = logger.Named("tracker")
	}
	return t
}

// SessionWindow returns the configured sequence window
func (t *Tracker) SessionWindow() time.Duration {
	return t.window
}
