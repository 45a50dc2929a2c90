package tracker

import (
	"context"
	"sort"
	"time"

	"action-graph/backend/internal/graph"
	apperrors "action-graph/backend/pkg/errors"
	"go.uber.org/zap"
)

const (
	// DefaultSimilarLimit caps FindSimilarActions when no limit is given
	DefaultSimilarLimit = 5
	// SimilarityThreshold is the score a candidate must exceed to be returned
	SimilarityThreshold = 0.3
)

// SimilarityQuery selects the action to compare against
type SimilarityQuery struct {
	MCPType    string       `json:"mcpType"`
	ActionType string       `json:"actionType"`
	Parameters graph.Params `json:"parameters"`
	Limit      int          `json:"limit,omitempty"`
}

// SimilarAction is a previously recorded action with its similarity score
type SimilarAction struct {
	Action     graph.Action `json:"action"`
	MCP        graph.MCP    `json:"mcp"`
	Similarity float64      `json:"similarity"`
}

// KeySimilarity is the Jaccard index of the two parameter key sets. Values
// are ignored. Two empty sets score 0.
func KeySimilarity(candidate, input graph.Params) float64 {
	shared := 0
	for key := range input {
		if _, ok := candidate[key]; ok {
			shared++
		}
	}
	union := len(input) + len(candidate) - shared
	if union == 0 {
		return 0
	}
	return float64(shared) / float64(union)
}

// FindSimilarActions returns recorded actions of the same MCP type and
// action type whose parameter keys overlap q.Parameters by more than
// SimilarityThreshold, best match first and most recent first among equals
func (t *Tracker) FindSimilarActions(ctx context.Context, q SimilarityQuery) (similar []SimilarAction, err error) {
	start := time.Now()
	defer func() { observeQuery("find_similar_actions", start, err) }()

	if q.MCPType == "" {
		return nil, apperrors.NewInvalidInput("mcpType", "is required")
	}
	if q.ActionType == "" {
		return nil, apperrors.NewInvalidInput("actionType", "is required")
	}
	limit := q.Limit
	if limit <= 0 {
		limit = DefaultSimilarLimit
	}

	candidates, err := t.store.CandidateActions(ctx, q.MCPType, q.ActionType, q.Parameters.Keys())
	if err != nil {
		t.logger.Error("Error finding similar actions",
			zap.String("mcp_type", q.MCPType),
			zap.String("action_type", q.ActionType),
			zap.Error(err),
		)
		return nil, err
	}

	similar = []SimilarAction{}
	for _, c := range candidates {
		if len(c.Action.Parameters) == 0 {
			continue
		}
		score := KeySimilarity(c.Action.Parameters, q.Parameters)
		if score <= SimilarityThreshold {
			continue
		}
		similar = append(similar, SimilarAction{Action: c.Action, MCP: c.MCP, Similarity: score})
	}

	sort.SliceStable(similar, func(i, j int) bool {
		if similar[i].Similarity != similar[j].Similarity {
			return similar[i].Similarity > similar[j].Similarity
		}
		return similar[i].Action.Timestamp.After(similar[j].Action.Timestamp)
	})

	if len(similar) > limit {
		similar = similar[:limit]
	}
	return similar, nil
}
