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
	// DefaultSessionWindow bounds the gap between two actions of one sequence
	DefaultSessionWindow = 30 * time.Minute
	// MaxSuggestions is the number of next-action groups returned
	MaxSuggestions = 3
)

// SuggestionQuery describes the action the user is currently performing.
// CurrentParameters is carried for callers and logging; suggestions are
// keyed on the action type alone.
type SuggestionQuery struct {
	UserID            string       `json:"userId"`
	MCPType           string       `json:"mcpType"`
	CurrentActionType string       `json:"currentActionType"`
	CurrentParameters graph.Params `json:"currentParameters"`
}

// Suggestion is a likely next action with the parameter sets seen for it
type Suggestion struct {
	ActionType         string         `json:"actionType"`
	ActionName         string         `json:"actionName"`
	PossibleParameters []graph.Params `json:"possibleParameters"`
	Frequency          int            `json:"frequency"`
}

type suggestionGroup struct {
	suggestion Suggestion
	seen       map[string]struct{}
}

// SuggestNextAction mines actions that followed earlier occurrences of
// q.CurrentActionType on the same MCP instance within the session window and
// returns the most frequent (type, name) groups
func (t *Tracker) SuggestNextAction(ctx context.Context, q SuggestionQuery) (suggestions []Suggestion, err error) {
	start := time.Now()
	defer func() { observeQuery("suggest_next_action", start, err) }()

	if q.UserID == "" && !t.global {
		return nil, apperrors.NewInvalidInput("userId", "is required")
	}
	if q.MCPType == "" {
		return nil, apperrors.NewInvalidInput("mcpType", "is required")
	}
	if q.CurrentActionType == "" {
		return nil, apperrors.NewInvalidInput("currentActionType", "is required")
	}

	transitions, err := t.store.ActionTransitions(ctx, graph.TransitionQuery{
		UserID:     q.UserID,
		MCPType:    q.MCPType,
		ActionType: q.CurrentActionType,
		Window:     t.window,
		Global:     t.global,
	})
	if err != nil {
		t.logger.Error("Error suggesting next action",
			zap.String("user_id", q.UserID),
			zap.String("mcp_type", q.MCPType),
			zap.String("current_action_type", q.CurrentActionType),
			zap.Error(err),
		)
		return nil, err
	}

	return t.groupTransitions(transitions), nil
}

func (t *Tracker) groupTransitions(transitions []graph.Transition) []Suggestion {
	groups := map[string]*suggestionGroup{}
	var order []string

	for _, tr := range transitions {
		if gap := tr.Gap(); gap <= 0 || gap >= t.window {
			continue
		}
		if tr.From.ID != "" && tr.From.ID == tr.To.ID {
			continue
		}

		key := tr.To.Type + "\x00" + tr.To.Name
		g, ok := groups[key]
		if !ok {
			g = &suggestionGroup{
				suggestion: Suggestion{
					ActionType:         tr.To.Type,
					ActionName:         tr.To.Name,
					PossibleParameters: []graph.Params{},
				},
				seen: map[string]struct{}{},
			}
			groups[key] = g
			order = append(order, key)
		}
		g.suggestion.Frequency++

		encoded, err := graph.EncodeParams(tr.To.Parameters)
		if err != nil {
			continue
		}
		if _, dup := g.seen[encoded]; !dup {
			g.seen[encoded] = struct{}{}
			g.suggestion.PossibleParameters = append(g.suggestion.PossibleParameters, tr.To.Parameters)
		}
	}

	suggestions := make([]Suggestion, 0, len(order))
	for _, key := range order {
		suggestions = append(suggestions, groups[key].suggestion)
	}
	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		if a.Frequency != b.Frequency {
			return a.Frequency > b.Frequency
		}
		if a.ActionType != b.ActionType {
			return a.ActionType < b.ActionType
		}
		return a.ActionName < b.ActionName
	})

	if len(suggestions) > MaxSuggestions {
		suggestions = suggestions[:MaxSuggestions]
	}
	return suggestions
}
