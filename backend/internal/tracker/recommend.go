package tracker

import (
	"context"
	"sort"
	"strings"
	"time"

	"action-graph/backend/internal/graph"
	apperrors "action-graph/backend/pkg/errors"
	"go.uber.org/zap"
)

// MaxRecommendations is the number of recommendation groups returned
const MaxRecommendations = 5

// Recommendation is an action commonly performed in a given context
type Recommendation struct {
	MCPType          string         `json:"mcpType"`
	MCPName          string         `json:"mcpName"`
	ActionType       string         `json:"actionType"`
	ActionName       string         `json:"actionName"`
	ParameterSamples []graph.Params `json:"parameterSamples"`
	Frequency        int            `json:"frequency"`
}

// GetActionRecommendations finds actions whose name or type mentions
// contextText and returns the most frequent (service, action) pairs
func (t *Tracker) GetActionRecommendations(ctx context.Context, contextText string) (recs []Recommendation, err error) {
	start := time.Now()
	defer func() { observeQuery("get_action_recommendations", start, err) }()

	contextText = strings.TrimSpace(contextText)
	if contextText == "" {
		return nil, apperrors.NewInvalidInput("context", "is required")
	}

	// every match is counted; frequencies are only meaningful over the full set
	matches, err := t.store.SearchActions(ctx, contextText, 0)
	if err != nil {
		t.logger.Error("Error getting action recommendations",
			zap.String("context", contextText),
			zap.Error(err),
		)
		return nil, err
	}

	type group struct {
		rec  Recommendation
		seen map[string]struct{}
	}
	groups := map[string]*group{}
	var order []string

	for _, m := range matches {
		key := strings.Join([]string{m.MCP.Type, m.MCP.Name, m.Action.Type, m.Action.Name}, "\x00")
		g, ok := groups[key]
		if !ok {
			g = &group{
				rec: Recommendation{
					MCPType:          m.MCP.Type,
					MCPName:          m.MCP.Name,
					ActionType:       m.Action.Type,
					ActionName:       m.Action.Name,
					ParameterSamples: []graph.Params{},
				},
				seen: map[string]struct{}{},
			}
			groups[key] = g
			order = append(order, key)
		}
		g.rec.Frequency++
		if encoded, err := graph.EncodeParams(m.Action.Parameters); err == nil {
			if _, dup := g.seen[encoded]; !dup {
				g.seen[encoded] = struct{}{}
				g.rec.ParameterSamples = append(g.rec.ParameterSamples, m.Action.Parameters)
			}
		}
	}

	recs = make([]Recommendation, 0, len(order))
	for _, key := range order {
		recs = append(recs, groups[key].rec)
	}
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Frequency > recs[j].Frequency
	})
	if len(recs) > MaxRecommendations {
		recs = recs[:MaxRecommendations]
	}
	return recs, nil
}
