// Package trackertest provides an in-memory tracker.GraphStore with the same
// upsert, filtering and ordering semantics as the Neo4j repository.
package trackertest

import (
	"context"
	"sort"
	"strings"
	"sync"

	"action-graph/backend/internal/graph"
)

type storedAction struct {
	action graph.Action
	userID string
	mcpID  string
}

// MemoryStore is safe for concurrent use
type MemoryStore struct {
	mu      sync.Mutex
	users   map[string]*graph.User
	mcps    map[string]*graph.MCP
	actions []storedAction

	// Err, when set, is returned by every operation
	Err error
}

// NewMemoryStore creates an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users: map[string]*graph.User{},
		mcps:  map[string]*graph.MCP{},
	}
}

// RecordAction mirrors the MERGE/CREATE write of the repository
func (s *MemoryStore) RecordAction(_ context.Context, rec graph.ActionRecord) error {
	if s.Err != nil {
		return s.Err
	}
	params, err := graph.DecodeParams(rec.ParametersJSON)
	if err != nil {
		return err
	}
	result, err := graph.DecodeResult(rec.ResultJSON)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ts := rec.Timestamp.UTC()
	if u, ok := s.users[rec.UserID]; ok {
		if rec.UserName != "" {
			u.Name = rec.UserName
		}
		if rec.UserEmail != "" {
			u.Email = rec.UserEmail
		}
		if rec.UserTeam != "" {
			u.Team = rec.UserTeam
		}
	} else {
		s.users[rec.UserID] = &graph.User{
			ID:        rec.UserID,
			Name:      rec.UserName,
			Email:     rec.UserEmail,
			Team:      rec.UserTeam,
			CreatedAt: ts,
		}
	}

	if _, ok := s.mcps[rec.MCPID]; !ok {
		s.mcps[rec.MCPID] = &graph.MCP{ID: rec.MCPID, Type: rec.MCPType, Name: rec.MCPName, CreatedAt: ts}
	}

	s.actions = append(s.actions, storedAction{
		action: graph.Action{
			ID:         rec.ActionID,
			Type:       rec.ActionType,
			Name:       rec.ActionName,
			Parameters: params,
			Result:     result,
			Status:     rec.Status,
			Timestamp:  ts,
		},
		userID: rec.UserID,
		mcpID:  rec.MCPID,
	})
	return nil
}

// CandidateActions filters by MCP type, action type and shared keys
func (s *MemoryStore) CandidateActions(_ context.Context, mcpType, actionType string, keys []string) ([]graph.ActionWithMCP, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []graph.ActionWithMCP{}
	for _, a := range s.actions {
		mcp := s.mcps[a.mcpID]
		if mcp.Type != mcpType || a.action.Type != actionType {
			continue
		}
		if len(keys) > 0 && !sharesKey(a.action.Parameters, keys) {
			continue
		}
		out = append(out, graph.ActionWithMCP{Action: a.action, MCP: *mcp})
	}
	sortNewestFirst(out)
	return out, nil
}

// UserActions returns the user's actions newest first
func (s *MemoryStore) UserActions(_ context.Context, userID string, limit int) ([]graph.ActionWithMCP, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []graph.ActionWithMCP{}
	for _, a := range s.actions {
		if a.userID == userID {
			out = append(out, graph.ActionWithMCP{Action: a.action, MCP: *s.mcps[a.mcpID]})
		}
	}
	sortNewestFirst(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// ActionTransitions pairs reference actions with later actions by the same
// user on the same MCP within the window
func (s *MemoryStore) ActionTransitions(_ context.Context, q graph.TransitionQuery) ([]graph.Transition, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []graph.Transition{}
	for _, cur := range s.actions {
		mcp := s.mcps[cur.mcpID]
		if cur.action.Type != q.ActionType || mcp.Type != q.MCPType {
			continue
		}
		if !q.Global && cur.userID != q.UserID {
			continue
		}
		for _, next := range s.actions {
			if next.userID != cur.userID || next.mcpID != cur.mcpID {
				continue
			}
			if !next.action.Timestamp.After(cur.action.Timestamp) {
				continue
			}
			if next.action.Timestamp.Sub(cur.action.Timestamp) >= q.Window {
				continue
			}
			out = append(out, graph.Transition{
				UserID: cur.userID,
				From:   cur.action,
				To:     next.action,
				MCP:    *mcp,
			})
		}
	}
	return out, nil
}

// SearchActions matches name or type case-insensitively. A limit of zero
// returns every match.
func (s *MemoryStore) SearchActions(_ context.Context, text string, limit int) ([]graph.ActionWithMCP, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	needle := strings.ToLower(text)
	out := []graph.ActionWithMCP{}
	for _, a := range s.actions {
		if strings.Contains(strings.ToLower(a.action.Name), needle) ||
			strings.Contains(strings.ToLower(a.action.Type), needle) {
			out = append(out, graph.ActionWithMCP{Action: a.action, MCP: *s.mcps[a.mcpID]})
		}
	}
	sortNewestFirst(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// FindUserByEmail looks up a user by exact email
func (s *MemoryStore) FindUserByEmail(_ context.Context, email string) (*graph.User, bool, error) {
	if s.Err != nil {
		return nil, false, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			found := *u
			return &found, true, nil
		}
	}
	return nil, false, nil
}

// UserCount returns the number of distinct users
func (s *MemoryStore) UserCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

// User returns a copy of the stored user
func (s *MemoryStore) User(id string) (graph.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return graph.User{}, false
	}
	return *u, true
}

// MCP returns a copy of the stored MCP
func (s *MemoryStore) MCP(id string) (graph.MCP, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.mcps[id]
	if !ok {
		return graph.MCP{}, false
	}
	return *m, true
}

// ActionCount returns the number of recorded actions
func (s *MemoryStore) ActionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.actions)
}

func sharesKey(p graph.Params, keys []string) bool {
	for _, k := range keys {
		if _, ok := p[k]; ok {
			return true
		}
	}
	return false
}

func sortNewestFirst(items []graph.ActionWithMCP) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Action.Timestamp.After(items[j].Action.Timestamp)
	})
}
