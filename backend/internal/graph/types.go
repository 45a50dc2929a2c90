package graph

import "time"

// ============================================================================
// Action Graph Types
// ============================================================================

// Status is the outcome of a recorded tool invocation
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
)

// Valid reports whether s is one of the recognised statuses
func (s Status) Valid() bool {
	return s == StatusSuccess || s == StatusFailure
}

// User is the person on whose behalf actions are performed
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name,omitempty"`
	Email     string    `json:"email,omitempty"`
	Team      string    `json:"team,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// MCP is a calling service whose tool invocations are tracked
type MCP struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// Action is an immutable record of one tool invocation
type Action struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	Name       string    `json:"name"`
	Parameters Params    `json:"parameters"`
	Result     any       `json:"result"`
	Status     Status    `json:"status"`
	Timestamp  time.Time `json:"timestamp"`
}

// ActionWithMCP pairs an action with the service it used
type ActionWithMCP struct {
	Action Action `json:"action"`
	MCP    MCP    `json:"mcp"`
}

// ActionRecord is the write model for one action. Payloads are already
// encoded; the repository stores them verbatim.
type ActionRecord struct {
	UserID    string
	UserName  string
	UserEmail string
	UserTeam  string

	MCPID   string
	MCPType string
	MCPName string

	ActionID       string
	ActionType     string
	ActionName     string
	ParametersJSON string
	ParameterKeys  []string
	ResultJSON     string
	Status         Status
	Timestamp      time.Time
}

// Transition is an observed "current then next" pair performed by one user
// against one MCP instance
type Transition struct {
	UserID string
	From   Action
	To     Action
	MCP    MCP
}

// Gap returns the elapsed time between the two actions
func (t Transition) Gap() time.Duration {
	return t.To.Timestamp.Sub(t.From.Timestamp)
}

// TransitionQuery selects the reference actions to mine transitions from
type TransitionQuery struct {
	UserID     string
	MCPType    string
	ActionType string
	Window     time.Duration
	// Global mines every user's history instead of UserID's only
	Global bool
}
