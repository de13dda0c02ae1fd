package repl

// MaxHistory is the number of turns a session remembers.
const MaxHistory = 5

// SessionContext maintains state across queries.
type SessionContext struct {
	ConversationHistory []ConversationTurn
}

// ConversationTurn represents a single query-response cycle.
type ConversationTurn struct {
	Query       string
	ResultCount int
}

// NewSessionContext creates a new session context.
func NewSessionContext() *SessionContext {
	return &SessionContext{
		ConversationHistory: make([]ConversationTurn, 0),
	}
}

// AddTurn appends a turn to the history, keeping the last MaxHistory.
func (s *SessionContext) AddTurn(turn ConversationTurn) {
	s.ConversationHistory = append(s.ConversationHistory, turn)
	if len(s.ConversationHistory) > MaxHistory {
		s.ConversationHistory = s.ConversationHistory[len(s.ConversationHistory)-MaxHistory:]
	}
}

// HasContext returns true if there is previous query context.
func (s *SessionContext) HasContext() bool {
	return len(s.ConversationHistory) > 0
}

// LastQuery returns the most recent query, or "".
func (s *SessionContext) LastQuery() string {
	if len(s.ConversationHistory) == 0 {
		return ""
	}
	return s.ConversationHistory[len(s.ConversationHistory)-1].Query
}
