package assistant

import (
	"math"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// SessionSummary is a point-in-time view of the session analytics.
type SessionSummary struct {
	SessionDurationMinutes float64  `json:"sessionDurationMinutes"`
	InteractionCount       int      `json:"interactionCount"`
	TopIntents             []string `json:"topIntents"`
}

// SessionContext owns the per-conversation identifier and running analytics
// counters. It lives exactly as long as the orchestrator that holds it and
// is never persisted.
type SessionContext struct {
	mu               sync.Mutex
	id               string
	start            time.Time
	interactionCount int
	intentCounts     map[string]int
	intentOrder      []string // first-seen order, for deterministic ties
	nowFn            func() time.Time
}

func NewSessionContext() *SessionContext {
	now := time.Now()
	return &SessionContext{
		start:        now,
		intentCounts: make(map[string]int),
		nowFn:        time.Now,
	}
}

// SessionID returns the stable session identifier, created lazily on first
// access and reused thereafter.
func (s *SessionContext) SessionID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.id == "" {
		s.id = uuid.NewString()
	}
	return s.id
}

// RecordInteraction increments the interaction counter and, when an intent
// was detected, its per-intent bucket.
func (s *SessionContext) RecordInteraction(intent string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.interactionCount++
	if intent == "" {
		return
	}
	if _, seen := s.intentCounts[intent]; !seen {
		s.intentOrder = append(s.intentOrder, intent)
	}
	s.intentCounts[intent]++
}

// Summary reports session duration in minutes (rounded to one decimal),
// the interaction count, and the top three intents by count. Ties are
// broken by first-seen order.
func (s *SessionContext) Summary() SessionSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	minutes := s.nowFn().Sub(s.start).Minutes()
	minutes = math.Round(minutes*10) / 10

	top := make([]string, len(s.intentOrder))
	copy(top, s.intentOrder)
	sort.SliceStable(top, func(i, j int) bool {
		return s.intentCounts[top[i]] > s.intentCounts[top[j]]
	})
	if len(top) > 3 {
		top = top[:3]
	}

	return SessionSummary{
		SessionDurationMinutes: minutes,
		InteractionCount:       s.interactionCount,
		TopIntents:             top,
	}
}
