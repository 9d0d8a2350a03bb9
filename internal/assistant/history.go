package assistant

import "sync"

// HistoryLimit is the maximum number of exchanges retained locally.
const HistoryLimit = 10

// ConversationHistory is a bounded, ordered record of past exchanges.
// Oldest entries are evicted first once the limit is reached. Mutation is
// single-writer (the orchestrator); Clear may additionally be called from
// a "new conversation" action.
type ConversationHistory struct {
	mu        sync.Mutex
	exchanges []Exchange
}

func NewConversationHistory() *ConversationHistory {
	return &ConversationHistory{
		exchanges: make([]Exchange, 0, HistoryLimit),
	}
}

// Append records a completed exchange, evicting the oldest entry when the
// history is full.
func (h *ConversationHistory) Append(ex Exchange) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.exchanges = append(h.exchanges, ex)
	if len(h.exchanges) > HistoryLimit {
		h.exchanges = h.exchanges[len(h.exchanges)-HistoryLimit:]
	}
}

// RecentWindow returns the last n exchanges, most recent last.
// n is clamped to the current size.
func (h *ConversationHistory) RecentWindow(n int) []Exchange {
	h.mu.Lock()
	defer h.mu.Unlock()
	if n <= 0 {
		return []Exchange{}
	}
	if n > len(h.exchanges) {
		n = len(h.exchanges)
	}
	out := make([]Exchange, n)
	copy(out, h.exchanges[len(h.exchanges)-n:])
	return out
}

// Len returns the current number of retained exchanges.
func (h *ConversationHistory) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.exchanges)
}

// Clear resets the history. It is the only way to shrink it below its
// current size.
func (h *ConversationHistory) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.exchanges = h.exchanges[:0]
}
