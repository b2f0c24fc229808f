package history

import (
	"sync"

	"docqa/internal/domain"
)

// Log is the in-memory chat history: an append-only ordered sequence of
// exchanges. Entries are never mutated after they are added.
type Log struct {
	mu      sync.Mutex
	entries []domain.ChatEntry
}

func NewLog() *Log { return &Log{} }

// Append records a completed exchange.
func (l *Log) Append(e domain.ChatEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, e)
}

// Entries returns a snapshot of the history, most recent first, which is
// the display order.
func (l *Log) Entries() []domain.ChatEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]domain.ChatEntry, len(l.entries))
	for i, e := range l.entries {
		out[len(l.entries)-1-i] = e
	}
	return out
}

// Len reports the number of recorded exchanges.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
