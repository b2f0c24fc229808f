package history

import (
	"fmt"
	"os"
	"sync"
)

// Audit is the append-only plain-text interaction record, one
// "USER: <question>" line per exchange. It exists for after-the-fact
// review and is independent of the in-memory chat history.
type Audit struct {
	mu   sync.Mutex
	file *os.File
}

// OpenAudit opens (or creates) the audit file in append mode.
func OpenAudit(path string) (*Audit, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	return &Audit{file: f}, nil
}

// RecordQuestion appends one question line to the audit record.
func (a *Audit) RecordQuestion(question string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	_, err := fmt.Fprintf(a.file, "USER: %s\n", question)
	return err
}

// Close releases the underlying file.
func (a *Audit) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.file.Close()
}
