package session

import (
	"context"
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"

	"docqa/internal/answerer"
	"docqa/internal/domain"
	"docqa/internal/index"
)

// Session binds one active document set to its built index and answerer.
// It owns the staged copies of the source files and every audio artifact
// synthesized during its lifetime; Close releases all of them.
type Session struct {
	Context string
	Summary string

	chunks   []domain.Chunk
	index    *index.Index
	answerer *answerer.Answerer
	topK     int
	stageDir string
	logger   *zap.Logger

	mu     sync.Mutex
	audio  []string
	closed bool
}

// Ask answers one question against the session's index. The exit
// sentinel is recognized before retrieval and never reaches the
// embedding or generation capabilities.
func (s *Session) Ask(ctx context.Context, question string) (string, error) {
	if answerer.IsExit(question) {
		return answerer.Farewell, nil
	}
	retrieved, err := s.index.Retrieve(ctx, question, s.topK)
	if err != nil {
		return "", fmt.Errorf("retrieve: %w", err)
	}
	return s.answerer.Answer(ctx, question, retrieved)
}

// Chunks returns the chunk sequence the index was built from.
func (s *Session) Chunks() []domain.Chunk { return s.chunks }

// RegisterAudio hands ownership of a synthesized audio file to the
// session, so it is deleted at teardown.
func (s *Session) RegisterAudio(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.audio = append(s.audio, path)
}

// Close removes the session's staged files and audio artifacts. It is
// safe to call more than once.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	if s.stageDir != "" {
		if err := os.RemoveAll(s.stageDir); err != nil {
			s.logger.Warn("removing staged files failed", zap.String("dir", s.stageDir), zap.Error(err))
		}
	}
	for _, path := range s.audio {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			s.logger.Warn("removing audio artifact failed", zap.String("path", path), zap.Error(err))
		}
	}
	s.audio = nil
}
