package session

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"docqa/internal/answerer"
	"docqa/internal/chunker"
	"docqa/internal/domain"
	"docqa/internal/extractor"
	"docqa/internal/index"
	"docqa/internal/summarizer"
)

// Manager owns the single active session. Activation runs the full
// pipeline (stage -> extract -> chunk -> build index -> bind answerer)
// and is all-or-nothing: on any failure the previously active session
// stays current. A successful activation atomically replaces and tears
// down the old session.
type Manager struct {
	chunker    *chunker.RecursiveChunker
	embedder   domain.Embedder
	answerer   *answerer.Answerer
	summarizer *summarizer.FrequencySummarizer
	tempDir    string
	topK       int
	logger     *zap.Logger

	mu      sync.Mutex
	current *Session
}

// Config assembles a Manager from its collaborators.
type Config struct {
	Chunker  *chunker.RecursiveChunker
	Embedder domain.Embedder
	Answerer *answerer.Answerer
	TempDir  string
	TopK     int
	Logger   *zap.Logger
}

func NewManager(cfg Config) *Manager {
	if cfg.TopK <= 0 {
		cfg.TopK = index.DefaultTopK
	}
	if cfg.TempDir == "" {
		cfg.TempDir = os.TempDir()
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Manager{
		chunker:    cfg.Chunker,
		embedder:   cfg.Embedder,
		answerer:   cfg.Answerer,
		summarizer: summarizer.New(),
		tempDir:    cfg.TempDir,
		topK:       cfg.TopK,
		logger:     cfg.Logger,
	}
}

// Activate builds a session from the given files. Per-document
// extraction failures are tolerated (the batch continues with the rest);
// an index build failure aborts activation with no visible side effect.
// An empty document list yields a valid session with an empty context.
func (m *Manager) Activate(ctx context.Context, paths []string) (*Session, error) {
	stageDir, staged, err := m.stage(paths)
	if err != nil {
		return nil, err
	}

	text, results := extractor.ExtractAll(staged, m.logger)
	for _, r := range results {
		if r.Err != nil {
			m.logger.Warn("document excluded from context", zap.String("path", r.Path), zap.Error(r.Err))
		}
	}

	chunks := m.chunker.Split(text)
	ix, err := index.Build(ctx, chunks, m.embedder)
	if err != nil {
		os.RemoveAll(stageDir)
		return nil, err
	}

	s := &Session{
		Context:  text,
		Summary:  m.summarizer.Summarize(text, 3),
		chunks:   chunks,
		index:    ix,
		answerer: m.answerer,
		topK:     m.topK,
		stageDir: stageDir,
		logger:   m.logger,
	}

	m.mu.Lock()
	old := m.current
	m.current = s
	m.mu.Unlock()
	if old != nil {
		old.Close()
	}
	m.logger.Info("session activated",
		zap.Int("documents", len(paths)),
		zap.Int("chunks", len(chunks)),
		zap.Int("context_chars", len(text)))
	return s, nil
}

// Current returns the active session, or nil when none is active. This
// is the only way other components observe active state.
func (m *Manager) Current() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Deactivate tears down the active session, if any.
func (m *Manager) Deactivate() {
	m.mu.Lock()
	old := m.current
	m.current = nil
	m.mu.Unlock()
	if old != nil {
		old.Close()
	}
}

// stage copies the source files into a per-session directory, so the
// originals can disappear while the session lives and teardown has one
// directory to remove. A file that cannot be staged is carried through
// to extraction, which reports it as a per-document failure.
func (m *Manager) stage(paths []string) (string, []string, error) {
	if err := os.MkdirAll(m.tempDir, 0o755); err != nil {
		return "", nil, err
	}
	dir, err := os.MkdirTemp(m.tempDir, "docset-*")
	if err != nil {
		return "", nil, err
	}
	staged := make([]string, 0, len(paths))
	for _, p := range paths {
		dst := filepath.Join(dir, filepath.Base(p))
		if err := copyFile(p, dst); err != nil {
			m.logger.Warn("staging failed, using original path", zap.String("path", p), zap.Error(err))
			staged = append(staged, p)
			continue
		}
		staged = append(staged, dst)
	}
	return dir, staged, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()
	_, err = io.Copy(out, in)
	return err
}
