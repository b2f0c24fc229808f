package language

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"docqa/internal/answerer"
	"docqa/internal/chunker"
	"docqa/internal/embedding/tfidf"
	"docqa/internal/session"
)

type stubGenerator struct {
	prompt string
	reply  string
	calls  int
}

func (s *stubGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	s.calls++
	s.prompt = prompt
	return s.reply, nil
}

type stubTranslator struct {
	calls  int
	fail   bool
	target string
}

func (s *stubTranslator) Translate(ctx context.Context, text, targetLang string) (string, error) {
	s.calls++
	s.target = targetLang
	if s.fail {
		return "", errors.New("translation service down")
	}
	return "<" + targetLang + ">" + text, nil
}

type stubSynth struct {
	fail  bool
	calls int
}

func (s *stubSynth) Synthesize(ctx context.Context, text, lang string, slow bool) ([]byte, error) {
	s.calls++
	if s.fail {
		return nil, errors.New("tts down")
	}
	return []byte("mp3-bytes"), nil
}

func newTestSession(t *testing.T, gen *stubGenerator, content string) *session.Session {
	t.Helper()
	m := session.NewManager(session.Config{
		Chunker:  chunker.New(200, 20),
		Embedder: tfidf.NewEmbedder(),
		Answerer: answerer.New(gen, nil, zap.NewNop()),
		TempDir:  t.TempDir(),
		Logger:   zap.NewNop(),
	})
	var paths []string
	if content != "" {
		p := filepath.Join(t.TempDir(), "doc.txt")
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
		paths = []string{p}
	}
	sess, err := m.Activate(context.Background(), paths)
	require.NoError(t, err)
	return sess
}

func TestAsk_PivotInputIsPassedThroughVerbatim(t *testing.T) {
	gen := &stubGenerator{reply: "Paris"}
	sess := newTestSession(t, gen, "Paris is the capital of France.")
	tr := &stubTranslator{}
	r := NewRouter(RouterConfig{Translator: tr, Logger: zap.NewNop()})

	question := "What is the capital of France?"
	ex, err := r.Ask(context.Background(), sess, question, Options{InputLang: "en"})
	require.NoError(t, err)
	require.Equal(t, "en", ex.InputLang)
	require.Equal(t, "en", ex.OutputLang)
	require.Zero(t, tr.calls, "pivot input must skip TranslateIn")
	require.Contains(t, gen.prompt, question, "question must reach the answerer unmodified")
	require.Equal(t, "Paris", ex.Answer)
	require.Empty(t, ex.Warnings)
}

func TestAsk_NonPivotInputIsTranslatedIn(t *testing.T) {
	gen := &stubGenerator{reply: "ok"}
	sess := newTestSession(t, gen, "some document text here.")
	tr := &stubTranslator{}
	r := NewRouter(RouterConfig{Translator: tr, Logger: zap.NewNop()})

	_, err := r.Ask(context.Background(), sess, "¿cuál es la capital?", Options{InputLang: "es"})
	require.NoError(t, err)
	require.Equal(t, 1, tr.calls)
	require.Contains(t, gen.prompt, "<en>¿cuál es la capital?")
}

func TestAsk_TranslateOutToRequestedLanguage(t *testing.T) {
	gen := &stubGenerator{reply: "the answer"}
	sess := newTestSession(t, gen, "some document text here.")
	tr := &stubTranslator{}
	r := NewRouter(RouterConfig{Translator: tr, Logger: zap.NewNop()})

	ex, err := r.Ask(context.Background(), sess, "a question", Options{InputLang: "en", OutputLang: "fr"})
	require.NoError(t, err)
	require.Equal(t, "fr", ex.OutputLang)
	require.Equal(t, "<fr>the answer", ex.Answer)
}

func TestAsk_TranslationFailureDegradesNotDrops(t *testing.T) {
	gen := &stubGenerator{reply: "the answer"}
	sess := newTestSession(t, gen, "some document text here.")
	tr := &stubTranslator{fail: true}
	r := NewRouter(RouterConfig{Translator: tr, Logger: zap.NewNop()})

	ex, err := r.Ask(context.Background(), sess, "une question", Options{InputLang: "fr", OutputLang: "fr"})
	require.NoError(t, err, "translation failure must not fail the exchange")
	require.Equal(t, "the answer", ex.Answer)
	require.NotEmpty(t, ex.Warnings)
	require.Contains(t, gen.prompt, "une question", "untranslated question is used")
}

func TestAsk_SynthesisWritesOwnedArtifact(t *testing.T) {
	gen := &stubGenerator{reply: "spoken answer"}
	sess := newTestSession(t, gen, "some document text here.")
	audioDir := t.TempDir()
	r := NewRouter(RouterConfig{Synth: &stubSynth{}, AudioDir: audioDir, Logger: zap.NewNop()})

	ex, err := r.Ask(context.Background(), sess, "a question", Options{InputLang: "en", Speak: true})
	require.NoError(t, err)
	require.NotEmpty(t, ex.AudioPath)
	data, err := os.ReadFile(ex.AudioPath)
	require.NoError(t, err)
	require.Equal(t, "mp3-bytes", string(data))

	// The session owns the artifact and removes it at teardown.
	sess.Close()
	_, statErr := os.Stat(ex.AudioPath)
	require.True(t, os.IsNotExist(statErr))
}

func TestAsk_SynthesisFailureDegradesToTextOnly(t *testing.T) {
	gen := &stubGenerator{reply: "still an answer"}
	sess := newTestSession(t, gen, "some document text here.")
	r := NewRouter(RouterConfig{Synth: &stubSynth{fail: true}, AudioDir: t.TempDir(), Logger: zap.NewNop()})

	ex, err := r.Ask(context.Background(), sess, "a question", Options{InputLang: "en", Speak: true})
	require.NoError(t, err)
	require.Equal(t, "still an answer", ex.Answer)
	require.Empty(t, ex.AudioPath)
	require.NotEmpty(t, ex.Warnings)
}

func TestAsk_ExitBypassesAllCapabilities(t *testing.T) {
	gen := &stubGenerator{}
	sess := newTestSession(t, gen, "some document text here.")
	tr := &stubTranslator{}
	synth := &stubSynth{}
	r := NewRouter(RouterConfig{Translator: tr, Synth: synth, Logger: zap.NewNop()})

	ex, err := r.Ask(context.Background(), sess, " Exit ", Options{AutoDetect: true, OutputLang: "fr", Speak: true})
	require.NoError(t, err)
	require.Equal(t, answerer.Farewell, ex.Answer)
	require.Zero(t, gen.calls)
	require.Zero(t, tr.calls)
	require.Zero(t, synth.calls)
}

func TestDetector_DefaultsToPivot(t *testing.T) {
	d := NewDetector("en")
	require.Equal(t, "en", d.Detect(""))
	require.Equal(t, "en", d.Detect("   "))
}

func TestDetector_DetectsCyrillic(t *testing.T) {
	d := NewDetector("en")
	require.Equal(t, "ru", d.Detect("Какая столица Франции и где она находится?"))
}
