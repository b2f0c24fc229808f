package language

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"docqa/internal/answerer"
	"docqa/internal/domain"
	"docqa/internal/session"
)

// Outcome is the tagged result of a soft-failing capability call.
// Degraded means the original text was carried through after a failure;
// callers decide how to surface the reason.
type Outcome struct {
	Text     string
	Degraded bool
	Reason   string
}

// Options selects the languages and speech behavior for one question.
type Options struct {
	InputLang  string
	AutoDetect bool
	OutputLang string
	Speak      bool
	Slow       bool
}

// Exchange is one delivered question/answer round trip, including the
// degradation warnings accumulated along the way.
type Exchange struct {
	Question   string
	Answer     string
	InputLang  string
	OutputLang string
	AudioPath  string
	AskedAt    time.Time
	Warnings   []string
}

// Router wraps the session's question/answer cycle with the
// multilingual round trip: detect, translate into the pivot, answer,
// translate out, and optionally synthesize speech. Translation and
// synthesis fail soft; only generation failures abort the exchange.
type Router struct {
	pivot      string
	detector   *Detector
	translator domain.Translator
	synth      domain.Synthesizer
	audioDir   string
	logger     *zap.Logger
	now        func() time.Time
}

// RouterConfig assembles a Router. Translator and Synthesizer may be
// nil, in which case the corresponding stage degrades or is skipped.
type RouterConfig struct {
	Pivot      string
	Translator domain.Translator
	Synth      domain.Synthesizer
	AudioDir   string
	Logger     *zap.Logger
}

func NewRouter(cfg RouterConfig) *Router {
	if cfg.Pivot == "" {
		cfg.Pivot = PivotLang
	}
	if cfg.AudioDir == "" {
		cfg.AudioDir = "audio"
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Router{
		pivot:      cfg.Pivot,
		detector:   NewDetector(cfg.Pivot),
		translator: cfg.Translator,
		synth:      cfg.Synth,
		audioDir:   cfg.AudioDir,
		logger:     cfg.Logger,
		now:        time.Now,
	}
}

// Ask drives one question through the round trip against the given
// session. The exit sentinel bypasses every capability. The returned
// Exchange always reflects the best available result: a failed
// translation falls back to the untranslated text and a failed
// synthesis yields a text-only answer, both with a warning.
func (r *Router) Ask(ctx context.Context, sess *session.Session, question string, opts Options) (*Exchange, error) {
	ex := &Exchange{Question: question, AskedAt: r.now()}

	if answerer.IsExit(question) {
		ex.InputLang = r.pivot
		ex.OutputLang = r.pivot
		ex.Answer = answerer.Farewell
		return ex, nil
	}

	if opts.AutoDetect || opts.InputLang == "" {
		ex.InputLang = r.detector.Detect(question)
	} else {
		ex.InputLang = opts.InputLang
	}

	pivotQuestion := question
	if ex.InputLang != r.pivot {
		out := r.translate(ctx, question, r.pivot)
		pivotQuestion = out.Text
		if out.Degraded {
			ex.Warnings = append(ex.Warnings, "question used untranslated: "+out.Reason)
		}
	}

	answer, err := sess.Ask(ctx, pivotQuestion)
	if err != nil {
		return nil, err
	}

	ex.OutputLang = opts.OutputLang
	if ex.OutputLang == "" {
		ex.OutputLang = r.pivot
	}
	if ex.OutputLang != r.pivot {
		out := r.translate(ctx, answer, ex.OutputLang)
		answer = out.Text
		if out.Degraded {
			ex.Warnings = append(ex.Warnings, "answer left in pivot language: "+out.Reason)
		}
	}
	ex.Answer = answer

	if opts.Speak {
		path, err := r.synthesize(ctx, answer, ex.OutputLang, opts.Slow)
		if err != nil {
			r.logger.Warn("synthesis degraded to text-only", zap.Error(err))
			ex.Warnings = append(ex.Warnings, "no audio: "+err.Error())
		} else {
			ex.AudioPath = path
			sess.RegisterAudio(path)
		}
	}
	return ex, nil
}

// translate is the soft-failing translation step: on any failure the
// original text is carried through as a Degraded outcome.
func (r *Router) translate(ctx context.Context, text, target string) Outcome {
	if r.translator == nil {
		return Outcome{Text: text, Degraded: true, Reason: "no translation capability"}
	}
	translated, err := r.translator.Translate(ctx, text, target)
	if err != nil {
		r.logger.Warn("translation degraded", zap.String("target", target), zap.Error(err))
		return Outcome{Text: text, Degraded: true, Reason: err.Error()}
	}
	return Outcome{Text: translated}
}

func (r *Router) synthesize(ctx context.Context, text, lang string, slow bool) (string, error) {
	if r.synth == nil {
		return "", fmt.Errorf("no synthesis capability")
	}
	audio, err := r.synth.Synthesize(ctx, text, lang, slow)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(r.audioDir, 0o755); err != nil {
		return "", err
	}
	name := fmt.Sprintf("speech_%s.mp3", r.now().Format("20060102_150405"))
	path := filepath.Join(r.audioDir, name)
	if err := os.WriteFile(path, audio, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
