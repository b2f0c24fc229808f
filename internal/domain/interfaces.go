package domain

import (
	"context"
	"time"
)

// Format identifies a supported document format. The set is closed:
// dispatch on a Format is a table lookup, not an extension-sniffing chain.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatTXT  Format = "txt"
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// Document is a single user-supplied file queued for extraction.
// Immutable once read; its staged copy is removed at session teardown.
type Document struct {
	Path   string
	Format Format
}

// Chunk is a bounded segment of the document-set context, overlapping
// with its neighbors. Ordinal records split order; retrieval order is
// similarity-based, the ordinal only breaks distance ties.
type Chunk struct {
	Text    string
	Ordinal int
}

// ScoredChunk is a retrieved chunk with its embedding distance to the
// query (smaller is closer).
type ScoredChunk struct {
	Chunk    Chunk
	Distance float64
}

// ChatEntry is one completed question/answer exchange. Entries are
// append-only and never mutated after creation.
type ChatEntry struct {
	Question   string
	Answer     string
	InputLang  string
	OutputLang string
	AudioPath  string
	AskedAt    time.Time
}

// Embedder converts free text into a numeric vector representation.
// Implementations may require a preparation phase over the corpus.
type Embedder interface {
	Name() string
	Prepare(corpus []string) error
	Dimension() int
	Embed(ctx context.Context, text string) ([]float64, error)
}

// Generator produces an answer from a fully assembled prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Translator translates text into the target language (ISO 639-1 code).
type Translator interface {
	Translate(ctx context.Context, text, targetLang string) (string, error)
}

// Synthesizer renders text as spoken audio in the given language.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, lang string, slow bool) ([]byte, error)
}
