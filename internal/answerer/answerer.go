package answerer

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"docqa/internal/domain"
	"docqa/internal/history"
)

// promptTemplate instructs the model to answer from document content
// only; the retrieved chunks are substituted as the context block.
const promptTemplate = `Understand the contents in the document and answer the questions
Context:
%s
Question: %s
Helpful Answer:`

// Farewell is the canned reply to the exit sentinel.
const Farewell = "Goodbye! Feel free to start a new session anytime."

// IsExit reports whether the question is the control sentinel that ends
// a conversation. It is matched trimmed and case-insensitively, and must
// be checked before any retrieval or generation call.
func IsExit(question string) bool {
	return strings.EqualFold(strings.TrimSpace(question), "exit")
}

// Answerer turns a question plus its retrieved chunks into a grounded
// answer through the generation capability.
type Answerer struct {
	generator domain.Generator
	audit     *history.Audit
	logger    *zap.Logger
}

func New(generator domain.Generator, audit *history.Audit, logger *zap.Logger) *Answerer {
	return &Answerer{generator: generator, audit: audit, logger: logger}
}

// Answer assembles the prompt from the retrieved chunks (closest first)
// and the verbatim question, records the question in the audit log, and
// invokes generation. The exit sentinel short-circuits to the farewell
// without touching the generation capability.
func (a *Answerer) Answer(ctx context.Context, question string, retrieved []domain.ScoredChunk) (string, error) {
	if IsExit(question) {
		return Farewell, nil
	}
	if a.audit != nil {
		if err := a.audit.RecordQuestion(question); err != nil {
			a.logger.Warn("audit write failed", zap.Error(err))
		}
	}
	answer, err := a.generator.Generate(ctx, BuildPrompt(question, retrieved))
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrGenerationFailed, err)
	}
	return answer, nil
}

// BuildPrompt substitutes the context block and question into the fixed
// template. Exported so prompt assembly can be asserted in tests.
func BuildPrompt(question string, retrieved []domain.ScoredChunk) string {
	texts := make([]string, len(retrieved))
	for i, sc := range retrieved {
		texts[i] = sc.Chunk.Text
	}
	return fmt.Sprintf(promptTemplate, strings.Join(texts, "\n\n"), question)
}
