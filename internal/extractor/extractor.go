package extractor

import (
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"docqa/internal/domain"
)

// extractFunc converts one file of a known format into plain text.
type extractFunc func(path string) (string, error)

// formats is the closed set of supported format variants. Adding a
// format means adding an entry here, not extending a conditional chain.
var formats = map[domain.Format]extractFunc{
	domain.FormatPDF:  extractPDF,
	domain.FormatTXT:  extractTXT,
	domain.FormatCSV:  extractCSV,
	domain.FormatJSON: extractJSON,
}

// DetectFormat maps a file path to its format by extension,
// case-insensitively. The second result is false for unknown extensions.
func DetectFormat(path string) (domain.Format, bool) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	f := domain.Format(ext)
	_, ok := formats[f]
	return f, ok
}

// Extract converts a single file into plain text based on its extension.
func Extract(path string) (string, error) {
	format, ok := DetectFormat(path)
	if !ok {
		return "", fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, path)
	}
	text, err := formats[format](path)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", domain.ErrExtraction, path, err)
	}
	return text, nil
}

// FileResult reports the outcome of extracting one file of a batch.
type FileResult struct {
	Path string
	Err  error
}

// ExtractAll extracts every file and joins the successful texts, in
// upload order, into a single context string. A failing document is
// logged and reported in the results but never aborts the batch.
func ExtractAll(paths []string, logger *zap.Logger) (string, []FileResult) {
	var texts []string
	results := make([]FileResult, 0, len(paths))
	for _, p := range paths {
		text, err := Extract(p)
		results = append(results, FileResult{Path: p, Err: err})
		if err != nil {
			logger.Warn("document skipped", zap.String("path", p), zap.Error(err))
			continue
		}
		logger.Info("document processed", zap.String("path", p), zap.Int("chars", len(text)))
		texts = append(texts, text)
	}
	return strings.Join(texts, "\n\n"), results
}
