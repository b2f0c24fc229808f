package extractor

import (
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// extractTXT reads the file as UTF-8 and falls back to a Latin-1 decode
// when the bytes are not valid UTF-8, so a single legacy-encoded file
// does not fail the batch.
func extractTXT(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if utf8.Valid(data) {
		return string(data), nil
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}
