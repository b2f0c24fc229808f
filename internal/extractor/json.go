package extractor

import (
	"encoding/json"
	"os"
)

// extractJSON parses the document and re-serializes it with stable
// indentation so structural information survives chunking. Empty or
// unparsable documents yield an empty string, never an error.
func extractJSON(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	var parsed any
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", nil
	}
	if isEmptyValue(parsed) {
		return "", nil
	}
	out, err := json.MarshalIndent(parsed, "", "    ")
	if err != nil {
		return "", nil
	}
	return string(out), nil
}

func isEmptyValue(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case map[string]any:
		return len(t) == 0
	case []any:
		return len(t) == 0
	}
	return false
}
