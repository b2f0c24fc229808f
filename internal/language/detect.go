package language

import (
	"strings"

	"github.com/abadojack/whatlanggo"
)

// Detector guesses the language of a question. Detection never fails a
// request: anything unrecognizable is treated as the pivot language.
type Detector struct {
	pivot string
}

func NewDetector(pivot string) *Detector {
	if pivot == "" {
		pivot = PivotLang
	}
	return &Detector{pivot: pivot}
}

// Detect returns the ISO 639-1 code of the text's language, or the
// pivot when the text is empty or the script cannot be classified.
func (d *Detector) Detect(text string) string {
	if strings.TrimSpace(text) == "" {
		return d.pivot
	}
	info := whatlanggo.Detect(text)
	code := info.Lang.Iso6391()
	if code == "" {
		return d.pivot
	}
	return code
}
