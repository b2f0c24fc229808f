package language

// PivotLang is the internal working language: questions are normalized
// to it before retrieval and generation, and answers translated out of
// it afterwards.
const PivotLang = "en"

// Supported maps display names to ISO 639-1 codes for every language
// the router offers for input, output and speech.
var Supported = map[string]string{
	"English":            "en",
	"Spanish":            "es",
	"French":             "fr",
	"German":             "de",
	"Italian":            "it",
	"Portuguese":         "pt",
	"Russian":            "ru",
	"Japanese":           "ja",
	"Korean":             "ko",
	"Chinese (Mandarin)": "zh-cn",
	"Hindi":              "hi",
	"Arabic":             "ar",
	"Bengali":            "bn",
	"Thai":               "th",
	"Turkish":            "tr",
	"Vietnamese":         "vi",
	"Tamil":              "ta",
}

// Code resolves a display name to its language code.
func Code(name string) (string, bool) {
	code, ok := Supported[name]
	return code, ok
}

// IsSupported reports whether code is one of the offered languages.
func IsSupported(code string) bool {
	for _, c := range Supported {
		if c == code {
			return true
		}
	}
	return false
}
