package speech

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

const defaultTTSBaseURL = "https://translate.google.com"

// maxPartLen is the longest text fragment the endpoint accepts per
// request; longer answers are split at word boundaries and the returned
// MP3 frames concatenated.
const maxPartLen = 180

// GoogleSpeech renders text as MP3 audio through the public Google
// Translate text-to-speech endpoint.
type GoogleSpeech struct {
	baseURL string
	client  *http.Client
}

// Config configures the speech client.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

func New(cfg Config) *GoogleSpeech {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultTTSBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &GoogleSpeech{
		baseURL: cfg.BaseURL,
		client:  &http.Client{Timeout: cfg.Timeout},
	}
}

// Synthesize returns spoken MP3 audio for text in the given language.
// slow selects the endpoint's reduced speaking rate.
func (g *GoogleSpeech) Synthesize(ctx context.Context, text, lang string, slow bool) ([]byte, error) {
	parts := splitParts(text, maxPartLen)
	if len(parts) == 0 {
		return nil, fmt.Errorf("no text to synthesize")
	}
	speed := "1"
	if slow {
		speed = "0.24"
	}
	var audio []byte
	for i, part := range parts {
		q := url.Values{}
		q.Set("ie", "UTF-8")
		q.Set("client", "tw-ob")
		q.Set("tl", lang)
		q.Set("ttsspeed", speed)
		q.Set("total", strconv.Itoa(len(parts)))
		q.Set("idx", strconv.Itoa(i))
		q.Set("textlen", strconv.Itoa(utf8.RuneCountInString(part)))
		q.Set("q", part)
		endpoint := fmt.Sprintf("%s/translate_tts?%s", g.baseURL, q.Encode())

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		resp, err := g.client.Do(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode >= 300 {
			resp.Body.Close()
			return nil, fmt.Errorf("tts failed: %s", resp.Status)
		}
		data, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, err
		}
		audio = append(audio, data...)
	}
	return audio, nil
}

// splitParts breaks text into fragments no longer than limit runes,
// preferring word boundaries. A single word longer than the limit is
// hard-split so no fragment ever exceeds it.
func splitParts(text string, limit int) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	var parts []string
	var cur []rune
	flush := func() {
		if len(cur) > 0 {
			parts = append(parts, string(cur))
			cur = cur[:0]
		}
	}
	for _, w := range strings.Fields(text) {
		word := []rune(w)
		if len(word) > limit {
			flush()
			for len(word) > limit {
				parts = append(parts, string(word[:limit]))
				word = word[limit:]
			}
			cur = append(cur, word...)
			continue
		}
		if len(cur) > 0 && len(cur)+1+len(word) > limit {
			flush()
		}
		if len(cur) > 0 {
			cur = append(cur, ' ')
		}
		cur = append(cur, word...)
	}
	flush()
	return parts
}
