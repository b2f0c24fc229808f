package language

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultTranslateBaseURL = "https://translate.googleapis.com"

// GoogleTranslator is a minimal client to the public Google Translate
// endpoint. It detects the source language server-side and returns the
// concatenated translated segments.
type GoogleTranslator struct {
	baseURL string
	client  *http.Client
}

// TranslatorConfig configures the translate client.
type TranslatorConfig struct {
	BaseURL string
	Timeout time.Duration
}

func NewGoogleTranslator(cfg TranslatorConfig) *GoogleTranslator {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultTranslateBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 15 * time.Second
	}
	return &GoogleTranslator{
		baseURL: cfg.BaseURL,
		client:  &http.Client{Timeout: cfg.Timeout},
	}
}

// Translate translates text into the target language.
func (t *GoogleTranslator) Translate(ctx context.Context, text, targetLang string) (string, error) {
	q := url.Values{}
	q.Set("client", "gtx")
	q.Set("sl", "auto")
	q.Set("tl", targetLang)
	q.Set("dt", "t")
	q.Set("q", text)
	endpoint := fmt.Sprintf("%s/translate_a/single?%s", t.baseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}
	resp, err := t.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("translate failed: %s", resp.Status)
	}
	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return parseTranslation(payload)
}

// parseTranslation walks the endpoint's nested-array response
// ([[["translated","original",...],...],...]) and joins the translated
// segments.
func parseTranslation(payload []byte) (string, error) {
	var parsed []any
	if err := json.Unmarshal(payload, &parsed); err != nil {
		return "", err
	}
	if len(parsed) == 0 {
		return "", errors.New("empty translation response")
	}
	segments, ok := parsed[0].([]any)
	if !ok {
		return "", errors.New("unexpected translation response shape")
	}
	var sb strings.Builder
	for _, seg := range segments {
		parts, ok := seg.([]any)
		if !ok || len(parts) == 0 {
			continue
		}
		if s, ok := parts[0].(string); ok {
			sb.WriteString(s)
		}
	}
	if sb.Len() == 0 {
		return "", errors.New("no translated segments")
	}
	return sb.String(), nil
}
