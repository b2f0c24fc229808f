package summarizer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSummarize_PicksFrequentTopicSentences(t *testing.T) {
	text := "Solar panels convert sunlight into electricity. " +
		"Solar energy output depends on panel placement. " +
		"My cat sleeps a lot. " +
		"Solar installations keep growing every year."
	s := New()
	summary := s.Summarize(text, 2)
	sentences := strings.Count(summary, ".")
	require.LessOrEqual(t, sentences, 2)
	require.Contains(t, strings.ToLower(summary), "solar")
}

func TestSummarize_ShortTextPassesThrough(t *testing.T) {
	s := New()
	require.Equal(t, "no sentence punctuation", s.Summarize("no sentence punctuation", 3))
	require.Equal(t, "", s.Summarize("", 3))
}

func TestSummarize_KeepsOriginalOrder(t *testing.T) {
	text := "Alpha topic first. Beta topic second. Alpha again here. Beta again there."
	s := New()
	summary := s.Summarize(text, 4)
	require.Equal(t, strings.TrimSpace(text), summary)
}
