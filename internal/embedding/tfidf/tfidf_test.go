package tfidf

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEmbed_RequiresPrepare(t *testing.T) {
	e := NewEmbedder()
	_, err := e.Embed(context.Background(), "text")
	require.Error(t, err)
}

func TestPrepare_EmptyCorpusIsValid(t *testing.T) {
	e := NewEmbedder()
	require.NoError(t, e.Prepare(nil))
	require.Zero(t, e.Dimension())

	vec, err := e.Embed(context.Background(), "anything")
	require.NoError(t, err)
	require.Empty(t, vec)
}

func TestEmbed_SimilarTextsScoreCloser(t *testing.T) {
	e := NewEmbedder()
	corpus := []string{
		"Paris is the capital of France.",
		"Berlin is the capital of Germany.",
		"Whales live in the ocean.",
	}
	require.NoError(t, e.Prepare(corpus))
	require.Greater(t, e.Dimension(), 0)

	q, err := e.Embed(context.Background(), "capital of France")
	require.NoError(t, err)
	paris, err := e.Embed(context.Background(), corpus[0])
	require.NoError(t, err)
	whales, err := e.Embed(context.Background(), corpus[2])
	require.NoError(t, err)

	require.Greater(t, dot(q, paris), dot(q, whales))
}

func TestEmbed_Normalized(t *testing.T) {
	e := NewEmbedder()
	require.NoError(t, e.Prepare([]string{"alpha beta gamma", "beta gamma delta"}))
	vec, err := e.Embed(context.Background(), "alpha beta")
	require.NoError(t, err)
	require.InDelta(t, 1.0, dot(vec, vec), 1e-9)
}

func dot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
