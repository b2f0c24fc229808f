package index

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"docqa/internal/domain"
	"docqa/internal/embedding/tfidf"
)

// stubEmbedder returns fixed vectors per text and counts calls.
type stubEmbedder struct {
	vectors map[string][]float64
	fail    bool
	calls   int
}

func (s *stubEmbedder) Name() string { return "stub" }
func (s *stubEmbedder) Prepare(corpus []string) error { return nil }
func (s *stubEmbedder) Dimension() int { return 2 }

func (s *stubEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	s.calls++
	if s.fail {
		return nil, errors.New("capability unreachable")
	}
	if v, ok := s.vectors[text]; ok {
		return v, nil
	}
	return []float64{1, 0}, nil
}

func chunksOf(texts ...string) []domain.Chunk {
	chunks := make([]domain.Chunk, len(texts))
	for i, t := range texts {
		chunks[i] = domain.Chunk{Text: t, Ordinal: i}
	}
	return chunks
}

func TestBuild_FailsWithoutPartialIndex(t *testing.T) {
	emb := &stubEmbedder{fail: true}
	ix, err := Build(context.Background(), chunksOf("a", "b"), emb)
	require.ErrorIs(t, err, domain.ErrEmbeddingUnavailable)
	require.Nil(t, ix)
}

func TestRetrieve_OrderedByDistance(t *testing.T) {
	emb := &stubEmbedder{vectors: map[string][]float64{
		"near":    {1, 0},
		"mid":     {1, 1},
		"far":     {0, 1},
		"<query>": {1, 0},
	}}
	ix, err := Build(context.Background(), chunksOf("far", "near", "mid"), emb)
	require.NoError(t, err)

	got, err := ix.Retrieve(context.Background(), "<query>", 3)
	require.NoError(t, err)
	require.Len(t, got, 3)
	require.Equal(t, "near", got[0].Chunk.Text)
	require.Equal(t, "mid", got[1].Chunk.Text)
	require.Equal(t, "far", got[2].Chunk.Text)
	for i := 1; i < len(got); i++ {
		require.GreaterOrEqual(t, got[i].Distance, got[i-1].Distance)
	}
}

func TestRetrieve_TiesResolveByOrdinal(t *testing.T) {
	// All chunks share one vector, so every distance ties.
	emb := &stubEmbedder{vectors: map[string][]float64{}}
	ix, err := Build(context.Background(), chunksOf("c0", "c1", "c2", "c3"), emb)
	require.NoError(t, err)

	got, err := ix.Retrieve(context.Background(), "anything", 4)
	require.NoError(t, err)
	for i, sc := range got {
		require.Equal(t, i, sc.Chunk.Ordinal)
	}
}

func TestRetrieve_AtMostK(t *testing.T) {
	emb := &stubEmbedder{}
	ix, err := Build(context.Background(), chunksOf("a", "b", "c"), emb)
	require.NoError(t, err)

	got, err := ix.Retrieve(context.Background(), "q", 2)
	require.NoError(t, err)
	require.Len(t, got, 2)

	got, err = ix.Retrieve(context.Background(), "q", 10)
	require.NoError(t, err)
	require.Len(t, got, 3)
}

func TestRetrieve_EmptyIndex(t *testing.T) {
	emb := &stubEmbedder{}
	ix, err := Build(context.Background(), nil, emb)
	require.NoError(t, err)

	got, err := ix.Retrieve(context.Background(), "q", 5)
	require.NoError(t, err)
	require.Empty(t, got)
	// No chunks means the query is never embedded either.
	require.Zero(t, emb.calls)
}

func TestWrapCache_SkipsRepeatedEmbeds(t *testing.T) {
	emb := &stubEmbedder{}
	cached := WrapCache(emb, 16, time.Minute)

	v1, err := cached.Embed(context.Background(), "same question")
	require.NoError(t, err)
	v2, err := cached.Embed(context.Background(), "same question")
	require.NoError(t, err)
	require.Equal(t, v1, v2)
	require.Equal(t, 1, emb.calls)
}

func TestWrapCache_PrepareDropsCachedVectors(t *testing.T) {
	emb := tfidf.NewEmbedder()
	cached := WrapCache(emb, 16, time.Minute)
	require.NoError(t, cached.Prepare([]string{"paris is the capital"}))

	v1, err := cached.Embed(context.Background(), "capital city")
	require.NoError(t, err)

	// A reload re-prepares over a different corpus with a larger
	// vocabulary. Vectors cached against the old space must not be
	// served against the new one.
	require.NoError(t, cached.Prepare([]string{
		"berlin is the capital of germany",
		"madrid is the capital of spain",
		"rome hosts the vatican museums",
	}))
	v2, err := cached.Embed(context.Background(), "capital city")
	require.NoError(t, err)
	require.NotEqual(t, len(v1), len(v2))

	direct, err := emb.Embed(context.Background(), "capital city")
	require.NoError(t, err)
	require.Equal(t, direct, v2)
}

func TestWrapCache_Disabled(t *testing.T) {
	emb := &stubEmbedder{}
	require.Equal(t, domain.Embedder(emb), WrapCache(emb, 0, time.Minute))
}
