package index

import (
	"context"
	"fmt"
	"math"
	"sort"

	"docqa/internal/domain"
)

// Index holds one embedding vector per chunk and answers nearest-
// neighbor queries by cosine distance. It is immutable after Build;
// concurrent Retrieve calls share it safely because nothing mutates.
type Index struct {
	embedder  domain.Embedder
	chunks    []domain.Chunk
	vectors   [][]float64
	dimension int
}

// DefaultTopK is the retrieval depth used when the caller passes k <= 0.
const DefaultTopK = 5

// Build embeds every chunk and constructs the index. Any embedding
// failure aborts the build: a partial index is never returned.
func Build(ctx context.Context, chunks []domain.Chunk, embedder domain.Embedder) (*Index, error) {
	corpus := make([]string, len(chunks))
	for i, ch := range chunks {
		corpus[i] = ch.Text
	}
	if err := embedder.Prepare(corpus); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrEmbeddingUnavailable, err)
	}
	ix := &Index{embedder: embedder, chunks: chunks}
	for _, ch := range chunks {
		vec, err := embedder.Embed(ctx, ch.Text)
		if err != nil {
			return nil, fmt.Errorf("%w: chunk %d: %v", domain.ErrEmbeddingUnavailable, ch.Ordinal, err)
		}
		ix.vectors = append(ix.vectors, vec)
		if ix.dimension == 0 {
			ix.dimension = len(vec)
		}
	}
	return ix, nil
}

// Len reports the number of indexed chunks.
func (ix *Index) Len() int { return len(ix.chunks) }

// Retrieve returns the k chunks closest to the query, ordered by
// increasing embedding distance. Ties in distance resolve by ascending
// chunk ordinal, so results are deterministic.
func (ix *Index) Retrieve(ctx context.Context, query string, k int) ([]domain.ScoredChunk, error) {
	if k <= 0 {
		k = DefaultTopK
	}
	if len(ix.chunks) == 0 {
		return nil, nil
	}
	qvec, err := ix.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: query: %v", domain.ErrEmbeddingUnavailable, err)
	}
	scored := make([]domain.ScoredChunk, len(ix.chunks))
	for i := range ix.chunks {
		scored[i] = domain.ScoredChunk{
			Chunk:    ix.chunks[i],
			Distance: cosineDistance(ix.vectors[i], qvec),
		}
	}
	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Distance != scored[j].Distance {
			return scored[i].Distance < scored[j].Distance
		}
		return scored[i].Chunk.Ordinal < scored[j].Chunk.Ordinal
	})
	if k > len(scored) {
		k = len(scored)
	}
	return scored[:k], nil
}

func cosineDistance(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, na, nb float64
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 1
	}
	return 1 - dot/(math.Sqrt(na)*math.Sqrt(nb))
}
