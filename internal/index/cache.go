package index

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"docqa/internal/domain"
)

// WrapCache puts an expiring LRU in front of an embedder so repeated
// texts (most often re-asked questions) skip the remote call. With a
// non-positive size or ttl the embedder is returned unwrapped.
func WrapCache(e domain.Embedder, size int, ttl time.Duration) domain.Embedder {
	if e == nil || size <= 0 || ttl <= 0 {
		return e
	}
	return &cachedEmbedder{
		next:  e,
		cache: expirable.NewLRU[string, []float64](size, nil, ttl),
	}
}

type cachedEmbedder struct {
	next  domain.Embedder
	cache *expirable.LRU[string, []float64]
}

func (c *cachedEmbedder) Name() string { return c.next.Name() }

func (c *cachedEmbedder) Dimension() int { return c.next.Dimension() }

// Prepare delegates and then drops every cached vector: re-preparation
// can change the vector space, so entries from the previous corpus must
// not be served against the new one.
func (c *cachedEmbedder) Prepare(corpus []string) error {
	if err := c.next.Prepare(corpus); err != nil {
		return err
	}
	c.cache.Purge()
	return nil
}

func (c *cachedEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	key := c.next.Name() + "\x00" + text
	if cached, ok := c.cache.Get(key); ok {
		return cloneVector(cached), nil
	}
	vec, err := c.next.Embed(ctx, text)
	if err != nil {
		return nil, err
	}
	c.cache.Add(key, cloneVector(vec))
	return vec, nil
}

func cloneVector(v []float64) []float64 {
	if len(v) == 0 {
		return nil
	}
	out := make([]float64, len(v))
	copy(out, v)
	return out
}
