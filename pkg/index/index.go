// Package index provides a similarity retrieval index over text surrogates of
// graph entities and relationships. Scoring is delegated to an Embedder, so
// the same index works with model embeddings or the local lexical fallback.
package index

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/lorebase/lorebase/internal/util"
	"github.com/lorebase/lorebase/pkg/graph"
	"github.com/lorebase/lorebase/pkg/logger"

	"golang.org/x/sync/errgroup"
)

const (
	buildConcurrency = 4
	embedMaxTries    = 3
)

// Hit is a single retrieval result.
type Hit struct {
	Document Document `json:"document"`
	Score    float64  `json:"score"`
}

// Index holds surrogate documents and their vectors. Build replaces the whole
// content atomically; Query reads a consistent snapshot.
type Index struct {
	embedder Embedder

	mu      sync.RWMutex
	docs    []Document
	vectors [][]float32
	built   bool
}

// New creates an empty index using the given embedder for both document and
// query vectors.
func New(embedder Embedder) *Index {
	return &Index{embedder: embedder}
}

// Build derives surrogates for all entities and relationships and embeds them
// in bounded-parallel batches. The previous index content stays visible until
// the new one is complete; a failed build leaves the index untouched.
func (ix *Index) Build(ctx context.Context, entities []graph.Entity, relationships []graph.Relationship) error {
	docs := Documents(entities, relationships)
	vectors := make([][]float32, len(docs))

	eg, ectx := errgroup.WithContext(ctx)
	eg.SetLimit(buildConcurrency)
	for i, doc := range docs {
		eg.Go(func() error {
			vec, err := util.RetryWithContext(ectx, embedMaxTries, func(rCtx context.Context) ([]float32, error) {
				return ix.embedder.Embed(rCtx, doc.Text)
			})
			if err != nil {
				return fmt.Errorf("embed %s %s: %w", doc.Kind, doc.RefID, err)
			}
			vectors[i] = vec
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	ix.mu.Lock()
	ix.docs = docs
	ix.vectors = vectors
	ix.built = true
	ix.mu.Unlock()

	logger.Debug("index built", "documents", len(docs))
	return nil
}

// Size returns the number of indexed documents.
func (ix *Index) Size() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.docs)
}

// Query returns up to k hits for the given text, highest score first, ties
// broken by insertion order. Documents scoring zero or below are excluded.
// An index that was never built returns no hits and no error.
func (ix *Index) Query(ctx context.Context, text string, k int) ([]Hit, error) {
	ix.mu.RLock()
	docs := ix.docs
	vectors := ix.vectors
	built := ix.built
	ix.mu.RUnlock()

	if !built || k <= 0 {
		return nil, nil
	}

	queryVec, err := ix.embedder.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	hits := make([]Hit, 0, len(docs))
	for i, doc := range docs {
		score := ix.embedder.Similarity(queryVec, vectors[i])
		if score <= 0 {
			continue
		}
		hits = append(hits, Hit{Document: doc, Score: score})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})
	if len(hits) > k {
		hits = hits[:k]
	}
	return hits, nil
}
