// Package query implements the retrieval-augmented query engine. It combines
// the graph store, the similarity index and an AI client into grounded,
// confidence-scored answers, and exposes the structural graph operations as
// first-class shortcuts.
package query

import (
	"context"
	"sync"
	"time"

	"github.com/lorebase/lorebase/pkg/ai"
	"github.com/lorebase/lorebase/pkg/graph"
	"github.com/lorebase/lorebase/pkg/index"
	"github.com/lorebase/lorebase/pkg/logger"
)

const (
	defaultTopK          = 5
	defaultContextTokens = 3000
	defaultTimeout       = 120 * time.Second
)

// Engine answers natural language questions against a knowledge graph. All
// collaborators are injected; independent engines can run side by side.
type Engine struct {
	mu    sync.RWMutex
	graph *graph.Graph

	index  *index.Index
	client ai.Client

	topK          int
	contextTokens int
	timeout       time.Duration
	extractIntent bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithTopK sets how many documents retrieval returns per question.
func WithTopK(k int) Option {
	return func(e *Engine) {
		if k > 0 {
			e.topK = k
		}
	}
}

// WithContextTokens caps the assembled context block at the given token count.
func WithContextTokens(tokens int) Option {
	return func(e *Engine) {
		if tokens > 0 {
			e.contextTokens = tokens
		}
	}
}

// WithTimeout bounds a single model generation call.
func WithTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// WithIntentExtraction toggles the model-assisted entity intent step before
// retrieval. It is best effort either way; extraction failures never fail a
// query.
func WithIntentExtraction(enabled bool) Option {
	return func(e *Engine) {
		e.extractIntent = enabled
	}
}

// New creates a query engine over the given graph, index and AI client.
func New(g *graph.Graph, ix *index.Index, client ai.Client, opts ...Option) *Engine {
	e := &Engine{
		graph:  g,
		index:  ix,
		client: client,

		topK:          defaultTopK,
		contextTokens: defaultContextTokens,
		timeout:       defaultTimeout,
		extractIntent: true,
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

func (e *Engine) store() *graph.Graph {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.graph
}

// Reload replaces the whole graph content and rebuilds the retrieval index.
// This is the single bulk-write path; callers serialize it against in-flight
// queries.
func (e *Engine) Reload(ctx context.Context, entities []graph.Entity, relationships []graph.Relationship) error {
	g, err := graph.FromRecords(entities, relationships)
	if err != nil {
		return err
	}
	if err := e.index.Build(ctx, g.Entities(), g.Relationships()); err != nil {
		return err
	}

	e.mu.Lock()
	e.graph = g
	e.mu.Unlock()

	logger.Info("graph reloaded", "entities", len(entities), "relationships", len(relationships))
	return nil
}

// RebuildIndex re-derives the retrieval index from the current graph content.
func (e *Engine) RebuildIndex(ctx context.Context) error {
	g := e.store()
	return e.index.Build(ctx, g.Entities(), g.Relationships())
}

// Search finds entities whose name or textual properties contain the term.
func (e *Engine) Search(term string) []graph.Entity {
	return e.store().SearchEntities(term)
}

// GetEntity returns a single entity by id.
func (e *Engine) GetEntity(id string) (graph.Entity, error) {
	return e.store().GetEntity(id)
}

// Neighbors returns the adjacent entities and connecting relationships of an
// entity, optionally filtered by direction and relationship type.
func (e *Engine) Neighbors(id string, direction graph.Direction, relType string) ([]graph.Entity, []graph.Relationship, error) {
	return e.store().Neighbors(id, direction, relType)
}

// ShortestPath finds a shortest connection between two entities, ignoring
// edge direction.
func (e *Engine) ShortestPath(sourceID, targetID string) (graph.Path, error) {
	return e.store().ShortestPath(sourceID, targetID)
}

// Statistics reports graph-level counts, density and per-type histograms.
func (e *Engine) Statistics() graph.Stats {
	return e.store().Statistics()
}

// Validate reports structural findings such as isolated entities.
func (e *Engine) Validate() []graph.Finding {
	return e.store().Validate()
}

// Snapshot exports the current graph content.
func (e *Engine) Snapshot() graph.Snapshot {
	return e.store().Snapshot()
}
