package index

import (
	"context"
	"strings"
	"testing"

	"github.com/lorebase/lorebase/pkg/graph"
)

func buildTestGraph(t *testing.T) *graph.Graph {
	t.Helper()
	g := graph.New()

	entities := []graph.Entity{
		{ID: "luke_skywalker", Type: "character", Properties: map[string]string{
			"name":       "Luke Skywalker",
			"occupation": "jedi knight",
			"homeworld":  "tatooine",
		}},
		{ID: "darth_vader", Type: "character", Properties: map[string]string{
			"name":  "Darth Vader",
			"title": "sith lord",
		}},
		{ID: "tatooine", Type: "planet", Properties: map[string]string{
			"name":    "Tatooine",
			"climate": "desert world",
		}},
	}
	for _, e := range entities {
		if err := g.AddEntity(e); err != nil {
			t.Fatalf("AddEntity(%s): %v", e.ID, err)
		}
	}
	if err := g.AddRelationship(graph.Relationship{
		ID:       "r1",
		SourceID: "darth_vader",
		TargetID: "luke_skywalker",
		Type:     "father_of",
	}); err != nil {
		t.Fatalf("AddRelationship: %v", err)
	}
	return g
}

func buildTestIndex(t *testing.T) *Index {
	t.Helper()
	g := buildTestGraph(t)
	ix := New(NewLexicalEmbedder())
	if err := ix.Build(context.Background(), g.Entities(), g.Relationships()); err != nil {
		t.Fatalf("Build: %v", err)
	}
	return ix
}

func TestQueryUnbuiltIndexReturnsEmpty(t *testing.T) {
	ix := New(NewLexicalEmbedder())
	hits, err := ix.Query(context.Background(), "anything", 5)
	if err != nil {
		t.Fatalf("Query on unbuilt index: %v", err)
	}
	if len(hits) != 0 {
		t.Errorf("expected no hits, got %d", len(hits))
	}
}

func TestQueryRespectsK(t *testing.T) {
	ix := buildTestIndex(t)

	hits, err := ix.Query(context.Background(), "character", 1)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(hits) != 1 {
		t.Fatalf("expected 1 hit with k=1, got %d", len(hits))
	}

	hits, err = ix.Query(context.Background(), "character", 10)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(hits) != 2 {
		t.Fatalf("expected 2 character hits with k=10, got %d", len(hits))
	}
}

func TestQueryExcludesZeroOverlap(t *testing.T) {
	ix := buildTestIndex(t)
	hits, err := ix.Query(context.Background(), "quantum blockchain ledger", 10)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(hits) != 0 {
		t.Errorf("expected no hits for unrelated query, got %d: %+v", len(hits), hits)
	}
}

func TestQueryRanksBestMatchFirst(t *testing.T) {
	ix := buildTestIndex(t)
	hits, err := ix.Query(context.Background(), "Luke Skywalker jedi", 10)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(hits) == 0 {
		t.Fatal("expected hits")
	}
	if hits[0].Document.RefID != "luke_skywalker" {
		t.Errorf("expected luke_skywalker first, got %s", hits[0].Document.RefID)
	}
	for i := 1; i < len(hits); i++ {
		if hits[i].Score > hits[i-1].Score {
			t.Errorf("hits not sorted by score: %f before %f", hits[i-1].Score, hits[i].Score)
		}
	}
}

// constantEmbedder scores every document identically so ordering falls back
// to insertion order.
type constantEmbedder struct{}

func (constantEmbedder) Embed(_ context.Context, _ string) ([]float32, error) {
	return []float32{1}, nil
}

func (constantEmbedder) Similarity(_, _ []float32) float64 {
	return 0.5
}

func TestQueryTieBreakByInsertionOrder(t *testing.T) {
	g := buildTestGraph(t)
	ix := New(constantEmbedder{})
	if err := ix.Build(context.Background(), g.Entities(), g.Relationships()); err != nil {
		t.Fatalf("Build: %v", err)
	}

	hits, err := ix.Query(context.Background(), "anything", 10)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	want := []string{"luke_skywalker", "darth_vader", "tatooine", "r1"}
	if len(hits) != len(want) {
		t.Fatalf("expected %d hits, got %d", len(want), len(hits))
	}
	for i, id := range want {
		if hits[i].Document.RefID != id {
			t.Errorf("hit %d: expected %s, got %s", i, id, hits[i].Document.RefID)
		}
	}
}

func TestDocumentsSurrogates(t *testing.T) {
	g := buildTestGraph(t)
	docs := Documents(g.Entities(), g.Relationships())

	if len(docs) != 4 {
		t.Fatalf("expected 4 documents, got %d", len(docs))
	}

	var luke, rel *Document
	for i := range docs {
		switch docs[i].RefID {
		case "luke_skywalker":
			luke = &docs[i]
		case "r1":
			rel = &docs[i]
		}
	}
	if luke == nil || rel == nil {
		t.Fatal("missing expected documents")
	}

	if luke.Kind != DocumentKindEntity {
		t.Errorf("luke document kind = %s", luke.Kind)
	}
	for _, fragment := range []string{"Luke Skywalker", "character", "jedi knight", "connected to: Darth Vader"} {
		if !strings.Contains(luke.Text, fragment) {
			t.Errorf("entity surrogate missing %q: %s", fragment, luke.Text)
		}
	}

	if rel.Kind != DocumentKindRelationship {
		t.Errorf("relationship document kind = %s", rel.Kind)
	}
	if !strings.Contains(rel.Text, "Darth Vader father of Luke Skywalker") {
		t.Errorf("relationship surrogate missing phrase: %s", rel.Text)
	}
}

func TestIndexSize(t *testing.T) {
	ix := New(NewLexicalEmbedder())
	if ix.Size() != 0 {
		t.Errorf("expected size 0 before build, got %d", ix.Size())
	}
	ix = buildTestIndex(t)
	if ix.Size() != 4 {
		t.Errorf("expected size 4 after build, got %d", ix.Size())
	}
}
