package query

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/lorebase/lorebase/pkg/ai"
	"github.com/lorebase/lorebase/pkg/graph"
	"github.com/lorebase/lorebase/pkg/index"
)

// scriptedClient returns canned completions and fails on demand. It
// implements ai.Client without any network access.
type scriptedClient struct {
	completion string
	err        error

	completionCalls int
	lastSystem      []string
}

func (c *scriptedClient) GenerateCompletion(_ context.Context, _ string, opts ...ai.GenerateOption) (string, error) {
	c.completionCalls++
	options := ai.GenerateOptions{}
	for _, o := range opts {
		o(&options)
	}
	c.lastSystem = options.SystemPrompts
	return c.completion, c.err
}

func (c *scriptedClient) GenerateCompletionWithFormat(_ context.Context, _, _, _ string, _ any, _ ...ai.GenerateOption) error {
	return errors.New("intent extraction not scripted")
}

func (c *scriptedClient) GenerateChat(_ context.Context, _ []ai.ChatMessage, _ ...ai.GenerateOption) (string, error) {
	return c.completion, c.err
}

func (c *scriptedClient) GenerateEmbedding(_ context.Context, _ []byte) ([]float32, error) {
	return nil, errors.New("embedding not scripted")
}

func (c *scriptedClient) ResetMetrics() {}

func (c *scriptedClient) GetMetrics() ai.ModelMetrics { return ai.ModelMetrics{} }

func buildTestEngine(t *testing.T, client ai.Client) *Engine {
	t.Helper()

	g := graph.New()
	entities := []graph.Entity{
		{ID: "luke_skywalker", Type: "character", Properties: map[string]string{
			"name":       "Luke Skywalker",
			"occupation": "jedi knight",
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
	relationships := []graph.Relationship{
		{ID: "r_father", SourceID: "darth_vader", TargetID: "luke_skywalker", Type: "father_of"},
		{ID: "r_home", SourceID: "luke_skywalker", TargetID: "tatooine", Type: "born_on"},
	}
	for _, r := range relationships {
		if err := g.AddRelationship(r); err != nil {
			t.Fatalf("AddRelationship(%s): %v", r.ID, err)
		}
	}

	ix := index.New(index.NewLexicalEmbedder())
	if err := ix.Build(context.Background(), g.Entities(), g.Relationships()); err != nil {
		t.Fatalf("Build: %v", err)
	}

	return New(g, ix, client, WithIntentExtraction(false))
}

func TestAnswerGroundedQuestion(t *testing.T) {
	client := &scriptedClient{
		completion: "Darth Vader is the father of Luke Skywalker [[r_father]].",
	}
	engine := buildTestEngine(t, client)

	result := engine.Answer(context.Background(), "Who is the father of Luke Skywalker?")

	if result.Status != StatusAnswered {
		t.Fatalf("Status = %s, want %s (answer: %s)", result.Status, StatusAnswered, result.Answer)
	}
	if result.Answer != client.completion {
		t.Errorf("Answer = %q", result.Answer)
	}
	if result.Confidence <= 0 {
		t.Errorf("Confidence = %v, want > 0", result.Confidence)
	}
	if !containsString(result.SupportingRelationshipIDs, "r_father") {
		t.Errorf("supporting relationships %v missing r_father", result.SupportingRelationshipIDs)
	}
	if !containsString(result.SupportingEntityIDs, "luke_skywalker") {
		t.Errorf("supporting entities %v missing luke_skywalker", result.SupportingEntityIDs)
	}
	if len(client.lastSystem) != 1 {
		t.Fatalf("expected one system prompt, got %d", len(client.lastSystem))
	}
	if !strings.Contains(client.lastSystem[0], "Relevant Entities:") {
		t.Errorf("system prompt missing context section:\n%s", client.lastSystem[0])
	}
	if !strings.Contains(client.lastSystem[0], "[[r_father]]") {
		t.Errorf("system prompt missing relationship row:\n%s", client.lastSystem[0])
	}
}

func TestAnswerGenerationFailureKeepsSupportingIDs(t *testing.T) {
	client := &scriptedClient{err: errors.New("model unavailable")}
	engine := buildTestEngine(t, client)

	result := engine.Answer(context.Background(), "Who is the father of Luke Skywalker?")

	if result.Status != StatusGenerationFailed {
		t.Fatalf("Status = %s, want %s", result.Status, StatusGenerationFailed)
	}
	if result.Confidence != 0 {
		t.Errorf("Confidence = %v, want 0", result.Confidence)
	}
	if result.Answer == "" {
		t.Error("Answer must not be empty on generation failure")
	}
	if len(result.SupportingEntityIDs) == 0 && len(result.SupportingRelationshipIDs) == 0 {
		t.Error("retrieved supporting ids must survive a generation failure")
	}
}

func TestAnswerExpandsSingleSeedNeighborhood(t *testing.T) {
	client := &scriptedClient{
		completion: "Luke Skywalker was born on Tatooine [[r_home]].",
	}
	engine := buildTestEngine(t, client)

	// retrieval surfaces only tatooine; the 1-hop expansion must still show
	// how its neighbors are connected
	result := engine.Answer(context.Background(), "desert world")

	if result.Status != StatusAnswered {
		t.Fatalf("Status = %s, want %s (answer: %s)", result.Status, StatusAnswered, result.Answer)
	}
	if len(client.lastSystem) != 1 {
		t.Fatalf("expected one system prompt, got %d", len(client.lastSystem))
	}
	if !strings.Contains(client.lastSystem[0], "Connecting Relationships:") {
		t.Errorf("system prompt missing relationship section:\n%s", client.lastSystem[0])
	}
	if !strings.Contains(client.lastSystem[0], "[[r_home]]") {
		t.Errorf("system prompt missing the edge connecting tatooine to its neighbor:\n%s", client.lastSystem[0])
	}
	if !containsString(result.SupportingRelationshipIDs, "r_home") {
		t.Errorf("supporting relationships %v missing r_home", result.SupportingRelationshipIDs)
	}
	if !containsString(result.SupportingEntityIDs, "luke_skywalker") {
		t.Errorf("supporting entities %v missing expanded neighbor", result.SupportingEntityIDs)
	}
}

func TestGenerationFailureFallsBackToConsideredIDs(t *testing.T) {
	trace := newQueryTrace()
	trace.considerEntities("tatooine")
	trace.considerRelationships("r_home")

	result := generationFailed(trace, "")
	if !containsString(result.SupportingEntityIDs, "tatooine") {
		t.Errorf("supporting entities %v missing considered id", result.SupportingEntityIDs)
	}
	if !containsString(result.SupportingRelationshipIDs, "r_home") {
		t.Errorf("supporting relationships %v missing considered id", result.SupportingRelationshipIDs)
	}

	trace.useEntities("luke_skywalker")
	result = generationFailed(trace, "")
	if len(result.SupportingEntityIDs) != 1 || result.SupportingEntityIDs[0] != "luke_skywalker" {
		t.Errorf("supporting entities %v, want only the used id", result.SupportingEntityIDs)
	}
}

func TestAnswerNoData(t *testing.T) {
	client := &scriptedClient{completion: "The knowledge graph holds nothing about that topic."}
	engine := buildTestEngine(t, client)

	result := engine.Answer(context.Background(), "quantum blockchain ledger")

	if result.Status != StatusNoData {
		t.Fatalf("Status = %s, want %s (answer: %s)", result.Status, StatusNoData, result.Answer)
	}
	if result.Confidence != 0 {
		t.Errorf("Confidence = %v, want 0", result.Confidence)
	}
	if result.Answer != client.completion {
		t.Errorf("Answer = %q", result.Answer)
	}
	if len(result.SupportingEntityIDs) != 0 || len(result.SupportingRelationshipIDs) != 0 {
		t.Error("no-data result must not carry supporting ids")
	}
}

func TestAnswerNoDataModelUnreachable(t *testing.T) {
	client := &scriptedClient{err: errors.New("model unavailable")}
	engine := buildTestEngine(t, client)

	result := engine.Answer(context.Background(), "quantum blockchain ledger")

	if result.Status != StatusNoData {
		t.Fatalf("Status = %s, want %s", result.Status, StatusNoData)
	}
	if result.Answer != fallbackNoData {
		t.Errorf("Answer = %q, want fallback text", result.Answer)
	}
}

func TestAnswerInvalidCitationsLowerConfidence(t *testing.T) {
	valid := &scriptedClient{
		completion: "Darth Vader is the father of Luke Skywalker [[r_father]].",
	}
	invalid := &scriptedClient{
		completion: "Darth Vader is the father of Luke Skywalker [[made_up_id]].",
	}
	question := "Who is the father of Luke Skywalker?"

	validResult := buildTestEngine(t, valid).Answer(context.Background(), question)
	invalidResult := buildTestEngine(t, invalid).Answer(context.Background(), question)

	if invalidResult.Confidence >= validResult.Confidence {
		t.Errorf("invalid citation confidence %v not below valid citation confidence %v",
			invalidResult.Confidence, validResult.Confidence)
	}
}

func TestReloadReplacesGraphAndIndex(t *testing.T) {
	client := &scriptedClient{completion: "answer [[yoda]]"}
	engine := buildTestEngine(t, client)

	err := engine.Reload(context.Background(),
		[]graph.Entity{{ID: "yoda", Type: "character", Properties: map[string]string{"name": "Yoda"}}},
		nil,
	)
	if err != nil {
		t.Fatalf("Reload: %v", err)
	}

	if _, err := engine.GetEntity("luke_skywalker"); err == nil {
		t.Error("old entity still present after Reload")
	}
	if _, err := engine.GetEntity("yoda"); err != nil {
		t.Errorf("new entity missing after Reload: %v", err)
	}

	result := engine.Answer(context.Background(), "Yoda")
	if result.Status != StatusAnswered {
		t.Errorf("Status = %s after reload, want %s", result.Status, StatusAnswered)
	}
}

func TestStructuralShortcuts(t *testing.T) {
	engine := buildTestEngine(t, nil)

	if got := engine.Search("skywalker"); len(got) != 1 || got[0].ID != "luke_skywalker" {
		t.Errorf("Search = %+v", got)
	}

	neighbors, rels, err := engine.Neighbors("luke_skywalker", graph.DirectionBoth, "")
	if err != nil {
		t.Fatalf("Neighbors: %v", err)
	}
	if len(neighbors) != 2 || len(rels) != 2 {
		t.Errorf("Neighbors = %d entities, %d relationships", len(neighbors), len(rels))
	}

	path, err := engine.ShortestPath("darth_vader", "tatooine")
	if err != nil {
		t.Fatalf("ShortestPath: %v", err)
	}
	if path.Length() != 2 {
		t.Errorf("path length = %d, want 2", path.Length())
	}

	stats := engine.Statistics()
	if stats.Entities != 3 || stats.Relationships != 2 {
		t.Errorf("Statistics = %+v", stats)
	}

	if findings := engine.Validate(); len(findings) != 0 {
		t.Errorf("Validate = %+v, want none", findings)
	}
}

func containsString(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}
