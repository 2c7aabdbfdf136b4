package query

import (
	"context"
	"fmt"
	"strings"

	"github.com/lorebase/lorebase/pkg/ai"
	"github.com/lorebase/lorebase/pkg/graph"
	"github.com/lorebase/lorebase/pkg/index"
	"github.com/lorebase/lorebase/pkg/logger"
)

// Result statuses. A failed generation is reported through the status, never
// as an error.
const (
	StatusAnswered         = "answered"
	StatusNoData           = "no_data"
	StatusGenerationFailed = "generation_failed"
)

const (
	fallbackNoData           = "I don't know based on the available data."
	fallbackGenerationFailed = "The answer could not be generated from the retrieved data."

	maxIntentEntityNames = 200
	maxPathSeeds         = 6
)

// Result is the outcome of a natural language query.
type Result struct {
	Answer                    string   `json:"answer"`
	Status                    string   `json:"status"`
	SupportingEntityIDs       []string `json:"supporting_entity_ids"`
	SupportingRelationshipIDs []string `json:"supporting_relationship_ids"`
	Confidence                float64  `json:"confidence"`
	RawModelOutput            string   `json:"raw_model_output,omitempty"`
}

type queryIntent struct {
	Entities     []string `json:"entities"`
	SemanticTerm string   `json:"semantic_term"`
}

// Answer runs the full query pipeline: retrieve similar graph elements,
// expand their neighborhood, assemble a token-bounded context block, generate
// an answer through the AI client and post-process it into a grounded Result.
//
// Answer never fails because of the model. Retrieval and generation problems
// surface through Result.Status and a zero confidence.
func (e *Engine) Answer(ctx context.Context, question string) Result {
	g := e.store()
	trace := newQueryTrace()

	hits, err := e.index.Query(ctx, question, e.topK)
	if err != nil {
		// a broken embedding backend degrades to an empty hit list; intent
		// extraction can still source entities
		logger.Error("retrieval failed", "err", err)
		hits = nil
	}

	intentEntities := e.entitiesFromIntent(ctx, g, question)

	if len(hits) == 0 && len(intentEntities) == 0 {
		logger.Debug("no relevant data for question")
		return e.noData(ctx, question)
	}

	topScore := 0.0
	if len(hits) > 0 {
		topScore = hits[0].Score
	}

	rows := e.collectRows(g, hits, intentEntities, trace)
	contextBlock, keptRows, err := renderContext(rows, e.contextTokens)
	if err != nil {
		logger.Error("context assembly failed", "err", err)
		return generationFailed(trace, "")
	}
	for _, row := range keptRows {
		if row.kind == index.DocumentKindEntity {
			trace.useEntities(row.id)
		} else {
			trace.useRelationships(row.id)
		}
	}

	if e.client == nil {
		return generationFailed(trace, "")
	}

	gCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	raw, err := e.client.GenerateCompletion(
		gCtx,
		question,
		ai.WithSystemPrompts(fmt.Sprintf(ai.QueryPrompt, contextBlock)),
	)
	if err != nil || strings.TrimSpace(raw) == "" {
		logger.Warn("generation failed", "err", err)
		return generationFailed(trace, raw)
	}

	answer := normalizeCitations(strings.TrimSpace(raw))
	cited := extractCitations(answer)
	valid := 0
	for _, id := range cited {
		if trace.isUsed(id) {
			valid++
		}
	}
	formatValid := len(cited) > 0 && valid == len(cited)
	citedOverlap := 0.0
	if used := trace.usedCount(); used > 0 {
		citedOverlap = float64(valid) / float64(used)
	}

	return Result{
		Answer:                    answer,
		Status:                    StatusAnswered,
		SupportingEntityIDs:       trace.usedEntities(),
		SupportingRelationshipIDs: trace.usedRelationships(),
		Confidence:                confidence(topScore, citedOverlap, formatValid),
		RawModelOutput:            raw,
	}
}

func generationFailed(trace *queryTrace, raw string) Result {
	entityIDs := trace.usedEntities()
	relationshipIDs := trace.usedRelationships()
	if len(entityIDs) == 0 && len(relationshipIDs) == 0 {
		// failures before context assembly have no used ids yet; the ids
		// retrieval considered are still worth reporting
		entityIDs = trace.consideredEntities()
		relationshipIDs = trace.consideredRelationships()
	}
	return Result{
		Answer:                    fallbackGenerationFailed,
		Status:                    StatusGenerationFailed,
		SupportingEntityIDs:       entityIDs,
		SupportingRelationshipIDs: relationshipIDs,
		Confidence:                0,
		RawModelOutput:            raw,
	}
}

func (e *Engine) noData(ctx context.Context, question string) Result {
	answer := fallbackNoData
	if e.client != nil {
		gCtx, cancel := context.WithTimeout(ctx, e.timeout)
		defer cancel()
		if resp, err := e.client.GenerateCompletion(gCtx, fmt.Sprintf(ai.NoDataPrompt, question)); err == nil && strings.TrimSpace(resp) != "" {
			answer = strings.TrimSpace(resp)
		}
	}
	return Result{
		Answer:                    answer,
		Status:                    StatusNoData,
		SupportingEntityIDs:       []string{},
		SupportingRelationshipIDs: []string{},
		Confidence:                0,
	}
}

// entitiesFromIntent asks the model which known entities the question refers
// to. The step is best effort: any failure returns no entities.
func (e *Engine) entitiesFromIntent(ctx context.Context, g *graph.Graph, question string) []graph.Entity {
	if !e.extractIntent || e.client == nil {
		return nil
	}

	names := make([]string, 0, maxIntentEntityNames)
	for _, entity := range g.Entities() {
		if len(names) >= maxIntentEntityNames {
			break
		}
		names = append(names, entity.Name())
	}
	if len(names) == 0 {
		return nil
	}

	gCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	var intent queryIntent
	err := e.client.GenerateCompletionWithFormat(
		gCtx,
		"query_intent",
		"Entities and semantic term the question refers to",
		fmt.Sprintf(ai.IntentPrompt, question, strings.Join(names, ", ")),
		&intent,
	)
	if err != nil {
		logger.Debug("intent extraction failed", "err", err)
		return nil
	}

	seen := make(map[string]bool)
	var out []graph.Entity
	for _, name := range intent.Entities {
		for _, entity := range g.SearchEntities(name) {
			if seen[entity.ID] {
				continue
			}
			seen[entity.ID] = true
			out = append(out, entity)
		}
	}
	return out
}

// collectRows gathers the candidate context rows: retrieved entities and
// relationships, paths connecting the seed entities, and the one-hop
// neighborhood of the seeds.
func (e *Engine) collectRows(g *graph.Graph, hits []index.Hit, intentEntities []graph.Entity, trace *queryTrace) []contextRow {
	var rows []contextRow
	present := make(map[string]bool)

	addRow := func(row contextRow) {
		if present[row.id] {
			return
		}
		present[row.id] = true
		rows = append(rows, row)
	}

	var seedIDs []string
	addSeed := func(id string) {
		for _, s := range seedIDs {
			if s == id {
				return
			}
		}
		seedIDs = append(seedIDs, id)
	}

	for _, hit := range hits {
		switch hit.Document.Kind {
		case index.DocumentKindEntity:
			trace.considerEntities(hit.Document.RefID)
			if entity, err := g.GetEntity(hit.Document.RefID); err == nil {
				addRow(entityRow(sectionRelevantEntities, entity, hit.Score))
				addSeed(entity.ID)
			}
		case index.DocumentKindRelationship:
			trace.considerRelationships(hit.Document.RefID)
			if r, err := g.GetRelationship(hit.Document.RefID); err == nil {
				addRow(relationshipRow(g, r, hit.Score))
				addSeed(r.SourceID)
				addSeed(r.TargetID)
			}
		}
	}

	for _, entity := range intentEntities {
		trace.considerEntities(entity.ID)
		addRow(entityRow(sectionRelevantEntities, entity, 0.5))
		addSeed(entity.ID)
	}

	// connect the seeds with shortest paths so the answer can reason across
	// multiple retrieved entities
	pathSeeds := seedIDs
	if len(pathSeeds) > maxPathSeeds {
		pathSeeds = pathSeeds[:maxPathSeeds]
	}
	for i := 0; i < len(pathSeeds); i++ {
		for j := i + 1; j < len(pathSeeds); j++ {
			path, err := g.ShortestPath(pathSeeds[i], pathSeeds[j])
			if err != nil {
				continue
			}
			for _, r := range path.Relationships {
				trace.considerRelationships(r.ID)
				addRow(relationshipRow(g, r, 0.25))
			}
			for _, entity := range path.Entities {
				trace.considerEntities(entity.ID)
				addRow(entityRow(sectionNeighborhood, entity, 0.2))
			}
		}
	}

	expanded := make(map[string]bool)
	for _, id := range g.Subgraph(seedIDs, 1) {
		expanded[id] = true
		trace.considerEntities(id)
		if entity, err := g.GetEntity(id); err == nil {
			addRow(entityRow(sectionNeighborhood, entity, 0.1))
		}
	}

	// the neighborhood entities alone do not say how they relate to the
	// seeds; add the connecting edges as well
	for _, id := range seedIDs {
		_, rels, err := g.Neighbors(id, graph.DirectionBoth, "")
		if err != nil {
			continue
		}
		for _, r := range rels {
			if !expanded[r.SourceID] || !expanded[r.TargetID] {
				continue
			}
			trace.considerRelationships(r.ID)
			addRow(relationshipRow(g, r, 0.15))
		}
	}

	return rows
}
