package query

import (
	"sort"
	"sync"
)

// queryTrace collects which entity and relationship ids were considered
// during retrieval and which ended up in the assembled context. The used sets
// become the supporting ids of the Result.
//
// queryTrace is safe for concurrent use.
type queryTrace struct {
	mu sync.Mutex

	consideredEntityIDs       map[string]struct{}
	consideredRelationshipIDs map[string]struct{}
	usedEntityIDs             map[string]struct{}
	usedRelationshipIDs       map[string]struct{}
}

func newQueryTrace() *queryTrace {
	return &queryTrace{
		consideredEntityIDs:       make(map[string]struct{}),
		consideredRelationshipIDs: make(map[string]struct{}),
		usedEntityIDs:             make(map[string]struct{}),
		usedRelationshipIDs:       make(map[string]struct{}),
	}
}

func (t *queryTrace) considerEntities(ids ...string) {
	t.record(t.consideredEntityIDs, ids)
}

func (t *queryTrace) considerRelationships(ids ...string) {
	t.record(t.consideredRelationshipIDs, ids)
}

func (t *queryTrace) useEntities(ids ...string) {
	t.record(t.consideredEntityIDs, ids)
	t.record(t.usedEntityIDs, ids)
}

func (t *queryTrace) useRelationships(ids ...string) {
	t.record(t.consideredRelationshipIDs, ids)
	t.record(t.usedRelationshipIDs, ids)
}

func (t *queryTrace) record(set map[string]struct{}, ids []string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, id := range ids {
		if id == "" {
			continue
		}
		set[id] = struct{}{}
	}
}

func (t *queryTrace) consideredEntities() []string {
	return t.sorted(t.consideredEntityIDs)
}

func (t *queryTrace) consideredRelationships() []string {
	return t.sorted(t.consideredRelationshipIDs)
}

func (t *queryTrace) usedEntities() []string {
	return t.sorted(t.usedEntityIDs)
}

func (t *queryTrace) usedRelationships() []string {
	return t.sorted(t.usedRelationshipIDs)
}

func (t *queryTrace) isUsed(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.usedEntityIDs[id]; ok {
		return true
	}
	_, ok := t.usedRelationshipIDs[id]
	return ok
}

func (t *queryTrace) usedCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.usedEntityIDs) + len(t.usedRelationshipIDs)
}

func (t *queryTrace) sorted(set map[string]struct{}) []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
