package graph

import (
	"strings"
	"sync"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Entity represents a node in the graph. An entity can be a character,
// location, organization, vehicle, or any other configured category.
// Properties hold open-ended scalar attributes and must include a
// human-readable "name".
type Entity struct {
	ID         string            `json:"id"`
	Type       string            `json:"type"`
	Properties map[string]string `json:"properties"`
}

// Name returns the entity's human-readable name, falling back to the id.
func (e Entity) Name() string {
	if n := e.Properties["name"]; n != "" {
		return n
	}
	return e.ID
}

// Relationship represents a directed edge between two entities. Direction is
// semantically meaningful ("trained_by" is not "trains"). Multiple
// relationships between the same endpoints are permitted.
type Relationship struct {
	ID         string            `json:"id"`
	SourceID   string            `json:"source_id"`
	TargetID   string            `json:"target_id"`
	Type       string            `json:"relation_type"`
	Properties map[string]string `json:"properties,omitempty"`
}

// Direction selects which edges Neighbors considers.
type Direction string

const (
	DirectionBoth Direction = "both"
	DirectionIn   Direction = "in"
	DirectionOut  Direction = "out"
)

// Graph is an in-memory directed multigraph indexed by entity id. It is the
// authoritative structure for the retrieval pipeline: the similarity index is
// derived from it, never the other way around.
//
// Concurrent readers are safe; mutation requires the single writer path
// (callers serialize bulk reloads against in-flight queries).
type Graph struct {
	mu sync.RWMutex

	entities    map[string]*Entity
	entityOrder []string

	relationships []*Relationship
	outEdges      map[string][]*Relationship
	inEdges       map[string][]*Relationship

	allowedTypes map[string]bool
}

// Option configures a Graph at construction time.
type Option func(*Graph)

// WithAllowedTypes restricts entity types to the given closed set. Without
// this option the type vocabulary is open.
func WithAllowedTypes(types ...string) Option {
	return func(g *Graph) {
		g.allowedTypes = make(map[string]bool, len(types))
		for _, t := range types {
			g.allowedTypes[t] = true
		}
	}
}

// New creates an empty graph.
func New(opts ...Option) *Graph {
	g := &Graph{
		entities: make(map[string]*Entity),
		outEdges: make(map[string][]*Relationship),
		inEdges:  make(map[string][]*Relationship),
	}
	for _, o := range opts {
		o(g)
	}
	return g
}

// AddEntity inserts the entity, or replaces it when the id already exists
// (re-insertion is an update, not a duplicate). The entity must carry a type
// and a "name" property.
func (g *Graph) AddEntity(e Entity) error {
	if e.ID == "" {
		return &ValidationError{Reason: "entity id is required"}
	}
	if e.Type == "" {
		return &ValidationError{ID: e.ID, Reason: "entity type is required"}
	}
	if strings.TrimSpace(e.Properties["name"]) == "" {
		return &ValidationError{ID: e.ID, Reason: `property "name" is required`}
	}
	if g.allowedTypes != nil && !g.allowedTypes[e.Type] {
		return &ValidationError{ID: e.ID, Reason: "entity type " + e.Type + " is not configured"}
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	stored := e
	stored.Properties = cloneProperties(e.Properties)
	if _, exists := g.entities[e.ID]; !exists {
		g.entityOrder = append(g.entityOrder, e.ID)
	}
	g.entities[e.ID] = &stored
	return nil
}

// AddRelationship appends the relationship. Both endpoints must already exist;
// a failed insert leaves the relationship set unchanged. An empty id is
// replaced with a generated one.
func (g *Graph) AddRelationship(r Relationship) error {
	if r.Type == "" {
		return &ValidationError{ID: r.ID, Reason: "relation type is required"}
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.entities[r.SourceID]; !ok {
		return &DanglingReferenceError{RelationType: r.Type, MissingID: r.SourceID}
	}
	if _, ok := g.entities[r.TargetID]; !ok {
		return &DanglingReferenceError{RelationType: r.Type, MissingID: r.TargetID}
	}

	stored := r
	stored.Properties = cloneProperties(r.Properties)
	if stored.ID == "" {
		stored.ID = gonanoid.Must()
	}

	g.relationships = append(g.relationships, &stored)
	g.outEdges[stored.SourceID] = append(g.outEdges[stored.SourceID], &stored)
	g.inEdges[stored.TargetID] = append(g.inEdges[stored.TargetID], &stored)
	return nil
}

// GetEntity returns the entity with the given id.
func (g *Graph) GetEntity(id string) (Entity, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	e, ok := g.entities[id]
	if !ok {
		return Entity{}, &NotFoundError{ID: id}
	}
	return copyEntity(e), nil
}

// GetRelationship returns the relationship with the given id.
func (g *Graph) GetRelationship(id string) (Relationship, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	for _, r := range g.relationships {
		if r.ID == id {
			return copyRelationship(r), nil
		}
	}
	return Relationship{}, &NotFoundError{ID: id}
}

// Entities returns all entities in insertion order.
func (g *Graph) Entities() []Entity {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]Entity, 0, len(g.entityOrder))
	for _, id := range g.entityOrder {
		out = append(out, copyEntity(g.entities[id]))
	}
	return out
}

// Relationships returns all relationships in insertion order.
func (g *Graph) Relationships() []Relationship {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]Relationship, 0, len(g.relationships))
	for _, r := range g.relationships {
		out = append(out, copyRelationship(r))
	}
	return out
}

// SearchEntities performs a case-insensitive substring match against the id,
// name, and other textual properties of every entity. Results keep insertion
// order (stable, not ranked): this is exact search, distinct from the
// similarity retrieval in the index package.
func (g *Graph) SearchEntities(term string) []Entity {
	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" {
		return nil
	}

	g.mu.RLock()
	defer g.mu.RUnlock()

	var out []Entity
	for _, id := range g.entityOrder {
		e := g.entities[id]
		if strings.Contains(strings.ToLower(e.ID), needle) {
			out = append(out, copyEntity(e))
			continue
		}
		for _, v := range e.Properties {
			if strings.Contains(strings.ToLower(v), needle) {
				out = append(out, copyEntity(e))
				break
			}
		}
	}
	return out
}

// SearchEntitiesFunc returns entities matching a structured predicate, in
// insertion order.
func (g *Graph) SearchEntitiesFunc(pred func(Entity) bool) []Entity {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var out []Entity
	for _, id := range g.entityOrder {
		e := copyEntity(g.entities[id])
		if pred(e) {
			out = append(out, e)
		}
	}
	return out
}

// EntitiesByType returns all entities of the given type, in insertion order.
func (g *Graph) EntitiesByType(entityType string) []Entity {
	return g.SearchEntitiesFunc(func(e Entity) bool {
		return e.Type == entityType
	})
}

// Neighbors returns the directly connected entities and the connecting
// relationships of the entity, honoring direction and an optional
// relation-type filter. Each neighbor appears once even when multiple edges
// connect it.
func (g *Graph) Neighbors(id string, direction Direction, relType string) ([]Entity, []Relationship, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if _, ok := g.entities[id]; !ok {
		return nil, nil, &NotFoundError{ID: id}
	}
	if direction == "" {
		direction = DirectionBoth
	}

	var rels []Relationship
	neighborSeen := make(map[string]bool)
	var neighbors []Entity

	appendEdge := func(r *Relationship, neighborID string) {
		if relType != "" && r.Type != relType {
			return
		}
		rels = append(rels, copyRelationship(r))
		if !neighborSeen[neighborID] {
			neighborSeen[neighborID] = true
			neighbors = append(neighbors, copyEntity(g.entities[neighborID]))
		}
	}

	if direction == DirectionOut || direction == DirectionBoth {
		for _, r := range g.outEdges[id] {
			appendEdge(r, r.TargetID)
		}
	}
	if direction == DirectionIn || direction == DirectionBoth {
		for _, r := range g.inEdges[id] {
			appendEdge(r, r.SourceID)
		}
	}
	return neighbors, rels, nil
}

// Subgraph collects the entity ids reachable from the seed ids within the
// given number of undirected hops, including the seeds themselves. Unknown
// seed ids are ignored. Used by the query engine to bound context expansion.
func (g *Graph) Subgraph(seedIDs []string, depth int) []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	included := make(map[string]bool)
	var order []string
	frontier := make([]string, 0, len(seedIDs))
	for _, id := range seedIDs {
		if _, ok := g.entities[id]; !ok || included[id] {
			continue
		}
		included[id] = true
		order = append(order, id)
		frontier = append(frontier, id)
	}

	for hop := 0; hop < depth; hop++ {
		var next []string
		for _, id := range frontier {
			for _, nID := range g.undirectedNeighborIDs(id) {
				if included[nID] {
					continue
				}
				included[nID] = true
				order = append(order, nID)
				next = append(next, nID)
			}
		}
		frontier = next
	}
	return order
}

// undirectedNeighborIDs lists adjacent entity ids in edge insertion order,
// out-edges first. Callers must hold the read lock.
func (g *Graph) undirectedNeighborIDs(id string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range g.outEdges[id] {
		if !seen[r.TargetID] {
			seen[r.TargetID] = true
			out = append(out, r.TargetID)
		}
	}
	for _, r := range g.inEdges[id] {
		if !seen[r.SourceID] {
			seen[r.SourceID] = true
			out = append(out, r.SourceID)
		}
	}
	return out
}

func cloneProperties(props map[string]string) map[string]string {
	out := make(map[string]string, len(props))
	for k, v := range props {
		out[k] = v
	}
	return out
}

func copyEntity(e *Entity) Entity {
	out := *e
	out.Properties = cloneProperties(e.Properties)
	return out
}

func copyRelationship(r *Relationship) Relationship {
	out := *r
	out.Properties = cloneProperties(r.Properties)
	return out
}
