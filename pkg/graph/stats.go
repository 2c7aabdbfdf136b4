package graph

// Stats summarizes the structure of the graph.
type Stats struct {
	Entities          int            `json:"entities"`
	Relationships     int            `json:"relationships"`
	Density           float64        `json:"density"`
	Components        int            `json:"components"`
	EntityTypes       map[string]int `json:"entity_types"`
	RelationshipTypes map[string]int `json:"relationship_types"`
}

// Statistics computes entity and relationship counts, per-type histograms,
// the directed simple-graph density |E| / (|V|*(|V|-1)), and the number of
// weakly-connected components.
func (g *Graph) Statistics() Stats {
	g.mu.RLock()
	defer g.mu.RUnlock()

	s := Stats{
		Entities:          len(g.entities),
		Relationships:     len(g.relationships),
		EntityTypes:       make(map[string]int),
		RelationshipTypes: make(map[string]int),
	}
	for _, e := range g.entities {
		s.EntityTypes[e.Type]++
	}
	for _, r := range g.relationships {
		s.RelationshipTypes[r.Type]++
	}

	if n := len(g.entities); n > 1 {
		s.Density = float64(len(g.relationships)) / float64(n*(n-1))
	}
	s.Components = g.componentCount()
	return s
}

// componentCount counts weakly-connected components. Callers must hold the
// read lock.
func (g *Graph) componentCount() int {
	visited := make(map[string]bool, len(g.entities))
	count := 0
	for _, id := range g.entityOrder {
		if visited[id] {
			continue
		}
		count++
		stack := []string{id}
		visited[id] = true
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, nID := range g.undirectedNeighborIDs(cur) {
				if !visited[nID] {
					visited[nID] = true
					stack = append(stack, nID)
				}
			}
		}
	}
	return count
}

// Finding is a single integrity issue reported by Validate.
type Finding struct {
	Kind    string `json:"kind"`
	ID      string `json:"id"`
	Message string `json:"message"`
}

const (
	FindingDanglingEndpoint = "dangling_endpoint"
	FindingIsolatedEntity   = "isolated_entity"
)

// Validate re-checks structural integrity after bulk loads. AddRelationship
// already rejects dangling endpoints, so endpoint findings indicate corrupted
// input rather than store bugs. Isolated entities (degree zero) are reported
// as warnings, not errors.
func (g *Graph) Validate() []Finding {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var findings []Finding
	for _, r := range g.relationships {
		if _, ok := g.entities[r.SourceID]; !ok {
			findings = append(findings, Finding{
				Kind:    FindingDanglingEndpoint,
				ID:      r.ID,
				Message: "relationship " + r.ID + " source " + r.SourceID + " does not exist",
			})
		}
		if _, ok := g.entities[r.TargetID]; !ok {
			findings = append(findings, Finding{
				Kind:    FindingDanglingEndpoint,
				ID:      r.ID,
				Message: "relationship " + r.ID + " target " + r.TargetID + " does not exist",
			})
		}
	}

	for _, id := range g.entityOrder {
		if len(g.outEdges[id]) == 0 && len(g.inEdges[id]) == 0 {
			findings = append(findings, Finding{
				Kind:    FindingIsolatedEntity,
				ID:      id,
				Message: "entity " + id + " has no relationships",
			})
		}
	}
	return findings
}
