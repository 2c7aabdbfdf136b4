package graph

// Path is an ordered walk through the graph. Entities has one more element
// than Relationships; Relationships[i] connects Entities[i] and Entities[i+1]
// in either direction.
type Path struct {
	Entities      []Entity       `json:"entities"`
	Relationships []Relationship `json:"relationships"`
}

// Length returns the number of hops in the path.
func (p Path) Length() int {
	return len(p.Relationships)
}

// EntityIDs returns the ordered entity ids along the path.
func (p Path) EntityIDs() []string {
	ids := make([]string, 0, len(p.Entities))
	for _, e := range p.Entities {
		ids = append(ids, e.ID)
	}
	return ids
}

// ShortestPath runs a breadth-first search over the direction-collapsed graph,
// treating every multi-edge as a unit-weight undirected hop. Among equal-length
// paths the first one discovered wins, and expansion follows edge insertion
// order, so results are deterministic for a deterministically built graph.
//
// A self path has zero length. Entities in different weakly-connected
// components yield a *NoPathError.
func (g *Graph) ShortestPath(sourceID, targetID string) (Path, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if _, ok := g.entities[sourceID]; !ok {
		return Path{}, &NotFoundError{ID: sourceID}
	}
	if _, ok := g.entities[targetID]; !ok {
		return Path{}, &NotFoundError{ID: targetID}
	}

	if sourceID == targetID {
		return Path{Entities: []Entity{copyEntity(g.entities[sourceID])}}, nil
	}

	parent := make(map[string]string)
	visited := map[string]bool{sourceID: true}
	queue := []string{sourceID}

	found := false
	for len(queue) > 0 && !found {
		id := queue[0]
		queue = queue[1:]

		for _, nID := range g.undirectedNeighborIDs(id) {
			if visited[nID] {
				continue
			}
			visited[nID] = true
			parent[nID] = id
			if nID == targetID {
				found = true
				break
			}
			queue = append(queue, nID)
		}
	}

	if !found {
		return Path{}, &NoPathError{SourceID: sourceID, TargetID: targetID}
	}

	var ids []string
	for id := targetID; ; id = parent[id] {
		ids = append(ids, id)
		if id == sourceID {
			break
		}
	}
	for i, j := 0, len(ids)-1; i < j; i, j = i+1, j-1 {
		ids[i], ids[j] = ids[j], ids[i]
	}

	path := Path{Entities: make([]Entity, 0, len(ids))}
	for _, id := range ids {
		path.Entities = append(path.Entities, copyEntity(g.entities[id]))
	}
	for i := 0; i+1 < len(ids); i++ {
		r := g.connectingRelationship(ids[i], ids[i+1])
		path.Relationships = append(path.Relationships, copyRelationship(r))
	}
	return path, nil
}

// connectingRelationship returns the first relationship inserted between the
// two entities, in either direction. Callers must hold the read lock and
// guarantee adjacency.
func (g *Graph) connectingRelationship(a, b string) *Relationship {
	for _, r := range g.outEdges[a] {
		if r.TargetID == b {
			return r
		}
	}
	for _, r := range g.inEdges[a] {
		if r.SourceID == b {
			return r
		}
	}
	return nil
}
