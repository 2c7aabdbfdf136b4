package loader

import (
	"os"

	"github.com/lorebase/lorebase/pkg/graph"
)

// LoadSnapshotFile reads a JSON snapshot document from disk.
func LoadSnapshotFile(path string, opts ...graph.Option) (*graph.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return graph.Load(f, opts...)
}

// SaveSnapshotFile writes the graph as a JSON snapshot document to disk.
func SaveSnapshotFile(path string, g *graph.Graph) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return g.Save(f)
}

// LoadCSVFiles reads entity and relationship CSV files and assembles them
// into a graph. A missing relationships file yields a graph with entities
// only.
func LoadCSVFiles(entitiesPath, relationshipsPath string, opts ...graph.Option) (*graph.Graph, error) {
	ef, err := os.Open(entitiesPath)
	if err != nil {
		return nil, err
	}
	defer ef.Close()

	entities, err := LoadEntitiesCSV(ef)
	if err != nil {
		return nil, err
	}

	var relationships []graph.Relationship
	if relationshipsPath != "" {
		rf, err := os.Open(relationshipsPath)
		if err != nil {
			return nil, err
		}
		defer rf.Close()

		relationships, err = LoadRelationshipsCSV(rf)
		if err != nil {
			return nil, err
		}
	}

	return graph.FromRecords(entities, relationships, opts...)
}
