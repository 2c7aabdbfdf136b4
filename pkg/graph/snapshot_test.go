package graph

import (
	"bytes"
	"reflect"
	"sort"
	"testing"
)

func TestSnapshotRoundTrip(t *testing.T) {
	g := New()
	entities := []Entity{
		{ID: "luke", Type: "character", Properties: map[string]string{"name": "Luke Skywalker", "homeworld": "Tatooine"}},
		{ID: "vader", Type: "character", Properties: map[string]string{"name": "Darth Vader"}},
		{ID: "tatooine", Type: "location", Properties: map[string]string{"name": "Tatooine"}},
	}
	for _, e := range entities {
		if err := g.AddEntity(e); err != nil {
			t.Fatal(err)
		}
	}
	rels := []Relationship{
		{ID: "r1", SourceID: "vader", TargetID: "luke", Type: "father_of", Properties: map[string]string{"note": "revealed on Bespin"}},
		{ID: "r2", SourceID: "luke", TargetID: "tatooine", Type: "born_on"},
		{ID: "r3", SourceID: "vader", TargetID: "luke", Type: "fought"},
	}
	for _, r := range rels {
		if err := g.AddRelationship(r); err != nil {
			t.Fatal(err)
		}
	}

	var buf bytes.Buffer
	if err := g.Save(&buf); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load(&buf)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if !reflect.DeepEqual(entityIDSet(g), entityIDSet(loaded)) {
		t.Errorf("entity id sets differ: %v vs %v", entityIDSet(g), entityIDSet(loaded))
	}
	if !reflect.DeepEqual(edgeMultiset(g), edgeMultiset(loaded)) {
		t.Errorf("relationship multisets differ: %v vs %v", edgeMultiset(g), edgeMultiset(loaded))
	}

	for _, want := range entities {
		got, err := loaded.GetEntity(want.ID)
		if err != nil {
			t.Fatalf("GetEntity(%s) after load error = %v", want.ID, err)
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("entity %s after round trip = %#v, want %#v", want.ID, got, want)
		}
	}
}

func TestLoadRejectsDanglingSnapshot(t *testing.T) {
	doc := `{
  "entities": [
    {"id": "luke", "type": "character", "properties": {"name": "Luke"}}
  ],
  "relationships": [
    {"id": "r1", "source_id": "luke", "target_id": "ghost", "relation_type": "knows"}
  ]
}`
	_, err := Load(bytes.NewReader([]byte(doc)))
	if err == nil {
		t.Fatal("Load() with dangling relationship succeeded, want error")
	}
}

func TestLoadRejectsMalformedJSON(t *testing.T) {
	_, err := Load(bytes.NewReader([]byte("{not json")))
	if err == nil {
		t.Fatal("Load() with malformed JSON succeeded, want error")
	}
}

func entityIDSet(g *Graph) []string {
	var ids []string
	for _, e := range g.Entities() {
		ids = append(ids, e.ID)
	}
	sort.Strings(ids)
	return ids
}

func edgeMultiset(g *Graph) []string {
	var edges []string
	for _, r := range g.Relationships() {
		edges = append(edges, r.SourceID+"|"+r.TargetID+"|"+r.Type)
	}
	sort.Strings(edges)
	return edges
}
