package sample

import (
	"testing"
)

func TestUniverseBuilds(t *testing.T) {
	g, err := Universe()
	if err != nil {
		t.Fatalf("expected universe to build, got %v", err)
	}

	stats := g.Statistics()
	if stats.Entities != len(Entities()) {
		t.Fatalf("expected %d entities, got %d", len(Entities()), stats.Entities)
	}
	if stats.Relationships != len(Relationships()) {
		t.Fatalf("expected %d relationships, got %d", len(Relationships()), stats.Relationships)
	}
}

func TestUniverseHasNoFindings(t *testing.T) {
	g, err := Universe()
	if err != nil {
		t.Fatalf("expected universe to build, got %v", err)
	}
	if findings := g.Validate(); len(findings) != 0 {
		t.Fatalf("expected no findings, got %v", findings)
	}
}

func TestRelationshipIDsAreDeterministic(t *testing.T) {
	first := Relationships()
	second := Relationships()
	if len(first) != len(second) {
		t.Fatalf("expected stable relationship count, got %d and %d", len(first), len(second))
	}
	seen := map[string]bool{}
	for i, r := range first {
		if r.ID != second[i].ID {
			t.Fatalf("expected stable id at %d, got %q and %q", i, first[i].ID, second[i].ID)
		}
		if seen[r.ID] {
			t.Fatalf("expected unique relationship ids, got duplicate %q", r.ID)
		}
		seen[r.ID] = true
	}
}

func TestFamilyConnections(t *testing.T) {
	g, err := Universe()
	if err != nil {
		t.Fatalf("expected universe to build, got %v", err)
	}

	path, err := g.ShortestPath("darth_vader", "princess_leia")
	if err != nil {
		t.Fatalf("expected path, got %v", err)
	}
	if path.Length() != 1 {
		t.Fatalf("expected direct connection, got length %d", path.Length())
	}
	if path.Relationships[0].Type != "father_of" {
		t.Fatalf("expected father_of relationship, got %q", path.Relationships[0].Type)
	}
}
