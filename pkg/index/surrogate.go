package index

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lorebase/lorebase/pkg/graph"
)

// Document kinds distinguishing entity and relationship surrogates.
const (
	DocumentKindEntity       = "entity"
	DocumentKindRelationship = "relationship"
)

// Document is the searchable text surrogate of a single graph element.
type Document struct {
	Kind  string `json:"kind"`
	RefID string `json:"ref_id"`
	Text  string `json:"text"`
}

// Documents derives one surrogate per entity and per relationship, in input
// order (entities first). Entity surrogates include the names of directly
// connected entities so that one-hop context is searchable.
func Documents(entities []graph.Entity, relationships []graph.Relationship) []Document {
	names := make(map[string]string, len(entities))
	for _, e := range entities {
		names[e.ID] = e.Name()
	}

	connected := make(map[string][]string)
	seen := make(map[string]bool)
	for _, r := range relationships {
		if key := r.SourceID + "\x00" + r.TargetID; !seen[key] {
			seen[key] = true
			if name, ok := names[r.TargetID]; ok {
				connected[r.SourceID] = append(connected[r.SourceID], name)
			}
		}
		if key := r.TargetID + "\x00" + r.SourceID; !seen[key] {
			seen[key] = true
			if name, ok := names[r.SourceID]; ok {
				connected[r.TargetID] = append(connected[r.TargetID], name)
			}
		}
	}

	docs := make([]Document, 0, len(entities)+len(relationships))
	for _, e := range entities {
		docs = append(docs, Document{
			Kind:  DocumentKindEntity,
			RefID: e.ID,
			Text:  entitySurrogate(e, connected[e.ID]),
		})
	}
	for _, r := range relationships {
		docs = append(docs, Document{
			Kind:  DocumentKindRelationship,
			RefID: r.ID,
			Text:  relationshipSurrogate(r, names),
		})
	}
	return docs
}

func entitySurrogate(e graph.Entity, connectedNames []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s)", e.Name(), strings.ToLower(e.Type))
	for _, kv := range sortedProperties(e.Properties) {
		fmt.Fprintf(&b, ". %s: %s", kv[0], kv[1])
	}
	if len(connectedNames) > 0 {
		fmt.Fprintf(&b, ". connected to: %s", strings.Join(connectedNames, ", "))
	}
	return b.String()
}

func relationshipSurrogate(r graph.Relationship, names map[string]string) string {
	source := names[r.SourceID]
	if source == "" {
		source = r.SourceID
	}
	target := names[r.TargetID]
	if target == "" {
		target = r.TargetID
	}

	predicate := strings.ReplaceAll(strings.ToLower(r.Type), "_", " ")

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s %s", source, predicate, target)
	for _, kv := range sortedProperties(r.Properties) {
		fmt.Fprintf(&b, ". %s: %s", kv[0], kv[1])
	}
	return b.String()
}

func sortedProperties(props map[string]string) [][2]string {
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([][2]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, [2]string{strings.ReplaceAll(k, "_", " "), props[k]})
	}
	return out
}
