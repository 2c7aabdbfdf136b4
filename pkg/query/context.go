package query

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lorebase/lorebase/pkg/graph"
	"github.com/lorebase/lorebase/pkg/index"

	"github.com/pkoukk/tiktoken-go"
)

const encodingName = "o200k_base"

const (
	sectionRelevantEntities = iota
	sectionRelationships
	sectionNeighborhood
)

var sectionHeaders = map[int]string{
	sectionRelevantEntities: "Relevant Entities:",
	sectionRelationships:    "Connecting Relationships:",
	sectionNeighborhood:     "Neighborhood:",
}

// contextRow is one candidate line of the assembled context block. Rows
// compete for the token budget by score.
type contextRow struct {
	section int
	kind    string
	id      string
	text    string
	score   float64
}

func entityRow(section int, e graph.Entity, score float64) contextRow {
	var b strings.Builder
	fmt.Fprintf(&b, "[[%s]] %s (%s)", e.ID, e.Name(), strings.ToLower(e.Type))
	facts := entityFacts(e)
	if facts != "" {
		fmt.Fprintf(&b, ": %s", facts)
	}
	return contextRow{
		section: section,
		kind:    index.DocumentKindEntity,
		id:      e.ID,
		text:    b.String(),
		score:   score,
	}
}

func relationshipRow(g *graph.Graph, r graph.Relationship, score float64) contextRow {
	source := r.SourceID
	if e, err := g.GetEntity(r.SourceID); err == nil {
		source = e.Name()
	}
	target := r.TargetID
	if e, err := g.GetEntity(r.TargetID); err == nil {
		target = e.Name()
	}
	predicate := strings.ReplaceAll(strings.ToLower(r.Type), "_", " ")

	var b strings.Builder
	fmt.Fprintf(&b, "[[%s]] %s %s %s", r.ID, source, predicate, target)
	if facts := propertyFacts(r.Properties, nil); facts != "" {
		fmt.Fprintf(&b, ": %s", facts)
	}
	return contextRow{
		section: sectionRelationships,
		kind:    index.DocumentKindRelationship,
		id:      r.ID,
		text:    b.String(),
		score:   score,
	}
}

func entityFacts(e graph.Entity) string {
	// the name is already part of the row prefix
	return propertyFacts(e.Properties, map[string]bool{"name": true})
}

func propertyFacts(props map[string]string, skip map[string]bool) string {
	keys := make([]string, 0, len(props))
	for k := range props {
		if skip[k] {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", strings.ReplaceAll(k, "_", " "), props[k]))
	}
	return strings.Join(parts, "; ")
}

// renderContext fits the candidate rows into the token budget, highest score
// first, and renders the surviving rows grouped into their sections. The top
// row is always kept so the context is never empty.
func renderContext(rows []contextRow, budgetTokens int) (string, []contextRow, error) {
	if len(rows) == 0 {
		return "", nil, nil
	}

	enc, err := tiktoken.GetEncoding(encodingName)
	if err != nil {
		return "", nil, err
	}

	order := make([]int, len(rows))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return rows[order[a]].score > rows[order[b]].score
	})

	kept := make(map[int]bool, len(rows))
	spent := 0
	for _, i := range order {
		cost := len(enc.Encode(rows[i].text, nil, nil))
		if len(kept) > 0 && spent+cost > budgetTokens {
			continue
		}
		kept[i] = true
		spent += cost
	}

	var b strings.Builder
	keptRows := make([]contextRow, 0, len(kept))
	for section := sectionRelevantEntities; section <= sectionNeighborhood; section++ {
		var lines []string
		for i, row := range rows {
			if row.section != section || !kept[i] {
				continue
			}
			lines = append(lines, row.text)
			keptRows = append(keptRows, row)
		}
		if len(lines) == 0 {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(sectionHeaders[section])
		b.WriteString("\n")
		b.WriteString(strings.Join(lines, "\n"))
	}
	return b.String(), keptRows, nil
}
