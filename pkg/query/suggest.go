package query

import (
	"fmt"

	"github.com/lorebase/lorebase/pkg/graph"
)

const maxSuggestions = 5

// SuggestQuestions proposes follow-up questions about an entity, derived from
// its neighborhood and from other entities of the same type. The output is
// deterministic and capped at five questions.
func (e *Engine) SuggestQuestions(id string) ([]string, error) {
	g := e.store()

	entity, err := g.GetEntity(id)
	if err != nil {
		return nil, err
	}

	var suggestions []string
	add := func(q string) {
		if len(suggestions) >= maxSuggestions {
			return
		}
		for _, existing := range suggestions {
			if existing == q {
				return
			}
		}
		suggestions = append(suggestions, q)
	}

	neighbors, _, err := g.Neighbors(id, graph.DirectionBoth, "")
	if err != nil {
		return nil, err
	}
	for _, n := range neighbors {
		add(fmt.Sprintf("What is the relationship between %s and %s?", entity.Name(), n.Name()))
	}

	for _, other := range g.EntitiesByType(entity.Type) {
		if other.ID == entity.ID {
			continue
		}
		add(fmt.Sprintf("What do %s and %s have in common?", entity.Name(), other.Name()))
	}

	add(fmt.Sprintf("Who or what is connected to %s?", entity.Name()))

	return suggestions, nil
}
