package query

import (
	"errors"
	"reflect"
	"testing"

	"github.com/lorebase/lorebase/pkg/graph"
)

func TestSuggestQuestions(t *testing.T) {
	engine := buildTestEngine(t, nil)

	suggestions, err := engine.SuggestQuestions("luke_skywalker")
	if err != nil {
		t.Fatalf("SuggestQuestions: %v", err)
	}
	if len(suggestions) == 0 || len(suggestions) > maxSuggestions {
		t.Fatalf("got %d suggestions, want 1..%d", len(suggestions), maxSuggestions)
	}

	want := []string{
		"What is the relationship between Luke Skywalker and Tatooine?",
		"What is the relationship between Luke Skywalker and Darth Vader?",
		"What do Luke Skywalker and Darth Vader have in common?",
		"Who or what is connected to Luke Skywalker?",
	}
	if !reflect.DeepEqual(suggestions, want) {
		t.Errorf("SuggestQuestions = %#v, want %#v", suggestions, want)
	}

	// deterministic across calls
	again, err := engine.SuggestQuestions("luke_skywalker")
	if err != nil {
		t.Fatalf("SuggestQuestions: %v", err)
	}
	if !reflect.DeepEqual(suggestions, again) {
		t.Error("SuggestQuestions is not deterministic")
	}
}

func TestSuggestQuestionsUnknownEntity(t *testing.T) {
	engine := buildTestEngine(t, nil)

	_, err := engine.SuggestQuestions("ghost")
	var notFound *graph.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}
