package ai

import (
	"reflect"
	"testing"
)

type intentResult struct {
	Entities     []string `json:"entities"`
	SemanticTerm string   `json:"semantic_term"`
}

func TestUnmarshalFlexible(t *testing.T) {
	want := intentResult{
		Entities:     []string{"Luke Skywalker", "Darth Vader"},
		SemanticTerm: "family",
	}

	tests := []struct {
		name  string
		input string
	}{
		{
			name:  "standard json",
			input: `{"entities": ["Luke Skywalker", "Darth Vader"], "semantic_term": "family"}`,
		},
		{
			name:  "double encoded",
			input: `"{\"entities\": [\"Luke Skywalker\", \"Darth Vader\"], \"semantic_term\": \"family\"}"`,
		},
		{
			name:  "malformed but repairable",
			input: `{entities: ["Luke Skywalker", "Darth Vader"], semantic_term: "family"}`,
		},
		{
			name: "surrounding whitespace",
			input: `
  {"entities": ["Luke Skywalker", "Darth Vader"], "semantic_term": "family"}
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got intentResult
			if err := UnmarshalFlexible(tt.input, &got); err != nil {
				t.Fatalf("UnmarshalFlexible() error = %v", err)
			}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("UnmarshalFlexible() = %+v, want %+v", got, want)
			}
		})
	}
}

func TestUnmarshalFlexibleUnrepairable(t *testing.T) {
	var got intentResult
	if err := UnmarshalFlexible("not json at all {{{", &got); err == nil {
		t.Error("UnmarshalFlexible() with garbage input succeeded, want error")
	}
}

func TestGenerateSchema(t *testing.T) {
	schema := GenerateSchema(intentResult{})
	if schema == nil {
		t.Fatal("GenerateSchema() returned nil")
	}
	schema = GenerateSchema(&intentResult{})
	if schema == nil {
		t.Fatal("GenerateSchema() with pointer returned nil")
	}
}
