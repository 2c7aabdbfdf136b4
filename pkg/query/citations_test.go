package query

import (
	"reflect"
	"testing"
)

func TestNormalizeCitations(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "already normalized",
			input: "Vader is Luke's father [[r_father]].",
			want:  "Vader is Luke's father [[r_father]].",
		},
		{
			name:  "bold double brackets stripped",
			input: "Vader is Luke's father **[[r_father]]**.",
			want:  "Vader is Luke's father [[r_father]].",
		},
		{
			name:  "single brackets upgraded",
			input: "Vader is Luke's father [r_father].",
			want:  "Vader is Luke's father [[r_father]].",
		},
		{
			name:  "markdown link untouched",
			input: "See [the wiki](https://example.com) for more.",
			want:  "See [the wiki](https://example.com) for more.",
		},
		{
			name:  "adjacent duplicates collapsed",
			input: "Luke lives on Tatooine [[tatooine]] [[tatooine]].",
			want:  "Luke lives on Tatooine [[tatooine]].",
		},
		{
			name:  "adjacent distinct ids kept",
			input: "They are family [[luke_skywalker]]  [[darth_vader]].",
			want:  "They are family [[luke_skywalker]] [[darth_vader]].",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizeCitations(tt.input); got != tt.want {
				t.Errorf("normalizeCitations(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestExtractCitations(t *testing.T) {
	input := "Vader [[darth_vader]] is the father of Luke [[luke_skywalker]] [[r_father]]. Vader [[darth_vader]] turned."
	want := []string{"darth_vader", "luke_skywalker", "r_father"}
	if got := extractCitations(input); !reflect.DeepEqual(got, want) {
		t.Errorf("extractCitations() = %v, want %v", got, want)
	}
}

func TestExtractCitationsNone(t *testing.T) {
	if got := extractCitations("no citations here"); len(got) != 0 {
		t.Errorf("expected no citations, got %v", got)
	}
}
