package index

import (
	"context"
	"hash/fnv"
	"strings"
	"unicode"

	"github.com/lorebase/lorebase/pkg/ai"

	"gonum.org/v1/gonum/blas/gonum"
)

// Embedder turns surrogate text into a vector and scores two vectors against
// each other. The index never inspects which implementation is behind the
// interface; the caller picks one at construction time.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Similarity(a, b []float32) float64
}

// Gonum handles SIMD dispatch internally.
var gonumEngine = gonum.Implementation{}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	dot := gonumEngine.Sdot(len(a), a, 1, b, 1)
	normA := gonumEngine.Snrm2(len(a), a, 1)
	normB := gonumEngine.Snrm2(len(b), b, 1)
	if normA == 0 || normB == 0 {
		return 0
	}
	return float64(dot / (normA * normB))
}

// AIEmbedder produces embeddings through an ai.Client and compares them with
// cosine similarity.
type AIEmbedder struct {
	client ai.Client
}

// NewAIEmbedder creates an Embedder backed by the given AI client.
func NewAIEmbedder(client ai.Client) *AIEmbedder {
	return &AIEmbedder{client: client}
}

func (e *AIEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return e.client.GenerateEmbedding(ctx, []byte(text))
}

func (e *AIEmbedder) Similarity(a, b []float32) float64 {
	return cosineSimilarity(a, b)
}

const lexicalDimensions = 4096

// LexicalEmbedder is a deterministic fallback that needs no network and no
// model. It hashes lowercased word tokens into a fixed-size term-frequency
// vector, so cosine similarity reduces to normalized token overlap: texts
// sharing no words score exactly zero.
type LexicalEmbedder struct{}

// NewLexicalEmbedder creates the local fallback embedder.
func NewLexicalEmbedder() *LexicalEmbedder {
	return &LexicalEmbedder{}
}

func (e *LexicalEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	vec := make([]float32, lexicalDimensions)
	for _, token := range tokenize(text) {
		h := fnv.New32a()
		h.Write([]byte(token))
		vec[h.Sum32()%lexicalDimensions]++
	}
	return vec, nil
}

func (e *LexicalEmbedder) Similarity(a, b []float32) float64 {
	return cosineSimilarity(a, b)
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}
