// Command demo walks through the graph query engine on the bundled sample
// universe: structural lookups, similarity retrieval and, when an AI provider
// is configured, grounded natural language answers.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/lorebase/lorebase/internal/util"
	"github.com/lorebase/lorebase/pkg/ai"
	oai "github.com/lorebase/lorebase/pkg/ai/ollama"
	gai "github.com/lorebase/lorebase/pkg/ai/openai"
	"github.com/lorebase/lorebase/pkg/graph"
	"github.com/lorebase/lorebase/pkg/index"
	"github.com/lorebase/lorebase/pkg/loader"
	"github.com/lorebase/lorebase/pkg/logger"
	"github.com/lorebase/lorebase/pkg/logger/console"
	"github.com/lorebase/lorebase/pkg/query"
	"github.com/lorebase/lorebase/pkg/sample"
)

func main() {
	util.LoadEnv()

	consoleLogger := console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug: util.GetEnvBool("DEBUG", false),
	})
	logger.Init(consoleLogger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, err := sample.Universe()
	if err != nil {
		logger.Fatal("Failed to build sample graph", "err", err)
	}

	aiClient := newAIClient()
	ix := index.New(newEmbedder(aiClient))
	if err := ix.Build(ctx, g.Entities(), g.Relationships()); err != nil {
		logger.Fatal("Failed to build retrieval index", "err", err)
	}

	engine := query.New(g, ix, aiClient)

	section("Graph statistics")
	stats := engine.Statistics()
	fmt.Printf("entities: %d, relationships: %d, density: %.3f, components: %d\n",
		stats.Entities, stats.Relationships, stats.Density, stats.Components)
	for entityType, count := range stats.EntityTypes {
		fmt.Printf("  %s: %d\n", entityType, count)
	}

	section("Search: skywalker")
	for _, entity := range engine.Search("skywalker") {
		fmt.Printf("  %s (%s)\n", entity.Name(), entity.Type)
	}

	section("Neighbors of luke_skywalker")
	neighbors, relationships, err := engine.Neighbors("luke_skywalker", graph.DirectionBoth, "")
	if err != nil {
		logger.Fatal("Failed to list neighbors", "err", err)
	}
	for _, neighbor := range neighbors {
		fmt.Printf("  %s (%s)\n", neighbor.Name(), neighbor.Type)
	}
	for _, r := range relationships {
		fmt.Printf("  %s -[%s]-> %s\n", r.SourceID, r.Type, r.TargetID)
	}

	section("Shortest path: han_solo -> galactic_empire")
	path, err := engine.ShortestPath("han_solo", "galactic_empire")
	if err != nil {
		logger.Fatal("Failed to find path", "err", err)
	}
	fmt.Printf("  %s (length %d)\n", strings.Join(path.EntityIDs(), " -> "), path.Length())

	section("Suggested questions for darth_vader")
	questions, err := engine.SuggestQuestions("darth_vader")
	if err != nil {
		logger.Fatal("Failed to suggest questions", "err", err)
	}
	for _, q := range questions {
		fmt.Printf("  %s\n", q)
	}

	if path := util.GetEnv("DEMO_SNAPSHOT"); path != "" {
		section("Snapshot export")
		if err := loader.SaveSnapshotFile(path, g); err != nil {
			logger.Fatal("Failed to save snapshot", "err", err)
		}
		fmt.Printf("  wrote %s (start the server with GRAPH_SNAPSHOT=%s to serve it)\n", path, path)
	}

	if aiClient == nil {
		section("Natural language queries")
		fmt.Println("  Set AI_PROVIDER to openai or ollama to enable answer generation.")
		return
	}

	for _, question := range []string{
		"Who is the father of Luke Skywalker?",
		"How are Han Solo and the Galactic Empire connected?",
	} {
		section("Question: " + question)
		result := engine.Answer(ctx, question)
		fmt.Printf("  status: %s, confidence: %.2f\n", result.Status, result.Confidence)
		fmt.Printf("  %s\n", result.Answer)
		if len(result.SupportingEntityIDs) > 0 {
			fmt.Printf("  supporting entities: %s\n", strings.Join(result.SupportingEntityIDs, ", "))
		}
	}
}

func section(title string) {
	fmt.Printf("\n== %s ==\n", title)
}

func newAIClient() ai.Client {
	switch util.GetEnv("AI_PROVIDER") {
	case "ollama":
		client, err := oai.NewGraphOllamaClient(oai.NewGraphOllamaClientParams{
			ChatModel:      util.GetEnv("AI_CHAT_MODEL"),
			EmbeddingModel: util.GetEnv("AI_EMBED_MODEL"),

			BaseURL: util.GetEnv("AI_CHAT_URL"),
			ApiKey:  util.GetEnv("AI_CHAT_KEY"),
		})
		if err != nil {
			logger.Fatal("Failed to create Ollama client", "err", err)
		}
		return client
	case "openai":
		return gai.NewGraphOpenAIClient(gai.NewGraphOpenAIClientParams{
			ChatModel:      util.GetEnv("AI_CHAT_MODEL"),
			EmbeddingModel: util.GetEnv("AI_EMBED_MODEL"),

			ChatURL:      util.GetEnv("AI_CHAT_URL"),
			ChatKey:      util.GetEnv("AI_CHAT_KEY"),
			EmbeddingURL: util.GetEnv("AI_EMBED_URL"),
			EmbeddingKey: util.GetEnv("AI_EMBED_KEY"),
		})
	default:
		return nil
	}
}

func newEmbedder(client ai.Client) index.Embedder {
	if client != nil && util.GetEnv("AI_EMBED_MODEL") != "" {
		return index.NewAIEmbedder(client)
	}
	return index.NewLexicalEmbedder()
}
