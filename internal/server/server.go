package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	mid "github.com/lorebase/lorebase/internal/server/middleware"
	"github.com/lorebase/lorebase/internal/util"
	"github.com/lorebase/lorebase/pkg/ai"
	oai "github.com/lorebase/lorebase/pkg/ai/ollama"
	gai "github.com/lorebase/lorebase/pkg/ai/openai"
	"github.com/lorebase/lorebase/pkg/graph"
	"github.com/lorebase/lorebase/pkg/index"
	"github.com/lorebase/lorebase/pkg/loader"
	"github.com/lorebase/lorebase/pkg/logger"
	"github.com/lorebase/lorebase/pkg/query"
	"github.com/lorebase/lorebase/pkg/sample"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i any) error {
	if err := cv.validator.Struct(i); err != nil {
		return err
	}
	return nil
}

func Init() {
	e := echo.New()
	e.HideBanner = true
	e.Validator = &CustomValidator{validator: validator.New()}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	aiClient := newAIClient()

	g, err := loadGraph()
	if err != nil {
		logger.Fatal("Failed to load graph", "err", err)
	}

	ix := index.New(newEmbedder(aiClient))
	if err := ix.Build(ctx, g.Entities(), g.Relationships()); err != nil {
		logger.Fatal("Failed to build retrieval index", "err", err)
	}

	engine := query.New(g, ix, aiClient,
		query.WithTopK(int(util.GetEnvNumeric("QUERY_TOP_K", 5))),
		query.WithContextTokens(int(util.GetEnvNumeric("QUERY_CONTEXT_TOKENS", 3000))),
		query.WithTimeout(time.Duration(util.GetEnvNumeric("AI_TIMEOUT_SEC", 120))*time.Second),
		query.WithIntentExtraction(util.GetEnvBool("QUERY_INTENT_EXTRACTION", true)),
	)

	e.Use(mid.AppContextMiddleware(engine))
	e.Use(middleware.CORS())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	RegisterRoutes(e)

	go func() {
		port := util.GetEnvString("PORT", "8080")
		logger.Info("Starting server", "port", port)
		if err := e.Start(":" + port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed shutting down server", "err", err)
		}
	}()

	<-ctx.Done()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Failed to shutdown server", "err", err)
	}
}

// newAIClient builds the configured AI backend. It returns nil when no
// provider is configured; the engine then degrades to structural answers.
func newAIClient() ai.Client {
	switch util.GetEnv("AI_PROVIDER") {
	case "ollama":
		client, err := oai.NewGraphOllamaClient(oai.NewGraphOllamaClientParams{
			ChatModel:      util.GetEnv("AI_CHAT_MODEL"),
			EmbeddingModel: util.GetEnv("AI_EMBED_MODEL"),

			BaseURL: util.GetEnv("AI_CHAT_URL"),
			ApiKey:  util.GetEnv("AI_CHAT_KEY"),

			TimeoutMin: int(util.GetEnvNumeric("AI_TIMEOUT_MIN", 5)),
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

			TimeoutMin: int(util.GetEnvNumeric("AI_TIMEOUT_MIN", 5)),
		})
	default:
		logger.Info("No AI provider configured, running without generation")
		return nil
	}
}

// newEmbedder picks the retrieval embedder. Model-backed embeddings need a
// configured embedding model; otherwise retrieval falls back to the lexical
// embedder, which needs no network.
func newEmbedder(client ai.Client) index.Embedder {
	if client != nil && util.GetEnv("AI_EMBED_MODEL") != "" {
		return index.NewAIEmbedder(client)
	}
	return index.NewLexicalEmbedder()
}

// loadGraph builds the startup graph from a JSON snapshot, from CSV files or
// from the bundled sample universe, in that order of preference.
func loadGraph() (*graph.Graph, error) {
	if path := util.GetEnv("GRAPH_SNAPSHOT"); path != "" {
		logger.Info("Loading graph snapshot", "path", path)
		return loader.LoadSnapshotFile(path)
	}

	entitiesCSV := util.GetEnv("GRAPH_ENTITIES_CSV")
	relationshipsCSV := util.GetEnv("GRAPH_RELATIONSHIPS_CSV")
	if entitiesCSV != "" && relationshipsCSV != "" {
		logger.Info("Loading graph from CSV", "entities", entitiesCSV, "relationships", relationshipsCSV)
		return loader.LoadCSVFiles(entitiesCSV, relationshipsCSV)
	}

	logger.Info("Loading bundled sample graph")
	return sample.Universe()
}
