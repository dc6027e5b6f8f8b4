package main

import (
	"context"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"
	"strings"

	"leo-engine/internal/billing"
	"leo-engine/internal/chunker"
	"leo-engine/internal/config"
	"leo-engine/internal/http"
	"leo-engine/internal/indexer"
	"leo-engine/internal/lexical"
	"leo-engine/internal/llm"
	"leo-engine/internal/memory"
	"leo-engine/internal/prompts"
	"leo-engine/internal/retrieval"
	"leo-engine/internal/service"
	"leo-engine/internal/storage"
	"leo-engine/internal/usage"
	"leo-engine/internal/vectorstore"
)

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	slog.Debug("Logging configured", "level", cfg.LogLevel, "format", cfg.LogFormat)

	// Initialize database
	db, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := storage.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	slog.Info("Database initialized", "path", cfg.DBPath)

	// Create repository instances
	versionRepo := storage.NewFileVersionRepo(db)
	messageRepo := storage.NewMessageRepo(db)
	summaryRepo := storage.NewSummaryRepo(db)
	noteRepo := storage.NewNoteRepo(db)
	balanceRepo := storage.NewBalanceRepo(db, cfg.DefaultBalance)

	ctx := context.Background()

	// Initialize Qdrant vector store
	vectorStore, err := vectorstore.NewQdrantStore(cfg.QdrantURL)
	if err != nil {
		log.Fatalf("Failed to create Qdrant client: %v", err)
	}

	// Ensure collection exists with correct vector size
	if err := vectorStore.EnsureCollection(ctx, cfg.QdrantCollection, cfg.QdrantVectorSize); err != nil {
		log.Fatalf("Failed to ensure Qdrant collection: %v", err)
	}
	slog.Info("Qdrant collection ready", "collection", cfg.QdrantCollection, "vector_size", cfg.QdrantVectorSize)

	// Validate embedding client vector size (fail-fast)
	embedder := llm.NewEmbeddingsClient(cfg.EmbeddingBaseURL, cfg.LLMAPIKey, cfg.EmbeddingModelName, cfg.QdrantVectorSize)
	testEmbeddings, err := embedder.EmbedTexts(ctx, []string{"test"})
	if err != nil {
		log.Fatalf("Failed to validate embedding client: %v", err)
	}
	if len(testEmbeddings) == 0 || len(testEmbeddings[0]) != cfg.QdrantVectorSize {
		log.Fatalf("Embedding vector size mismatch: expected %d, got %d", cfg.QdrantVectorSize, len(testEmbeddings[0]))
	}
	slog.Info("Embedding client validated", "vector_size", cfg.QdrantVectorSize)

	// Open the lexical full-text index
	lexicalIndex, err := lexical.NewBleveIndex(cfg.LexicalIndexPath)
	if err != nil {
		log.Fatalf("Failed to open lexical index: %v", err)
	}
	defer func() {
		_ = lexicalIndex.Close()
	}()
	slog.Info("Lexical index ready", "path", cfg.LexicalIndexPath)

	// Optional usage reporting to the platform gateway
	usageRecorder := usage.NewRecorder(cfg.UsageWebhookURL)
	if usageRecorder.Enabled() {
		slog.Info("Usage reporting enabled", "webhook", cfg.UsageWebhookURL)
	}

	// Create the ingestion pipeline
	textChunker := chunker.New(chunker.Options{
		MaxChunkSize:     cfg.MaxChunkSize,
		MinChunkSize:     cfg.MinChunkSize,
		OverlapSentences: cfg.OverlapSentences,
	})
	calculator := billing.NewCalculator(versionRepo)
	pipeline := indexer.NewPipeline(
		textChunker,
		calculator,
		versionRepo,
		balanceRepo,
		embedder,
		vectorStore,
		cfg.QdrantCollection,
		lexicalIndex,
		usageRecorder,
	)

	// Create LLM client (external service layer)
	llmClient := llm.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModelName)

	// Create the hybrid retrieval engine
	retriever := retrieval.NewEngine(embedder, vectorStore, cfg.QdrantCollection, lexicalIndex, cfg.SearchTimeout)
	slog.Info("Retrieval engine initialized")

	// Conversation memory and the agent service
	promptStore := prompts.NewStore()
	compactor := memory.NewCompactor(messageRepo, summaryRepo, llmClient, promptStore, usageRecorder, cfg.MaxMessages, cfg.KeepMessages)
	agentService := service.NewAgentService(retriever, compactor, llmClient, noteRepo, promptStore, usageRecorder)

	// Create router with dependencies
	deps := &http.Deps{
		AgentService: agentService,
		Retriever:    retriever,
		Memory:       compactor,
		Pipeline:     pipeline,
		Notes:        noteRepo,
		Balances:     balanceRepo,
		VectorStore:  vectorStore,
		DB:           db,
		Collection:   cfg.QdrantCollection,
	}
	router := http.NewRouter(deps)

	// Start API server
	addr := ":" + cfg.APIPort
	slog.Info("Starting API server", "addr", addr)
	slog.Debug("LLM configuration", "base_url", cfg.LLMBaseURL, "model", cfg.LLMModelName)
	if err := nethttp.ListenAndServe(addr, router); err != nil {
		log.Fatalf("API server failed to start: %v", err)
	}
}

// parseLogLevel maps the configured level string onto a slog.Level.
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
