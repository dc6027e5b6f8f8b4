// Package http assembles the chi router from the handler set.
package http

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"leo-engine/internal/handlers"
	"leo-engine/internal/indexer"
	"leo-engine/internal/service"
	"leo-engine/internal/storage"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	AgentService service.AgentService
	Retriever    service.Retriever
	Memory       service.ConversationMemory
	Pipeline     *indexer.Pipeline
	Notes        storage.NoteStore
	Balances     storage.BalanceStore
	VectorStore  handlers.CollectionChecker
	DB           *sql.DB
	Collection   string
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(CORS)
	r.Use(LoggerMiddleware)

	ingestHandler := handlers.NewIngestHandler(deps.Pipeline)
	searchHandler := handlers.NewSearchHandler(deps.Retriever)
	turnHandler := handlers.NewTurnHandler(deps.AgentService)
	sessionHandler := handlers.NewSessionHandler(deps.Memory)
	noteHandler := handlers.NewNoteHandler(deps.Notes)
	balanceHandler := handlers.NewBalanceHandler(deps.Balances)
	healthHandler := handlers.NewHealthHandler(deps.VectorStore, deps.DB, deps.Collection)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodPost, "/ingest", ingestHandler)
		r.Method(http.MethodPost, "/search", searchHandler)
		r.Method(http.MethodPost, "/turn", turnHandler)

		r.Get("/sessions/{sessionKey}/context", sessionHandler.GetContext)
		r.Delete("/sessions/{sessionKey}", sessionHandler.Clear)

		r.Post("/notes", noteHandler.Create)
		r.Get("/notes", noteHandler.List)
		r.Delete("/notes/{noteID}", noteHandler.Delete)

		r.Get("/agents/{agentID}/balance", balanceHandler.Get)
		r.Post("/agents/{agentID}/credits", balanceHandler.Credit)

		r.Method(http.MethodGet, "/health", healthHandler)
	})

	return r
}
