package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"casebrief/internal/handlers"
	"casebrief/internal/service"
	"casebrief/internal/vectorstore"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	CaseService    service.CaseService
	ChatService    service.ChatService
	DB             handlers.Pinger
	VectorStore    vectorstore.VectorStore // nil when Qdrant is not configured
	CollectionName string
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	// Add chi middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(LoggerMiddleware)
	r.Use(RequestLogger)

	// Add CORS middleware
	r.Use(CORS)

	caseHandler := handlers.NewCaseHandler(deps.CaseService)
	askHandler := handlers.NewAskHandler(deps.CaseService)
	chatHandler := handlers.NewChatHandler(deps.ChatService)
	healthHandler := handlers.NewHealthHandler(deps.DB, deps.VectorStore, deps.CollectionName)

	// Register API routes
	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodGet, "/health", healthHandler)

		r.Route("/cases", func(r chi.Router) {
			r.Post("/", caseHandler.Create)
			r.Get("/", caseHandler.List)

			r.Route("/{caseID}", func(r chi.Router) {
				r.Get("/", caseHandler.Get)
				r.Delete("/", caseHandler.Delete)

				r.Post("/files", caseHandler.AddFile)
				r.Get("/files", caseHandler.ListFiles)
				r.Post("/files/{fileID}/metadata", caseHandler.ProcessFile)
				r.Get("/metadata", caseHandler.GetMetadata)
				r.Post("/metadata", caseHandler.MergeMetadata)

				r.Method(http.MethodPost, "/ask", askHandler)

				r.Post("/chat/sessions", chatHandler.OpenSession)
				r.Post("/chat/sessions/{sessionID}/messages", chatHandler.SendMessage)
				r.Delete("/chat/sessions/{sessionID}", chatHandler.CloseSession)
			})
		})
	})

	return r
}
