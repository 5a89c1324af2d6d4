package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/raido/internal/navservice"
	"github.com/starford/raido/internal/sorting"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
func NewRouter(svc *navservice.Service, defaultSort sorting.Spec, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	h := NewHandler(svc)
	h.SetDefaultSort(defaultSort)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Search and listing.
	r.Get("/notes", h.SearchNotes)

	// Notes CRUD.
	r.Post("/notes", h.CreateNote)
	r.Post("/notes/move", h.MoveNote)
	r.Get("/notes/*", h.GetNote)
	r.Put("/notes/*", h.UpdateNote)
	r.Delete("/notes/*", h.DeleteNote)

	// SSE endpoint (protected by same auth middleware).
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
