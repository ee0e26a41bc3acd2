// Package api exposes the collections over a JSON HTTP API.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nhle/meeting-tracker/internal/collection"
	"github.com/nhle/meeting-tracker/internal/model"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Client *collection.Client
	Logger zerolog.Logger

	// Now and NewID default to time.Now and uuid.NewString.
	Now   func() time.Time
	NewID func() string
}

// NewRouter creates the HTTP router for the API.
func NewRouter(deps Deps) http.Handler {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.NewID == nil {
		deps.NewID = uuid.NewString
	}

	resources := map[string]resource{
		model.CollectionMeetings:  newHandler(deps.Client.Meetings, "date", deps.Now, deps.NewID),
		model.CollectionTodos:     newHandler(deps.Client.Todos, "createdAt", deps.Now, deps.NewID),
		model.CollectionLearnings: newHandler(deps.Client.Learnings, "createdAt", deps.Now, deps.NewID),
	}

	r := chi.NewRouter()
	r.Use(requestLogging(deps.Logger)...)
	r.Use(middleware.Recoverer)
	r.Use(cors)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/api/{collection}", serve(resources, resource.list))
	r.Post("/api/{collection}", serve(resources, resource.create))
	r.Put("/api/{collection}/{id}", serve(resources, resource.update))
	r.Delete("/api/{collection}/{id}", serve(resources, resource.remove))

	return r
}

// serve resolves {collection} and hands the request to fn, or answers 404.
func serve(resources map[string]resource, fn func(resource, http.ResponseWriter, *http.Request)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "collection")
		res, ok := resources[name]
		if !ok {
			writeError(w, r, http.StatusNotFound, "unknown collection: "+name)
			return
		}
		fn(res, w, r)
	}
}
