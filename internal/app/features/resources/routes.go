// internal/app/features/resources/routes.go
package resources

import "github.com/go-chi/chi/v5"

// Routes mounts the resource API under whatever base path the caller
// chooses (typically "/api/resources" from bootstrap).
//
// Example from bootstrap:
//
//	h := resources.NewHandler(store, errLog, logger)
//	r.Mount("/api/resources", resources.Routes(h))
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	// CREATE
	r.Post("/", h.HandleCreate)

	// LIST (query-param filters)
	r.Get("/", h.HandleList)

	// UPDATE (partial; multipart or JSON)
	r.Patch("/{id}", h.HandleUpdate)

	// SOFT DELETE
	r.Post("/{id}/archive", h.HandleArchive)

	return r
}
