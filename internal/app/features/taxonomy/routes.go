// internal/app/features/taxonomy/routes.go
package taxonomy

import "github.com/go-chi/chi/v5"

// Routes returns a subrouter that serves the taxonomy endpoints. Mounted
// under /api/taxonomy from bootstrap.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.HandleIndex)
	return r
}
