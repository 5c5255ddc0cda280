// internal/app/features/resources/archive.go
package resources

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	apierrors "github.com/lecternhq/lectern/internal/app/features/errors"
	resourcestore "github.com/lecternhq/lectern/internal/app/store/resources"
	"github.com/lecternhq/lectern/internal/app/system/timeouts"
)

// HandleArchive handles POST /api/resources/{id}/archive. Archiving is a
// soft delete: only the status changes and the row stays in the table.
func (h *Handler) HandleArchive(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "archive resource")
	defer cancel()

	if err := h.Store.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, resourcestore.ErrNotFound) {
			h.ErrLog.NotFound(w, "No resource with that ID.")
			return
		}
		h.ErrLog.Internal(w, r, "archive resource failed", err)
		return
	}

	h.Log.Info("resource archived", zap.String("resource_id", id))
	apierrors.WriteOK(w, map[string]string{"id": id, "status": "archived"})
}
