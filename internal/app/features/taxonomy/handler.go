// internal/app/features/taxonomy/handler.go

// Package taxonomy serves the dropdown index consumed by the portal forms.
package taxonomy

import (
	"net/http"

	"go.uber.org/zap"

	apierrors "github.com/lecternhq/lectern/internal/app/features/errors"
	taxonomystore "github.com/lecternhq/lectern/internal/app/store/taxonomy"
	"github.com/lecternhq/lectern/internal/app/system/timeouts"
)

// Handler owns the taxonomy API endpoint.
type Handler struct {
	Store  *taxonomystore.Store
	Log    *zap.Logger
	ErrLog *apierrors.ErrorLogger
}

// NewHandler constructs a Handler bound to the given taxonomy store and
// logger.
func NewHandler(store *taxonomystore.Store, errLog *apierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Store:  store,
		Log:    logger,
		ErrLog: errLog,
	}
}

// HandleIndex handles GET /api/taxonomy. The index is rebuilt from the
// taxonomy table on every call.
func (h *Handler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "build taxonomy index")
	defer cancel()

	idx, err := h.Store.Build(ctx)
	if err != nil {
		h.ErrLog.Internal(w, r, "build taxonomy index failed", err)
		return
	}
	apierrors.WriteOK(w, idx)
}
