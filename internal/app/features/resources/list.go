// internal/app/features/resources/list.go
package resources

import (
	"net/http"
	"strings"

	apierrors "github.com/lecternhq/lectern/internal/app/features/errors"
	resourcestore "github.com/lecternhq/lectern/internal/app/store/resources"
	"github.com/lecternhq/lectern/internal/app/system/timeouts"
)

// HandleList handles GET /api/resources. Each recognized query parameter
// is an exact-match filter; filters combine with AND.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := resourcestore.Filter{
		Batch:   strings.TrimSpace(q.Get("batch")),
		Term:    strings.TrimSpace(q.Get("term")),
		Domain:  strings.TrimSpace(q.Get("domain")),
		Subject: strings.TrimSpace(q.Get("subject")),
		Level:   strings.TrimSpace(q.Get("level")),
		Type:    strings.TrimSpace(q.Get("type")),
		Status:  strings.TrimSpace(q.Get("status")),
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list resources")
	defer cancel()

	list, err := h.Store.List(ctx, f)
	if err != nil {
		h.ErrLog.Internal(w, r, "list resources failed", err)
		return
	}
	apierrors.WriteOK(w, list)
}
