// internal/app/features/resources/create.go
package resources

import (
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	apierrors "github.com/lecternhq/lectern/internal/app/features/errors"
	"github.com/lecternhq/lectern/internal/app/store/blob"
	resourcestore "github.com/lecternhq/lectern/internal/app/store/resources"
	"github.com/lecternhq/lectern/internal/app/system/htmlsanitize"
	"github.com/lecternhq/lectern/internal/app/system/limits"
	"github.com/lecternhq/lectern/internal/app/system/timeouts"
)

// HandleCreate handles POST /api/resources (multipart/form-data).
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(limits.MaxUploadFormMemory); err != nil {
		h.ErrLog.BadRequest(w, r, "parse multipart form failed", err, "Invalid form data.")
		return
	}

	links, err := parseLinks(r)
	if err != nil {
		h.ErrLog.BadRequest(w, r, "parse links failed", err, err.Error())
		return
	}
	files, err := collectFiles(r.MultipartForm)
	if err != nil {
		h.ErrLog.BadRequest(w, r, "read uploads failed", err, "Could not read an uploaded file.")
		return
	}

	in := resourcestore.NewResource{
		PublishFlag:        strings.TrimSpace(r.FormValue("publish_flag")),
		PostedBy:           strings.TrimSpace(r.FormValue("posted_by")),
		VisibleFrom:        strings.TrimSpace(r.FormValue("visible_from")),
		VisibleUntil:       strings.TrimSpace(r.FormValue("visible_until")),
		Batch:              r.FormValue("batch"),
		ShowOtherBatches:   r.FormValue("show_other_batches") != "",
		Title:              htmlsanitize.StripTags(r.FormValue("title")),
		Description:        htmlsanitize.Sanitize(r.FormValue("description")),
		Term:               r.FormValue("term"),
		Domain:             r.FormValue("domain"),
		Subject:            r.FormValue("subject"),
		SessionName:        r.FormValue("session_name"),
		Level:              strings.TrimSpace(r.FormValue("level")),
		Type:               strings.TrimSpace(r.FormValue("type")),
		TypeOther:          strings.TrimSpace(r.FormValue("type_other")),
		Priority:           strings.TrimSpace(r.FormValue("priority")),
		LearningObjectives: htmlsanitize.Sanitize(r.FormValue("learning_objectives")),
		Prerequisites:      htmlsanitize.Sanitize(r.FormValue("prerequisites")),
		Notes:              htmlsanitize.Sanitize(r.FormValue("notes")),
		Links:              links,
		Files:              files,
	}

	// Uploads can carry large payloads through a resumable session, so the
	// create gets the upload tier whenever files are attached.
	tier := timeouts.Medium()
	if len(files) > 0 {
		tier = timeouts.Upload()
	}
	ctx, cancel := timeouts.WithTimeout(r.Context(), tier, h.Log, "create resource")
	defer cancel()

	created, err := h.Store.Create(ctx, in)
	if err != nil {
		if errors.Is(err, blob.ErrUpstream) {
			h.ErrLog.Upstream(w, r, "create resource: blob backend failed", err)
			return
		}
		h.ErrLog.Internal(w, r, "create resource failed", err)
		return
	}

	h.Log.Info("resource created",
		zap.String("resource_id", created.ID),
		zap.String("title", created.Title),
		zap.Int("file_count", created.FileCount),
	)
	apierrors.WriteCreated(w, created)
}
