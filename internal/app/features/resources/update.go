// internal/app/features/resources/update.go
package resources

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	apierrors "github.com/lecternhq/lectern/internal/app/features/errors"
	"github.com/lecternhq/lectern/internal/app/store/blob"
	resourcestore "github.com/lecternhq/lectern/internal/app/store/resources"
	"github.com/lecternhq/lectern/internal/app/system/htmlsanitize"
	"github.com/lecternhq/lectern/internal/app/system/limits"
	"github.com/lecternhq/lectern/internal/app/system/timeouts"
	"github.com/lecternhq/lectern/internal/domain/models"
)

// updateRequest is the JSON body of a PATCH. Absent fields stay nil and
// keep the stored value; present-but-empty values clear it.
type updateRequest struct {
	EditedBy string `json:"edited_by"`

	PublishFlag  *string `json:"publish_flag"`
	PostedBy     *string `json:"posted_by"`
	VisibleFrom  *string `json:"visible_from"`
	VisibleUntil *string `json:"visible_until"`

	Batch            *string `json:"batch"`
	ShowOtherBatches *bool   `json:"show_other_batches"`

	Title       *string `json:"title"`
	Description *string `json:"description"`

	Term        *string `json:"term"`
	Domain      *string `json:"domain"`
	Subject     *string `json:"subject"`
	SessionName *string `json:"session_name"`
	Level       *string `json:"level"`

	Type      *string `json:"type"`
	TypeOther *string `json:"type_other"`

	Priority           *string `json:"priority"`
	LearningObjectives *string `json:"learning_objectives"`
	Prerequisites      *string `json:"prerequisites"`
	Notes              *string `json:"notes"`

	Status *string      `json:"status"`
	Links  *[]linkInput `json:"links"`
}

// HandleUpdate handles PATCH /api/resources/{id}. The body is either JSON
// or multipart/form-data; multipart is required to attach new files.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var (
		upd resourcestore.ResourceUpdate
		err error
	)
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		upd, err = h.updateFromForm(r)
	} else {
		upd, err = h.updateFromJSON(r)
	}
	if err != nil {
		h.ErrLog.BadRequest(w, r, "parse update failed", err, err.Error())
		return
	}

	tier := timeouts.Medium()
	if len(upd.Files) > 0 {
		tier = timeouts.Upload()
	}
	ctx, cancel := timeouts.WithTimeout(r.Context(), tier, h.Log, "update resource")
	defer cancel()

	updated, err := h.Store.Update(ctx, id, upd)
	if err != nil {
		switch {
		case errors.Is(err, resourcestore.ErrNotFound):
			h.ErrLog.NotFound(w, "No resource with that ID.")
		case errors.Is(err, blob.ErrUpstream):
			h.ErrLog.Upstream(w, r, "update resource: blob backend failed", err)
		default:
			h.ErrLog.Internal(w, r, "update resource failed", err)
		}
		return
	}

	h.Log.Info("resource updated", zap.String("resource_id", updated.ID))
	apierrors.WriteOK(w, updated)
}

func (h *Handler) updateFromJSON(r *http.Request) (resourcestore.ResourceUpdate, error) {
	var req updateRequest
	dec := json.NewDecoder(io.LimitReader(r.Body, limits.MaxJSONBodySize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return resourcestore.ResourceUpdate{}, errors.New("request body is not valid JSON")
	}

	upd := resourcestore.ResourceUpdate{
		EditedBy:           strings.TrimSpace(req.EditedBy),
		PublishFlag:        req.PublishFlag,
		PostedBy:           req.PostedBy,
		VisibleFrom:        req.VisibleFrom,
		VisibleUntil:       req.VisibleUntil,
		Batch:              req.Batch,
		ShowOtherBatches:   req.ShowOtherBatches,
		Title:              sanitizePtr(req.Title, htmlsanitize.StripTags),
		Description:        sanitizePtr(req.Description, htmlsanitize.Sanitize),
		Term:               req.Term,
		Domain:             req.Domain,
		Subject:            req.Subject,
		SessionName:        req.SessionName,
		Level:              req.Level,
		Type:               req.Type,
		TypeOther:          req.TypeOther,
		Priority:           req.Priority,
		LearningObjectives: sanitizePtr(req.LearningObjectives, htmlsanitize.Sanitize),
		Prerequisites:      sanitizePtr(req.Prerequisites, htmlsanitize.Sanitize),
		Notes:              sanitizePtr(req.Notes, htmlsanitize.Sanitize),
		Status:             req.Status,
	}
	if req.Links != nil {
		links := make([]models.Link, 0, len(*req.Links))
		for _, l := range *req.Links {
			link, err := buildLink(l.Name, l.URL)
			if err != nil {
				return resourcestore.ResourceUpdate{}, err
			}
			links = append(links, link)
		}
		upd.Links = &links
	}
	return upd, nil
}

func (h *Handler) updateFromForm(r *http.Request) (resourcestore.ResourceUpdate, error) {
	if err := r.ParseMultipartForm(limits.MaxUploadFormMemory); err != nil {
		return resourcestore.ResourceUpdate{}, errors.New("invalid form data")
	}

	upd := resourcestore.ResourceUpdate{
		EditedBy:           strings.TrimSpace(r.FormValue("edited_by")),
		PublishFlag:        formPtr(r, "publish_flag"),
		PostedBy:           formPtr(r, "posted_by"),
		VisibleFrom:        formPtr(r, "visible_from"),
		VisibleUntil:       formPtr(r, "visible_until"),
		Batch:              formPtr(r, "batch"),
		Title:              sanitizePtr(formPtr(r, "title"), htmlsanitize.StripTags),
		Description:        sanitizePtr(formPtr(r, "description"), htmlsanitize.Sanitize),
		Term:               formPtr(r, "term"),
		Domain:             formPtr(r, "domain"),
		Subject:            formPtr(r, "subject"),
		SessionName:        formPtr(r, "session_name"),
		Level:              formPtr(r, "level"),
		Type:               formPtr(r, "type"),
		TypeOther:          formPtr(r, "type_other"),
		Priority:           formPtr(r, "priority"),
		LearningObjectives: sanitizePtr(formPtr(r, "learning_objectives"), htmlsanitize.Sanitize),
		Prerequisites:      sanitizePtr(formPtr(r, "prerequisites"), htmlsanitize.Sanitize),
		Notes:              sanitizePtr(formPtr(r, "notes"), htmlsanitize.Sanitize),
		Status:             formPtr(r, "status"),
	}
	if hasFormField(r, "show_other_batches") {
		v := r.FormValue("show_other_batches") != ""
		upd.ShowOtherBatches = &v
	}
	if hasFormField(r, "links") || hasFormField(r, "link_name[0]") {
		links, err := parseLinks(r)
		if err != nil {
			return resourcestore.ResourceUpdate{}, err
		}
		upd.Links = &links
	}

	files, err := collectFiles(r.MultipartForm)
	if err != nil {
		return resourcestore.ResourceUpdate{}, err
	}
	upd.Files = files
	return upd, nil
}

// formPtr returns nil when the form omits the key, and a pointer to the
// trimmed value (including empty) when it is present.
func formPtr(r *http.Request, key string) *string {
	if !hasFormField(r, key) {
		return nil
	}
	v := strings.TrimSpace(r.FormValue(key))
	return &v
}

func sanitizePtr(s *string, clean func(string) string) *string {
	if s == nil {
		return nil
	}
	v := clean(*s)
	return &v
}
