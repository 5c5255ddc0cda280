// internal/app/store/resources/resourcestore.go
package resourcestore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lecternhq/lectern/internal/app/store/blob"
	"github.com/lecternhq/lectern/internal/app/store/rowstore"
	"github.com/lecternhq/lectern/internal/domain/models"
)

// ErrNotFound is returned when no row carries the requested resource ID.
var ErrNotFound = errors.New("resource not found")

// Store is the record layer over the resources row table. Every lookup by
// ID is a linear scan: the table has no secondary index, which is the
// accepted scalability ceiling of this design. There is no locking either;
// concurrent updates of the same ID follow last-writer-wins.
type Store struct {
	table    rowstore.Table
	blobs    blob.Service
	uploader *blob.Uploader
	rootID   string
	log      *zap.Logger
}

// New builds a Store. rootContainerID names the well-known top-level
// container all storage paths hang under.
func New(table rowstore.Table, blobs blob.Service, rootContainerID string, logger *zap.Logger) *Store {
	return &Store{
		table:    table,
		blobs:    blobs,
		uploader: blob.NewUploader(blobs),
		rootID:   rootContainerID,
		log:      logger,
	}
}

// FileUpload is one incoming file payload. Size decisions downstream use
// len(Data), never caller-declared metadata.
type FileUpload struct {
	Name     string
	Data     []byte
	MimeType string
}

// NewResource carries the fields of a create request. Missing optional
// fields are silently defaulted; only uploads and the backing table can
// fail a create.
type NewResource struct {
	PublishFlag  string
	PostedBy     string
	VisibleFrom  string
	VisibleUntil string

	Batch            string
	ShowOtherBatches bool

	Title       string
	Description string

	Term        string
	Domain      string
	Subject     string
	SessionName string
	Level       string

	Type      string
	TypeOther string

	Priority           string
	LearningObjectives string
	Prerequisites      string
	Notes              string

	Links []models.Link
	Files []FileUpload
}

// Create generates the ID and timestamp, uploads any files into the
// resolved taxonomy container, and appends the new row. Upload or
// container failures abort before any row is written, so the table never
// references files that don't exist.
func (s *Store) Create(ctx context.Context, in NewResource) (models.Resource, error) {
	now := time.Now().UTC()

	r := models.Resource{
		ID:                 generateID(now),
		PublishFlag:        in.PublishFlag,
		PostedBy:           in.PostedBy,
		CreatedAt:          now,
		VisibleFrom:        in.VisibleFrom,
		VisibleUntil:       in.VisibleUntil,
		Batch:              strings.TrimSpace(in.Batch),
		ShowOtherBatches:   in.ShowOtherBatches,
		Title:              strings.TrimSpace(in.Title),
		Description:        in.Description,
		Term:               strings.TrimSpace(in.Term),
		Domain:             strings.TrimSpace(in.Domain),
		Subject:            strings.TrimSpace(in.Subject),
		SessionName:        strings.TrimSpace(in.SessionName),
		Level:              in.Level,
		Type:               in.Type,
		TypeOther:          in.TypeOther,
		Priority:           in.Priority,
		LearningObjectives: in.LearningObjectives,
		Prerequisites:      in.Prerequisites,
		Notes:              in.Notes,
		Links:              in.Links,
		Files:              make([]models.FileRef, models.MaxFileSlots),
		Status:             models.StatusPublished,
	}
	if !models.IsValidLevel(r.Level) {
		r.Level = models.LevelOther
	}
	if !models.IsValidResourceType(r.Type) {
		r.Type = models.DefaultResourceType
	}

	if len(in.Files) > 0 {
		container, err := s.ensureContainer(ctx, r)
		if err != nil {
			return models.Resource{}, err
		}
		r.ContainerURL = container.URL
		if err := s.uploadIntoSlots(ctx, container.ID, in.Files, &r); err != nil {
			return models.Resource{}, err
		}
	}

	if err := s.table.AppendRow(ctx, encodeRow(r)); err != nil {
		if r.FileCount > 0 {
			// Known gap: the files are already uploaded and there is no
			// compensating delete, so they are orphaned.
			s.log.Warn("row append failed after upload; uploaded files orphaned",
				zap.String("resource_id", r.ID),
				zap.Int("file_count", r.FileCount),
				zap.Error(err))
		}
		return models.Resource{}, fmt.Errorf("append resource row: %w", err)
	}
	return r, nil
}

// Filter is an AND-combined set of exact-equality row filters. Empty
// fields match everything.
type Filter struct {
	Batch   string
	Term    string
	Domain  string
	Subject string
	Level   string
	Type    string
	Status  string
}

func (f Filter) matches(r models.Resource) bool {
	if f.Batch != "" && r.Batch != f.Batch {
		return false
	}
	if f.Term != "" && r.Term != f.Term {
		return false
	}
	if f.Domain != "" && r.Domain != f.Domain {
		return false
	}
	if f.Subject != "" && r.Subject != f.Subject {
		return false
	}
	if f.Level != "" && r.Level != f.Level {
		return false
	}
	if f.Type != "" && r.Type != f.Type {
		return false
	}
	if f.Status != "" && r.Status != f.Status {
		return false
	}
	return true
}

// List scans the whole table, rebuilds each row into a resource, and keeps
// the ones matching the filter. There is no pagination.
func (s *Store) List(ctx context.Context, f Filter) ([]models.Resource, error) {
	rows, err := s.table.ReadAllRows(ctx)
	if err != nil {
		return nil, fmt.Errorf("read resource rows: %w", err)
	}

	out := make([]models.Resource, 0, len(rows))
	for _, row := range rows {
		if rowstore.Cell(row, colID) == "" {
			continue
		}
		r := decodeRow(row)
		if f.matches(r) {
			out = append(out, r)
		}
	}
	return out, nil
}

// ResourceUpdate carries the fields of an update request. Pointer fields
// distinguish absent from empty: nil keeps the stored value, a non-nil
// pointer overwrites it even when it points at an empty string. That is
// the one policy for clearing a field. Level, Type, and Status are
// enumerated; values outside their sets are ignored, not stored.
type ResourceUpdate struct {
	EditedBy string

	PublishFlag  *string
	PostedBy     *string
	VisibleFrom  *string
	VisibleUntil *string

	Batch            *string
	ShowOtherBatches *bool

	Title       *string
	Description *string

	Term        *string
	Domain      *string
	Subject     *string
	SessionName *string
	Level       *string

	Type      *string
	TypeOther *string

	Priority           *string
	LearningObjectives *string
	Prerequisites      *string
	Notes              *string

	Status *string

	// Links replaces the whole link list when non-nil.
	Links *[]models.Link

	// Files are appended into the first empty slots; slots never shrink
	// through update.
	Files []FileUpload
}

// Update finds the row by ID, merges the incoming fields over the stored
// values, uploads any new files, and rewrites the full row in place.
// EditedAt is always refreshed. The storage container is created only when
// none exists yet and new files arrive; a stored container URL is never
// replaced.
func (s *Store) Update(ctx context.Context, id string, upd ResourceUpdate) (models.Resource, error) {
	rowIndex, r, err := s.findByID(ctx, id)
	if err != nil {
		return models.Resource{}, err
	}

	applyString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	applyString(&r.PublishFlag, upd.PublishFlag)
	applyString(&r.PostedBy, upd.PostedBy)
	applyString(&r.VisibleFrom, upd.VisibleFrom)
	applyString(&r.VisibleUntil, upd.VisibleUntil)
	applyString(&r.Batch, upd.Batch)
	applyString(&r.Title, upd.Title)
	applyString(&r.Description, upd.Description)
	applyString(&r.Term, upd.Term)
	applyString(&r.Domain, upd.Domain)
	applyString(&r.Subject, upd.Subject)
	applyString(&r.SessionName, upd.SessionName)
	applyString(&r.TypeOther, upd.TypeOther)
	applyString(&r.Priority, upd.Priority)
	applyString(&r.LearningObjectives, upd.LearningObjectives)
	applyString(&r.Prerequisites, upd.Prerequisites)
	applyString(&r.Notes, upd.Notes)
	if upd.ShowOtherBatches != nil {
		r.ShowOtherBatches = *upd.ShowOtherBatches
	}
	// Enumerated fields only change to known values; an invalid value
	// keeps what is stored rather than corrupting path resolution.
	if upd.Level != nil && models.IsValidLevel(*upd.Level) {
		r.Level = *upd.Level
	}
	if upd.Type != nil && models.IsValidResourceType(*upd.Type) {
		r.Type = *upd.Type
	}
	if upd.Status != nil && models.IsValidStatus(*upd.Status) {
		r.Status = *upd.Status
	}
	if upd.Links != nil {
		r.Links = *upd.Links
	}

	if len(upd.Files) > 0 {
		// Get-or-create is idempotent, so re-walking the path lands on the
		// container the earlier files went to.
		container, err := s.ensureContainer(ctx, r)
		if err != nil {
			return models.Resource{}, err
		}
		if r.ContainerURL == "" {
			r.ContainerURL = container.URL
		}
		if err := s.uploadIntoSlots(ctx, container.ID, upd.Files, &r); err != nil {
			return models.Resource{}, err
		}
	}

	now := time.Now().UTC()
	r.EditedAt = &now
	r.EditedBy = upd.EditedBy

	if err := s.table.WriteRow(ctx, rowIndex, encodeRow(r)); err != nil {
		if len(upd.Files) > 0 {
			// Known gap: the files are already uploaded and there is no
			// compensating delete, so they are orphaned.
			s.log.Warn("row rewrite failed after upload; uploaded files orphaned",
				zap.String("resource_id", r.ID),
				zap.Int("new_files", len(upd.Files)),
				zap.Error(err))
		}
		return models.Resource{}, fmt.Errorf("rewrite resource row: %w", err)
	}
	return r, nil
}

// SoftDelete flips the status cell to archived, touching nothing else in
// the row.
func (s *Store) SoftDelete(ctx context.Context, id string) error {
	rowIndex, _, err := s.findByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.table.WriteCell(ctx, rowIndex, colStatus, models.StatusArchived); err != nil {
		return fmt.Errorf("archive resource: %w", err)
	}
	return nil
}

// findByID scans the table for the row carrying the ID.
func (s *Store) findByID(ctx context.Context, id string) (int, models.Resource, error) {
	rows, err := s.table.ReadAllRows(ctx)
	if err != nil {
		return 0, models.Resource{}, fmt.Errorf("read resource rows: %w", err)
	}
	for i, row := range rows {
		if rowstore.Cell(row, colID) == id {
			return i, decodeRow(row), nil
		}
	}
	return 0, models.Resource{}, ErrNotFound
}

// ensureContainer resolves the taxonomy path and walks it with
// get-or-create semantics.
func (s *Store) ensureContainer(ctx context.Context, r models.Resource) (blob.Container, error) {
	path := blob.ResolvePath(r.Batch, r.Level, r.Term, r.Domain, r.Subject)
	container, err := blob.EnsurePath(ctx, s.blobs, s.rootID, path)
	if err != nil {
		return blob.Container{}, fmt.Errorf("resolve storage container: %w", err)
	}
	return container, nil
}

// uploadIntoSlots uploads each file and records it in the first empty
// slots. Files beyond the slot capacity are dropped with a warning.
func (s *Store) uploadIntoSlots(ctx context.Context, containerID string, files []FileUpload, r *models.Resource) error {
	slot := 0
	for _, f := range files {
		for slot < models.MaxFileSlots && (r.Files[slot].Name != "" || r.Files[slot].URL != "") {
			slot++
		}
		if slot >= models.MaxFileSlots {
			s.log.Warn("file slots exhausted; dropping extra upload",
				zap.String("resource_id", r.ID),
				zap.String("file", f.Name))
			break
		}

		stored, err := s.uploader.Upload(ctx, containerID, f.Name, f.Data, f.MimeType)
		if err != nil {
			return fmt.Errorf("upload %q: %w", f.Name, err)
		}
		r.Files[slot] = models.FileRef{Name: stored.Name, URL: stored.URL}
		slot++
	}

	count := 0
	for _, fr := range r.Files {
		if fr.Name != "" || fr.URL != "" {
			count++
		}
	}
	r.FileCount = count
	return nil
}

// generateID builds the opaque record ID: creation time in millis (base
// 36) plus a random suffix. Uniqueness is by generation only and is never
// checked against existing rows; the collision probability is accepted as
// negligible.
func generateID(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return base36(now.UnixMilli()) + "-" + suffix
}

func base36(n int64) string {
	const digits = "0123456789abcdefghijklmnopqrstuvwxyz"
	if n <= 0 {
		return "0"
	}
	var b []byte
	for n > 0 {
		b = append([]byte{digits[n%36]}, b...)
		n /= 36
	}
	return string(b)
}
