// internal/domain/models/resource.go
package models

import (
	"time"
)

// MaxFileSlots is the number of fixed file attachment slots on a resource.
const MaxFileSlots = 5

// MaxLinks is the maximum number of free-form link entries kept per resource.
const MaxLinks = 50

// FileRef is one uploaded file attached to a resource: the original file
// name and the public view URL returned by the blob service.
type FileRef struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Link is one named URL in a resource's free-form link list. Links are
// serialized into a single row field; entries missing either part are
// dropped at encode time.
type Link struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Resource is the persisted unit of the catalog: one learning material filed
// under the Batch/Term/Domain/Subject/Session taxonomy, with up to
// MaxFileSlots uploaded files and a variable-length link list.
//
// A resource is created with Status "published", mutated in place by update
// (full-row rewrite), and destroyed only logically by flipping Status to
// "archived". The row itself is never removed.
type Resource struct {
	ID          string     `json:"id"`
	PublishFlag string     `json:"publish_flag,omitempty"`
	PostedBy    string     `json:"posted_by,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	EditedAt    *time.Time `json:"edited_at,omitempty"`
	EditedBy    string     `json:"edited_by,omitempty"`

	// Visibility window, both ends optional.
	VisibleFrom  string `json:"visible_from,omitempty"`
	VisibleUntil string `json:"visible_until,omitempty"`

	Batch            string `json:"batch"`
	ShowOtherBatches bool   `json:"show_other_batches"`

	Title       string `json:"title"`
	Description string `json:"description,omitempty"`

	// Taxonomy tuple. Level decides how deep the storage path goes.
	Term        string `json:"term,omitempty"`
	Domain      string `json:"domain,omitempty"`
	Subject     string `json:"subject,omitempty"`
	SessionName string `json:"session_name,omitempty"`
	Level       string `json:"level"`

	// Type is one of ResourceTypes; TypeOther carries the free-text value
	// when Type is TypeOther.
	Type      string `json:"type"`
	TypeOther string `json:"type_other,omitempty"`

	Priority           string `json:"priority,omitempty"`
	LearningObjectives string `json:"learning_objectives,omitempty"`
	Prerequisites      string `json:"prerequisites,omitempty"`

	// Files are the fixed attachment slots. FileCount always equals the
	// number of non-empty slots as of the last write; link entries are not
	// counted.
	Files []FileRef `json:"files"`
	Links []Link    `json:"links"`

	// ContainerURL is set the first time a file is attached and never
	// cleared or replaced afterwards; later file additions reuse it.
	ContainerURL string `json:"container_url,omitempty"`
	FileCount    int    `json:"file_count"`

	Status string `json:"status"`
	Notes  string `json:"notes,omitempty"`
}

// HasFiles reports whether any file slot is populated.
func (r *Resource) HasFiles() bool {
	return r.FileCount > 0
}

// IsArchived reports whether the resource has been soft-deleted.
func (r *Resource) IsArchived() bool {
	return r.Status == StatusArchived
}
