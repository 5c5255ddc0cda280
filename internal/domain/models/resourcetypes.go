// internal/domain/models/resourcetypes.go
package models

// Canonical resource type identifiers.
//
// These values are stored in the type column and used throughout the
// application as stable keys. TypeOther is the reserved free-text fallback:
// when a resource uses it, the custom label lives in Resource.TypeOther.
const (
	TypeSlides     = "slides"
	TypeAssignment = "assignment"
	TypeReading    = "reading"
	TypeReference  = "reference"
	TypeRecording  = "recording"
	TypeExercise   = "exercise"
	TypeQuiz       = "quiz"
	TypeProject    = "project"
	TypeDataset    = "dataset"
	TypeOther      = "other"
)

// ResourceTypes is the full set of allowed type identifiers and the single
// source of truth for validation.
var ResourceTypes = []string{
	TypeSlides,
	TypeAssignment,
	TypeReading,
	TypeReference,
	TypeRecording,
	TypeExercise,
	TypeQuiz,
	TypeProject,
	TypeDataset,
	TypeOther,
}

// DefaultResourceType is used when no type is provided.
const DefaultResourceType = TypeReference

// IsValidResourceType reports whether t is a known type identifier.
func IsValidResourceType(t string) bool {
	for _, v := range ResourceTypes {
		if v == t {
			return true
		}
	}
	return false
}

// Resource status values. Archived rows stay in the table; they are only
// excluded by status filters.
const (
	StatusPublished = "published"
	StatusArchived  = "archived"
)

// IsValidStatus reports whether s is a known status value.
func IsValidStatus(s string) bool {
	return s == StatusPublished || s == StatusArchived
}
