// internal/app/store/resources/row.go
package resourcestore

import (
	"strconv"
	"strings"
	"time"

	"github.com/lecternhq/lectern/internal/app/store/rowstore"
	"github.com/lecternhq/lectern/internal/app/system/linkcodec"
	"github.com/lecternhq/lectern/internal/domain/models"
)

// Column layout of the resources table. The order is part of the storage
// contract: existing data is addressed positionally, so columns are only
// ever appended, never reordered or removed.
const (
	colID = iota
	colPublishFlag
	colPostedBy
	colCreatedAt
	colEditedAt
	colEditedBy
	colVisibleFrom
	colVisibleUntil
	colBatch
	colShowOtherBatches
	colTitle
	colDescription
	colTerm
	colDomain
	colSubject
	colSessionName
	colLevel
	colType
	colTypeOther
	colPriority
	colLearningObjectives
	colPrerequisites
	colFileSlots // first of MaxFileSlots (name, url) pairs
)

const (
	colLinks        = colFileSlots + 2*models.MaxFileSlots // 32
	colContainerURL = colLinks + 1
	colFileCount    = colLinks + 2
	colStatus       = colLinks + 3
	colNotes        = colLinks + 4

	rowWidth = colNotes + 1 // 37
)

const timeLayout = time.RFC3339

// encodeRow flattens a resource into its 37-cell row.
func encodeRow(r models.Resource) []string {
	row := make([]string, rowWidth)
	row[colID] = r.ID
	row[colPublishFlag] = r.PublishFlag
	row[colPostedBy] = r.PostedBy
	row[colCreatedAt] = encodeTime(r.CreatedAt)
	if r.EditedAt != nil {
		row[colEditedAt] = encodeTime(*r.EditedAt)
	}
	row[colEditedBy] = r.EditedBy
	row[colVisibleFrom] = r.VisibleFrom
	row[colVisibleUntil] = r.VisibleUntil
	row[colBatch] = r.Batch
	row[colShowOtherBatches] = strconv.FormatBool(r.ShowOtherBatches)
	row[colTitle] = r.Title
	row[colDescription] = r.Description
	row[colTerm] = r.Term
	row[colDomain] = r.Domain
	row[colSubject] = r.Subject
	row[colSessionName] = r.SessionName
	row[colLevel] = r.Level
	row[colType] = r.Type
	row[colTypeOther] = r.TypeOther
	row[colPriority] = r.Priority
	row[colLearningObjectives] = r.LearningObjectives
	row[colPrerequisites] = r.Prerequisites
	for i := 0; i < models.MaxFileSlots; i++ {
		if i < len(r.Files) {
			row[colFileSlots+2*i] = r.Files[i].Name
			row[colFileSlots+2*i+1] = r.Files[i].URL
		}
	}
	row[colLinks] = linkcodec.Encode(r.Links)
	row[colContainerURL] = r.ContainerURL
	row[colFileCount] = strconv.Itoa(r.FileCount)
	row[colStatus] = r.Status
	row[colNotes] = r.Notes
	return row
}

// decodeRow rebuilds a resource from a stored row. Decoding is lenient:
// short rows read as empty cells and malformed timestamps or counters fall
// back to zero values rather than failing the whole listing.
func decodeRow(row []string) models.Resource {
	r := models.Resource{
		ID:                 rowstore.Cell(row, colID),
		PublishFlag:        rowstore.Cell(row, colPublishFlag),
		PostedBy:           rowstore.Cell(row, colPostedBy),
		CreatedAt:          decodeTime(rowstore.Cell(row, colCreatedAt)),
		EditedBy:           rowstore.Cell(row, colEditedBy),
		VisibleFrom:        rowstore.Cell(row, colVisibleFrom),
		VisibleUntil:       rowstore.Cell(row, colVisibleUntil),
		Batch:              rowstore.Cell(row, colBatch),
		ShowOtherBatches:   decodeBool(rowstore.Cell(row, colShowOtherBatches)),
		Title:              rowstore.Cell(row, colTitle),
		Description:        rowstore.Cell(row, colDescription),
		Term:               rowstore.Cell(row, colTerm),
		Domain:             rowstore.Cell(row, colDomain),
		Subject:            rowstore.Cell(row, colSubject),
		SessionName:        rowstore.Cell(row, colSessionName),
		Level:              rowstore.Cell(row, colLevel),
		Type:               rowstore.Cell(row, colType),
		TypeOther:          rowstore.Cell(row, colTypeOther),
		Priority:           rowstore.Cell(row, colPriority),
		LearningObjectives: rowstore.Cell(row, colLearningObjectives),
		Prerequisites:      rowstore.Cell(row, colPrerequisites),
		Links:              linkcodec.Decode(rowstore.Cell(row, colLinks)),
		ContainerURL:       rowstore.Cell(row, colContainerURL),
		Status:             rowstore.Cell(row, colStatus),
		Notes:              rowstore.Cell(row, colNotes),
	}

	if v := rowstore.Cell(row, colEditedAt); v != "" {
		t := decodeTime(v)
		if !t.IsZero() {
			r.EditedAt = &t
		}
	}

	r.Files = make([]models.FileRef, models.MaxFileSlots)
	count := 0
	for i := 0; i < models.MaxFileSlots; i++ {
		r.Files[i] = models.FileRef{
			Name: rowstore.Cell(row, colFileSlots+2*i),
			URL:  rowstore.Cell(row, colFileSlots+2*i+1),
		}
		if r.Files[i].Name != "" || r.Files[i].URL != "" {
			count++
		}
	}

	if n, err := strconv.Atoi(rowstore.Cell(row, colFileCount)); err == nil {
		r.FileCount = n
	} else {
		r.FileCount = count
	}
	return r
}

func encodeTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(timeLayout)
}

func decodeTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}

func decodeBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "1":
		return true
	}
	return false
}
