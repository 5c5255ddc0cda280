// internal/app/store/blob/memory.go
package blob

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// MemoryRootID is the implicit root container of a MemoryService.
const MemoryRootID = "root"

// MemoryService is an in-memory Service for tests and local development.
// It honors get-or-create semantics (exact name match under a parent) and
// records uploads and sharing grants for inspection.
type MemoryService struct {
	mu         sync.Mutex
	containers map[string]*memContainer // by ID
	files      map[string]*memFile      // by ID
	shared     map[string]bool          // fileID -> link viewing allowed

	// SessionPuts counts PutChunk calls, letting tests assert which
	// protocol an upload took.
	SessionPuts int
}

type memContainer struct {
	id, parent, name string
}

type memFile struct {
	id, container, name, mimeType string
	data                          []byte
	contentRange                  string
}

// NewMemoryService returns an empty service containing only the root.
func NewMemoryService() *MemoryService {
	return &MemoryService{
		containers: map[string]*memContainer{MemoryRootID: {id: MemoryRootID, name: MemoryRootID}},
		files:      make(map[string]*memFile),
		shared:     make(map[string]bool),
	}
}

func (s *MemoryService) EnsureContainer(ctx context.Context, parentID, name string) (Container, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.containers[parentID]; !ok {
		return Container{}, fmt.Errorf("%w: unknown parent %q", ErrUpstream, parentID)
	}
	for _, c := range s.containers {
		if c.parent == parentID && c.name == name {
			return Container{ID: c.id, Name: c.name, URL: s.containerURL(c)}, nil
		}
	}

	c := &memContainer{id: uuid.NewString(), parent: parentID, name: name}
	s.containers[c.id] = c
	return Container{ID: c.id, Name: c.name, URL: s.containerURL(c)}, nil
}

func (s *MemoryService) CreateFile(ctx context.Context, containerID, name string, data []byte, mimeType string) (File, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.containers[containerID]; !ok {
		return File{}, fmt.Errorf("%w: unknown container %q", ErrUpstream, containerID)
	}
	f := &memFile{
		id:        uuid.NewString(),
		container: containerID,
		name:      name,
		mimeType:  mimeType,
		data:      append([]byte(nil), data...),
	}
	s.files[f.id] = f
	return File{ID: f.id, Name: f.name, URL: "memblob://file/" + f.id}, nil
}

func (s *MemoryService) InitiateResumable(ctx context.Context, containerID, name, mimeType string, size int64) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.containers[containerID]; !ok {
		return "", fmt.Errorf("%w: unknown container %q", ErrUpstream, containerID)
	}
	f := &memFile{id: uuid.NewString(), container: containerID, name: name, mimeType: mimeType}
	s.files[f.id] = f
	return "memblob://session/" + f.id, nil
}

func (s *MemoryService) PutChunk(ctx context.Context, sessionURL string, data []byte, contentRange string) (File, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := strings.TrimPrefix(sessionURL, "memblob://session/")
	f, ok := s.files[id]
	if !ok {
		return File{}, fmt.Errorf("%w: unknown session %q", ErrUpstream, sessionURL)
	}
	f.data = append([]byte(nil), data...)
	f.contentRange = contentRange
	s.SessionPuts++
	return File{ID: f.id, Name: f.name, URL: "memblob://file/" + f.id}, nil
}

func (s *MemoryService) AllowLinkViewing(ctx context.Context, fileID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.files[fileID]; !ok {
		return fmt.Errorf("%w: unknown file %q", ErrUpstream, fileID)
	}
	s.shared[fileID] = true
	return nil
}

// ContainerCount returns the number of containers excluding the root.
func (s *MemoryService) ContainerCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.containers) - 1
}

// FileData returns the stored bytes of a file by ID.
func (s *MemoryService) FileData(fileID string) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	if f, ok := s.files[fileID]; ok {
		return append([]byte(nil), f.data...)
	}
	return nil
}

// IsShared reports whether link viewing was granted on the file.
func (s *MemoryService) IsShared(fileID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shared[fileID]
}

// LastContentRange returns the Content-Range recorded for the file, empty
// when it was uploaded directly.
func (s *MemoryService) LastContentRange(fileID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if f, ok := s.files[fileID]; ok {
		return f.contentRange
	}
	return ""
}

func (s *MemoryService) containerURL(c *memContainer) string {
	return "memblob://container/" + c.id
}
