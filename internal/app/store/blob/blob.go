// Package blob is the hierarchical blob-storage layer: named containers
// (directory-like grouping nodes) holding uploaded files. It carries the
// three concerns the record layer needs: idempotent get-or-create of
// containers, deterministic taxonomy-derived paths, and the dual-mode
// upload transport that switches between a direct and a resumable protocol
// on payload size.
package blob

import (
	"context"
	"errors"
)

// ErrUpstream wraps non-2xx responses and network failures from the blob
// service. No operation retries on it.
var ErrUpstream = errors.New("blob: upstream transport failure")

// Container is a named grouping node in the store.
type Container struct {
	ID   string
	Name string
	URL  string
}

// File is a stored file handle with its public view URL.
type File struct {
	ID   string
	Name string
	URL  string
}

// Service is the minimal contract the core requires from a blob provider.
//
// EnsureContainer must be get-or-create: asking for an existing child by
// exact name under a parent returns it rather than duplicating it. The
// provider, not this core, owns de-duplication under concurrent creates;
// when it cannot guarantee that, duplicate containers are an accepted,
// non-fatal outcome.
type Service interface {
	EnsureContainer(ctx context.Context, parentID, name string) (Container, error)
	CreateFile(ctx context.Context, containerID, name string, data []byte, mimeType string) (File, error)

	// InitiateResumable opens an upload session for the declared file and
	// returns the session URL to send bytes to.
	InitiateResumable(ctx context.Context, containerID, name, mimeType string, size int64) (string, error)

	// PutChunk sends payload bytes to a session URL under the given
	// Content-Range and returns the finished file once the range completes
	// the declared size.
	PutChunk(ctx context.Context, sessionURL string, data []byte, contentRange string) (File, error)

	// AllowLinkViewing sets anyone-with-link read sharing on a file.
	AllowLinkViewing(ctx context.Context, fileID string) error
}
