// internal/app/store/blob/path.go
package blob

import (
	"context"
	"errors"
	"fmt"

	"github.com/lecternhq/lectern/internal/domain/models"
)

// ResourcesSegment is the fixed second path segment under every batch
// container.
const ResourcesSegment = "Resources"

// ErrEmptyPath is returned by EnsurePath when the resolved path has no
// segments to create (no batch).
var ErrEmptyPath = errors.New("blob: empty storage path")

// ResolvePath derives the ordered container names for a resource's storage
// location from its taxonomy tuple. The path is always rooted at the batch
// container followed by the literal Resources segment; the level decides
// how many taxonomy segments follow:
//
//	term            -> [batch, Resources, term]
//	domain          -> [batch, Resources, term, domain]
//	subject/session -> [batch, Resources, term, domain, subject]
//	other           -> [batch, Resources]
//
// Session-level files share the parent subject container; there is no
// per-session folder. A level missing one of its required fields degrades
// to the longest prefix it can still build instead of failing. An empty
// batch yields no path at all.
func ResolvePath(batch, level, term, domain, subject string) []string {
	if batch == "" {
		return nil
	}
	path := []string{batch, ResourcesSegment}

	depth := 0
	switch level {
	case models.LevelTerm:
		depth = 1
	case models.LevelDomain:
		depth = 2
	case models.LevelSubject, models.LevelSession:
		depth = 3
	}

	for i, seg := range []string{term, domain, subject} {
		if i >= depth || seg == "" {
			break
		}
		path = append(path, seg)
	}
	return path
}

// EnsurePath walks the path under the root container, get-or-creating each
// segment in order, and returns the final container. The first provider
// error aborts the walk and is surfaced as-is; segments already created
// stay (container creation is idempotent, so a retried call converges on
// the same containers).
func EnsurePath(ctx context.Context, svc Service, rootID string, path []string) (Container, error) {
	if len(path) == 0 {
		return Container{}, ErrEmptyPath
	}

	parent := rootID
	var c Container
	for _, name := range path {
		var err error
		c, err = svc.EnsureContainer(ctx, parent, name)
		if err != nil {
			return Container{}, fmt.Errorf("ensure container %q: %w", name, err)
		}
		parent = c.ID
	}
	return c, nil
}
