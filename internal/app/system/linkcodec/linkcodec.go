// Package linkcodec encodes a resource's link list into the single row
// field it is stored in, and decodes it back.
//
// The wire form is "name|url" pairs joined by commas. The format is lossy
// on purpose: a name or URL containing '|' or ',' cannot survive a round
// trip, and malformed pieces are dropped silently rather than reported.
// Decode never fails.
package linkcodec

import (
	"strings"

	"github.com/lecternhq/lectern/internal/domain/models"
)

// Encode serializes at most models.MaxLinks entries. Entries missing a name
// or URL are excluded before joining; each field is trimmed of surrounding
// whitespace.
func Encode(links []models.Link) string {
	if len(links) > models.MaxLinks {
		links = links[:models.MaxLinks]
	}
	parts := make([]string, 0, len(links))
	for _, l := range links {
		name := strings.TrimSpace(l.Name)
		url := strings.TrimSpace(l.URL)
		if name == "" || url == "" {
			continue
		}
		parts = append(parts, name+"|"+url)
	}
	return strings.Join(parts, ",")
}

// Decode parses the stored field back into link entries. A piece decodes to
// an entry only when splitting on '|' yields exactly two non-empty parts;
// anything else is skipped.
func Decode(s string) []models.Link {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var links []models.Link
	for _, piece := range strings.Split(s, ",") {
		fields := strings.Split(piece, "|")
		if len(fields) != 2 {
			continue
		}
		name := strings.TrimSpace(fields[0])
		url := strings.TrimSpace(fields[1])
		if name == "" || url == "" {
			continue
		}
		links = append(links, models.Link{Name: name, URL: url})
	}
	return links
}
