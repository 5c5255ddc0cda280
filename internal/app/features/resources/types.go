// internal/app/features/resources/types.go
package resources

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/urlutil"

	resourcestore "github.com/lecternhq/lectern/internal/app/store/resources"
	"github.com/lecternhq/lectern/internal/domain/models"
)

// filesField is the repeated multipart field carrying file uploads.
const filesField = "files"

// linkInput mirrors one entry of the "links" JSON array.
type linkInput struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// parseLinks reads links from the form: either a "links" JSON array or the
// repeated link_name[i]/link_url[i] pairs the portal form posts. Link URLs
// must be absolute http(s) URLs.
func parseLinks(r *http.Request) ([]models.Link, error) {
	if raw := strings.TrimSpace(r.FormValue("links")); raw != "" {
		var in []linkInput
		if err := json.Unmarshal([]byte(raw), &in); err != nil {
			return nil, fmt.Errorf("links field is not a valid JSON array: %w", err)
		}
		out := make([]models.Link, 0, len(in))
		for _, l := range in {
			link, err := buildLink(l.Name, l.URL)
			if err != nil {
				return nil, err
			}
			out = append(out, link)
		}
		return out, nil
	}

	var out []models.Link
	for i := 0; ; i++ {
		name := strings.TrimSpace(r.FormValue(fmt.Sprintf("link_name[%d]", i)))
		url := strings.TrimSpace(r.FormValue(fmt.Sprintf("link_url[%d]", i)))
		if name == "" && url == "" {
			break
		}
		link, err := buildLink(name, url)
		if err != nil {
			return nil, err
		}
		out = append(out, link)
	}
	return out, nil
}

func buildLink(name, url string) (models.Link, error) {
	name = strings.TrimSpace(name)
	url = strings.TrimSpace(url)
	if name == "" || url == "" {
		return models.Link{}, fmt.Errorf("link entries need both a name and a URL")
	}
	if !urlutil.IsValidAbsHTTPURL(url) {
		return models.Link{}, fmt.Errorf("link URL %q is not a valid absolute URL", url)
	}
	return models.Link{Name: name, URL: url}, nil
}

// collectFiles reads the uploaded file parts into memory. The record store
// decides the upload protocol from the byte length, so the whole payload
// is buffered here.
func collectFiles(form *multipart.Form) ([]resourcestore.FileUpload, error) {
	if form == nil {
		return nil, nil
	}
	headers := form.File[filesField]
	out := make([]resourcestore.FileUpload, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("open upload %q: %w", fh.Filename, err)
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("read upload %q: %w", fh.Filename, err)
		}
		out = append(out, resourcestore.FileUpload{
			Name:     fh.Filename,
			Data:     data,
			MimeType: fh.Header.Get("Content-Type"),
		})
	}
	return out, nil
}

// hasFormField reports whether the form carries the key at all, letting
// update handlers distinguish "omitted" from "present but empty".
func hasFormField(r *http.Request, key string) bool {
	if r.MultipartForm != nil {
		if _, ok := r.MultipartForm.Value[key]; ok {
			return true
		}
	}
	_, ok := r.PostForm[key]
	return ok
}
