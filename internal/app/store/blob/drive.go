// internal/app/store/blob/drive.go
package blob

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"
)

// Production Google Drive v3 endpoints.
const (
	DefaultDriveAPIBase    = "https://www.googleapis.com/drive/v3"
	DefaultDriveUploadBase = "https://www.googleapis.com/upload/drive/v3"
)

const folderMIMEType = "application/vnd.google-apps.folder"

// DriveService implements Service against the Google Drive v3 REST API.
// The HTTP client must carry authorization (an oauth2 service-account
// client in production).
type DriveService struct {
	hc         *http.Client
	apiBase    string
	uploadBase string
}

// NewDriveService returns a client over the given endpoints; empty bases
// default to the production API.
func NewDriveService(hc *http.Client, apiBase, uploadBase string) *DriveService {
	if apiBase == "" {
		apiBase = DefaultDriveAPIBase
	}
	if uploadBase == "" {
		uploadBase = DefaultDriveUploadBase
	}
	return &DriveService{hc: hc, apiBase: apiBase, uploadBase: uploadBase}
}

// driveFile mirrors the file resource fields we ask for.
type driveFile struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	WebViewLink string `json:"webViewLink"`
}

// EnsureContainer looks for a child folder with the exact name under the
// parent and creates it only when absent. Concurrent callers creating the
// same name are de-duplicated by Drive's own semantics only to the extent
// Drive provides them; a duplicate folder is non-fatal.
func (s *DriveService) EnsureContainer(ctx context.Context, parentID, name string) (Container, error) {
	q := fmt.Sprintf("'%s' in parents and name = '%s' and mimeType = '%s' and trashed = false",
		parentID, escapeQueryValue(name), folderMIMEType)
	u := fmt.Sprintf("%s/files?q=%s&fields=%s",
		s.apiBase, url.QueryEscape(q), url.QueryEscape("files(id,name,webViewLink)"))

	var listing struct {
		Files []driveFile `json:"files"`
	}
	if err := s.doJSON(ctx, http.MethodGet, u, nil, &listing); err != nil {
		return Container{}, err
	}
	if len(listing.Files) > 0 {
		f := listing.Files[0]
		return Container{ID: f.ID, Name: f.Name, URL: folderURL(f)}, nil
	}

	body := map[string]any{
		"name":     name,
		"mimeType": folderMIMEType,
		"parents":  []string{parentID},
	}
	u = fmt.Sprintf("%s/files?fields=%s", s.apiBase, url.QueryEscape("id,name,webViewLink"))
	var created driveFile
	if err := s.doJSON(ctx, http.MethodPost, u, body, &created); err != nil {
		return Container{}, err
	}
	return Container{ID: created.ID, Name: created.Name, URL: folderURL(created)}, nil
}

// CreateFile uploads the whole payload in one multipart/related request
// (the direct protocol).
func (s *DriveService) CreateFile(ctx context.Context, containerID, name string, data []byte, mimeType string) (File, error) {
	meta := map[string]any{
		"name":    name,
		"parents": []string{containerID},
	}
	metaJSON, err := json.Marshal(meta)
	if err != nil {
		return File{}, fmt.Errorf("encode file metadata: %w", err)
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	metaHdr := textproto.MIMEHeader{}
	metaHdr.Set("Content-Type", "application/json; charset=UTF-8")
	part, err := mw.CreatePart(metaHdr)
	if err != nil {
		return File{}, fmt.Errorf("build upload body: %w", err)
	}
	part.Write(metaJSON)

	mediaHdr := textproto.MIMEHeader{}
	mediaHdr.Set("Content-Type", mimeType)
	part, err = mw.CreatePart(mediaHdr)
	if err != nil {
		return File{}, fmt.Errorf("build upload body: %w", err)
	}
	part.Write(data)
	mw.Close()

	u := fmt.Sprintf("%s/files?uploadType=multipart&fields=%s",
		s.uploadBase, url.QueryEscape("id,name,webViewLink"))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, &buf)
	if err != nil {
		return File{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "multipart/related; boundary="+mw.Boundary())

	var created driveFile
	if err := s.send(req, &created); err != nil {
		return File{}, err
	}
	return File{ID: created.ID, Name: created.Name, URL: fileURL(created)}, nil
}

// InitiateResumable opens an upload session. Anything but a 200 with a
// Location header is a hard failure of the whole upload; there is no retry.
func (s *DriveService) InitiateResumable(ctx context.Context, containerID, name, mimeType string, size int64) (string, error) {
	meta := map[string]any{
		"name":    name,
		"parents": []string{containerID},
	}
	metaJSON, err := json.Marshal(meta)
	if err != nil {
		return "", fmt.Errorf("encode file metadata: %w", err)
	}

	u := fmt.Sprintf("%s/files?uploadType=resumable&fields=%s",
		s.uploadBase, url.QueryEscape("id,name,webViewLink"))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(metaJSON))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=UTF-8")
	req.Header.Set("X-Upload-Content-Type", mimeType)
	req.Header.Set("X-Upload-Content-Length", strconv.FormatInt(size, 10))

	resp, err := s.hc.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: initiate resumable: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("%w: initiate resumable: %s: %s", ErrUpstream, resp.Status, snippet)
	}
	loc := resp.Header.Get("Location")
	if loc == "" {
		return "", fmt.Errorf("%w: initiate resumable: missing Location header", ErrUpstream)
	}
	return loc, nil
}

// PutChunk sends payload bytes to the session URL. 200 and 201 are both
// success (Drive answers either depending on whether the range completes
// the file).
func (s *DriveService) PutChunk(ctx context.Context, sessionURL string, data []byte, contentRange string) (File, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, sessionURL, bytes.NewReader(data))
	if err != nil {
		return File{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Range", contentRange)

	resp, err := s.hc.Do(req)
	if err != nil {
		return File{}, fmt.Errorf("%w: put chunk: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return File{}, fmt.Errorf("%w: put chunk: %s: %s", ErrUpstream, resp.Status, snippet)
	}

	var created driveFile
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return File{}, fmt.Errorf("decode upload response: %w", err)
	}
	return File{ID: created.ID, Name: created.Name, URL: fileURL(created)}, nil
}

// AllowLinkViewing grants anyone-with-link read access.
func (s *DriveService) AllowLinkViewing(ctx context.Context, fileID string) error {
	body := map[string]any{
		"role": "reader",
		"type": "anyone",
	}
	u := fmt.Sprintf("%s/files/%s/permissions", s.apiBase, url.PathEscape(fileID))
	return s.doJSON(ctx, http.MethodPost, u, body, nil)
}

// doJSON runs a JSON request/response call against the Drive API.
func (s *DriveService) doJSON(ctx context.Context, method, u string, body, out any) error {
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, rdr)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json; charset=UTF-8")
	}
	return s.send(req, out)
}

// send executes a request, requiring a 2xx response and decoding into out
// when non-nil.
func (s *DriveService) send(req *http.Request, out any) error {
	resp, err := s.hc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: %s: %s", ErrUpstream, resp.Status, snippet)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func folderURL(f driveFile) string {
	if f.WebViewLink != "" {
		return f.WebViewLink
	}
	return "https://drive.google.com/drive/folders/" + f.ID
}

func fileURL(f driveFile) string {
	if f.WebViewLink != "" {
		return f.WebViewLink
	}
	return "https://drive.google.com/file/d/" + f.ID + "/view"
}

// escapeQueryValue escapes the characters Drive's query syntax treats
// specially inside a quoted literal.
func escapeQueryValue(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	return strings.ReplaceAll(v, `'`, `\'`)
}
