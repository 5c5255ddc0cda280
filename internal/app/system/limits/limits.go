// internal/app/system/limits/limits.go
package limits

// Request body size limits for the API.
// These limits help prevent memory exhaustion from oversized requests.
const (
	// MaxUploadFormMemory is the in-memory threshold for multipart
	// parsing on create/update; larger file parts spill to temp files.
	MaxUploadFormMemory = 64 << 20 // 64 MB

	// MaxJSONBodySize is the maximum size for JSON update bodies, which
	// carry no files.
	MaxJSONBodySize = 1 << 20 // 1 MB

	// WriteRequestsPerMinute caps mutating API requests per client IP.
	WriteRequestsPerMinute = 60
)
