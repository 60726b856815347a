package router

import (
	"os"
	"path/filepath"

	"http-server/http"
	"http-server/http/status"
)

// Dir reads and writes files under a single root directory. The root is
// fixed at construction and shared read-only across connections; the file
// system itself is the shared mutable resource, so concurrent writes to the
// same name race there.
type Dir struct {
	root string
}

func NewDir(root string) *Dir { return &Dir{root: root} }

// Serve answers a /files/ request for name, the part of the target after
// the prefix. The path is joined onto the root without traversal
// sanitization.
func (d *Dir) Serve(request *http.Request, name string) *http.Response {
	path := filepath.Join(d.root, name)

	switch request.Method {
	case http.MethodPost:
		// Create or truncate; the cause of a failure is not distinguished.
		if err := os.WriteFile(path, request.Body, 0o644); err != nil {
			return http.NewResponse(status.InternalServerError, "text/plain", nil)
		}
		return http.NewResponse(status.Created, "text/plain", nil)

	default:
		content, err := os.ReadFile(path)
		if err != nil {
			return http.NewResponse(status.NotFound, "text/plain", nil)
		}
		return http.NewResponse(status.OK, "application/octet-stream", content)
	}
}
