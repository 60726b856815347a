// Package router maps request targets onto the fixed route set. Dispatch is
// a pure function over ordered pattern checks; there is no registration and
// nothing mutates after construction.
package router

import (
	"strings"

	"http-server/http"
	"http-server/http/status"
	"http-server/server"
)

const (
	echoPrefix  = "/echo/"
	filesPrefix = "/files/"
)

// New builds the dispatch function. Checks run in order and the first match
// wins; every target gets a response.
func New(files *Dir) server.HandleFunc {
	return func(request *http.Request) *http.Response {
		switch target := request.Target; {
		case target == "/":
			return http.NewResponse(status.OK, "text/plain", nil)

		case strings.HasPrefix(target, echoPrefix):
			return http.NewResponse(status.OK, "text/plain", []byte(target[len(echoPrefix):]))

		case target == "/user-agent":
			// Absent header echoes as an empty body.
			ua, _ := request.Headers.Get("user-agent")
			return http.NewResponse(status.OK, "text/plain", []byte(ua))

		case strings.HasPrefix(target, filesPrefix):
			return files.Serve(request, target[len(filesPrefix):])

		default:
			return http.NewResponse(status.NotFound, "text/plain", nil)
		}
	}
}
