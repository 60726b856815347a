package router

import (
	"testing"

	"http-server/http"

	"github.com/stretchr/testify/assert"
)

func TestRouting(t *testing.T) {
	handle := New(NewDir(t.TempDir()))

	tests := []struct {
		name    string
		request *http.Request

		wantCode        uint
		wantContentType string
		wantBody        string
	}{
		{
			name:     "root",
			request:  getRequest("/", nil),
			wantCode: 200, wantContentType: "text/plain", wantBody: "",
		},
		{
			name:     "echo",
			request:  getRequest("/echo/hello", nil),
			wantCode: 200, wantContentType: "text/plain", wantBody: "hello",
		},
		{
			name:     "echo keeps the suffix verbatim",
			request:  getRequest("/echo/a/b%20c", nil),
			wantCode: 200, wantContentType: "text/plain", wantBody: "a/b%20c",
		},
		{
			name:     "echo with empty suffix",
			request:  getRequest("/echo/", nil),
			wantCode: 200, wantContentType: "text/plain", wantBody: "",
		},
		{
			name:     "user agent",
			request:  getRequest("/user-agent", map[string]string{"User-Agent": "foobar/1.2.3"}),
			wantCode: 200, wantContentType: "text/plain", wantBody: "foobar/1.2.3",
		},
		{
			name:     "user agent absent",
			request:  getRequest("/user-agent", nil),
			wantCode: 200, wantContentType: "text/plain", wantBody: "",
		},
		{
			name:     "missing file",
			request:  getRequest("/files/nothing-here.txt", nil),
			wantCode: 404, wantContentType: "text/plain", wantBody: "",
		},
		{
			name:     "unknown target",
			request:  getRequest("/abcdefg", nil),
			wantCode: 404, wantContentType: "text/plain", wantBody: "",
		},
		{
			name:     "prefix without trailing slash is not a route",
			request:  getRequest("/echo", nil),
			wantCode: 404, wantContentType: "text/plain", wantBody: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			response := handle(tt.request)

			assert.Equal(t, tt.wantCode, response.Status.Code)
			assert.Equal(t, tt.wantContentType, response.Headers["Content-Type"])
			assert.Equal(t, tt.wantBody, string(response.Body))
		})
	}
}

func getRequest(target string, headers map[string]string) *http.Request {
	request := &http.Request{
		Method:  http.MethodGet,
		Target:  target,
		Headers: http.NewHeaders(),
	}
	for name, value := range headers {
		request.Headers.Set(name, value)
	}
	return request
}
