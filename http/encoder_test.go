package http

import (
	"bytes"
	"compress/gzip"
	"io"
	"strconv"
	"strings"
	"testing"

	"http-server/http/status"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRequest(headers map[string]string) *Request {
	h := NewHeaders()
	for k, v := range headers {
		h.Set(k, v)
	}
	return &Request{Method: MethodGet, Target: "/", Headers: h}
}

func encode(t *testing.T, response *Response, request *Request) (statusLine string, headers map[string]string, body []byte) {
	t.Helper()

	buf := bytes.NewBuffer(nil)
	require.NoError(t, NewResponseEncoder(buf).Encode(response, request))

	raw := buf.String()
	head, rest, found := strings.Cut(raw, "\r\n\r\n")
	require.True(t, found, "missing header terminator")

	lines := strings.Split(head, "\r\n")
	statusLine = lines[0]

	headers = make(map[string]string)
	for _, line := range lines[1:] {
		name, value, ok := strings.Cut(line, ": ")
		require.True(t, ok, "malformed field line: %q", line)
		headers[name] = value
	}

	return statusLine, headers, []byte(rest)
}

func TestEncodeBasic(t *testing.T) {
	response := NewResponse(status.OK, "text/plain", []byte("hello"))

	statusLine, headers, body := encode(t, response, newRequest(nil))

	assert.Equal(t, "HTTP/1.1 200 OK", statusLine)
	assert.Equal(t, "text/plain", headers["Content-Type"])
	assert.Equal(t, "5", headers["Content-Length"])
	assert.Equal(t, "hello", string(body))

	assert.NotContains(t, headers, "Content-Encoding")
	assert.NotContains(t, headers, "Connection")
}

func TestEncodeEmptyBody(t *testing.T) {
	response := NewResponse(status.NotFound, "text/plain", nil)

	statusLine, headers, body := encode(t, response, newRequest(nil))

	assert.Equal(t, "HTTP/1.1 404 Not Found", statusLine)
	assert.Equal(t, "0", headers["Content-Length"])
	assert.Empty(t, body)
}

func TestEncodeGzipNegotiated(t *testing.T) {
	payload := "some payload worth compressing"
	response := NewResponse(status.OK, "text/plain", []byte(payload))

	request := newRequest(map[string]string{"Accept-Encoding": "gzip, deflate"})

	_, headers, body := encode(t, response, request)

	assert.Equal(t, "gzip", headers["Content-Encoding"])
	assert.Equal(t, strconv.Itoa(len(body)), headers["Content-Length"])

	gr, err := gzip.NewReader(bytes.NewReader(body))
	require.NoError(t, err)
	decoded, err := io.ReadAll(gr)
	require.NoError(t, err)
	assert.Equal(t, payload, string(decoded))
}

func TestEncodeIdentityStaysPlain(t *testing.T) {
	payload := "plain payload"
	response := NewResponse(status.OK, "text/plain", []byte(payload))

	request := newRequest(map[string]string{"Accept-Encoding": "identity"})

	_, headers, body := encode(t, response, request)

	assert.NotContains(t, headers, "Content-Encoding")
	assert.Equal(t, payload, string(body))
	assert.Equal(t, strconv.Itoa(len(payload)), headers["Content-Length"])
}

func TestEncodeGzipTokenIsCaseSensitive(t *testing.T) {
	response := NewResponse(status.OK, "text/plain", []byte("abc"))

	request := newRequest(map[string]string{"Accept-Encoding": "GZIP"})

	_, headers, body := encode(t, response, request)

	assert.NotContains(t, headers, "Content-Encoding")
	assert.Equal(t, "abc", string(body))
}

func TestEncodeConnectionCloseEcho(t *testing.T) {
	response := NewResponse(status.OK, "text/plain", nil)

	// Value comparison is case-insensitive.
	request := newRequest(map[string]string{"Connection": "Close"})

	_, headers, _ := encode(t, response, request)
	assert.Equal(t, "close", headers["Connection"])
}

func TestEncodeNoConnectionHeaderWithoutRequest(t *testing.T) {
	response := NewResponse(status.OK, "text/plain", nil)

	request := newRequest(map[string]string{"Connection": "keep-alive"})

	_, headers, _ := encode(t, response, request)
	assert.NotContains(t, headers, "Connection")
}

func TestEncodeContentLengthInvariant(t *testing.T) {
	for _, accept := range []string{"", "gzip"} {
		request := newRequest(nil)
		if accept != "" {
			request.Headers.Set("Accept-Encoding", accept)
		}

		response := NewResponse(status.OK, "text/plain", []byte("content-length must match"))

		_, headers, body := encode(t, response, request)
		assert.Equal(t, strconv.Itoa(len(body)), headers["Content-Length"])
	}
}
