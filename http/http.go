// Package http implements the HTTP/1.1 message model this server speaks:
// a parsed request, its header map, the response shape handlers produce,
// and the decoder/encoder that move them across a byte stream.
package http

import (
	"strings"

	"http-server/http/status"
)

type Method string

const (
	MethodGet  Method = "GET"
	MethodPost Method = "POST"
)

// MethodFrom maps a request-line method token to a [Method]. Anything other
// than exactly "POST" is treated as GET, unsupported and malformed verbs
// included.
func MethodFrom(token string) Method {
	if token == string(MethodPost) {
		return MethodPost
	}
	return MethodGet
}

// Request is one parsed request. [RequestDecoder.Decode] creates it; nothing
// modifies it afterwards.
type Request struct {
	Method Method

	// Target is the raw request-target. It is routed verbatim, never
	// URL-decoded.
	Target string

	Headers Headers

	// Body holds exactly content-length bytes; fewer only when the stream
	// ended before the advertised length.
	Body []byte
}

// CloseRequested reports whether the client asked to end the connection
// after this exchange. The header value is compared case-insensitively.
func (r *Request) CloseRequested() bool {
	v, ok := r.Headers.Get("connection")
	return ok && strings.ToLower(v) == "close"
}

// AcceptsGzip reports whether "gzip" is listed in accept-encoding. Tokens
// are trimmed and compared exactly; "GZIP" does not count.
func (r *Request) AcceptsGzip() bool {
	v, ok := r.Headers.Get("accept-encoding")
	if !ok {
		return false
	}
	for _, token := range strings.Split(v, ",") {
		if strings.TrimSpace(token) == "gzip" {
			return true
		}
	}
	return false
}

// Headers is a request header map. Keys are lowercased at insertion, lookups
// lowercase too, and setting a key again overwrites the previous value.
type Headers struct{ underlying map[string]string }

func NewHeaders() Headers {
	return Headers{underlying: make(map[string]string)}
}

func (h Headers) Get(key string) (value string, ok bool) {
	value, ok = h.underlying[strings.ToLower(key)]
	return
}

func (h Headers) Set(key, value string) {
	h.underlying[strings.ToLower(key)] = value
}

func (h Headers) Len() int { return len(h.underlying) }

// Response is what a handler produces. Headers keep the case the
// constructing component supplied; [ResponseEncoder.Encode] augments them
// and may replace the body in place.
type Response struct {
	Status  status.Status
	Headers map[string]string
	Body    []byte
}

func NewResponse(st status.Status, contentType string, body []byte) *Response {
	return &Response{
		Status:  st,
		Headers: map[string]string{"Content-Type": contentType},
		Body:    body,
	}
}
