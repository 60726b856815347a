package http

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	bytesutil "http-server/util/bytes"

	"github.com/pkg/errors"
)

const (
	cr byte = '\r'
	lf byte = '\n'
)

type DecodeOptions struct {
	// MaxRequestLineLength limits the request line length. 0 disables the
	// limit.
	MaxRequestLineLength uint

	// MaxFieldLineLength limits header field line lengths. 0 disables the
	// limit.
	MaxFieldLineLength uint
}

var (
	errLineTooLong          = errors.New("line length exceeds limit")
	ErrRequestLineTooLong   = errors.New("request line length exceeds limit")
	ErrFieldLineTooLong     = errors.New("field line length exceeds limit")
	ErrMalformedRequestLine = errors.New("request line is malformed")
)

// RequestDecoder parses one request per Decode call from a live byte
// stream. It owns its buffered reader for the lifetime of the connection:
// bytes read speculatively past the header terminator stay buffered and are
// consumed by the body phase, never discarded.
type RequestDecoder struct {
	br   *bufio.Reader
	opts DecodeOptions
}

func NewRequestDecoder(r io.Reader, opts DecodeOptions) *RequestDecoder {
	return &RequestDecoder{br: bufio.NewReader(r), opts: opts}
}

// r MUST be a non-nil pointer.
//
// A stream that ends before the first byte of a request surfaces the
// underlying error unchanged (io.EOF on orderly shutdown); any later
// truncation or grammar violation yields a malformed-request error. Either
// way no partial [Request] escapes.
func (rd *RequestDecoder) Decode(r *Request) error {
	if err := rd.decodeRequestLine(r); err != nil {
		return errors.Wrap(err, "parsing request line")
	}

	if err := rd.decodeHeaders(r); err != nil {
		return errors.Wrap(err, "parsing headers")
	}

	rd.decodeBody(r)

	return nil
}

func (rd *RequestDecoder) readLine(limit uint) ([]byte, error) {
	b, err := bytesutil.ReadUntil(rd.br, []byte{lf})
	if err != nil {
		return nil, err
	}

	if limit > 0 && uint(len(b)) > limit {
		return nil, errLineTooLong
	}

	b = b[:len(b)-1] // Remove LF.
	if len(b) > 0 && b[len(b)-1] == cr {
		b = b[:len(b)-1] // Remove CR.
	}

	return b, nil
}

func (rd *RequestDecoder) decodeRequestLine(r *Request) error {
	line, err := rd.readLine(rd.opts.MaxRequestLineLength)
	if err != nil {
		if errors.Is(err, errLineTooLong) {
			return ErrRequestLineTooLong
		}
		return err
	}

	fields := strings.Fields(string(line))
	if len(fields) < 2 {
		return ErrMalformedRequestLine
	}

	r.Method = MethodFrom(fields[0])
	r.Target = fields[1]

	return nil
}

func (rd *RequestDecoder) decodeHeaders(r *Request) error {
	headers := NewHeaders()
	for {
		line, err := rd.readLine(rd.opts.MaxFieldLineLength)
		if err != nil {
			if errors.Is(err, errLineTooLong) {
				return ErrFieldLineTooLong
			}
			return errors.Wrap(err, "reading line")
		}

		if len(line) == 0 {
			// An empty line. No more headers.
			break
		}

		name, value, found := strings.Cut(string(line), ": ")
		if !found {
			// Lines without the separator carry nothing we recognize.
			continue
		}

		headers.Set(name, strings.TrimSpace(value))
	}

	r.Headers = headers

	return nil
}

// decodeBody reads exactly content-length bytes, looping on short reads.
// If the stream ends first, whatever was collected becomes the body; the
// connection loop observes the closed stream on its next cycle.
func (rd *RequestDecoder) decodeBody(r *Request) {
	length := contentLength(r.Headers)

	body := make([]byte, length)
	read := 0
	for read < length {
		n, err := rd.br.Read(body[read:])
		read += n
		if err != nil {
			break
		}
	}

	r.Body = body[:read]
}

// contentLength returns the advertised body length. Absent or unparseable
// values mean no body.
func contentLength(h Headers) int {
	v, ok := h.Get("content-length")
	if !ok {
		return 0
	}

	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
