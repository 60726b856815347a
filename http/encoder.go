package http

import (
	"bufio"
	"io"
	"strconv"

	"http-server/http/coding"

	"github.com/pkg/errors"
)

var crlf = []byte{cr, lf}

// ResponseEncoder turns a [Response] into wire bytes and writes them out.
// One encoder serves a whole connection.
type ResponseEncoder struct {
	bw *bufio.Writer
}

func NewResponseEncoder(w io.Writer) *ResponseEncoder {
	return &ResponseEncoder{bw: bufio.NewWriter(w)}
}

// Encode negotiates the content coding against the originating request,
// fixes up the framing headers, and writes the response. The response is
// mutated in place: the body may be replaced by its gzip encoding, and
// Content-Length, Content-Encoding and Connection may be set.
//
// A compression failure is returned before anything is written, so no
// partial response ever reaches the wire.
func (re *ResponseEncoder) Encode(response *Response, request *Request) error {
	if request.AcceptsGzip() {
		compressed, err := coding.EncodeGzip(response.Body)
		if err != nil {
			return errors.Wrap(err, "compressing body")
		}
		response.Body = compressed
		response.Headers["Content-Encoding"] = "gzip"
	}

	// Content-Length reflects the body as it goes on the wire.
	response.Headers["Content-Length"] = strconv.Itoa(len(response.Body))

	if request.CloseRequested() {
		response.Headers["Connection"] = "close"
	}

	if err := re.writeLine([]byte("HTTP/1.1 " + response.Status.Text())); err != nil {
		return errors.Wrap(err, "writing status line")
	}

	for name, value := range response.Headers {
		if err := re.writeLine([]byte(name + ": " + value)); err != nil {
			return errors.Wrap(err, "writing field")
		}
	}

	if err := re.writeLine(nil); err != nil {
		return errors.Wrap(err, "writing header terminator")
	}

	if _, err := re.bw.Write(response.Body); err != nil {
		return errors.Wrap(err, "writing body")
	}

	// Flush so the next exchange on this connection is never delayed behind
	// buffered output.
	return errors.Wrap(re.bw.Flush(), "flushing response")
}

func (re *ResponseEncoder) writeLine(line []byte) error {
	if _, err := re.bw.Write(line); err != nil {
		return err
	}
	_, err := re.bw.Write(crlf)
	return err
}
