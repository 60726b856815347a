// Package coding implements the content codings the server can apply to
// response bodies. Only gzip is negotiated.
package coding

import (
	"bytes"
	"compress/gzip"

	"github.com/pkg/errors"
)

// EncodeGzip compresses b into a complete gzip stream.
func EncodeGzip(b []byte) ([]byte, error) {
	buf := bytes.NewBuffer(nil)

	gw := gzip.NewWriter(buf)
	if _, err := gw.Write(b); err != nil {
		return nil, errors.Wrap(err, "writing to gzip stream")
	}

	// Close, not Flush: the footer is part of the stream.
	if err := gw.Close(); err != nil {
		return nil, errors.Wrap(err, "finishing gzip stream")
	}

	return buf.Bytes(), nil
}
