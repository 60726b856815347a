package bytesutil

import (
	"bufio"
	"bytes"
	"io"
)

// ReadUntil reads from r until delim. The output includes delim.
//
// On error the bytes collected so far are returned with it: a stream that
// ends before any byte yields io.EOF, one that ends mid-line yields
// io.ErrUnexpectedEOF. Callers use the distinction to tell an orderly
// shutdown from a truncated message.
func ReadUntil(r *bufio.Reader, delim []byte) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	for {
		b, err := r.ReadBytes(delim[len(delim)-1])
		buf.Write(b)

		if err != nil {
			if err == io.EOF && buf.Len() > 0 {
				err = io.ErrUnexpectedEOF
			}
			return buf.Bytes(), err
		}

		if bytes.HasSuffix(buf.Bytes(), delim) {
			return buf.Bytes(), nil
		}
	}
}
