package transport

import (
	"context"
	"errors"
	"time"
)

var (
	ErrConnClosed        = errors.New("connection is closed")
	ErrConnListnerClosed = errors.New("conn listener is closed")
	ErrDeadLineExceeded  = errors.New("deadline exceeded")
)

// Conn is a bidirectional, ordered byte stream. Read blocks until at least
// one byte is available and returns [ErrConnClosed] once the peer has
// orderly closed its side. Write blocks until every byte is handed off.
type Conn interface {
	Read(p []byte) (n int, err error)
	Write(p []byte) (n int, err error)
	Close() error

	LocalAddr() Addr
	RemoteAddr() Addr

	// A zero time clears the deadline. An exceeded deadline surfaces as
	// [ErrDeadLineExceeded] from the blocked operation.
	SetReadDeadLine(t time.Time)
	SetWriteDeadLine(t time.Time)
}

type ConnListener interface {
	Accept(ctx context.Context) (Conn, error)
	Close() error
}
