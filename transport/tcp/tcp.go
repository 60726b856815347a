// Package tcp adapts the operating system's TCP sockets to the transport
// interfaces.
package tcp

import (
	"context"
	"io"
	"net"
	"os"
	"time"

	"http-server/transport"

	"github.com/pkg/errors"
)

type Addr struct{ addr string }

var _ transport.Addr = Addr{}

func (a Addr) String() string { return a.addr }

// Conn wraps a socket so stream errors surface as the transport's error
// values: orderly peer close and operations on a closed connection become
// [transport.ErrConnClosed], expired deadlines become
// [transport.ErrDeadLineExceeded].
type Conn struct {
	nc net.Conn
}

var _ transport.Conn = (*Conn)(nil)

func (c *Conn) Read(p []byte) (n int, err error) {
	n, err = c.nc.Read(p)
	return n, mapErr(err)
}

func (c *Conn) Write(p []byte) (n int, err error) {
	n, err = c.nc.Write(p)
	return n, mapErr(err)
}

func (c *Conn) Close() error { return mapErr(c.nc.Close()) }

func (c *Conn) LocalAddr() transport.Addr  { return Addr{addr: c.nc.LocalAddr().String()} }
func (c *Conn) RemoteAddr() transport.Addr { return Addr{addr: c.nc.RemoteAddr().String()} }

func (c *Conn) SetReadDeadLine(t time.Time)  { c.nc.SetReadDeadline(t) }
func (c *Conn) SetWriteDeadLine(t time.Time) { c.nc.SetWriteDeadline(t) }

func mapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, io.EOF), errors.Is(err, net.ErrClosed):
		return transport.ErrConnClosed
	case errors.Is(err, os.ErrDeadlineExceeded):
		return transport.ErrDeadLineExceeded
	}
	return err
}

type Listener struct {
	tl *net.TCPListener
}

var _ transport.ConnListener = (*Listener)(nil)

func Listen(addr string) (*Listener, error) {
	taddr, err := net.ResolveTCPAddr("tcp", addr)
	if err != nil {
		return nil, errors.Wrap(err, "resolving listen address")
	}

	tl, err := net.ListenTCP("tcp", taddr)
	if err != nil {
		return nil, errors.Wrap(err, "listening on tcp socket")
	}

	return &Listener{tl: tl}, nil
}

func (l *Listener) Addr() transport.Addr { return Addr{addr: l.tl.Addr().String()} }

func (l *Listener) Accept(ctx context.Context) (transport.Conn, error) {
	// Cancellation unblocks the pending accept through the deadline.
	l.tl.SetDeadline(time.Time{})
	stop := context.AfterFunc(ctx, func() { l.tl.SetDeadline(time.Now()) })
	defer stop()

	nc, err := l.tl.Accept()
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if errors.Is(err, net.ErrClosed) {
			return nil, transport.ErrConnListnerClosed
		}
		return nil, errors.Wrap(err, "accepting connection")
	}

	return &Conn{nc: nc}, nil
}

func (l *Listener) Close() error { return l.tl.Close() }

// Dial opens a connection to addr. It exists for tests and tooling; the
// server itself never dials out.
func Dial(ctx context.Context, addr string) (*Conn, error) {
	var d net.Dialer
	nc, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, errors.Wrap(err, "dialing")
	}
	return &Conn{nc: nc}, nil
}
