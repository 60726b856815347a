// Package pipe provides an in-memory, synchronous connection pair. It backs
// connection-loop tests that need deterministic byte streams and
// clock-driven deadlines.
package pipe

import (
	"sync"
	"time"

	"http-server/transport"

	"github.com/benbjohnson/clock"
)

type Addr struct{ Name string }

var _ transport.Addr = Addr{}

func (a Addr) String() string { return a.Name }

// Pipe is one end of an unbuffered in-memory connection. A write completes
// only once the counterpart has consumed every byte.
type Pipe struct {
	stream chan []byte // stream that this end reads from.
	nc     chan int    // counterpart reports consumed byte counts here.

	writeMu sync.Mutex

	closed chan struct{}
	once   sync.Once // making sure not to close closed channel.

	rdeadline *chanDeadline
	wdeadline *chanDeadline

	// the opposite end.
	counterpart *Pipe

	addr Addr
}

var _ transport.Conn = (*Pipe)(nil)

// NewPair creates both ends of a pipe. Deadlines run on clk, so a
// [clock.Mock] makes timeout behavior deterministic.
func NewPair(name1, name2 string, clk clock.Clock) (c1, c2 *Pipe) {
	c1 = newPipe(name1, clk)
	c2 = newPipe(name2, clk)
	c1.counterpart, c2.counterpart = c2, c1
	return
}

func newPipe(name string, clk clock.Clock) *Pipe {
	return &Pipe{
		stream:    make(chan []byte),
		nc:        make(chan int),
		closed:    make(chan struct{}),
		rdeadline: newChanDeadline(clk),
		wdeadline: newChanDeadline(clk),
		addr:      Addr{Name: name},
	}
}

func (p *Pipe) LocalAddr() transport.Addr  { return p.addr }
func (p *Pipe) RemoteAddr() transport.Addr { return p.counterpart.addr }

func (p *Pipe) Close() error {
	p.once.Do(func() { close(p.closed) })
	return nil
}

func (p *Pipe) Read(b []byte) (n int, err error) {
	if err := p.checkReadOK(); err != nil {
		return 0, err
	}

	select {
	case received := <-p.stream:
		n := copy(b, received)
		p.counterpart.nc <- n
		return n, nil
	case <-p.closed:
		return 0, transport.ErrConnClosed
	case <-p.counterpart.closed:
		return 0, transport.ErrConnClosed
	case <-p.rdeadline.wait():
		return 0, transport.ErrDeadLineExceeded
	}
}

func (p *Pipe) Write(b []byte) (n int, err error) {
	if err := p.checkWriteOK(); err != nil {
		return 0, err
	}

	if len(b) == 0 {
		return 0, nil
	}

	// Serialize writers so concurrent writes don't interleave.
	p.writeMu.Lock()
	defer p.writeMu.Unlock()

	nn := 0
	for len(b) > 0 {
		select {
		case p.counterpart.stream <- b:
			n := <-p.nc
			b = b[n:]
			nn += n
		case <-p.closed:
			return nn, transport.ErrConnClosed
		case <-p.counterpart.closed:
			return nn, transport.ErrConnClosed
		case <-p.wdeadline.wait():
			return nn, transport.ErrDeadLineExceeded
		}
	}

	return nn, nil
}

func (p *Pipe) checkReadOK() error  { return p.checkOK(p.rdeadline) }
func (p *Pipe) checkWriteOK() error { return p.checkOK(p.wdeadline) }

func (p *Pipe) checkOK(d *chanDeadline) error {
	switch {
	case isClosed(p.closed):
		return transport.ErrConnClosed
	case isClosed(p.counterpart.closed):
		return transport.ErrConnClosed
	case isClosed(d.wait()):
		return transport.ErrDeadLineExceeded
	}
	return nil
}

func (p *Pipe) SetReadDeadLine(t time.Time)  { p.rdeadline.set(t) }
func (p *Pipe) SetWriteDeadLine(t time.Time) { p.wdeadline.set(t) }

type chanDeadline struct {
	clock clock.Clock

	t *clock.Timer
	m sync.Mutex

	closed chan struct{}
}

func newChanDeadline(clk clock.Clock) *chanDeadline {
	return &chanDeadline{
		clock:  clk,
		closed: make(chan struct{}),
	}
}

func (d *chanDeadline) set(t time.Time) {
	d.m.Lock()
	defer d.m.Unlock()

	if d.t != nil {
		// Stop existing timer.
		d.t.Stop()
	}
	d.t = nil

	if isClosed(d.closed) {
		d.closed = make(chan struct{})
	}

	if t.IsZero() {
		// zero value means no limit.
		return
	}

	d.t = d.clock.AfterFunc(d.clock.Until(t), func() {
		close(d.closed)
	})
}

func (d *chanDeadline) wait() <-chan struct{} {
	d.m.Lock()
	defer d.m.Unlock()
	return d.closed
}

func isClosed(c <-chan struct{}) bool {
	select {
	case <-c: // c only fires once closed.
		return true
	default:
		return false
	}
}
