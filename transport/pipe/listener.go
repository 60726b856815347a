package pipe

import (
	"context"
	"sync"

	"http-server/transport"

	"github.com/benbjohnson/clock"
)

// Listener hands out pipe connections: every Dial produces a pair, one end
// queued for Accept and the other returned to the caller.
type Listener struct {
	connChan chan *Pipe
	clock    clock.Clock

	m      sync.Mutex
	closed bool
}

var _ transport.ConnListener = (*Listener)(nil)

func NewListener(clk clock.Clock) *Listener {
	return &Listener{
		connChan: make(chan *Pipe),
		clock:    clk,
	}
}

func (l *Listener) Accept(ctx context.Context) (transport.Conn, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case conn, ok := <-l.connChan:
		if !ok {
			return nil, transport.ErrConnListnerClosed
		}
		return conn, nil
	}
}

// Dial blocks until the accepting side picks up the counterpart.
func (l *Listener) Dial() (*Pipe, error) {
	l.m.Lock()
	if l.closed {
		l.m.Unlock()
		return nil, transport.ErrConnListnerClosed
	}
	l.m.Unlock()

	toFeed, toReturn := NewPair("server", "client", l.clock)

	l.connChan <- toFeed

	return toReturn, nil
}

func (l *Listener) Close() error {
	l.m.Lock()
	defer l.m.Unlock()
	if l.closed {
		return nil
	}
	close(l.connChan)
	l.closed = true
	return nil
}
