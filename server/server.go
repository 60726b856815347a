// Package server runs the connection loop: one goroutine per accepted
// connection, strictly sequential request/response exchanges within it.
package server

import (
	"context"
	"log/slog"
	"sync"

	"http-server/transport"

	"github.com/benbjohnson/clock"
	"github.com/dchest/uniuri"
	"github.com/pkg/errors"
)

// Server accepts connections and serves each on its own goroutine. No state
// is shared across connections besides the handler and options, both
// read-only after New.
type Server struct {
	l transport.ConnListener

	closeListener func()
	wg            sync.WaitGroup

	m     sync.Mutex
	conns map[*conn]struct{}

	logger *slog.Logger
	opts   Options

	handle HandleFunc
	clock  clock.Clock
}

func New(
	l transport.ConnListener,
	logger *slog.Logger,
	clock clock.Clock,
	handle HandleFunc,
	opts Options,
) *Server {
	return &Server{
		l:      l,
		logger: logger,
		opts:   opts,
		handle: handle,
		clock:  clock,
		conns:  make(map[*conn]struct{}),
	}
}

func (s *Server) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	s.closeListener = cancel

	go func() {
		for {
			conn, err := s.acceptConn(ctx)
			if err != nil {
				if !errors.Is(err, context.Canceled) &&
					!errors.Is(err, transport.ErrConnListnerClosed) {
					s.logger.Error(
						"unexpected error when accepting connection",
						"error", err.Error(),
					)
				}
				return
			}

			s.wg.Add(1)
			go func() {
				defer s.wg.Done()
				defer s.forget(conn)
				conn.start(ctx)
			}()
		}
	}()
}

func (s *Server) acceptConn(ctx context.Context) (*conn, error) {
	con, err := s.l.Accept(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "listening for connection")
	}

	c := &conn{
		con:    con,
		handle: s.handle,
		clock:  s.clock,
		opts:   s.opts,
		logger: s.logger.With(
			"conn", con.RemoteAddr().String(),
			"id", uniuri.NewLen(8),
		),
	}

	s.m.Lock()
	s.conns[c] = struct{}{}
	s.m.Unlock()

	return c, nil
}

func (s *Server) forget(c *conn) {
	s.m.Lock()
	delete(s.conns, c)
	s.m.Unlock()
}

// Close stops accepting, closes live connections so their blocked reads
// return, and waits for the serving goroutines to drain.
func (s *Server) Close() error {
	if s.closeListener != nil {
		s.closeListener()
	}

	s.m.Lock()
	for c := range s.conns {
		c.con.Close()
	}
	s.m.Unlock()

	s.wg.Wait()
	return nil
}
