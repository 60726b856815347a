package server

import (
	"context"
	"io"
	"log/slog"

	"http-server/http"
	"http-server/transport"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
)

type conn struct {
	con transport.Conn

	handle HandleFunc
	clock  clock.Clock

	logger *slog.Logger

	opts Options
}

func (c *conn) start(ctx context.Context) {
	defer func() {
		c.logger.Debug("closing connection")
		if err := c.con.Close(); err != nil && !errors.Is(err, transport.ErrConnClosed) {
			c.logger.Error("error when closing connection", "error", err)
		}
	}()

	err := c.serve(ctx)
	switch {
	case err == nil:
	case errors.Is(err, context.Canceled):
		// no-op.
	case errors.Is(err, transport.ErrDeadLineExceeded):
		c.logger.Info("connection timed out")
	case errors.Is(err, transport.ErrConnClosed):
		c.logger.Debug("connection closed mid-exchange")
	default:
		c.logger.Error("unexpected error while serving", "error", err)
	}
}

// serve runs the exchange loop: parse one request, dispatch it, serialize
// the response, repeat. Exchanges never overlap; the next request is not
// read until the current response is flushed.
func (c *conn) serve(ctx context.Context) error {
	dec := http.NewRequestDecoder(c.con, c.opts.Decode)
	enc := http.NewResponseEncoder(c.con)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		request, err := c.readRequest(dec)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, transport.ErrConnClosed) {
				// Orderly shutdown by the peer.
				return nil
			}
			if errors.Is(err, transport.ErrDeadLineExceeded) {
				return err
			}

			// A request we cannot parse ends the connection exactly like a
			// disconnect: nothing is written back.
			c.logger.Debug("dropping malformed request", "error", err)
			return nil
		}

		response, err := doHandle(c.handle, request)
		if err != nil {
			return errors.Wrap(err, "handling request")
		}

		if err := c.writeResponse(enc, response, request); err != nil {
			return errors.Wrap(err, "writing response")
		}

		if request.CloseRequested() {
			return nil
		}
	}
}

func (c *conn) readRequest(dec *http.RequestDecoder) (*http.Request, error) {
	if timeout := c.opts.Timeout.ReadTimeout; timeout > 0 {
		c.con.SetReadDeadLine(c.clock.Now().Add(timeout))
	}

	var request http.Request
	if err := dec.Decode(&request); err != nil {
		return nil, err
	}

	return &request, nil
}

func (c *conn) writeResponse(enc *http.ResponseEncoder, response *http.Response, request *http.Request) error {
	if timeout := c.opts.Timeout.WriteTimeout; timeout > 0 {
		c.con.SetWriteDeadLine(c.clock.Now().Add(timeout))
	}

	return enc.Encode(response, request)
}
