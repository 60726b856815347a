package server

import (
	"time"

	"http-server/http"
)

type Options struct {
	Decode  http.DecodeOptions
	Timeout TimeoutOptions
}

// TimeoutOptions bounds the blocking stream operations. Zero values leave
// them unbounded, which is the default serving mode: a connection blocked
// on a read that never completes holds its goroutine.
type TimeoutOptions struct {
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}
