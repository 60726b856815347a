package main

import (
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"http-server/router"
	"http-server/server"
	"http-server/transport/tcp"

	"github.com/benbjohnson/clock"
)

func main() {
	addr := flag.String("addr", "0.0.0.0:4221", "address to listen on")
	directory := flag.String("directory", "",
		"root directory served under /files/ (defaults to the working directory)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	dir := *directory
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			logger.Error("resolving working directory", "error", err)
			os.Exit(1)
		}
		dir = wd
	}

	l, err := tcp.Listen(*addr)
	if err != nil {
		logger.Error("listening", "addr", *addr, "error", err)
		os.Exit(1)
	}

	srv := server.New(l, logger, clock.New(), router.New(router.NewDir(dir)), server.Options{})
	srv.Start()
	logger.Info("listening", "addr", l.Addr().String(), "directory", dir)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	logger.Info("shutting down")
	if err := l.Close(); err != nil {
		logger.Error("closing listener", "error", err)
	}
	if err := srv.Close(); err != nil {
		logger.Error("closing server", "error", err)
	}
}
