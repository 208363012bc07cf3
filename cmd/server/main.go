// Command server runs the Brandforge HTTP service.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"brandforge/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config load failed: ", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv, err := NewServer(ctx, cfg)
	if err != nil {
		log.Fatal("server init failed: ", err)
	}

	if err := srv.Run(ctx); err != nil {
		log.Fatal("server exited: ", err)
	}
}
