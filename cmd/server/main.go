// Package main implements the entry point for the report generation
// server: it assembles configuration, storage, the rendering client and
// the job scheduler, and serves the HTTP API.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
