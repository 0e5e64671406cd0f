package main

import (
	"context"
	"log"

	"finbot-be/internal/bootstrap"
	"finbot-be/internal/config"
	"finbot-be/internal/server"
	"finbot-be/internal/tracer"
)

func main() {
	// 1. Tracing (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 2. Load configuration
	cfg := config.Load()

	// 3. Bootstrap dependencies
	container := bootstrap.NewContainer(cfg)
	defer container.Logger.Sync()

	// 4. Background consumers
	go func() {
		log.Println("Background: starting ingest audit consumer...")
		if err := container.IngestAuditHandler.Run(context.Background()); err != nil {
			log.Printf("Background consumer error: %v", err)
		}
	}()

	// 5. Serve
	srv := server.New(cfg, container)
	log.Fatal(srv.Run())
}
