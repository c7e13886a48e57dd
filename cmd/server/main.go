// Command main is the entry point for the Banterhall backend server.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"banterhall/internal/bootstrap"
	"banterhall/internal/config"
	"banterhall/internal/middleware"
	"banterhall/internal/observability"
	"banterhall/internal/server"
	"banterhall/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	shutdownTracing, err := observability.InitTracing(observability.TracingConfig{
		ServiceName:    "banterhall-api",
		ServiceVersion: "1.0.0",
		Environment:    cfg.Env,
		Enabled:        cfg.TracingEnabled,
		Exporter:       cfg.TracingExporter,
		OTLPEndpoint:   cfg.TracingEndpoint,
		SamplerRatio:   cfg.TracingSampleRate,
	})
	if err != nil {
		log.Fatalf("Failed to initialize tracing: %v", err)
	}

	st, redisClient, err := bootstrap.InitRuntime(context.Background(), cfg, bootstrap.Options{
		SeedDemoData: cfg.SeedDemoData,
	})
	if err != nil {
		log.Fatalf("Failed to initialize runtime: %v", err)
	}

	srv := server.NewServerWithDeps(cfg, st, redisClient)

	sweeperStop := startLobbySweeper(srv.LobbyService(), cfg)

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down server...")
		sweeperStop()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
		if err := shutdownTracing(ctx); err != nil {
			log.Printf("Tracing shutdown error: %v", err)
		}
		os.Exit(0)
	}()

	log.Fatal(srv.Start())
}

// startLobbySweeper runs the lobby expiry sweep on a fixed interval. Returns
// a stop function. A zero interval disables the sweeper.
func startLobbySweeper(lobbies *service.LobbyService, cfg *config.Config) func() {
	if cfg.LobbySweepInterval <= 0 {
		return func() {}
	}

	interval := time.Duration(cfg.LobbySweepInterval) * time.Minute
	ticker := time.NewTicker(interval)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-ticker.C:
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				expired, err := lobbies.ExpireOverdue(ctx)
				cancel()
				if err != nil {
					middleware.Logger.Error("lobby expiry sweep failed", "error", err)
					continue
				}
				if expired > 0 {
					middleware.Logger.Info("expired stale lobbies", "count", expired)
				}
			case <-done:
				ticker.Stop()
				return
			}
		}
	}()

	return func() { close(done) }
}
