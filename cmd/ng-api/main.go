package main

import (
	"NetGlance/internal/buffer"
	"NetGlance/internal/config"
	"NetGlance/internal/model"
	"NetGlance/internal/probe"
	"NetGlance/internal/query"
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
)

func main() {
	cfgPath := flag.String("config", "configs/config.yaml", "Path to the configuration file.")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	source, cleanup, err := buildSource(cfg)
	if err != nil {
		log.Fatalf("Failed to build packet source: %v", err)
	}
	defer cleanup()

	apiHandler := &APIHandler{
		source:        source,
		defaultWindow: cfg.API.DefaultWindowSeconds,
	}

	r := mux.NewRouter()
	r.HandleFunc("/api/v1/network/summary", apiHandler.summaryHandler).Methods("GET")
	r.HandleFunc("/api/v1/network/summary", apiHandler.summarizeBatchHandler).Methods("POST")

	server := &http.Server{
		Addr:    cfg.API.ListenAddr,
		Handler: r,
	}

	go func() {
		log.Printf("API server starting on %s (source: %s)", server.Addr, cfg.Source)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v", server.Addr, err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("API server shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("API server exited.")
}

// buildSource wires the packet source selected in the config: a live
// NATS-fed buffer, or the ClickHouse packet store.
func buildSource(cfg *config.Config) (model.PacketSource, func(), error) {
	switch cfg.Source {
	case "live":
		maxAge, err := cfg.BufferMaxAge()
		if err != nil {
			return nil, nil, err
		}
		buf := buffer.New(maxAge, cfg.Buffer.MaxPackets)

		sub, err := probe.NewSubscriber(cfg.NATS)
		if err != nil {
			return nil, nil, err
		}
		if err := sub.Start(buf.Add); err != nil {
			sub.Close()
			return nil, nil, err
		}
		return buf, sub.Close, nil

	case "clickhouse":
		fetcher, err := query.NewFetcher(cfg.ClickHouse)
		if err != nil {
			return nil, nil, err
		}
		return fetcher, func() { fetcher.Close() }, nil

	default:
		log.Fatalf("Unknown source type '%s' in config, expected 'live' or 'clickhouse'.", cfg.Source)
		return nil, nil, nil
	}
}
