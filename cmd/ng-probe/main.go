package main

import (
	"NetGlance/internal/config"
	"NetGlance/internal/model"
	"NetGlance/internal/probe"
	"NetGlance/pkg/pcap"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	// --- Command-Line Flag Parsing ---
	cfgPath := flag.String("config", "configs/config.yaml", "Path to the configuration file.")
	mode := flag.String("mode", "sub", "Operating mode: 'pub' to replay a capture file and publish, 'sub' to subscribe and print.")
	file := flag.String("file", "", "Capture file to replay (required for pub mode).")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// --- Mode Dispatch ---
	switch *mode {
	case "pub":
		runReplay(cfg, *file)
	case "sub":
		runSubscriber(cfg)
	default:
		fmt.Fprintf(os.Stderr, "Invalid mode: %s\n", *mode)
		flag.Usage()
		os.Exit(1)
	}
}

// runReplay reads a capture file and publishes each packet record to NATS.
func runReplay(cfg *config.Config, filePath string) {
	if filePath == "" {
		log.Println("Error: -file flag is required for pub mode.")
		flag.Usage()
		os.Exit(1)
	}
	log.Printf("Starting ng-probe in REPLAY mode with capture file: %s", filePath)

	pub, err := probe.NewPublisher(cfg.NATS)
	if err != nil {
		log.Fatalf("Failed to connect to NATS: %v", err)
	}
	defer pub.Close()

	reader, err := pcap.NewReader(filePath)
	if err != nil {
		log.Fatalf("Failed to open capture file: %v", err)
	}
	defer reader.Close()

	out := make(chan model.Packet, 1000)
	go reader.ReadPackets(out)

	published := 0
	for rec := range out {
		if err := pub.Publish(rec); err != nil {
			log.Printf("Failed to publish packet: %v", err)
			continue
		}
		published++
		if published%1000 == 0 {
			log.Printf("%d packets published...", published)
		}
	}
	log.Printf("Replay complete, %d packets published.", published)
}

// runSubscriber subscribes to the packet subject and prints received records.
func runSubscriber(cfg *config.Config) {
	log.Println("Starting ng-probe in SUBSCRIBER mode...")

	sub, err := probe.NewSubscriber(cfg.NATS)
	if err != nil {
		log.Fatalf("Failed to create subscriber: %v", err)
	}
	defer sub.Close()

	handler := func(rec model.Packet) {
		log.Printf("Received Packet: %+v", rec)
	}

	if err := sub.Start(handler); err != nil {
		log.Fatalf("Subscriber failed to start: %v", err)
	}

	// Wait for a shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan
	log.Println("Shutdown signal received, cleaning up...")
}
