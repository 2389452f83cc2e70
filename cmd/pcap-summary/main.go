package main

import (
	"NetGlance/internal/model"
	"NetGlance/internal/telemetry"
	"NetGlance/pkg/pcap"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
)

func main() {
	window := flag.Int("window", 900, "Window length in seconds the capture is assumed to span.")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Println("Usage: pcap-summary [-window N] <path_to_pcap_file>")
		os.Exit(1)
	}
	pcapFilePath := flag.Arg(0)

	reader, err := pcap.NewReader(pcapFilePath)
	if err != nil {
		log.Fatalf("Failed to open pcap file: %v", err)
	}
	defer reader.Close()
	log.Printf("Reading packets from '%s'...", pcapFilePath)

	out := make(chan model.Packet, 1000)
	go reader.ReadPackets(out)

	var packets []model.Packet
	for rec := range out {
		packets = append(packets, rec)
	}
	log.Printf("Finished reading %d packets.", len(packets))

	summary, err := telemetry.Summarize(packets, *window)
	if err != nil {
		log.Fatalf("Failed to summarize capture: %v", err)
	}

	jsonBytes, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal summary: %v", err)
	}
	fmt.Println(string(jsonBytes))
}
