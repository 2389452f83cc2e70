package main

import (
	"flag"

	"log"
	"math/rand"
	"net"
	"os"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"
)

// Well-known destination ports mixed into the generated traffic so the
// dashboard's port cards have something to show.
var commonPorts = []layers.TCPPort{22, 53, 80, 123, 443, 445}

func main() {
	outputFile := flag.String("o", "traffic.pcap", "Output pcap file path")
	packetCount := flag.Int("c", 1000, "Number of packets to generate")
	inboundRatio := flag.Float64("inbound", 0.5, "Fraction of packets destined to the 10.0.0.0/24 subnet")
	flag.Parse()

	f, err := os.Create(*outputFile)
	if err != nil {
		log.Fatalf("Failed to create output file: %v", err)
	}
	defer f.Close()

	pcapWriter := pcapgo.NewWriter(f)
	if err := pcapWriter.WriteFileHeader(65536, layers.LinkTypeEthernet); err != nil {
		log.Fatalf("Failed to write pcap header: %v", err)
	}

	rand.Seed(time.Now().UnixNano())

	log.Printf("Generating %d packets into %s...", *packetCount, *outputFile)

	ts := time.Now().Add(-15 * time.Minute)

	for i := 0; i < *packetCount; i++ {
		if (i+1)%100000 == 0 {
			log.Printf("Generated %d packets...", i+1)
		}

		// Spread the batch over the trailing window, roughly one
		// packet per few hundred milliseconds.
		ts = ts.Add(time.Duration(rand.Intn(900)) * time.Millisecond)

		srcIP := net.IP{byte(rand.Intn(256)), byte(rand.Intn(256)), byte(rand.Intn(256)), byte(rand.Intn(256))}
		dstIP := net.IP{byte(rand.Intn(256)), byte(rand.Intn(256)), byte(rand.Intn(256)), byte(rand.Intn(256))}
		if rand.Float64() < *inboundRatio {
			dstIP = net.IP{10, 0, 0, byte(rand.Intn(254) + 1)}
		}

		srcPort := rand.Intn(65535-1024) + 1024
		var dstPort int
		if rand.Intn(2) == 0 {
			dstPort = int(commonPorts[rand.Intn(len(commonPorts))])
		} else {
			dstPort = rand.Intn(65535-1024) + 1024
		}
		payloadSize := rand.Intn(1400) + 50

		ethLayer := &layers.Ethernet{
			SrcMAC:       net.HardwareAddr{0x00, 0x11, 0x22, 0x33, 0x44, 0x55},
			DstMAC:       net.HardwareAddr{0x00, 0x66, 0x77, 0x88, 0x99, 0xAA},
			EthernetType: layers.EthernetTypeIPv4,
		}
		ipLayer := &layers.IPv4{
			SrcIP:   srcIP,
			DstIP:   dstIP,
			Version: 4,
			TTL:     64,
		}

		payload := make([]byte, payloadSize)
		rand.Read(payload)

		buf := gopacket.NewSerializeBuffer()
		opts := gopacket.SerializeOptions{FixLengths: true, ComputeChecksums: true}

		switch rand.Intn(3) {
		case 0: // TCP
			ipLayer.Protocol = layers.IPProtocolTCP
			tcpLayer := &layers.TCP{
				SrcPort: layers.TCPPort(srcPort),
				DstPort: layers.TCPPort(dstPort),
				Seq:     rand.Uint32(),
				Ack:     rand.Uint32(),
				SYN:     rand.Intn(4) == 0,
				ACK:     true,
				Window:  14600,
			}
			tcpLayer.SetNetworkLayerForChecksum(ipLayer)
			err = gopacket.SerializeLayers(buf, opts, ethLayer, ipLayer, tcpLayer, gopacket.Payload(payload))
		case 1: // UDP
			ipLayer.Protocol = layers.IPProtocolUDP
			udpLayer := &layers.UDP{
				SrcPort: layers.UDPPort(srcPort),
				DstPort: layers.UDPPort(dstPort),
			}
			udpLayer.SetNetworkLayerForChecksum(ipLayer)
			err = gopacket.SerializeLayers(buf, opts, ethLayer, ipLayer, udpLayer, gopacket.Payload(payload))
		default: // ICMP echo
			ipLayer.Protocol = layers.IPProtocolICMPv4
			icmpLayer := &layers.ICMPv4{
				TypeCode: layers.CreateICMPv4TypeCode(layers.ICMPv4TypeEchoRequest, 0),
			}
			err = gopacket.SerializeLayers(buf, opts, ethLayer, ipLayer, icmpLayer, gopacket.Payload(payload))
		}
		if err != nil {
			log.Fatalf("Failed to serialize packet: %v", err)
		}

		data := buf.Bytes()
		ci := gopacket.CaptureInfo{Timestamp: ts, CaptureLength: len(data), Length: len(data)}
		if err := pcapWriter.WritePacket(ci, data); err != nil {
			log.Fatalf("Failed to write packet: %v", err)
		}
	}

	log.Printf("Done. Wrote %d packets to %s.", *packetCount, *outputFile)
}
