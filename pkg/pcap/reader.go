package pcap

import (
	"NetGlance/internal/model"
	"log"

	"github.com/google/gopacket"
	"github.com/google/gopacket/pcap"
)

// Reader reads packet records from a pcap capture file.
type Reader struct {
	handle *pcap.Handle
}

// NewReader creates a new pcap reader for the given file path.
func NewReader(filePath string) (*Reader, error) {
	handle, err := pcap.OpenOffline(filePath)
	if err != nil {
		return nil, err
	}
	return &Reader{handle: handle}, nil
}

// Close closes the pcap handle.
func (r *Reader) Close() {
	r.handle.Close()
}

// ReadPackets reads all packets from the capture file and sends the
// parsed records to the provided channel, closing it when done.
// Frames that fail to parse are logged and skipped; noisy captures
// must not abort the whole read.
func (r *Reader) ReadPackets(out chan<- model.Packet) {
	defer close(out)

	packetSource := gopacket.NewPacketSource(r.handle, r.handle.LinkType())
	for packet := range packetSource.Packets() {
		rec, err := ParsePacket(packet)
		if err != nil {
			log.Printf("Error parsing packet: %v", err)
			continue
		}
		out <- rec
	}
}
