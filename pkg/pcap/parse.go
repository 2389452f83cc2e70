package pcap

import (
	"NetGlance/internal/model"
	"fmt"
	"strings"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
)

// timestampLayout matches the wire format of Packet.Timestamp.
const timestampLayout = "2006-01-02T15:04:05"

// ParsePacket decodes a captured frame into a dashboard packet record.
// Only IPv4 traffic is supported; anything else is rejected and left
// to the caller to skip.
func ParsePacket(packet gopacket.Packet) (model.Packet, error) {
	ts := time.Now()
	size := len(packet.Data())
	if meta := packet.Metadata(); meta != nil {
		if !meta.Timestamp.IsZero() {
			ts = meta.Timestamp
		}
		if meta.CaptureLength > 0 {
			size = meta.CaptureLength
		}
	}

	l := packet.Layer(layers.LayerTypeIPv4)
	if l == nil {
		return model.Packet{}, fmt.Errorf("not an IPv4 packet")
	}
	ip := l.(*layers.IPv4)

	rec := model.Packet{
		Timestamp: ts.UTC().Format(timestampLayout),
		Src:       ip.SrcIP.String(),
		Dst:       ip.DstIP.String(),
		Proto:     ip.Protocol.String(),
		Size:      size,
	}

	if l := packet.Layer(layers.LayerTypeTCP); l != nil {
		tcp := l.(*layers.TCP)
		rec.SPort = int(tcp.SrcPort)
		rec.DPort = int(tcp.DstPort)
		rec.Flags = tcpFlags(tcp)
	} else if l := packet.Layer(layers.LayerTypeUDP); l != nil {
		udp := l.(*layers.UDP)
		rec.SPort = int(udp.SrcPort)
		rec.DPort = int(udp.DstPort)
	}
	// ICMP and other IPv4 protocols carry no ports; the record still
	// counts toward protocol and traffic views.

	return rec, nil
}

// tcpFlags renders the set TCP flags as a pipe-separated string,
// e.g. "SYN|ACK". Empty when no flag is set.
func tcpFlags(tcp *layers.TCP) string {
	var set []string
	if tcp.FIN {
		set = append(set, "FIN")
	}
	if tcp.SYN {
		set = append(set, "SYN")
	}
	if tcp.RST {
		set = append(set, "RST")
	}
	if tcp.PSH {
		set = append(set, "PSH")
	}
	if tcp.ACK {
		set = append(set, "ACK")
	}
	if tcp.URG {
		set = append(set, "URG")
	}
	if tcp.ECE {
		set = append(set, "ECE")
	}
	if tcp.CWR {
		set = append(set, "CWR")
	}
	return strings.Join(set, "|")
}
