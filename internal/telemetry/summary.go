package telemetry

import (
	"NetGlance/internal/model"
	"errors"
	"math"
	"strings"
)

// ErrInvalidWindow is returned when the caller supplies a non-positive
// window length. Rates cannot be derived without a valid elapsed time.
var ErrInvalidWindow = errors.New("window seconds must be positive")

// InboundPrefix is the destination-address prefix that marks a packet
// as inbound. This is a private-subnet heuristic, not route-aware
// classification: it has no notion of NAT or multiple internal subnets.
const InboundPrefix = "10.0.0."

const (
	wellKnownPortMax = 1024
	topPortLimit     = 10
	lossRatio        = 0.02
)

// Inbound reports whether a packet counts toward inbound traffic.
// Every direction split in the summary (totals and time buckets) must
// go through this single rule so the views cannot drift apart.
func Inbound(p model.Packet) bool {
	return strings.HasPrefix(p.Dst, InboundPrefix)
}

// malformed reports whether a record is missing a mandatory field.
// Malformed records are skipped entirely and only counted.
func malformed(p model.Packet) bool {
	return p.Timestamp == "" || p.Dst == "" || p.Size <= 0
}

// Summarize derives the full NetworkSummary for one packet batch in a
// single pass. windowSeconds is the caller-declared elapsed time the
// batch represents; it is used only for rate normalization and is not
// verified against packet timestamps.
//
// Summarize is pure and stateless: it never mutates its input and
// retains nothing between calls, so concurrent invocations over
// different batches are safe.
func Summarize(packets []model.Packet, windowSeconds int) (*model.NetworkSummary, error) {
	if windowSeconds <= 0 {
		return nil, ErrInvalidWindow
	}

	var (
		inboundBytes  uint64
		outboundBytes uint64
		skipped       int
	)
	protoCounts := make(map[string]uint64)
	protoOrder := make(map[string]int) // first-seen index, breaks ranking ties
	portCounts := make(map[int]uint64)
	buckets := make(map[string]*model.TrafficBucket)

	for _, p := range packets {
		if malformed(p) {
			skipped++
			continue
		}

		size := uint64(p.Size)
		in := Inbound(p)
		if in {
			inboundBytes += size
		} else {
			outboundBytes += size
		}

		if _, seen := protoCounts[p.Proto]; !seen {
			protoOrder[p.Proto] = len(protoOrder)
		}
		protoCounts[p.Proto]++
		portCounts[p.DPort]++

		key := bucketKey(p.Timestamp)
		b, ok := buckets[key]
		if !ok {
			b = &model.TrafficBucket{Bucket: key}
			buckets[key] = b
		}
		if in {
			b.InboundBytes += size
		} else {
			b.OutboundBytes += size
		}
	}

	totalBytes := inboundBytes + outboundBytes
	window := float64(windowSeconds)

	// The two rates keep the unit bases of the dashboard cards they
	// feed: inbound in megabits/s, outbound in kilobits/s.
	inboundRate := float64(inboundBytes) * 8 / 1e6 / window
	outboundRate := float64(outboundBytes) * 8 * 1024 / 1e6 / window

	// Fixed-ratio placeholder, not a measured drop signal.
	estimatedLoss := lossRatio * float64(totalBytes)

	return &model.NetworkSummary{
		ProtocolCounts:     protoCounts,
		RankedProtocols:    rankProtocols(protoCounts, protoOrder),
		WellKnownPorts:     wellKnownPorts(portCounts),
		TopPorts:           topPorts(portCounts, topPortLimit),
		InboundBytes:       inboundBytes,
		OutboundBytes:      outboundBytes,
		TotalBytes:         totalBytes,
		InboundRateMbps:    round2(inboundRate),
		OutboundRateKbps:   round2(outboundRate),
		EstimatedLossBytes: round2(estimatedLoss),
		TrafficSeries:      sortBuckets(buckets),
		SkippedPackets:     skipped,
	}, nil
}

// round2 rounds a derived decimal to 2 fractional digits for display
// stability. Only applied to final outputs, never to intermediates.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
