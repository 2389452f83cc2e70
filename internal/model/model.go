package model

// Packet is one captured network event record as delivered by the fetch
// layer. Timestamp is an ISO-8601-like string at second granularity
// ("2006-01-02T15:04:05"), sortable lexically. Flags is optional and
// only meaningful for TCP. A Packet is read-only once produced; the
// aggregation pipeline never mutates it.
type Packet struct {
	Timestamp string `json:"timestamp"`
	Src       string `json:"src"`
	Dst       string `json:"dst"`
	Proto     string `json:"proto"`
	SPort     int    `json:"sport"`
	DPort     int    `json:"dport"`
	Size      int    `json:"size"`
	Flags     string `json:"flags,omitempty"`
}

// NameCount is a ranked name/value pair for chart rendering.
type NameCount struct {
	Name  string `json:"name"`
	Value uint64 `json:"value"`
}

// PortCount is a ranked port/count pair for the detailed port view.
type PortCount struct {
	Port  int    `json:"port"`
	Count uint64 `json:"count"`
}

// TrafficBucket holds the byte totals for a single one-minute time
// slice of the traffic series.
type TrafficBucket struct {
	Bucket        string `json:"bucket"`
	InboundBytes  uint64 `json:"inbound_bytes"`
	OutboundBytes uint64 `json:"outbound_bytes"`
}

// NetworkSummary is the full set of derived metrics for one packet
// batch. It is freshly constructed per aggregation call and carries no
// identity beyond that call.
//
// InboundRateMbps and OutboundRateKbps deliberately use different unit
// bases; the dashboard cards that render them are labeled accordingly.
type NetworkSummary struct {
	ProtocolCounts  map[string]uint64 `json:"protocol_counts"`
	RankedProtocols []NameCount       `json:"ranked_protocols"`
	WellKnownPorts  map[int]uint64    `json:"well_known_ports"`
	TopPorts        []PortCount       `json:"top_ports"`

	InboundBytes  uint64 `json:"inbound_bytes"`
	OutboundBytes uint64 `json:"outbound_bytes"`
	TotalBytes    uint64 `json:"total_bytes"`

	InboundRateMbps    float64 `json:"inbound_rate_mbps"`
	OutboundRateKbps   float64 `json:"outbound_rate_kbps"`
	EstimatedLossBytes float64 `json:"estimated_loss_bytes"`

	TrafficSeries []TrafficBucket `json:"traffic_series"`

	// SkippedPackets counts records dropped for missing mandatory
	// fields. Diagnostic only; skipped records appear in no view.
	SkippedPackets int `json:"skipped_packets"`
}
