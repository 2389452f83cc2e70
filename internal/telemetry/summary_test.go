package telemetry

import (
	"NetGlance/internal/model"
	"errors"
	"reflect"
	"testing"
)

func TestSummarize_ThreePacketScenario(t *testing.T) {
	packets := []model.Packet{
		{Timestamp: "2025-04-01T10:00:05", Src: "8.8.4.4", Dst: "10.0.0.5", Proto: "TCP", SPort: 51000, DPort: 443, Size: 1048576},
		{Timestamp: "2025-04-01T10:00:40", Src: "10.0.0.5", Dst: "8.8.8.8", Proto: "UDP", SPort: 51001, DPort: 53, Size: 2097152},
		{Timestamp: "2025-04-01T10:01:10", Src: "8.8.4.4", Dst: "10.0.0.9", Proto: "TCP", SPort: 51002, DPort: 22, Size: 512},
	}

	s, err := Summarize(packets, 900)
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}

	if s.InboundBytes != 1049088 {
		t.Errorf("InboundBytes = %d, want 1049088", s.InboundBytes)
	}
	if s.OutboundBytes != 2097152 {
		t.Errorf("OutboundBytes = %d, want 2097152", s.OutboundBytes)
	}
	if s.TotalBytes != 3146240 {
		t.Errorf("TotalBytes = %d, want 3146240", s.TotalBytes)
	}

	wantProtos := map[string]uint64{"TCP": 2, "UDP": 1}
	if !reflect.DeepEqual(s.ProtocolCounts, wantProtos) {
		t.Errorf("ProtocolCounts = %v, want %v", s.ProtocolCounts, wantProtos)
	}

	wantKnown := map[int]uint64{443: 1, 22: 1, 53: 1}
	if !reflect.DeepEqual(s.WellKnownPorts, wantKnown) {
		t.Errorf("WellKnownPorts = %v, want %v", s.WellKnownPorts, wantKnown)
	}

	if s.EstimatedLossBytes != 62924.8 {
		t.Errorf("EstimatedLossBytes = %v, want 62924.8", s.EstimatedLossBytes)
	}

	// 1049088*8/1e6/900 rounds to 0.01; 2097152*8*1024/1e6/900 to 19.09.
	if s.InboundRateMbps != 0.01 {
		t.Errorf("InboundRateMbps = %v, want 0.01", s.InboundRateMbps)
	}
	if s.OutboundRateKbps != 19.09 {
		t.Errorf("OutboundRateKbps = %v, want 19.09", s.OutboundRateKbps)
	}

	if s.SkippedPackets != 0 {
		t.Errorf("SkippedPackets = %d, want 0", s.SkippedPackets)
	}
}

func TestSummarize_EmptyBatch(t *testing.T) {
	s, err := Summarize(nil, 60)
	if err != nil {
		t.Fatalf("Summarize on empty batch failed: %v", err)
	}
	if s.TotalBytes != 0 || s.InboundBytes != 0 || s.OutboundBytes != 0 {
		t.Errorf("expected zero byte totals, got in=%d out=%d total=%d", s.InboundBytes, s.OutboundBytes, s.TotalBytes)
	}
	if s.InboundRateMbps != 0 || s.OutboundRateKbps != 0 || s.EstimatedLossBytes != 0 {
		t.Errorf("expected zero rates and loss, got %v / %v / %v", s.InboundRateMbps, s.OutboundRateKbps, s.EstimatedLossBytes)
	}
	if len(s.ProtocolCounts) != 0 || len(s.TopPorts) != 0 || len(s.TrafficSeries) != 0 {
		t.Errorf("expected empty views, got protocols=%v ports=%v series=%v", s.ProtocolCounts, s.TopPorts, s.TrafficSeries)
	}
}

func TestSummarize_InvalidWindow(t *testing.T) {
	packets := []model.Packet{
		{Timestamp: "2025-04-01T10:00:05", Dst: "10.0.0.5", Proto: "TCP", DPort: 443, Size: 100},
	}
	for _, window := range []int{0, -10} {
		if _, err := Summarize(packets, window); !errors.Is(err, ErrInvalidWindow) {
			t.Errorf("Summarize(window=%d) error = %v, want ErrInvalidWindow", window, err)
		}
	}
}

func TestSummarize_DirectionSplitIsTotal(t *testing.T) {
	packets := []model.Packet{
		{Timestamp: "2025-04-01T10:00:01", Dst: "10.0.0.1", Proto: "TCP", DPort: 80, Size: 100},
		{Timestamp: "2025-04-01T10:00:02", Dst: "10.0.1.1", Proto: "TCP", DPort: 80, Size: 200},
		{Timestamp: "2025-04-01T10:00:03", Dst: "192.168.1.4", Proto: "UDP", DPort: 53, Size: 300},
		{Timestamp: "2025-04-01T10:00:04", Dst: "10.0.0.200", Proto: "ICMP", DPort: 0, Size: 400},
		{Timestamp: "2025-04-01T10:00:05", Dst: "10.0.0.", Proto: "TCP", DPort: 8080, Size: 500},
	}
	s, err := Summarize(packets, 300)
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if s.InboundBytes+s.OutboundBytes != s.TotalBytes {
		t.Errorf("inbound %d + outbound %d != total %d", s.InboundBytes, s.OutboundBytes, s.TotalBytes)
	}
	if s.TotalBytes != 1500 {
		t.Errorf("TotalBytes = %d, want 1500", s.TotalBytes)
	}
	// 10.0.1.1 and 192.168.1.4 fall outside the inbound prefix.
	if s.InboundBytes != 1000 {
		t.Errorf("InboundBytes = %d, want 1000", s.InboundBytes)
	}
}

func TestSummarize_RankingIsDeterministic(t *testing.T) {
	packets := []model.Packet{
		{Timestamp: "2025-04-01T10:00:01", Dst: "10.0.0.1", Proto: "UDP", DPort: 53, Size: 10},
		{Timestamp: "2025-04-01T10:00:02", Dst: "10.0.0.1", Proto: "TCP", DPort: 443, Size: 10},
		{Timestamp: "2025-04-01T10:00:03", Dst: "10.0.0.1", Proto: "ICMP", DPort: 0, Size: 10},
		{Timestamp: "2025-04-01T10:00:04", Dst: "10.0.0.1", Proto: "TCP", DPort: 443, Size: 10},
	}

	first, err := Summarize(packets, 60)
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	second, err := Summarize(packets, 60)
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}

	if !reflect.DeepEqual(first.RankedProtocols, second.RankedProtocols) {
		t.Errorf("ranked protocols differ between runs: %v vs %v", first.RankedProtocols, second.RankedProtocols)
	}

	// TCP leads on count; the UDP/ICMP tie resolves in first-seen order.
	want := []model.NameCount{{Name: "TCP", Value: 2}, {Name: "UDP", Value: 1}, {Name: "ICMP", Value: 1}}
	if !reflect.DeepEqual(first.RankedProtocols, want) {
		t.Errorf("RankedProtocols = %v, want %v", first.RankedProtocols, want)
	}
}

func TestSummarize_TopPortsLimitAndOrder(t *testing.T) {
	var packets []model.Packet
	// Twelve distinct high ports; port 40000+i appears i+1 times.
	for i := 0; i < 12; i++ {
		for n := 0; n <= i; n++ {
			packets = append(packets, model.Packet{
				Timestamp: "2025-04-01T10:00:01",
				Dst:       "10.0.0.1",
				Proto:     "TCP",
				DPort:     40000 + i,
				Size:      64,
			})
		}
	}
	// Two ports tied at the top to exercise the ascending-port tie break.
	for n := 0; n < 20; n++ {
		packets = append(packets,
			model.Packet{Timestamp: "2025-04-01T10:00:01", Dst: "10.0.0.1", Proto: "TCP", DPort: 50002, Size: 64},
			model.Packet{Timestamp: "2025-04-01T10:00:01", Dst: "10.0.0.1", Proto: "TCP", DPort: 50001, Size: 64},
		)
	}

	s, err := Summarize(packets, 60)
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}

	if len(s.TopPorts) != 10 {
		t.Fatalf("TopPorts has %d entries, want 10", len(s.TopPorts))
	}
	if s.TopPorts[0].Port != 50001 || s.TopPorts[1].Port != 50002 {
		t.Errorf("tied top ports = %d, %d, want 50001, 50002", s.TopPorts[0].Port, s.TopPorts[1].Port)
	}
	for i := 1; i < len(s.TopPorts); i++ {
		if s.TopPorts[i].Count > s.TopPorts[i-1].Count {
			t.Errorf("TopPorts not sorted descending at index %d: %v", i, s.TopPorts)
		}
	}
	// None of the high ports belong in the well-known view.
	if len(s.WellKnownPorts) != 0 {
		t.Errorf("WellKnownPorts = %v, want empty", s.WellKnownPorts)
	}
}

func TestSummarize_WellKnownViewConsistentWithTally(t *testing.T) {
	packets := []model.Packet{
		{Timestamp: "2025-04-01T10:00:01", Dst: "10.0.0.1", Proto: "TCP", DPort: 22, Size: 64},
		{Timestamp: "2025-04-01T10:00:02", Dst: "10.0.0.1", Proto: "TCP", DPort: 22, Size: 64},
		{Timestamp: "2025-04-01T10:00:03", Dst: "10.0.0.1", Proto: "TCP", DPort: 443, Size: 64},
		{Timestamp: "2025-04-01T10:00:04", Dst: "10.0.0.1", Proto: "TCP", DPort: 1024, Size: 64},
		{Timestamp: "2025-04-01T10:00:05", Dst: "10.0.0.1", Proto: "TCP", DPort: 1025, Size: 64},
		{Timestamp: "2025-04-01T10:00:06", Dst: "10.0.0.1", Proto: "TCP", DPort: 60000, Size: 64},
	}
	s, err := Summarize(packets, 60)
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}

	want := map[int]uint64{22: 2, 443: 1, 1024: 1}
	if !reflect.DeepEqual(s.WellKnownPorts, want) {
		t.Errorf("WellKnownPorts = %v, want %v", s.WellKnownPorts, want)
	}

	// Every well-known entry must match the count the full ranking saw.
	full := make(map[int]uint64, len(s.TopPorts))
	for _, pc := range s.TopPorts {
		full[pc.Port] = pc.Count
	}
	for port, count := range s.WellKnownPorts {
		if full[port] != count {
			t.Errorf("port %d: well-known count %d != full tally %d", port, count, full[port])
		}
	}
}

func TestSummarize_TrafficSeriesOrderingAndGaps(t *testing.T) {
	// Unordered input spanning 10:00, 10:02 and 10:05; 10:01, 10:03 and
	// 10:04 carry no traffic and must be absent, not zero-filled.
	packets := []model.Packet{
		{Timestamp: "2025-04-01T10:05:59", Dst: "8.8.8.8", Proto: "UDP", DPort: 53, Size: 700},
		{Timestamp: "2025-04-01T10:00:05", Dst: "10.0.0.5", Proto: "TCP", DPort: 443, Size: 100},
		{Timestamp: "2025-04-01T10:02:30", Dst: "10.0.0.5", Proto: "TCP", DPort: 443, Size: 300},
		{Timestamp: "2025-04-01T10:00:45", Dst: "8.8.8.8", Proto: "TCP", DPort: 443, Size: 200},
	}
	s, err := Summarize(packets, 600)
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}

	want := []model.TrafficBucket{
		{Bucket: "2025-04-01T10:00", InboundBytes: 100, OutboundBytes: 200},
		{Bucket: "2025-04-01T10:02", InboundBytes: 300, OutboundBytes: 0},
		{Bucket: "2025-04-01T10:05", InboundBytes: 0, OutboundBytes: 700},
	}
	if !reflect.DeepEqual(s.TrafficSeries, want) {
		t.Errorf("TrafficSeries = %v, want %v", s.TrafficSeries, want)
	}

	for i := 1; i < len(s.TrafficSeries); i++ {
		if s.TrafficSeries[i].Bucket < s.TrafficSeries[i-1].Bucket {
			t.Errorf("bucket keys not ascending at index %d", i)
		}
	}
}

func TestSummarize_MalformedPacketsSkippedEntirely(t *testing.T) {
	packets := []model.Packet{
		{Timestamp: "2025-04-01T10:00:01", Dst: "10.0.0.5", Proto: "TCP", DPort: 443, Size: 100},
		{Timestamp: "", Dst: "10.0.0.5", Proto: "TCP", DPort: 443, Size: 100},       // no timestamp
		{Timestamp: "2025-04-01T10:00:03", Dst: "", Proto: "UDP", DPort: 53, Size: 100}, // no destination
		{Timestamp: "2025-04-01T10:00:04", Dst: "10.0.0.5", Proto: "UDP", DPort: 53},    // no size
	}
	s, err := Summarize(packets, 60)
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}

	if s.SkippedPackets != 3 {
		t.Errorf("SkippedPackets = %d, want 3", s.SkippedPackets)
	}
	// Skipped records must not leak into any view.
	if s.TotalBytes != 100 {
		t.Errorf("TotalBytes = %d, want 100", s.TotalBytes)
	}
	if s.ProtocolCounts["TCP"] != 1 || s.ProtocolCounts["UDP"] != 0 {
		t.Errorf("ProtocolCounts = %v, want TCP:1 only", s.ProtocolCounts)
	}
	if len(s.TrafficSeries) != 1 {
		t.Errorf("TrafficSeries has %d buckets, want 1", len(s.TrafficSeries))
	}
}

func TestSummarize_PortlessRecordsTallyUnderPortZero(t *testing.T) {
	// ICMP and other portless records carry DPort 0 and are tallied
	// like any other destination port, matching the capture schema
	// where a missing port defaults to zero.
	packets := []model.Packet{
		{Timestamp: "2025-04-01T10:00:01", Dst: "10.0.0.1", Proto: "ICMP", DPort: 0, Size: 64},
		{Timestamp: "2025-04-01T10:00:02", Dst: "10.0.0.1", Proto: "ICMP", DPort: 0, Size: 64},
		{Timestamp: "2025-04-01T10:00:03", Dst: "10.0.0.1", Proto: "TCP", DPort: 443, Size: 64},
	}
	s, err := Summarize(packets, 60)
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}

	if s.WellKnownPorts[0] != 2 {
		t.Errorf("WellKnownPorts[0] = %d, want 2", s.WellKnownPorts[0])
	}
	if len(s.TopPorts) != 2 || s.TopPorts[0].Port != 0 || s.TopPorts[0].Count != 2 {
		t.Errorf("TopPorts = %v, want port 0 ranked first with count 2", s.TopPorts)
	}
}

func TestSummarize_EstimatedLossTracksTotal(t *testing.T) {
	packets := []model.Packet{
		{Timestamp: "2025-04-01T10:00:01", Dst: "10.0.0.1", Proto: "TCP", DPort: 80, Size: 2500},
		{Timestamp: "2025-04-01T10:00:02", Dst: "9.9.9.9", Proto: "TCP", DPort: 80, Size: 7500},
	}
	s, err := Summarize(packets, 60)
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if want := 0.02 * float64(s.TotalBytes); s.EstimatedLossBytes != want {
		t.Errorf("EstimatedLossBytes = %v, want %v", s.EstimatedLossBytes, want)
	}
}

func TestBucketKey(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"2025-04-01T10:00:05", "2025-04-01T10:00"},
		{"2025-04-01T10:00", "2025-04-01T10:00"},
		{"2025-04-01", "2025-04-01"},
	}
	for _, c := range cases {
		if got := bucketKey(c.in); got != c.want {
			t.Errorf("bucketKey(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
