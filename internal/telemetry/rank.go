package telemetry

import (
	"NetGlance/internal/model"
	"sort"
)

// rankProtocols turns the protocol tally into a ranked sequence for
// chart rendering: descending by count, ties broken by first-seen
// order so the output is deterministic for a fixed input order.
func rankProtocols(counts map[string]uint64, order map[string]int) []model.NameCount {
	ranked := make([]model.NameCount, 0, len(counts))
	for name, value := range counts {
		ranked = append(ranked, model.NameCount{Name: name, Value: value})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Value != ranked[j].Value {
			return ranked[i].Value > ranked[j].Value
		}
		return order[ranked[i].Name] < order[ranked[j].Name]
	})
	return ranked
}

// topPorts ranks the full port tally descending by count, ties broken
// by ascending port number, truncated to limit entries.
func topPorts(counts map[int]uint64, limit int) []model.PortCount {
	ranked := make([]model.PortCount, 0, len(counts))
	for port, count := range counts {
		ranked = append(ranked, model.PortCount{Port: port, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Port < ranked[j].Port
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// wellKnownPorts filters the shared tally down to destination ports in
// the well-known range for the compact summary card. No ranking or
// limit is applied.
func wellKnownPorts(counts map[int]uint64) map[int]uint64 {
	known := make(map[int]uint64)
	for port, count := range counts {
		if port <= wellKnownPortMax {
			known[port] = count
		}
	}
	return known
}
