package model

import "context"

// PacketSource is the fetch layer contract: it returns the packets
// observed within the trailing windowSeconds. Ordering of the returned
// slice is not guaranteed; consumers must not assume sortedness.
type PacketSource interface {
	FetchNetworkData(ctx context.Context, windowSeconds int) ([]Packet, error)
}
