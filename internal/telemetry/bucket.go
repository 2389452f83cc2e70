package telemetry

import (
	"NetGlance/internal/model"
	"sort"
)

// bucketKeyLen is the length of an ISO-8601 timestamp truncated to
// minute granularity: "2006-01-02T15:04".
const bucketKeyLen = 16

// bucketKey truncates a packet timestamp to its one-minute bucket.
// Lexical ordering of keys matches chronological ordering given the
// fixed timestamp format. A timestamp too short to carry seconds is
// used as-is; it still groups consistently with its equals.
func bucketKey(ts string) string {
	if len(ts) <= bucketKeyLen {
		return ts
	}
	return ts[:bucketKeyLen]
}

// sortBuckets flattens the bucket map into the series ordered by
// ascending bucket key. Minutes with no observed packets are absent;
// the series is not gap-filled.
func sortBuckets(buckets map[string]*model.TrafficBucket) []model.TrafficBucket {
	series := make([]model.TrafficBucket, 0, len(buckets))
	for _, b := range buckets {
		series = append(series, *b)
	}
	sort.Slice(series, func(i, j int) bool {
		return series[i].Bucket < series[j].Bucket
	})
	return series
}
