package query

import (
	"NetGlance/internal/config"
	"NetGlance/internal/model"
	"context"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
)

// timestampLayout is the wire format of Packet.Timestamp: second
// granularity, lexically sortable.
const timestampLayout = "2006-01-02T15:04:05"

// Fetcher reads packet records observed within a trailing window from
// a ClickHouse packet store. It is the read side only; nothing here
// writes telemetry. Implements model.PacketSource.
type Fetcher struct {
	conn  clickhouse.Conn
	table string
}

// NewFetcher connects to ClickHouse and returns a packet fetcher.
func NewFetcher(cfg config.ClickHouseConfig) (*Fetcher, error) {
	conn, err := connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to clickhouse: %w", err)
	}
	return &Fetcher{conn: conn, table: cfg.Table}, nil
}

func connect(cfg config.ClickHouseConfig) (clickhouse.Conn, error) {
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{addr},
		Auth: clickhouse.Auth{
			Database: cfg.Database,
			Username: cfg.Username,
			Password: cfg.Password,
		},
	})

	if err != nil {
		return nil, err
	}

	if err := conn.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to ping clickhouse: %w", err)
	}

	return conn, nil
}

// FetchNetworkData returns the packets observed within the trailing
// windowSeconds. Row order is whatever the store returns; the
// aggregation pipeline does not rely on it.
func (f *Fetcher) FetchNetworkData(ctx context.Context, windowSeconds int) ([]model.Packet, error) {
	if windowSeconds <= 0 {
		return nil, fmt.Errorf("window seconds must be positive, got %d", windowSeconds)
	}

	query := fmt.Sprintf(`
		SELECT Timestamp, Src, Dst, Proto, SPort, DPort, Size, Flags
		FROM %s
		WHERE Timestamp >= now() - toIntervalSecond(?)
	`, f.table)

	rows, err := f.conn.Query(ctx, query, windowSeconds)
	if err != nil {
		return nil, fmt.Errorf("failed to query packets: %w", err)
	}
	defer rows.Close()

	var packets []model.Packet
	for rows.Next() {
		var (
			ts           time.Time
			src, dst     string
			proto, flags string
			sport, dport uint16
			size         uint64
		)
		if err := rows.Scan(&ts, &src, &dst, &proto, &sport, &dport, &size, &flags); err != nil {
			return nil, fmt.Errorf("failed to scan packet row: %w", err)
		}
		packets = append(packets, model.Packet{
			Timestamp: ts.Format(timestampLayout),
			Src:       src,
			Dst:       dst,
			Proto:     proto,
			SPort:     int(sport),
			DPort:     int(dport),
			Size:      int(size),
			Flags:     flags,
		})
	}

	return packets, nil
}

// Close shuts down the underlying connection pool.
func (f *Fetcher) Close() error {
	return f.conn.Close()
}
