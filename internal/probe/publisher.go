package probe

import (
	"NetGlance/internal/config"
	"NetGlance/internal/model"
	"encoding/json"
	"log"

	"github.com/nats-io/nats.go"
)

// Publisher is responsible for publishing packet records to a NATS subject.
type Publisher struct {
	nc      *nats.Conn
	subject string
}

// NewPublisher creates a new NATS publisher.
func NewPublisher(cfg config.NATSConfig) (*Publisher, error) {
	nc, err := nats.Connect(cfg.URL)
	if err != nil {
		return nil, err
	}
	log.Printf("Connected to NATS server at %s", cfg.URL)
	return &Publisher{nc: nc, subject: cfg.Subject}, nil
}

// Publish serializes a Packet to JSON and publishes it to the
// configured NATS subject.
func (p *Publisher) Publish(pkt model.Packet) error {
	data, err := json.Marshal(pkt)
	if err != nil {
		return err
	}
	return p.nc.Publish(p.subject, data)
}

// Close drains and closes the NATS connection.
func (p *Publisher) Close() {
	if p.nc != nil {
		p.nc.Drain()
		log.Println("NATS connection drained and closed.")
	}
}
