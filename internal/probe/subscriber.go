package probe

import (
	"NetGlance/internal/config"
	"NetGlance/internal/model"
	"encoding/json"
	"log"

	"github.com/nats-io/nats.go"
)

// PacketHandler is a function that processes a received packet record.
type PacketHandler func(pkt model.Packet)

// Subscriber is responsible for subscribing to a NATS subject and
// dispatching decoded packet records to a handler.
type Subscriber struct {
	nc      *nats.Conn
	sub     *nats.Subscription
	subject string
}

// NewSubscriber creates a new NATS subscriber.
func NewSubscriber(cfg config.NATSConfig) (*Subscriber, error) {
	nc, err := nats.Connect(cfg.URL)
	if err != nil {
		return nil, err
	}
	log.Printf("Connected to NATS server at %s", cfg.URL)
	return &Subscriber{nc: nc, subject: cfg.Subject}, nil
}

// Start subscribes to the configured subject and processes messages
// with the provided handler. Messages that fail to decode are logged
// and dropped; one bad record must not stall the feed.
func (s *Subscriber) Start(handler PacketHandler) error {
	sub, err := s.nc.Subscribe(s.subject, func(msg *nats.Msg) {
		var pkt model.Packet
		if err := json.Unmarshal(msg.Data, &pkt); err != nil {
			log.Printf("Error unmarshalling packet record: %v", err)
			return
		}
		handler(pkt)
	})
	if err != nil {
		return err
	}
	s.sub = sub
	log.Printf("Subscribed to '%s'. Waiting for messages...", s.subject)
	return nil
}

// Close unsubscribes and closes the NATS connection.
func (s *Subscriber) Close() {
	if s.sub != nil {
		s.sub.Unsubscribe()
	}
	if s.nc != nil {
		s.nc.Close()
		log.Println("NATS connection closed.")
	}
}
