package infra

import (
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
)

const flushTimeout = 5 * time.Second

// Publisher sends one message to a subject. Publish returns only after the
// server has acknowledged the flush.
type Publisher interface {
	Publish(subject string, data []byte) error
	Close()
}

type natsPublisher struct {
	nc *nats.Conn
}

func NewNATSPublisher(nc *nats.Conn) Publisher {
	return &natsPublisher{nc: nc}
}

func (p *natsPublisher) Publish(subject string, data []byte) error {
	if err := p.nc.Publish(subject, data); err != nil {
		return fmt.Errorf("publish %s: %w", subject, err)
	}
	if err := p.nc.FlushTimeout(flushTimeout); err != nil {
		return fmt.Errorf("flush %s: %w", subject, err)
	}
	return nil
}

func (p *natsPublisher) Close() {
	if p.nc != nil {
		p.nc.Close()
	}
}
