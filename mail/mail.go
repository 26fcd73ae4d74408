// Package mail is the outbound notification collaborator.
//
// Managers send mail as a fire-and-forget side effect after successful
// state changes; a delivery failure never fails the operation that
// triggered it.
package mail

import (
	"context"
	"encoding/json"

	"github.com/nats-io/nats.go"
)

// Message is one outbound mail.
type Message struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Sender delivers messages. Implementations must be safe for concurrent use.
type Sender interface {
	// Send hands the message off for delivery.
	Send(ctx context.Context, msg Message) error
}

// NopSender discards every message. It is the default when no sender is
// configured.
type NopSender struct{}

// NewNopSender creates a sender that discards all messages.
func NewNopSender() *NopSender {
	return &NopSender{}
}

// Send discards the message.
func (*NopSender) Send(_ context.Context, _ Message) error {
	return nil
}

// DefaultSubject is the subject NATSSender publishes to unless overridden.
const DefaultSubject = "registrar.mail.outbound"

// NATSSender publishes messages as JSON to a NATS subject, where a delivery
// worker outside this system picks them up.
type NATSSender struct {
	conn    *nats.Conn
	subject string
}

// NATSOption configures a NATSSender.
type NATSOption func(*NATSSender)

// WithSubject overrides the publish subject.
func WithSubject(subject string) NATSOption {
	return func(s *NATSSender) {
		s.subject = subject
	}
}

// NewNATSSender creates a sender publishing to the given connection.
func NewNATSSender(conn *nats.Conn, opts ...NATSOption) *NATSSender {
	sender := &NATSSender{
		conn:    conn,
		subject: DefaultSubject,
	}
	for _, opt := range opts {
		opt(sender)
	}

	return sender
}

// Send publishes the message. Publishing is asynchronous; a nil error means
// the message was buffered, not that it was delivered.
func (s *NATSSender) Send(_ context.Context, msg Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	return s.conn.Publish(s.subject, data)
}

var (
	_ Sender = (*NopSender)(nil)
	_ Sender = (*NATSSender)(nil)
)
