package messaging

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
)

// NatsServer runs an embedded NATS server together with the client connection
// the rest of the process publishes and subscribes through.
type NatsServer struct {
	ns    *server.Server
	conn  *nats.Conn
	ready chan struct{}

	startupTimeout time.Duration
	host           string
	port           int
	token          string
}

func NewNatsServer(opts ...NatsServerOpt) (*NatsServer, error) {
	s := &NatsServer{
		startupTimeout: 10 * time.Second,
		host:           "127.0.0.1",
		ready:          make(chan struct{}),
	}

	for _, opt := range opts {
		opt(s)
	}

	ns, err := server.NewServer(&server.Options{
		Host:          s.host,
		Port:          s.port,
		Authorization: s.token,
		NoSigs:        true, // Let the application handle signals
	})
	if err != nil {
		return nil, err
	}
	s.ns = ns

	return s, nil
}

func (n *NatsServer) Start(ctx context.Context) error {
	n.ns.Start()

	if !n.ns.ReadyForConnections(n.startupTimeout) {
		return fmt.Errorf("nats server not ready for connections")
	}

	clientOpts := []nats.Option{nats.Name("arcana")}
	if n.token != "" {
		clientOpts = append(clientOpts, nats.Token(n.token))
	}
	conn, err := nats.Connect(n.ns.ClientURL(), clientOpts...)
	if err != nil {
		n.ns.Shutdown()
		return fmt.Errorf("creating nats client connection: %w", err)
	}
	n.conn = conn
	close(n.ready)

	slog.InfoContext(ctx, "nats server listening", "addr", n.ns.Addr(), "auth", n.token != "")

	<-ctx.Done()
	if err := n.conn.Drain(); err != nil {
		slog.Warn("draining nats connection", "error", err)
	}
	n.ns.Shutdown()
	n.ns.WaitForShutdown()

	return nil
}

// ClientURL is the address front ends connect to.
func (n *NatsServer) ClientURL() string {
	return n.ns.ClientURL()
}

// Ready is closed once the server accepts connections and the internal client
// is connected.
func (n *NatsServer) Ready() <-chan struct{} {
	return n.ready
}

// WaitReady blocks until the server is ready or ctx ends.
func (n *NatsServer) WaitReady(ctx context.Context) error {
	select {
	case <-n.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Subscribe creates a subscription on the given subject.
// The handler is called for each message received.
// Returns an unsubscribe function to remove the subscription.
func (n *NatsServer) Subscribe(subject string, handler func(data []byte)) (func(), error) {
	if n.conn == nil {
		return nil, fmt.Errorf("nats server not started")
	}
	sub, err := n.conn.Subscribe(subject, func(msg *nats.Msg) {
		handler(msg.Data)
	})
	if err != nil {
		return nil, err
	}
	return func() { _ = sub.Unsubscribe() }, nil
}

// Reply subscribes a request handler on subject. Whatever the handler returns
// is sent back to the requester. Subscribers sharing a queue group split the
// requests between them.
func (n *NatsServer) Reply(subject, queue string, handler func(data []byte) []byte) (func(), error) {
	if n.conn == nil {
		return nil, fmt.Errorf("nats server not started")
	}
	sub, err := n.conn.QueueSubscribe(subject, queue, func(msg *nats.Msg) {
		if err := msg.Respond(handler(msg.Data)); err != nil {
			slog.Warn("responding to request", "subject", subject, "error", err)
		}
	})
	if err != nil {
		return nil, err
	}
	return func() { _ = sub.Unsubscribe() }, nil
}

// Publish sends a message to the given subject
func (n *NatsServer) Publish(subject string, data []byte) error {
	if n.conn == nil {
		return fmt.Errorf("nats server not started")
	}
	return n.conn.Publish(subject, data)
}

// Request sends data to subject and waits for a single reply.
func (n *NatsServer) Request(ctx context.Context, subject string, data []byte) ([]byte, error) {
	if n.conn == nil {
		return nil, fmt.Errorf("nats server not started")
	}
	msg, err := n.conn.RequestWithContext(ctx, subject, data)
	if err != nil {
		return nil, err
	}
	return msg.Data, nil
}
