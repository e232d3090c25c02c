// internal/adapters/redis_adapter/scanner.go
package redis_a

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/redis/go-redis/v9"

	"github.com/ammerola/apotek-pos/internal/core/ports"
)

// PubSubScanner receives decoded barcodes published on a Redis channel by
// a hardware bridge. Each Start opens its own subscription.
type PubSubScanner struct {
	client  *redis.Client
	channel string
	logger  *slog.Logger
}

var (
	_ ports.Scanner  = (*PubSubScanner)(nil)
	_ ports.ScanFeed = (*PubSubScanner)(nil)
)

// NewPubSubScanner creates a scanner listening on channel
func NewPubSubScanner(client *redis.Client, channel string, logger *slog.Logger) *PubSubScanner {
	return &PubSubScanner{
		client:  client,
		channel: channel,
		logger:  logger.With(slog.String("component", "pubsub_scanner")),
	}
}

// Start subscribes to the channel and delivers each message to onDecode
func (s *PubSubScanner) Start(ctx context.Context, onDecode func(string), onError func(error)) (ports.ScanSession, error) {
	sub := s.client.Subscribe(ctx, s.channel)

	// Wait for the subscription to be confirmed so no message published
	// after Start returns can be missed.
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, fmt.Errorf("failed to subscribe to %s: %w", s.channel, err)
	}

	session := &pubSubSession{sub: sub, ready: make(chan struct{})}
	go session.run(ctx, onDecode, onError, s.logger)
	close(session.ready)

	s.logger.InfoContext(ctx, "subscribed to scan channel", slog.String("channel", s.channel))
	return session, nil
}

// Push publishes text to the channel
func (s *PubSubScanner) Push(ctx context.Context, text string) error {
	if err := s.client.Publish(ctx, s.channel, text).Err(); err != nil {
		return fmt.Errorf("failed to publish scan: %w", err)
	}
	return nil
}

type pubSubSession struct {
	sub     *redis.PubSub
	ready   chan struct{}
	stopped atomic.Bool
	once    sync.Once
	err     error
}

func (p *pubSubSession) run(ctx context.Context, onDecode func(string), onError func(error), logger *slog.Logger) {
	<-p.ready

	for msg := range p.sub.Channel() {
		if p.stopped.Load() {
			return
		}

		text := strings.TrimSpace(msg.Payload)
		if text == "" {
			if onError != nil {
				onError(fmt.Errorf("empty scan payload on %s", msg.Channel))
			}
			continue
		}

		logger.DebugContext(ctx, "scan received", slog.String("barcode", text))
		onDecode(text)
	}
}

// Stop closes the subscription. It does not wait for a callback already in
// progress; messages that arrive afterwards are dropped.
func (p *pubSubSession) Stop() error {
	p.once.Do(func() {
		p.stopped.Store(true)
		p.err = p.sub.Close()
	})
	return p.err
}
