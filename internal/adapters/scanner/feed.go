// internal/adapters/scanner/feed.go
package scanner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/ammerola/apotek-pos/internal/core/ports"
)

var ErrNoActiveSession = errors.New("scanner is not active")

// FeedScanner is an in-process scanner fed through Push, used when decoded
// barcodes arrive over HTTP from a handheld reader or a browser camera.
// At most one session is live at a time.
type FeedScanner struct {
	buffer int
	logger *slog.Logger

	mu      sync.Mutex
	current *feedSession
}

var (
	_ ports.Scanner  = (*FeedScanner)(nil)
	_ ports.ScanFeed = (*FeedScanner)(nil)
)

// NewFeedScanner creates a scanner whose sessions queue up to buffer scans
func NewFeedScanner(buffer int, logger *slog.Logger) *FeedScanner {
	if buffer <= 0 {
		buffer = 1
	}
	return &FeedScanner{
		buffer: buffer,
		logger: logger.With(slog.String("component", "feed_scanner")),
	}
}

// Start opens a session. Starting while another session is live replaces it.
func (f *FeedScanner) Start(ctx context.Context, onDecode func(string), onError func(error)) (ports.ScanSession, error) {
	if onDecode == nil {
		return nil, fmt.Errorf("onDecode callback is required")
	}

	session := &feedSession{
		owner: f,
		scans: make(chan string, f.buffer),
		done:  make(chan struct{}),
	}

	f.mu.Lock()
	previous := f.current
	f.current = session
	f.mu.Unlock()

	if previous != nil {
		f.logger.WarnContext(ctx, "replacing live scan session")
		_ = previous.Stop()
	}

	go session.run(onDecode)

	f.logger.InfoContext(ctx, "scan session opened")
	return session, nil
}

// Push queues text for the live session. Blank input is ignored.
func (f *FeedScanner) Push(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	f.mu.Lock()
	session := f.current
	f.mu.Unlock()

	if session == nil {
		return ErrNoActiveSession
	}

	select {
	case session.scans <- text:
		return nil
	case <-session.done:
		return ErrNoActiveSession
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Active reports whether a session is live
func (f *FeedScanner) Active() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.current != nil
}

type feedSession struct {
	owner *FeedScanner
	scans chan string
	done  chan struct{}
	once  sync.Once
}

func (s *feedSession) run(onDecode func(string)) {
	for {
		select {
		case <-s.done:
			return
		case text := <-s.scans:
			// Stop may have raced with the receive.
			select {
			case <-s.done:
				return
			default:
			}
			onDecode(text)
		}
	}
}

// Stop ends the session without waiting for a callback in progress
func (s *feedSession) Stop() error {
	s.once.Do(func() {
		close(s.done)

		s.owner.mu.Lock()
		if s.owner.current == s {
			s.owner.current = nil
		}
		s.owner.mu.Unlock()
	})
	return nil
}
