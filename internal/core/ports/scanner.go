// internal/core/ports/scanner.go
package ports

import "context"

// Scanner delivers decoded barcode text while a session is live.
// Callbacks may run on any goroutine but never before Start returns.
type Scanner interface {
	Start(ctx context.Context, onDecode func(text string), onError func(err error)) (ScanSession, error)
}

// ScanSession is a live subscription to decode events. Stop releases the
// underlying device and must be safe to call more than once.
type ScanSession interface {
	Stop() error
}

// ScanFeed accepts decoded barcode text from an external reader and hands
// it to whichever scan session is live
type ScanFeed interface {
	Push(ctx context.Context, text string) error
}
