// internal/adapters/receipt/text.go
package receipt

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/ammerola/apotek-pos/internal/core/domain"
	"github.com/ammerola/apotek-pos/internal/core/ports"
)

const (
	lineWidth  = 32
	dateLayout = "02/01/2006 15:04"
)

// Layout holds the fixed text printed around the sale lines
type Layout struct {
	StoreName string
	Tagline   string
	Footer    string
	Locale    string
}

// Formatter lays out receipts as fixed-width text
type Formatter struct {
	layout  Layout
	printer *message.Printer
}

// NewFormatter creates a formatter. An unparseable locale falls back to Indonesian.
func NewFormatter(layout Layout) *Formatter {
	tag, err := language.Parse(layout.Locale)
	if err != nil || layout.Locale == "" {
		tag = language.Indonesian
	}
	return &Formatter{
		layout:  layout,
		printer: message.NewPrinter(tag),
	}
}

// Amount formats a money value with the locale's grouping, e.g. "10.000"
func (f *Formatter) Amount(d decimal.Decimal) string {
	if d.IsInteger() {
		return f.printer.Sprintf("%d", d.IntPart())
	}
	return f.printer.Sprint(number.Decimal(d.InexactFloat64(), number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

// Format renders the receipt body
func (f *Formatter) Format(lines []domain.CartLine, total decimal.Decimal, at time.Time) string {
	var b strings.Builder

	b.WriteString(center(f.layout.StoreName))
	if f.layout.Tagline != "" {
		b.WriteString(center(f.layout.Tagline))
	}
	b.WriteString(strings.Repeat("=", lineWidth) + "\n")
	b.WriteString(at.Format(dateLayout) + "\n")
	b.WriteString(strings.Repeat("-", lineWidth) + "\n")

	for _, l := range lines {
		left := fmt.Sprintf("%s x%d", l.Medicine.Name, l.Quantity)
		b.WriteString(columns(left, f.Amount(l.Subtotal())))
	}

	b.WriteString(strings.Repeat("-", lineWidth) + "\n")
	b.WriteString(fmt.Sprintf("TOTAL: Rp %s\n", f.Amount(total)))
	if f.layout.Footer != "" {
		b.WriteString("\n" + center(f.layout.Footer))
	}

	return b.String()
}

func center(s string) string {
	if pad := (lineWidth - len(s)) / 2; pad > 0 {
		s = strings.Repeat(" ", pad) + s
	}
	return s + "\n"
}

func columns(left, right string) string {
	gap := lineWidth - len(left) - len(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right + "\n"
}

// TextRenderer prints receipts to a writer or a printer device
type TextRenderer struct {
	formatter *Formatter
	open      func() (io.WriteCloser, error)
	now       func() time.Time
	logger    *slog.Logger

	mu sync.Mutex
}

var _ ports.ReceiptRenderer = (*TextRenderer)(nil)

// NewTextRenderer writes every receipt to w
func NewTextRenderer(w io.Writer, formatter *Formatter, logger *slog.Logger) *TextRenderer {
	return &TextRenderer{
		formatter: formatter,
		open:      func() (io.WriteCloser, error) { return nopCloser{w}, nil },
		now:       time.Now,
		logger:    logger.With(slog.String("component", "receipt")),
	}
}

// NewPrinterRenderer opens path for each receipt, which suits both line
// printer devices and plain spool files
func NewPrinterRenderer(path string, formatter *Formatter, logger *slog.Logger) *TextRenderer {
	r := NewTextRenderer(nil, formatter, logger)
	r.open = func() (io.WriteCloser, error) {
		return os.OpenFile(path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o644)
	}
	return r
}

// WithClock replaces the time source used for the receipt date
func (r *TextRenderer) WithClock(now func() time.Time) *TextRenderer {
	r.now = now
	return r
}

// Render prints one receipt
func (r *TextRenderer) Render(ctx context.Context, lines []domain.CartLine, total decimal.Decimal) error {
	text := r.formatter.Format(lines, total, r.now())

	r.mu.Lock()
	defer r.mu.Unlock()

	w, err := r.open()
	if err != nil {
		return fmt.Errorf("failed to open printer: %w", err)
	}

	if _, err := io.WriteString(w, text+"\n"); err != nil {
		_ = w.Close()
		return fmt.Errorf("failed to print receipt: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close printer: %w", err)
	}

	r.logger.InfoContext(ctx, "receipt printed",
		slog.Int("lines", len(lines)),
		slog.String("total", total.String()))
	return nil
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
