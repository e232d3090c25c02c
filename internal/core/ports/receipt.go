// internal/core/ports/receipt.go
package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ammerola/apotek-pos/internal/core/domain"
)

// ReceiptRenderer turns a finished sale into printable output
type ReceiptRenderer interface {
	Render(ctx context.Context, lines []domain.CartLine, total decimal.Decimal) error
}

type transactionIDKey struct{}

// WithTransactionID marks ctx as rendering the receipt of transaction id
func WithTransactionID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, transactionIDKey{}, id)
}

// TransactionIDFrom returns the transaction a render call belongs to
func TransactionIDFrom(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(transactionIDKey{}).(uuid.UUID)
	return id, ok && id != uuid.Nil
}
