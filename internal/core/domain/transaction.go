// internal/core/domain/transaction.go
package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CheckoutPrompt is shown to the cashier before a sale is recorded
const CheckoutPrompt = "Proses transaksi dan cetak?"

// Transaction is the write-once record of a completed sale
type Transaction struct {
	ID        uuid.UUID       `json:"id"`
	Total     decimal.Decimal `json:"total"`
	Items     []CartLine      `json:"items"`
	CreatedAt time.Time       `json:"created_at"`
}

// NewTransaction snapshots the cart's lines and total
func NewTransaction(cart Cart) *Transaction {
	return &Transaction{
		ID:        uuid.New(),
		Total:     cart.Total(),
		Items:     cart.Lines(),
		CreatedAt: time.Now(),
	}
}

// CheckoutStatus describes how a checkout attempt ended
type CheckoutStatus string

const (
	CheckoutCompleted CheckoutStatus = "completed"
	CheckoutDeclined  CheckoutStatus = "declined"
	CheckoutEmpty     CheckoutStatus = "empty"
	CheckoutFailed    CheckoutStatus = "failed"
)

// CheckoutResult reports the outcome of a checkout attempt. StepsCompleted
// counts the insert, stock-update and render commands that succeeded, so a
// failed result shows how far the sale got before stopping.
type CheckoutResult struct {
	Status         CheckoutStatus `json:"status"`
	Transaction    *Transaction   `json:"transaction,omitempty"`
	StepsCompleted int            `json:"steps_completed"`
	StepsPlanned   int            `json:"steps_planned"`
}
