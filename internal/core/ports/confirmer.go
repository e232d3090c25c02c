// internal/core/ports/confirmer.go
package ports

import "context"

// Confirmer asks the cashier a yes/no question and blocks for the answer
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

// ConfirmFunc adapts an ordinary function to Confirmer
type ConfirmFunc func(ctx context.Context, prompt string) bool

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) bool {
	return f(ctx, prompt)
}
