// internal/core/services/checkout.go
package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ammerola/apotek-pos/internal/core/domain"
	"github.com/ammerola/apotek-pos/internal/core/ports"
)

// CheckoutWorkflow records a sale, decrements stock and prints the receipt.
// Steps run in a fixed order and a failure stops the remaining ones;
// completed steps are never rolled back.
type CheckoutWorkflow struct {
	store    ports.CatalogStore
	renderer ports.ReceiptRenderer
	logger   *slog.Logger
}

type checkoutStep struct {
	name string
	run  func(ctx context.Context) error
}

// NewCheckoutWorkflow creates a new checkout workflow
func NewCheckoutWorkflow(store ports.CatalogStore, renderer ports.ReceiptRenderer, logger *slog.Logger) *CheckoutWorkflow {
	return &CheckoutWorkflow{
		store:    store,
		renderer: renderer,
		logger:   logger.With(slog.String("service", "checkout")),
	}
}

// Run asks for confirmation and then executes the sale for cart. A declined
// prompt or an empty cart returns without touching the store.
func (w *CheckoutWorkflow) Run(ctx context.Context, cart domain.Cart, confirm ports.Confirmer) (domain.CheckoutResult, error) {
	if confirm == nil || !confirm.Confirm(ctx, domain.CheckoutPrompt) {
		w.logger.InfoContext(ctx, "checkout declined")
		return domain.CheckoutResult{Status: domain.CheckoutDeclined}, nil
	}

	if cart.IsEmpty() {
		w.logger.InfoContext(ctx, "checkout skipped, cart is empty")
		return domain.CheckoutResult{Status: domain.CheckoutEmpty}, nil
	}

	txn := domain.NewTransaction(cart)
	steps := w.plan(txn)

	result := domain.CheckoutResult{
		Status:       domain.CheckoutCompleted,
		Transaction:  txn,
		StepsPlanned: len(steps),
	}

	for _, step := range steps {
		if err := step.run(ctx); err != nil {
			result.Status = domain.CheckoutFailed
			w.logger.ErrorContext(ctx, "checkout aborted",
				slog.String("transaction_id", txn.ID.String()),
				slog.String("step", step.name),
				slog.Int("steps_completed", result.StepsCompleted),
				slog.String("error", err.Error()))
			return result, fmt.Errorf("failed to %s: %w", step.name, err)
		}
		result.StepsCompleted++
	}

	w.logger.InfoContext(ctx, "checkout completed",
		slog.String("transaction_id", txn.ID.String()),
		slog.String("total", txn.Total.String()),
		slog.Int("lines", len(txn.Items)))

	return result, nil
}

// plan lists the store and render commands for txn in execution order
func (w *CheckoutWorkflow) plan(txn *domain.Transaction) []checkoutStep {
	steps := make([]checkoutStep, 0, len(txn.Items)+2)

	steps = append(steps, checkoutStep{
		name: "insert transaction",
		run: func(ctx context.Context) error {
			return w.store.InsertTransaction(ctx, txn)
		},
	})

	for _, line := range txn.Items {
		id := line.Medicine.ID
		// Computed from the stock captured when the line entered the cart,
		// not from the store's current value.
		newStock := line.Medicine.Stock - line.Quantity
		steps = append(steps, checkoutStep{
			name: fmt.Sprintf("update stock for %s", line.Medicine.Name),
			run: func(ctx context.Context) error {
				return w.store.UpdateStock(ctx, id, newStock)
			},
		})
	}

	steps = append(steps, checkoutStep{
		name: "render receipt",
		run: func(ctx context.Context) error {
			return w.renderer.Render(ports.WithTransactionID(ctx, txn.ID), txn.Items, txn.Total)
		},
	})

	return steps
}
