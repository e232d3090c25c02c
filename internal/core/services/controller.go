// internal/core/services/controller.go
package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/ammerola/apotek-pos/internal/core/domain"
	"github.com/ammerola/apotek-pos/internal/core/ports"
)

// Controller owns the terminal state. Every event takes the lock, runs a
// pure transition from the domain package and then executes the returned
// commands in order, so events never interleave.
type Controller struct {
	catalog  *CatalogCache
	checkout *CheckoutWorkflow
	editor   ports.InventoryEditor
	scanner  ports.Scanner
	logger   *slog.Logger

	mu           sync.Mutex
	state        domain.State
	session      ports.ScanSession
	sessionGen   uint64
	lastCheckout domain.CheckoutResult
}

var _ ports.POSService = (*Controller)(nil)

// NewController creates a controller in the cashier view with an empty cart
func NewController(
	catalog *CatalogCache,
	checkout *CheckoutWorkflow,
	editor ports.InventoryEditor,
	scanner ports.Scanner,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		catalog:  catalog,
		checkout: checkout,
		editor:   editor,
		scanner:  scanner,
		logger:   logger.With(slog.String("service", "controller")),
		state:    domain.NewState(),
	}
}

// Start loads the catalog and opens the scan session for the initial view
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	next, cmds := domain.Boot(c.state)
	return c.apply(ctx, next, cmds, nil)
}

// Close stops any live scan session
func (c *Controller) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.stopScanner(context.Background())
}

// State returns a copy of the current state
func (c *Controller) State() domain.State {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.state
	if s.Editor != nil {
		form := *s.Editor
		s.Editor = &form
	}
	return s
}

// SwitchView changes the active view, starting or stopping the scan session
func (c *Controller) SwitchView(ctx context.Context, view domain.View) error {
	if !view.Valid() {
		return fmt.Errorf("unknown view %q", view)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	next, cmds := domain.OnViewChange(c.state, view)
	return c.apply(ctx, next, cmds, nil)
}

// RefreshCatalog reloads the catalog from the store
func (c *Controller) RefreshCatalog(ctx context.Context) domain.Catalog {
	c.mu.Lock()
	defer c.mu.Unlock()

	_ = c.apply(ctx, c.state, []domain.Command{{Kind: domain.CommandFetchCatalog}}, nil)
	return c.state.Catalog
}

// Scan handles one decoded barcode. Decodes that arrive while no session
// is live are dropped.
func (c *Controller) Scan(ctx context.Context, text string) domain.Cart {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session == nil {
		c.logger.DebugContext(ctx, "scan ignored, no live session", slog.String("barcode", text))
		return c.state.Cart
	}
	return c.applyScan(ctx, text)
}

// scanFromSession handles a decode delivered by the session numbered gen.
// A decode from a session that has since been stopped is dropped, even if
// a newer session is live by the time it gets the lock.
func (c *Controller) scanFromSession(ctx context.Context, gen uint64, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session == nil || c.sessionGen != gen {
		c.logger.DebugContext(ctx, "scan ignored, session closed", slog.String("barcode", text))
		return
	}
	c.applyScan(ctx, text)
}

func (c *Controller) applyScan(ctx context.Context, text string) domain.Cart {
	before := c.state.Cart.Len()
	c.state = domain.OnScan(c.state, text)

	c.logger.DebugContext(ctx, "barcode scanned",
		slog.String("barcode", text),
		slog.Int("lines_before", before),
		slog.Int("lines_after", c.state.Cart.Len()))

	return c.state.Cart
}

// AddToCart adds a catalog record picked by hand
func (c *Controller) AddToCart(ctx context.Context, id uuid.UUID) (domain.Cart, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	next, err := domain.OnAddToCart(c.state, id)
	if err != nil {
		return c.state.Cart, err
	}
	c.state = next
	return c.state.Cart, nil
}

// RemoveFromCart drops a line; unknown ids are ignored
func (c *Controller) RemoveFromCart(ctx context.Context, id uuid.UUID) domain.Cart {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state = domain.OnRemoveFromCart(c.state, id)
	return c.state.Cart
}

// Checkout runs the checkout workflow over the current cart. On success the
// cart is cleared and the catalog reloaded. On failure the error is also
// stored as the state notice and nothing already written is undone.
func (c *Controller) Checkout(ctx context.Context, confirm ports.Confirmer) (domain.CheckoutResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lastCheckout = domain.CheckoutResult{}
	next, cmds := domain.OnCheckoutRequested(c.state)
	err := c.apply(ctx, next, cmds, confirm)
	return c.lastCheckout, err
}

// OpenEditor opens the inventory form, blank for uuid.Nil or prefilled
// from the catalog otherwise
func (c *Controller) OpenEditor(ctx context.Context, id uuid.UUID) (*domain.MedicineForm, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var form *domain.MedicineForm
	if id != uuid.Nil {
		m, ok := c.state.Catalog.FindByID(id)
		if !ok {
			return nil, domain.ErrMedicineNotFound
		}
		form = domain.NewMedicineForm(m)
	}

	c.state = domain.OnEditorOpened(c.state, form)
	copied := *c.state.Editor
	return &copied, nil
}

// CloseEditor discards the open form
func (c *Controller) CloseEditor(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state = domain.OnEditorClosed(c.state)
}

// SaveMedicine validates and upserts form, then closes the editor and
// reloads the catalog
func (c *Controller) SaveMedicine(ctx context.Context, form *domain.MedicineForm) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	next, cmds, err := domain.OnSaveRequested(c.state, form)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return c.apply(ctx, next, cmds, nil)
}

// apply stores next and drains the command queue. Commands may enqueue
// follow-up commands. The first error is returned after the queue is empty.
func (c *Controller) apply(ctx context.Context, next domain.State, cmds []domain.Command, confirm ports.Confirmer) error {
	c.state = next

	var firstErr error
	for len(cmds) > 0 {
		cmd := cmds[0]
		cmds = cmds[1:]

		more, err := c.execute(ctx, cmd, confirm)
		if err != nil && firstErr == nil {
			firstErr = err
		}
		cmds = append(cmds, more...)
	}
	return firstErr
}

func (c *Controller) execute(ctx context.Context, cmd domain.Command, confirm ports.Confirmer) ([]domain.Command, error) {
	switch cmd.Kind {
	case domain.CommandFetchCatalog:
		c.state = domain.OnCatalogLoaded(c.state, c.catalog.Refresh(ctx))
		return nil, nil

	case domain.CommandStartScanner:
		return nil, c.startScanner(ctx)

	case domain.CommandStopScanner:
		return nil, c.stopScanner(ctx)

	case domain.CommandCheckout:
		result, err := c.checkout.Run(ctx, cmd.Cart, confirm)
		c.lastCheckout = result
		var more []domain.Command
		c.state, more = domain.OnCheckoutFinished(c.state, result, err)
		return more, err

	case domain.CommandSaveMedicine:
		_, err := c.editor.Save(ctx, cmd.Form)
		var more []domain.Command
		c.state, more = domain.OnMedicineSaved(c.state, err)
		return more, err
	}

	return nil, fmt.Errorf("unknown command %q", cmd.Kind)
}

func (c *Controller) startScanner(ctx context.Context) error {
	if c.session != nil {
		return nil
	}

	// The session outlives the request that opened it.
	sessionCtx := context.WithoutCancel(ctx)
	c.sessionGen++
	gen := c.sessionGen
	session, err := c.scanner.Start(sessionCtx,
		func(text string) {
			c.scanFromSession(sessionCtx, gen, text)
		},
		func(err error) {
			c.logger.WarnContext(sessionCtx, "scanner error", slog.String("error", err.Error()))
		},
	)
	if err != nil {
		return fmt.Errorf("failed to start scanner: %w", err)
	}

	c.session = session
	c.logger.InfoContext(ctx, "scan session started")
	return nil
}

func (c *Controller) stopScanner(ctx context.Context) error {
	if c.session == nil {
		return nil
	}

	session := c.session
	c.session = nil
	if err := session.Stop(); err != nil {
		return fmt.Errorf("failed to stop scanner: %w", err)
	}

	c.logger.InfoContext(ctx, "scan session stopped")
	return nil
}
