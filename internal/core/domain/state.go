// internal/core/domain/state.go
package domain

import (
	"github.com/google/uuid"
)

// View identifies which screen the terminal is showing
type View string

const (
	ViewCashier   View = "kasir"
	ViewInventory View = "inventory"
)

// Valid reports whether v is a known view
func (v View) Valid() bool {
	return v == ViewCashier || v == ViewInventory
}

// State is the whole application state of one terminal
type State struct {
	View    View
	Catalog Catalog
	Cart    Cart
	Editor  *MedicineForm
	Notice  string
}

// CommandKind names a side effect requested by a state transition
type CommandKind string

const (
	CommandFetchCatalog CommandKind = "fetch_catalog"
	CommandStartScanner CommandKind = "start_scanner"
	CommandStopScanner  CommandKind = "stop_scanner"
	CommandCheckout     CommandKind = "checkout"
	CommandSaveMedicine CommandKind = "save_medicine"
)

// Command is a side effect the runtime executes after a transition
type Command struct {
	Kind CommandKind
	Cart Cart
	Form *MedicineForm
}

// NewState returns the state of a freshly opened terminal
func NewState() State {
	return State{View: ViewCashier}
}

// Boot loads the catalog and opens a scan session for the initial view
func Boot(s State) (State, []Command) {
	cmds := []Command{{Kind: CommandFetchCatalog}}
	if s.View == ViewCashier {
		cmds = append(cmds, Command{Kind: CommandStartScanner})
	}
	return s, cmds
}

// OnCatalogLoaded replaces the catalog snapshot
func OnCatalogLoaded(s State, c Catalog) State {
	s.Catalog = c
	return s
}

// OnScan adds the first catalog record whose barcode matches text.
// Unknown barcodes leave the state unchanged.
func OnScan(s State, text string) State {
	m, ok := s.Catalog.FindByBarcode(text)
	if !ok {
		return s
	}
	s.Cart = s.Cart.Add(m)
	return s
}

// OnAddToCart adds the catalog record with the given id
func OnAddToCart(s State, id uuid.UUID) (State, error) {
	m, ok := s.Catalog.FindByID(id)
	if !ok {
		return s, ErrMedicineNotFound
	}
	s.Cart = s.Cart.Add(m)
	return s, nil
}

// OnRemoveFromCart drops the line for id
func OnRemoveFromCart(s State, id uuid.UUID) State {
	s.Cart = s.Cart.Remove(id)
	return s
}

// OnViewChange switches views. Leaving the cashier view stops the scan
// session and entering it starts a new one.
func OnViewChange(s State, v View) (State, []Command) {
	if s.View == v {
		return s, nil
	}

	var cmds []Command
	if s.View == ViewCashier {
		cmds = append(cmds, Command{Kind: CommandStopScanner})
	}
	if v == ViewCashier {
		cmds = append(cmds, Command{Kind: CommandStartScanner})
	}
	s.View = v
	return s, cmds
}

// OnCheckoutRequested hands the current cart to the checkout workflow
func OnCheckoutRequested(s State) (State, []Command) {
	s.Notice = ""
	return s, []Command{{Kind: CommandCheckout, Cart: s.Cart}}
}

// OnCheckoutFinished clears the cart and reloads the catalog after a
// completed sale. A failure only sets the notice; nothing is undone.
func OnCheckoutFinished(s State, result CheckoutResult, err error) (State, []Command) {
	if err != nil {
		s.Notice = "Error: " + err.Error()
		return s, nil
	}
	if result.Status != CheckoutCompleted {
		return s, nil
	}
	s.Cart = s.Cart.Clear()
	return s, []Command{{Kind: CommandFetchCatalog}}
}

// OnEditorOpened opens the inventory form
func OnEditorOpened(s State, form *MedicineForm) State {
	if form == nil {
		form = &MedicineForm{}
	}
	s.Editor = form
	return s
}

// OnEditorClosed closes the inventory form without saving
func OnEditorClosed(s State) State {
	s.Editor = nil
	return s
}

// OnSaveRequested validates the form and asks for an upsert. A form that
// fails validation produces no command.
func OnSaveRequested(s State, form *MedicineForm) (State, []Command, error) {
	if err := form.Validate(); err != nil {
		return s, nil, err
	}
	s.Notice = ""
	return s, []Command{{Kind: CommandSaveMedicine, Form: form}}, nil
}

// OnMedicineSaved closes the form and reloads the catalog after a
// successful upsert
func OnMedicineSaved(s State, err error) (State, []Command) {
	if err != nil {
		s.Notice = "Error: " + err.Error()
		return s, nil
	}
	s.Editor = nil
	return s, []Command{{Kind: CommandFetchCatalog}}
}
