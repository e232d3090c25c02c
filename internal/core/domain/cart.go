// internal/core/domain/cart.go
package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartLine is a medicine snapshot taken when it was first added, plus a quantity
type CartLine struct {
	Medicine Medicine `json:"medicine"`
	Quantity int      `json:"quantity"`
}

// Subtotal returns price × quantity
func (l CartLine) Subtotal() decimal.Decimal {
	return l.Medicine.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart is an immutable, insertion-ordered list of lines. Every mutating
// method returns a new Cart and leaves the receiver untouched.
type Cart struct {
	lines []CartLine
}

// NewCart builds a cart from existing lines
func NewCart(lines ...CartLine) Cart {
	return Cart{lines: append([]CartLine(nil), lines...)}
}

// Add increments the line for m, or appends a new line with quantity 1.
// An existing line keeps its original snapshot.
func (c Cart) Add(m Medicine) Cart {
	lines := make([]CartLine, 0, len(c.lines)+1)
	found := false
	for _, l := range c.lines {
		if !found && l.Medicine.ID == m.ID {
			l = CartLine{Medicine: l.Medicine, Quantity: l.Quantity + 1}
			found = true
		}
		lines = append(lines, l)
	}
	if !found {
		lines = append(lines, CartLine{Medicine: m, Quantity: 1})
	}
	return Cart{lines: lines}
}

// Remove drops the line for id. Absent ids are ignored.
func (c Cart) Remove(id uuid.UUID) Cart {
	lines := make([]CartLine, 0, len(c.lines))
	for _, l := range c.lines {
		if l.Medicine.ID != id {
			lines = append(lines, l)
		}
	}
	return Cart{lines: lines}
}

// Clear returns an empty cart
func (c Cart) Clear() Cart {
	return Cart{}
}

// Total sums price × quantity over every line
func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// Lines returns a copy of the cart lines
func (c Cart) Lines() []CartLine {
	return append([]CartLine(nil), c.lines...)
}

// Line returns the line for id, if any
func (c Cart) Line(id uuid.UUID) (CartLine, bool) {
	for _, l := range c.lines {
		if l.Medicine.ID == id {
			return l, true
		}
	}
	return CartLine{}, false
}

func (c Cart) Len() int {
	return len(c.lines)
}

func (c Cart) IsEmpty() bool {
	return len(c.lines) == 0
}
