// Package cart holds the in-memory cart state and its transitions.
// Everything here is pure: operations take a cart value and return a new
// one, never touching storage or the network. Prices are int64 minor units
// (satang) so subtotals stay exact.
package cart

// Line is one item-quantity pair in a cart.
type Line struct {
	ItemID     string `json:"itemId"`
	Name       string `json:"name"`
	UnitPrice  int64  `json:"unitPrice"`
	Qty        int    `json:"qty"`
	Category   string `json:"category,omitempty"`
	DietaryTag string `json:"dietaryTag,omitempty"` // "veg" | "non-veg"
}

// Cart is an ordered list of lines. Order = insertion order (display only).
// Invariant: at most one line per ItemID, Qty always >= 1.
type Cart []Line

// Add merges l into c: if a line with the same ItemID exists its quantity
// grows by l.Qty, otherwise l is appended. Qty below 1 counts as 1.
// Always succeeds; validating the item is the caller's job.
func Add(c Cart, l Line) Cart {
	if l.Qty < 1 {
		l.Qty = 1
	}
	out := make(Cart, len(c))
	copy(out, c)
	for i := range out {
		if out[i].ItemID == l.ItemID {
			out[i].Qty += l.Qty
			return out
		}
	}
	return append(out, l)
}

// SetQuantity sets the quantity of the line with itemID. qty <= 0 removes
// the line (a line never survives at zero). Unknown itemID is a no-op.
func SetQuantity(c Cart, itemID string, qty int) Cart {
	if qty <= 0 {
		return Remove(c, itemID)
	}
	out := make(Cart, len(c))
	copy(out, c)
	for i := range out {
		if out[i].ItemID == itemID {
			out[i].Qty = qty
		}
	}
	return out
}

// Remove drops the line with itemID. No-op if absent.
func Remove(c Cart, itemID string) Cart {
	out := make(Cart, 0, len(c))
	for _, l := range c {
		if l.ItemID != itemID {
			out = append(out, l)
		}
	}
	return out
}

// Clear returns an empty cart.
func Clear(c Cart) Cart {
	return Cart{}
}

// Subtotal is the sum of unitPrice*qty over all lines.
func Subtotal(c Cart) int64 {
	var sum int64
	for _, l := range c {
		sum += l.UnitPrice * int64(l.Qty)
	}
	return sum
}

// Find returns the line with itemID, or false.
func Find(c Cart, itemID string) (Line, bool) {
	for _, l := range c {
		if l.ItemID == itemID {
			return l, true
		}
	}
	return Line{}, false
}
