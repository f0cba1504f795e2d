package cart

import "errors"

// ErrItemNotFound is returned when a mutation targets a line that is not in
// the owner's cart.
var ErrItemNotFound = errors.New("cart item not found")

// Store is one backing location for carts. The local (guest) store and the
// database store both implement it; the reconciler decides which one is
// authoritative for a given session.
type Store interface {
	// Fetch returns the owner's cart. An owner with no cart yet gets an
	// empty snapshot, not an error.
	Fetch(owner string) (Snapshot, error)

	// Add appends or merges a line and returns it with its assigned id.
	Add(owner string, line Line) (Line, error)

	// UpdateQuantity sets the quantity of one line. Callers are expected to
	// clamp the value to >= 1 first.
	UpdateQuantity(owner string, itemID uint, quantity int) error

	// Remove deletes one line. Removal is always explicit; quantity
	// decrements never remove.
	Remove(owner string, itemID uint) error

	// Clear drops every line. Clearing an already-empty cart is a no-op.
	Clear(owner string) error
}
