package cart

import (
	"strings"

	"github.com/FabioFebre/tienda-api/session"
)

// GuestOwnerPrefix marks cart owners that live in the local guest store.
// Guest session ids are minted with it; user ids never carry it.
const GuestOwnerPrefix = "guest_"

// Broadcaster notifies every open tab of a cart owner that the cart changed
// somewhere, so the other tabs refetch instead of showing a stale count.
// Best effort: it is a signal, not a lock.
type Broadcaster interface {
	Publish(owner string)
}

// NopBroadcaster discards invalidations. Used when no hub is wired in.
type NopBroadcaster struct{}

func (NopBroadcaster) Publish(string) {}

// Reconciler is the single entry point for every cart read and mutation.
// It hides whether the backing store is the guest file store or the
// database: the resolved session decides which one is authoritative.
type Reconciler struct {
	local  Store
	remote Store
	hub    Broadcaster
}

func NewReconciler(local, remote Store, hub Broadcaster) *Reconciler {
	if hub == nil {
		hub = NopBroadcaster{}
	}
	return &Reconciler{local: local, remote: remote, hub: hub}
}

// storeFor picks the authoritative store for a session. Logged-in users
// always hit the database; everyone else gets the local guest store.
func (r *Reconciler) storeFor(sess session.State) (Store, string) {
	if sess.IsLoggedIn {
		return r.remote, sess.User.ID
	}
	return r.local, sess.User.ID
}

// storeForOwner picks the store for a cart addressed by owner id rather
// than by session: guest ids live in the local store, user ids in the
// database. Handlers use it where the route names the cart owner, so a
// staff request for another user's cart reaches that cart and not the
// staff session's own.
func (r *Reconciler) storeForOwner(owner string) (Store, string) {
	if strings.HasPrefix(owner, GuestOwnerPrefix) {
		return r.local, owner
	}
	return r.remote, owner
}

// SnapshotFor returns the cart of an explicitly addressed owner. Callers
// check ownership first.
func (r *Reconciler) SnapshotFor(owner string) (Snapshot, error) {
	if owner == "" {
		return Snapshot{}, nil
	}
	store, owner := r.storeForOwner(owner)
	return store.Fetch(owner)
}

// UpdateQuantityFor sets a line's quantity on an explicitly addressed
// owner's cart, clamped to the floor of 1.
func (r *Reconciler) UpdateQuantityFor(owner string, itemID uint, quantity int) error {
	store, owner := r.storeForOwner(owner)
	if err := store.UpdateQuantity(owner, itemID, ClampQuantity(quantity)); err != nil {
		return err
	}
	r.hub.Publish(owner)
	return nil
}

// ClearFor empties an explicitly addressed owner's cart and broadcasts the
// invalidation to that owner's tabs.
func (r *Reconciler) ClearFor(owner string) error {
	store, owner := r.storeForOwner(owner)
	if err := store.Clear(owner); err != nil {
		return err
	}
	r.hub.Publish(owner)
	return nil
}

// Snapshot returns the current cart for the session's authoritative store.
func (r *Reconciler) Snapshot(sess session.State) (Snapshot, error) {
	store, owner := r.storeFor(sess)
	if owner == "" {
		// A brand-new visitor without even a guest id has an empty cart.
		return Snapshot{}, nil
	}
	return store.Fetch(owner)
}

// AddItem adds a line to the session's cart and broadcasts the change.
func (r *Reconciler) AddItem(sess session.State, line Line) (Line, error) {
	line.Quantity = ClampQuantity(line.Quantity)
	store, owner := r.storeFor(sess)
	added, err := store.Add(owner, line)
	if err != nil {
		return Line{}, err
	}
	r.hub.Publish(owner)
	return added, nil
}

// UpdateQuantity sets a line's quantity, clamped to the floor of 1. A
// decrement below one unit never removes the line; removal is explicit.
func (r *Reconciler) UpdateQuantity(sess session.State, itemID uint, quantity int) error {
	store, owner := r.storeFor(sess)
	if err := store.UpdateQuantity(owner, itemID, ClampQuantity(quantity)); err != nil {
		return err
	}
	r.hub.Publish(owner)
	return nil
}

// RemoveItem deletes a line, then refetches the whole cart from the store
// rather than patching a cached copy. Deliberate: the refetch keeps the
// view aligned with server-side recalculation.
func (r *Reconciler) RemoveItem(sess session.State, itemID uint) (Snapshot, error) {
	store, owner := r.storeFor(sess)
	if err := store.Remove(owner, itemID); err != nil {
		return Snapshot{}, err
	}
	r.hub.Publish(owner)
	return store.Fetch(owner)
}

// Clear empties the session's cart. Used at successful checkout.
func (r *Reconciler) Clear(sess session.State) error {
	store, owner := r.storeFor(sess)
	if err := store.Clear(owner); err != nil {
		return err
	}
	r.hub.Publish(owner)
	return nil
}

// PromoteGuest runs the anonymous→authenticated transition at login: the
// guest cart is discarded and the server cart becomes authoritative as-is.
// No merge happens; whatever the user's server cart already held is what
// they see after login.
func (r *Reconciler) PromoteGuest(guestID, userID string) (Snapshot, error) {
	if guestID != "" {
		if err := r.local.Clear(guestID); err != nil {
			return Snapshot{}, err
		}
		r.hub.Publish(guestID)
	}
	return r.remote.Fetch(userID)
}
