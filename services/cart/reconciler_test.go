package cart

import (
	"testing"

	"github.com/FabioFebre/tienda-api/session"
)

// fakeStore is an in-memory Store standing in for the database-backed one.
type fakeStore struct {
	carts  map[string][]Line
	nextID uint
}

func newFakeStore() *fakeStore {
	return &fakeStore{carts: make(map[string][]Line)}
}

func (f *fakeStore) Fetch(owner string) (Snapshot, error) {
	items := make([]Line, len(f.carts[owner]))
	copy(items, f.carts[owner])
	return Snapshot{Items: items}, nil
}

func (f *fakeStore) Add(owner string, line Line) (Line, error) {
	f.nextID++
	line.ID = f.nextID
	f.carts[owner] = append(f.carts[owner], line)
	return line, nil
}

func (f *fakeStore) UpdateQuantity(owner string, itemID uint, quantity int) error {
	for i, line := range f.carts[owner] {
		if line.ID == itemID {
			f.carts[owner][i].Quantity = quantity
			return nil
		}
	}
	return ErrItemNotFound
}

func (f *fakeStore) Remove(owner string, itemID uint) error {
	for i, line := range f.carts[owner] {
		if line.ID == itemID {
			f.carts[owner] = append(f.carts[owner][:i], f.carts[owner][i+1:]...)
			return nil
		}
	}
	return ErrItemNotFound
}

func (f *fakeStore) Clear(owner string) error {
	delete(f.carts, owner)
	return nil
}

// recordingHub captures published invalidations.
type recordingHub struct {
	published []string
}

func (h *recordingHub) Publish(owner string) {
	h.published = append(h.published, owner)
}

func newTestReconciler(t *testing.T) (*Reconciler, *fakeStore, *recordingHub) {
	t.Helper()
	local, err := NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	remote := newFakeStore()
	hub := &recordingHub{}
	return NewReconciler(local, remote, hub), remote, hub
}

func guestSess(id string) session.State { return session.Guest(id) }

func userSess(id string) session.State {
	return session.State{IsLoggedIn: true, User: session.Identity{ID: id, Role: "customer"}}
}

func TestAnonymousMutationsStayLocal(t *testing.T) {
	rec, remote, hub := newTestReconciler(t)
	sess := guestSess("guest_abc")

	line, err := rec.AddItem(sess, Line{ProductID: 7, UnitPrice: 15, Quantity: 1})
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	if err := rec.UpdateQuantity(sess, line.ID, 3); err != nil {
		t.Fatalf("UpdateQuantity: %v", err)
	}

	snap, _ := rec.Snapshot(sess)
	if len(snap.Items) != 1 || snap.Items[0].Quantity != 3 {
		t.Fatalf("unexpected snapshot: %+v", snap.Items)
	}
	if got := snap.Total(); got != 45 {
		t.Errorf("Total() = %v, want 45", got)
	}

	if len(remote.carts) != 0 {
		t.Error("anonymous mutations must never touch the remote store")
	}
	if len(hub.published) != 2 {
		t.Errorf("expected 2 invalidations, got %d", len(hub.published))
	}
}

func TestDecrementBelowOneIsClamped(t *testing.T) {
	rec, _, _ := newTestReconciler(t)
	sess := guestSess("guest_abc")

	line, _ := rec.AddItem(sess, Line{ProductID: 7, UnitPrice: 10, Quantity: 2})

	// A decrement past zero clamps to 1; the line is never removed.
	if err := rec.UpdateQuantity(sess, line.ID, -4); err != nil {
		t.Fatalf("UpdateQuantity: %v", err)
	}

	snap, _ := rec.Snapshot(sess)
	if len(snap.Items) != 1 {
		t.Fatal("clamped decrement must not remove the line")
	}
	if snap.Items[0].Quantity != 1 {
		t.Errorf("quantity = %d, want 1", snap.Items[0].Quantity)
	}
}

func TestAuthenticatedMutationsGoRemote(t *testing.T) {
	rec, remote, _ := newTestReconciler(t)
	sess := userSess("user-1")

	if _, err := rec.AddItem(sess, Line{ProductID: 3, UnitPrice: 20, Quantity: 1}); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	if len(remote.carts["user-1"]) != 1 {
		t.Fatalf("expected remote cart line, got %+v", remote.carts)
	}
}

func TestRemoveRefetchesFromStore(t *testing.T) {
	rec, remote, _ := newTestReconciler(t)
	sess := userSess("user-1")

	line, _ := rec.AddItem(sess, Line{ProductID: 3, UnitPrice: 20, Quantity: 1})

	snap, err := rec.RemoveItem(sess, line.ID)
	if err != nil {
		t.Fatalf("RemoveItem: %v", err)
	}
	if !snap.IsEmpty() {
		t.Errorf("refetched snapshot should be empty, got %+v", snap.Items)
	}
	if len(remote.carts["user-1"]) != 0 {
		t.Error("remote store still holds the removed line")
	}
}

func TestSnapshotForReturnsNamedOwnersCart(t *testing.T) {
	rec, remote, _ := newTestReconciler(t)

	// Two distinct server carts; a staff read of user-2 must see user-2's
	// lines, never the reader's own.
	remote.Add("admin-1", Line{ProductID: 100, UnitPrice: 10, Quantity: 1})
	remote.Add("user-2", Line{ProductID: 200, UnitPrice: 20, Quantity: 1})

	snap, err := rec.SnapshotFor("user-2")
	if err != nil {
		t.Fatalf("SnapshotFor: %v", err)
	}
	if len(snap.Items) != 1 || snap.Items[0].ProductID != 200 {
		t.Fatalf("expected user-2's cart, got %+v", snap.Items)
	}
}

func TestSnapshotForGuestOwnerHitsLocalStore(t *testing.T) {
	rec, remote, _ := newTestReconciler(t)
	rec.AddItem(guestSess("guest_abc"), Line{ProductID: 7, UnitPrice: 5, Quantity: 1})

	snap, err := rec.SnapshotFor("guest_abc")
	if err != nil {
		t.Fatalf("SnapshotFor: %v", err)
	}
	if len(snap.Items) != 1 || snap.Items[0].ProductID != 7 {
		t.Fatalf("expected the guest's local cart, got %+v", snap.Items)
	}
	if len(remote.carts) != 0 {
		t.Error("guest-owned reads must not touch the remote store")
	}
}

func TestClearForTargetsNamedOwnerOnly(t *testing.T) {
	rec, remote, hub := newTestReconciler(t)
	remote.Add("admin-1", Line{ProductID: 100, UnitPrice: 10, Quantity: 1})
	remote.Add("user-2", Line{ProductID: 200, UnitPrice: 20, Quantity: 1})

	if err := rec.ClearFor("user-2"); err != nil {
		t.Fatalf("ClearFor: %v", err)
	}

	if len(remote.carts["user-2"]) != 0 {
		t.Error("user-2's cart should be empty")
	}
	if len(remote.carts["admin-1"]) != 1 {
		t.Error("the caller's own cart must be untouched")
	}
	// The invalidation goes to the cleared cart's owner.
	if len(hub.published) != 1 || hub.published[0] != "user-2" {
		t.Errorf("published = %v, want [user-2]", hub.published)
	}
}

func TestUpdateQuantityForClampsOnNamedOwner(t *testing.T) {
	rec, remote, _ := newTestReconciler(t)
	line, _ := remote.Add("user-2", Line{ProductID: 200, UnitPrice: 20, Quantity: 2})

	if err := rec.UpdateQuantityFor("user-2", line.ID, -2); err != nil {
		t.Fatalf("UpdateQuantityFor: %v", err)
	}
	if got := remote.carts["user-2"][0].Quantity; got != 1 {
		t.Errorf("quantity = %d, want 1", got)
	}
}

func TestLoginDiscardsGuestCartNoMerge(t *testing.T) {
	rec, remote, _ := newTestReconciler(t)

	// Populated anonymous cart.
	guest := guestSess("guest_abc")
	rec.AddItem(guest, Line{ProductID: 1, UnitPrice: 10, Quantity: 2})

	// The user's server cart already holds something else.
	remote.Add("user-1", Line{ProductID: 99, UnitPrice: 50, Quantity: 1})

	snap, err := rec.PromoteGuest("guest_abc", "user-1")
	if err != nil {
		t.Fatalf("PromoteGuest: %v", err)
	}

	// The result is the server cart verbatim: no merge of the guest lines.
	if len(snap.Items) != 1 || snap.Items[0].ProductID != 99 {
		t.Fatalf("expected server cart only, got %+v", snap.Items)
	}

	// The guest cart is gone for good.
	if guestSnap, _ := rec.Snapshot(guest); !guestSnap.IsEmpty() {
		t.Error("guest cart should have been discarded at login")
	}
}

func TestLoginToUserWithNoCartYieldsEmpty(t *testing.T) {
	rec, _, _ := newTestReconciler(t)

	snap, err := rec.PromoteGuest("guest_abc", "user-never-carted")
	if err != nil {
		t.Fatalf("PromoteGuest: %v", err)
	}
	if !snap.IsEmpty() {
		t.Errorf("a user with no server cart has an empty cart, got %+v", snap.Items)
	}
}

func TestLogoutReadsEmptyLocalCart(t *testing.T) {
	rec, _, _ := newTestReconciler(t)

	// Authenticated session with a populated server cart.
	user := userSess("user-1")
	rec.AddItem(user, Line{ProductID: 5, UnitPrice: 30, Quantity: 1})

	// After logout the visitor is a fresh guest; their cart read comes from
	// the local store and must not show the previous remote items.
	snap, err := rec.Snapshot(guestSess("guest_fresh"))
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if !snap.IsEmpty() {
		t.Errorf("post-logout cart should be empty, got %+v", snap.Items)
	}
}

func TestVisitorWithoutSessionHasEmptyCart(t *testing.T) {
	rec, _, _ := newTestReconciler(t)

	snap, err := rec.Snapshot(session.Guest(""))
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if !snap.IsEmpty() {
		t.Error("a visitor without a guest id has an empty cart")
	}
}
