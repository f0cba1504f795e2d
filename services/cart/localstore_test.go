package cart

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *LocalStore {
	t.Helper()
	store, err := NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalStore: %v", err)
	}
	return store
}

func cartFile(s *LocalStore, owner string) string {
	return filepath.Join(s.dir, owner+".json")
}

func TestLocalStoreRoundTrip(t *testing.T) {
	store := newTestStore(t)

	first, err := store.Add("guest_1", Line{ProductID: 10, ProductName: "Camisa", UnitPrice: 29.90, Size: "M", Color: "blanco", Quantity: 1})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if first.ID != 1 {
		t.Errorf("first line id = %d, want 1", first.ID)
	}

	second, err := store.Add("guest_1", Line{ProductID: 11, ProductName: "Pantalón", UnitPrice: 49.90, Size: "32", Color: "negro", Quantity: 2})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if second.ID != 2 {
		t.Errorf("second line id = %d, want 2", second.ID)
	}

	// Reload: the ordered item list must come back identical.
	snap, err := store.Fetch("guest_1")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(snap.Items) != 2 {
		t.Fatalf("got %d items, want 2", len(snap.Items))
	}
	if snap.Items[0].ProductID != 10 || snap.Items[1].ProductID != 11 {
		t.Errorf("item order not preserved: %+v", snap.Items)
	}
}

func TestLocalStoreCorruptFileTreatedAsEmpty(t *testing.T) {
	store := newTestStore(t)
	if err := os.WriteFile(cartFile(store, "guest_bad"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	snap, err := store.Fetch("guest_bad")
	if err != nil {
		t.Fatalf("Fetch on corrupt file returned error: %v", err)
	}
	if !snap.IsEmpty() {
		t.Errorf("corrupt file should read as empty, got %+v", snap.Items)
	}
}

func TestLocalStoreRemoveLastItemDeletesFile(t *testing.T) {
	store := newTestStore(t)
	line, _ := store.Add("guest_1", Line{ProductID: 10, UnitPrice: 9.90, Quantity: 3})

	if _, err := os.Stat(cartFile(store, "guest_1")); err != nil {
		t.Fatalf("cart file should exist after add: %v", err)
	}

	if err := store.Remove("guest_1", line.ID); err != nil {
		t.Fatalf("Remove: %v", err)
	}

	// No empty-array sentinel: the file itself must be gone.
	if _, err := os.Stat(cartFile(store, "guest_1")); !os.IsNotExist(err) {
		t.Errorf("cart file should be absent after last removal, stat err = %v", err)
	}
}

func TestLocalStoreClearIdempotent(t *testing.T) {
	store := newTestStore(t)

	if err := store.Clear("guest_never_saved"); err != nil {
		t.Errorf("Clear on never-saved cart: %v", err)
	}
	if err := store.Clear("guest_never_saved"); err != nil {
		t.Errorf("second Clear: %v", err)
	}

	store.Add("guest_2", Line{ProductID: 1, Quantity: 1})
	if err := store.Clear("guest_2"); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, err := os.Stat(cartFile(store, "guest_2")); !os.IsNotExist(err) {
		t.Error("cart file should be absent after Clear")
	}
}

func TestLocalStoreUpdateQuantity(t *testing.T) {
	store := newTestStore(t)
	line, _ := store.Add("guest_1", Line{ProductID: 10, UnitPrice: 10, Quantity: 1})

	if err := store.UpdateQuantity("guest_1", line.ID, 3); err != nil {
		t.Fatalf("UpdateQuantity: %v", err)
	}

	snap, _ := store.Fetch("guest_1")
	if snap.Items[0].Quantity != 3 {
		t.Errorf("quantity = %d, want 3", snap.Items[0].Quantity)
	}
	if got := snap.Total(); got != 30 {
		t.Errorf("Total() = %v, want 30", got)
	}

	if err := store.UpdateQuantity("guest_1", 999, 2); err != ErrItemNotFound {
		t.Errorf("UpdateQuantity on missing item = %v, want ErrItemNotFound", err)
	}
}

func TestLocalStorePruneStale(t *testing.T) {
	store := newTestStore(t)
	store.Add("guest_old", Line{ProductID: 1, Quantity: 1})
	store.Add("guest_new", Line{ProductID: 2, Quantity: 1})

	old := time.Now().Add(-72 * time.Hour)
	if err := os.Chtimes(cartFile(store, "guest_old"), old, old); err != nil {
		t.Fatal(err)
	}

	store.PruneStale(48 * time.Hour)

	if snap, _ := store.Fetch("guest_old"); !snap.IsEmpty() {
		t.Error("stale cart should have been pruned")
	}
	if snap, _ := store.Fetch("guest_new"); snap.IsEmpty() {
		t.Error("fresh cart should have survived the prune")
	}
}
