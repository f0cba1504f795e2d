package cart

import (
	"encoding/json"
	"errors"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"time"
)

// LocalStore persists guest carts as one JSON document per guest id. It is
// the server-side counterpart of a browser's local cart: no database row
// exists for a guest, and an emptied cart leaves no file behind rather than
// an empty-array sentinel.
type LocalStore struct {
	dir string
}

func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &LocalStore{dir: dir}, nil
}

func (s *LocalStore) path(owner string) string {
	// Base strips any path separators a hostile guest id could carry.
	return filepath.Join(s.dir, filepath.Base(owner)+".json")
}

// Fetch reads the guest's cart file. Absent or corrupt files are treated as
// an empty cart: local-state corruption degrades to "no cart", it never
// surfaces as an error.
func (s *LocalStore) Fetch(owner string) (Snapshot, error) {
	data, err := os.ReadFile(s.path(owner))
	if err != nil {
		return Snapshot{}, nil
	}

	var items []Line
	if err := json.Unmarshal(data, &items); err != nil {
		log.Printf("⚠️ Corrupt guest cart %s, treating as empty: %v", owner, err)
		return Snapshot{}, nil
	}
	return Snapshot{Items: items}, nil
}

// Add appends a new line with a client-assigned sequential id. Unlike the
// database store, the local store does not merge duplicate variants.
func (s *LocalStore) Add(owner string, line Line) (Line, error) {
	snap, _ := s.Fetch(owner)

	var maxID uint
	for _, existing := range snap.Items {
		if existing.ID > maxID {
			maxID = existing.ID
		}
	}
	line.ID = maxID + 1
	if line.AddedAt.IsZero() {
		line.AddedAt = time.Now()
	}

	if err := s.save(owner, append(snap.Items, line)); err != nil {
		return Line{}, err
	}
	return line, nil
}

func (s *LocalStore) UpdateQuantity(owner string, itemID uint, quantity int) error {
	snap, _ := s.Fetch(owner)
	for i := range snap.Items {
		if snap.Items[i].ID == itemID {
			snap.Items[i].Quantity = quantity
			return s.save(owner, snap.Items)
		}
	}
	return ErrItemNotFound
}

func (s *LocalStore) Remove(owner string, itemID uint) error {
	snap, _ := s.Fetch(owner)
	kept := snap.Items[:0]
	found := false
	for _, line := range snap.Items {
		if line.ID == itemID {
			found = true
			continue
		}
		kept = append(kept, line)
	}
	if !found {
		return ErrItemNotFound
	}
	return s.save(owner, kept)
}

// Clear removes the cart file unconditionally. Clearing a cart that was
// never saved is not an error.
func (s *LocalStore) Clear(owner string) error {
	if err := os.Remove(s.path(owner)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// save persists the full item list, or removes the file entirely when the
// list is empty.
func (s *LocalStore) save(owner string, items []Line) error {
	if len(items) == 0 {
		return s.Clear(owner)
	}
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path(owner), data, 0o644)
}

// PruneStale deletes guest cart files untouched for longer than maxAge.
// Guests are anonymous, so an abandoned cart has no owner to come back for
// it once the guest token has expired.
func (s *LocalStore) PruneStale(maxAge time.Duration) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		log.Printf("❌ Failed to read guest cart directory: %v", err)
		return
	}

	cutoff := time.Now().Add(-maxAge)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(s.dir, entry.Name())
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(path); err != nil {
				log.Printf("❌ Failed to remove stale guest cart %s: %v", path, err)
			} else {
				log.Printf("🗑️ Removed stale guest cart: %s", entry.Name())
			}
		}
	}
}
