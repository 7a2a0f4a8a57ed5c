package store_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/stevemurr/inventory-server/item"
	"github.com/stevemurr/inventory-server/store"
)

// runStoreTests runs a common test suite against any Store implementation.
func runStoreTests(t *testing.T, s store.Store) {
	t.Helper()

	t.Run("Load empty", func(t *testing.T) {
		items, err := s.Load()
		if err != nil {
			t.Fatal(err)
		}
		if items == nil {
			t.Fatal("expected empty slice, got nil")
		}
		if len(items) != 0 {
			t.Fatalf("expected 0 items, got %d", len(items))
		}
	})

	t.Run("Save and Load preserves order", func(t *testing.T) {
		want := []item.Item{
			{ID: "b", Name: "Boots", Price: 40, Size: item.SizeLarge},
			{ID: "a", Name: "Apron", Price: 0, Size: item.SizeSmall},
			{ID: "c", Name: "Cap", Price: 9.99, Size: item.SizeMedium},
		}
		if err := s.Save(want); err != nil {
			t.Fatal(err)
		}
		got, err := s.Load()
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != len(want) {
			t.Fatalf("expected %d items, got %d", len(want), len(got))
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("item %d: expected %+v, got %+v", i, want[i], got[i])
			}
		}
	})

	t.Run("Save overwrites", func(t *testing.T) {
		if err := s.Save([]item.Item{{ID: "z", Name: "Zip", Price: 1, Size: item.SizeSmall}}); err != nil {
			t.Fatal(err)
		}
		got, err := s.Load()
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 1 || got[0].ID != "z" {
			t.Fatalf("expected only item z, got %+v", got)
		}
	})

	t.Run("Loaded slice is a copy", func(t *testing.T) {
		got, err := s.Load()
		if err != nil {
			t.Fatal(err)
		}
		got[0].Name = "changed"
		again, err := s.Load()
		if err != nil {
			t.Fatal(err)
		}
		if again[0].Name != "Zip" {
			t.Fatalf("expected stored name Zip, got %q", again[0].Name)
		}
	})

	t.Run("Save rejects invalid items", func(t *testing.T) {
		bad := [][]item.Item{
			{{ID: "", Name: "x", Price: 1, Size: item.SizeSmall}},
			{{ID: "n", Name: "x", Price: -1, Size: item.SizeSmall}},
			{{ID: "q", Name: "x", Price: 1, Size: "xl"}},
		}
		for _, items := range bad {
			if err := s.Save(items); !errors.Is(err, store.ErrInvalidItem) {
				t.Fatalf("expected ErrInvalidItem for %+v, got %v", items, err)
			}
		}
		got, err := s.Load()
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 1 || got[0].ID != "z" {
			t.Fatalf("rejected save must not change the collection, got %+v", got)
		}
	})

	t.Run("Save empty", func(t *testing.T) {
		if err := s.Save(nil); err != nil {
			t.Fatal(err)
		}
		got, err := s.Load()
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 0 {
			t.Fatalf("expected 0 items, got %d", len(got))
		}
	})
}

func TestMemoryStore(t *testing.T) {
	s := store.NewMemoryStore()
	runStoreTests(t, s)
}

func TestJsonFileStore(t *testing.T) {
	dir := t.TempDir()
	s, err := store.NewJsonFileStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	runStoreTests(t, s)
}

func TestSqliteStore(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "test.db")
	s, err := store.NewSqliteStore(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	runStoreTests(t, s)
}

func TestFactory(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		backend string
	}{
		{"json"},
		{"sqlite"},
		{"memory"},
		{""},
	}
	for _, tc := range tests {
		t.Run(tc.backend, func(t *testing.T) {
			s, err := store.New(tc.backend, filepath.Join(dir, tc.backend))
			if err != nil {
				t.Fatal(err)
			}
			if _, err := s.Load(); err != nil {
				t.Fatal(err)
			}
		})
	}

	t.Run("unknown", func(t *testing.T) {
		_, err := store.New("redis", dir)
		if err == nil {
			t.Fatal("expected error for unknown backend")
		}
	})
}

func TestJsonFileStoreCreatesMissingDocument(t *testing.T) {
	dir := t.TempDir()
	s, err := store.NewJsonFileStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(s.Path()); !os.IsNotExist(err) {
		t.Fatalf("expected no document before first load, got %v", err)
	}
	if _, err := s.Load(); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(filepath.Join(dir, store.JsonFileName))
	if err != nil {
		t.Fatalf("expected %s to exist: %v", store.JsonFileName, err)
	}
	if string(data) != "[]" {
		t.Fatalf("expected empty array document, got %q", data)
	}
}

func TestJsonFileStoreCorruptDocument(t *testing.T) {
	for name, content := range map[string]string{
		"garbage": "{not json",
		"object":  `{"id": "x"}`,
		"null":    "null",
	} {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			s, err := store.NewJsonFileStore(dir)
			if err != nil {
				t.Fatal(err)
			}
			if err := os.WriteFile(s.Path(), []byte(content), 0o644); err != nil {
				t.Fatal(err)
			}
			items, err := s.Load()
			if err != nil {
				t.Fatalf("corrupt document must not fail Load: %v", err)
			}
			if items == nil || len(items) != 0 {
				t.Fatalf("expected empty collection, got %+v", items)
			}
		})
	}
}

func TestJsonFileStoreDropsInvalidEntries(t *testing.T) {
	dir := t.TempDir()
	s, err := store.NewJsonFileStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	doc := `[
		{"id": "ok", "name": "Hat", "price": 3, "size": "m"},
		{"id": "", "name": "NoID", "price": 3, "size": "m"},
		{"id": "neg", "name": "Neg", "price": -3, "size": "m"},
		{"id": "big", "name": "Big", "price": 3, "size": "xxl"}
	]`
	if err := os.WriteFile(s.Path(), []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	items, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 || items[0].ID != "ok" {
		t.Fatalf("expected only item ok, got %+v", items)
	}
}

func TestJsonFileStoreWriteFailure(t *testing.T) {
	dir := t.TempDir()
	s, err := store.NewJsonFileStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	// A directory in place of the document makes every write fail.
	if err := os.Mkdir(s.Path(), 0o755); err != nil {
		t.Fatal(err)
	}
	err = s.Save([]item.Item{{ID: "a", Name: "A", Price: 1, Size: item.SizeSmall}})
	if err == nil {
		t.Fatal("expected write error")
	}
	if _, err := s.Load(); err == nil {
		t.Fatal("expected read error")
	}
}
