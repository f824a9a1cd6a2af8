package knowledge

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/locle27/Koyeb-Booking-sub000/internal/db"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return NewStore(database)
}

func TestSeedAndLoadAll(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	catalog := DefaultCatalog()
	n, err := store.Seed(ctx, catalog)
	if err != nil {
		t.Fatalf("Seed: %v", err)
	}
	if n != len(catalog) {
		t.Errorf("expected %d seeded, got %d", len(catalog), n)
	}

	loaded, err := store.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(loaded) != len(catalog) {
		t.Fatalf("expected %d entries, got %d", len(catalog), len(loaded))
	}
	for i := range catalog {
		if loaded[i] != catalog[i] {
			t.Errorf("entry %d: got %+v, want %+v", i, loaded[i], catalog[i])
		}
	}
}

func TestSeedIsIdempotentByCategory(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	entry := Entry{
		Category: "check_in",
		Topic:    "Check-in Policy",
		Content:  "Check-in time is 14:00.",
		Keywords: "check in time",
	}
	for i := 0; i < 2; i++ {
		if _, err := store.Seed(ctx, []Entry{entry}); err != nil {
			t.Fatalf("Seed #%d: %v", i+1, err)
		}
	}

	count, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 1 {
		t.Errorf("expected exactly 1 row for check_in, got %d", count)
	}
}

func TestReseedOverwritesButKeepsPosition(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	if _, err := store.Seed(ctx, DefaultCatalog()); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	updated := Entry{
		Category: "check_in",
		Topic:    "Arrival",
		Content:  "Check-in opens at 13:00.",
		Keywords: "arrival",
	}
	if _, err := store.Seed(ctx, []Entry{updated}); err != nil {
		t.Fatalf("reseed: %v", err)
	}

	loaded, err := store.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(loaded) != len(DefaultCatalog()) {
		t.Fatalf("reseed changed row count: %d", len(loaded))
	}
	if loaded[0] != updated {
		t.Errorf("expected check_in to stay first with new fields, got %+v", loaded[0])
	}
}

func TestSeedAppendsNewCategoriesLast(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	store.Seed(ctx, DefaultCatalog())
	spa := Entry{Category: "spa", Topic: "Spa", Content: "Massage from 10:00 to 20:00.", Keywords: "spa massage"}
	if _, err := store.Seed(ctx, []Entry{spa}); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	loaded, _ := store.LoadAll(ctx)
	if loaded[len(loaded)-1] != spa {
		t.Errorf("expected new category last, got %+v", loaded[len(loaded)-1])
	}
}

func TestSeedRejectsInvalidEntries(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	_, err := store.Seed(ctx, []Entry{
		{Category: "ok", Topic: "Fine", Content: "present"},
		{Category: "broken", Topic: "Missing", Content: "  "},
	})
	if !errors.Is(err, ErrEmptyContent) {
		t.Fatalf("expected ErrEmptyContent, got %v", err)
	}

	count, _ := store.Count(ctx)
	if count != 0 {
		t.Errorf("expected nothing written on validation failure, got %d rows", count)
	}

	_, err = store.Seed(ctx, []Entry{{Topic: "No category", Content: "text"}})
	if !errors.Is(err, ErrEmptyCategory) {
		t.Errorf("expected ErrEmptyCategory, got %v", err)
	}
}

func TestSeedIfEmpty(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	seeded, err := store.SeedIfEmpty(ctx, DefaultCatalog())
	if err != nil {
		t.Fatalf("SeedIfEmpty: %v", err)
	}
	if !seeded {
		t.Error("expected first SeedIfEmpty to seed")
	}

	seeded, err = store.SeedIfEmpty(ctx, []Entry{{Category: "x", Topic: "X", Content: "x"}})
	if err != nil {
		t.Fatalf("SeedIfEmpty: %v", err)
	}
	if seeded {
		t.Error("expected second SeedIfEmpty to be a no-op")
	}
	count, _ := store.Count(ctx)
	if count != len(DefaultCatalog()) {
		t.Errorf("expected %d rows, got %d", len(DefaultCatalog()), count)
	}
}

func TestDefaultCatalogIsValid(t *testing.T) {
	seen := make(map[string]bool)
	for _, e := range DefaultCatalog() {
		if err := e.Validate(); err != nil {
			t.Errorf("%s: %v", e.Category, err)
		}
		if seen[e.Category] {
			t.Errorf("duplicate category %q", e.Category)
		}
		seen[e.Category] = true
	}
}

func TestLoadFiles(t *testing.T) {
	root := t.TempDir()
	write := func(rel, body string) {
		t.Helper()
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	write("knowledge/b/spa.yml", `entries:
  - category: spa
    topic: Spa and Massage
    content: Massage is available from 10:00 to 20:00.
    keywords: spa massage relax
`)
	write("knowledge/a/bikes.yml", `entries:
  - category: bikes
    topic: Bicycle Rental
    content: Bicycles cost 50,000 VND per day.
    keywords: bike bicycle rent
`)
	write("knowledge/notes.txt", "ignored")

	entries, err := LoadFiles(root, []string{"knowledge/**/*.yml", "knowledge/a/*.yml"})
	if err != nil {
		t.Fatalf("LoadFiles: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries (duplicates collapsed), got %d", len(entries))
	}
	if entries[0].Category != "bikes" || entries[1].Category != "spa" {
		t.Errorf("expected lexical file order, got %s, %s", entries[0].Category, entries[1].Category)
	}
}

func TestLoadFilesRejectsEmptyContent(t *testing.T) {
	root := t.TempDir()
	body := "entries:\n  - category: empty\n    topic: Empty\n    content: \"\"\n"
	if err := os.WriteFile(filepath.Join(root, "bad.yml"), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadFiles(root, []string{"*.yml"})
	if !errors.Is(err, ErrEmptyContent) {
		t.Errorf("expected ErrEmptyContent, got %v", err)
	}
}
