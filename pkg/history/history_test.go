package history

import (
	"context"
	"path/filepath"
	"testing"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRecordAndRecent(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	first, err := store.Record(ctx, KindCalc, "2 + 3", "5")
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if first.ID == "" {
		t.Error("Record() returned empty ID")
	}
	if _, err := store.Record(ctx, KindCalc, "sqrt(16)", "4"); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Record(ctx, KindConvert, "10 km mi", "6.213712"); err != nil {
		t.Fatal(err)
	}

	entries, err := store.Recent(ctx, "", 10)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("Recent() = %d entries, want 3", len(entries))
	}
	if entries[0].Input != "10 km mi" {
		t.Errorf("newest entry = %q, want the conversion", entries[0].Input)
	}
	if entries[2].ID != first.ID {
		t.Errorf("oldest entry ID = %q, want %q", entries[2].ID, first.ID)
	}
}

func TestRecent_FilterByKind(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	for _, in := range []string{"1+1", "2+2", "3+3"} {
		if _, err := store.Record(ctx, KindCalc, in, "x"); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := store.Record(ctx, KindPasswd, "length=16", "********"); err != nil {
		t.Fatal(err)
	}

	entries, err := store.Recent(ctx, KindCalc, 10)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("Recent(calc) = %d entries, want 3", len(entries))
	}
	for _, e := range entries {
		if e.Kind != KindCalc {
			t.Errorf("entry kind = %q, want %q", e.Kind, KindCalc)
		}
	}
}

func TestRecent_Limit(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if _, err := store.Record(ctx, KindCalc, "input", "output"); err != nil {
			t.Fatal(err)
		}
	}

	entries, err := store.Recent(ctx, "", 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Errorf("Recent(limit=2) = %d entries, want 2", len(entries))
	}
}

func TestSearch(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	if _, err := store.Record(ctx, KindCalc, "sqrt(144)", "12"); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Record(ctx, KindCalc, "2 * pi", "6.283185"); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Record(ctx, KindConvert, "100 c f", "212"); err != nil {
		t.Fatal(err)
	}

	entries, err := store.Search(ctx, "sqrt", 10)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(entries) != 1 || entries[0].Input != "sqrt(144)" {
		t.Errorf("Search(sqrt) = %v", entries)
	}

	// Result column is searched too.
	entries, err = store.Search(ctx, "212", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Kind != KindConvert {
		t.Errorf("Search(212) = %v", entries)
	}

	entries, err = store.Search(ctx, "nothing-here", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("Search(miss) = %d entries, want 0", len(entries))
	}
}

func TestClear(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := store.Record(ctx, KindCalc, "x", "y"); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := store.Record(ctx, KindFinance, "loan", "summary"); err != nil {
		t.Fatal(err)
	}

	removed, err := store.Clear(ctx, KindCalc)
	if err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if removed != 3 {
		t.Errorf("Clear(calc) removed %d, want 3", removed)
	}

	n, err := store.Count(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("Count() = %d, want 1", n)
	}

	if _, err := store.Clear(ctx, ""); err != nil {
		t.Fatal(err)
	}
	n, err = store.Count(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("Count() after full clear = %d, want 0", n)
	}
}

func TestReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	ctx := context.Background()

	store, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := store.Record(ctx, KindCalc, "1+1", "2"); err != nil {
		t.Fatal(err)
	}
	if err := store.Close(); err != nil {
		t.Fatal(err)
	}

	store, err = Open(path)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer store.Close()

	entries, err := store.Recent(ctx, "", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Result != "2" {
		t.Errorf("entries after reopen = %v", entries)
	}
}
