package domain

import "testing"

func TestMemorySelectionStore(t *testing.T) {
	store := NewMemorySelectionStore()

	if got := store.Selected(); got.Valid {
		t.Fatalf("initial selection = %v, want none", got)
	}

	var seen []Selection
	store.Subscribe(func(sel Selection) { seen = append(seen, sel) })

	store.SetSelected(SelectRepository("user/repo1"))
	if got := store.Selected(); !got.Valid || got.FullName != "user/repo1" {
		t.Errorf("Selected() = %v, want user/repo1", got)
	}

	// No validation: any name is accepted.
	store.SetSelected(SelectRepository("does/not-exist"))
	if got := store.Selected().FullName; got != "does/not-exist" {
		t.Errorf("Selected() = %q, want does/not-exist", got)
	}

	store.SetSelected(NoSelection())
	if got := store.Selected(); got.Valid {
		t.Errorf("Selected() after clear = %v, want none", got)
	}

	if len(seen) != 3 {
		t.Errorf("subscriber calls = %d, want 3", len(seen))
	}
}

func TestSelection_String(t *testing.T) {
	if got := NoSelection().String(); got != "<none>" {
		t.Errorf("String() = %q", got)
	}
	if got := SelectRepository("a/b").String(); got != "a/b" {
		t.Errorf("String() = %q", got)
	}
}
