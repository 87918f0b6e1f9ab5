package store

import (
	"context"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := New(dbPath)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_New(t *testing.T) {
	s := newTestStore(t)
	if s == nil {
		t.Fatal("expected non-nil store")
	}
}

func TestStore_AddAndGetTerms(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.AddTerm(ctx, "en", "de", "invoice", "Rechnung"); err != nil {
		t.Fatalf("AddTerm failed: %v", err)
	}
	if err := s.AddTerm(ctx, "en", "de", "deadline", "Frist"); err != nil {
		t.Fatalf("AddTerm failed: %v", err)
	}

	terms, err := s.Terms(ctx, "en", "de")
	if err != nil {
		t.Fatalf("Terms failed: %v", err)
	}
	if len(terms) != 2 {
		t.Errorf("expected 2 terms, got %d", len(terms))
	}
	if terms["invoice"] != "Rechnung" {
		t.Errorf("expected Rechnung, got %q", terms["invoice"])
	}
}

func TestStore_AddTermReplacesDuplicate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.AddTerm(ctx, "en", "de", "invoice", "Rechnung"); err != nil {
		t.Fatalf("AddTerm failed: %v", err)
	}
	// Same term with surrounding whitespace must collapse onto one row.
	if err := s.AddTerm(ctx, "en", "de", "  invoice ", "Faktura"); err != nil {
		t.Fatalf("AddTerm failed: %v", err)
	}

	terms, err := s.Terms(ctx, "en", "de")
	if err != nil {
		t.Fatalf("Terms failed: %v", err)
	}
	if len(terms) != 1 {
		t.Fatalf("expected 1 term after replacement, got %d", len(terms))
	}
	if terms["invoice"] != "Faktura" {
		t.Errorf("expected replacement value Faktura, got %q", terms["invoice"])
	}
}

func TestStore_TermsScopedToLanguagePair(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.AddTerm(ctx, "en", "de", "invoice", "Rechnung"); err != nil {
		t.Fatalf("AddTerm failed: %v", err)
	}
	if err := s.AddTerm(ctx, "en", "fr", "invoice", "facture"); err != nil {
		t.Fatalf("AddTerm failed: %v", err)
	}

	terms, err := s.Terms(ctx, "en", "fr")
	if err != nil {
		t.Fatalf("Terms failed: %v", err)
	}
	if len(terms) != 1 || terms["invoice"] != "facture" {
		t.Errorf("unexpected terms for en→fr: %v", terms)
	}
}

func TestStore_PromptGlossary(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	empty, err := s.PromptGlossary(ctx, "en", "de")
	if err != nil {
		t.Fatalf("PromptGlossary failed: %v", err)
	}
	if empty != "" {
		t.Errorf("expected empty glossary string, got %q", empty)
	}

	if err := s.AddTerm(ctx, "en", "de", "invoice", "Rechnung"); err != nil {
		t.Fatalf("AddTerm failed: %v", err)
	}
	if err := s.AddTerm(ctx, "en", "de", "deadline", "Frist"); err != nil {
		t.Fatalf("AddTerm failed: %v", err)
	}

	got, err := s.PromptGlossary(ctx, "en", "de")
	if err != nil {
		t.Fatalf("PromptGlossary failed: %v", err)
	}
	want := "deadline:Frist;invoice:Rechnung"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestStore_ListAndDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.AddTerm(ctx, "en", "de", "invoice", "Rechnung"); err != nil {
		t.Fatalf("AddTerm failed: %v", err)
	}
	if err := s.AddTerm(ctx, "en", "fr", "invoice", "facture"); err != nil {
		t.Fatalf("AddTerm failed: %v", err)
	}

	all, err := s.List(ctx, "", "")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(all))
	}

	filtered, err := s.List(ctx, "", "fr")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(filtered) != 1 || filtered[0].TargetTerm != "facture" {
		t.Errorf("unexpected filtered entries: %+v", filtered)
	}

	if err := s.DeleteTerm(ctx, all[0].ID); err != nil {
		t.Fatalf("DeleteTerm failed: %v", err)
	}
	remaining, err := s.List(ctx, "", "")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(remaining) != 1 {
		t.Errorf("expected 1 entry after delete, got %d", len(remaining))
	}
}
