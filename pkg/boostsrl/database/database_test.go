package database

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWrite(t *testing.T) {
	dir := t.TempDir()
	db := &Database{
		Pos:   []string{"cancer(alice).", "cancer(carol)."},
		Neg:   []string{"cancer(bob)."},
		Facts: []string{"friends(alice,bob)."},
	}

	if err := db.Write(dir, "train"); err != nil {
		t.Fatalf("Write: %v", err)
	}

	pos, err := os.ReadFile(filepath.Join(dir, "train_pos.txt"))
	if err != nil {
		t.Fatalf("ReadFile pos: %v", err)
	}
	if string(pos) != "cancer(alice).\ncancer(carol).\n" {
		t.Errorf("unexpected pos content: %q", string(pos))
	}

	neg, err := os.ReadFile(filepath.Join(dir, "train_neg.txt"))
	if err != nil {
		t.Fatalf("ReadFile neg: %v", err)
	}
	if string(neg) != "cancer(bob).\n" {
		t.Errorf("unexpected neg content: %q", string(neg))
	}
}

func TestWriteEmptySections(t *testing.T) {
	dir := t.TempDir()
	if err := New().Write(dir, "test"); err != nil {
		t.Fatalf("Write: %v", err)
	}

	// The engine expects all three files even when empty.
	for _, name := range []string{"test_pos.txt", "test_neg.txt", "test_facts.txt"} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Errorf("missing %s: %v", name, err)
			continue
		}
		if len(data) != 0 {
			t.Errorf("%s should be empty, got %q", name, string(data))
		}
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
		return path
	}

	pos := write("pos.txt", "// positives\ncancer(alice).\n\ncancer(carol).\n")
	neg := write("neg.txt", "cancer(bob).\n")
	facts := write("facts.txt", "friends(alice,bob).\nsmokes(alice).\n")

	db, err := Load(pos, neg, facts)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(db.Pos) != 2 {
		t.Errorf("expected 2 positives, got %d", len(db.Pos))
	}
	if len(db.Neg) != 1 {
		t.Errorf("expected 1 negative, got %d", len(db.Neg))
	}
	if len(db.Facts) != 2 {
		t.Errorf("expected 2 facts, got %d", len(db.Facts))
	}
	if db.Pos[0] != "cancer(alice)." {
		t.Errorf("unexpected first positive: %q", db.Pos[0])
	}
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pos.txt")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path, filepath.Join(dir, "absent.txt"), path); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestWriteLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	orig := &Database{
		Pos:   []string{"cancer(alice)."},
		Neg:   []string{"cancer(bob)."},
		Facts: []string{"friends(alice,bob)."},
	}
	if err := orig.Write(dir, "train"); err != nil {
		t.Fatalf("Write: %v", err)
	}

	loaded, err := Load(
		filepath.Join(dir, "train_pos.txt"),
		filepath.Join(dir, "train_neg.txt"),
		filepath.Join(dir, "train_facts.txt"),
	)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(loaded.Pos) != 1 || loaded.Pos[0] != orig.Pos[0] {
		t.Errorf("positives changed: %v", loaded.Pos)
	}
	if len(loaded.Facts) != 1 || loaded.Facts[0] != orig.Facts[0] {
		t.Errorf("facts changed: %v", loaded.Facts)
	}
}
